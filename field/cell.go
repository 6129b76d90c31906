// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements scalar variables living on a finite-volume grid:
// cell-centred fields holding the unknowns, and face fields holding
// interpolated values, gradients, and velocities at cell faces.
package field

import (
	"math"

	"github.com/Maxwellfire/fipy/mesh"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// CellField holds a scalar variable defined at cell centres. A field created
// with hasOld=true keeps a snapshot of its values at the beginning of the
// current time step, which is what transient terms difference against.
//
// Only the equation bound to a field writes V; coupled equations read other
// fields' values but never write them.
type CellField struct {
	Name   string       // variable name
	Grid   *mesh.Grid1D // grid this field lives on
	V      []float64    // [Ncells] current values
	Old    []float64    // [Ncells] values at the beginning of the time step
	HasOld bool         // whether Old is maintained
}

// NewCellField creates a cell field with all values set to ini
func NewCellField(name string, g *mesh.Grid1D, ini float64, hasOld bool) *CellField {
	o := &CellField{Name: name, Grid: g, HasOld: hasOld}
	o.V = make([]float64, g.Ncells)
	for i := range o.V {
		o.V[i] = ini
	}
	if hasOld {
		o.Old = make([]float64, g.Ncells)
		copy(o.Old, o.V)
	}
	return o
}

// UpdateOld snapshots the current values into Old. Calling it twice without
// an intervening solve leaves Old unchanged.
func (o *CellField) UpdateOld() {
	if !o.HasOld {
		chk.Panic("field %q was created without old values", o.Name)
	}
	copy(o.Old, o.V)
}

// SetAll sets every cell to v (and Old too, if kept, so that a run may be
// restarted from a fresh state)
func (o *CellField) SetAll(v float64) {
	for i := range o.V {
		o.V[i] = v
	}
	if o.HasOld {
		copy(o.Old, o.V)
	}
}

// SetFunc sets values from a function of the cell-centre coordinate
func (o *CellField) SetFunc(f func(x float64) float64) {
	for i, x := range o.Grid.X {
		o.V[i] = f(x)
	}
	if o.HasOld {
		copy(o.Old, o.V)
	}
}

// SetStep sets a step profile: left for x < xstep, right otherwise
func (o *CellField) SetStep(xstep, left, right float64) {
	o.SetFunc(func(x float64) float64 {
		if x < xstep {
			return left
		}
		return right
	})
}

// Clone returns an independent copy of this field
func (o *CellField) Clone() *CellField {
	c := NewCellField(o.Name, o.Grid, 0, o.HasOld)
	copy(c.V, o.V)
	if o.HasOld {
		copy(c.Old, o.Old)
	}
	return c
}

// MaxAbs returns max |V[i]|
func (o *CellField) MaxAbs() float64 {
	return floats.Norm(o.V, math.Inf(1))
}

// Integral returns the volume-weighted total ∫ V dx = Σ V[i]·Vol[i].
// With zero-flux boundaries and no sources this total is conserved by the
// finite-volume discretisation, to solver roundoff.
func (o *CellField) Integral() float64 {
	return floats.Dot(o.V, o.Grid.Vol)
}
