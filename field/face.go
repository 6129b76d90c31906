// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"github.com/Maxwellfire/fipy/mesh"
)

// FaceField holds a scalar variable defined at cell faces, such as an
// interpolated concentration, a gradient, or a convection velocity. The
// fill methods reuse the backing slice, so a face field doubles as a
// scratchpad that coefficient closures refresh on every assembly.
type FaceField struct {
	Grid *mesh.Grid1D // grid this field lives on
	V    []float64    // [Ncells+1] face values
}

// NewFaceField creates a face field with all values zero
func NewFaceField(g *mesh.Grid1D) *FaceField {
	return &FaceField{Grid: g, V: make([]float64, g.Ncells+1)}
}

// Fill sets every face to v
func (o *FaceField) Fill(v float64) {
	for i := range o.V {
		o.V[i] = v
	}
}

// Arith fills this face field with the distance-weighted arithmetic mean of
// the cell values straddling each face. Boundary faces take the value of
// their single adjacent cell.
func (o *FaceField) Arith(c *CellField) {
	n := o.Grid.Ncells
	o.V[0] = c.V[0]
	o.V[n] = c.V[n-1]
	for f := 1; f < n; f++ {
		w := o.Grid.W[f]
		o.V[f] = (1.0-w)*c.V[f-1] + w*c.V[f]
	}
}

// Harm fills this face field with the distance-weighted harmonic mean
//
//    1/φf = (1-w)/φL + w/φR
//
// which preserves zeros: if either adjacent cell is zero the face value is
// zero. Boundary faces take the value of their single adjacent cell.
func (o *FaceField) Harm(c *CellField) {
	n := o.Grid.Ncells
	o.V[0] = c.V[0]
	o.V[n] = c.V[n-1]
	for f := 1; f < n; f++ {
		w := o.Grid.W[f]
		a, b := c.V[f-1], c.V[f]
		den := (1.0-w)*b + w*a
		if den == 0 {
			o.V[f] = 0
			continue
		}
		o.V[f] = a * b / den
	}
}

// Grad fills this face field with the two-point gradient across each face,
// using the centre-to-centre distance. Boundary faces get zero, matching the
// default zero-flux boundary treatment.
func (o *FaceField) Grad(c *CellField) {
	n := o.Grid.Ncells
	o.V[0] = 0
	o.V[n] = 0
	for f := 1; f < n; f++ {
		o.V[f] = (c.V[f] - c.V[f-1]) / o.Grid.Dist[f]
	}
}
