// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"github.com/Maxwellfire/fipy/mesh"
	fun "github.com/cpmech/gosl/fun/dbf"
)

// BCond is a boundary condition forwarded to Solve and applied on every
// assembly. A boundary face without a condition contributes no flux at all,
// which keeps the volume-weighted total of the unknown exactly conserved.
// At most one condition may be given per side.
type BCond interface {
	BcSide() mesh.Side
}

// FixedValue prescribes the value of the unknown at a boundary face
// (Dirichlet). The coefficient couples through the half-cell distance
// between the face and the adjacent cell centre.
type FixedValue struct {
	Side  mesh.Side // which boundary face
	Value fun.T     // prescribed value as a function of time
}

// NewFixedValue creates a constant-valued Dirichlet condition
func NewFixedValue(side mesh.Side, value float64) *FixedValue {
	return &FixedValue{Side: side, Value: &fun.Cte{C: value}}
}

// BcSide returns the boundary side
func (o *FixedValue) BcSide() mesh.Side { return o.Side }

// FixedFlux prescribes the total flux of the unknown entering the domain
// through a boundary face (Neumann). Positive values add to the adjacent
// cell.
type FixedFlux struct {
	Side  mesh.Side // which boundary face
	Value fun.T     // inward flux as a function of time
}

// NewFixedFlux creates a constant-valued flux condition
func NewFixedFlux(side mesh.Side, value float64) *FixedFlux {
	return &FixedFlux{Side: side, Value: &fun.Cte{C: value}}
}

// BcSide returns the boundary side
func (o *FixedFlux) BcSide() mesh.Side { return o.Side }
