// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"github.com/Maxwellfire/fipy/field"
)

// CellCoeff fills dst (one entry per cell) with a coefficient evaluated at
// cell centres. Coefficients are re-evaluated on every assembly, so closures
// over other fields see their just-updated values; this is what couples the
// equations of a sweep.
type CellCoeff func(dst []float64)

// FaceCoeff fills dst (one entry per face) with a coefficient evaluated at
// cell faces, such as a diffusivity or a convection velocity.
type FaceCoeff func(dst []float64)

// CteCell returns a constant cell coefficient
func CteCell(v float64) CellCoeff {
	return func(dst []float64) {
		for i := range dst {
			dst[i] = v
		}
	}
}

// CteFace returns a constant face coefficient
func CteFace(v float64) FaceCoeff {
	return func(dst []float64) {
		for i := range dst {
			dst[i] = v
		}
	}
}

// FromCell returns a cell coefficient that copies the current values of a
// field, e.g. a source proportional to another variable
func FromCell(c *field.CellField) CellCoeff {
	return func(dst []float64) {
		copy(dst, c.V)
	}
}

// FromFace returns a face coefficient that copies the current values of a
// face field refreshed elsewhere
func FromFace(f *field.FaceField) FaceCoeff {
	return func(dst []float64) {
		copy(dst, f.V)
	}
}
