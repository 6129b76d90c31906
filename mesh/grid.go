// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements one-dimensional finite-volume grids. A grid is an
// ordered set of cells with unit cross-section; all positional metadata is
// computed once at construction and is immutable afterwards.
package mesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Side selects one of the two boundary faces of a 1D grid
type Side int

const (
	Left  Side = iota // boundary face at x = 0
	Right             // boundary face at x = Length
)

// String returns the name of the side
func (o Side) String() string {
	if o == Left {
		return "left"
	}
	return "right"
}

// Grid1D holds a one-dimensional finite-volume grid. Cells are numbered from
// left to right; faces are numbered such that face i sits between cells i-1
// and i, with faces 0 and Ncells being the two boundary faces:
//
//    face:   0     1     2                n-1    n
//            |  •  |  •  |  •  |  ....  |  •  |
//    cell:      0     1     2              n-1
//
// Dist[i] is the distance between the centres straddling face i; at the two
// boundary faces it degenerates to the half-cell distance dx/2, which is the
// distance entering Dirichlet boundary coefficients.
type Grid1D struct {
	Ncells int       // number of cells
	Dx     []float64 // [Ncells] cell widths
	X      []float64 // [Ncells] cell centres
	Vol    []float64 // [Ncells] cell volumes (unit cross-section => Vol[i] = Dx[i])
	Xf     []float64 // [Ncells+1] face positions
	Dist   []float64 // [Ncells+1] centre-to-centre distance across each face
	W      []float64 // [Ncells+1] face weight of the right cell in linear interpolation
	Length float64   // total domain length
}

// NewGrid1D creates a (possibly graded) grid from the given cell widths
func NewGrid1D(dx []float64) (o *Grid1D, err error) {

	// check
	n := len(dx)
	if n < 2 {
		err = chk.Err("grid needs at least 2 cells; got %d", n)
		return
	}
	for i, h := range dx {
		if h <= 0 {
			err = chk.Err("cell widths must be positive; dx[%d] = %g", i, h)
			return
		}
	}

	// allocate
	o = new(Grid1D)
	o.Ncells = n
	o.Dx = make([]float64, n)
	copy(o.Dx, dx)
	o.X = make([]float64, n)
	o.Vol = make([]float64, n)
	o.Xf = make([]float64, n+1)
	o.Dist = make([]float64, n+1)
	o.W = make([]float64, n+1)

	// faces and centres
	for i := 0; i < n; i++ {
		o.Xf[i+1] = o.Xf[i] + o.Dx[i]
		o.X[i] = o.Xf[i] + o.Dx[i]/2.0
		o.Vol[i] = o.Dx[i]
	}
	o.Length = o.Xf[n]

	// distances and interpolation weights
	o.Dist[0] = o.Dx[0] / 2.0 // half-cell distance at boundaries
	o.Dist[n] = o.Dx[n-1] / 2.0
	o.W[0] = 1.0 // boundary faces see only their adjacent cell
	o.W[n] = 0.0
	for i := 1; i < n; i++ {
		o.Dist[i] = o.X[i] - o.X[i-1]
		o.W[i] = (o.Xf[i] - o.X[i-1]) / o.Dist[i]
	}
	return
}

// NewUniformGrid1D creates a grid with nx cells of constant width dx
func NewUniformGrid1D(nx int, dx float64) (o *Grid1D, err error) {
	if nx < 2 {
		err = chk.Err("uniform grid needs at least 2 cells; got nx = %d", nx)
		return
	}
	if dx <= 0 {
		err = chk.Err("uniform grid needs a positive cell width; got dx = %g", dx)
		return
	}
	widths := make([]float64, nx)
	for i := 0; i < nx; i++ {
		widths[i] = dx
	}
	return NewGrid1D(widths)
}

// SechSpacing returns n cell widths graded as
//
//    dx[i] = dx0 * (1.001 - sech(t[i]))     t[i] ∈ [lo, hi)
//
// which concentrates resolution around t = 0. With lo = -10, hi = 10 this is
// the spacing of the classic two-phase electrochemistry problem: the finest
// cells (≈ 0.001·dx0) sit at the centre of the domain where the interface
// lives, and the widths grow towards ≈ dx0 at both ends.
func SechSpacing(n int, dx0, lo, hi float64) []float64 {
	ts := utl.LinSpace(lo, hi, n+1) // left edges; the last entry is unused
	dx := make([]float64, n)
	for i := 0; i < n; i++ {
		dx[i] = dx0 * (1.001 - 1.0/math.Cosh(ts[i]))
	}
	return dx
}

// BoundaryFace returns the face index of the given side
func (o *Grid1D) BoundaryFace(side Side) int {
	if side == Left {
		return 0
	}
	return o.Ncells
}

// BoundaryCell returns the index of the cell adjacent to the given side
func (o *Grid1D) BoundaryCell(side Side) int {
	if side == Left {
		return 0
	}
	return o.Ncells - 1
}
