// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Tridiag solves the system with gonum's tridiagonal factorisation (LAPACK
// dgtsv). This is the default: exact for the banded systems 1D assembly
// produces, at O(n) cost.
type Tridiag struct {
	n         int
	dl, d, du []float64 // band copies handed to gonum
	xv, bv    *mat.VecDense
	xdata     []float64
}

// register solver
func init() {
	allocators["tridiag"] = func() Solver { return new(Tridiag) }
}

// Init allocates workspace for n×n systems
func (o *Tridiag) Init(n int) {
	o.n = n
	o.dl = make([]float64, n-1)
	o.d = make([]float64, n)
	o.du = make([]float64, n-1)
	o.xdata = make([]float64, n)
	o.xv = mat.NewVecDense(n, o.xdata)
}

// Solve solves A・x = rhs
func (o *Tridiag) Solve(sys *TriSys, x []float64) (err error) {
	if sys.N != o.n {
		return chk.Err("tridiag: system size %d differs from initialised size %d", sys.N, o.n)
	}

	// gonum wants bands of length n-1 without the unused end entries
	copy(o.dl, sys.Low[1:])
	copy(o.d, sys.Diag)
	copy(o.du, sys.Up[:o.n-1])

	a := mat.NewTridiag(o.n, o.dl, o.d, o.du)
	o.bv = mat.NewVecDense(o.n, sys.Rhs)
	if err = a.SolveVecTo(o.xv, false, o.bv); err != nil {
		return chk.Err("tridiag: factorisation failed: %v", err)
	}
	if !allFinite(o.xdata) {
		return chk.Err("tridiag: solution is not finite (singular system)")
	}
	copy(x, o.xdata)
	return
}
