// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// LU solves the system with a dense LU factorisation. The O(n³) cost only
// pays off as a robustness reference against the banded solver, or when an
// equation is expected to be badly conditioned; the electrochemistry input
// files select it for the solute equations.
type LU struct {
	n     int
	a     *mat.Dense
	lu    mat.LU
	xv    *mat.VecDense
	xdata []float64
}

// register solver
func init() {
	allocators["lu"] = func() Solver { return new(LU) }
}

// Init allocates workspace for n×n systems
func (o *LU) Init(n int) {
	o.n = n
	o.a = mat.NewDense(n, n, nil)
	o.xdata = make([]float64, n)
	o.xv = mat.NewVecDense(n, o.xdata)
}

// Solve solves A・x = rhs
func (o *LU) Solve(sys *TriSys, x []float64) (err error) {
	if sys.N != o.n {
		return chk.Err("lu: system size %d differs from initialised size %d", sys.N, o.n)
	}

	// spread the three bands over the dense matrix
	o.a.Zero()
	for i := 0; i < o.n; i++ {
		o.a.Set(i, i, sys.Diag[i])
		if i > 0 {
			o.a.Set(i, i-1, sys.Low[i])
		}
		if i < o.n-1 {
			o.a.Set(i, i+1, sys.Up[i])
		}
	}

	o.lu.Factorize(o.a)
	bv := mat.NewVecDense(o.n, sys.Rhs)
	if err = o.lu.SolveVecTo(o.xv, false, bv); err != nil {
		return chk.Err("lu: solve failed: %v", err)
	}
	if !allFinite(o.xdata) {
		return chk.Err("lu: solution is not finite (singular system)")
	}
	copy(x, o.xdata)
	return
}
