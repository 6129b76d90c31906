// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lin provides direct solvers for the tridiagonal linear systems
// produced by one-dimensional finite-volume assembly. Solvers are selected
// by name from a registry, so input files can choose the implementation.
package lin

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// TriSys holds a tridiagonal linear system A・x = b. Low[0] and Up[N-1] are
// kept for alignment but never read.
type TriSys struct {
	N    int       // system size
	Low  []float64 // [N] sub-diagonal
	Diag []float64 // [N] diagonal
	Up   []float64 // [N] super-diagonal
	Rhs  []float64 // [N] right-hand side
}

// NewTriSys allocates an n×n tridiagonal system
func NewTriSys(n int) *TriSys {
	return &TriSys{
		N:    n,
		Low:  make([]float64, n),
		Diag: make([]float64, n),
		Up:   make([]float64, n),
		Rhs:  make([]float64, n),
	}
}

// Clear zeroes all bands and the right-hand side
func (o *TriSys) Clear() {
	for i := 0; i < o.N; i++ {
		o.Low[i], o.Diag[i], o.Up[i], o.Rhs[i] = 0, 0, 0, 0
	}
}

// MulVec computes dst = A・x
func (o *TriSys) MulVec(x, dst []float64) {
	for i := 0; i < o.N; i++ {
		s := o.Diag[i] * x[i]
		if i > 0 {
			s += o.Low[i] * x[i-1]
		}
		if i < o.N-1 {
			s += o.Up[i] * x[i+1]
		}
		dst[i] = s
	}
}

// Solver solves the tridiagonal systems assembled by equations. Init must be
// called once with the system size before Solve; Solve may then be called
// repeatedly with refreshed coefficients.
type Solver interface {
	Init(n int)
	Solve(sys *TriSys, x []float64) error
}

// allocators holds all available linear solvers
var allocators = make(map[string]func() Solver)

// New returns a linear solver by name. "tridiag" is the natural choice for
// 1D problems; "lu" factorises the full dense matrix.
func New(name string) (o Solver, err error) {
	alloc, ok := allocators[name]
	if !ok {
		err = chk.Err("cannot find linear solver named %q", name)
		return
	}
	o = alloc()
	return
}

// SolverNames returns the names of all registered solvers
func SolverNames() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// allFinite tells whether every entry of x is a finite number
func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
