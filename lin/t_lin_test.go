// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_lin01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin01. solver registry")

	if _, err := New("tridiag"); err != nil {
		tst.Errorf("New(tridiag) failed: %v\n", err)
		return
	}
	if _, err := New("lu"); err != nil {
		tst.Errorf("New(lu) failed: %v\n", err)
		return
	}
	if _, err := New("gauss-seidel"); err == nil {
		tst.Errorf("expected error for unknown solver name\n")
		return
	}
	io.Pf("registered: %v\n", SolverNames())
}

func Test_lin02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin02. symmetric system with known solution")

	// [ 2 -1  0 ]       [1]
	// [-1  2 -1 ] x  =  [0]   =>  x = [1 1 1]
	// [ 0 -1  2 ]       [1]
	sys := NewTriSys(3)
	sys.Diag[0], sys.Diag[1], sys.Diag[2] = 2, 2, 2
	sys.Low[1], sys.Low[2] = -1, -1
	sys.Up[0], sys.Up[1] = -1, -1
	sys.Rhs[0], sys.Rhs[1], sys.Rhs[2] = 1, 0, 1

	for _, name := range []string{"tridiag", "lu"} {
		s, err := New(name)
		if err != nil {
			tst.Errorf("New(%s) failed: %v\n", name, err)
			return
		}
		s.Init(3)
		x := make([]float64, 3)
		if err := s.Solve(sys, x); err != nil {
			tst.Errorf("%s solve failed: %v\n", name, err)
			return
		}
		chk.Vector(tst, name, 1e-14, x, []float64{1, 1, 1})
	}

	// MulVec reproduces the right-hand side
	ax := make([]float64, 3)
	sys.MulVec([]float64{1, 1, 1}, ax)
	chk.Vector(tst, "A・x", 1e-14, ax, sys.Rhs)
}

func Test_lin03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin03. banded and dense solvers agree")

	n := 17
	sys := NewTriSys(n)
	for i := 0; i < n; i++ {
		sys.Diag[i] = 3.0 + 0.1*float64(i)
		if i > 0 {
			sys.Low[i] = -1.5
		}
		if i < n-1 {
			sys.Up[i] = -0.5
		}
		sys.Rhs[i] = float64(i + 1)
	}

	xa := make([]float64, n)
	xb := make([]float64, n)

	sa, _ := New("tridiag")
	sa.Init(n)
	if err := sa.Solve(sys, xa); err != nil {
		tst.Errorf("tridiag failed: %v\n", err)
		return
	}

	sb, _ := New("lu")
	sb.Init(n)
	if err := sb.Solve(sys, xb); err != nil {
		tst.Errorf("lu failed: %v\n", err)
		return
	}

	chk.Vector(tst, "tridiag vs lu", 1e-12, xa, xb)

	// both solutions satisfy the system
	ax := make([]float64, n)
	sys.MulVec(xa, ax)
	chk.Vector(tst, "A・x = b", 1e-11, ax, sys.Rhs)
}

func Test_lin04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin04. singular systems are reported")

	sys := NewTriSys(4) // all-zero matrix
	sys.Rhs[0] = 1.0

	for _, name := range []string{"tridiag", "lu"} {
		s, err := New(name)
		if err != nil {
			tst.Errorf("New(%s) failed: %v\n", name, err)
			return
		}
		s.Init(4)
		x := make([]float64, 4)
		if err := s.Solve(sys, x); err == nil {
			tst.Errorf("%s: expected an error for a singular system\n", name)
			return
		} else {
			io.Pf("%s: %v\n", name, err)
		}
	}
}
