// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. uniform grid geometry")

	g, err := NewUniformGrid1D(4, 0.5)
	if err != nil {
		tst.Errorf("NewUniformGrid1D failed: %v\n", err)
		return
	}

	chk.IntAssert(g.Ncells, 4)
	chk.Scalar(tst, "Length", 1e-17, g.Length, 2.0)
	chk.Vector(tst, "Dx", 1e-17, g.Dx, []float64{0.5, 0.5, 0.5, 0.5})
	chk.Vector(tst, "X", 1e-15, g.X, []float64{0.25, 0.75, 1.25, 1.75})
	chk.Vector(tst, "Xf", 1e-15, g.Xf, []float64{0, 0.5, 1.0, 1.5, 2.0})
	chk.Vector(tst, "Vol", 1e-17, g.Vol, []float64{0.5, 0.5, 0.5, 0.5})

	// half-cell distances at the two boundary faces
	chk.Vector(tst, "Dist", 1e-15, g.Dist, []float64{0.25, 0.5, 0.5, 0.5, 0.25})
	chk.Vector(tst, "W", 1e-15, g.W, []float64{1, 0.5, 0.5, 0.5, 0})

	chk.IntAssert(g.BoundaryFace(Left), 0)
	chk.IntAssert(g.BoundaryFace(Right), 4)
	chk.IntAssert(g.BoundaryCell(Left), 0)
	chk.IntAssert(g.BoundaryCell(Right), 3)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. graded grid geometry")

	g, err := NewGrid1D([]float64{0.1, 0.2, 0.4})
	if err != nil {
		tst.Errorf("NewGrid1D failed: %v\n", err)
		return
	}

	chk.Scalar(tst, "Length", 1e-15, g.Length, 0.7)
	chk.Vector(tst, "X", 1e-15, g.X, []float64{0.05, 0.2, 0.5})
	chk.Vector(tst, "Xf", 1e-15, g.Xf, []float64{0, 0.1, 0.3, 0.7})
	chk.Vector(tst, "Dist", 1e-15, g.Dist, []float64{0.05, 0.15, 0.3, 0.2})

	// interior weights are the fraction of Dist owned by the left cell
	chk.Scalar(tst, "W[1]", 1e-15, g.W[1], (0.1-0.05)/0.15)
	chk.Scalar(tst, "W[2]", 1e-15, g.W[2], (0.3-0.2)/0.3)

	// faces and distances tile the domain
	for i := 1; i < g.Ncells; i++ {
		chk.Scalar(tst, "Dist sum", 1e-15, g.Dist[i], (g.Dx[i-1]+g.Dx[i])/2.0)
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. invalid input")

	if _, err := NewUniformGrid1D(1, 0.5); err == nil {
		tst.Errorf("expected error for nx < 2\n")
		return
	}
	if _, err := NewUniformGrid1D(10, 0); err == nil {
		tst.Errorf("expected error for dx = 0\n")
		return
	}
	if _, err := NewGrid1D([]float64{0.1, -0.2, 0.4}); err == nil {
		tst.Errorf("expected error for negative width\n")
		return
	}
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. sech graded spacing")

	n := 200
	dx := SechSpacing(n, 0.01, -10, 10)
	chk.IntAssert(len(dx), n)

	// finest cell at the centre, widths positive everywhere
	imin := 0
	for i, h := range dx {
		if h <= 0 {
			tst.Errorf("non-positive width dx[%d] = %g\n", i, h)
			return
		}
		if h < dx[imin] {
			imin = i
		}
	}
	chk.IntAssert(imin, n/2)
	chk.Scalar(tst, "dx min", 1e-15, dx[n/2], 0.01*(1.001-1.0/math.Cosh(0)))

	// a graded spacing builds a valid grid
	g, err := NewGrid1D(dx)
	if err != nil {
		tst.Errorf("NewGrid1D failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "tiling", 1e-13, g.Xf[g.Ncells], g.Length)
}
