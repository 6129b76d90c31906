// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"strings"
	"testing"

	"github.com/Maxwellfire/fipy/eqn"
	"github.com/Maxwellfire/fipy/field"
	"github.com/Maxwellfire/fipy/mesh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// buildDiffusion makes a transient diffusion field with Dirichlet ends
func buildDiffusion(tst *testing.T, g *mesh.Grid1D, name string, gamma, left, right float64) *Field {
	u := field.NewCellField(name, g, 0, true)
	eq, err := eqn.New(u).Transient(eqn.CteCell(1)).Diffusion(eqn.CteFace(gamma)).Build()
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	return &Field{
		Eqn: eq,
		Bcs: []eqn.BCond{
			eqn.NewFixedValue(mesh.Left, left),
			eqn.NewFixedValue(mesh.Right, right),
		},
	}
}

func Test_sweep01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep01. uncoupled pair converges to the analytic steady state")

	g, err := mesh.NewUniformGrid1D(10, 0.1)
	if err != nil {
		tst.Errorf("grid failed: %v\n", err)
		return
	}

	fu := buildDiffusion(tst, g, "u", 1.0, 0.0, 1.0)
	fv := buildDiffusion(tst, g, "v", 1.0, 2.0, 0.0)

	loop, err := NewCoupled([]*Field{fu, fv}, Control{Tf: 3.0, Dt: 0.05, NmaxIt: 2})
	if err != nil {
		tst.Errorf("NewCoupled failed: %v\n", err)
		return
	}
	if err := loop.Run(context.Background()); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// steady states are the linear profiles between the boundary values
	wantU := make([]float64, g.Ncells)
	wantV := make([]float64, g.Ncells)
	for i, x := range g.X {
		wantU[i] = x / g.Length
		wantV[i] = 2.0 * (1.0 - x/g.Length)
	}
	chk.Vector(tst, "u steady", 1e-8, fu.Eqn.Field().V, wantU)
	chk.Vector(tst, "v steady", 1e-8, fv.Eqn.Field().V, wantV)

	chk.IntAssert(len(loop.History), 60)
	chk.Scalar(tst, "final time", 1e-12, loop.Time(), 3.0)
}

func Test_sweep02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep02. identical runs give identical results")

	run := func() []float64 {
		g, err := mesh.NewGrid1D([]float64{0.1, 0.2, 0.15, 0.25, 0.1, 0.2})
		if err != nil {
			tst.Fatalf("grid failed: %v", err)
		}
		fu := buildDiffusion(tst, g, "u", 0.7, 1.0, 0.0)

		// v is coupled to u through its source
		u := fu.Eqn.Field()
		v := field.NewCellField("v", g, 0.5, true)
		eqv, err := eqn.New(v).Transient(eqn.CteCell(1)).Diffusion(eqn.CteFace(0.3)).
			Source(eqn.FromCell(u), nil).Build()
		if err != nil {
			tst.Fatalf("Build failed: %v", err)
		}
		fv := &Field{Eqn: eqv}

		loop, err := NewCoupled([]*Field{fu, fv}, Control{Tf: 0.5, Dt: 0.05, NmaxIt: 4})
		if err != nil {
			tst.Fatalf("NewCoupled failed: %v", err)
		}
		if err := loop.Run(context.Background()); err != nil {
			tst.Fatalf("Run failed: %v", err)
		}
		out := append([]float64{}, u.V...)
		return append(out, v.V...)
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			tst.Errorf("runs differ at entry %d: %v != %v\n", i, a[i], b[i])
			return
		}
	}
}

func Test_sweep03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep03. loop residuals equal the equations' own reports")

	g, err := mesh.NewUniformGrid1D(8, 0.25)
	if err != nil {
		tst.Errorf("grid failed: %v\n", err)
		return
	}
	fields := []*Field{
		buildDiffusion(tst, g, "u", 1.0, 0.0, 1.0),
		buildDiffusion(tst, g, "v", 0.4, 3.0, 1.0),
	}

	loop, err := NewCoupled(fields, Control{Tf: 0.3, Dt: 0.1, NmaxIt: 3})
	if err != nil {
		tst.Errorf("NewCoupled failed: %v\n", err)
		return
	}
	if err := loop.Run(context.Background()); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	for k, f := range fields {
		chk.Scalar(tst, "residual bookkeeping", 1e-17, loop.LastResiduals()[k], f.Eqn.LastResidual().Max)
	}
}

func Test_sweep04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep04. boundary conditions hold on every sweep; tolerance stops early")

	g, err := mesh.NewUniformGrid1D(6, 0.5)
	if err != nil {
		tst.Errorf("grid failed: %v\n", err)
		return
	}

	// steady equation: each sweep re-assembles the same system, so repeated
	// sweeps leave the solution alone only if the conditions are re-applied
	// identically every time
	u := field.NewCellField("u", g, 0, false)
	eq, err := eqn.New(u).Diffusion(eqn.CteFace(2.0)).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}
	f := &Field{
		Eqn: eq,
		Bcs: []eqn.BCond{
			eqn.NewFixedValue(mesh.Left, -1.0),
			eqn.NewFixedValue(mesh.Right, 5.0),
		},
	}

	loop, err := NewCoupled([]*Field{f}, Control{
		Tf: 1.0, DtFcn: &fun.Cte{C: 0.25}, NmaxIt: 10, SweepTol: 1e-8,
	})
	if err != nil {
		tst.Errorf("NewCoupled failed: %v\n", err)
		return
	}
	if err := loop.Run(context.Background()); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// dt function drove four steps
	chk.IntAssert(len(loop.History), 4)

	// first step needs the solve plus one confirming sweep; once the state
	// solves the system, every later step stops after a single sweep
	chk.IntAssert(loop.History[0].Sweeps, 2)
	for _, s := range loop.History[1:] {
		chk.IntAssert(s.Sweeps, 1)
	}

	want := make([]float64, g.Ncells)
	for i, x := range g.X {
		want[i] = -1.0 + 6.0*x/g.Length
	}
	chk.Vector(tst, "profile", 1e-12, u.V, want)
}

func Test_sweep05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep05. cancellation between sweeps leaves a consistent state")

	build := func(nmaxit int, hook func()) (*Coupled, *field.CellField) {
		g, err := mesh.NewUniformGrid1D(5, 0.2)
		if err != nil {
			tst.Fatalf("grid failed: %v", err)
		}
		u := field.NewCellField("u", g, 0, true)
		gamma := func(dst []float64) {
			if hook != nil {
				hook()
			}
			for i := range dst {
				dst[i] = 1.0
			}
		}
		eq, err := eqn.New(u).Transient(eqn.CteCell(1)).Diffusion(gamma).Build()
		if err != nil {
			tst.Fatalf("Build failed: %v", err)
		}
		f := &Field{Eqn: eq, Bcs: []eqn.BCond{eqn.NewFixedValue(mesh.Left, 1.0)}}
		loop, err := NewCoupled([]*Field{f}, Control{Tf: 0.1, Dt: 0.1, NmaxIt: nmaxit})
		if err != nil {
			tst.Fatalf("NewCoupled failed: %v", err)
		}
		return loop, u
	}

	// cancelling before the run means zero sweeps and untouched fields
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop, u := build(3, nil)
	ini := u.Clone()
	if err := loop.Run(ctx); err != context.Canceled {
		tst.Errorf("expected context.Canceled; got %v\n", err)
		return
	}
	chk.Vector(tst, "fields untouched", 1e-17, u.V, ini.V)
	chk.IntAssert(len(loop.History), 0)

	// cancelling mid-step takes effect at the next sweep boundary: the
	// interrupted run matches a reference run truncated to the same number
	// of completed sweeps
	ctx2, cancel2 := context.WithCancel(context.Background())
	solves := 0
	loop2, u2 := build(5, func() {
		solves++
		if solves == 2 { // during the second sweep
			cancel2()
		}
	})
	if err := loop2.Run(ctx2); err != context.Canceled {
		tst.Errorf("expected context.Canceled; got %v\n", err)
		return
	}

	ref, uref := build(2, nil) // exactly the two sweeps that completed
	if err := ref.Run(context.Background()); err != nil {
		tst.Errorf("reference run failed: %v\n", err)
		return
	}
	chk.Vector(tst, "state after cancellation", 1e-17, u2.V, uref.V)
}

func Test_sweep06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep06. solve failures abort immediately and name the field")

	g, err := mesh.NewUniformGrid1D(4, 0.5)
	if err != nil {
		tst.Errorf("grid failed: %v\n", err)
		return
	}

	// zero conductance everywhere: a singular system
	u := field.NewCellField("charge-density", g, 1.0, false)
	eq, err := eqn.New(u).Diffusion(eqn.CteFace(0)).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}

	loop, err := NewCoupled([]*Field{{Eqn: eq}}, Control{Tf: 1.0, Dt: 1.0, NmaxIt: 3})
	if err != nil {
		tst.Errorf("NewCoupled failed: %v\n", err)
		return
	}
	err = loop.Run(context.Background())
	if err == nil {
		tst.Errorf("expected a solve failure\n")
		return
	}
	if !strings.Contains(err.Error(), "charge-density") {
		tst.Errorf("error does not name the failing field: %v\n", err)
		return
	}
	if !strings.Contains(err.Error(), "last residual") {
		tst.Errorf("error does not report the last residual: %v\n", err)
		return
	}
}

func Test_sweep07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep07. later fields see earlier fields' just-updated values")

	g, err := mesh.NewUniformGrid1D(5, 0.2)
	if err != nil {
		tst.Errorf("grid failed: %v\n", err)
		return
	}

	// u relaxes to a linear profile instantly (steady); v solves a Poisson
	// problem driven by u. With Gauss-Seidel ordering a single sweep is
	// enough for v to see the solved u, not the initial zeros.
	u := field.NewCellField("u", g, 0, false)
	equ, err := eqn.New(u).Diffusion(eqn.CteFace(1)).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}
	ubcs := []eqn.BCond{
		eqn.NewFixedValue(mesh.Left, 0.0),
		eqn.NewFixedValue(mesh.Right, 2.0),
	}

	v := field.NewCellField("v", g, 0, false)
	eqv, err := eqn.New(v).Diffusion(eqn.CteFace(1)).Source(eqn.FromCell(u), nil).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}
	vbcs := []eqn.BCond{
		eqn.NewFixedValue(mesh.Left, 0.0),
		eqn.NewFixedValue(mesh.Right, 0.0),
	}

	loop, err := NewCoupled([]*Field{
		{Eqn: equ, Bcs: ubcs},
		{Eqn: eqv, Bcs: vbcs},
	}, Control{Tf: 1.0, Dt: 1.0, NmaxIt: 1})
	if err != nil {
		tst.Errorf("NewCoupled failed: %v\n", err)
		return
	}
	if err := loop.Run(context.Background()); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// reference: solve u's system first, then v's with the updated source
	u2 := field.NewCellField("u2", g, 0, false)
	equ2, err := eqn.New(u2).Diffusion(eqn.CteFace(1)).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}
	if _, err := equ2.Solve(1, 1, ubcs); err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	v2 := field.NewCellField("v2", g, 0, false)
	eqv2, err := eqn.New(v2).Diffusion(eqn.CteFace(1)).Source(eqn.FromCell(u2), nil).Build()
	if err != nil {
		tst.Errorf("Build failed: %v\n", err)
		return
	}
	if _, err := eqv2.Solve(1, 1, vbcs); err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Vector(tst, "u", 1e-17, u.V, u2.V)
	chk.Vector(tst, "v", 1e-17, v.V, v2.V)
}
