// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eqn composes finite-volume discretisation terms into solvable
// equations. An equation is built once from its terms; every Solve call then
// re-evaluates the coefficient providers, assembles the tridiagonal system,
// records the residual of the incoming state, and updates the bound field in
// place with the solution.
package eqn

import (
	"math"

	"github.com/Maxwellfire/fipy/field"
	"github.com/Maxwellfire/fipy/lin"
	"github.com/Maxwellfire/fipy/mesh"
	"github.com/cpmech/gosl/chk"
)

// Residual holds the residual of an equation evaluated with the field state
// before the last solve:
//
//    r = b - A・u
//
// Cells is reused between solves; callers needing to keep it must copy.
type Residual struct {
	Cells []float64 // per-cell residual
	Max   float64   // ∞-norm of Cells
}

// Equation is one scalar conservation equation
//
//       ∂u
//     ρ —— = ∇・(Γ ∇u) - ∇・(v u) + s0 + s1・u
//       ∂t
//
// discretised implicitly (backward Euler) over the cells of a 1D grid. The
// unknown u is the bound field; ρ, Γ, v, s0 and s1 come from coefficient
// providers evaluated on every assembly. Convective and diffusive face
// fluxes share the scheme-weighted coefficient
//
//    J_f = F・uL + b_f・(uL - uR)      b_f = D_f・A(|P_f|) + max(-F_f, 0)
//
// which makes interior fluxes strictly conservative: what leaves a cell
// through a face enters its neighbour exactly.
type Equation struct {

	// bindings
	fld    *field.CellField // the unknown; mutated in place by Solve
	grid   *mesh.Grid1D     // geometry
	solver lin.Solver       // linear solver

	// terms
	rho    CellCoeff // transient coefficient (nil: steady equation)
	gamma  FaceCoeff // diffusion coefficient at faces (nil: no diffusion)
	vel    FaceCoeff // convection velocity at faces (nil: no convection)
	scheme Scheme    // face weighting for convection
	s0     CellCoeff // explicit source (nil: none)
	s1     CellCoeff // implicit source coefficient (nil: none)

	// scratchpad. refreshed @ each solve
	bufRho []float64
	bufGam []float64
	bufVel []float64
	bufS0  []float64
	bufS1  []float64
	sys    *lin.TriSys
	res    Residual
}

// Builder collects the terms of an equation. Methods chain; Build validates
// the combination and allocates the workspace.
type Builder struct {
	fld    *field.CellField
	rho    CellCoeff
	gamma  FaceCoeff
	vel    FaceCoeff
	scheme Scheme
	s0, s1 CellCoeff
	solver lin.Solver
}

// New starts building an equation for the given field
func New(fld *field.CellField) *Builder {
	return &Builder{fld: fld, scheme: PowerLaw}
}

// Transient adds the term ρ ∂u/∂t
func (o *Builder) Transient(rho CellCoeff) *Builder {
	o.rho = rho
	return o
}

// Diffusion adds the term ∇・(Γ ∇u), with Γ given at faces
func (o *Builder) Diffusion(gamma FaceCoeff) *Builder {
	o.gamma = gamma
	return o
}

// Convection adds the term -∇・(v u), with the velocity given at faces and
// face values weighted by the scheme
func (o *Builder) Convection(vel FaceCoeff, scheme Scheme) *Builder {
	o.vel = vel
	o.scheme = scheme
	return o
}

// Source adds the terms s0 + s1・u. Either provider may be nil. s1 is taken
// implicitly exactly as given; callers wanting the stable linearisation must
// pass only its negative part (and fold the rest into s0).
func (o *Builder) Source(s0, s1 CellCoeff) *Builder {
	o.s0 = s0
	o.s1 = s1
	return o
}

// Solver binds a linear solver; without it Build uses "tridiag"
func (o *Builder) Solver(s lin.Solver) *Builder {
	o.solver = s
	return o
}

// Build validates the term combination and creates the equation
func (o *Builder) Build() (eq *Equation, err error) {

	// configuration checks
	if o.fld == nil {
		err = chk.Err("equation needs a field to solve for")
		return
	}
	if o.fld.Grid == nil {
		err = chk.Err("field %q is not bound to a grid", o.fld.Name)
		return
	}
	if o.rho == nil && o.gamma == nil && o.vel == nil {
		err = chk.Err("equation for %q has no transient, diffusion, or convection term", o.fld.Name)
		return
	}
	if o.rho != nil && !o.fld.HasOld {
		err = chk.Err("field %q must keep old values to carry a transient term", o.fld.Name)
		return
	}
	if o.solver == nil {
		if o.solver, err = lin.New("tridiag"); err != nil {
			return
		}
	}

	// allocate
	n := o.fld.Grid.Ncells
	eq = &Equation{
		fld:    o.fld,
		grid:   o.fld.Grid,
		solver: o.solver,
		rho:    o.rho,
		gamma:  o.gamma,
		vel:    o.vel,
		scheme: o.scheme,
		s0:     o.s0,
		s1:     o.s1,
		sys:    lin.NewTriSys(n),
	}
	eq.solver.Init(n)
	eq.res.Cells = make([]float64, n)
	if o.rho != nil {
		eq.bufRho = make([]float64, n)
	}
	if o.gamma != nil {
		eq.bufGam = make([]float64, n+1)
	}
	if o.vel != nil {
		eq.bufVel = make([]float64, n+1)
	}
	if o.s0 != nil {
		eq.bufS0 = make([]float64, n)
	}
	if o.s1 != nil {
		eq.bufS1 = make([]float64, n)
	}
	return
}

// Field returns the field this equation solves for
func (o *Equation) Field() *field.CellField {
	return o.fld
}

// LastResidual returns the residual recorded by the last Solve. The backing
// slice is reused by the next Solve.
func (o *Equation) LastResidual() Residual {
	return o.res
}

// Solve assembles the equation at time t with time step dt, records the
// residual of the incoming field state, and overwrites the field with the
// solution. Boundary conditions are applied on this assembly exactly as on
// every other; a boundary face without a condition passes no flux. On
// failure the field keeps its pre-solve values.
func (o *Equation) Solve(t, dt float64, bcs []BCond) (res Residual, err error) {

	// refresh coefficients (closures read the current state of all fields)
	if o.rho != nil {
		o.rho(o.bufRho)
	}
	if o.gamma != nil {
		o.gamma(o.bufGam)
	}
	if o.vel != nil {
		o.vel(o.bufVel)
	}
	if o.s0 != nil {
		o.s0(o.bufS0)
	}
	if o.s1 != nil {
		o.s1(o.bufS1)
	}

	// clear system
	n := o.grid.Ncells
	sys := o.sys
	sys.Clear()

	// transient term
	if o.rho != nil {
		if dt <= 0 {
			err = chk.Err("equation for %q: transient term needs dt > 0; got dt = %g", o.fld.Name, dt)
			return
		}
		for i := 0; i < n; i++ {
			c := o.bufRho[i] * o.grid.Vol[i] / dt
			sys.Diag[i] += c
			sys.Rhs[i] += c * o.fld.Old[i]
		}
	}

	// interior face fluxes
	for f := 1; f < n; f++ {
		var D, F float64
		if o.gamma != nil {
			D = o.bufGam[f] / o.grid.Dist[f]
		}
		if o.vel != nil {
			F = o.bufVel[f]
		}
		b := o.scheme.faceCoeff(D, F)
		L, R := f-1, f
		sys.Diag[L] += F + b
		sys.Up[L] -= b
		sys.Diag[R] += b
		sys.Low[R] -= F + b
	}

	// sources
	if o.s1 != nil {
		for i := 0; i < n; i++ {
			sys.Diag[i] -= o.bufS1[i] * o.grid.Vol[i]
		}
	}
	if o.s0 != nil {
		for i := 0; i < n; i++ {
			sys.Rhs[i] += o.bufS0[i] * o.grid.Vol[i]
		}
	}

	// boundary conditions
	var haveLeft, haveRight bool
	for _, bc := range bcs {
		side := bc.BcSide()
		if side == mesh.Left {
			if haveLeft {
				err = chk.Err("equation for %q: more than one boundary condition on the left face", o.fld.Name)
				return
			}
			haveLeft = true
		} else {
			if haveRight {
				err = chk.Err("equation for %q: more than one boundary condition on the right face", o.fld.Name)
				return
			}
			haveRight = true
		}
		switch b := bc.(type) {
		case *FixedValue:
			o.applyFixedValue(side, b.Value.F(t, nil))
		case *FixedFlux:
			sys.Rhs[o.grid.BoundaryCell(side)] += b.Value.F(t, nil)
		default:
			err = chk.Err("equation for %q: unknown boundary condition type %T", o.fld.Name, bc)
			return
		}
	}

	// residual of the incoming state: r = b - A・u
	sys.MulVec(o.fld.V, o.res.Cells)
	o.res.Max = 0
	for i := 0; i < n; i++ {
		o.res.Cells[i] = sys.Rhs[i] - o.res.Cells[i]
		if a := math.Abs(o.res.Cells[i]); a > o.res.Max {
			o.res.Max = a
		}
	}

	// solve and update the field in place
	if err = o.solver.Solve(sys, o.fld.V); err != nil {
		err = chk.Err("equation for %q: %v", o.fld.Name, err)
		return
	}
	res = o.res
	return
}

// applyFixedValue folds a Dirichlet value into the boundary cell's row. The
// boundary face behaves like an interior face against a virtual cell sitting
// on the face itself, so the diffusive conductance uses the half-cell
// distance and the convective part upwinds between the boundary value and
// the cell.
func (o *Equation) applyFixedValue(side mesh.Side, ub float64) {
	f := o.grid.BoundaryFace(side)
	c := o.grid.BoundaryCell(side)
	var D, F float64
	if o.gamma != nil {
		D = o.bufGam[f] / o.grid.Dist[f]
	}
	if o.vel != nil {
		F = o.bufVel[f]
	}
	if side == mesh.Left {
		// influx J = F・ub + b・(ub - u0)
		b := o.scheme.faceCoeff(D, F)
		o.sys.Diag[c] += b
		o.sys.Rhs[c] += (F + b) * ub
		return
	}
	// outflux J = F・un + b・(un - ub)
	b := o.scheme.faceCoeff(D, F)
	o.sys.Diag[c] += F + b
	o.sys.Rhs[c] += b * ub
}
