// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep runs the coupled solve loop: outer time steps, each with a
// round of inner Picard iterations over a fixed, ordered set of fields.
// Within a sweep the fields are solved strictly in declaration order, so
// later equations see the just-updated values of earlier ones
// (Gauss-Seidel coupling); the order must therefore never be permuted.
package sweep

import (
	"context"
	"math"

	"github.com/Maxwellfire/fipy/eqn"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Field couples one unknown with its equation and boundary conditions. The
// same conditions are forwarded to every solve of every sweep.
type Field struct {
	Eqn *eqn.Equation // equation bound to the unknown
	Bcs []eqn.BCond   // boundary conditions (may be nil)
}

// Control holds the time-stepping and iteration parameters
type Control struct {
	Tf       float64  // final time
	Dt       float64  // time-step size
	DtFcn    fun.Func // variable time step (overrides Dt if non-nil)
	DtOut    float64  // output interval (0: only initial and final states)
	NmaxIt   int      // number of inner sweeps per outer step
	SweepTol float64  // stop sweeping early below this max residual (0: always run NmaxIt)
	ShowR    bool     // print residual table during sweeps
	Verbose  bool     // print progress line per step
}

// StepInfo records the residual history of one outer step
type StepInfo struct {
	T      float64   // time at the end of the step
	Sweeps int       // inner iterations used
	Resid  []float64 // max residual (over fields) of each sweep
}

// Coupled is the outer time loop over an ordered set of coupled fields.
//
// Per outer step it snapshots old values of all transient fields, then runs
// up to NmaxIt sweeps; each sweep solves every field once, in order, and
// tracks the maximum residual across fields. Time advances only after the
// sweeps of a step complete. The loop is single-threaded by construction:
// every solve runs to completion before the next field is touched, and
// cancellation is honoured only between sweeps so that the fields always
// hold the consistent state of the last completed sweep.
type Coupled struct {

	// input
	Fields []*Field // ordered; order defines the Gauss-Seidel pass
	Ctl    Control  // loop parameters

	// output hook, called with the initial state (idx 0), then whenever t
	// crosses a DtOut boundary, then with the final state
	OutFcn func(idx int, t float64) error

	// results
	History []StepInfo // one entry per completed outer step

	// state
	t       float64
	lastRes []float64 // [nfields] residual of each field's last solve
}

// NewCoupled validates the field set and creates a loop
func NewCoupled(fields []*Field, ctl Control) (o *Coupled, err error) {

	// configuration checks
	if len(fields) < 1 {
		err = chk.Err("coupled loop needs at least one field")
		return
	}
	grid := fields[0].Eqn.Field().Grid
	for _, f := range fields {
		if f == nil || f.Eqn == nil {
			err = chk.Err("coupled loop: every field needs an equation")
			return
		}
		if f.Eqn.Field().Grid != grid {
			err = chk.Err("coupled loop: field %q lives on a different grid", f.Eqn.Field().Name)
			return
		}
	}
	if ctl.Tf <= 0 {
		err = chk.Err("coupled loop needs tf > 0; got %g", ctl.Tf)
		return
	}
	if ctl.Dt <= 0 && ctl.DtFcn == nil {
		err = chk.Err("coupled loop needs dt > 0 or a dt function; got dt = %g", ctl.Dt)
		return
	}
	if ctl.NmaxIt < 1 {
		ctl.NmaxIt = 1
	}

	o = &Coupled{
		Fields:  fields,
		Ctl:     ctl,
		lastRes: make([]float64, len(fields)),
	}
	return
}

// Time returns the current simulation time
func (o *Coupled) Time() float64 {
	return o.t
}

// LastResiduals returns the residual max-norm of each field's latest solve,
// indexed like Fields
func (o *Coupled) LastResiduals() []float64 {
	return o.lastRes
}

// Run executes the loop until tf. On a solve failure the run aborts
// immediately with the failing field and its last residual in the error; on
// cancellation it returns ctx.Err() between sweeps, never mid-solve.
func (o *Coupled) Run(ctx context.Context) (err error) {

	// initial output
	outIdx := 0
	lastOutT := math.Inf(-1)
	emit := func() error {
		if o.OutFcn == nil {
			return nil
		}
		if o.t == lastOutT {
			return nil
		}
		lastOutT = o.t
		e := o.OutFcn(outIdx, o.t)
		outIdx++
		return e
	}
	if err = emit(); err != nil {
		return chk.Err("output failed @ t=%g:\n%v", o.t, err)
	}
	nextOut := o.t + o.Ctl.DtOut

	// residual table header
	if o.Ctl.ShowR {
		io.Pf("\n%13s%6s%23s\n", "t", "it", "resid")
	}

	// time loop
	tol := 1e-10 * o.Ctl.Tf
	for o.t < o.Ctl.Tf-tol {

		// time step
		dt := o.Ctl.Dt
		if o.Ctl.DtFcn != nil {
			dt = o.Ctl.DtFcn.F(o.t, nil)
		}
		if dt <= 0 {
			return chk.Err("time-step function returned dt = %g @ t = %g", dt, o.t)
		}
		tNew := o.t + dt

		// snapshot old values of all transient fields
		for _, f := range o.Fields {
			if f.Eqn.Field().HasOld {
				f.Eqn.Field().UpdateOld()
			}
		}

		// inner sweeps
		nit := 0
		resids := make([]float64, 0, o.Ctl.NmaxIt)
		for it := 0; it < o.Ctl.NmaxIt; it++ {

			// cancellation is allowed here only: between sweeps the fields
			// are in a consistent state
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// one Gauss-Seidel pass over the fields, in order
			maxRes := 0.0
			for k, f := range o.Fields {
				res, e := f.Eqn.Solve(tNew, dt, f.Bcs)
				if e != nil {
					return chk.Err("solve failure @ t=%g, sweep %d (last residual = %g):\n%v",
						tNew, it+1, f.Eqn.LastResidual().Max, e)
				}
				o.lastRes[k] = res.Max
				if res.Max > maxRes {
					maxRes = res.Max
				}
			}
			nit++
			resids = append(resids, maxRes)
			if o.Ctl.ShowR {
				io.Pf("%13.6e%6d%23.15e\n", tNew, nit, maxRes)
			}
			if o.Ctl.SweepTol > 0 && maxRes < o.Ctl.SweepTol {
				break
			}
		}

		// advance time
		o.t = tNew
		o.History = append(o.History, StepInfo{T: o.t, Sweeps: nit, Resid: resids})
		if o.Ctl.Verbose && !o.Ctl.ShowR {
			io.PfWhite("%23.15e%6d%23.15e\r", o.t, nit, resids[nit-1])
		}

		// output
		if o.Ctl.DtOut > 0 && o.t >= nextOut-tol {
			if err = emit(); err != nil {
				return chk.Err("output failed @ t=%g:\n%v", o.t, err)
			}
			nextOut += o.Ctl.DtOut
		}
	}

	// final output
	if err = emit(); err != nil {
		return chk.Err("output failed @ t=%g:\n%v", o.t, err)
	}
	return
}
