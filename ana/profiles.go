// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana provides closed-form solutions used to verify the
// finite-volume machinery: steady profiles of the model equations and the
// equilibrium partition of the two-phase electrochemical model.
package ana

import (
	"math"
)

// LinearProfile is the steady state of pure diffusion between two fixed
// boundary values over a domain of length L
type LinearProfile struct {
	Ua float64 // value at x = 0
	Ub float64 // value at x = L
	L  float64 // domain length
}

// Calc computes the profile at x
func (o LinearProfile) Calc(x float64) float64 {
	return o.Ua + (o.Ub-o.Ua)*x/o.L
}

// PecletProfile is the steady state of constant-coefficient
// convection-diffusion with fixed values at both ends:
//
//    u(x) = ua + (ub - ua)・(exp(Pe・x/L) - 1)/(exp(Pe) - 1)      Pe = v・L/Γ
//
// For |Pe| → 0 the profile degenerates to the linear one.
type PecletProfile struct {
	Ua    float64 // value at x = 0
	Ub    float64 // value at x = L
	V     float64 // convection velocity
	Gamma float64 // diffusion coefficient
	L     float64 // domain length
}

// Calc computes the profile at x
func (o PecletProfile) Calc(x float64) float64 {
	pe := o.V * o.L / o.Gamma
	if math.Abs(pe) < 1e-12 {
		return o.Ua + (o.Ub-o.Ua)*x/o.L
	}
	return o.Ua + (o.Ub-o.Ua)*(math.Exp(pe*x/o.L)-1.0)/(math.Exp(pe)-1.0)
}
