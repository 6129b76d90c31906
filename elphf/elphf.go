// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elphf implements a one-dimensional electrochemical phase-field
// model: a phase field ξ separating two phases, mixture components moving by
// diffusion, counter-diffusion, phase transformation and electromigration,
// and an electrostatic potential φ obeying Poisson's equation. The model
// couples one equation per unknown and is meant to be driven by the sweep
// loop, which solves the equations in the order phase, potential, components.
//
// Reduced chemical potential of a substitutional component j with solvent n:
//
//    μj = ln(xj/xn) + P(ξ)・Δμ°j + G(ξ)・ΔWj + zj・φ
//
// Standard potentials Δμ° and barriers ΔW are relative to the solvent.
package elphf

// P is the smoothed interpolation polynomial switching a material property
// between its two phase values. P(0) = 0, P(1) = 1 and P' vanishes at both.
func P(xi float64) float64 {
	return xi * xi * xi * (10.0 - 15.0*xi + 6.0*xi*xi)
}

// PPrime is the derivative of P
func PPrime(xi float64) float64 {
	return 30.0 * xi * xi * (1.0 - xi) * (1.0 - xi)
}

// G is the double-well potential with minima at ξ = 0 and ξ = 1
func G(xi float64) float64 {
	return xi * xi * (1.0 - xi) * (1.0 - xi)
}

// GPrime is the derivative of G
func GPrime(xi float64) float64 {
	return 2.0 * xi * (1.0 - xi) * (1.0 - 2.0*xi)
}
