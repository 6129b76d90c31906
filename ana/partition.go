// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// TwoPhasePartition handles the equilibrium of substitutional components
// between the two phases of the electrochemical phase-field model. At
// equilibrium the reduced chemical potential
//
//    μj = ln(xj/xn) + P(ξ)・Δμ°j + G(ξ)・ΔWj
//
// is uniform. With ξ = 1 in one phase and ξ = 0 in the other, where
// P(1) = 1, P(0) = 0 and G vanishes at both, the end-member mole fractions
// obey
//
//    ln(xjR/xnR) - ln(xjL/xnL) = Δμ°j
//
// which this type solves in both directions: standard potentials from a
// pair of end states, or the right-phase state from the potentials.
type TwoPhasePartition struct {
	Xleft  []float64 // left-phase fractions of the substitutional components
	XnLeft float64   // left-phase solvent fraction
}

// NewTwoPhasePartition creates a partition handler from the left-phase
// fractions of the substitutional components. The solvent takes up the rest.
func NewTwoPhasePartition(xleft []float64) (o *TwoPhasePartition, err error) {
	sum := 0.0
	for _, x := range xleft {
		if x <= 0 {
			return nil, chk.Err("left-phase fraction must be positive. %v is invalid", x)
		}
		sum += x
	}
	if sum >= 1 {
		return nil, chk.Err("left-phase fractions must sum to less than one. got %v", sum)
	}
	o = new(TwoPhasePartition)
	o.Xleft = make([]float64, len(xleft))
	copy(o.Xleft, xleft)
	o.XnLeft = 1.0 - sum
	return
}

// Potentials computes the standard potential differences Δμ°j that place the
// right-phase equilibrium at the given fractions xright
func (o *TwoPhasePartition) Potentials(xright []float64) (dmu []float64, err error) {
	if len(xright) != len(o.Xleft) {
		return nil, chk.Err("need %d right-phase fractions. got %d", len(o.Xleft), len(xright))
	}
	sum := 0.0
	for _, x := range xright {
		if x <= 0 {
			return nil, chk.Err("right-phase fraction must be positive. %v is invalid", x)
		}
		sum += x
	}
	if sum >= 1 {
		return nil, chk.Err("right-phase fractions must sum to less than one. got %v", sum)
	}
	xn := 1.0 - sum
	dmu = make([]float64, len(xright))
	for j, x := range xright {
		dmu[j] = math.Log(x/xn) - math.Log(o.Xleft[j]/o.XnLeft)
	}
	return
}

// Right computes the right-phase equilibrium fractions for the given standard
// potential differences. The solvent fraction comes out as xnRight.
func (o *TwoPhasePartition) Right(dmu []float64) (xright []float64, xnRight float64) {
	sum := 0.0
	ratios := make([]float64, len(dmu))
	for j, d := range dmu {
		ratios[j] = o.Xleft[j] / o.XnLeft * math.Exp(d)
		sum += ratios[j]
	}
	xnRight = 1.0 / (1.0 + sum)
	xright = make([]float64, len(dmu))
	for j, r := range ratios {
		xright[j] = r * xnRight
	}
	return
}

// SolventPotential computes the solvent standard potential μ°n that makes the
// two-phase state stationary. The solvent then satisfies its own partition
// relation, and each interstitial sublattice contributes the partition of its
// vacancies:
//
//    μ°n = ln(xnR/xnL) + Σi ln[(1+xiL)/(1+xiR)]
//
// With this choice the phase driving force ∫ P'(ξ)・H dξ vanishes along the
// quasi-static interface profile, so neither phase grows at the other's
// expense. interLeft and interRight list the interstitial fractions and may
// be empty.
func (o *TwoPhasePartition) SolventPotential(xright, interLeft, interRight []float64) (mun float64, err error) {
	if len(xright) != len(o.Xleft) {
		return 0, chk.Err("need %d right-phase fractions. got %d", len(o.Xleft), len(xright))
	}
	if len(interLeft) != len(interRight) {
		return 0, chk.Err("need as many left as right interstitial fractions. got %d and %d", len(interLeft), len(interRight))
	}
	sum := 0.0
	for _, x := range xright {
		sum += x
	}
	xnRight := 1.0 - sum
	if xnRight <= 0 {
		return 0, chk.Err("right-phase fractions must sum to less than one. got %v", sum)
	}
	mun = math.Log(xnRight / o.XnLeft)
	for i := range interLeft {
		if interLeft[i] < 0 || interRight[i] < 0 {
			return 0, chk.Err("interstitial fractions cannot be negative")
		}
		mun += math.Log((1.0 + interLeft[i]) / (1.0 + interRight[i]))
	}
	return
}

// InterstitialPotential computes the standard potential that places an
// interstitial component at equilibrium between the given end-member
// fractions. Interstitials occupy their own sublattice, so their potential
// carries the 1+x saturation:
//
//    μj = ln(xj/(1+xj)) + P(ξ)・μ°j + G(ξ)・Wj
//
// giving μ°j = ln[(xR/(1+xR))/(xL/(1+xL))].
func InterstitialPotential(xLeft, xRight float64) (mu float64, err error) {
	if xLeft <= 0 || xRight <= 0 {
		return 0, chk.Err("interstitial fractions must be positive. got %v and %v", xLeft, xRight)
	}
	return math.Log((xRight / (1.0 + xRight)) / (xLeft / (1.0 + xLeft))), nil
}
