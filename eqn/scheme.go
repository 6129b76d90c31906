// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Scheme selects the face interpolation used by convection terms. Each
// scheme is defined by its weighting function A(|P|) of the face Péclet
// number P = F/D (Patankar's classic family):
//
//    Central      1 - |P|/2
//    Upwind       1
//    Hybrid       max(0, 1 - |P|/2)
//    PowerLaw     max(0, (1 - |P|/10)⁵)
//    Exponential  |P| / (exp(|P|) - 1)
//
// A pure diffusion face is the F = 0 member of the same family, since
// A(0) = 1 for every scheme.
type Scheme int

const (
	Central Scheme = iota
	Upwind
	Hybrid
	PowerLaw
	Exponential
)

// schemeNames maps input-file names to schemes
var schemeNames = map[string]Scheme{
	"central":     Central,
	"upwind":      Upwind,
	"hybrid":      Hybrid,
	"power":       PowerLaw,
	"exponential": Exponential,
}

// SchemeByName returns the scheme with the given input-file name
func SchemeByName(name string) (s Scheme, err error) {
	s, ok := schemeNames[name]
	if !ok {
		err = chk.Err("cannot find convection scheme named %q", name)
	}
	return
}

// String returns the input-file name of the scheme
func (o Scheme) String() string {
	for name, s := range schemeNames {
		if s == o {
			return name
		}
	}
	return "unknown"
}

// Weight computes A(|P|)
func (o Scheme) Weight(absP float64) float64 {
	switch o {
	case Central:
		return 1.0 - absP/2.0
	case Upwind:
		return 1.0
	case Hybrid:
		return math.Max(0, 1.0-absP/2.0)
	case PowerLaw:
		return math.Max(0, math.Pow(1.0-absP/10.0, 5.0))
	case Exponential:
		if absP < 1e-10 {
			return 1.0 - absP/2.0 // series limit; avoids 0/0
		}
		return absP / (math.Exp(absP) - 1.0)
	}
	return 1.0
}

// faceCoeff computes the scheme-weighted face coefficient
//
//    b = D・A(|P|) + max(-F, 0)
//
// entering the face flux J = F・uL + b・(uL - uR). A face without diffusion
// degenerates to pure upwinding, the only consistent weighting when P → ∞.
func (o Scheme) faceCoeff(D, F float64) float64 {
	if D == 0 {
		return math.Max(-F, 0)
	}
	return D*o.Weight(math.Abs(F/D)) + math.Max(-F, 0)
}
