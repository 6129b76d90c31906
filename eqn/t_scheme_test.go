// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_scheme01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme01. weighting functions")

	// every scheme reduces to plain diffusion at P = 0
	for name, s := range schemeNames {
		chk.Scalar(tst, "A(0) "+name, 1e-15, s.Weight(0), 1.0)
	}

	// table values at |P| = 2
	chk.Scalar(tst, "central", 1e-15, Central.Weight(2), 0.0)
	chk.Scalar(tst, "upwind", 1e-15, Upwind.Weight(2), 1.0)
	chk.Scalar(tst, "hybrid", 1e-15, Hybrid.Weight(2), 0.0)
	chk.Scalar(tst, "power", 1e-15, PowerLaw.Weight(2), 0.32768)
	chk.Scalar(tst, "exponential", 1e-15, Exponential.Weight(2), 2.0/(math.Exp(2.0)-1.0))

	// power law clamps at |P| = 10; hybrid clamps at |P| = 2
	chk.Scalar(tst, "power cutoff", 1e-17, PowerLaw.Weight(10), 0.0)
	chk.Scalar(tst, "power beyond", 1e-17, PowerLaw.Weight(12), 0.0)
	chk.Scalar(tst, "hybrid beyond", 1e-17, Hybrid.Weight(7), 0.0)

	// central is the only one allowed to go negative
	chk.Scalar(tst, "central beyond", 1e-15, Central.Weight(4), -1.0)
}

func Test_scheme02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme02. names")

	for _, name := range []string{"central", "upwind", "hybrid", "power", "exponential"} {
		s, err := SchemeByName(name)
		if err != nil {
			tst.Errorf("SchemeByName(%s) failed: %v\n", name, err)
			return
		}
		chk.String(tst, s.String(), name)
	}
	if _, err := SchemeByName("quick"); err == nil {
		tst.Errorf("expected error for unknown scheme name\n")
		return
	}
}

func Test_scheme03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme03. face coefficient limits")

	// no diffusion: pure upwinding regardless of scheme
	chk.Scalar(tst, "D=0 F>0", 1e-15, PowerLaw.faceCoeff(0, 3.0), 0.0)
	chk.Scalar(tst, "D=0 F<0", 1e-15, PowerLaw.faceCoeff(0, -3.0), 3.0)

	// no convection: plain diffusive conductance
	chk.Scalar(tst, "F=0", 1e-15, Exponential.faceCoeff(1.7, 0), 1.7)

	// the exponential coefficient is the exact two-point flux weight
	D, F := 0.9, 2.1
	P := F / D
	chk.Scalar(tst, "exact b, F>0", 1e-14, Exponential.faceCoeff(D, F), F/(math.Exp(P)-1.0))
	chk.Scalar(tst, "exact b, F<0", 1e-14, Exponential.faceCoeff(D, -F), F*math.Exp(P)/(math.Exp(P)-1.0))
}
