// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elphf

import (
	"github.com/Maxwellfire/fipy/eqn"
	"github.com/Maxwellfire/fipy/field"
	"github.com/cpmech/gosl/chk"
)

// Kind distinguishes how a component occupies the mixture
type Kind int

const (

	// Substitutional components compete with the solvent for lattice sites;
	// their fractions and the solvent's sum to one
	Substitutional Kind = iota

	// Interstitial components occupy their own sites on top of the lattice
	Interstitial
)

// kindNames maps the input-file spelling to the kind
var kindNames = map[string]Kind{
	"substitutional": Substitutional,
	"interstitial":   Interstitial,
}

// KindByName returns the kind with the given name
func KindByName(name string) (k Kind, err error) {
	k, ok := kindNames[name]
	if !ok {
		err = chk.Err("component kind %q is not available", name)
	}
	return
}

// String returns the name of this kind
func (o Kind) String() string {
	for name, k := range kindNames {
		if k == o {
			return name
		}
	}
	return "unknown"
}

// Component is one member of the mixture: its physical constants together
// with the mole-fraction field and the transport equation bound to it
type Component struct {

	// constants
	Name              string  // component name
	Kind              Kind    // substitutional or interstitial
	Diffusivity       float64 // diffusivity D
	Valence           float64 // charge z
	StandardPotential float64 // standard potential difference Δμ° (relative to solvent)
	Barrier           float64 // barrier height difference ΔW (relative to solvent)

	// bindings
	X   *field.CellField // mole fraction field
	Eqn *eqn.Equation    // transport equation solving X
	Bcs []eqn.BCond      // boundary conditions (nil: zero total flux)
}
