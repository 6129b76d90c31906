// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/Maxwellfire/fipy/mesh"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/fipy
}

// GridData holds the description of the one-dimensional grid
type GridData struct {
	Nx      int     `json:"nx"`      // number of cells
	Dx      float64 `json:"dx"`      // cell size (uniform) or scale (sech); ignored if L is given
	L       float64 `json:"l"`       // domain length; Dx = L/Nx when given
	Spacing string  `json:"spacing"` // spacing kind: "uniform" or "sech"
	SechLo  float64 `json:"sechlo"`  // sech spacing: first argument; e.g. -10
	SechHi  float64 `json:"sechhi"`  // sech spacing: last argument; e.g. 10
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name string `json:"name"` // "tridiag" or "lu"
}

// SolverData holds data controlling the sweeps of the coupled solution loop
type SolverData struct {
	NmaxIt   int     `json:"nmaxit"`   // number of sweeps per time step
	SweepTol float64 `json:"sweeptol"` // sweep tolerance; 0 means run all NmaxIt sweeps
	ShowR    bool    `json:"showr"`    // show residuals during sweeps
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step size (if constant)
	DtOut float64 `json:"dtout"` // time step size for output
	DtFcn string  `json:"dtfcn"` // time step size (function name)

	// derived
	DtFunc fun.T // time step function
}

// OutputData holds output options
type OutputData struct {
	Tsv     bool `json:"tsv"`     // write profiles as tab-separated values
	Ascii   bool `json:"ascii"`   // print profiles as ASCII graphs
	Png     bool `json:"png"`     // plot profiles to PNG files
	Summary bool `json:"summary"` // write a JSON summary with the residual history
}

// PhaseData holds data for the phase field
type PhaseData struct {
	Mobility float64 `json:"mobility"` // phase mobility Mξ
	Kappa    float64 `json:"kappa"`    // gradient energy coefficient κ
	StepAt   float64 `json:"stepat"`   // position of the initial step; 0 means the domain centre
}

// SolventData holds data for the solvent of the mixture. The solvent is not
// solved for: its fraction is one minus the substitutional fractions. Its
// standard potential and barrier enter the phase-equation enthalpy sums as
// constants; the components' potentials and barriers are relative to them.
type SolventData struct {
	Name              string  `json:"name"`              // solvent name; e.g. "Cn"
	StandardPotential float64 `json:"standardpotential"` // standard potential μ°n
	Barrier           float64 `json:"barrier"`           // barrier height Wn
}

// PotentialData holds data for the electrostatic potential
type PotentialData struct {
	Dielectric   float64 `json:"dielectric"`   // permittivity ε
	DielectricXi float64 `json:"dielectricxi"` // dε/dξ; nonzero adds the electrostriction source to the phase equation
}

// ComponentData holds data for one component of the mixture
type ComponentData struct {
	Name              string  `json:"name"`              // component name; e.g. "Cu"
	Kind              string  `json:"kind"`              // "substitutional" (default) or "interstitial"
	Diffusivity       float64 `json:"diffusivity"`       // diffusivity D
	Valence           float64 `json:"valence"`           // charge z
	StandardPotential float64 `json:"standardpotential"` // standard potential difference Δμ°
	Barrier           float64 `json:"barrier"`           // barrier height difference ΔW
	Left              float64 `json:"left"`              // initial mole fraction in the left phase
	Right             float64 `json:"right"`             // initial mole fraction in the right phase
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data       Data             `json:"data"`       // stores global simulation data
	Functions  FuncsData        `json:"functions"`  // stores user-defined functions
	Grid       GridData         `json:"grid"`       // grid description
	LinSol     LinSolData       `json:"linsol"`     // linear solver data
	Solver     SolverData       `json:"solver"`     // sweep control data
	Control    TimeControl      `json:"control"`    // time control
	Output     OutputData       `json:"output"`     // output options
	Phase      *PhaseData       `json:"phase"`      // phase field data; nil means no phase field
	Solvent    *SolventData     `json:"solvent"`    // solvent data; defaults to a zero record
	Potential  *PotentialData   `json:"potential"`  // electrostatic data; nil means no potential
	Components []*ComponentData `json:"components"` // mixture components

	// derived
	DirOut string       // directory to save results
	Key    string       // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	Msh    *mesh.Grid1D // the grid
}

// ReadSim reads all simulation data from a .sim JSON or YAML file. YAML is
// selected by the .yml or .yaml extension; everything else parses as JSON.
func ReadSim(simfilepath, alias string, createDirOut bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.LinSol.SetDefault()
	o.Solver.SetDefault()

	// decode
	switch filepath.Ext(simfilepath) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(b, &o)
	default:
		err = json.Unmarshal(b, &o)
	}
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q\n%v", simfilepath, err)
	}

	// filename key
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/fipy/" + fnkey
	}
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// build grid
	o.Msh, err = o.Grid.Build()
	if err != nil {
		chk.Panic("ReadSim: cannot build grid:\n%v", err)
	}

	// fix Tf
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}

	// fix Dt
	if o.Control.DtFcn == "" {
		if o.Control.Dt < 1e-14 {
			o.Control.Dt = 1
		}
		o.Control.DtFunc = &fun.Cte{C: o.Control.Dt}
	} else {
		o.Control.DtFunc, err = o.Functions.Get(o.Control.DtFcn)
		if err != nil {
			chk.Panic("%v", err)
		}
		o.Control.Dt = o.Control.DtFunc.F(0, nil)
	}

	// fix DtOut
	if o.Control.DtOut < 1e-14 {
		o.Control.DtOut = o.Control.Dt
	}
	if o.Control.DtOut < o.Control.Dt {
		o.Control.DtOut = o.Control.Dt
	}

	// check solver data
	if o.Solver.NmaxIt < 1 {
		chk.Panic("ReadSim: number of sweeps (nmaxit) must be at least 1. %d is invalid", o.Solver.NmaxIt)
	}
	if o.Solver.SweepTol < 0 {
		chk.Panic("ReadSim: sweep tolerance cannot be negative. %g is invalid", o.Solver.SweepTol)
	}

	// check electrochemistry data
	o.checkElectrochem()

	// results
	return &o
}

// Build constructs the grid from its description
func (o GridData) Build() (g *mesh.Grid1D, err error) {
	if o.Nx < 2 {
		return nil, chk.Err("grid must have at least two cells. nx=%d is invalid", o.Nx)
	}
	dx := o.Dx
	if o.L > 0 {
		dx = o.L / float64(o.Nx)
	}
	if dx <= 0 {
		return nil, chk.Err("grid needs a positive cell size: give dx or l")
	}
	switch o.Spacing {
	case "", "uniform":
		return mesh.NewUniformGrid1D(o.Nx, dx)
	case "sech":
		lo, hi := o.SechLo, o.SechHi
		if lo == 0 && hi == 0 {
			lo, hi = -10, 10
		}
		return mesh.NewGrid1D(mesh.SechSpacing(o.Nx, dx, lo, hi))
	}
	return nil, chk.Err("spacing kind %q is not available", o.Spacing)
}

// checkElectrochem validates the phase/potential/components sections
func (o *Simulation) checkElectrochem() {
	if len(o.Components) == 0 {
		if o.Phase != nil || o.Solvent != nil || o.Potential != nil {
			chk.Panic("ReadSim: phase, solvent, and potential sections need at least one component")
		}
		return
	}
	if o.Phase == nil {
		chk.Panic("ReadSim: components need a phase section")
	}
	if o.Phase.Mobility <= 0 {
		chk.Panic("ReadSim: phase mobility must be positive. %g is invalid", o.Phase.Mobility)
	}
	if o.Phase.Kappa < 0 {
		chk.Panic("ReadSim: gradient energy coefficient cannot be negative. %g is invalid", o.Phase.Kappa)
	}
	if o.Solvent == nil {
		o.Solvent = &SolventData{}
	}
	if o.Solvent.Name == "" {
		o.Solvent.Name = "solvent"
	}
	if o.Solvent.Barrier < 0 {
		chk.Panic("ReadSim: solvent barrier cannot be negative. %g is invalid", o.Solvent.Barrier)
	}
	if o.Potential != nil {
		if o.Potential.Dielectric <= 0 {
			chk.Panic("ReadSim: dielectric constant must be positive. %g is invalid", o.Potential.Dielectric)
		}
	}
	seen := make(map[string]bool)
	sumL, sumR := 0.0, 0.0
	for _, c := range o.Components {
		if c.Name == "" {
			chk.Panic("ReadSim: all components must be named")
		}
		if seen[c.Name] {
			chk.Panic("ReadSim: component name %q is repeated", c.Name)
		}
		seen[c.Name] = true
		switch c.Kind {
		case "":
			c.Kind = "substitutional"
		case "substitutional", "interstitial":
		default:
			chk.Panic("ReadSim: component kind %q is not available", c.Kind)
		}
		if c.Diffusivity < 0 {
			chk.Panic("ReadSim: diffusivity of %q cannot be negative. %g is invalid", c.Name, c.Diffusivity)
		}
		if c.Left < 0 || c.Right < 0 {
			chk.Panic("ReadSim: initial fractions of %q cannot be negative", c.Name)
		}
		if c.Kind == "substitutional" {
			sumL += c.Left
			sumR += c.Right
		}
	}
	if sumL >= 1 || sumR >= 1 {
		chk.Panic("ReadSim: substitutional fractions must leave room for the solvent. sums are %g (left) and %g (right)", sumL, sumR)
	}
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetComponent returns the component data by giving its name
//  Note: returns nil if not found
func (o *Simulation) GetComponent(name string) *ComponentData {
	for _, c := range o.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "tridiag"
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.NmaxIt = 1
	o.SweepTol = 0
}
