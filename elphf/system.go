// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elphf

import (
	"github.com/Maxwellfire/fipy/eqn"
	"github.com/Maxwellfire/fipy/field"
	"github.com/Maxwellfire/fipy/inp"
	"github.com/Maxwellfire/fipy/lin"
	"github.com/Maxwellfire/fipy/mesh"
	"github.com/Maxwellfire/fipy/sweep"
	"github.com/cpmech/gosl/chk"
)

// System holds the fields and equations of one electrochemical phase-field
// problem. The equations are coupled through their coefficient closures:
// each closure reads the current state of the other fields, so solving the
// fields in order propagates fresh values within a sweep.
//
//   Phase:      (1/Mξ)・∂ξ/∂t = ∇・(κ ∇ξ) + S0 + S1・ξ
//   Potential:  ∇・(ε ∇φ) + Σj zj・xj = 0          with φ = 0 at the left face
//   Component:  ∂xj/∂t = ∇・(Dj ∇xj) - ∇・(uj xj)
//
// The phase source comes from the linearised free-energy slope
//
//   mξ  = -(30・ξ(1-ξ)・H + 4・(1/2-ξ)・W)       H = μ°n + Σj xj・Δμ°j
//                                                W = Wn + Σj xj・ΔWj
//   S1  = min(0, dmξ/dξ・ξ(1-ξ) + mξ・(1-2ξ))
//   S0  = mξ・ξ(1-ξ) - ξ・S1
//
// The solvent enters both sums as a constant (μ°n, Wn); the components'
// standard potentials and barriers are differences against it.
//
// The component velocity combines counter-diffusion, phase transformation
// and electromigration (substitutional shown; interstitials drop the
// counter-diffusion and use the factor 1+xf):
//
//   uj = -Dj・[∇Σ(k≠j)xk + xn,f・((Δμ°j・P'(ξf) + ΔWj・G'(ξf))・∇ξ + zj・∇φ)] / (1 - Σ(k≠j)xk,f)
type System struct {

	// unknowns
	Grid       *mesh.Grid1D     // geometry
	Phase      *field.CellField // phase field ξ
	Pot        *field.CellField // electrostatic potential φ; nil when disabled
	Components []*Component     // mixture components, in solve order

	// equations
	PhaseEqn *eqn.Equation // phase equation
	PotEqn   *eqn.Equation // Poisson equation; nil when disabled
	PotBcs   []eqn.BCond   // ground condition for the potential

	// parameters
	Mobility     float64 // phase mobility Mξ
	Kappa        float64 // gradient energy coefficient κ
	SolventName  string  // solvent name, for reporting
	SolventMu0   float64 // solvent standard potential μ°n
	SolventW     float64 // solvent barrier height Wn
	Dielectric   float64 // permittivity ε
	DielectricXi float64 // dε/dξ for the electrostriction source

	// scratchpads. refreshed @ each assembly
	solvent *field.CellField // solvent fraction 1 - Σ substitutionals
	xiFace  *field.FaceField // harmonic face value of ξ
	xiGrad  *field.FaceField // face gradient of ξ
	phiGrad *field.FaceField // face gradient of φ
	xnFace  *field.FaceField // harmonic face value of the solvent fraction
	tmpFace *field.FaceField // per-component work space
	sumFace []float64        // Σ(k≠j) xk at faces
	sumGrad []float64        // Σ(k≠j) ∇xk at faces
}

// NewSystem builds fields and equations from the simulation data. The
// simulation must carry a phase section and at least one component; the
// potential section is optional.
func NewSystem(sim *inp.Simulation) (o *System, err error) {

	// configuration checks
	if sim.Msh == nil {
		return nil, chk.Err("system needs a grid; read the simulation file first")
	}
	if sim.Phase == nil {
		return nil, chk.Err("system needs a phase section")
	}
	if len(sim.Components) < 1 {
		return nil, chk.Err("system needs at least one component")
	}

	o = new(System)
	o.Grid = sim.Msh
	o.Mobility = sim.Phase.Mobility
	o.Kappa = sim.Phase.Kappa
	o.SolventName = "solvent"
	if sim.Solvent != nil {
		if sim.Solvent.Name != "" {
			o.SolventName = sim.Solvent.Name
		}
		o.SolventMu0 = sim.Solvent.StandardPotential
		o.SolventW = sim.Solvent.Barrier
	}
	if sim.Potential != nil {
		o.Dielectric = sim.Potential.Dielectric
		o.DielectricXi = sim.Potential.DielectricXi
	}

	// initial profiles: ξ = 1 in the left phase, 0 in the right; components
	// step between their phase fractions at the same position
	xstep := sim.Phase.StepAt
	if xstep == 0 {
		xstep = o.Grid.Length / 2.0
	}
	o.Phase = field.NewCellField("phase", o.Grid, 0, true)
	o.Phase.SetStep(xstep, 1, 0)
	if sim.Potential != nil {
		o.Pot = field.NewCellField("potential", o.Grid, 0, false)
	}
	for _, cd := range sim.Components {
		kindName := cd.Kind
		if kindName == "" {
			kindName = Substitutional.String()
		}
		kind, e := KindByName(kindName)
		if e != nil {
			return nil, e
		}
		c := &Component{
			Name:              cd.Name,
			Kind:              kind,
			Diffusivity:       cd.Diffusivity,
			Valence:           cd.Valence,
			StandardPotential: cd.StandardPotential,
			Barrier:           cd.Barrier,
		}
		c.X = field.NewCellField(cd.Name, o.Grid, 0, true)
		c.X.SetStep(xstep, cd.Left, cd.Right)
		o.Components = append(o.Components, c)
	}

	// scratchpads
	o.solvent = field.NewCellField(o.SolventName, o.Grid, 0, false)
	o.xiFace = field.NewFaceField(o.Grid)
	o.xiGrad = field.NewFaceField(o.Grid)
	o.phiGrad = field.NewFaceField(o.Grid)
	o.xnFace = field.NewFaceField(o.Grid)
	o.tmpFace = field.NewFaceField(o.Grid)
	o.sumFace = make([]float64, o.Grid.Ncells+1)
	o.sumGrad = make([]float64, o.Grid.Ncells+1)

	// phase equation
	o.PhaseEqn, err = eqn.New(o.Phase).
		Transient(eqn.CteCell(1.0 / o.Mobility)).
		Diffusion(eqn.CteFace(o.Kappa)).
		Source(o.phaseS0, o.phaseS1).
		Build()
	if err != nil {
		return nil, err
	}

	// Poisson equation
	if o.Pot != nil {
		o.PotEqn, err = eqn.New(o.Pot).
			Diffusion(eqn.CteFace(o.Dielectric)).
			Source(o.chargeDensity, nil).
			Build()
		if err != nil {
			return nil, err
		}
		o.PotBcs = []eqn.BCond{eqn.NewFixedValue(mesh.Left, 0)}
	}

	// component equations; the linear solver choice of the simulation file
	// applies to these, matching runs that pick LU for the solutes
	solverName := sim.LinSol.Name
	if solverName == "" {
		solverName = "tridiag"
	}
	for _, c := range o.Components {
		solver, e := lin.New(solverName)
		if e != nil {
			return nil, e
		}
		c.Eqn, err = eqn.New(c.X).
			Transient(eqn.CteCell(1)).
			Diffusion(eqn.CteFace(c.Diffusivity)).
			Convection(o.velocity(c), eqn.PowerLaw).
			Solver(solver).
			Build()
		if err != nil {
			return nil, err
		}
	}
	return
}

// Fields returns all solution fields in solve order, for reporting
func (o *System) Fields() (flds []*field.CellField) {
	flds = append(flds, o.Phase)
	if o.Pot != nil {
		flds = append(flds, o.Pot)
	}
	for _, c := range o.Components {
		flds = append(flds, c.X)
	}
	return
}

// SolventField refreshes the derived solvent fraction and returns it
func (o *System) SolventField() *field.CellField {
	o.Solvent(o.solvent.V)
	return o.solvent
}

// SweepFields returns the ordered field set for the coupled loop:
// phase, then potential, then the components
func (o *System) SweepFields() (fields []*sweep.Field) {
	fields = append(fields, &sweep.Field{Eqn: o.PhaseEqn})
	if o.PotEqn != nil {
		fields = append(fields, &sweep.Field{Eqn: o.PotEqn, Bcs: o.PotBcs})
	}
	for _, c := range o.Components {
		fields = append(fields, &sweep.Field{Eqn: c.Eqn, Bcs: c.Bcs})
	}
	return
}

// Coupled builds the time loop for this system from the simulation data
func (o *System) Coupled(sim *inp.Simulation) (*sweep.Coupled, error) {
	ctl := sweep.Control{
		Tf:       sim.Control.Tf,
		Dt:       sim.Control.Dt,
		DtFcn:    sim.Control.DtFunc,
		DtOut:    sim.Control.DtOut,
		NmaxIt:   sim.Solver.NmaxIt,
		SweepTol: sim.Solver.SweepTol,
		ShowR:    sim.Solver.ShowR,
	}
	return sweep.NewCoupled(o.SweepFields(), ctl)
}

// Solvent fills dst with the solvent fraction 1 - Σ substitutionals
func (o *System) Solvent(dst []float64) {
	for i := range dst {
		dst[i] = 1.0
	}
	for _, c := range o.Components {
		if c.Kind != Substitutional {
			continue
		}
		for i := range dst {
			dst[i] -= c.X.V[i]
		}
	}
}

// coefficient closures /////////////////////////////////////////////////////

// slope computes mξ and its ξ-derivative at cell i, holding the component
// fractions fixed
func (o *System) slope(i int) (mxi, dmdxi float64) {
	xi := o.Phase.V[i]
	h := o.SolventMu0
	w := o.SolventW
	for _, c := range o.Components {
		h += c.StandardPotential * c.X.V[i]
		w += c.Barrier * c.X.V[i]
	}
	mxi = -(30.0*xi*(1.0-xi)*h + 4.0*(0.5-xi)*w)
	dmdxi = 4.0*w - 30.0*(1.0-2.0*xi)*h
	return
}

// phaseS1 is the implicit part of the phase source: only the negative part
// of the linearisation is kept on the matrix for stability
func (o *System) phaseS1(dst []float64) {
	for i := range dst {
		xi := o.Phase.V[i]
		mxi, dmdxi := o.slope(i)
		s1 := dmdxi*xi*(1.0-xi) + mxi*(1.0-2.0*xi)
		if s1 > 0 {
			s1 = 0
		}
		dst[i] = s1
	}
}

// phaseS0 is the explicit part of the phase source, plus the
// electrostriction term when the permittivity depends on ξ
func (o *System) phaseS0(dst []float64) {
	for i := range dst {
		xi := o.Phase.V[i]
		mxi, dmdxi := o.slope(i)
		s1 := dmdxi*xi*(1.0-xi) + mxi*(1.0-2.0*xi)
		if s1 > 0 {
			s1 = 0
		}
		dst[i] = mxi*xi*(1.0-xi) - xi*s1
	}
	if o.DielectricXi != 0 && o.Pot != nil {
		for i := range dst {
			g := o.cellGrad(o.Pot, i)
			dst[i] -= 0.5 * o.DielectricXi * g * g
		}
	}
}

// chargeDensity is the source of the Poisson equation: Σj zj・xj
func (o *System) chargeDensity(dst []float64) {
	for i := range dst {
		q := 0.0
		for _, c := range o.Components {
			q += c.Valence * c.X.V[i]
		}
		dst[i] = q
	}
}

// velocity returns the convection closure of component c. Every evaluation
// refreshes the shared face scratchpads from the current fields.
func (o *System) velocity(c *Component) eqn.FaceCoeff {
	return func(dst []float64) {

		// shared face values
		o.xiFace.Harm(o.Phase)
		o.xiGrad.Grad(o.Phase)
		if o.Pot != nil {
			o.phiGrad.Grad(o.Pot)
		} else {
			o.phiGrad.Fill(0)
		}

		// interstitials ignore the lattice balance
		if c.Kind == Interstitial {
			o.tmpFace.Harm(c.X)
			for f := range dst {
				xf := o.xiFace.V[f]
				drive := (c.StandardPotential*PPrime(xf)+c.Barrier*GPrime(xf))*o.xiGrad.V[f] +
					c.Valence*o.phiGrad.V[f]
				dst[f] = -c.Diffusivity * (1.0 + o.tmpFace.V[f]) * drive
			}
			return
		}

		// solvent fraction at faces
		o.Solvent(o.solvent.V)
		o.xnFace.Harm(o.solvent)

		// other substitutionals at faces
		for f := range o.sumFace {
			o.sumFace[f] = 0
			o.sumGrad[f] = 0
		}
		for _, k := range o.Components {
			if k == c || k.Kind != Substitutional {
				continue
			}
			o.tmpFace.Harm(k.X)
			for f := range o.sumFace {
				o.sumFace[f] += o.tmpFace.V[f]
			}
			o.tmpFace.Grad(k.X)
			for f := range o.sumGrad {
				o.sumGrad[f] += o.tmpFace.V[f]
			}
		}

		for f := range dst {
			xf := o.xiFace.V[f]
			drive := (c.StandardPotential*PPrime(xf)+c.Barrier*GPrime(xf))*o.xiGrad.V[f] +
				c.Valence*o.phiGrad.V[f]
			dst[f] = -c.Diffusivity * (o.sumGrad[f] + o.xnFace.V[f]*drive) / (1.0 - o.sumFace[f])
		}
	}
}

// cellGrad is the cell-centred gradient of a field, one-sided at the ends
func (o *System) cellGrad(fld *field.CellField, i int) float64 {
	g := o.Grid
	switch i {
	case 0:
		return (fld.V[1] - fld.V[0]) / (g.X[1] - g.X[0])
	case g.Ncells - 1:
		return (fld.V[i] - fld.V[i-1]) / (g.X[i] - g.X[i-1])
	}
	return (fld.V[i+1] - fld.V[i-1]) / (g.X[i+1] - g.X[i-1])
}
