// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Fipy solves coupled phase-field / electrochemistry problems on 1D
// finite-volume grids. It reads a simulation file, builds the coupled
// system of equations and runs the segregated solution loop, writing
// profile and summary output along the way.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Maxwellfire/fipy/elphf"
	"github.com/Maxwellfire/fipy/inp"
	"github.com/Maxwellfire/fipy/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// VERSION of this tool
const VERSION = "1.0.0"

var (
	alias   string  // simulation alias to distinguish multiple runs
	verbose bool    // show messages
	showR   bool    // show residual table during sweeps
	dtOut   float64 // output interval override; 0 keeps the simulation file's
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			if verbose {
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:          "fipy",
		Short:        "finite volume phase-field solver",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run simfile",
		Short: "run the simulation defined in a .sim (JSON) or .yml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSim,
	}
	runCmd.Flags().StringVarP(&alias, "alias", "a", "", "alias to append to the simulation key")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "show messages")
	runCmd.Flags().BoolVarP(&showR, "showr", "r", false, "show residual table during sweeps")
	runCmd.Flags().Float64Var(&dtOut, "dtout", 0, "override the output time interval")

	templateCmd := &cobra.Command{
		Use:   "template [path]",
		Short: "print a starter simulation file, or write it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return os.WriteFile(args[0], []byte(template), 0644)
			}
			io.Pf("%s", template)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			io.Pf("fipy version %s\n", VERSION)
		},
	}

	rootCmd.AddCommand(runCmd, templateCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSim(cmd *cobra.Command, args []string) error {

	// message
	if verbose {
		io.PfWhite("\nFipy Version %s -- Finite Volume Phase-Field Solver\n", VERSION)
		io.Pf("Copyright 2025 The Fipy Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// read input data
	sim := inp.ReadSim(args[0], alias, true)
	if showR {
		sim.Solver.ShowR = true
	}
	if dtOut > 0 {
		sim.Control.DtOut = dtOut
	}
	if verbose {
		if err := sim.GetInfo(os.Stdout); err != nil {
			return err
		}
		io.Pf("\n")
	}

	// build the coupled system
	sys, err := elphf.NewSystem(sim)
	if err != nil {
		return err
	}
	coupled, err := sys.Coupled(sim)
	if err != nil {
		return err
	}
	coupled.Ctl.Verbose = verbose
	o := out.New(sim, sys.Fields()...)
	coupled.OutFcn = o.At

	// stop cleanly at the end of the current sweep on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// run
	if err = coupled.Run(ctx); err != nil {
		return err
	}
	if verbose {
		io.Pf("\n\n")
	}
	if err = o.Finish(coupled.History); err != nil {
		return err
	}
	if verbose {
		io.Pf("\nresults saved to %s\n", sim.DirOut)
	}
	return nil
}

const template = `{
  "data" : {
    "desc"   : "binary two-phase diffusion couple",
    "dirout" : "/tmp/fipy/template"
  },
  "grid"    : { "nx" : 100, "l" : 25 },
  "control" : { "tf" : 100, "dt" : 1, "dtout" : 10 },
  "solver"  : { "nmaxit" : 10 },
  "linsol"  : { "name" : "tridiag" },
  "output"  : { "tsv" : true, "summary" : true },
  "phase"   : { "mobility" : 1.0, "kappa" : 1.0 },
  "solvent" : { "name" : "B", "standardpotential" : -0.15415067982725822, "barrier" : 1.0 },
  "components" : [
    {
      "name"              : "A",
      "diffusivity"       : 1.0,
      "standardpotential" : 0.44183275227903923,
      "left"              : 0.3,
      "right"             : 0.4
    }
  ]
}
`
