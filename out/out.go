// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output handling for simulation results: profile
// viewers and run summaries
package out

import (
	"github.com/Maxwellfire/fipy/field"
	"github.com/Maxwellfire/fipy/inp"
	"github.com/Maxwellfire/fipy/sweep"
	"github.com/cpmech/gosl/io"
)

// Output writes simulation results according to the output options of the
// simulation file. Its At method has the signature expected by the coupled
// solution loop and can be handed over directly.
type Output struct {

	// data set by New
	Dir    string             // output directory
	Key    string             // filename key
	Fields []*field.CellField // fields to report

	// viewers; nil means disabled
	Tsv   *TSVViewer   // tab-separated value files
	Ascii *AsciiViewer // ASCII graphs on stdout
	Png   *ProfilePlot // PNG profile plots
	Sum   *Summary     // run summary
}

// New creates an output handler from the simulation data
func New(sim *inp.Simulation, fields ...*field.CellField) (o *Output) {
	o = new(Output)
	o.Dir = sim.DirOut
	o.Key = sim.Key
	o.Fields = fields
	if sim.Output.Tsv {
		o.Tsv = &TSVViewer{Dir: o.Dir, Key: o.Key}
	}
	if sim.Output.Ascii {
		o.Ascii = NewAsciiViewer()
	}
	if sim.Output.Png {
		o.Png = &ProfilePlot{Dir: o.Dir, Key: o.Key}
	}
	if sim.Output.Summary {
		o.Sum = &Summary{Desc: sim.Data.Desc}
	}
	return
}

// At writes all enabled viewers for output index idx at time t
func (o *Output) At(idx int, t float64) (err error) {
	if o.Tsv != nil {
		err = o.Tsv.Write(idx, t, o.Fields)
		if err != nil {
			return
		}
	}
	if o.Ascii != nil {
		o.Ascii.Show(t, o.Fields)
	}
	if o.Png != nil {
		err = o.Png.Save(idx, t, o.Fields)
		if err != nil {
			return
		}
	}
	if o.Sum != nil {
		o.Sum.OutTimes = append(o.Sum.OutTimes, t)
	}
	return
}

// Finish reports the residual history of the run: an ASCII chart of the last
// step's sweep decay, a PNG of the final residuals over time, and the JSON
// summary, each only if the corresponding viewer is enabled
func (o *Output) Finish(history []sweep.StepInfo) (err error) {
	if len(history) > 0 {
		if o.Ascii != nil {
			last := history[len(history)-1]
			io.Pf("%s\n\n", o.Ascii.Residuals(last.T, last.Resid))
		}
		if o.Png != nil {
			times := make([]float64, len(history))
			final := make([]float64, len(history))
			for i, info := range history {
				times[i] = info.T
				final[i] = info.Resid[len(info.Resid)-1]
			}
			if err = o.Png.SaveResiduals(times, final); err != nil {
				return
			}
		}
	}
	if o.Sum == nil {
		return
	}
	for _, info := range history {
		o.Sum.Times = append(o.Sum.Times, info.T)
		o.Sum.Sweeps = append(o.Sum.Sweeps, info.Sweeps)
		o.Sum.Resid = append(o.Sum.Resid, info.Resid)
	}
	return o.Sum.Save(o.Dir, o.Key)
}
