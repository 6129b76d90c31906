// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"

	"github.com/Maxwellfire/fipy/field"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ProfilePlot draws all fields at one output time into a PNG file
type ProfilePlot struct {
	Dir string // output directory
	Key string // filename key
}

// Save plots all fields for output index idx at time t
func (o ProfilePlot) Save(idx int, t float64, fields []*field.CellField) (err error) {
	if len(fields) == 0 {
		return chk.Err("there are no fields to plot")
	}
	p := plot.New()
	p.Title.Text = io.Sf("%s @ t = %g", o.Key, t)
	p.X.Label.Text = "x"
	p.Add(plotter.NewGrid())
	g := fields[0].Grid
	for j, fld := range fields {
		pts := make(plotter.XYs, g.Ncells)
		for i := 0; i < g.Ncells; i++ {
			pts[i].X = g.X[i]
			pts[i].Y = fld.V[i]
		}
		var line *plotter.Line
		line, err = plotter.NewLine(pts)
		if err != nil {
			return chk.Err("cannot plot field %q:\n%v", fld.Name, err)
		}
		line.Color = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(fld.Name, line)
	}
	err = os.MkdirAll(o.Dir, 0777)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	fn := io.Sf("%s/%s-%04d.png", o.Dir, o.Key, idx)
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, fn)
}

// SaveResiduals plots the final residual of every outer step over time on a
// log axis. Steps whose residual reached exactly zero are left out.
func (o ProfilePlot) SaveResiduals(times, resid []float64) (err error) {
	pts := make(plotter.XYs, 0, len(times))
	for i, r := range resid {
		if r > 0 {
			pts = append(pts, plotter.XY{X: times[i], Y: r})
		}
	}
	if len(pts) == 0 {
		return
	}
	p := plot.New()
	p.Title.Text = io.Sf("%s residuals", o.Key)
	p.X.Label.Text = "t"
	p.Y.Label.Text = "max residual"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(pts)
	if err != nil {
		return chk.Err("cannot plot residuals:\n%v", err)
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	err = os.MkdirAll(o.Dir, 0777)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	fn := io.Sf("%s/%s-resid.png", o.Dir, o.Key)
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, fn)
}
