// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/Maxwellfire/fipy/field"
	"github.com/cpmech/gosl/io"
	"github.com/guptarohit/asciigraph"
)

// AsciiViewer prints profiles as ASCII graphs on stdout
type AsciiViewer struct {
	Height int // graph height in rows
	Width  int // graph width in columns
}

// NewAsciiViewer returns a viewer with default dimensions
func NewAsciiViewer() *AsciiViewer {
	return &AsciiViewer{Height: 10, Width: 64}
}

// Chart renders one field at time t
func (o *AsciiViewer) Chart(t float64, fld *field.CellField) string {
	return asciigraph.Plot(fld.V,
		asciigraph.Height(o.Height),
		asciigraph.Width(o.Width),
		asciigraph.Caption(io.Sf("%s @ t = %g", fld.Name, t)),
	)
}

// Show prints all fields at time t
func (o *AsciiViewer) Show(t float64, fields []*field.CellField) {
	for _, fld := range fields {
		io.Pf("%s\n\n", o.Chart(t, fld))
	}
}

// Residuals renders the sweep-by-sweep residual decay of the step ending at
// time t, on a log10 axis. Exact zeros are floored to keep the chart finite.
func (o *AsciiViewer) Residuals(t float64, resid []float64) string {
	logr := make([]float64, len(resid))
	for i, r := range resid {
		logr[i] = math.Log10(math.Max(r, 1e-30))
	}
	return asciigraph.Plot(logr,
		asciigraph.Height(o.Height),
		asciigraph.Width(o.Width),
		asciigraph.Caption(io.Sf("log10 residual @ t = %g", t)),
	)
}
