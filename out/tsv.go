// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/csv"
	"os"

	"github.com/Maxwellfire/fipy/field"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// TSVViewer writes profiles as tab-separated values, one file per output
// time. The first row holds the column names: x followed by the field names.
type TSVViewer struct {
	Dir string // output directory
	Key string // filename key
}

// Write saves all fields for output index idx at time t
func (o TSVViewer) Write(idx int, t float64, fields []*field.CellField) (err error) {
	if len(fields) == 0 {
		return chk.Err("there are no fields to write")
	}
	err = os.MkdirAll(o.Dir, 0777)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	fn := io.Sf("%s/%s-%04d.tsv", o.Dir, o.Key, idx)
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create TSV file:\n%v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Comma = '\t'
	header := make([]string, 1+len(fields))
	header[0] = "x"
	for j, fld := range fields {
		header[j+1] = fld.Name
	}
	err = w.Write(header)
	if err != nil {
		return
	}
	g := fields[0].Grid
	row := make([]string, 1+len(fields))
	for i := 0; i < g.Ncells; i++ {
		row[0] = io.Sf("%g", g.X[i])
		for j, fld := range fields {
			row[j+1] = io.Sf("%g", fld.V[i])
		}
		err = w.Write(row)
		if err != nil {
			return
		}
	}
	w.Flush()
	return w.Error()
}
