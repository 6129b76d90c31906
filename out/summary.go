// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary gathers the time stepping history of a run
type Summary struct {
	Desc     string      `json:"desc"`     // description of simulation
	OutTimes []float64   `json:"outtimes"` // times of output emissions
	Times    []float64   `json:"times"`    // time at the end of each step
	Sweeps   []int       `json:"sweeps"`   // sweeps taken by each step
	Resid    [][]float64 `json:"resid"`    // residual history of each step
}

// Save writes the summary as a JSON file into dir
func (o *Summary) Save(dir, key string) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	io.WriteFileSD(dir, io.Sf("%s-summary.json", key), string(b))
	return
}

// ReadSum reads a summary written by Save
func ReadSum(dir, key string) (o *Summary, err error) {
	fn := io.Sf("%s/%s-summary.json", dir, key)
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read summary file %q", fn)
	}
	o = new(Summary)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode summary file %q:\n%v", fn, err)
	}
	return
}
