// Copyright 2025 The Fipy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds function definition
type FuncData struct {
	Name string   `json:"name"` // name of function. ex: zero, ramp, myfunction1, etc.
	Type string   `json:"type"` // type of function. ex: cte, rmp, pts
	Prms fun.Params `json:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name
func (o FuncsData) Get(name string) (fcn fun.T, err error) {
	if name == "zero" || name == "none" {
		fcn = &fun.Cte{}
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn = fun.New(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q\n", name)
	return
}
