// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/hydpy-dev/hydpy-sub007/mdl/garto"
	"github.com/hydpy-dev/hydpy-sub007/mdl/soil"
	"github.com/hydpy-dev/hydpy-sub007/sol"
)

// SolverData holds the tolerances and step bounds of the adaptive
// numerical integrator
type SolverData struct {
	AbsErrorMax float64 `json:"abserrormax"` // absolute error tolerance
	RelErrorMax float64 `json:"relerrormax"` // relative error tolerance; 0 disables
	RelDTMin    float64 `json:"reldtmin"`    // smallest relative step size
	RelDTMax    float64 `json:"reldtmax"`    // largest relative step size
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	c := sol.DefaultConfig()
	o.AbsErrorMax = c.AbsErrorMax
	o.RelErrorMax = 0
	o.RelDTMin = c.RelDTMin
	o.RelDTMax = c.RelDTMax
}

// Config returns the solver configuration
func (o SolverData) Config() (c sol.Config) {
	c.AbsErrorMax = o.AbsErrorMax
	c.RelErrorMax = o.RelErrorMax
	if o.RelErrorMax == 0 {
		c.RelErrorMax = math.NaN()
	}
	c.RelDTMin = o.RelDTMin
	c.RelDTMax = o.RelDTMax
	return
}

// SoilData holds one named soil type and its parameters
type SoilData struct {
	Name string     `json:"name"` // name of soil type
	Prms dbf.Params `json:"prms"` // Brooks-Corey parameters
}

// CompData holds one soil compartment
type CompData struct {
	Soil   string  `json:"soil"`   // name of soil type
	Depth  float64 `json:"depth"`  // soil depth
	Sealed bool    `json:"sealed"` // sealed surface
	Th0    float64 `json:"th0"`    // initial bulk moisture
}

// GartoData holds the infiltration model configuration
type GartoData struct {
	NmbBins      int        `json:"nmbbins"`      // number of bin slots
	DT           float64    `json:"dt"`           // sub-step as fraction of the macro step
	Compartments []CompData `json:"compartments"` // all compartments
}

// Simulation holds all simulation input data
type Simulation struct {

	// input
	Desc   string     `json:"desc"`   // description of simulation
	Solver SolverData `json:"solver"` // numerical integrator data
	Soils  []SoilData `json:"soils"`  // soil type catalogue
	Garto  GartoData  `json:"garto"`  // infiltration model data

	// derived
	SoilModels map[string]*soil.Model // initialised soil models
}

// ReadSim reads a simulation input file and initialises the soil
// models. It panics on any inconsistency, so that malformed input
// surfaces immediately
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	o.Solver.SetDefault()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// initialise soil models
	o.SoilModels = make(map[string]*soil.Model)
	for _, sd := range o.Soils {
		if _, ok := o.SoilModels[sd.Name]; ok {
			chk.Panic("ReadSim: soil type %q is defined twice", sd.Name)
		}
		mdl := new(soil.Model)
		if err := mdl.Init(sd.Prms); err != nil {
			chk.Panic("ReadSim: cannot initialise soil type %q:\n%v", sd.Name, err)
		}
		o.SoilModels[sd.Name] = mdl
	}

	// check compartments
	for i, cd := range o.Garto.Compartments {
		if _, ok := o.SoilModels[cd.Soil]; !ok {
			chk.Panic("ReadSim: compartment %d references unknown soil type %q", i, cd.Soil)
		}
	}
	return &o
}

// GartoModel allocates the infiltration model described by the input
func (o *Simulation) GartoModel() (*garto.Model, error) {
	comps := make([]garto.Compartment, len(o.Garto.Compartments))
	th0 := make([]float64, len(o.Garto.Compartments))
	for i, cd := range o.Garto.Compartments {
		comps[i] = garto.Compartment{
			Soil:   o.SoilModels[cd.Soil],
			Depth:  cd.Depth,
			Sealed: cd.Sealed,
		}
		th0[i] = cd.Th0
	}
	return garto.New(comps, o.Garto.NmbBins, o.Garto.DT, th0)
}
