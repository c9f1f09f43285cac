// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01")

	sim := ReadSim("data/loam.sim")
	if chk.Verbose {
		io.Pforan("desc = %v\n", sim.Desc)
	}

	// solver data
	chk.Float64(tst, "abserrormax", 1e-15, sim.Solver.AbsErrorMax, 0.01)
	conf := sim.Solver.Config()
	if !math.IsNaN(conf.RelErrorMax) {
		tst.Errorf("relative error control should be disabled by default\n")
		return
	}
	chk.Float64(tst, "reldtmin", 1e-15, conf.RelDTMin, 0.001)

	// soil catalogue
	sm, ok := sim.SoilModels["siltloam"]
	if !ok {
		tst.Errorf("soil type %q was not initialised\n", "siltloam")
		return
	}
	chk.Float64(tst, "ks", 1e-15, sm.Ks, 13.2)
	chk.Float64(tst, "ths", 1e-15, sm.Ths, 0.434)

	// infiltration model
	o, err := sim.GartoModel()
	if err != nil {
		tst.Errorf("GartoModel failed: %v\n", err)
		return
	}
	chk.IntAssert(o.NmbBins, 10)
	chk.IntAssert(o.NmbSubsteps, 3600)
	chk.IntAssert(len(o.Comps), 2)
	chk.Float64(tst, "th0", 1e-15, o.Moisture[0][0], 0.1)
	if !o.Comps[1].Sealed {
		tst.Errorf("second compartment should be sealed\n")
		return
	}
	chk.Float64(tst, "depth", 1e-15, o.Comps[1].Depth, 500.0)
}
