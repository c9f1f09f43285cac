// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/hydpy-dev/hydpy-sub007/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/loam", ".sim", true)
	rainstr := io.ArgToString(1, "40,0,0,40,0")
	verbose := io.ArgToBool(2, true)

	// message
	if verbose {
		io.PfWhite("\nGreen-Ampt infiltration with redistribution\n")
		io.Pf("Copyright 2026 The HydPy Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"rainfall series", "rainstr", rainstr,
			"show messages", "verbose", verbose,
		))
	}

	// read input and allocate model
	sim := inp.ReadSim(fnamepath)
	model, err := sim.GartoModel()
	if err != nil {
		chk.Panic("cannot allocate infiltration model:\n%v", err)
	}

	// run simulation
	for h, str := range strings.Split(rainstr, ",") {
		rain := io.Atof(strings.TrimSpace(str))
		for s := range model.Comps {
			model.SurfaceWaterSupply[s] = rain
		}
		model.Perform()
		if verbose {
			io.Pf("\nstep %d: rainfall = %g\n", h+1, rain)
			for s := range model.Comps {
				io.Pf("  compartment %d: infiltration=%8.4f percolation=%8.4f runoff=%8.4f\n",
					s, model.Infiltration[s], model.Percolation[s], model.SurfaceRunoff[s])
			}
		}
	}
}
