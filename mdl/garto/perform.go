// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package garto

import "math"

// Perform processes one macro time step for all compartments. Callers
// set SurfaceWaterSupply, SoilWaterSupply and Demand beforehand; the
// five result fluxes are reset and then accumulated over NmbSubsteps
// sub-steps of length DT
func (o *Model) Perform() {
	for s := range o.Comps {
		o.Infiltration[s] = 0
		o.Percolation[s] = 0
		o.SoilWaterAddition[s] = 0
		o.Withdrawal[s] = 0
		o.SurfaceRunoff[s] = 0
		if o.Comps[s].Sealed {
			o.performSealed(s)
			continue
		}
		o.performSoil(s)
	}
}

// performSealed bypasses the soil column: evapotranspiration demand is
// met directly from the surface supply and the remainder runs off
func (o *Model) performSealed(s int) {
	wd := math.Min(o.Demand[s], o.SurfaceWaterSupply[s])
	o.Withdrawal[s] = wd
	o.SurfaceRunoff[s] = o.SurfaceWaterSupply[s] - wd
}

// performSoil runs the sub-step loop of one unsealed compartment
func (o *Model) performSoil(s int) {
	for i := 0; i < o.NmbSubsteps; i++ {
		o.asw = o.SurfaceWaterSupply[s] * o.DT
		asw0 := o.asw
		o.PercolateFilledBin(s)
		o.InfiltrateWettingFrontBins(s)
		o.Infiltration[s] += asw0 - o.asw
		o.MergeFrontDepthOvershootings(s)
		o.MergeSoilDepthOvershootings(s)
		o.WaterAllBins(s, o.SoilWaterSupply[s]*o.DT)
		o.WithdrawAllBins(s, o.Demand[s]*o.DT)
		o.SurfaceRunoff[s] += o.asw
	}
	o.asw = 0
}
