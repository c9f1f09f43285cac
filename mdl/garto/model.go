// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package garto implements the Green-Ampt infiltration with
// redistribution scheme of Talbot and Ogden: each soil compartment
// carries a small arena of "bins", where bin 0 represents the bulk
// moisture of the whole column and every further bin one advancing
// wetting front with its own relative moisture and front depth. Surface
// water, capillary rise and evapotranspiration demand are routed
// through the bins over configured sub-steps of the macro time step,
// producing infiltration, percolation, soil-water addition, withdrawal
// and surface runoff while conserving total water volume
//  References:
//   [1] Talbot CA and Ogden FL (2008) A method for computing infiltration
//       and redistribution in a discretized moisture content domain,
//       Water Resour Res, 44, W08453
//   [2] Lai W, Ogden FL, Steinke RC and Talbot CA (2015) An efficient and
//       guaranteed stable numerical method for continuous modeling of
//       infiltration and redistribution with a shallow dynamic water table,
//       Water Resour Res, 51, 1514-1528
package garto

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydpy-dev/hydpy-sub007/mdl/soil"
)

// tolerances for moisture comparisons and bin activity
const (
	θtol = 1e-12 // negligible moisture difference
	ztol = 1e-9  // negligible front depth
)

// Compartment holds the static description of one spatial unit
type Compartment struct {
	Soil   *soil.Model // hydraulic model of the soil type
	Depth  float64     // soil depth
	Sealed bool        // sealed surface: no infiltration at all
}

// Model holds the configuration, state and fluxes of all compartments.
// The bin arrays persist across macro time steps; only scratch aides
// like the actual surface water are reset each sub-step
type Model struct {

	// configuration
	Comps       []Compartment // compartments
	NmbBins     int           // number of bin slots per compartment
	DT          float64       // sub-step as fraction of the macro step
	NmbSubsteps int           // round(1/DT)

	// state [compartment][bin]
	Moisture       [][]float64 // relative moisture; bounded by [Thr,Ths]
	FrontDepth     [][]float64 // front depth; zero means inactive
	MoistureChange [][]float64 // signed moisture delta of the last sub-step

	// input per macro step [compartment]
	SurfaceWaterSupply []float64 // rainfall reaching the surface
	SoilWaterSupply    []float64 // capillary rise into the soil body
	Demand             []float64 // evapotranspiration demand

	// output per macro step [compartment]
	Infiltration      []float64 // surface water entering the soil column
	Percolation       []float64 // water leaving the column at its bottom
	SoilWaterAddition []float64 // realised capillary rise
	Withdrawal        []float64 // realised evapotranspiration
	SurfaceRunoff     []float64 // surface water neither infiltrated nor withdrawn

	// scratch of the current sub-step
	asw float64 // actual surface water
}

// New allocates a model for the given compartments. th0 holds the
// initial bulk moisture of each compartment; the wetting-front bins
// start inactive
func New(comps []Compartment, nmbBins int, dt float64, th0 []float64) (o *Model, err error) {
	if nmbBins < 2 {
		return nil, chk.Err("garto: at least two bin slots are required. %d is invalid", nmbBins)
	}
	if !(dt > 0) || dt > 1 {
		return nil, chk.Err("garto: the sub-step fraction must be within (0,1]. %v is invalid", dt)
	}
	if len(th0) != len(comps) {
		return nil, chk.Err("garto: %d initial moisture values given for %d compartments", len(th0), len(comps))
	}
	o = new(Model)
	o.Comps = comps
	o.NmbBins = nmbBins
	o.DT = dt
	o.NmbSubsteps = int(1.0/dt + 0.5)
	n := len(comps)
	alloc := func() [][]float64 {
		a := make([][]float64, n)
		for s := range a {
			a[s] = make([]float64, nmbBins)
		}
		return a
	}
	o.Moisture = alloc()
	o.FrontDepth = alloc()
	o.MoistureChange = alloc()
	for s, c := range comps {
		if c.Depth <= 0 {
			return nil, chk.Err("garto: compartment %d has a non-positive soil depth %v", s, c.Depth)
		}
		if th0[s] < c.Soil.Thr || th0[s] > c.Soil.Ths {
			return nil, chk.Err("garto: initial moisture %v of compartment %d is out of [%v,%v]", th0[s], s, c.Soil.Thr, c.Soil.Ths)
		}
		o.Moisture[s][0] = th0[s]
		o.FrontDepth[s][0] = c.Depth
		for b := 1; b < nmbBins; b++ {
			o.Moisture[s][b] = c.Soil.Thr
		}
	}
	o.SurfaceWaterSupply = make([]float64, n)
	o.SoilWaterSupply = make([]float64, n)
	o.Demand = make([]float64, n)
	o.Infiltration = make([]float64, n)
	o.Percolation = make([]float64, n)
	o.SoilWaterAddition = make([]float64, n)
	o.Withdrawal = make([]float64, n)
	o.SurfaceRunoff = make([]float64, n)
	return
}

// lastActive returns the index of the deepest-numbered active bin of
// compartment s, or zero when only the filled bin holds water
func (o *Model) lastActive(s int) int {
	for b := o.NmbBins - 1; b >= 1; b-- {
		if o.FrontDepth[s][b] > 0 {
			return b
		}
	}
	return 0
}

// removeBin deactivates bin b and compacts the arena by shifting all
// bins to its right one slot left
func (o *Model) removeBin(s, b int) {
	for j := b; j < o.NmbBins-1; j++ {
		o.Moisture[s][j] = o.Moisture[s][j+1]
		o.FrontDepth[s][j] = o.FrontDepth[s][j+1]
		o.MoistureChange[s][j] = o.MoistureChange[s][j+1]
	}
	last := o.NmbBins - 1
	o.Moisture[s][last] = o.Comps[s].Soil.Thr
	o.FrontDepth[s][last] = 0
	o.MoistureChange[s][last] = 0
}

// deactivateBin folds the water content of bin b into its left
// neighbourhood and removes the bin from the arena
func (o *Model) deactivateBin(s, b int) {
	w := o.FrontDepth[s][b] * (o.Moisture[s][b] - o.Moisture[s][b-1])
	o.removeBin(s, b)
	if w <= 0 {
		return
	}
	for j := b - 1; j >= 1; j-- {
		den := o.Moisture[s][j] - o.Moisture[s][j-1]
		if den > θtol && o.FrontDepth[s][j] > 0 {
			o.FrontDepth[s][j] += w / den
			return
		}
	}
	if vol := o.marginalVolume(s, 0); vol > 0 {
		o.Moisture[s][0] += w / vol
	}
}

// collapseEqualBins removes bins holding no incremental water relative
// to their left neighbour; such bins arise when watering or withdrawal
// drives neighbouring moistures together
func (o *Model) collapseEqualBins(s int) {
	for b := o.lastActive(s); b >= 1; b-- {
		if o.FrontDepth[s][b] == 0 {
			continue
		}
		if o.Moisture[s][b]-o.Moisture[s][b-1] <= θtol {
			o.deactivateBin(s, b)
		}
	}
}

// WaterContent returns the total water volume stored in compartment s
func (o *Model) WaterContent(s int) (w float64) {
	w = o.Moisture[s][0] * o.Comps[s].Depth
	for b := 1; b < o.NmbBins; b++ {
		if o.FrontDepth[s][b] > 0 {
			w += o.FrontDepth[s][b] * (o.Moisture[s][b] - o.Moisture[s][b-1])
		}
	}
	return
}

// WaterBalance returns the residual of the conservation identity of
// compartment s relative to the water content wOld captured before the
// last Perform call:
//
//	Wnew - wOld - Infiltration - SoilWaterAddition + Percolation + Withdrawal
//
// For unsealed compartments the residual stays within floating-point
// rounding of zero. Sealed compartments satisfy their withdrawal from
// the surface supply, leaving the column untouched; their residual is
// zero by definition
func (o *Model) WaterBalance(s int, wOld float64) float64 {
	if o.Comps[s].Sealed {
		return 0
	}
	return o.WaterContent(s) - wOld - o.Infiltration[s] - o.SoilWaterAddition[s] + o.Percolation[s] + o.Withdrawal[s]
}

// saturated tells whether moisture th reaches the saturation of the
// soil of compartment s
func (o *Model) saturated(s int, th float64) bool {
	return th >= o.Comps[s].Soil.Ths-θtol
}
