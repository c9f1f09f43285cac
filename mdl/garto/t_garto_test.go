// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package garto

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/hydpy-dev/hydpy-sub007/ana"
	"github.com/hydpy-dev/hydpy-sub007/mdl/soil"
)

// loam returns the example silt loam
func loam(tst *testing.T) *soil.Model {
	sm := new(soil.Model)
	if err := sm.Init(sm.GetPrms(true)); err != nil {
		tst.Fatalf("soil Init failed: %v\n", err)
	}
	return sm
}

func Test_garto01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto01. intense rainfall on a dry loam column")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 10, 1.0/3600.0, []float64{0.1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	w0 := o.WaterContent(0)
	o.SurfaceWaterSupply[0] = 40.0
	o.Perform()
	if chk.Verbose {
		io.Pforan("infiltration = %v\n", o.Infiltration[0])
		io.Pforan("runoff       = %v\n", o.SurfaceRunoff[0])
	}

	// all surface water becomes either infiltration or runoff
	chk.Float64(tst, "supply split", 1e-9, o.Infiltration[0]+o.SurfaceRunoff[0], 40.0)

	// mass conservation and no percolation on a deep column
	chk.Float64(tst, "water balance", 1e-6, o.WaterBalance(0, w0), 0)
	chk.Float64(tst, "percolation", 1e-12, o.Percolation[0], 0)

	// ponding limits the uptake below the supply but above the
	// saturated conductivity
	if o.Infiltration[0] <= sm.Ks || o.Infiltration[0] >= 40.0 {
		tst.Errorf("infiltration %g is not between Ks and the supply\n", o.Infiltration[0])
		return
	}

	// the ponded Green-Ampt solution bounds the rain-limited uptake
	ga := ana.GreenAmpt{Ks: sm.Ks, G: sm.CapillaryDrive(0.1, sm.Ths), Dth: sm.Ths - 0.1}
	if o.Infiltration[0] >= ga.F(1.0) {
		tst.Errorf("infiltration %g exceeds the ponded solution %g\n", o.Infiltration[0], ga.F(1.0))
		return
	}

	// a single saturated front remains and holds all infiltrated water
	if o.lastActive(0) != 1 {
		tst.Errorf("expected exactly one active front, got %d\n", o.lastActive(0))
		return
	}
	chk.Float64(tst, "front moisture", 1e-14, o.Moisture[0][1], sm.Ths)
	chk.Float64(tst, "front water", 1e-6, o.FrontDepth[0][1]*(sm.Ths-0.1), o.Infiltration[0])
}

func Test_garto02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto02. rainfall pulses with redistribution pauses")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 10, 1.0/3600.0, []float64{0.1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	rains := []float64{40, 0, 0, 40, 0}
	infil := make([]float64, len(rains))
	for h, rain := range rains {
		w := o.WaterContent(0)
		o.SurfaceWaterSupply[0] = rain
		o.Perform()
		infil[h] = o.Infiltration[0]
		chk.Float64(tst, io.Sf("water balance hour %d", h+1), 1e-6, o.WaterBalance(0, w), 0)
		chk.Float64(tst, io.Sf("supply split hour %d", h+1), 1e-9, o.Infiltration[0]+o.SurfaceRunoff[0], rain)
		chk.Float64(tst, io.Sf("percolation hour %d", h+1), 1e-12, o.Percolation[0], 0)
		if h == 2 {
			// two rainless hours dried and deepened the front
			if o.lastActive(0) != 1 || o.MoistureChange[0][1] >= 0 {
				tst.Errorf("front is not drying during the pause\n")
				return
			}
			if o.Moisture[0][1] >= sm.Ths-0.01 {
				tst.Errorf("front did not relax below saturation: %g\n", o.Moisture[0][1])
				return
			}
		}
		if h == 3 {
			// the second pulse rewetted the column up to saturation
			top := o.lastActive(0)
			if top < 1 || !o.saturated(0, o.Moisture[0][top]) {
				tst.Errorf("the second pulse did not saturate the top front\n")
				return
			}
		}

		// the arena stays strictly ordered: moistures increase and
		// front depths decrease towards the surface
		for b := 1; b <= o.lastActive(0); b++ {
			if o.FrontDepth[0][b] == 0 {
				continue
			}
			if o.Moisture[0][b] <= o.Moisture[0][b-1] {
				tst.Errorf("bin moistures are not increasing in hour %d\n", h+1)
				return
			}
			if o.FrontDepth[0][b] > o.FrontDepth[0][b-1] {
				tst.Errorf("bin front depths are not decreasing in hour %d\n", h+1)
				return
			}
		}
	}
	if chk.Verbose {
		io.Pforan("hourly infiltration = %v\n", infil)
		X := []float64{1, 2, 3, 4, 5}
		plt.Reset(true, nil)
		plt.Plot(X, infil, &plt.A{C: "r", M: "o", Ls: "-", NoClip: true})
		plt.Gll("hour", "infiltration", nil)
		plt.Save("/tmp/hydpy", "fig_garto02")
	}

	// pinned pulse magnitudes: the first pulse is limited by ponding,
	// the second by the partly rewetted column
	chk.Float64(tst, "first pulse", 0.005, infil[0], 38.897)
	if infil[3] < 29.0 || infil[3] > 30.1 {
		tst.Errorf("second pulse infiltration %g is out of the expected range\n", infil[3])
		return
	}
	for _, h := range []int{1, 2, 4} {
		chk.Float64(tst, io.Sf("rainless hour %d", h+1), 1e-15, infil[h], 0)
	}

	// the second pulse infiltrates less: the column is wetter
	if infil[3] >= infil[0] {
		tst.Errorf("second pulse should infiltrate less: %g >= %g\n", infil[3], infil[0])
		return
	}
	if infil[3] <= sm.Ks {
		tst.Errorf("second pulse infiltration %g fell below Ks\n", infil[3])
	}
}

func Test_garto03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto03. rainfall on a saturated column")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 100.0}}, 10, 1.0/3600.0, []float64{sm.Ths})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	w0 := o.WaterContent(0)
	o.SurfaceWaterSupply[0] = 20.0
	o.Perform()

	// throughflow at the saturated conductivity; the rest runs off
	chk.Float64(tst, "percolation", 1e-9, o.Percolation[0], sm.Ks)
	chk.Float64(tst, "infiltration", 1e-9, o.Infiltration[0], sm.Ks)
	chk.Float64(tst, "runoff", 1e-9, o.SurfaceRunoff[0], 20.0-sm.Ks)
	chk.Float64(tst, "water balance", 1e-6, o.WaterBalance(0, w0), 0)
	chk.Float64(tst, "bulk moisture", 1e-15, o.Moisture[0][0], sm.Ths)
	chk.IntAssert(o.lastActive(0), 0)

	// a dry 100 mm column saturates within the first rainfall hour;
	// afterwards the uptake equals the saturated throughflow exactly
	o2, err := New([]Compartment{{Soil: sm, Depth: 100.0}}, 10, 1.0/3600.0, []float64{0.1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	o2.SurfaceWaterSupply[0] = 40.0
	o2.Perform()
	chk.Float64(tst, "saturated bulk", 1e-12, o2.Moisture[0][0], sm.Ths)
	o2.Perform()
	chk.Float64(tst, "steady infiltration", 1e-9, o2.Infiltration[0], sm.Ks*o2.DT*float64(o2.NmbSubsteps))
	chk.Float64(tst, "steady percolation", 1e-9, o2.Percolation[0], o2.Infiltration[0])
}

func Test_garto04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto04. capillary rise and evapotranspiration")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 10, 1.0/3600.0, []float64{0.2})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	w0 := o.WaterContent(0)
	o.SoilWaterSupply[0] = 0.3
	o.Demand[0] = 0.4
	o.Perform()

	chk.Float64(tst, "soil water addition", 1e-9, o.SoilWaterAddition[0], 0.3)
	chk.Float64(tst, "withdrawal", 1e-9, o.Withdrawal[0], 0.4)
	chk.Float64(tst, "water balance", 1e-6, o.WaterBalance(0, w0), 0)
	chk.Float64(tst, "bulk moisture", 1e-9, o.Moisture[0][0], 0.2-0.1/1000.0)
	chk.Float64(tst, "runoff", 1e-15, o.SurfaceRunoff[0], 0)
	chk.Float64(tst, "infiltration", 1e-15, o.Infiltration[0], 0)

	// a column at residual moisture cannot satisfy any demand
	o2, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 10, 1.0/3600.0, []float64{sm.Thr})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	o2.Demand[0] = 1.0
	o2.Perform()
	chk.Float64(tst, "dry withdrawal", 1e-15, o2.Withdrawal[0], 0)
	chk.Float64(tst, "dry bulk moisture", 1e-15, o2.Moisture[0][0], sm.Thr)
}

func Test_garto05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto05. sealed compartments bypass the soil")

	sm := loam(tst)
	comps := []Compartment{
		{Soil: sm, Depth: 1000.0, Sealed: true},
		{Soil: sm, Depth: 1000.0, Sealed: true},
	}
	o, err := New(comps, 10, 1.0/3600.0, []float64{0.2, 0.2})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	o.SurfaceWaterSupply[0], o.Demand[0] = 5.0, 2.0
	o.SurfaceWaterSupply[1], o.Demand[1] = 5.0, 8.0
	o.Perform()

	chk.Float64(tst, "withdrawal 0", 1e-15, o.Withdrawal[0], 2.0)
	chk.Float64(tst, "runoff 0", 1e-15, o.SurfaceRunoff[0], 3.0)
	chk.Float64(tst, "withdrawal 1", 1e-15, o.Withdrawal[1], 5.0)
	chk.Float64(tst, "runoff 1", 1e-15, o.SurfaceRunoff[1], 0)
	for s := 0; s < 2; s++ {
		chk.Float64(tst, "infiltration", 1e-15, o.Infiltration[s], 0)
		chk.Float64(tst, "percolation", 1e-15, o.Percolation[s], 0)
		chk.Float64(tst, "bulk moisture", 1e-15, o.Moisture[s][0], 0.2)
	}
}

func Test_garto06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto06. full arena suppresses new fronts")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 2, 1.0/3600.0, []float64{0.1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	rains := []float64{40, 0, 40}
	var thPause float64
	for h, rain := range rains {
		w := o.WaterContent(0)
		o.SurfaceWaterSupply[0] = rain
		o.Perform()
		chk.Float64(tst, io.Sf("water balance hour %d", h+1), 1e-6, o.WaterBalance(0, w), 0)
		chk.Float64(tst, io.Sf("supply split hour %d", h+1), 1e-9, o.Infiltration[0]+o.SurfaceRunoff[0], rain)
		if h == 1 {
			thPause = o.Moisture[0][1]
		}
	}

	// the single slot rewetted instead of spawning a further front
	chk.IntAssert(o.lastActive(0), 1)
	if o.Moisture[0][1] <= thPause {
		tst.Errorf("the remaining front did not rewet: %g <= %g\n", o.Moisture[0][1], thPause)
		return
	}
	if o.Infiltration[0] <= 0 {
		tst.Errorf("no infiltration during the second pulse\n")
	}
}

func Test_garto07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto07. shallow column saturates and percolates")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 4.0}}, 10, 1.0/3600.0, []float64{0.2})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	for h := 0; h < 3; h++ {
		w := o.WaterContent(0)
		o.SurfaceWaterSupply[0] = 40.0
		o.Perform()
		chk.Float64(tst, io.Sf("water balance hour %d", h+1), 1e-6, o.WaterBalance(0, w), 0)
		for b := 0; b < o.NmbBins; b++ {
			if o.Moisture[0][b] > sm.Ths+1e-9 || o.FrontDepth[0][b] > 4.0+1e-9 {
				tst.Errorf("state out of bounds: th=%g z=%g\n", o.Moisture[0][b], o.FrontDepth[0][b])
				return
			}
		}
	}

	// the tiny column is saturated and passes water through at Ks
	chk.Float64(tst, "bulk moisture", 1e-12, o.Moisture[0][0], sm.Ths)
	chk.IntAssert(o.lastActive(0), 0)
	chk.Float64(tst, "percolation", 1e-9, o.Percolation[0], sm.Ks)
	chk.Float64(tst, "runoff", 1e-9, o.SurfaceRunoff[0], 40.0-sm.Ks)
}

func Test_garto08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("garto08. merge passes are idempotent")

	sm := loam(tst)
	o, err := New([]Compartment{{Soil: sm, Depth: 1000.0}}, 10, 1.0/3600.0, []float64{0.1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// leave the model in a multi-front state
	for _, rain := range []float64{40, 0, 40} {
		o.SurfaceWaterSupply[0] = rain
		o.Perform()
	}

	// the state is already merged; a further pass must change nothing
	th := append([]float64{}, o.Moisture[0]...)
	fd := append([]float64{}, o.FrontDepth[0]...)
	perc := o.Percolation[0]
	o.MergeFrontDepthOvershootings(0)
	o.MergeSoilDepthOvershootings(0)
	chk.Array(tst, "moisture", 1e-17, o.Moisture[0], th)
	chk.Array(tst, "front depth", 1e-17, o.FrontDepth[0], fd)
	chk.Float64(tst, "percolation", 1e-17, o.Percolation[0], perc)
}
