// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package soil implements the Brooks-Corey constitutive relations for
// unsaturated soil water movement: relative conductivity, effective
// capillary drive between two moisture levels, and the Green-Ampt
// "dry depth" estimate for freshly forming wetting fronts
//  References:
//   [1] Brooks RH and Corey AT (1964) Hydraulic properties of porous media,
//       Hydrology Paper 3, Colorado State University, Fort Collins
//   [2] Ogden FL and Saghafian B (1997) Green and Ampt infiltration with
//       redistribution, J Irrig Drain Eng, 123(5), 386-393
package soil

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model holds the Brooks-Corey parameters of one soil type. Lengths are
// in mm and conductivities in mm per macro time step unit
type Model struct {

	// parameters
	Thr float64 // residual moisture
	Ths float64 // saturation moisture
	Ks  float64 // saturated conductivity
	Lam float64 // pore-size distribution index
	Hb  float64 // air-entry potential

	// derived
	kpow float64 // conductivity exponent 3 + 2/λ
	gpow float64 // capillary-drive exponent 3 + 1/λ
}

// Init initialises the model
func (o *Model) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "thr":
			o.Thr = p.V
		case "ths":
			o.Ths = p.V
		case "ks":
			o.Ks = p.V
		case "lam":
			o.Lam = p.V
		case "hb":
			o.Hb = p.V
		default:
			return chk.Err("soil: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Thr < 0 || o.Ths <= o.Thr {
		return chk.Err("soil: moisture bounds are incorrect: thr=%g, ths=%g\n", o.Thr, o.Ths)
	}
	if o.Ks <= 0 || o.Lam <= 0 || o.Hb <= 0 {
		return chk.Err("soil: ks, lam and hb must be positive: ks=%g, lam=%g, hb=%g\n", o.Ks, o.Lam, o.Hb)
	}
	o.kpow = 3.0 + 2.0/o.Lam
	o.gpow = 3.0 + 1.0/o.Lam
	return
}

// GetPrms gets (an example of) parameters: a silt loam
func (o Model) GetPrms(example bool) dbf.Params {
	return dbf.Params{
		&dbf.P{N: "thr", V: 0.027},
		&dbf.P{N: "ths", V: 0.434},
		&dbf.P{N: "ks", V: 13.2},
		&dbf.P{N: "lam", V: 0.252},
		&dbf.P{N: "hb", V: 111.5},
	}
}

// Se returns the effective saturation at moisture th, clamped to [0,1]
func (o Model) Se(th float64) float64 {
	se := (th - o.Thr) / (o.Ths - o.Thr)
	if se < 0 {
		return 0
	}
	if se > 1 {
		return 1
	}
	return se
}

// Kth returns the unsaturated conductivity at moisture th
func (o Model) Kth(th float64) float64 {
	return o.Ks * math.Pow(o.Se(th), o.kpow)
}

// DKthDth returns ∂K/∂th
func (o Model) DKthDth(th float64) float64 {
	se := o.Se(th)
	if se <= 0 || se >= 1 {
		return 0
	}
	return o.Ks * o.kpow * math.Pow(se, o.kpow-1.0) / (o.Ths - o.Thr)
}

// CapillaryDrive returns the effective capillary drive G(th1,th2)
// following Ogden and Saghafian: the classic Green-Ampt drive
// Hb·(2+3λ)/(1+3λ) scaled to the effective-saturation interval, so
// that wetting up to saturation recovers the full drive from any
// starting moisture
func (o Model) CapillaryDrive(th1, th2 float64) float64 {
	se1, se2 := o.Se(th1), o.Se(th2)
	den := 1.0 - math.Pow(se1, o.gpow)
	if den <= 0 {
		return 0
	}
	g := o.Hb * (3.0*o.Lam + 2.0) / (3.0*o.Lam + 1.0) * (math.Pow(se2, o.gpow) - math.Pow(se1, o.gpow)) / den
	if g < 0 {
		return 0
	}
	return g
}

// DryDepth returns the initial depth estimate of a wetting front
// forming on soil at moisture th0 within the time increment dt,
// following the explicit first-step Green-Ampt solution
//
//	Zd = (τ + √(τ² + 4・τ・G)) / 2   with   τ = Ks・dt/(Ths-th0)
func (o Model) DryDepth(th0, dt float64) float64 {
	dth := o.Ths - th0
	if dth < 1e-12 {
		return 0
	}
	τ := o.Ks * dt / dth
	g := o.CapillaryDrive(th0, o.Ths)
	return 0.5 * (τ + math.Sqrt(τ*τ+4.0*τ*g))
}
