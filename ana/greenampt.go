// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// GreenAmpt computes the classical Green-Ampt cumulative infiltration
// into a uniform column under ponded conditions
//
//	F(t) = Ks・t + G・Δθ・ln(1 + F(t)/(G・Δθ))
//
// where G is the effective capillary drive at the wetting front and
// Δθ the moisture deficit
type GreenAmpt struct {
	Ks  float64 // saturated conductivity
	G   float64 // effective capillary drive
	Dth float64 // moisture deficit
}

// F returns the cumulative infiltration at time t, found by fixed-point
// iteration of the implicit solution
func (o GreenAmpt) F(t float64) float64 {
	gd := o.G * o.Dth
	f := o.Ks * t
	for it := 0; it < 200; it++ {
		fnew := o.Ks*t + gd*math.Log(1.0+f/gd)
		if math.Abs(fnew-f) < 1e-12 {
			return fnew
		}
		f = fnew
	}
	return f
}

// Rate returns the infiltration capacity for a given cumulative
// infiltration
func (o GreenAmpt) Rate(f float64) float64 {
	if f <= 0 {
		return math.Inf(1)
	}
	return o.Ks * (1.0 + o.G*o.Dth/f)
}
