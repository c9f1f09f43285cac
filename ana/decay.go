// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions for comparisons with
// numerical results
package ana

import "math"

// ExpDecay computes the exact solution of the linear storage equation
//
//	dS/dt = -K・S   with   S(0) = S0
type ExpDecay struct {
	K  float64 // decay rate
	S0 float64 // initial storage
}

// S returns the storage at time t
func (o ExpDecay) S(t float64) float64 {
	return o.S0 * math.Exp(-o.K*t)
}

// Q returns the mean outflow over [t0,t1]
func (o ExpDecay) Q(t0, t1 float64) float64 {
	return (o.S(t0) - o.S(t1)) / (t1 - t0)
}
