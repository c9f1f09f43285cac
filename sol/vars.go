// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sol

import (
	"math"

	"github.com/hydpy-dev/hydpy-sub007/num"
)

// NumConsts holds the immutable numerical constants of one solver
// instance
type NumConsts struct {
	NmbMethods int           // number of available Lobatto methods
	NmbStages  int           // number of stage slots
	DTIncrease float64       // step-size increase factor after acceptance
	DTDecrease float64       // step-size decrease factor after rejection
	A          [][][]float64 // Runge-Kutta coefficients [method][stage][point]
}

// newNumConsts returns the standard constants with the shared
// coefficient table
func newNumConsts() NumConsts {
	return NumConsts{
		NmbMethods: num.NmbMethods,
		NmbStages:  num.NmbStages,
		DTIncrease: 2.0,
		DTDecrease: 10.0,
		A:          num.RKCoefficients(),
	}
}

// NumVars holds the mutable scratch variables of one Solve call
type NumVars struct {
	T0, T1               float64 // current sub-interval bounds (normalised macro step)
	DT                   float64 // actual sub-step size
	DTEst                float64 // estimated next sub-step size
	IdxMethod            int     // index of the current method
	IdxStage             int     // index of the current stage
	AbsError             float64 // absolute error of the current method
	RelError             float64 // relative error of the current method
	LastAbsError         float64 // absolute error of the previous method
	LastRelError         float64 // relative error of the previous method
	ExtrapolatedAbsError float64 // estimated absolute error after all remaining methods
	ExtrapolatedRelError float64 // estimated relative error after all remaining methods
	UseRelError          bool    // apply the relative error criterion?
	F0Ready              bool    // is the first-stage evaluation still valid?
	NmbCalls             int     // number of right-hand-side evaluations
}

// reset prepares the scratch variables for a new Solve call
func (o *NumVars) reset() {
	o.T0, o.T1 = 0.0, 1.0
	o.DT, o.DTEst = 0.0, 0.0
	o.IdxMethod, o.IdxStage = 0, 0
	o.AbsError, o.RelError = math.Inf(1), math.Inf(1)
	o.LastAbsError, o.LastRelError = math.Inf(1), math.Inf(1)
	o.ExtrapolatedAbsError, o.ExtrapolatedRelError = 0.0, 0.0
	o.UseRelError = false
	o.F0Ready = false
	o.NmbCalls = 0
}
