// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sol

import "math"

// sentinelError is reported as the extrapolated absolute error while
// fewer than three methods have been tried. Extrapolation is undefined
// then; the sentinel is non-physical on purpose and downstream
// comparisons rely on its numeric value
const sentinelError = -999.9

// calculateError computes the absolute and relative errors of the
// current method as the maximum difference, over the solver flux
// subset, between this method's and the previous method's integrated
// fluxes. The relative error divides by the nonzero entries of the
// newer result; with no nonzero entry (or with relative checking
// disabled) it is +Inf, so the relative criterion can never pass
func (o *Solver) calculateError() {
	m := o.Vars.IdxMethod
	abserr := 0.0
	for _, i := range o.solverFluxes {
		d := math.Abs(o.resultFlux[m][i] - o.resultFlux[m-1][i])
		if d > abserr {
			abserr = d
		}
	}
	o.Vars.AbsError = abserr
	if !o.Vars.UseRelError {
		o.Vars.RelError = math.Inf(1)
		return
	}
	relerr, found := 0.0, false
	for _, i := range o.solverFluxes {
		if o.resultFlux[m][i] == 0 {
			continue
		}
		r := math.Abs((o.resultFlux[m][i] - o.resultFlux[m-1][i]) / o.resultFlux[m][i])
		if r > relerr {
			relerr = r
		}
		found = true
	}
	if !found {
		relerr = math.Inf(1)
	}
	o.Vars.RelError = relerr
}

// extrapolateError estimates the errors after applying all remaining
// methods by log-linear extrapolation of the last two error estimates.
// For the first two methods there is not enough history: the absolute
// estimate is then the sentinel -999.9 and the relative estimate is
// +Inf when relative checking is on (and the sentinel otherwise)
func (o *Solver) extrapolateError() {
	if o.Vars.IdxMethod <= 2 {
		o.Vars.ExtrapolatedAbsError = sentinelError
		if o.Vars.UseRelError {
			o.Vars.ExtrapolatedRelError = math.Inf(1)
		} else {
			o.Vars.ExtrapolatedRelError = sentinelError
		}
		return
	}
	rem := float64(o.Consts.NmbMethods - o.Vars.IdxMethod)
	o.Vars.ExtrapolatedAbsError = logLinear(o.Vars.AbsError, o.Vars.LastAbsError, rem)
	if o.Vars.UseRelError {
		o.Vars.ExtrapolatedRelError = logLinear(o.Vars.RelError, o.Vars.LastRelError, rem)
	} else {
		o.Vars.ExtrapolatedRelError = math.Inf(1)
	}
}

// logLinear continues the error sequence err, lastErr over rem further
// methods on a logarithmic scale
func logLinear(err, lastErr, rem float64) float64 {
	if err <= 0 {
		return 0
	}
	if math.IsInf(err, 1) || math.IsInf(lastErr, 1) || lastErr <= 0 {
		return math.Inf(1)
	}
	return math.Exp(math.Log(err) + (math.Log(err)-math.Log(lastErr))*rem)
}
