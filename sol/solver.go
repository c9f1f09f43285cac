// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sol implements the ELS solver: an adaptive-step explicit
// Runge-Kutta integrator over a family of nested Lobatto methods of
// increasing order. The solver advances the states of one ODE system
// across a single macro time step, selecting sub-step size and method
// order so that the local truncation error stays within the configured
// absolute/relative tolerances. It is a best-effort approximator: it
// always terminates and never fails, trading accuracy for robustness
// under stiffness and discontinuities
package sol

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// System defines the ODE system integrated by the solver over one
// (normalised) macro time step. SingleTerms evaluates the governing
// right-hand side: it reads States and writes the instantaneous rates
// into Fluxes. FullTerms applies the integrated fluxes to the states:
// when it is called, the solver has reset States to the sub-step start
// values and loaded each flux slot with its integrated increment over
// the current sub-step; FullTerms must update States in place
// accordingly. Both slices are views into the model's own sequence
// storage and must keep identity and length between calls
type System interface {
	SingleTerms()
	FullTerms()
	Fluxes() []float64
	States() []float64
}

// SubsetSystem is an optional extension restricting error control to a
// subset of flux indices ("solver sequences"). A nil result means all
// fluxes take part in the error estimate
type SubsetSystem interface {
	SolverFluxes() []int
}

// Config holds the per-run solver parameters
type Config struct {
	AbsErrorMax float64 // absolute numerical error tolerance
	RelErrorMax float64 // relative numerical error tolerance; NaN disables the relative criterion
	RelDTMin    float64 // smallest sub-step as fraction of the macro step
	RelDTMax    float64 // largest sub-step as fraction of the macro step
}

// DefaultConfig returns the standard solver parameters
func DefaultConfig() Config {
	return Config{
		AbsErrorMax: 0.01,
		RelErrorMax: math.NaN(),
		RelDTMin:    0.001,
		RelDTMax:    1.0,
	}
}

// Solver integrates one System across macro time steps
type Solver struct {

	// input
	Conf   Config    // solver parameters
	Consts NumConsts // numerical constants (shared coefficient table)
	Vars   NumVars   // scratch variables of the current/last Solve call

	// system
	sys          System
	solverFluxes []int // flux indices taking part in error control

	// buffers owned by the solver
	pointFluxes [][]float64 // [stage][flux] intermediate evaluations
	pointStates [][]float64 // [stage][state] intermediate states
	resultFlux  [][]float64 // [method][flux] per-method integrated fluxes
	resultState [][]float64 // [method][state] per-method states
	sumFluxes   []float64   // accumulated fluxes over the macro step
	oldStates   []float64   // states at the start of the current sub-step
}

// New allocates a solver for the given system
func New(sys System, conf Config) (o *Solver, err error) {
	if !(conf.AbsErrorMax > 0) {
		return nil, chk.Err("sol: AbsErrorMax must be positive. %v is invalid", conf.AbsErrorMax)
	}
	if !(conf.RelDTMin > 0) || !(conf.RelDTMax <= 1) || conf.RelDTMin > conf.RelDTMax {
		return nil, chk.Err("sol: RelDTMin and RelDTMax must satisfy 0 < RelDTMin ≤ RelDTMax ≤ 1. %v and %v are invalid", conf.RelDTMin, conf.RelDTMax)
	}
	o = new(Solver)
	o.Conf = conf
	o.Consts = newNumConsts()
	o.sys = sys
	if sub, ok := sys.(SubsetSystem); ok {
		o.solverFluxes = sub.SolverFluxes()
	}
	nf, ns := len(sys.Fluxes()), len(sys.States())
	if nf < 1 || ns < 1 {
		return nil, chk.Err("sol: system must expose at least one flux and one state")
	}
	if o.solverFluxes == nil {
		o.solverFluxes = make([]int, nf)
		for i := range o.solverFluxes {
			o.solverFluxes[i] = i
		}
	}
	alloc := func(m, n int) [][]float64 {
		a := make([][]float64, m)
		for i := range a {
			a[i] = make([]float64, n)
		}
		return a
	}
	o.pointFluxes = alloc(o.Consts.NmbStages, nf)
	o.pointStates = alloc(o.Consts.NmbStages, ns)
	o.resultFlux = alloc(o.Consts.NmbMethods+1, nf)
	o.resultState = alloc(o.Consts.NmbMethods+1, ns)
	o.sumFluxes = make([]float64, nf)
	o.oldStates = make([]float64, ns)
	return
}

// Solve advances the system across one macro time step. It mutates the
// system's states to their values at the end of the step and writes the
// accumulated flux sums into the flux slots. Solve never fails: when
// even the smallest permitted sub-step cannot satisfy the tolerances,
// the best available result is accepted and integration continues
func (o *Solver) Solve() {

	fluxes, states := o.sys.Fluxes(), o.sys.States()

	// initialise scratch variables
	o.Vars.reset()
	o.Vars.UseRelError = !math.IsNaN(o.Conf.RelErrorMax)
	o.Vars.DTEst = o.Conf.RelDTMax
	for i := range o.sumFluxes {
		o.sumFluxes[i] = 0
	}
	copy(o.oldStates, states)

	// sub-step loop
	for o.Vars.T0 < o.Vars.T1-1e-14 {

		o.Vars.LastAbsError = math.Inf(1)
		o.Vars.LastRelError = math.Inf(1)
		o.Vars.DT = math.Min(o.Vars.T1-o.Vars.T0, math.Min(o.Conf.RelDTMax, math.Max(o.Vars.DTEst, o.Conf.RelDTMin)))

		// first-stage evaluation; reusable across rejected attempts
		if !o.Vars.F0Ready {
			o.evalRHS()
			o.Vars.IdxMethod = 0
			o.Vars.IdxStage = 0
			copy(o.pointFluxes[0], fluxes)
			copy(o.pointStates[0], states)
		}

		// method loop
		accepted, shrunk := false, false
		for m := 1; m <= o.Consts.NmbMethods; m++ {
			o.Vars.IdxMethod = m

			// re-evaluate the intermediate stages with the states
			// snapshot by the previous method
			for s := 1; s < m; s++ {
				o.Vars.IdxStage = s
				copy(states, o.pointStates[s])
				o.evalRHS()
				copy(o.pointFluxes[s], fluxes)
			}

			// integrate fluxes and update states stage by stage
			for s := 1; s <= m; s++ {
				o.Vars.IdxStage = s
				o.integrateFluxes(m, s)
				copy(states, o.oldStates)
				o.sys.FullTerms()
				copy(o.pointStates[s], states)
			}

			// record this method's results and estimate the error
			copy(o.resultFlux[m], fluxes)
			copy(o.resultState[m], states)
			o.calculateError()
			o.extrapolateError()

			// no previous method to compare the first one against
			if m == 1 {
				continue
			}

			// accept
			if o.Vars.AbsError <= o.Conf.AbsErrorMax || o.Vars.RelError <= o.Conf.RelErrorMax {
				o.Vars.DTEst = o.Consts.DTIncrease * o.Vars.DT
				o.Vars.F0Ready = false
				o.addUpFluxes(m)
				o.Vars.T0 += o.Vars.DT
				copy(o.oldStates, o.resultState[m])
				accepted = true
				break
			}

			// shrink early when even the remaining methods cannot
			// reach the tolerances
			decrease := o.Vars.DT > o.Conf.RelDTMin && o.Vars.ExtrapolatedAbsError > o.Conf.AbsErrorMax
			if o.Vars.UseRelError {
				decrease = decrease && o.Vars.ExtrapolatedRelError > o.Conf.RelErrorMax
			}
			if decrease {
				o.Vars.F0Ready = true
				o.Vars.DTEst = o.Vars.DT / o.Consts.DTDecrease
				shrunk = true
				break
			}

			o.Vars.LastAbsError = o.Vars.AbsError
			o.Vars.LastRelError = o.Vars.RelError
			o.Vars.F0Ready = true
		}

		// all methods tried without success
		if !accepted && !shrunk {
			if o.Vars.DT <= o.Conf.RelDTMin+1e-14 {
				// best effort: accept the highest-order result
				o.Vars.F0Ready = false
				o.addUpFluxes(o.Consts.NmbMethods)
				o.Vars.T0 += o.Vars.DT
				copy(o.oldStates, o.resultState[o.Consts.NmbMethods])
			} else {
				o.Vars.F0Ready = true
				o.Vars.DTEst = o.Vars.DT / o.Consts.DTDecrease
			}
		}
	}

	// write back accumulated fluxes and final states
	copy(fluxes, o.sumFluxes)
	copy(states, o.oldStates)
}

// evalRHS evaluates the governing equations once
func (o *Solver) evalRHS() {
	o.sys.SingleTerms()
	o.Vars.NmbCalls++
}

// integrateFluxes loads each flux slot with its increment over the
// current sub-step: dt times the dot product of the method's
// coefficient row with the point fluxes
func (o *Solver) integrateFluxes(m, s int) {
	fluxes := o.sys.Fluxes()
	row := o.Consts.A[m][s]
	for i := range fluxes {
		v := 0.0
		for j := 0; j < m; j++ {
			v += row[j] * o.pointFluxes[j][i]
		}
		fluxes[i] = o.Vars.DT * v
	}
}

// addUpFluxes accumulates the accepted sub-step fluxes
func (o *Solver) addUpFluxes(m int) {
	for i := range o.sumFluxes {
		o.sumFluxes[i] += o.resultFlux[m][i]
	}
}
