// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package num implements the numerical constants shared by the solvers;
// in particular, the Runge-Kutta coefficients of the explicit Lobatto
// sequence used by the ELS solver.
//  References:
//   [1] Abramowitz M and Stegun IA (1972) Handbook of Mathematical Functions,
//       Dover, New York. Table 25.6 (Lobatto abscissae and weights)
package num

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	NmbMethods = 10 // number of nested Lobatto methods
	NmbStages  = 11 // number of stage slots
)

// Lobatto returns the n-point Gauss-Lobatto abscissae mapped onto [0,1].
// The interior points are the roots of P'_{n-1}, the derivative of the
// Legendre polynomial, found by Newton iteration from Chebyshev-Lobatto
// starting guesses. n must be within [2,NmbStages+1]
func Lobatto(n int) (c []float64) {
	if n < 2 || n > NmbStages+1 {
		chk.Panic("Lobatto: number of points %d is out of range [2,%d]", n, NmbStages+1)
	}
	c = make([]float64, n)
	c[0], c[n-1] = 0.0, 1.0
	for i := 1; i < n-1; i++ {
		// Newton iteration on q(x) = P'_{n-1}(x) over [-1,1]
		x := math.Cos(math.Pi * float64(n-1-i) / float64(n-1))
		for it := 0; it < 100; it++ {
			p, dp := legendre(n-1, x)
			ddp := (2.0*x*dp - float64(n-1)*float64(n)*p) / (1.0 - x*x)
			δ := dp / ddp
			x -= δ
			if math.Abs(δ) < 1e-15 {
				break
			}
		}
		c[i] = (1.0 + x) / 2.0
	}
	return
}

// legendre computes the Legendre polynomial P_n and its derivative at x
// using the three-term recurrence
func legendre(n int, x float64) (p, dp float64) {
	pm := 1.0
	p = x
	for k := 1; k < n; k++ {
		pm, p = p, ((2.0*float64(k)+1.0)*x*p-float64(k)*pm)/float64(k+1)
	}
	dp = float64(n) * (pm - x*p) / (1.0 - x*x)
	return
}

// RKCoefficients returns the Runge-Kutta coefficients of the explicit
// Lobatto sequence as a shared, read-only 3D table indexed by
// [method][stage][point]. Method m (1≤m≤NmbMethods) evaluates the
// right-hand side at the m-point Lobatto abscissae; row s holds the
// weights ∫₀^{c_s} ℓ_j(x) dx of the Lagrange basis polynomials built on
// those abscissae, and the final stage integrates over the whole
// sub-interval. The table is computed on first use and must not be
// modified by callers
func RKCoefficients() [][][]float64 {
	rkonce.Do(func() {
		rkcoefs = computeRKCoefficients()
	})
	return rkcoefs
}

var (
	rkonce  sync.Once
	rkcoefs [][][]float64
)

func computeRKCoefficients() (a [][][]float64) {
	a = utl.Deep3alloc(NmbMethods+1, NmbStages+1, NmbStages)

	// method 1 is the forward Euler predictor: one point at the origin,
	// one full-interval stage
	a[1][1][0] = 1.0

	// method m integrates over its own m-point abscissae, but the
	// intermediate stages snapshot the states at the abscissae of method
	// m+1: that method re-evaluates the right-hand side at exactly these
	// states before applying its own quadrature. Only the final stage
	// covers the whole sub-interval
	for m := 2; m <= NmbMethods; m++ {
		c := Lobatto(m)
		cnext := Lobatto(m + 1)
		for s := 1; s <= m; s++ {
			u := 1.0
			if s < m {
				u = cnext[s]
			}
			for j := 0; j < m; j++ {
				a[m][s][j] = lagrangeIntegral(c, j, u)
			}
		}
	}
	return
}

// lagrangeIntegral computes ∫₀^u ℓ_j(x) dx for the Lagrange basis
// polynomial ℓ_j built on the given nodes
func lagrangeIntegral(nodes []float64, j int, u float64) float64 {
	n := len(nodes)

	// numerator coefficients of ∏_{i≠j} (x - c_i), lowest order first
	coefs := make([]float64, 1, n)
	coefs[0] = 1.0
	den := 1.0
	for i := 0; i < n; i++ {
		if i == j {
			continue
		}
		den *= nodes[j] - nodes[i]
		coefs = append(coefs, 0.0)
		for p := len(coefs) - 1; p > 0; p-- {
			coefs[p] = coefs[p-1] - nodes[i]*coefs[p]
		}
		coefs[0] *= -nodes[i]
	}

	// integrate term by term
	res, up := 0.0, u
	for p := 0; p < len(coefs); p++ {
		res += coefs[p] * up / float64(p+1)
		up *= u
	}
	return res / den
}
