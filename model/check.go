// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/slideshow/matrix"
)

// DefaultTolerance is the absolute tolerance used when checking solver
// assignments, which may carry small floating-point noise.
const DefaultTolerance = 1e-6

// Assignment packs a solved adjacency matrix x (S×S, diagonal ignored) and
// position vector u (length S, u[0] ignored) into a flat value vector laid
// out like Vars.
//
// Complexity: O(S²).
func (m *TourModel) Assignment(x matrix.Matrix, u []float64) ([]float64, error) {
	n, err := matrix.RequireSquare(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if n != m.S || len(u) != m.S {
		return nil, fmt.Errorf("%w: S=%d, x is %d×%d, len(u)=%d", ErrDimensionMismatch, m.S, n, n, len(u))
	}

	values := make([]float64, len(m.Vars))
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = x.At(i, j); err != nil {
				return nil, err
			}
			values[m.X(i, j)] = v
		}
	}
	for i = 1; i < n; i++ {
		values[m.U(i)] = u[i]
	}

	return values, nil
}

// Evaluate returns the objective value of an assignment.
// Values beyond len(Objective) are ignored; missing values count as 0.
//
// Complexity: O(len(Vars)).
func (m *TourModel) Evaluate(values []float64) float64 {
	var total float64
	for k, c := range m.Objective {
		if k >= len(values) {
			break
		}
		total += c * values[k]
	}

	return total
}

// Check verifies that values satisfies every variable domain and every
// constraint row within tol. The first violation is reported, wrapped in
// ErrInfeasibleAssignment.
//
// Complexity: O(len(Vars) + Σ row lengths) = O(S³).
func (m *TourModel) Check(values []float64, tol float64) error {
	if len(values) != len(m.Vars) {
		return fmt.Errorf("%w: %d values for %d variables", ErrDimensionMismatch, len(values), len(m.Vars))
	}
	if tol < 0 || math.IsNaN(tol) {
		tol = DefaultTolerance
	}

	// Stage 1: variable domains.
	var (
		k int
		v float64
	)
	for k = range m.Vars {
		v = values[k]
		if math.IsNaN(v) {
			return fmt.Errorf("%w: %s is NaN", ErrInfeasibleAssignment, m.Vars[k].Name)
		}
		if v < m.Vars[k].Lower-tol || v > m.Vars[k].Upper+tol {
			return fmt.Errorf("%w: %s=%g outside [%g,%g]",
				ErrInfeasibleAssignment, m.Vars[k].Name, v, m.Vars[k].Lower, m.Vars[k].Upper)
		}
		if m.Vars[k].Kind == Binary && math.Abs(v) > tol && math.Abs(v-1) > tol {
			return fmt.Errorf("%w: %s=%g is not binary", ErrInfeasibleAssignment, m.Vars[k].Name, v)
		}
	}

	// Stage 2: rows.
	var lhs float64
	for _, c := range m.Constraints {
		lhs = 0
		for _, t := range c.Terms {
			lhs += t.Coef * values[t.Var]
		}
		if !c.satisfied(lhs, tol) {
			return fmt.Errorf("%w: %s: %g %s %g", ErrInfeasibleAssignment, c.Name, lhs, c.Sense, c.RHS)
		}
	}

	return nil
}
