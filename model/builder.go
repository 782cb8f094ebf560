// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/slideshow"
)

// TourModel is the ATSP formulation over S slides.
// It is built once per run, handed to a solver and discarded afterwards.
type TourModel struct {
	// S is the number of slides (graph nodes).
	S int

	// Interest holds interest[i][j]; the diagonal is zero and unused.
	Interest *matrix.Dense

	// Vars lists every column; Objective[k] is the coefficient of Vars[k].
	Vars      []Variable
	Objective []float64

	// Constraints lists the degree rows (out_i, in_i) followed by the MTZ rows.
	Constraints []Constraint

	xIdx []int // xIdx[i*S+j] = column of x_i_j, -1 on the diagonal
	uIdx []int // uIdx[i] = column of u_i, -1 for i == 0
}

// InterestMatrix computes interest[i][j] = InterestScore(slide i, slide j)
// for every ordered pair. The matrix is symmetric because the score is.
//
// Complexity: O(S² · tags).
func InterestMatrix(slides []slideshow.Slide) (*matrix.Dense, error) {
	n := len(slides)
	w, err := matrix.NewSquare(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d slides", ErrTooFewSlides, n)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v = float64(slides[i].Interest(slides[j]))
			// Indices are in range by construction.
			_ = w.Set(i, j, v)
			_ = w.Set(j, i, v)
		}
	}

	return w, nil
}

// Build constructs the tour model for slides.
//
// Contracts:
//   - len(slides) ≥ 2, else ErrTooFewSlides.
//
// Complexity: O(S² · tags) for the coefficients plus O(S³) terms in the
// degree and MTZ rows.
func Build(slides []slideshow.Slide) (*TourModel, error) {
	if len(slides) < 2 {
		return nil, fmt.Errorf("%w: %d slides", ErrTooFewSlides, len(slides))
	}
	w, err := InterestMatrix(slides)
	if err != nil {
		return nil, err
	}

	return FromInterest(w)
}

// FromInterest constructs the tour model for an explicit coefficient matrix.
// The matrix is copied; diagonal entries are ignored.
//
// Contracts:
//   - w is square with order ≥ 2 (ErrTooFewSlides otherwise).
//   - off-diagonal entries are finite and ≥ 0 (ErrNegativeInterest).
//
// Complexity: O(S³) (dominated by the (S−1)(S−2) MTZ rows).
func FromInterest(w matrix.Matrix) (*TourModel, error) {
	n, err := matrix.RequireSquare(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d slides", ErrTooFewSlides, n)
	}

	m := &TourModel{S: n}
	if m.Interest, err = matrix.NewSquare(n); err != nil {
		return nil, err
	}

	// Stage 1: coefficient copy and validation.
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = w.At(i, j); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("%w: interest[%d][%d]=%g", ErrNegativeInterest, i, j, v)
			}
			_ = m.Interest.Set(i, j, v)
		}
	}

	// Stage 2: columns.
	m.addVariables()

	// Stage 3: rows.
	m.addDegreeRows()
	m.addMTZRows()

	return m, nil
}

// addVariables lays out x_i_j (row-major, diagonal skipped) then u_1..u_{S-1}.
func (m *TourModel) addVariables() {
	var (
		n    = m.S
		i, j int
	)
	m.xIdx = make([]int, n*n)
	m.uIdx = make([]int, n)
	m.Vars = make([]Variable, 0, n*(n-1)+n-1)
	m.Objective = make([]float64, 0, n*(n-1)+n-1)

	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				m.xIdx[i*n+j] = -1
				continue
			}
			m.xIdx[i*n+j] = len(m.Vars)
			coef, _ := m.Interest.At(i, j)
			m.Vars = append(m.Vars, Variable{
				Name:  fmt.Sprintf("x_%d_%d", i, j),
				Kind:  Binary,
				Lower: 0,
				Upper: 1,
			})
			m.Objective = append(m.Objective, coef)
		}
	}

	m.uIdx[0] = -1
	for i = 1; i < n; i++ {
		m.uIdx[i] = len(m.Vars)
		m.Vars = append(m.Vars, Variable{
			Name:  fmt.Sprintf("u_%d", i),
			Kind:  Continuous,
			Lower: 0,
			Upper: math.Inf(1),
		})
		m.Objective = append(m.Objective, 0)
	}
}

// addDegreeRows adds out_i and in_i for every slide.
func (m *TourModel) addDegreeRows() {
	var (
		n    = m.S
		i, j int
	)
	for i = 0; i < n; i++ {
		out := Constraint{Name: fmt.Sprintf("out_%d", i), Sense: Equal, RHS: 1, Terms: make([]Term, 0, n-1)}
		in := Constraint{Name: fmt.Sprintf("in_%d", i), Sense: Equal, RHS: 1, Terms: make([]Term, 0, n-1)}
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			out.Terms = append(out.Terms, Term{Var: m.X(i, j), Coef: 1})
			in.Terms = append(in.Terms, Term{Var: m.X(j, i), Coef: 1})
		}
		m.Constraints = append(m.Constraints, out, in)
	}
}

// addMTZRows adds u_i − u_j + S·x_i_j ≤ S − 1 for i,j ∈ [1,S), i≠j.
func (m *TourModel) addMTZRows() {
	var (
		n    = m.S
		s    = float64(n)
		i, j int
	)
	for i = 1; i < n; i++ {
		for j = 1; j < n; j++ {
			if i == j {
				continue
			}
			m.Constraints = append(m.Constraints, Constraint{
				Name: fmt.Sprintf("mtz_%d_%d", i, j),
				Terms: []Term{
					{Var: m.U(i), Coef: 1},
					{Var: m.U(j), Coef: -1},
					{Var: m.X(i, j), Coef: s},
				},
				Sense: LessEqual,
				RHS:   s - 1,
			})
		}
	}
}

// X returns the column of x_i_j, or -1 for i == j or out-of-range indices.
func (m *TourModel) X(i, j int) int {
	if i < 0 || j < 0 || i >= m.S || j >= m.S {
		return -1
	}

	return m.xIdx[i*m.S+j]
}

// U returns the column of u_i, or -1 for i == 0 or out-of-range indices.
func (m *TourModel) U(i int) int {
	if i < 0 || i >= m.S {
		return -1
	}

	return m.uIdx[i]
}
