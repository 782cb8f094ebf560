// SPDX-License-Identifier: MIT

// Package model builds the asymmetric TSP formulation of a slideshow.
//
// For S slides the model holds:
//
//   - x_i_j ∈ {0,1} for every ordered pair i≠j: slide j follows slide i.
//   - u_i ≥ 0 continuous for i ∈ [1,S): position variables used only by the
//     Miller–Tucker–Zemlin (MTZ) subtour-elimination rows.
//   - Objective: maximize Σ interest[i][j]·x_i_j over the closed tour.
//   - out_i: Σ_j x_i_j = 1 and in_i: Σ_j x_j_i = 1 for every slide i.
//   - mtz_i_j: u_i − u_j + S·x_i_j ≤ S − 1 for i,j ∈ [1,S), i≠j.
//     Any cycle that avoids slide 0 violates these rows, so every feasible
//     assignment is a single Hamiltonian cycle through all slides.
//
// The model is a plain description (variables, objective, constraint rows)
// that any MILP engine can consume; WriteLP renders it in CPLEX LP format.
// Check evaluates an assignment against every row, which is how solver
// results are verified before tour extraction.
//
// Variables are laid out deterministically: all x_i_j in row-major order
// (skipping the diagonal), then u_1 … u_{S-1}.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewSlides is returned when the model would have fewer than two
	// slides. Callers emit the trivial order instead of building a model.
	ErrTooFewSlides = errors.New("model: at least two slides are required")

	// ErrInfeasibleAssignment is returned by Check for an assignment that
	// violates a variable domain or a constraint row.
	ErrInfeasibleAssignment = errors.New("model: assignment violates the model")

	// ErrDimensionMismatch reports vectors or matrices whose size does not
	// match the model.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrNegativeInterest reports a negative or non-finite objective coefficient.
	ErrNegativeInterest = errors.New("model: interest must be finite and non-negative")
)

// VarKind is the domain of a decision variable.
type VarKind uint8

const (
	// Binary variables take values in {0,1}.
	Binary VarKind = iota
	// Continuous variables take any value within their bounds.
	Continuous
)

// String returns the kind name.
func (k VarKind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("VarKind(%d)", uint8(k))
	}
}

// Variable is one column of the model. Upper may be +Inf.
type Variable struct {
	Name  string
	Kind  VarKind
	Lower float64
	Upper float64
}

// Sense is the relation of a constraint row.
type Sense uint8

const (
	// LessEqual is Σ terms ≤ RHS.
	LessEqual Sense = iota
	// Equal is Σ terms = RHS.
	Equal
	// GreaterEqual is Σ terms ≥ RHS.
	GreaterEqual
)

// String returns the LP-format operator.
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	case GreaterEqual:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", uint8(s))
	}
}

// Term is Coef·variable[Var].
type Term struct {
	Var  int
	Coef float64
}

// Constraint is a named linear row: Σ Terms  Sense  RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// satisfied reports whether lhs Sense rhs holds within tol.
func (c Constraint) satisfied(lhs, tol float64) bool {
	switch c.Sense {
	case LessEqual:
		return lhs <= c.RHS+tol
	case GreaterEqual:
		return lhs >= c.RHS-tol
	default:
		d := lhs - c.RHS
		return d <= tol && d >= -tol
	}
}
