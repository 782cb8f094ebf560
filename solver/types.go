// SPDX-License-Identifier: MIT

// Package solver defines the contract between the tour model and a
// combinatorial engine, and ships an in-process exact engine.
//
// Contract:
//   - Solve receives a *model.TourModel and Options{TimeLimit, GapTolerance}.
//   - It returns a terminal Status. With Optimal or FeasibleTimeLimit the
//     Solution carries the solved x matrix (0/1), the u positions and the
//     objective value; both statuses describe a usable single-cycle tour.
//   - Infeasible and NoSolution carry no tour; StatusError maps them to
//     ErrSolverUnavailable / ErrNoSolutionFound.
//   - Callers must not assume the engine is deterministic across runs;
//     Verify re-checks any returned assignment against the model rows.
//
// BranchAndBound is the default engine: depth-first search with
// deterministic branching, an admissible degree-relaxation upper bound and
// a wall-clock budget. Any other exact or heuristic ATSP engine (for
// instance an external MILP solver fed with model.WriteLP) may be plugged
// in behind the Solver interface.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/model"
)

var (
	// ErrSolverUnavailable is reported when the engine declares the model
	// infeasible or cannot run at all.
	ErrSolverUnavailable = errors.New("solver: solver unavailable or model infeasible")

	// ErrNoSolutionFound is reported when the engine stops without any
	// feasible tour.
	ErrNoSolutionFound = errors.New("solver: no solution found")

	// ErrInvalidOptions reports a negative time limit or gap tolerance.
	ErrInvalidOptions = errors.New("solver: invalid options")

	// ErrContractViolation reports a returned assignment that does not
	// satisfy the model it was solved for.
	ErrContractViolation = errors.New("solver: solution violates the model")
)

const (
	// DefaultTimeLimit is the wall-clock budget of a solve.
	DefaultTimeLimit = 600 * time.Second

	// DefaultGapTolerance is the relative optimality gap at which the
	// search may stop.
	DefaultGapTolerance = 1e-9
)

// Status is the terminal state of a solve.
type Status uint8

const (
	// StatusUnknown is the zero value; engines never return it.
	StatusUnknown Status = iota
	// Optimal means the tour is proven optimal within the gap tolerance.
	Optimal
	// FeasibleTimeLimit means the budget ran out; the tour is the best found.
	FeasibleTimeLimit
	// Infeasible means the engine proved no tour exists.
	Infeasible
	// NoSolution means the engine stopped without a tour.
	NoSolution
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case FeasibleTimeLimit:
		return "FEASIBLE_TIME_LIMIT"
	case Infeasible:
		return "INFEASIBLE"
	case NoSolution:
		return "NO_SOLUTION"
	default:
		return "UNKNOWN"
	}
}

// HasTour reports whether a solution with this status carries a usable tour.
func (s Status) HasTour() bool { return s == Optimal || s == FeasibleTimeLimit }

// StatusError maps a status without a tour to its sentinel; nil otherwise.
func StatusError(s Status) error {
	switch s {
	case Optimal, FeasibleTimeLimit:
		return nil
	case Infeasible:
		return fmt.Errorf("%w: status %s", ErrSolverUnavailable, s)
	default:
		return fmt.Errorf("%w: status %s", ErrNoSolutionFound, s)
	}
}

// Options configures a solve.
type Options struct {
	// TimeLimit bounds the solve; 0 means unlimited.
	TimeLimit time.Duration

	// GapTolerance is the relative gap (bound − incumbent)/max(1,|incumbent|)
	// below which a subtree is not explored.
	GapTolerance float64
}

// DefaultOptions returns a 600s budget and a 1e-9 gap tolerance.
func DefaultOptions() Options {
	return Options{TimeLimit: DefaultTimeLimit, GapTolerance: DefaultGapTolerance}
}

// Validate rejects negative or NaN settings.
func (o Options) Validate() error {
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit %s", ErrInvalidOptions, o.TimeLimit)
	}
	if o.GapTolerance < 0 || math.IsNaN(o.GapTolerance) || math.IsInf(o.GapTolerance, 0) {
		return fmt.Errorf("%w: gap tolerance %g", ErrInvalidOptions, o.GapTolerance)
	}

	return nil
}

// Solution is the result of a solve. X and U are nil unless Status.HasTour().
type Solution struct {
	Status Status

	// X is the S×S adjacency assignment: X[i][j] = 1 when j follows i.
	X *matrix.Dense

	// U holds the MTZ positions; U[0] is unused and zero.
	U []float64

	// Objective is the closed-tour objective of X.
	Objective float64

	// Bound is the best known upper bound on the objective.
	Bound float64

	// Nodes counts search nodes; Elapsed is the wall-clock solve time.
	Nodes   int64
	Elapsed time.Duration
}

// Solver is the narrow contract of a tour engine.
type Solver interface {
	Solve(ctx context.Context, m *model.TourModel, opts Options) (Solution, error)
}

// Verify checks that a solution with a tour satisfies every row of m.
func Verify(m *model.TourModel, sol Solution) error {
	if !sol.Status.HasTour() {
		return StatusError(sol.Status)
	}
	if sol.X == nil {
		return fmt.Errorf("%w: missing x assignment", ErrContractViolation)
	}
	values, err := m.Assignment(sol.X, sol.U)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContractViolation, err)
	}
	if err = m.Check(values, model.DefaultTolerance); err != nil {
		return fmt.Errorf("%w: %w", ErrContractViolation, err)
	}

	return nil
}
