// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/model"
	"github.com/katalvlaran/slideshow/solver"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		status  solver.Status
		name    string
		hasTour bool
		err     error
	}{
		{solver.Optimal, "OPTIMAL", true, nil},
		{solver.FeasibleTimeLimit, "FEASIBLE_TIME_LIMIT", true, nil},
		{solver.Infeasible, "INFEASIBLE", false, solver.ErrSolverUnavailable},
		{solver.NoSolution, "NO_SOLUTION", false, solver.ErrNoSolutionFound},
		{solver.StatusUnknown, "UNKNOWN", false, solver.ErrNoSolutionFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.status.String())
			assert.Equal(t, tc.hasTour, tc.status.HasTour())
			err := solver.StatusError(tc.status)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := solver.DefaultOptions()
	assert.Equal(t, solver.DefaultTimeLimit, opts.TimeLimit)
	assert.Equal(t, 1e-9, opts.GapTolerance)
	require.NoError(t, opts.Validate())
	require.NoError(t, solver.Options{}.Validate())
}

func TestVerifyRejectsBrokenAssignments(t *testing.T) {
	w, err := matrix.FromRows([][]float64{
		{0, 1, 1, 1},
		{1, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	})
	require.NoError(t, err)
	m, err := model.FromInterest(w)
	require.NoError(t, err)

	// Two disjoint 2-cycles.
	x, err := matrix.FromRows([][]float64{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
	require.NoError(t, err)
	sol := solver.Solution{Status: solver.Optimal, X: x, U: []float64{0, 1, 2, 3}}
	err = solver.Verify(m, sol)
	require.ErrorIs(t, err, solver.ErrContractViolation)
	require.ErrorIs(t, err, model.ErrInfeasibleAssignment)

	sol.U = []float64{0}
	require.ErrorIs(t, solver.Verify(m, sol), solver.ErrContractViolation)

	sol.X = nil
	require.ErrorIs(t, solver.Verify(m, sol), solver.ErrContractViolation)

	require.ErrorIs(t, solver.Verify(m, solver.Solution{Status: solver.NoSolution}), solver.ErrNoSolutionFound)
}
