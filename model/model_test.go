// SPDX-License-Identifier: MIT

package model_test

import (
	"bytes"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/model"
	"github.com/katalvlaran/slideshow/slideshow"
)

// mkInterest4 is a small asymmetric coefficient matrix.
func mkInterest4(t *testing.T) *matrix.Dense {
	t.Helper()
	w, err := matrix.FromRows([][]float64{
		{0, 1, 2, 3},
		{4, 0, 5, 6},
		{7, 8, 0, 9},
		{1, 2, 3, 0},
	})
	require.NoError(t, err)

	return w
}

// tourAssignment turns a slide sequence (open, starting at 0) into x and u.
func tourAssignment(t *testing.T, m *model.TourModel, seq []int) []float64 {
	t.Helper()
	x, err := matrix.NewSquare(m.S)
	require.NoError(t, err)
	u := make([]float64, m.S)
	for k := range seq {
		require.NoError(t, x.Set(seq[k], seq[(k+1)%len(seq)], 1))
		u[seq[k]] = float64(k)
	}
	values, err := m.Assignment(x, u)
	require.NoError(t, err)

	return values
}

func TestFromInterestLayout(t *testing.T) {
	m, err := model.FromInterest(mkInterest4(t))
	require.NoError(t, err)

	const s = 4
	assert.Equal(t, s, m.S)
	require.Len(t, m.Vars, s*(s-1)+s-1)
	require.Len(t, m.Objective, len(m.Vars))
	// 2S degree rows plus (S-1)(S-2) MTZ rows.
	require.Len(t, m.Constraints, 2*s+(s-1)*(s-2))

	assert.Equal(t, -1, m.X(2, 2))
	assert.Equal(t, -1, m.X(0, 9))
	assert.Equal(t, 0, m.X(0, 1))
	assert.Equal(t, "x_1_0", m.Vars[m.X(1, 0)].Name)
	assert.Equal(t, model.Binary, m.Vars[m.X(1, 0)].Kind)
	assert.Equal(t, 5.0, m.Objective[m.X(1, 2)])

	assert.Equal(t, -1, m.U(0))
	assert.Equal(t, "u_3", m.Vars[m.U(3)].Name)
	assert.Equal(t, model.Continuous, m.Vars[m.U(3)].Kind)
	assert.Zero(t, m.Objective[m.U(3)])

	mtz := m.Constraints[2*s]
	assert.Equal(t, "mtz_1_2", mtz.Name)
	assert.Equal(t, model.LessEqual, mtz.Sense)
	assert.Equal(t, float64(s-1), mtz.RHS)
	assert.Equal(t, []model.Term{{Var: m.U(1), Coef: 1}, {Var: m.U(2), Coef: -1}, {Var: m.X(1, 2), Coef: s}}, mtz.Terms)
}

func TestFromInterestErrors(t *testing.T) {
	one, err := matrix.NewSquare(1)
	require.NoError(t, err)
	_, err = model.FromInterest(one)
	require.ErrorIs(t, err, model.ErrTooFewSlides)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = model.FromInterest(rect)
	require.ErrorIs(t, err, model.ErrDimensionMismatch)

	neg, err := matrix.FromRows([][]float64{{0, -1}, {1, 0}})
	require.NoError(t, err)
	_, err = model.FromInterest(neg)
	require.ErrorIs(t, err, model.ErrNegativeInterest)

	_, err = model.Build([]slideshow.Slide{{Photos: []int{0}, Tags: mapset.NewSet("a")}})
	require.ErrorIs(t, err, model.ErrTooFewSlides)
}

func TestCheckAcceptsSingleCycle(t *testing.T) {
	m, err := model.FromInterest(mkInterest4(t))
	require.NoError(t, err)

	values := tourAssignment(t, m, []int{0, 2, 1, 3})
	require.NoError(t, m.Check(values, model.DefaultTolerance))
	// 0→2 (2) + 2→1 (8) + 1→3 (6) + 3→0 (1): the closed cycle.
	assert.Equal(t, 17.0, m.Evaluate(values))
}

func TestCheckRejectsSubtours(t *testing.T) {
	m, err := model.FromInterest(mkInterest4(t))
	require.NoError(t, err)

	// Two 2-cycles {0,1} and {2,3}: degree rows hold, MTZ rows cannot.
	x, err := matrix.FromRows([][]float64{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
	require.NoError(t, err)
	for _, u := range [][]float64{{0, 1, 2, 3}, {0, 3, 1, 2}, {0, 0, 0, 0}} {
		values, err := m.Assignment(x, u)
		require.NoError(t, err)
		err = m.Check(values, model.DefaultTolerance)
		require.ErrorIs(t, err, model.ErrInfeasibleAssignment)
		assert.Contains(t, err.Error(), "mtz_")
	}
}

func TestCheckRejectsDegreeAndDomainViolations(t *testing.T) {
	m, err := model.FromInterest(mkInterest4(t))
	require.NoError(t, err)

	values := tourAssignment(t, m, []int{0, 1, 2, 3})
	values[m.X(0, 2)] = 1 // second outgoing edge from 0
	err = m.Check(values, model.DefaultTolerance)
	require.ErrorIs(t, err, model.ErrInfeasibleAssignment)
	assert.Contains(t, err.Error(), "out_0")

	values = tourAssignment(t, m, []int{0, 1, 2, 3})
	values[m.X(0, 1)] = 0.5
	err = m.Check(values, model.DefaultTolerance)
	require.ErrorIs(t, err, model.ErrInfeasibleAssignment)
	assert.Contains(t, err.Error(), "not binary")

	values = tourAssignment(t, m, []int{0, 1, 2, 3})
	values[m.U(1)] = -2
	require.ErrorIs(t, m.Check(values, model.DefaultTolerance), model.ErrInfeasibleAssignment)

	require.ErrorIs(t, m.Check(values[:3], model.DefaultTolerance), model.ErrDimensionMismatch)
}

func TestBuildFromSlides(t *testing.T) {
	slides := []slideshow.Slide{
		{Photos: []int{0}, Tags: mapset.NewSet("a", "b")},
		{Photos: []int{1}, Tags: mapset.NewSet("b", "c")},
		{Photos: []int{3, 2}, Tags: mapset.NewSet("d", "e")},
	}
	m, err := model.Build(slides)
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.Objective[m.X(0, 1)])
	assert.Equal(t, 1.0, m.Objective[m.X(1, 0)])
	assert.Zero(t, m.Objective[m.X(0, 2)])

	w, err := model.InterestMatrix(slides)
	require.NoError(t, err)
	v, err := w.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestWriteLP(t *testing.T) {
	w, err := matrix.FromRows([][]float64{
		{0, 1, 0},
		{2, 0, 3},
		{0, 1, 0},
	})
	require.NoError(t, err)
	m, err := model.FromInterest(w)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteLP(&buf))
	lp := buf.String()

	assert.True(t, strings.HasPrefix(lp, "\\ slideshow ATSP, S=3"))
	assert.Contains(t, lp, "Maximize\n obj: 1 x_0_1 + 0 x_0_2 + 2 x_1_0 + 3 x_1_2 + 0 x_2_0 + 1 x_2_1\n")
	assert.Contains(t, lp, " out_0: 1 x_0_1 + 1 x_0_2 = 1\n")
	assert.Contains(t, lp, " in_2: 1 x_0_2 + 1 x_1_2 = 1\n")
	assert.Contains(t, lp, " mtz_1_2: 1 u_1 - 1 u_2 + 3 x_1_2 <= 2\n")
	assert.Contains(t, lp, "Bounds\n u_1 >= 0\n u_2 >= 0\n")
	assert.Contains(t, lp, "Binaries\n x_0_1 x_0_2 x_1_0 x_1_2 x_2_0 x_2_1\nEnd\n")
}
