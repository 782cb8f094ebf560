// SPDX-License-Identifier: MIT

// Package solver: Branch-and-Bound (exact search with admissible upper bounds).
//
// BranchAndBound enumerates Hamiltonian cycles through slide 0 via a
// depth-first search that maximizes the closed-tour interest.
//
// Rationale (succinct):
//  1. The coefficient matrix is prefetched into a dense buffer to remove
//     interface overhead in hot loops.
//  2. A greedy tour (always follow the highest-interest unvisited slide)
//     seeds the incumbent, so a feasible tour exists from the first node
//     and an exhausted budget still yields FeasibleTimeLimit.
//  3. Search: DFS with a degree-1 relaxation upper bound (UB):
//     - every vertex whose outgoing edge is not fixed adds maxOut[v];
//     - every vertex whose incoming edge is not fixed adds maxIn[v];
//     - UB = valueSoFar + min(Σ maxOut, Σ maxIn). Both sums overestimate
//     the remaining edges, so the bound is admissible (≥ OPT).
//     Prune whenever UB ≤ incumbent + gap allowance.
//  4. Branching order: from the current “last”, try next vertices v in
//     descending w[last→v] (index tiebreak), which tightens the incumbent
//     early while staying fully deterministic.
//  5. Time budget and context cancellation are checked every 4096 node
//     events, keeping overhead negligible.
//
// Complexity:
//   - Worst case exponential in S (exact search). Practical speed comes from pruning.
//   - Per node: O(S) bound + O(1) state updates.
//   - Memory: O(S) for the current path + O(S²) for the prefetch and neighbor orders.

package solver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/model"
)

// deadlineMask sets how often (in node events) the budget is polled.
const deadlineMask = 4095

// BranchAndBound is the in-process exact engine. The zero value is ready
// to use and holds no state between solves, so one value may serve
// concurrent solves of independent models.
type BranchAndBound struct{}

var _ Solver = BranchAndBound{}

// bbEngine holds all search data of one solve.
type bbEngine struct {
	// Configuration / policy
	n     int
	start int
	gap   float64

	// Time budget
	ctx         context.Context
	useDeadline bool
	deadline    time.Time
	steps       int
	stopped     bool

	// Coefficients (dense buffer): w[u*n+v]
	w []float64

	// Precomputes for bound / branching order
	maxOut []float64 // per-vertex maximal outgoing interest (excluding self)
	maxIn  []float64 // per-vertex maximal incoming interest (excluding self)
	order  [][]int   // for each u: v≠u sorted by descending w[u→v] (index tiebreak)

	// Current search state
	visited []bool
	path    []int // path[0:depth], path[0] == start

	// Incumbent
	bestTour []int
	bestCost float64
	foundAny bool
	nodes    int64
}

// at is a fast accessor into the dense weight buffer.
func (e *bbEngine) at(u, v int) float64 { return e.w[u*e.n+v] }

// deadlineCheck polls the wall clock and the context every deadlineMask+1 events.
func (e *bbEngine) deadlineCheck() bool {
	e.steps++
	if (e.steps & deadlineMask) != 0 {
		return false
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		return true
	}

	return e.ctx.Err() != nil
}

// allowance is the absolute slack derived from the relative gap tolerance.
func (e *bbEngine) allowance() float64 {
	return e.gap * math.Max(1, math.Abs(e.bestCost))
}

// precompute builds maxOut/maxIn and the neighbor orders.
func (e *bbEngine) precompute() {
	var (
		u, v   int
		mo, mi float64
	)
	e.maxOut = make([]float64, e.n)
	e.maxIn = make([]float64, e.n)
	for v = 0; v < e.n; v++ {
		mo, mi = 0, 0
		for u = 0; u < e.n; u++ {
			if u == v {
				continue
			}
			mo = math.Max(mo, e.at(v, u))
			mi = math.Max(mi, e.at(u, v))
		}
		e.maxOut[v] = mo
		e.maxIn[v] = mi
	}

	e.order = make([][]int, e.n)
	for u = 0; u < e.n; u++ {
		row := make([]int, 0, e.n-1)
		for v = 0; v < e.n; v++ {
			if v != u {
				row = append(row, v)
			}
		}
		no := neighborOrder{u: u, row: row, e: e}
		sort.Sort(&no)
		e.order[u] = no.row
	}
}

// neighborOrder implements sort.Interface for a row of neighbors ordered by
// descending weight, then ascending index.
type neighborOrder struct {
	u   int
	row []int
	e   *bbEngine
}

func (no neighborOrder) Len() int { return len(no.row) }
func (no neighborOrder) Less(i, j int) bool {
	vi, vj := no.row[i], no.row[j]
	wi, wj := no.e.at(no.u, vi), no.e.at(no.u, vj)
	if wi == wj {
		return vi < vj
	}

	return wi > wj
}
func (no *neighborOrder) Swap(i, j int) { no.row[i], no.row[j] = no.row[j], no.row[i] }

// seedGreedy installs the greedy tour from start as the first incumbent.
func (e *bbEngine) seedGreedy() {
	var (
		seen  = make([]bool, e.n)
		tour  = make([]int, e.n)
		last  = e.start
		total float64
		k     int
	)
	seen[last] = true
	tour[0] = last
	for k = 1; k < e.n; k++ {
		for _, v := range e.order[last] {
			if !seen[v] {
				total += e.at(last, v)
				seen[v] = true
				tour[k] = v
				last = v
				break
			}
		}
	}
	total += e.at(last, e.start)
	e.commit(tour, total)
}

// commit records a strictly better incumbent.
func (e *bbEngine) commit(tour []int, total float64) {
	if e.foundAny && total <= e.bestCost {
		return
	}
	copy(e.bestTour, tour)
	e.bestCost = total
	e.foundAny = true
}

// upperBound implements the degree-1 relaxation (admissible for ATSP).
// Outgoing is fixed for all visited vertices except 'last'; incoming is
// fixed for all visited vertices except 'start'.
func (e *bbEngine) upperBound(valueSoFar float64, last int) float64 {
	var (
		sumOut = e.maxOut[last]
		sumIn  = e.maxIn[e.start]
		v      int
	)
	for v = 0; v < e.n; v++ {
		if !e.visited[v] {
			sumOut += e.maxOut[v]
			sumIn += e.maxIn[v]
		}
	}

	return valueSoFar + math.Min(sumOut, sumIn)
}

// dfs performs the core search: deterministic branching + pruning by UB ≤ incumbent + gap.
func (e *bbEngine) dfs(last int, depth int, valueSoFar float64) {
	if e.stopped {
		return
	}
	if e.deadlineCheck() {
		e.stopped = true
		return
	}
	e.nodes++

	if e.upperBound(valueSoFar, last) <= e.bestCost+e.allowance() {
		return
	}

	// All vertices placed: close the cycle at start.
	if depth == e.n {
		e.commit(e.path, valueSoFar+e.at(last, e.start))
		return
	}

	for _, v := range e.order[last] {
		if e.visited[v] {
			continue
		}
		e.visited[v] = true
		e.path[depth] = v
		e.dfs(v, depth+1, valueSoFar+e.at(last, v))
		e.visited[v] = false
		if e.stopped {
			return
		}
	}
}

// Solve runs the exact search on m.
//
// Status:
//   - Optimal when the search space is exhausted.
//   - FeasibleTimeLimit when opts.TimeLimit or ctx ends the search; the
//     incumbent (at worst the greedy seed) is returned.
//   - NoSolution when no incumbent exists.
//
// Errors: ErrInvalidOptions, and ErrSolverUnavailable for a nil model or
// one with fewer than two slides.
func (BranchAndBound) Solve(ctx context.Context, m *model.TourModel, opts Options) (Solution, error) {
	if m == nil || m.S < 2 || m.Interest == nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrSolverUnavailable, model.ErrTooFewSlides)
	}
	if err := opts.Validate(); err != nil {
		return Solution{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	began := time.Now()

	// Engine initialization.
	var e bbEngine
	e.n = m.S
	e.start = 0
	e.gap = opts.GapTolerance
	e.ctx = ctx
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = began.Add(opts.TimeLimit)
	}
	e.w = m.Interest.Flat()
	e.precompute()

	e.visited = make([]bool, e.n)
	e.path = make([]int, e.n)
	e.bestTour = make([]int, e.n)
	e.bestCost = math.Inf(-1)
	e.path[0] = e.start
	e.visited[e.start] = true

	e.seedGreedy()
	rootBound := e.upperBound(0, e.start)

	if ctx.Err() != nil {
		e.stopped = true
	}
	e.dfs(e.start, 1, 0)

	sol := Solution{Nodes: e.nodes, Elapsed: time.Since(began)}
	switch {
	case !e.foundAny:
		sol.Status = NoSolution
		return sol, nil
	case e.stopped:
		sol.Status = FeasibleTimeLimit
		sol.Bound = math.Max(rootBound, e.bestCost)
	default:
		sol.Status = Optimal
		sol.Bound = e.bestCost
	}
	sol.Objective = e.bestCost

	var err error
	if sol.X, sol.U, err = tourToAssignment(e.bestTour); err != nil {
		return Solution{}, err
	}

	return sol, nil
}

// tourToAssignment converts an open tour (starting at 0) into the x matrix
// and MTZ positions u[tour[k]] = k.
func tourToAssignment(tour []int) (*matrix.Dense, []float64, error) {
	n := len(tour)
	x, err := matrix.NewSquare(n)
	if err != nil {
		return nil, nil, err
	}
	u := make([]float64, n)
	for k := 0; k < n; k++ {
		if err = x.Set(tour[k], tour[(k+1)%n], 1); err != nil {
			return nil, nil, err
		}
		if k > 0 {
			u[tour[k]] = float64(k)
		}
	}

	return x, u, nil
}
