// SPDX-License-Identifier: MIT

// Package pipeline runs slideshow instances end to end:
// parse → pair → build → solve → extract → audit → write.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/slideshow/model"
	"github.com/katalvlaran/slideshow/slideshow"
	"github.com/katalvlaran/slideshow/solver"
	"github.com/katalvlaran/slideshow/store"
	"github.com/katalvlaran/slideshow/tour"
)

// Report summarizes one successful run.
type Report struct {
	Input  string
	Output string
	// Photos is the declared photo count; Dropped the unpaired vertical photos.
	Photos  int
	Dropped int
	Slides  int
	Status  solver.Status
	// Objective is the closed-tour value reported by the solver. Score is the
	// audited open-path value of the written order and excludes the closing
	// edge, so Score ≤ Objective.
	Objective float64
	Bound     float64
	Score     int
	Elapsed   time.Duration
	Order     []slideshow.Slide
}

// Runner executes instances. A Runner holds configuration only; every call
// owns its own photos, slides, model and solution.
type Runner struct {
	solver  solver.Solver
	opts    solver.Options
	history *store.History
	lpPath  string
}

// Option configures a Runner.
type Option func(*Runner)

// WithSolver replaces the in-process branch-and-bound engine.
func WithSolver(s solver.Solver) Option {
	return func(r *Runner) { r.solver = s }
}

// WithOptions sets the solver time limit and gap tolerance.
func WithOptions(opts solver.Options) Option {
	return func(r *Runner) { r.opts = opts }
}

// WithHistory records every run, successful or not, in h.
func WithHistory(h *store.History) Option {
	return func(r *Runner) { r.history = h }
}

// WithLPExport writes the LP rendering of each model to path. In batch mode
// each instance writes <input>.lp instead.
func WithLPExport(path string) Option {
	return func(r *Runner) { r.lpPath = path }
}

// New returns a Runner using solver.BranchAndBound and solver.DefaultOptions
// unless overridden.
func New(opts ...Option) *Runner {
	r := &Runner{solver: solver.BranchAndBound{}, opts: solver.DefaultOptions()}
	for _, o := range opts {
		o(r)
	}

	return r
}

// Run solves the instance at input and writes the order to output
// (slideshow.DefaultOutputName when empty). Nothing is written on failure.
func (r *Runner) Run(ctx context.Context, input, output string) (Report, error) {
	return r.run(ctx, input, output, r.lpPath)
}

func (r *Runner) run(ctx context.Context, input, output, lpPath string) (rep Report, err error) {
	if output == "" {
		output = slideshow.DefaultOutputName
	}
	began := time.Now()
	rep = Report{Input: input, Output: output}
	defer func() {
		rep.Elapsed = time.Since(began)
		r.record(ctx, rep, err)
	}()

	in, err := slideshow.ReadFile(input)
	if err != nil {
		return rep, err
	}
	slides := slideshow.Assemble(in)
	rep.Photos, rep.Dropped, rep.Slides = in.Photos, in.Dropped(), len(slides)
	klog.V(1).Infof("%s: %d photos, %d slides, %d vertical dropped", input, rep.Photos, rep.Slides, rep.Dropped)

	if err = r.order(ctx, slides, lpPath, &rep); err != nil {
		return rep, fmt.Errorf("%s: %w", input, err)
	}

	if rep.Score, err = slideshow.NewCatalog(slides).Score(rep.Order); err != nil {
		return rep, fmt.Errorf("%s: audit: %w", input, err)
	}
	// A cancelled run never replaces the output.
	if err = ctx.Err(); err != nil {
		return rep, fmt.Errorf("%s: %w", input, err)
	}
	if err = slideshow.WriteFile(output, rep.Order); err != nil {
		return rep, err
	}
	klog.Infof("%s: %s, %d slides, score %d (objective %g) -> %s",
		input, rep.Status, rep.Slides, rep.Score, rep.Objective, output)

	return rep, nil
}

// order fills rep.Order. Fewer than two slides need no model.
func (r *Runner) order(ctx context.Context, slides []slideshow.Slide, lpPath string, rep *Report) error {
	if len(slides) <= 1 {
		rep.Status = solver.Optimal
		idx := make([]int, len(slides))
		for i := range idx {
			idx[i] = i
		}
		var err error
		rep.Order, err = tour.Arrange(slides, idx)
		return err
	}

	m, err := model.Build(slides)
	if err != nil {
		return err
	}
	klog.V(1).Infof("model: %d variables, %d constraints", len(m.Vars), len(m.Constraints))
	if lpPath != "" {
		if err := m.WriteLPFile(lpPath); err != nil {
			return err
		}
		klog.V(1).Infof("model written to %s", lpPath)
	}

	sol, err := r.solver.Solve(ctx, m, r.opts)
	if err != nil {
		return err
	}
	// The engine reports a cancelled search as FeasibleTimeLimit; only the
	// configured time limit may end it early.
	if err := ctx.Err(); err != nil {
		return err
	}
	rep.Status, rep.Objective, rep.Bound = sol.Status, sol.Objective, sol.Bound
	klog.V(1).Infof("solver: %s after %s, %d nodes, objective %g, bound %g",
		sol.Status, sol.Elapsed, sol.Nodes, sol.Objective, sol.Bound)
	if err := solver.StatusError(sol.Status); err != nil {
		return err
	}
	if sol.Status == solver.FeasibleTimeLimit {
		klog.Warningf("time limit reached; tour may be suboptimal (objective %g, bound %g)", sol.Objective, sol.Bound)
	}
	if err := solver.Verify(m, sol); err != nil {
		return err
	}

	rep.Order, err = tour.Extract(sol.X, slides)
	return err
}

func (r *Runner) record(ctx context.Context, rep Report, runErr error) {
	if r.history == nil {
		return
	}
	run := store.Run{
		Input:     rep.Input,
		Output:    rep.Output,
		Slides:    rep.Slides,
		Status:    rep.Status.String(),
		Objective: rep.Objective,
		Score:     rep.Score,
		Elapsed:   rep.Elapsed,
	}
	if runErr != nil {
		run.Err = runErr.Error()
	}
	// Cancelled runs are recorded too.
	if _, err := r.history.Record(context.WithoutCancel(ctx), run); err != nil {
		klog.Errorf("history: %v", err)
	}
}
