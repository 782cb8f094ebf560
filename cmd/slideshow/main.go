// SPDX-License-Identifier: MIT

// Command slideshow orders the photos of an instance file into the slideshow
// with the highest transition interest and writes the solution file.
//
//	slideshow [flags] <input.txt | dir>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/slideshow/config"
	"github.com/katalvlaran/slideshow/pipeline"
	"github.com/katalvlaran/slideshow/store"
)

var (
	configFlag    = flag.String("config", "", "optional config file (yaml, json, toml)")
	outFlag       = flag.String("out", "", "solution file (default slideshow.sol)")
	timeLimitFlag = flag.Duration("time-limit", 0, "solver time budget (default 10m)")
	gapFlag       = flag.Float64("gap", 0, "relative optimality gap tolerance (default 1e-9)")
	lpFlag        = flag.String("lp", "", "write the LP model to this file")
	historyFlag   = flag.String("history", "", "SQLite file recording each run")
	watchFlag     = flag.Bool("watch", false, "rerun whenever the input file changes")
	parallelFlag  = flag.Int("parallel", 0, "instances solved concurrently in directory mode (default 1)")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.txt | dir>\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(), "-out and -watch apply to a single input file only.\n")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return
	}

	if err := run(flag.Arg(0), givenFlags()); err != nil {
		klog.Exitf("%v", err)
	}
}

// run executes one invocation. Deferred cleanup completes before main exits.
func run(input string, given map[string]bool) error {
	c, err := config.Load(*configFlag)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlags(&c, given)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	fi, err := os.Stat(input)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		if err := checkBatchFlags(given); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []pipeline.Option{pipeline.WithOptions(c.SolverOptions())}
	if c.LPPath != "" {
		opts = append(opts, pipeline.WithLPExport(c.LPPath))
	}
	if c.HistoryDB != "" {
		h, err := store.Open(c.HistoryDB)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		defer func() {
			if err := h.Close(); err != nil {
				klog.Errorf("history: %v", err)
			}
		}()
		opts = append(opts, pipeline.WithHistory(h))
	}
	r := pipeline.New(opts...)

	if fi.IsDir() {
		reports, err := r.RunBatch(ctx, input, c.Parallel)
		if err != nil {
			return fmt.Errorf("batch failed after %d instances: %w", len(reports), err)
		}
		total := 0
		for _, rep := range reports {
			total += rep.Score
		}
		klog.Infof("solved %d instances, total score %d", len(reports), total)
		return nil
	}

	if _, err := r.Run(ctx, input, c.Output); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	if *watchFlag {
		if err := watch(ctx, r, input, c.Output); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
	}

	return nil
}

// givenFlags returns the names of the flags set on the command line.
func givenFlags() map[string]bool {
	given := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { given[f.Name] = true })

	return given
}

// singleFileFlags have no meaning for a directory input.
var singleFileFlags = []string{"out", "watch"}

// checkBatchFlags rejects single-file flags in directory mode.
func checkBatchFlags(given map[string]bool) error {
	for _, name := range singleFileFlags {
		if given[name] {
			return fmt.Errorf("-%s applies to a single input file, not a directory", name)
		}
	}

	return nil
}

// applyFlags overrides c with the flags named in given.
func applyFlags(c *config.Config, given map[string]bool) {
	if given["out"] {
		c.Output = *outFlag
	}
	if given["time-limit"] {
		c.TimeLimit = *timeLimitFlag
	}
	if given["gap"] {
		c.GapTolerance = *gapFlag
	}
	if given["lp"] {
		c.LPPath = *lpFlag
	}
	if given["history"] {
		c.HistoryDB = *historyFlag
	}
	if given["parallel"] {
		c.Parallel = *parallelFlag
	}
}

// watch reruns the instance whenever input is written, until ctx ends.
// The parent directory is watched so editors that replace the file are seen.
func watch(ctx context.Context, r *pipeline.Runner, input, output string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	want := filepath.Clean(input)
	klog.Infof("watching %s ...", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != want {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				klog.V(1).Infof("event: %s", event)
				if _, err := r.Run(ctx, input, output); err != nil {
					klog.Errorf("run failed: %v", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
