// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// InstanceExt is the file extension RunBatch treats as an instance.
const InstanceExt = ".txt"

// SolutionPath returns the output path RunBatch uses for input.
func SolutionPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".sol"
}

// Find returns every instance file under root, sorted. Hidden files and
// directories are skipped.
func Find(root string) ([]string, error) {
	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && strings.HasPrefix(filepath.Base(path), ".") {
				return godirwalk.SkipThis
			}
			if de.IsRegular() && filepath.Ext(path) == InstanceExt {
				found = append(found, path)
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)

	return found, nil
}

// RunBatch solves every instance under root with at most parallel instances
// in flight, writing each order to SolutionPath(input). Instances share
// nothing; the first failure cancels the rest and is returned along with the
// reports completed so far, in input order.
func (r *Runner) RunBatch(ctx context.Context, root string, parallel int) ([]Report, error) {
	inputs, err := Find(root)
	if err != nil {
		return nil, err
	}
	klog.Infof("found %d instances under %s", len(inputs), root)
	if parallel < 1 {
		parallel = 1
	}

	reports := make([]*Report, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lp := ""
			if r.lpPath != "" {
				lp = input + ".lp"
			}
			rep, err := r.run(gctx, input, SolutionPath(input), lp)
			if err != nil {
				return err
			}
			reports[i] = &rep
			return nil
		})
	}
	err = g.Wait()

	out := make([]Report, 0, len(reports))
	for _, rep := range reports {
		if rep != nil {
			out = append(out, *rep)
		}
	}

	return out, err
}
