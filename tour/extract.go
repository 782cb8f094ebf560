// SPDX-License-Identifier: MIT

package tour

import (
	"fmt"

	"github.com/katalvlaran/slideshow/matrix"
	"github.com/katalvlaran/slideshow/slideshow"
)

// EdgeThreshold is the value above which x[i][j] counts as an activated edge.
const EdgeThreshold = 0.5

// Walk returns the slide indices visited from slide 0 by following the
// activated outgoing edge S times. The closing edge back to 0 is checked but
// not emitted.
//
// Contracts:
//   - x is square (S×S), S ≥ 1.
//   - Returned slice has length S, starts with 0 and is a permutation.
//
// Errors: ErrDimensionMismatch for a malformed matrix;
// ErrExtractionInconsistency when a node has no activated outgoing edge,
// when a node is revisited, or when the last edge does not return to 0.
//
// Complexity: O(S²).
func Walk(x matrix.Matrix) ([]int, error) {
	n, err := matrix.RequireSquare(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if n == 0 {
		return nil, ErrDimensionMismatch
	}

	var (
		order   = make([]int, 0, n)
		visited = make([]bool, n)
		current = 0
		next    int
		step    int
	)
	for step = 0; step < n; step++ {
		if visited[current] {
			return nil, fmt.Errorf("%w: slide %d revisited at step %d", ErrExtractionInconsistency, current, step)
		}
		visited[current] = true
		order = append(order, current)

		if next, err = successor(x, current); err != nil {
			return nil, err
		}
		current = next
	}
	if current != 0 {
		return nil, fmt.Errorf("%w: tour does not return to slide 0 (ends at %d)", ErrExtractionInconsistency, current)
	}

	return order, nil
}

// successor finds the lowest j ≠ i with x[i][j] > EdgeThreshold.
func successor(x matrix.Matrix, i int) (int, error) {
	n := x.Cols()
	if n == 1 {
		return 0, nil // a single slide closes on itself
	}
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		v, err := x.At(i, j)
		if err != nil {
			return 0, err
		}
		if v > EdgeThreshold {
			return j, nil
		}
	}

	return 0, fmt.Errorf("%w: no outgoing edge from slide %d", ErrExtractionInconsistency, i)
}

// Extract walks x and returns the slides in presentation order, each with
// its photo indices sorted.
//
// Errors: ErrDimensionMismatch when x does not match len(slides); see Walk.
func Extract(x matrix.Matrix, slides []slideshow.Slide) ([]slideshow.Slide, error) {
	n, err := matrix.RequireSquare(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if n != len(slides) {
		return nil, fmt.Errorf("%w: %d×%d matrix for %d slides", ErrDimensionMismatch, n, n, len(slides))
	}
	idx, err := Walk(x)
	if err != nil {
		return nil, err
	}

	return Arrange(slides, idx)
}

// Arrange returns slides[idx[0]], slides[idx[1]], … with sorted photo
// indices. idx must be a permutation of the slide positions.
func Arrange(slides []slideshow.Slide, idx []int) ([]slideshow.Slide, error) {
	if err := ValidatePermutation(idx, len(slides)); err != nil {
		return nil, err
	}
	out := make([]slideshow.Slide, len(idx))
	for k, i := range idx {
		out[k] = slides[i].Normalized()
	}

	return out, nil
}
