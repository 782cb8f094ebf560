// SPDX-License-Identifier: MIT

// Package tour reconstructs the slideshow order from a solved adjacency
// matrix.
//
// Provided helpers:
//   - Walk: follow the activated edge x[current][j] > EdgeThreshold from
//     slide 0 for S steps and return the visited slide indices.
//   - Extract: Walk, then map indices to slides with sorted photo indices.
//   - ValidatePermutation: verify a permutation over {0..n-1}.
//
// Design:
//   - No logging, no panics on user input; only sentinel errors.
//   - A missing outgoing edge, a revisit, or a walk that does not return to
//     slide 0 is ErrExtractionInconsistency: the solver broke the model
//     contract and the order is never silently truncated.
//   - Deterministic: among several activated edges the lowest index wins.
package tour

import "errors"

var (
	// ErrExtractionInconsistency reports an adjacency matrix that does not
	// describe a single Hamiltonian cycle.
	ErrExtractionInconsistency = errors.New("tour: extraction inconsistency")

	// ErrDimensionMismatch reports a matrix, slide list or permutation of
	// the wrong size.
	ErrDimensionMismatch = errors.New("tour: dimension mismatch")
)
