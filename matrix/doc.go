// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage shared by the tour model
// and the solver: the interest coefficient matrix of a slideshow instance and
// the solved adjacency assignment x[i][j].
//
// Contracts:
//   - Indexing never panics on user input; out-of-range access returns
//     ErrIndexOutOfBounds wrapped with the method and coordinates.
//   - Set rejects NaN and ±Inf (ErrNaNInf); solver matrices are always finite.
//   - Dense is row-major over a single flat slice: At/Set are O(1).
//
// The package holds no global state; every matrix is owned by its creator.
package matrix
