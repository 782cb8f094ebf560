// SPDX-License-Identifier: MIT

package matrix

// Matrix is the minimal read/write surface used by the tour model, the
// solver and the tour extractor. *Dense is the canonical implementation;
// tests may provide their own.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrIndexOutOfBounds if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrIndexOutOfBounds if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// RequireSquare returns the order n of m, or an error when m is nil
// (ErrNilMatrix) or not square (ErrNonSquare).
//
// Complexity: O(1).
func RequireSquare(m Matrix) (int, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if m.Rows() != m.Cols() {
		return 0, ErrNonSquare
	}

	return m.Rows(), nil
}
