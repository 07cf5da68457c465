// SPDX-License-Identifier: MIT

// Package matrix: public Matrix interface shared by Dense and the kernels.
// Errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// Eigenpairs is the result of a symmetric (generalized) eigen decomposition.
// Values are sorted ascending; column k of Vectors belongs to Values[k].
type Eigenpairs struct {
	Values  []float64 // ascending eigenvalues
	Vectors *Dense    // n×n, columns are eigenvectors
	Sweeps  int       // Jacobi sweeps performed

	// Residual is max ‖H x − λ M x‖∞ over the pairs; set by GeneralizedEigen only.
	Residual float64
}
