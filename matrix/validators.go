// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - One home for the structural checks shared by the FE kernels: nil operands,
//     square operators, matching vector lengths, and symmetric pencils (H, M).
//   - Errors carry the validator tag; callers wrap once more with their op tag.
//
// Determinism & Performance:
//   - Pure checks, no allocation. ValidateSymmetric walks the upper triangle.
//
// AI-Hints:
//   - Use ValidatePencil at the entry of any generalized solver; it fixes the
//     error priority nil -> shape -> symmetry before any factorization runs.

package matrix

import (
	"fmt"
	"math"
)

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix for a nil operand.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape returns ErrDimensionMismatch unless a and b have equal
// dimensions. Both must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: %dx%d vs %dx%d",
			a.Rows(), a.Cols(), b.Rows(), b.Cols()), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare returns ErrDimensionMismatch for a non-square operator.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSquare: %dx%d", m.Rows(), m.Cols()), ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen checks len(x) == n; a nil x is accepted only for n == 0.
func ValidateVecLen(x []float64, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen: %d != %d", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric verifies |A[i,j] - A[j,i]| ≤ tol for all i<j.
// Assembled FE operators are symmetric only up to round-off, so tol should be
// scaled to the entry magnitude (see symTol).
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var aij, aji float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric: (%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidatePencil checks the structure of a generalized problem H x = λ M x:
// both operands present, H square, M of the same order. Symmetry and
// definiteness are left to the solver, which knows its tolerance.
func ValidatePencil(h, m Matrix) error {
	if err := ValidateNotNil(h); err != nil {
		return err
	}
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if err := ValidateSquare(h); err != nil {
		return err
	}

	return ValidateSameShape(h, m)
}
