// SPDX-License-Identifier: MIT

// Package matrix - compressed sparse row storage for assembled FE operators.
//
// Purpose:
//   - Collect element contributions as (row, col, value) triplets with
//     duplicates summed, then freeze them into CSR.
//   - Give read-only access (At, MulVec, Dense conversion, principal
//     submatrix) with the same error discipline as Dense.
//
// Determinism:
//   - Compress sorts column indices per row; duplicate entries are summed in
//     insertion order, so identical assembly order yields bit-identical CSR.
//
// Complexity quicksheet:
//   - Triplet.Add: amortized O(1); Compress: O(nnz log nnz);
//   - At: O(log rowNNZ); MulVec: O(nnz); ToDense: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	ctxTripletAdd = "Triplet.Add"
	ctxSparseAt   = "Sparse.At"
	ctxSubmatrix  = "Sparse.Principal"
	opSparseMul   = "Sparse.MulVec"
)

// Triplet accumulates coordinate entries before compression.
type Triplet struct {
	r, c   int
	rows   []int
	cols   []int
	vals   []float64
	frozen bool
}

// NewTriplet creates an empty r×c coordinate builder.
// Returns ErrInvalidDimensions if r<0 or c<0. A 0×0 builder is valid.
func NewTriplet(rows, cols int) (*Triplet, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Triplet{r: rows, c: cols}, nil
}

// Add records A[i,j] += v.
//
// Errors:
//   - ErrSparseFrozen after Compress.
//   - ErrOutOfRange for bad indices.
//   - ErrNaNInf for a non-finite v.
func (t *Triplet) Add(i, j int, v float64) error {
	if t.frozen {
		return fmt.Errorf("%s(%d,%d): %w", ctxTripletAdd, i, j, ErrSparseFrozen)
	}
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return fmt.Errorf("%s(%d,%d): %w", ctxTripletAdd, i, j, ErrOutOfRange)
	}
	if isNonFinite(v) {
		return fmt.Errorf("%s(%d,%d): %w", ctxTripletAdd, i, j, ErrNaNInf)
	}
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)

	return nil
}

// Len reports the number of recorded (uncompressed) entries.
func (t *Triplet) Len() int { return len(t.vals) }

// Compress freezes the builder and returns the CSR matrix with duplicates
// summed. Explicit zeros produced by cancellation are kept so the sparsity
// pattern depends only on connectivity.
func (t *Triplet) Compress() *Sparse {
	t.frozen = true

	order := make([]int, len(t.vals))
	var k int
	for k = range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if t.rows[ia] != t.rows[ib] {
			return t.rows[ia] < t.rows[ib]
		}

		return t.cols[ia] < t.cols[ib]
	})

	s := &Sparse{r: t.r, c: t.c, rowPtr: make([]int, t.r+1)}
	var (
		lastRow, lastCol = -1, -1
		idx, row         int
	)
	for _, idx = range order {
		if t.rows[idx] == lastRow && t.cols[idx] == lastCol {
			s.vals[len(s.vals)-1] += t.vals[idx]
			continue
		}
		lastRow, lastCol = t.rows[idx], t.cols[idx]
		s.colIdx = append(s.colIdx, lastCol)
		s.vals = append(s.vals, t.vals[idx])
		s.rowPtr[lastRow+1]++
	}
	for row = 0; row < t.r; row++ {
		s.rowPtr[row+1] += s.rowPtr[row]
	}

	return s
}

// Sparse is an immutable CSR matrix.
type Sparse struct {
	r, c   int
	rowPtr []int // len r+1
	colIdx []int // len nnz, sorted per row
	vals   []float64
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns A[i,j] (zero when not stored).
func (s *Sparse) At(i, j int) (float64, error) {
	if s == nil {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxSparseAt, i, j, ErrNilMatrix)
	}
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxSparseAt, i, j, ErrOutOfRange)
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], j)
	if k < hi && s.colIdx[k] == j {
		return s.vals[k], nil
	}

	return 0, nil
}

// Do visits every stored entry in row-major order; stops when f returns false.
func (s *Sparse) Do(f func(i, j int, v float64) bool) {
	var i, k int
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			if !f(i, s.colIdx[k], s.vals[k]) {
				return
			}
		}
	}
}

// MulVec returns y = A x.
// Errors: ErrDimensionMismatch when len(x) != Cols().
func (s *Sparse) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, matrixErrorf(opSparseMul, err)
	}
	y := make([]float64, s.r)
	var (
		i, k int
		acc  float64
	)
	for i = 0; i < s.r; i++ {
		acc = ZeroSum
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			acc += s.vals[k] * x[s.colIdx[k]]
		}
		y[i] = acc
	}

	return y, nil
}

// ToDense materializes the matrix. A 0×0 Sparse yields a 0×0 Dense.
func (s *Sparse) ToDense() *Dense {
	d, _ := newDenseZeroOK(s.r, s.c)
	s.Do(func(i, j int, v float64) bool {
		d.data[i*s.c+j] = v
		return true
	})

	return d
}

// IsSymmetric reports whether |A[i,j] - A[j,i]| ≤ tol for all stored entries.
func (s *Sparse) IsSymmetric(tol float64) bool {
	if s.r != s.c {
		return false
	}
	sym := true
	s.Do(func(i, j int, v float64) bool {
		if j <= i {
			return true
		}
		vt, _ := s.At(j, i)
		if math.Abs(v-vt) > tol {
			sym = false
		}
		return sym
	})
	if !sym {
		return false
	}
	// Entries present only in the lower triangle.
	s.Do(func(i, j int, v float64) bool {
		if j >= i {
			return true
		}
		vt, _ := s.At(j, i)
		if math.Abs(v-vt) > tol {
			sym = false
		}
		return sym
	})

	return sym
}

// Principal extracts the principal submatrix A[idx, idx] in idx order.
//
// Errors:
//   - ErrDimensionMismatch for a non-square A.
//   - ErrOutOfRange when an index is outside [0, Rows()).
//
// Complexity: O(nnz + len(idx)).
func (s *Sparse) Principal(idx []int) (*Sparse, error) {
	if s.r != s.c {
		return nil, fmt.Errorf("%s: %w", ctxSubmatrix, ErrDimensionMismatch)
	}
	pos := make([]int, s.r)
	var (
		k, g int
	)
	for k = range pos {
		pos[k] = -1
	}
	for k, g = range idx {
		if g < 0 || g >= s.r {
			return nil, fmt.Errorf("%s: index %d: %w", ctxSubmatrix, g, ErrOutOfRange)
		}
		pos[g] = k
	}

	t, _ := NewTriplet(len(idx), len(idx))
	for k, g = range idx {
		var e int
		for e = s.rowPtr[g]; e < s.rowPtr[g+1]; e++ {
			if p := pos[s.colIdx[e]]; p >= 0 {
				_ = t.Add(k, p, s.vals[e])
			}
		}
	}

	return t.Compress(), nil
}
