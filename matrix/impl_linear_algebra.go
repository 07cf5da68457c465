// SPDX-License-Identifier: MIT
// Package matrix provides the dense linear-algebra kernels used by the
// finite-element eigen pipeline: matrix-vector products, a cyclic Jacobi
// symmetric eigen solver, Cholesky factorization, triangular solves, the
// Cholesky-reduced generalized eigenproblem and its residual.
// All functions perform strict fail-fast validation and return clear errors.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across the module.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and return sentinels wrapped via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec      = "MatVec"
	opResidual    = "Residual"
	opEigen       = "Eigen"
	opCholesky    = "Cholesky"
	opSolveLower  = "SolveLower"
	opSolveUpperT = "SolveLowerT"
	opGenEigen    = "GeneralizedEigen"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Errors:
//   - None produced here; this function assumes err != nil. Caller responsibility.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a Dense copy.
// Kernels below work on flat row-major buffers only.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var (
		i, j, base int
		acc        float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			if x[j] != 0 {
				acc += d.data[base+j] * x[j]
			}
		}
		y[i] = acc
	}

	return y, nil
}

// symTol scales the structural epsilon to the magnitude of the matrix so
// symmetry checks behave the same in eV and in reduced units.
func symTol(d *Dense, eps float64) float64 {
	var (
		k     int
		scale float64
	)
	for k = 0; k < len(d.data); k++ {
		if a := math.Abs(d.data[k]); a > scale {
			scale = a
		}
	}
	if scale < 1 {
		scale = 1
	}

	return eps * scale
}

// Eigen computes all eigenpairs of a real symmetric matrix by cyclic Jacobi sweeps.
// MAIN DESCRIPTION:
//   - Diagonalizes A = Q Λ Qᵀ with orthogonal Q; returns Λ ascending.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within eps (scaled by max|A|).
//   - Stage 2: Sweep all (p,q), p<q, in row-major order applying a Jacobi
//     rotation that annihilates A[p,q]; accumulate Q.
//   - Stage 3: Stop when the off-diagonal Frobenius norm falls below tol·‖A‖F.
//   - Stage 4: Sort eigenpairs ascending by eigenvalue (stable).
//
// Behavior highlights:
//   - Input is never mutated; works on a private copy.
//   - Already-diagonal input returns after zero sweeps.
//
// Inputs:
//   - m: symmetric Matrix; n := m.Rows().
//   - opts: WithTolerance, WithMaxSweeps, WithEpsilon, WithSweepHook.
//
// Returns:
//   - *Eigenpairs: Values ascending, Vectors columns orthonormal, Sweeps used.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry,
//     ErrMatrixEigenFailed (not converged after maxSweeps).
//
// Determinism:
//   - Fixed (p,q) order and stable sort produce identical output for identical input.
//
// Complexity:
//   - Time O(sweeps * n^3), Space O(n^2).
//
// Notes:
//   - Rotation angle from θ = (aqq−app)/(2apq), t = sign(θ)/(|θ|+√(θ²+1)),
//     which keeps |rotation| ≤ π/4 and is stable for tiny apq.
//
// AI-Hints:
//   - Jacobi is accurate on small eigenvalues of graded matrices, which is
//     exactly the bound-state end of an FE spectrum.
func Eigen(m Matrix, opts ...Option) (*Eigenpairs, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err = ValidateSymmetric(src, symTol(src, o.eps)); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	n := src.r
	a := src.Clone().(*Dense)
	q, _ := newDenseZeroOK(n, n)
	var i int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1
	}

	sweeps, err := jacobiSweeps(a.data, q.data, n, o)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	return sortedPairs(a, q, sweeps), nil
}

// jacobiSweeps diagonalizes the symmetric row-major buffer a in place and
// accumulates rotations into q. Returns the number of sweeps performed.
func jacobiSweeps(a, q []float64, n int, o Options) (int, error) {
	var (
		sweep, i, p, r int
		total, off     float64
		app, aqq, apq  float64
		arp, arq       float64
		qrp, qrq       float64
		theta, t, c, s float64
	)
	for i = 0; i < n*n; i++ {
		total += a[i] * a[i]
	}
	if total == 0 {
		return 0, nil
	}

	for sweep = 0; ; sweep++ {
		off = NormZero
		for p = 0; p < n; p++ {
			for r = 0; r < n; r++ {
				if r != p {
					off += a[p*n+r] * a[p*n+r]
				}
			}
		}
		if o.hook != nil {
			if err := o.hook(sweep, math.Sqrt(off/total)); err != nil {
				return sweep, err
			}
		}
		if off <= o.tol*o.tol*total {
			return sweep, nil
		}
		if sweep == o.maxSweeps {
			return sweep, ErrMatrixEigenFailed
		}

		for p = 0; p < n-1; p++ {
			for i = p + 1; i < n; i++ {
				apq = a[p*n+i]
				if apq == 0 {
					continue
				}
				app = a[p*n+p]
				aqq = a[i*n+i]
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1 / math.Sqrt(t*t+1)
				s = t * c

				for r = 0; r < n; r++ {
					if r == p || r == i {
						continue
					}
					arp = a[r*n+p]
					arq = a[r*n+i]
					a[r*n+p] = c*arp - s*arq
					a[p*n+r] = a[r*n+p]
					a[r*n+i] = s*arp + c*arq
					a[i*n+r] = a[r*n+i]
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[i*n+i] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+i], a[i*n+p] = 0, 0

				for r = 0; r < n; r++ {
					qrp = q[r*n+p]
					qrq = q[r*n+i]
					q[r*n+p] = c*qrp - s*qrq
					q[r*n+i] = s*qrp + c*qrq
				}
			}
		}
	}
}

// sortedPairs reads the diagonal of a and reorders the columns of q so that
// eigenvalues ascend. Equal values keep their sweep order.
func sortedPairs(a, q *Dense, sweeps int) *Eigenpairs {
	n := a.r
	order := make([]int, n)
	var i, k int
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] < a.data[order[y]*n+order[y]]
	})

	vals := make([]float64, n)
	vecs, _ := newDenseZeroOK(n, n)
	for k = 0; k < n; k++ {
		vals[k] = a.data[order[k]*n+order[k]]
		for i = 0; i < n; i++ {
			vecs.data[i*n+k] = q.data[i*n+order[k]]
		}
	}

	return &Eigenpairs{Values: vals, Vectors: vecs, Sweeps: sweeps}
}

// Cholesky factors a symmetric positive definite matrix as A = L Lᵀ.
//
// Implementation:
//   - Stage 1: Validate square/symmetric within eps.
//   - Stage 2: Row-oriented Cholesky–Banachiewicz; a pivot ≤ 0 fails.
//
// Returns:
//   - *Dense: lower-triangular L (upper part exactly zero).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func Cholesky(m Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err = ValidateSymmetric(a, symTol(a, o.eps)); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := a.r
	l, _ := newDenseZeroOK(n, n)
	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l.data[i*n+k] * l.data[j*n+k]
			}
			if i == j {
				if sum <= 0 || math.IsNaN(sum) {
					return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d: %w", i, ErrNotPositiveDefinite))
				}
				l.data[i*n+i] = math.Sqrt(sum)
			} else {
				l.data[i*n+j] = sum / l.data[j*n+j]
			}
		}
	}

	return l, nil
}

// SolveLower solves L x = b by forward substitution. L must be lower
// triangular with a non-zero diagonal (as returned by Cholesky).
// Complexity: O(n^2).
func SolveLower(l *Dense, b []float64) ([]float64, error) {
	if l == nil {
		return nil, matrixErrorf(opSolveLower, ErrNilMatrix)
	}
	if err := ValidateSquare(l); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	if err := ValidateVecLen(b, l.r); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	n := l.r
	x := make([]float64, n)
	var (
		i, k int
		sum  float64
	)
	for i = 0; i < n; i++ {
		sum = b[i]
		for k = 0; k < i; k++ {
			sum -= l.data[i*n+k] * x[k]
		}
		x[i] = sum / l.data[i*n+i]
	}

	return x, nil
}

// SolveLowerT solves Lᵀ x = b by back substitution without forming Lᵀ.
// Complexity: O(n^2).
func SolveLowerT(l *Dense, b []float64) ([]float64, error) {
	if l == nil {
		return nil, matrixErrorf(opSolveUpperT, ErrNilMatrix)
	}
	if err := ValidateSquare(l); err != nil {
		return nil, matrixErrorf(opSolveUpperT, err)
	}
	if err := ValidateVecLen(b, l.r); err != nil {
		return nil, matrixErrorf(opSolveUpperT, err)
	}
	n := l.r
	x := make([]float64, n)
	var (
		i, k int
		sum  float64
	)
	for i = n - 1; i >= 0; i-- {
		sum = b[i]
		for k = i + 1; k < n; k++ {
			sum -= l.data[k*n+i] * x[k]
		}
		x[i] = sum / l.data[i*n+i]
	}

	return x, nil
}

// GeneralizedEigen solves H x = λ M x for symmetric H and SPD M.
// MAIN DESCRIPTION:
//   - Reduces to the standard problem C y = λ y with C = L⁻¹ H L⁻ᵀ, M = L Lᵀ,
//     solves it with cyclic Jacobi, and maps back x = L⁻ᵀ y.
//
// Implementation:
//   - Stage 1: Validate shapes (same order, square) and symmetry of H.
//   - Stage 2: L = Cholesky(M).
//   - Stage 3: W = L⁻¹ H column by column; C = L⁻¹ Wᵀ; symmetrize C.
//   - Stage 4: Jacobi on C, back-transform every eigenvector.
//   - Stage 5: record the largest residual ‖H x − λ M x‖∞.
//
// Returns:
//   - *Eigenpairs: Values ascending; Vectors columns are M-orthonormal
//     (xᵢᵀ M xⱼ = δᵢⱼ); Residual set.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry,
//     ErrNotPositiveDefinite (M), ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(n^3) for the reduction plus O(sweeps·n^3) for Jacobi.
//
// AI-Hints:
//   - Symmetrizing C removes the O(ε) skew that triangular solves introduce;
//     without it the symmetry guard in Eigen would trip on large systems.
func GeneralizedEigen(h, m Matrix, opts ...Option) (*Eigenpairs, error) {
	o := gatherOptions(opts...)
	if err := ValidatePencil(h, m); err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}
	hd, err := asDense(h)
	if err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}
	if err = ValidateSymmetric(hd, symTol(hd, o.eps)); err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}
	l, err := Cholesky(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}

	n := hd.r
	w, _ := newDenseZeroOK(n, n) // W = L⁻¹ H, stored transposed: row j = column j of W
	col := make([]float64, n)
	var (
		i, j int
		y    []float64
	)
	for j = 0; j < n; j++ {
		for i = 0; i < n; i++ {
			col[i] = hd.data[i*n+j]
		}
		if y, err = SolveLower(l, col); err != nil {
			return nil, matrixErrorf(opGenEigen, err)
		}
		copy(w.data[j*n:(j+1)*n], y)
	}
	// Column i of Wᵀ is row i of W, i.e. w.data[:, i] in the transposed store.
	c, _ := newDenseZeroOK(n, n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			col[j] = w.data[j*n+i]
		}
		if y, err = SolveLower(l, col); err != nil {
			return nil, matrixErrorf(opGenEigen, err)
		}
		for j = 0; j < n; j++ {
			c.data[j*n+i] = y[j]
		}
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg := 0.5 * (c.data[i*n+j] + c.data[j*n+i])
			c.data[i*n+j], c.data[j*n+i] = avg, avg
		}
	}

	pairs, err := Eigen(c, opts...)
	if err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}

	for j = 0; j < n; j++ {
		for i = 0; i < n; i++ {
			col[i] = pairs.Vectors.data[i*n+j]
		}
		if y, err = SolveLowerT(l, col); err != nil {
			return nil, matrixErrorf(opGenEigen, err)
		}
		for i = 0; i < n; i++ {
			pairs.Vectors.data[i*n+j] = y[i]
		}
	}
	if pairs.Residual, err = Residual(hd, m, pairs); err != nil {
		return nil, matrixErrorf(opGenEigen, err)
	}

	return pairs, nil
}

// Residual returns max over k of ‖H xₖ − λₖ M xₖ‖∞ for the pairs in p.
// A nil m stands for the identity, which covers standard problems from Eigen.
//
// Errors:
//   - ErrNilMatrix for nil h or p, ErrDimensionMismatch when the vectors do
//     not match the order of h and m.
//
// Complexity: O(n³) for n pairs of order n (two MatVec per pair).
func Residual(h, m Matrix, p *Eigenpairs) (float64, error) {
	if err := ValidateNotNil(h); err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	if p == nil || p.Vectors == nil {
		return 0, matrixErrorf(opResidual, ErrNilMatrix)
	}
	if m != nil {
		if err := ValidatePencil(h, m); err != nil {
			return 0, matrixErrorf(opResidual, err)
		}
	}
	if p.Vectors.r != h.Rows() || p.Vectors.c != len(p.Values) {
		return 0, matrixErrorf(opResidual, ErrDimensionMismatch)
	}

	var (
		k, i   int
		x      []float64
		hx, mx []float64
		worst  float64
		err    error
	)
	for k = range p.Values {
		if x, err = p.Vectors.Col(k); err != nil {
			return 0, matrixErrorf(opResidual, err)
		}
		if hx, err = MatVec(h, x); err != nil {
			return 0, matrixErrorf(opResidual, err)
		}
		mx = x
		if m != nil {
			if mx, err = MatVec(m, x); err != nil {
				return 0, matrixErrorf(opResidual, err)
			}
		}
		for i = range hx {
			worst = math.Max(worst, math.Abs(hx[i]-p.Values[k]*mx[i]))
		}
	}

	return worst, nil
}
