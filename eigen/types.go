// Package eigen defines the generalized symmetric eigensolver contract,
// its configuration and the decomposition it produces.
//
// A Solver computes all eigenpairs of the pencil H x = λ M x for sparse
// symmetric H and symmetric positive definite M. Two direct backends are
// registered by default:
//
//	– jacobi: Cholesky reduction plus cyclic Jacobi sweeps (package matrix, pure Go).
//	– lapack: Cholesky reduction plus the symmetric QR eigensolver of gonum/mat.
//
// Options:
//
//	– Backend:   registered backend name (BackendLAPACK by default).
//	– Spectrum:  ordering of the returned pairs (SmallestMagnitude by default).
//	– Tol:       relative off-diagonal threshold for the Jacobi backend.
//	– MaxSweeps: Jacobi sweep limit.
//
// Errors (sentinel):
//
//	– ErrNilOperator        if H or M is nil.
//	– ErrShape              if H and M are not square of equal order.
//	– ErrNotSymmetric       if H or M is not symmetric.
//	– ErrNotPositiveDefinite if M has no Cholesky factor.
//	– ErrNotConverged       if the iterative kernel did not converge.
//	– ErrIndexOutOfRange    from Decomposition.Pair.
//	– ErrBackendUnavailable if the requested backend is not registered.
//	– ErrUnknownSpectrum    for an unrecognised spectrum name.
package eigen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qwell/matrix"
)

// Sentinel errors returned by solvers and the registry.
var (
	// ErrNilOperator indicates that H or M was nil.
	ErrNilOperator = errors.New("eigen: nil operator")

	// ErrShape indicates that H and M are not square matrices of equal order.
	ErrShape = errors.New("eigen: operators must be square and of equal order")

	// ErrNotSymmetric indicates that H or M is not symmetric within tolerance.
	ErrNotSymmetric = errors.New("eigen: operator is not symmetric")

	// ErrNotPositiveDefinite indicates that the mass matrix has no Cholesky factor.
	ErrNotPositiveDefinite = errors.New("eigen: mass matrix is not positive definite")

	// ErrNotConverged indicates that the eigen kernel stopped before convergence.
	ErrNotConverged = errors.New("eigen: eigensolver did not converge")

	// ErrIndexOutOfRange is returned by Pair for k outside [0, Len()).
	ErrIndexOutOfRange = errors.New("eigen: eigenpair index out of range")

	// ErrBackendUnavailable indicates that no backend is registered under the name.
	ErrBackendUnavailable = errors.New("eigen: backend unavailable")

	// ErrDuplicateBackend is returned by Register for a name already in use.
	ErrDuplicateBackend = errors.New("eigen: backend already registered")

	// ErrUnknownSpectrum indicates an unrecognised spectrum name.
	ErrUnknownSpectrum = errors.New("eigen: unknown spectrum")
)

// Backend names registered by this package.
const (
	BackendJacobi = "jacobi"
	BackendLAPACK = "lapack"
)

// Spectrum selects the order in which eigenpairs are returned.
type Spectrum string

const (
	// SmallestMagnitude orders pairs by |λ| ascending.
	SmallestMagnitude Spectrum = "smallest-magnitude"

	// SmallestReal orders pairs by λ ascending.
	SmallestReal Spectrum = "smallest-real"
)

// ParseSpectrum maps a configuration string onto a Spectrum.
func ParseSpectrum(s string) (Spectrum, error) {
	switch Spectrum(s) {
	case SmallestMagnitude, SmallestReal:
		return Spectrum(s), nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownSpectrum)
}

// Options configures a Solver.
type Options struct {
	Backend   string   // registered backend name
	Spectrum  Spectrum // pair ordering
	Tol       float64  // Jacobi convergence threshold; > 0
	MaxSweeps int      // Jacobi sweep limit; > 0
}

// Option represents a functional option for configuring a Solver.
type Option func(*Options)

// WithBackend selects the backend by name. Validity is checked by New.
func WithBackend(name string) Option {
	return func(o *Options) {
		o.Backend = name
	}
}

// WithSpectrum sets the ordering of the returned eigenpairs.
func WithSpectrum(s Spectrum) Option {
	return func(o *Options) {
		o.Spectrum = s
	}
}

// WithTolerance sets the Jacobi convergence threshold.
// Panics if tol is not finite and positive.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			panic("eigen: WithTolerance: tol must be finite and > 0")
		}
		o.Tol = tol
	}
}

// WithMaxSweeps sets the Jacobi sweep limit. Panics if n <= 0.
func WithMaxSweeps(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic("eigen: WithMaxSweeps: sweeps must be > 0")
		}
		o.MaxSweeps = n
	}
}

// DefaultOptions returns the solver defaults:
//   - Backend:   BackendLAPACK.
//   - Spectrum:  SmallestMagnitude.
//   - Tol:       matrix.DefaultJacobiTol.
//   - MaxSweeps: matrix.DefaultJacobiMaxSweeps.
func DefaultOptions() Options {
	return Options{
		Backend:   BackendLAPACK,
		Spectrum:  SmallestMagnitude,
		Tol:       matrix.DefaultJacobiTol,
		MaxSweeps: matrix.DefaultJacobiMaxSweeps,
	}
}

// Solver computes the eigenpairs of H x = λ M x.
type Solver interface {
	// Name returns the registered backend name.
	Name() string

	// Solve returns every eigenpair of the pencil (H, M), ordered by the
	// configured Spectrum. Vectors are M-orthonormal.
	Solve(ctx context.Context, h, m *matrix.Sparse) (*Decomposition, error)
}

// Decomposition is an ordered list of eigenpairs. Vectors[k] belongs to
// Values[k] and is expressed in the numbering of the solved system.
type Decomposition struct {
	Values  []float64
	Vectors [][]float64
	Backend string
	Sweeps  int // Jacobi sweeps; zero for direct LAPACK

	// Residual is max over pairs of ‖H x − λ M x‖∞ on the operators passed to Solve.
	Residual float64
}

// Len returns the number of eigenpairs.
func (d *Decomposition) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Values)
}

// Pair returns the k-th eigenvalue and a copy of its eigenvector.
func (d *Decomposition) Pair(k int) (float64, []float64, error) {
	if k < 0 || k >= d.Len() {
		return 0, nil, fmt.Errorf("pair %d of %d: %w", k, d.Len(), ErrIndexOutOfRange)
	}
	v := make([]float64, len(d.Vectors[k]))
	copy(v, d.Vectors[k])

	return d.Values[k], v, nil
}

// order reorders the pairs in place for the spectrum. Input is expected
// ascending by value; the stable sort keeps that order among equal |λ|.
func (d *Decomposition) order(s Spectrum) {
	if s != SmallestMagnitude {
		return
	}
	idx := make([]int, len(d.Values))
	for k := range idx {
		idx[k] = k
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(d.Values[idx[a]]) < math.Abs(d.Values[idx[b]])
	})
	vals := make([]float64, len(idx))
	vecs := make([][]float64, len(idx))
	for k, i := range idx {
		vals[k] = d.Values[i]
		vecs[k] = d.Vectors[i]
	}
	d.Values, d.Vectors = vals, vecs
}

// residual measures ‖H x − λ M x‖∞ for every pair with sparse products.
func (d *Decomposition) residual(h, m *matrix.Sparse) (float64, error) {
	var worst float64
	for k, lambda := range d.Values {
		hx, err := h.MulVec(d.Vectors[k])
		if err != nil {
			return 0, err
		}
		mx, err := m.MulVec(d.Vectors[k])
		if err != nil {
			return 0, err
		}
		for i := range hx {
			worst = math.Max(worst, math.Abs(hx[i]-lambda*mx[i]))
		}
	}

	return worst, nil
}
