// Package fdm is a finite-difference reference solver for the one-dimensional
// effective-mass Schrödinger equation
//
//	-(d/dx) c(x) (dψ/dx) + V(x) ψ = E ψ,   ψ(0) = ψ(L) = 0,
//
// with c = ħ²/2m*(x). The BenDaniel–Duke three-point scheme evaluates c at
// cell midpoints, which keeps c·ψ' continuous across material interfaces:
//
//	[-c₋ψᵢ₋₁ + (c₋+c₊)ψᵢ - c₊ψᵢ₊₁]/h² + Vᵢψᵢ = Eψᵢ
//
// The resulting symmetric tridiagonal matrix is diagonalized with the
// Pal–Walker–Kahan QL iteration of gonum/lapack in O(n²).
package fdm

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/lapack/gonum"

	"github.com/katalvlaran/qwell/geometry"
)

// Sentinel errors.
var (
	// ErrNilStructure indicates a nil structure.
	ErrNilStructure = errors.New("fdm: nil structure")

	// ErrBadGrid indicates fewer than two grid intervals.
	ErrBadGrid = errors.New("fdm: need at least two grid intervals")

	// ErrOutsideStructure indicates a grid point not covered by any layer.
	ErrOutsideStructure = errors.New("fdm: grid point outside structure")

	// ErrNotConverged indicates the tridiagonal QL iteration failed.
	ErrNotConverged = errors.New("fdm: tridiagonal eigensolver did not converge")
)

// Operator returns the diagonal (n-1) and off-diagonal (n-2) of the
// finite-difference Hamiltonian on n equal intervals of [0, Total].
// The node potential is the mean of the two adjacent midpoint potentials,
// so a node on an interface sees the average of both layers.
func Operator(s *geometry.Structure, n int) (diag, off []float64, err error) {
	if s == nil {
		return nil, nil, ErrNilStructure
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("n=%d: %w", n, ErrBadGrid)
	}
	h := s.Total / float64(n)
	ih2 := 1 / (h * h)

	// midpoint material of interval j = [x_j, x_{j+1}]
	c := make([]float64, n)
	v := make([]float64, n)
	for j := 0; j < n; j++ {
		xm := (float64(j) + 0.5) * h
		l, ok := s.LayerAt(xm)
		if !ok {
			return nil, nil, fmt.Errorf("x=%g: %w", xm, ErrOutsideStructure)
		}
		c[j] = s.Layers[l].Coefficient
		v[j] = s.Layers[l].Potential
	}

	diag = make([]float64, n-1)
	off = make([]float64, n-2)
	for i := 1; i < n; i++ {
		diag[i-1] = (c[i-1]+c[i])*ih2 + 0.5*(v[i-1]+v[i])
		if i < n-1 {
			off[i-1] = -c[i] * ih2
		}
	}

	return diag, off, nil
}

// Spectrum returns all n-1 eigenvalues in ascending order.
func Spectrum(s *geometry.Structure, n int) ([]float64, error) {
	d, e, err := Operator(s, n)
	if err != nil {
		return nil, err
	}
	if ok := (gonum.Implementation{}).Dsterf(len(d), d, e); !ok {
		return nil, ErrNotConverged
	}
	sort.Float64s(d)

	return d, nil
}

// Solve returns the eigenvalues strictly below barrier, ascending.
// Complexity: O(n²) time, O(n) space.
func Solve(s *geometry.Structure, n int, barrier float64) ([]float64, error) {
	all, err := Spectrum(s, n)
	if err != nil {
		return nil, err
	}
	k := sort.SearchFloat64s(all, barrier)

	return all[:k:k], nil
}
