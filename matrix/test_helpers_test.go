// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qwell/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the interface (non-*Dense) ingestion path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c Dense from row-major values.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	if len(vals) != r*c {
		t.Fatalf("NewFilledDense(%d,%d): %d values", r, c, len(vals))
	}
	m := MustDense(t, r, c)
	var k int
	for k = range vals {
		MustSet(t, m, k/c, k%c, vals[k])
	}

	return m
}

// RandomFill fills m with uniform values in [-1, 1) from a fixed seed.
func RandomFill(t *testing.T, m matrix.Matrix, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			MustSet(t, m, i, j, 2*rng.Float64()-1)
		}
	}
}

// RandomSPD returns AᵀA + n·I for a seeded random A, which is SPD and well conditioned.
func RandomSPD(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := MustDense(t, n, n)
	RandomFill(t, a, seed)
	spd := MustDense(t, n, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			var g float64
			for k = 0; k < n; k++ {
				g += MustAt(t, a, k, i) * MustAt(t, a, k, j)
			}
			if i == j {
				g += float64(n)
			}
			MustSet(t, spd, i, j, g)
		}
	}

	return spd
}

// RandomSym returns (A + Aᵀ)/2 for a seeded random A.
func RandomSym(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := MustDense(t, n, n)
	RandomFill(t, a, seed)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v := 0.5 * (MustAt(t, a, i, j) + MustAt(t, a, j, i))
			MustSet(t, a, i, j, v)
			MustSet(t, a, j, i, v)
		}
	}

	return a
}

// MustSet sets m[i,j]=v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d,%v): %v", i, j, v, err)
	}
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want errors.Is(err, %v), got: %v", target, err)
	}
}

// bilinear returns xᵀ A y.
func bilinear(t *testing.T, a matrix.Matrix, x, y []float64) float64 {
	t.Helper()
	ay, err := matrix.MatVec(a, y)
	if err != nil {
		t.Fatalf("MatVec: %v", err)
	}
	var (
		k   int
		sum float64
	)
	for k = range x {
		sum += x[k] * ay[k]
	}

	return sum
}

// column extracts column j of the eigenvector matrix.
func column(t *testing.T, d *matrix.Dense, j int) []float64 {
	t.Helper()
	c, err := d.Col(j)
	if err != nil {
		t.Fatalf("Col(%d): %v", j, err)
	}

	return c
}

// propEigenEquation checks ‖A v - λ B v‖∞ ≤ tol for each pair (B = I when b is nil).
func propEigenEquation(t *testing.T, a, b matrix.Matrix, p *matrix.Eigenpairs, tol float64) {
	t.Helper()
	n := a.Rows()
	var k, i int
	for k = 0; k < n; k++ {
		v := column(t, p.Vectors, k)
		av, err := matrix.MatVec(a, v)
		if err != nil {
			t.Fatalf("MatVec: %v", err)
		}
		bv := v
		if b != nil {
			if bv, err = matrix.MatVec(b, v); err != nil {
				t.Fatalf("MatVec: %v", err)
			}
		}
		for i = 0; i < n; i++ {
			if r := math.Abs(av[i] - p.Values[k]*bv[i]); r > tol {
				t.Fatalf("pair %d row %d: residual %.3e > %.1e", k, i, r, tol)
			}
		}
	}
}

// propOrthonormal checks vᵢᵀ B vⱼ = δᵢⱼ (B = I when b is nil).
func propOrthonormal(t *testing.T, b matrix.Matrix, vecs *matrix.Dense, tol float64) {
	t.Helper()
	n := vecs.Cols()
	var i, j int
	for i = 0; i < n; i++ {
		vi := column(t, vecs, i)
		for j = 0; j < n; j++ {
			vj := column(t, vecs, j)
			var g float64
			if b == nil {
				var k int
				for k = range vi {
					g += vi[k] * vj[k]
				}
			} else {
				g = bilinear(t, b, vi, vj)
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(g-want) > tol {
				t.Fatalf("gram[%d,%d] = %.3e, want %v", i, j, g, want)
			}
		}
	}
}
