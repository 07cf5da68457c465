// Package matrix_test contains unit tests for the dense linear algebra kernels.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qwell/matrix"
)

func TestNewDenseDefaultZero(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{3, 3},
		{6, 4},
	} {
		name := fmt.Sprintf("%dx%d", tc.rows, tc.cols)
		t.Run(name, func(t *testing.T) {
			m := MustDense(t, tc.rows, tc.cols)
			var i, j int
			for i = 0; i < tc.rows; i++ {
				for j = 0; j < tc.cols; j++ {
					if v := MustAt(t, m, i, j); v != 0.0 {
						t.Fatalf("element [%d,%d] of a new Dense(%dx%d) must be 0", i, j, tc.rows, tc.cols)
					}
				}
			}
		})
	}
}

func TestDense_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 3)
	AssertErrorIs(t, err, matrix.ErrInvalidDimensions)

	m := MustDense(t, 2, 2)
	_, err = m.At(2, 0)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	_, err = m.Col(5)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_CloneIsDeep(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	c := m.Clone()
	MustSet(t, m, 0, 0, 9)
	assert.Equal(t, 1.0, MustAt(t, c, 0, 0))
	assert.Equal(t, "[9, 2]\n[3, 4]\n", m.String())
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 3})
	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2}, y)

	// interface path gives the same result
	y2, err := matrix.MatVec(hide{a}, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, y, y2)

	_, err = matrix.MatVec(a, []float64{1})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// ---------- Eigen ----------

func TestEigen_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.Eigen(MustDense(t, 3, 4))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	asym := MustDense(t, 3, 3)
	MustSet(t, asym, 0, 1, 1)
	MustSet(t, asym, 1, 0, 2)
	_, err = matrix.Eigen(asym)
	AssertErrorIs(t, err, matrix.ErrAsymmetry)

	// one sweep cannot diagonalize a dense 6×6
	_, err = matrix.Eigen(RandomSym(t, 6, 3), matrix.WithMaxSweeps(1))
	AssertErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestEigen_Diagonal_NoRotation(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 4, 4)
	for i, v := range []float64{1, -2, 5, 3} {
		MustSet(t, a, i, i, v)
	}
	p, err := matrix.Eigen(a)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Sweeps)
	assert.Equal(t, []float64{-2, 1, 3, 5}, p.Values)
	// columns are permuted unit vectors
	assert.Equal(t, 1.0, MustAt(t, p.Vectors, 1, 0))
	assert.Equal(t, 1.0, MustAt(t, p.Vectors, 0, 1))
	assert.Equal(t, 1.0, MustAt(t, p.Vectors, 3, 2))
	assert.Equal(t, 1.0, MustAt(t, p.Vectors, 2, 3))
}

func TestEigen_2x2_Analytic(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	p, err := matrix.Eigen(a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.Values[0], 1e-12)
	assert.InDelta(t, 3.0, p.Values[1], 1e-12)
	propOrthonormal(t, nil, p.Vectors, 1e-12)
	propEigenEquation(t, a, nil, p, 1e-12)
}

func TestEigen_Random_AscendingAndOrthonormal(t *testing.T) {
	t.Parallel()

	a := RandomSym(t, 12, 7)
	orig := a.Clone()
	p, err := matrix.Eigen(hide{a})
	require.NoError(t, err)
	assert.Equal(t, orig.(*matrix.Dense).String(), a.String(), "input must not be mutated")
	var k int
	for k = 1; k < len(p.Values); k++ {
		assert.LessOrEqual(t, p.Values[k-1], p.Values[k])
	}
	propOrthonormal(t, nil, p.Vectors, 1e-10)
	propEigenEquation(t, a, nil, p, 1e-10)
}

// ---------- Cholesky ----------

func TestCholesky_Reconstructs(t *testing.T) {
	t.Parallel()

	a := RandomSPD(t, 8, 11)
	l, err := matrix.Cholesky(a)
	require.NoError(t, err)
	var i, j, k int
	for i = 0; i < 8; i++ {
		for j = 0; j < 8; j++ {
			var llt float64
			for k = 0; k < 8; k++ {
				llt += MustAt(t, l, i, k) * MustAt(t, l, j, k)
			}
			assert.InDelta(t, MustAt(t, a, i, j), llt, 1e-10)
			if j > i {
				assert.Equal(t, 0.0, MustAt(t, l, i, j))
			}
		}
	}
}

func TestCholesky_NotPositiveDefinite(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 1})
	_, err := matrix.Cholesky(a)
	AssertErrorIs(t, err, matrix.ErrNotPositiveDefinite)
}

func TestTriangularSolves(t *testing.T) {
	t.Parallel()

	l, err := matrix.Cholesky(RandomSPD(t, 5, 2))
	require.NoError(t, err)
	b := []float64{1, 2, 3, 4, 5}

	x, err := matrix.SolveLower(l, b)
	require.NoError(t, err)
	lx, err := matrix.MatVec(l, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, b, lx, 1e-12)

	x, err = matrix.SolveLowerT(l, b)
	require.NoError(t, err)
	ltx := make([]float64, len(b))
	for i := range ltx {
		for k := i; k < len(b); k++ {
			ltx[i] += MustAt(t, l, k, i) * x[k]
		}
	}
	assert.InDeltaSlice(t, b, ltx, 1e-12)

	_, err = matrix.SolveLower(l, b[:2])
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// ---------- GeneralizedEigen ----------

func TestGeneralizedEigen_DiagonalPencil(t *testing.T) {
	t.Parallel()

	h := NewFilledDense(t, 3, 3, []float64{2, 0, 0, 0, 9, 0, 0, 0, 4})
	m := NewFilledDense(t, 3, 3, []float64{1, 0, 0, 0, 3, 0, 0, 0, 2})
	p, err := matrix.GeneralizedEigen(h, m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2, 3}, p.Values, 1e-12)
	propOrthonormal(t, m, p.Vectors, 1e-12)
}

func TestGeneralizedEigen_RandomPencil(t *testing.T) {
	t.Parallel()

	h := RandomSym(t, 10, 5)
	m := RandomSPD(t, 10, 6)
	p, err := matrix.GeneralizedEigen(h, m)
	require.NoError(t, err)
	propEigenEquation(t, h, m, p, 1e-9)
	propOrthonormal(t, m, p.Vectors, 1e-9)

	// the recorded residual is the one Residual recomputes
	r, err := matrix.Residual(hide{h}, hide{m}, p)
	require.NoError(t, err)
	assert.Less(t, p.Residual, 1e-9)
	assert.InDelta(t, p.Residual, r, 1e-15)
}

func TestResidual(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	p, err := matrix.Eigen(a)
	require.NoError(t, err)
	assert.Zero(t, p.Residual)
	r, err := matrix.Residual(a, nil, p)
	require.NoError(t, err)
	assert.Less(t, r, 1e-12)

	// a wrong eigenvalue shows up as |Δλ| on a unit vector
	p.Values[0] += 0.5
	r, err = matrix.Residual(a, nil, p)
	require.NoError(t, err)
	assert.InDelta(t, 0.5/math.Sqrt2, r, 1e-12)

	_, err = matrix.Residual(nil, nil, p)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Residual(a, nil, nil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Residual(a, MustDense(t, 3, 3), p)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Residual(RandomSym(t, 3, 1), nil, p)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestGeneralizedEigen_Errors(t *testing.T) {
	t.Parallel()

	h := RandomSym(t, 3, 1)
	_, err := matrix.GeneralizedEigen(h, MustDense(t, 2, 2))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.GeneralizedEigen(h, MustDense(t, 3, 3))
	AssertErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	_, err = matrix.GeneralizedEigen(nil, h)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}
