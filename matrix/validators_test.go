package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qwell/matrix"
)

func TestValidatePencil(t *testing.T) {
	t.Parallel()

	h := RandomSym(t, 3, 7)
	AssertErrorIs(t, matrix.ValidatePencil(h, RandomSPD(t, 3, 7)), nil)
	AssertErrorIs(t, matrix.ValidatePencil(nil, h), matrix.ErrNilMatrix)
	AssertErrorIs(t, matrix.ValidatePencil(h, nil), matrix.ErrNilMatrix)
	AssertErrorIs(t, matrix.ValidatePencil(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
	AssertErrorIs(t, matrix.ValidatePencil(h, MustDense(t, 4, 4)), matrix.ErrDimensionMismatch)
}

func TestValidateSymmetric_Tolerance(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 2 + 1e-12, 1})
	AssertErrorIs(t, matrix.ValidateSymmetric(a, 1e-9), nil)
	AssertErrorIs(t, matrix.ValidateSymmetric(a, 0), matrix.ErrAsymmetry)
	AssertErrorIs(t, matrix.ValidateSymmetric(a, math.NaN()), matrix.ErrNaNInf)
	AssertErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 2, 3), 1), matrix.ErrDimensionMismatch)
	AssertErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	AssertErrorIs(t, matrix.ValidateVecLen(nil, 0), nil)
}
