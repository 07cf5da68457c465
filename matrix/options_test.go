// SPDX-License-Identifier: MIT
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qwell/matrix"
)

// TestOptions_PanicOnNonsense verifies that constructors reject programmer errors.
func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithTolerance(0) })
	assert.Panics(t, func() { matrix.WithTolerance(math.Inf(1)) })
	assert.Panics(t, func() { matrix.WithMaxSweeps(0) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}

// TestOptions_ToleranceChangesResult shows a loose tolerance stops Jacobi earlier.
func TestOptions_ToleranceChangesResult(t *testing.T) {
	t.Parallel()

	a := RandomSym(t, 10, 99)
	tight, err := matrix.Eigen(a)
	assert.NoError(t, err)
	loose, err := matrix.Eigen(a, matrix.WithTolerance(1e-2))
	assert.NoError(t, err)
	assert.Less(t, loose.Sweeps, tight.Sweeps)
}

// TestOptions_NilIgnored verifies nil options are skipped.
func TestOptions_NilIgnored(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	p, err := matrix.Eigen(a, nil)
	assert.NoError(t, err)
	assert.Len(t, p.Values, 2)
}

// TestOptions_SweepHookAborts verifies the hook sees every sweep and can stop the iteration.
func TestOptions_SweepHookAborts(t *testing.T) {
	t.Parallel()

	a := RandomSym(t, 8, 21)
	var seen []int
	_, err := matrix.Eigen(a, matrix.WithSweepHook(func(sweep int, off float64) error {
		seen = append(seen, sweep)
		return nil
	}))
	assert.NoError(t, err)
	assert.Equal(t, 0, seen[0])
	assert.Greater(t, len(seen), 1)

	stop := errors.New("stop")
	_, err = matrix.Eigen(a, matrix.WithSweepHook(func(sweep int, off float64) error {
		if sweep == 1 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
}
