package fem_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qwell/fem"
	"github.com/katalvlaran/qwell/matrix"
	"github.com/katalvlaran/qwell/mesh"
)

// oneRegion tags every cell with region 0.
func oneRegion(float64) (int, bool) { return 0, true }

// laplace is -u'' with unit diffusion and no reaction on one region.
var laplace = fem.Form{Name: "laplace", Diffusion: []float64{1}, Reaction: []float64{0}}

// mustInterval builds a tagged interval space.
func mustInterval(t testing.TB, length float64, nx, degree int) *fem.Space {
	t.Helper()
	m, err := mesh.NewInterval(length, nx)
	require.NoError(t, err)
	require.NoError(t, m.MarkCells(oneRegion))
	m.MarkBoundary(1e-9)
	s, err := fem.NewSpace(m, degree)
	require.NoError(t, err)

	return s
}

// mustStrip builds a tagged periodic strip space.
func mustStrip(t testing.TB, length, height float64, nx, ny, degree int) *fem.Space {
	t.Helper()
	m, err := mesh.NewStrip(length, height, nx, ny)
	require.NoError(t, err)
	require.NoError(t, m.MarkCells(oneRegion))
	m.MarkBoundary(1e-9)
	s, err := fem.NewSpace(m, degree)
	require.NoError(t, err)

	return s
}

// lowestEigen assembles laplace/mass on s, eliminates the boundary and
// returns the k smallest eigenvalues.
func lowestEigen(t *testing.T, s *fem.Space, k int) []float64 {
	t.Helper()
	h, err := fem.Assemble(s, laplace)
	require.NoError(t, err)
	m, err := fem.Assemble(s, fem.Mass(1))
	require.NoError(t, err)
	sys := &fem.System{Space: s, H: h, M: m}
	hr, mr, err := sys.Reduce()
	require.NoError(t, err)
	p, err := matrix.GeneralizedEigen(hr.ToDense(), mr.ToDense())
	require.NoError(t, err)

	return p.Values[:k]
}

// sumAll returns Σ_ij A_ij.
func sumAll(t *testing.T, a *matrix.Sparse) float64 {
	t.Helper()
	ones := make([]float64, a.Cols())
	for i := range ones {
		ones[i] = 1
	}
	y, err := a.MulVec(ones)
	require.NoError(t, err)
	var s float64
	for _, v := range y {
		s += v
	}

	return s
}

// maxAbs returns max |v_i|.
func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}

	return m
}
