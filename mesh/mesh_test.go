package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qwell/mesh"
)

func TestNewInterval(t *testing.T) {
	t.Parallel()

	m, err := mesh.NewInterval(10, 5)
	require.NoError(t, err)
	assert.Equal(t, mesh.Interval, m.Kind)
	assert.Equal(t, 5, m.NumCells())
	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, m.Edges())

	c, err := m.Centroid(2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, c.X)
	a, err := m.Area(2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, a)
}

func TestNewStrip_Triangulation(t *testing.T) {
	t.Parallel()

	m, err := mesh.NewStrip(4, 2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumCells())
	assert.Equal(t, 6, m.NumVertices())

	var total float64
	for c := 0; c < m.NumCells(); c++ {
		a, err := m.Area(c)
		require.NoError(t, err)
		total += a
	}
	assert.InDelta(t, 8.0, total, 1e-12)

	// first rectangle, lower triangle: (0,0) (2,0) (2,2)
	vs, err := m.CellVertices(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4}, vs)
	i, j := m.Lattice(4)
	assert.Equal(t, 1, i)
	assert.Equal(t, 1, j)
}

func TestMesh_Errors(t *testing.T) {
	t.Parallel()

	_, err := mesh.NewInterval(0, 3)
	assert.ErrorIs(t, err, mesh.ErrBadExtent)
	_, err = mesh.NewInterval(1, 0)
	assert.ErrorIs(t, err, mesh.ErrBadResolution)
	_, err = mesh.NewStrip(1, -1, 1, 1)
	assert.ErrorIs(t, err, mesh.ErrBadExtent)

	m, _ := mesh.NewInterval(1, 1)
	_, err = m.Centroid(3)
	assert.ErrorIs(t, err, mesh.ErrCellIndex)
}

func TestMarkCellsAndBoundary(t *testing.T) {
	t.Parallel()

	m, err := mesh.NewStrip(30, 1, 3, 1)
	require.NoError(t, err)
	require.NoError(t, m.MarkCells(func(x float64) (int, bool) {
		return int(x / 10), true
	}))
	assert.Equal(t, []int{0, 1}, m.CellsWithTag(0))
	assert.Equal(t, []int{4, 5}, m.CellsWithTag(2))

	n := m.MarkBoundary(1e-9)
	assert.Equal(t, 4, n)
	assert.Equal(t, mesh.TagLeft, m.BoundaryTags[0])
	assert.Equal(t, mesh.TagRight, m.BoundaryTags[3])

	err = m.MarkCells(func(x float64) (int, bool) { return 0, x < 20 })
	assert.ErrorIs(t, err, mesh.ErrUntaggedCell)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range []mesh.Kind{mesh.Interval, mesh.Strip} {
		got, err := mesh.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := mesh.ParseKind("tetra")
	assert.ErrorIs(t, err, mesh.ErrUnknownKind)
}
