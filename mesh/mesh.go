// Package mesh builds the structured meshes the finite-element space lives on:
// a segment mesh of [0, L], or a thin triangulated strip [0, L]×[0, H] whose
// y-axis is periodic.
package mesh

import (
	"fmt"
	"math"
)

// NewInterval returns nx equal segments on [0, length].
// Complexity: O(nx).
func NewInterval(length float64, nx int) (*Mesh, error) {
	if err := checkExtent(length); err != nil {
		return nil, err
	}
	if nx < 1 {
		return nil, ErrBadResolution
	}
	m := &Mesh{Kind: Interval, Length: length, Nx: nx}
	m.Vertices = make([]Point, nx+1)
	for i := 0; i <= nx; i++ {
		m.Vertices[i] = Point{X: length * float64(i) / float64(nx)}
	}
	m.Cells = make([][]int, nx)
	for i := 0; i < nx; i++ {
		m.Cells[i] = []int{i, i + 1}
	}
	m.resetTags()

	return m, nil
}

// NewStrip triangulates [0, length]×[0, height] with nx×ny rectangles,
// each split along its rising diagonal into (v00, v10, v11) and (v00, v11, v01).
// Complexity: O(nx·ny).
func NewStrip(length, height float64, nx, ny int) (*Mesh, error) {
	if err := checkExtent(length); err != nil {
		return nil, err
	}
	if err := checkExtent(height); err != nil {
		return nil, err
	}
	if nx < 1 || ny < 1 {
		return nil, ErrBadResolution
	}
	m := &Mesh{Kind: Strip, Length: length, Height: height, Nx: nx, Ny: ny}
	m.Vertices = make([]Point, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices[m.vertex(i, j)] = Point{
				X: length * float64(i) / float64(nx),
				Y: height * float64(j) / float64(ny),
			}
		}
	}
	m.Cells = make([][]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00, v10 := m.vertex(i, j), m.vertex(i+1, j)
			v01, v11 := m.vertex(i, j+1), m.vertex(i+1, j+1)
			m.Cells = append(m.Cells, []int{v00, v10, v11}, []int{v00, v11, v01})
		}
	}
	m.resetTags()

	return m, nil
}

func checkExtent(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrBadExtent
	}

	return nil
}

func (m *Mesh) resetTags() {
	m.CellTags = make([]int, len(m.Cells))
	for c := range m.CellTags {
		m.CellTags[c] = Untagged
	}
	m.BoundaryTags = map[int]int{}
}

// vertex maps lattice coordinates to a vertex index.
func (m *Mesh) vertex(i, j int) int { return j*(m.Nx+1) + i }

// Lattice returns the lattice coordinates (i, j) of vertex v.
func (m *Mesh) Lattice(v int) (i, j int) { return v % (m.Nx + 1), v / (m.Nx + 1) }

// NumCells returns the number of cells.
func (m *Mesh) NumCells() int { return len(m.Cells) }

// NumVertices returns the number of stored vertices (including the
// periodic top row of a strip).
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// CellVertices returns the vertex indices of cell c.
func (m *Mesh) CellVertices(c int) ([]int, error) {
	if c < 0 || c >= len(m.Cells) {
		return nil, fmt.Errorf("cell %d: %w", c, ErrCellIndex)
	}

	return m.Cells[c], nil
}

// Centroid returns the barycentre of cell c.
func (m *Mesh) Centroid(c int) (Point, error) {
	vs, err := m.CellVertices(c)
	if err != nil {
		return Point{}, err
	}
	var p Point
	for _, v := range vs {
		p.X += m.Vertices[v].X
		p.Y += m.Vertices[v].Y
	}
	n := float64(len(vs))

	return Point{X: p.X / n, Y: p.Y / n}, nil
}

// Area returns the measure of cell c: length for segments, area for triangles.
func (m *Mesh) Area(c int) (float64, error) {
	vs, err := m.CellVertices(c)
	if err != nil {
		return 0, err
	}
	a, b := m.Vertices[vs[0]], m.Vertices[vs[1]]
	if len(vs) == 2 {
		return math.Abs(b.X - a.X), nil
	}
	p := m.Vertices[vs[2]]

	return 0.5 * math.Abs((b.X-a.X)*(p.Y-a.Y)-(p.X-a.X)*(b.Y-a.Y)), nil
}

// MarkCells tags every cell with region(xc) where xc is the x-coordinate of
// its centroid. The first cell no region claims aborts with ErrUntaggedCell.
func (m *Mesh) MarkCells(region func(xc float64) (int, bool)) error {
	for c := range m.Cells {
		p, _ := m.Centroid(c)
		tag, ok := region(p.X)
		if !ok {
			return fmt.Errorf("cell %d at x=%g: %w", c, p.X, ErrUntaggedCell)
		}
		m.CellTags[c] = tag
	}

	return nil
}

// MarkBoundary tags vertices within tol of x=0 as TagLeft and of x=Length
// as TagRight. It returns the number of tagged vertices.
func (m *Mesh) MarkBoundary(tol float64) int {
	m.BoundaryTags = map[int]int{}
	for v, p := range m.Vertices {
		switch {
		case math.Abs(p.X) <= tol:
			m.BoundaryTags[v] = TagLeft
		case math.Abs(p.X-m.Length) <= tol:
			m.BoundaryTags[v] = TagRight
		}
	}

	return len(m.BoundaryTags)
}

// CellsWithTag returns the indices of cells carrying tag, ascending.
func (m *Mesh) CellsWithTag(tag int) []int {
	var out []int
	for c, t := range m.CellTags {
		if t == tag {
			out = append(out, c)
		}
	}

	return out
}

// Edges returns the x-extent of every cell column, i.e. the vertex
// x-coordinates of the bottom row.
func (m *Mesh) Edges() []float64 {
	out := make([]float64, m.Nx+1)
	for i := 0; i <= m.Nx; i++ {
		out[i] = m.Vertices[i].X
	}

	return out
}
