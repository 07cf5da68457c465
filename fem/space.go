package fem

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qwell/mesh"
)

// Space is a continuous Lagrange space on a mesh.
//
// DOFs live on a refined node lattice: degree p puts nodes at every 1/p of a
// mesh edge, so node (I, J) sits at (I·hx/p, J·hy/p). On a strip the row
// J = p·Ny is folded onto J = 0, which realises the periodic map y=H → y=0.
// Every node on the lattice column of a vertex in Mesh.BoundaryTags carries
// the homogeneous Dirichlet condition.
type Space struct {
	Mesh      *mesh.Mesh
	Degree    int
	NumDofs   int
	CellDofs  [][]int      // local node order: vertices, then edges
	DofCoords []mesh.Point // position of each dof
	Periodic  bool
	Dirichlet []int // ascending
	Free      []int // ascending complement of Dirichlet

	elem  element
	cols  int // p·Nx + 1
	rows  int // p·Ny (strip) or 1 (interval)
	index []int
}

// NewSpace builds the degree-1 or degree-2 Lagrange space on m.
// The mesh must carry boundary tags (see mesh.MarkBoundary); an untagged
// mesh fails with ErrNoBoundary.
// Complexity: O(cells + dofs).
func NewSpace(m *mesh.Mesh, degree int) (*Space, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	if degree != 1 && degree != 2 {
		return nil, fmt.Errorf("degree %d: %w", degree, ErrUnsupportedDegree)
	}
	if len(m.BoundaryTags) == 0 {
		return nil, ErrNoBoundary
	}

	s := &Space{Mesh: m, Degree: degree, Periodic: m.Kind == mesh.Strip}
	s.cols = degree*m.Nx + 1
	s.rows = 1
	vertsPerCell := 2
	if s.Periodic {
		s.rows = degree * m.Ny
		vertsPerCell = 3
	}
	s.elem = newElement(vertsPerCell, degree)
	s.NumDofs = s.cols * s.rows

	hx := m.Length / float64(m.Nx)
	hy := 0.0
	if s.Periodic {
		hy = m.Height / float64(m.Ny)
	}
	s.DofCoords = make([]mesh.Point, s.NumDofs)
	for J := 0; J < s.rows; J++ {
		for I := 0; I < s.cols; I++ {
			s.DofCoords[s.dof(I, J)] = mesh.Point{
				X: float64(I) * hx / float64(degree),
				Y: float64(J) * hy / float64(degree),
			}
		}
	}

	s.CellDofs = make([][]int, m.NumCells())
	for c, vs := range m.Cells {
		s.CellDofs[c] = s.cellDofs(vs)
	}

	for _, I := range s.boundaryColumns() {
		for J := 0; J < s.rows; J++ {
			s.Dirichlet = append(s.Dirichlet, s.dof(I, J))
		}
	}
	sort.Ints(s.Dirichlet)
	s.index = make([]int, s.NumDofs)
	for d := range s.index {
		s.index[d] = -1
	}
	for _, d := range s.Dirichlet {
		s.index[d] = -2
	}
	for d := 0; d < s.NumDofs; d++ {
		if s.index[d] == -1 {
			s.index[d] = len(s.Free)
			s.Free = append(s.Free, d)
		}
	}

	return s, nil
}

// boundaryColumns returns the distinct lattice columns of the tagged
// vertices, ascending.
func (s *Space) boundaryColumns() []int {
	seen := map[int]bool{}
	var out []int
	for v := range s.Mesh.BoundaryTags {
		i, _ := s.Mesh.Lattice(v)
		if I := s.Degree * i; !seen[I] {
			seen[I] = true
			out = append(out, I)
		}
	}
	sort.Ints(out)

	return out
}

// dof numbers node (I, J) after periodic folding.
func (s *Space) dof(I, J int) int {
	if s.Periodic {
		J %= s.rows
	} else {
		J = 0
	}

	return J*s.cols + I
}

// cellDofs maps the cell's vertices (and edge midpoints for P2) to dofs.
// Lattice coordinates are averaged before folding so that edges crossing
// the periodic seam land on the right row.
func (s *Space) cellDofs(vs []int) []int {
	p := s.Degree
	lat := make([][2]int, len(vs))
	for k, v := range vs {
		i, j := s.Mesh.Lattice(v)
		lat[k] = [2]int{p * i, p * j}
	}
	out := make([]int, 0, s.elem.nodes())
	for _, l := range lat {
		out = append(out, s.dof(l[0], l[1]))
	}
	for _, e := range s.elem.edges {
		a, b := lat[e[0]], lat[e[1]]
		out = append(out, s.dof((a[0]+b[0])/2, (a[1]+b[1])/2))
	}

	return out
}

// NumFree returns the number of unconstrained dofs.
func (s *Space) NumFree() int { return len(s.Free) }

// FreeIndex returns the position of dof d in Free, or -1 when d is constrained.
func (s *Space) FreeIndex(d int) int {
	if d < 0 || d >= s.NumDofs || s.index[d] < 0 {
		return -1
	}

	return s.index[d]
}

// IsDirichlet reports whether dof d is constrained.
func (s *Space) IsDirichlet(d int) bool { return d >= 0 && d < s.NumDofs && s.index[d] == -2 }

// LineDofs returns the dofs on the row y=0, ordered by x. On an interval mesh
// this is every dof.
func (s *Space) LineDofs() []int {
	out := make([]int, s.cols)
	for I := range out {
		out[I] = s.dof(I, 0)
	}

	return out
}

// barycentricGradients returns ∇λ_i for the cell and its measure.
func (s *Space) barycentricGradients(c int) ([3][2]float64, float64) {
	var g [3][2]float64
	vs := s.Mesh.Cells[c]
	p0 := s.Mesh.Vertices[vs[0]]
	p1 := s.Mesh.Vertices[vs[1]]
	if len(vs) == 2 {
		h := p1.X - p0.X
		g[0] = [2]float64{-1 / h, 0}
		g[1] = [2]float64{1 / h, 0}
		return g, math.Abs(h)
	}
	p2 := s.Mesh.Vertices[vs[2]]
	det := (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
	g[0] = [2]float64{(p1.Y - p2.Y) / det, (p2.X - p1.X) / det}
	g[1] = [2]float64{(p2.Y - p0.Y) / det, (p0.X - p2.X) / det}
	g[2] = [2]float64{(p0.Y - p1.Y) / det, (p1.X - p0.X) / det}

	return g, 0.5 * math.Abs(det)
}
