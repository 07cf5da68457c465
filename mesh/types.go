package mesh

import "fmt"

// Kind selects the cell shape of a mesh.
type Kind int

const (
	// Interval is a 1D mesh of segments along x.
	Interval Kind = iota
	// Strip is a 2D rectangle [0,L]×[0,H] of triangles, periodic in y.
	Strip
)

func (k Kind) String() string {
	switch k {
	case Interval:
		return "interval"
	case Strip:
		return "strip"
	default:
		return "unknown"
	}
}

// ParseKind maps "interval" or "strip" onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "interval":
		return Interval, nil
	case "strip":
		return Strip, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Boundary facet tags.
const (
	TagLeft  = 0 // x = 0
	TagRight = 1 // x = Length
)

// Untagged marks a cell not yet assigned to a region.
const Untagged = -1

// Point is a vertex position; Y is zero on interval meshes.
type Point struct{ X, Y float64 }

// Mesh is a structured simplex mesh.
//
// Vertices are laid out on an (Nx+1)×(Ny+1) lattice, row-major in y:
// vertex (i, j) has index j*(Nx+1)+i. Interval meshes have Ny = 0.
// On a Strip the top row j = Ny coincides with j = 0 under the periodic
// map; it is kept as geometry and folded by the function space.
type Mesh struct {
	Kind         Kind
	Length       float64
	Height       float64
	Nx, Ny       int
	Vertices     []Point
	Cells        [][]int     // 2 vertices per segment, 3 per triangle (counter-clockwise)
	CellTags     []int       // region index per cell, Untagged until MarkCells
	BoundaryTags map[int]int // vertex -> TagLeft | TagRight
}
