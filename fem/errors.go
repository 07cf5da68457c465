package fem

import "errors"

var (
	// ErrUnsupportedDegree indicates a Lagrange degree other than 1 or 2.
	ErrUnsupportedDegree = errors.New("fem: only Lagrange degree 1 and 2 are supported")
	// ErrUntaggedCell indicates assembly over a cell without a region tag.
	ErrUntaggedCell = errors.New("fem: cell has no region tag")
	// ErrMissingCoefficient indicates a region tag the form has no data for.
	ErrMissingCoefficient = errors.New("fem: no coefficient for region")
	// ErrNoBoundary indicates a mesh without boundary tags.
	ErrNoBoundary = errors.New("fem: mesh has no boundary tags")
	// ErrNilMesh indicates a nil mesh or space argument.
	ErrNilMesh = errors.New("fem: nil mesh")
	// ErrVectorLength indicates a coefficient vector of the wrong size.
	ErrVectorLength = errors.New("fem: vector length does not match space")
	// ErrOutsideDomain indicates an evaluation point outside the mesh.
	ErrOutsideDomain = errors.New("fem: point outside the domain")
)
