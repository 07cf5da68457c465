package fem

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// Reference simplices are described in barycentric coordinates λ, so that
// segments and triangles share one basis:
//
//	P1: φ_i = λ_i
//	P2: φ_i = λ_i(2λ_i - 1) at vertices, φ_ab = 4λ_aλ_b at edge midpoints.
//
// Local node order is vertices first, then edges in the order of edgePairs.

// quadPoint is a barycentric point with a weight; weights of a rule sum to 1
// so that ∫_cell f = |cell|·Σ w f(λ).
type quadPoint struct {
	lambda [3]float64
	weight float64
}

// edgePairs lists the local vertex pairs of P2 edge nodes.
var (
	segmentEdges  = [][2]int{{0, 1}}
	triangleEdges = [][2]int{{0, 1}, {1, 2}, {2, 0}}
)

// Dunavant symmetric rules on the triangle.
const (
	dunavant4A  = 0.445948490915965
	dunavant4WA = 0.223381589678011
	dunavant4B  = 0.091576213509771
	dunavant4WB = 0.109951743655322
)

// gaussPoints is the Gauss–Legendre order used on segments; exact to degree 5.
const gaussPoints = 3

// segmentRule maps Gauss–Legendre points on [0,1] to barycentric form.
func segmentRule() []quadPoint {
	x := make([]float64, gaussPoints)
	w := make([]float64, gaussPoints)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	rule := make([]quadPoint, gaussPoints)
	for q := range x {
		rule[q] = quadPoint{lambda: [3]float64{1 - x[q], x[q], 0}, weight: w[q]}
	}

	return rule
}

// triangleRule returns a symmetric rule exact to the given polynomial degree
// (2 or 4).
func triangleRule(degree int) []quadPoint {
	if degree <= 2 {
		const a, b, w = 2.0 / 3, 1.0 / 6, 1.0 / 3
		return []quadPoint{
			{[3]float64{a, b, b}, w},
			{[3]float64{b, a, b}, w},
			{[3]float64{b, b, a}, w},
		}
	}
	rule := make([]quadPoint, 0, 6)
	for _, g := range []struct{ a, w float64 }{{dunavant4A, dunavant4WA}, {dunavant4B, dunavant4WB}} {
		c := 1 - 2*g.a
		rule = append(rule,
			quadPoint{[3]float64{g.a, g.a, c}, g.w},
			quadPoint{[3]float64{g.a, c, g.a}, g.w},
			quadPoint{[3]float64{c, g.a, g.a}, g.w},
		)
	}

	return rule
}

// element holds the reference data for one (shape, degree) pair.
type element struct {
	vertices int      // 2 or 3
	degree   int      // 1 or 2
	edges    [][2]int // P2 edge nodes
	rule     []quadPoint
}

func newElement(vertices, degree int) element {
	e := element{vertices: vertices, degree: degree}
	if vertices == 2 {
		e.edges = segmentEdges
		e.rule = segmentRule()
	} else {
		e.edges = triangleEdges
		e.rule = triangleRule(2 * degree)
	}
	if degree == 1 {
		e.edges = nil
	}

	return e
}

// nodes is the number of local basis functions.
func (e element) nodes() int { return e.vertices + len(e.edges) }

// basis evaluates all local basis functions at λ.
func (e element) basis(l [3]float64, out []float64) {
	var i int
	for i = 0; i < e.vertices; i++ {
		if e.degree == 1 {
			out[i] = l[i]
		} else {
			out[i] = l[i] * (2*l[i] - 1)
		}
	}
	for k, p := range e.edges {
		out[e.vertices+k] = 4 * l[p[0]] * l[p[1]]
	}
}

// gradients evaluates the physical gradients of all basis functions at λ
// given the constant barycentric gradients gl of the cell.
func (e element) gradients(l [3]float64, gl [3][2]float64, out [][2]float64) {
	var i int
	for i = 0; i < e.vertices; i++ {
		f := 1.0
		if e.degree == 2 {
			f = 4*l[i] - 1
		}
		out[i] = [2]float64{f * gl[i][0], f * gl[i][1]}
	}
	for k, p := range e.edges {
		a, b := p[0], p[1]
		out[e.vertices+k] = [2]float64{
			4 * (l[b]*gl[a][0] + l[a]*gl[b][0]),
			4 * (l[b]*gl[a][1] + l[a]*gl[b][1]),
		}
	}
}

// dot2 is ∇u·∇v for 2-vectors.
func dot2(a, b [2]float64) float64 { return floats.Dot(a[:], b[:]) }
