package fem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qwell/mesh"
)

// domainEps is the slack allowed when locating a point at the x-boundaries.
const domainEps = 1e-9

// Function is a finite-element field: one coefficient per dof of Space.
type Function struct {
	Space  *Space
	Coeffs []float64
}

// NewFunction wraps coeffs (not copied) as a field on s.
func NewFunction(s *Space, coeffs []float64) (*Function, error) {
	if s == nil {
		return nil, ErrNilMesh
	}
	if len(coeffs) != s.NumDofs {
		return nil, fmt.Errorf("%d coefficients for %d dofs: %w", len(coeffs), s.NumDofs, ErrVectorLength)
	}

	return &Function{Space: s, Coeffs: coeffs}, nil
}

// Eval returns u(x, y). On a strip y is taken modulo the height; on an
// interval y is ignored.
func (f *Function) Eval(x, y float64) (float64, error) {
	m := f.Space.Mesh
	if x < -domainEps || x > m.Length+domainEps || math.IsNaN(x) {
		return 0, fmt.Errorf("x=%g: %w", x, ErrOutsideDomain)
	}
	hx := m.Length / float64(m.Nx)
	i := clampCell(int(math.Floor(x/hx)), m.Nx)
	s := x/hx - float64(i)

	var (
		cell   int
		lambda [3]float64
	)
	if m.Kind == mesh.Interval {
		cell = i
		lambda = [3]float64{1 - s, s, 0}
	} else {
		hy := m.Height / float64(m.Ny)
		yy := math.Mod(y, m.Height)
		if yy < 0 {
			yy += m.Height
		}
		j := clampCell(int(math.Floor(yy/hy)), m.Ny)
		r := yy/hy - float64(j)
		rect := j*m.Nx + i
		if r <= s {
			cell = 2 * rect
			lambda = [3]float64{1 - s, s - r, r}
		} else {
			cell = 2*rect + 1
			lambda = [3]float64{1 - r, s, r - s}
		}
	}

	phi := make([]float64, f.Space.elem.nodes())
	f.Space.elem.basis(lambda, phi)
	var v float64
	for k, d := range f.Space.CellDofs[cell] {
		v += f.Coeffs[d] * phi[k]
	}

	return v, nil
}

func clampCell(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}

	return i
}

// SampleX evaluates u along y=0 at n+1 equally spaced points of [0, L].
func (f *Function) SampleX(n int) (xs, vs []float64) {
	if n < 1 {
		n = 1
	}
	xs = make([]float64, n+1)
	floats.Span(xs, 0, f.Space.Mesh.Length)
	vs = make([]float64, n+1)
	for k, x := range xs {
		vs[k], _ = f.Eval(x, 0)
	}

	return xs, vs
}

// Scale multiplies every coefficient by c in place.
func (f *Function) Scale(c float64) { floats.Scale(c, f.Coeffs) }

// MaxAbs returns the coefficient of largest magnitude (with sign) and its dof.
func (f *Function) MaxAbs() (float64, int) {
	best := 0
	for d, v := range f.Coeffs {
		if math.Abs(v) > math.Abs(f.Coeffs[best]) {
			best = d
		}
	}

	return f.Coeffs[best], best
}
