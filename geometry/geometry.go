// Package geometry describes layered heterostructures: where each layer sits
// along the growth axis and which potential and effective mass it carries.
//
// The default structure is the symmetric finite quantum well
//
//	barrier | well | barrier
//
// of total thickness 2·BarrierWidth + WellWidth, but any number of layers can
// be stacked with NewStructure.
package geometry

import (
	"fmt"
	"math"
)

// Default material constants (GaAs well in Al0.3Ga0.7As-like barriers).
const (
	DefaultHb2m          = 3.81  // ħ²/2m0 in eV·Å²
	DefaultWellWidth     = 80.0  // Å
	DefaultBarrierWidth  = 250.0 // Å
	DefaultWellPotential = 0.0   // eV
	DefaultBarrierHeight = 0.23  // eV
	DefaultWellMass      = 0.067 // m0
	DefaultBarrierMass   = 0.096 // m0
)

// boundaryEps is the slack of LayerAt membership tests.
const boundaryEps = 1e-10

// DefaultParams returns the reference barrier/well/barrier parameters.
func DefaultParams() Params {
	return Params{
		WellWidth:     DefaultWellWidth,
		BarrierWidth:  DefaultBarrierWidth,
		WellPotential: DefaultWellPotential,
		BarrierHeight: DefaultBarrierHeight,
		WellMass:      DefaultWellMass,
		BarrierMass:   DefaultBarrierMass,
		Hb2m:          DefaultHb2m,
	}
}

// Specs expands p into the three layer specs barrier, well, barrier.
func (p Params) Specs() []LayerSpec {
	return []LayerSpec{
		{Name: "barrier-left", Thickness: p.BarrierWidth, Potential: p.BarrierHeight, Mass: p.BarrierMass},
		{Name: "well", Thickness: p.WellWidth, Potential: p.WellPotential, Mass: p.WellMass},
		{Name: "barrier-right", Thickness: p.BarrierWidth, Potential: p.BarrierHeight, Mass: p.BarrierMass},
	}
}

// NewFiniteWell builds the symmetric three-layer structure from p.
// Total thickness is 2·BarrierWidth + WellWidth.
func NewFiniteWell(p Params) (*Structure, error) {
	return NewStructure(p.Specs(), p.Hb2m)
}

// NewStructure places specs left to right starting at x=0.
// Returns ErrLayerCount for an empty list, ErrNonPositiveHb2m for hb2m<=0,
// and a *LayerError wrapping ErrNonPositiveThickness, ErrNonPositiveMass or
// ErrNonFinite for an invalid layer.
// Complexity: O(len(specs)).
func NewStructure(specs []LayerSpec, hb2m float64) (*Structure, error) {
	if len(specs) == 0 {
		return nil, ErrLayerCount
	}
	if math.IsNaN(hb2m) || math.IsInf(hb2m, 0) {
		return nil, ErrNonFinite
	}
	if hb2m <= 0 {
		return nil, ErrNonPositiveHb2m
	}

	s := &Structure{Hb2m: hb2m, Layers: make([]Layer, 0, len(specs))}
	var x float64
	for i, ls := range specs {
		if err := validateSpec(i, ls); err != nil {
			return nil, err
		}
		name := ls.Name
		if name == "" {
			name = fmt.Sprintf("layer-%d", i)
		}
		s.Layers = append(s.Layers, Layer{
			Name:        name,
			Start:       x,
			End:         x + ls.Thickness,
			Potential:   ls.Potential,
			Mass:        ls.Mass,
			Coefficient: hb2m / ls.Mass,
		})
		x += ls.Thickness
	}
	s.Total = x

	return s, nil
}

func validateSpec(i int, ls LayerSpec) error {
	fields := [...]struct {
		name string
		v    float64
	}{{"thickness", ls.Thickness}, {"potential", ls.Potential}, {"mass", ls.Mass}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &LayerError{Index: i, Field: f.name, Err: ErrNonFinite}
		}
	}
	if ls.Thickness <= 0 {
		return &LayerError{Index: i, Field: "thickness", Err: ErrNonPositiveThickness}
	}
	if ls.Mass <= 0 {
		return &LayerError{Index: i, Field: "mass", Err: ErrNonPositiveMass}
	}

	return nil
}

// LayerAt returns the index of the first layer whose closed interval
// [Start-eps, End+eps] contains x. Points on an interface belong to the
// left layer. The second result is false outside the structure.
func (s *Structure) LayerAt(x float64) (int, bool) {
	for i, l := range s.Layers {
		if x >= l.Start-boundaryEps && x <= l.End+boundaryEps {
			return i, true
		}
	}

	return -1, false
}

// Barrier is the confinement threshold: the lower of the two outermost
// potentials. A state is bound only if its energy lies strictly below it.
func (s *Structure) Barrier() float64 {
	first, last := s.Layers[0].Potential, s.Layers[len(s.Layers)-1].Potential

	return math.Min(first, last)
}

// Bottom returns the lowest potential in the stack.
func (s *Structure) Bottom() float64 {
	v := s.Layers[0].Potential
	for _, l := range s.Layers[1:] {
		v = math.Min(v, l.Potential)
	}

	return v
}

// CheckTiling verifies that the layers partition [0, Total) without gaps
// or overlaps and that each has positive width.
func (s *Structure) CheckTiling() error {
	if len(s.Layers) == 0 {
		return ErrLayerCount
	}
	if s.Layers[0].Start != 0 {
		return fmt.Errorf("first layer starts at %g: %w", s.Layers[0].Start, ErrTilingGap)
	}
	for i, l := range s.Layers {
		if l.Width() <= 0 {
			return &LayerError{Index: i, Field: "thickness", Err: ErrNonPositiveThickness}
		}
		if i > 0 && l.Start != s.Layers[i-1].End {
			return fmt.Errorf("layers %d/%d meet at %g and %g: %w", i-1, i, s.Layers[i-1].End, l.Start, ErrTilingGap)
		}
	}
	if last := s.Layers[len(s.Layers)-1].End; last != s.Total {
		return fmt.Errorf("last layer ends at %g, total %g: %w", last, s.Total, ErrTilingGap)
	}

	return nil
}

// Mirror returns the structure reflected about Total/2.
func (s *Structure) Mirror() *Structure {
	n := len(s.Layers)
	specs := make([]LayerSpec, n)
	for i, l := range s.Layers {
		specs[n-1-i] = LayerSpec{Name: l.Name, Thickness: l.Width(), Potential: l.Potential, Mass: l.Mass}
	}
	m, _ := NewStructure(specs, s.Hb2m)

	return m
}

// IsSymmetric reports whether the stack equals its mirror image.
func (s *Structure) IsSymmetric(tol float64) bool {
	n := len(s.Layers)
	for i := 0; i < n/2+1 && i < n; i++ {
		a, b := s.Layers[i], s.Layers[n-1-i]
		if math.Abs(a.Width()-b.Width()) > tol || a.Potential != b.Potential || a.Mass != b.Mass {
			return false
		}
	}

	return true
}

// WellCenter returns the midpoint of the layer with the lowest potential.
// Ties resolve to the leftmost such layer.
func (s *Structure) WellCenter() float64 {
	best := 0
	for i, l := range s.Layers {
		if l.Potential < s.Layers[best].Potential {
			best = i
		}
	}
	l := s.Layers[best]

	return 0.5 * (l.Start + l.End)
}

// Interfaces returns the inner layer boundaries, left to right.
func (s *Structure) Interfaces() []float64 {
	out := make([]float64, 0, len(s.Layers)-1)
	for _, l := range s.Layers[:len(s.Layers)-1] {
		out = append(out, l.End)
	}

	return out
}
