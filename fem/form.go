package fem

import (
	"fmt"

	"github.com/katalvlaran/qwell/geometry"
)

// Form is the symmetric bilinear form
//
//	a(u, v) = Σ_k ∫_{Ω_k} ( Diffusion[k] ∇u·∇v + Reaction[k] u v ) dx
//
// where Ω_k is the union of cells tagged k.
type Form struct {
	Name      string
	Diffusion []float64
	Reaction  []float64
}

// Hamiltonian returns the kinetic-plus-potential form of s: diffusion
// hb2m/m*_k and reaction V_k per layer.
func Hamiltonian(s *geometry.Structure) Form {
	f := Form{Name: "hamiltonian"}
	for _, l := range s.Layers {
		f.Diffusion = append(f.Diffusion, l.Coefficient)
		f.Reaction = append(f.Reaction, l.Potential)
	}

	return f
}

// Mass returns the L2 inner-product form over regions regions.
func Mass(regions int) Form {
	f := Form{Name: "mass", Diffusion: make([]float64, regions), Reaction: make([]float64, regions)}
	for k := range f.Reaction {
		f.Reaction[k] = 1
	}

	return f
}

// coefficients returns (diffusion, reaction) for a region tag.
func (f Form) coefficients(tag int) (float64, float64, error) {
	if tag < 0 || tag >= len(f.Diffusion) || tag >= len(f.Reaction) {
		return 0, 0, fmt.Errorf("%s form, region %d: %w", f.Name, tag, ErrMissingCoefficient)
	}

	return f.Diffusion[tag], f.Reaction[tag], nil
}
