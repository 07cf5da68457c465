package fem

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qwell/geometry"
	"github.com/katalvlaran/qwell/matrix"
	"github.com/katalvlaran/qwell/mesh"
)

// Assemble integrates form over every cell of the space and returns the
// global matrix over all dofs. Cells must carry region tags (mesh.MarkCells).
// Complexity: O(cells · nodes² · quadrature points) plus O(nnz log nnz) to compress.
func Assemble(s *Space, form Form) (*matrix.Sparse, error) {
	if s == nil || s.Mesh == nil {
		return nil, ErrNilMesh
	}
	tr, err := matrix.NewTriplet(s.NumDofs, s.NumDofs)
	if err != nil {
		return nil, err
	}

	n := s.elem.nodes()
	phi := make([]float64, n)
	grad := make([][2]float64, n)
	local := make([]float64, n*n)
	var a, b int
	for c := range s.Mesh.Cells {
		tag := s.Mesh.CellTags[c]
		if tag == mesh.Untagged {
			return nil, fmt.Errorf("cell %d: %w", c, ErrUntaggedCell)
		}
		diff, react, err := form.coefficients(tag)
		if err != nil {
			return nil, err
		}
		gl, measure := s.barycentricGradients(c)

		for k := range local {
			local[k] = 0
		}
		for _, qp := range s.elem.rule {
			s.elem.basis(qp.lambda, phi)
			s.elem.gradients(qp.lambda, gl, grad)
			w := measure * qp.weight
			for a = 0; a < n; a++ {
				for b = a; b < n; b++ {
					local[a*n+b] += w * (diff*dot2(grad[a], grad[b]) + react*phi[a]*phi[b])
				}
			}
		}

		dofs := s.CellDofs[c]
		for a = 0; a < n; a++ {
			for b = a; b < n; b++ {
				v := local[a*n+b]
				if err = tr.Add(dofs[a], dofs[b], v); err != nil {
					return nil, err
				}
				if a != b {
					if err = tr.Add(dofs[b], dofs[a], v); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return tr.Compress(), nil
}

// System is the assembled eigenproblem H x = λ M x over the full dof set.
type System struct {
	Space *Space
	H, M  *matrix.Sparse
}

// AssembleSystem assembles the Hamiltonian and mass matrices of st on s.
func AssembleSystem(s *Space, st *geometry.Structure) (*System, error) {
	h, err := Assemble(s, Hamiltonian(st))
	if err != nil {
		return nil, fmt.Errorf("hamiltonian: %w", err)
	}
	m, err := Assemble(s, Mass(len(st.Layers)))
	if err != nil {
		return nil, fmt.Errorf("mass: %w", err)
	}

	return &System{Space: s, H: h, M: m}, nil
}

// Reduce eliminates the Dirichlet dofs: it returns the principal submatrices
// of H and M over Space.Free. A space without free dofs yields 0×0 matrices.
func (sys *System) Reduce() (*matrix.Sparse, *matrix.Sparse, error) {
	h, err := sys.H.Principal(sys.Space.Free)
	if err != nil {
		return nil, nil, err
	}
	m, err := sys.M.Principal(sys.Space.Free)
	if err != nil {
		return nil, nil, err
	}

	return h, m, nil
}

// Expand maps a vector over free dofs back to all dofs; constrained entries are zero.
func (sys *System) Expand(reduced []float64) ([]float64, error) {
	if len(reduced) != len(sys.Space.Free) {
		return nil, fmt.Errorf("expand %d into %d free dofs: %w", len(reduced), len(sys.Space.Free), ErrVectorLength)
	}
	full := make([]float64, sys.Space.NumDofs)
	for k, d := range sys.Space.Free {
		full[d] = reduced[k]
	}

	return full, nil
}

// Inner returns xᵀ M y.
func (sys *System) Inner(x, y []float64) (float64, error) {
	my, err := sys.M.MulVec(y)
	if err != nil {
		return 0, err
	}
	if len(x) != len(my) {
		return 0, ErrVectorLength
	}

	return floats.Dot(x, my), nil
}

// Energy returns the Rayleigh quotient xᵀHx / xᵀMx.
func (sys *System) Energy(x []float64) (float64, error) {
	hx, err := sys.H.MulVec(x)
	if err != nil {
		return 0, err
	}
	num := floats.Dot(x, hx)
	den, err := sys.Inner(x, x)
	if err != nil {
		return 0, err
	}

	return num / den, nil
}
