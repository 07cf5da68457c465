// Package boundstate selects the localized eigenstates of a quantum well:
// the eigenpairs whose energy lies strictly below the confining barrier.
//
// Every pair of the decomposition is inspected, whatever order the backend
// returned them in: a magnitude ordering puts a negative ground level behind
// larger positive ones. Pairs at or above the barrier are dropped and the
// survivors are sorted by energy, so the number of states always equals the
// number of energies below the barrier.
//
// Every state is normalised in the mass inner product (∫ψ² dx = 1) and its
// sign is fixed so that the largest coefficient is positive; two runs on the
// same input therefore produce identical wavefunctions.
package boundstate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qwell/eigen"
	"github.com/katalvlaran/qwell/fem"
)

// Sentinel errors.
var (
	// ErrNilInput indicates a nil decomposition or system.
	ErrNilInput = errors.New("boundstate: nil decomposition or system")

	// ErrSpectrumExhausted indicates that every computed eigenvalue lies below
	// the barrier; the returned states are complete for the discrete spectrum
	// but the cutoff was never observed.
	ErrSpectrumExhausted = errors.New("boundstate: spectrum exhausted below barrier")

	// ErrZeroNorm indicates an eigenvector with vanishing mass norm.
	ErrZeroNorm = errors.New("boundstate: eigenvector has zero norm")
)

// State is one bound state.
type State struct {
	Index  int           // position in the decomposition
	Energy float64       // eV
	Psi    *fem.Function // normalised wavefunction over all dofs
	Parity Parity        // Unknown until Classify is called
}

// Filter returns the states of dec with energy < barrier, in ascending
// energy. Ties keep their decomposition order. Vectors are expanded through
// sys (Dirichlet dofs become zero).
//
// If no pair of dec reaches the barrier, the states are returned together
// with ErrSpectrumExhausted.
//
// Complexity: O(pairs + states · nnz(M)).
func Filter(dec *eigen.Decomposition, sys *fem.System, barrier float64) ([]State, error) {
	if dec == nil || sys == nil || sys.Space == nil {
		return nil, ErrNilInput
	}
	var states []State
	for k := 0; k < dec.Len(); k++ {
		e, x, err := dec.Pair(k)
		if err != nil {
			return nil, err
		}
		if e >= barrier {
			continue
		}
		psi, err := wavefunction(sys, x)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", k, err)
		}
		states = append(states, State{Index: k, Energy: e, Psi: psi})
	}
	sort.SliceStable(states, func(i, j int) bool { return states[i].Energy < states[j].Energy })

	if len(states) == dec.Len() {
		return states, fmt.Errorf("%d pairs below %g eV: %w", len(states), barrier, ErrSpectrumExhausted)
	}

	return states, nil
}

// wavefunction expands x, normalises it in the M inner product and fixes its sign.
func wavefunction(sys *fem.System, x []float64) (*fem.Function, error) {
	full, err := sys.Expand(x)
	if err != nil {
		return nil, err
	}
	nrm, err := sys.Inner(full, full)
	if err != nil {
		return nil, err
	}
	if !(nrm > 0) {
		return nil, ErrZeroNorm
	}
	psi, err := fem.NewFunction(sys.Space, full)
	if err != nil {
		return nil, err
	}
	psi.Scale(1 / math.Sqrt(nrm))
	if peak, _ := psi.MaxAbs(); peak < 0 {
		psi.Scale(-1)
	}

	return psi, nil
}

// Energies returns the energies of states in order.
func Energies(states []State) []float64 {
	out := make([]float64, len(states))
	for k, s := range states {
		out[k] = s.Energy
	}

	return out
}

// BoundaryResidual returns the largest |ψ| over the Dirichlet dofs and the
// two physical ends x=0 and x=L.
func BoundaryResidual(s State) float64 {
	var r float64
	for _, d := range s.Psi.Space.Dirichlet {
		r = math.Max(r, math.Abs(s.Psi.Coeffs[d]))
	}
	for _, x := range []float64{0, s.Psi.Space.Mesh.Length} {
		if v, err := s.Psi.Eval(x, 0); err == nil {
			r = math.Max(r, math.Abs(v))
		}
	}

	return r
}
