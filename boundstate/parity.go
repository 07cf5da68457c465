package boundstate

import (
	"math"
)

// Parity is the reflection symmetry of a wavefunction about the well centre.
type Parity int

const (
	Unknown Parity = iota
	Even
	Odd
	Mixed
)

func (p Parity) String() string {
	switch p {
	case Even:
		return "even"
	case Odd:
		return "odd"
	case Mixed:
		return "mixed"
	}

	return "unknown"
}

const (
	paritySamples = 64
	parityTol     = 1e-6 // relative to max |ψ|
)

// Classify compares ψ(c+d) with ψ(c-d) along y=0 for d in (0, min(c, L-c)].
// A state is Even when ψ(c+d) = ψ(c-d) and Odd when ψ(c+d) = -ψ(c-d) within
// a relative tolerance; anything else is Mixed. A centre outside the domain
// yields Unknown.
func Classify(s State, center float64) Parity {
	length := s.Psi.Space.Mesh.Length
	reach := math.Min(center, length-center)
	if !(reach > 0) {
		return Unknown
	}
	var peak, evenRes, oddRes float64
	for i := 1; i <= paritySamples; i++ {
		d := reach * float64(i) / paritySamples
		r, err := s.Psi.Eval(center+d, 0)
		if err != nil {
			return Unknown
		}
		l, err := s.Psi.Eval(center-d, 0)
		if err != nil {
			return Unknown
		}
		peak = math.Max(peak, math.Max(math.Abs(r), math.Abs(l)))
		evenRes = math.Max(evenRes, math.Abs(r-l))
		oddRes = math.Max(oddRes, math.Abs(r+l))
	}
	switch tol := parityTol * peak; {
	case peak == 0:
		return Unknown
	case evenRes <= tol:
		return Even
	case oddRes <= tol:
		return Odd
	}

	return Mixed
}

// ClassifyAll sets Parity on every state in place.
func ClassifyAll(states []State, center float64) {
	for k := range states {
		states[k].Parity = Classify(states[k], center)
	}
}
