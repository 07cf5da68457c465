// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of the
// dense/sparse kernels and the Jacobi eigen solver. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - eps is a structural tolerance (symmetry checks, zero pivots).
//   - tol and maxSweeps drive the cyclic Jacobi iteration only; they never
//     change results of direct kernels (Cholesky, triangular solves).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultJacobiTol is the relative off-diagonal Frobenius norm at which
	// the cyclic Jacobi iteration is considered converged.
	DefaultJacobiTol = 1e-12

	// DefaultJacobiMaxSweeps bounds the number of full cyclic sweeps.
	// Cyclic Jacobi converges quadratically; 50 sweeps is far beyond need
	// for any well-posed FE operator.
	DefaultJacobiMaxSweeps = 50
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicTolInvalid       = "matrix: WithTolerance: tol must be finite, > 0"
	panicMaxSweepsInvalid = "matrix: WithMaxSweeps: sweeps must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps       float64 // >= 0; DefaultEpsilon
	tol       float64 // > 0; DefaultJacobiTol
	maxSweeps int     // > 0; DefaultJacobiMaxSweeps
	hook      SweepHook
}

// SweepHook observes the Jacobi iteration. It is called once per sweep with
// the sweep number and the relative off-diagonal norm before that sweep;
// a non-nil return aborts the decomposition with that error.
type SweepHook func(sweep int, offNorm float64) error

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Assembled FE matrices accumulate round-off of order 1e-15·‖A‖; the
//     default 1e-9 is generous for symmetry checks on them.
//   - The kernels scale eps by max(1, max|A|), so a backend that has already
//     checked its sparse operators with an absolute eps can pass the same eps.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithTolerance sets the Jacobi convergence threshold (relative off-norm).
// Panics if tol is not finite or not strictly positive.
func WithTolerance(tol float64) Option {
	if isNonFinite(tol) || tol <= 0 {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxSweeps sets the upper bound on cyclic Jacobi sweeps.
// Panics if sweeps <= 0.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithSweepHook installs a per-sweep observer (progress logging, cancellation).
// A nil hook is allowed and disables observation.
func WithSweepHook(h SweepHook) Option {
	return func(o *Options) { o.hook = h }
}

// ---------- Internal helpers ----------

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:       DefaultEpsilon,
		tol:       DefaultJacobiTol,
		maxSweeps: DefaultJacobiMaxSweeps,
	}
}

// gatherOptions applies opts over defaults left-to-right (last wins).
// Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
