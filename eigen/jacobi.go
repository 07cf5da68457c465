package eigen

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/qwell/matrix"
)

// symmetryTol bounds |A[i,j]-A[j,i]| for assembled operators.
const symmetryTol = 1e-9

type jacobiSolver struct {
	opts Options
}

func newJacobi(o Options) Solver { return &jacobiSolver{opts: o} }

func (s *jacobiSolver) Name() string { return BackendJacobi }

// Solve densifies the operators and runs matrix.GeneralizedEigen with the
// same symmetry epsilon checkPencil applies. The context is polled once per
// Jacobi sweep.
func (s *jacobiSolver) Solve(ctx context.Context, h, m *matrix.Sparse) (*Decomposition, error) {
	n, err := checkPencil(h, m)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &Decomposition{Backend: BackendJacobi}, nil
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	hook := func(int, float64) error { return ctx.Err() }
	pairs, err := matrix.GeneralizedEigen(h.ToDense(), m.ToDense(),
		matrix.WithEpsilon(symmetryTol),
		matrix.WithTolerance(s.opts.Tol),
		matrix.WithMaxSweeps(s.opts.MaxSweeps),
		matrix.WithSweepHook(hook),
	)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, matrix.ErrNotPositiveDefinite):
		return nil, fmt.Errorf("%s: %w: %w", BackendJacobi, ErrNotPositiveDefinite, err)
	case errors.Is(err, matrix.ErrMatrixEigenFailed):
		return nil, fmt.Errorf("%s: %w: %w", BackendJacobi, ErrNotConverged, err)
	default:
		return nil, fmt.Errorf("%s: %w", BackendJacobi, err)
	}

	d := &Decomposition{
		Values:   pairs.Values,
		Vectors:  make([][]float64, n),
		Backend:  BackendJacobi,
		Sweeps:   pairs.Sweeps,
		Residual: pairs.Residual,
	}
	for k := 0; k < n; k++ {
		if d.Vectors[k], err = pairs.Vectors.Col(k); err != nil {
			return nil, err
		}
	}
	d.order(s.opts.Spectrum)

	return d, nil
}

// checkPencil validates the operator pair and returns its order.
func checkPencil(h, m *matrix.Sparse) (int, error) {
	if h == nil || m == nil {
		return 0, ErrNilOperator
	}
	n := h.Rows()
	if h.Cols() != n || m.Rows() != n || m.Cols() != n {
		return 0, fmt.Errorf("H %dx%d, M %dx%d: %w", h.Rows(), h.Cols(), m.Rows(), m.Cols(), ErrShape)
	}
	if !h.IsSymmetric(symmetryTol) {
		return 0, fmt.Errorf("H: %w", ErrNotSymmetric)
	}
	if !m.IsSymmetric(symmetryTol) {
		return 0, fmt.Errorf("M: %w", ErrNotSymmetric)
	}

	return n, nil
}
