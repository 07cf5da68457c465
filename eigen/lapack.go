package eigen

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qwell/matrix"
)

type lapackSolver struct {
	opts Options
}

func newLAPACK(o Options) Solver { return &lapackSolver{opts: o} }

func (s *lapackSolver) Name() string { return BackendLAPACK }

// Solve reduces the pencil with the Cholesky factor of M,
// C = L⁻¹ H L⁻ᵀ, diagonalizes C with mat.EigenSym and maps the
// eigenvectors back through X = L⁻ᵀ Y. The context is checked between stages.
func (s *lapackSolver) Solve(ctx context.Context, h, m *matrix.Sparse) (*Decomposition, error) {
	n, err := checkPencil(h, m)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &Decomposition{Backend: BackendLAPACK}, nil
	}

	hs, ms := toSym(h), toSym(m)
	var chol mat.Cholesky
	if ok := chol.Factorize(ms); !ok {
		return nil, fmt.Errorf("%s: %w", BackendLAPACK, ErrNotPositiveDefinite)
	}
	var l, linv mat.TriDense
	chol.LTo(&l)
	if err = linv.InverseTri(&l); err != nil {
		return nil, fmt.Errorf("%s: invert factor: %w", BackendLAPACK, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var tmp, c mat.Dense
	tmp.Mul(&linv, hs)
	c.Mul(&tmp, linv.T())
	cs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cs.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(cs, true); !ok {
		return nil, fmt.Errorf("%s: %w", BackendLAPACK, ErrNotConverged)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	var y, x mat.Dense
	es.VectorsTo(&y)
	x.Mul(linv.T(), &y)

	d := &Decomposition{
		Values:  es.Values(nil),
		Vectors: make([][]float64, n),
		Backend: BackendLAPACK,
	}
	for k := 0; k < n; k++ {
		d.Vectors[k] = mat.Col(nil, k, &x)
	}
	if d.Residual, err = d.residual(h, m); err != nil {
		return nil, fmt.Errorf("%s: %w", BackendLAPACK, err)
	}
	d.order(s.opts.Spectrum)

	return d, nil
}

// toSym copies the upper triangle of a symmetric sparse operator into a SymDense.
func toSym(a *matrix.Sparse) *mat.SymDense {
	s := mat.NewSymDense(a.Rows(), nil)
	a.Do(func(i, j int, v float64) bool {
		if i <= j {
			s.SetSym(i, j, v)
		}
		return true
	})

	return s
}
