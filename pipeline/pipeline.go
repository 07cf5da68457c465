// Package pipeline wires the stages of a bound-state computation:
//
//	structure → mesh → cell/boundary marking → space → assembly →
//	Dirichlet reduction → generalized eigensolve → bound-state filter
//
// Run executes one configuration synchronously; Sweep repeats Run for a list
// of well widths on a fixed pool of workers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/qwell/boundstate"
	"github.com/katalvlaran/qwell/config"
	"github.com/katalvlaran/qwell/eigen"
	"github.com/katalvlaran/qwell/fem"
	"github.com/katalvlaran/qwell/geometry"
	"github.com/katalvlaran/qwell/mesh"
	"github.com/katalvlaran/qwell/report"
)

// symmetryTol bounds the layer mismatch under which parities are assigned.
const symmetryTol = 1e-9

// Timings holds the wall time of each stage.
type Timings struct {
	Mesh     time.Duration
	Assemble time.Duration
	Solve    time.Duration
	Filter   time.Duration
	Total    time.Duration
}

// Result is everything one run produced.
type Result struct {
	Config        config.Config
	Structure     *geometry.Structure
	Mesh          *mesh.Mesh
	Space         *fem.Space
	System        *fem.System
	Decomposition *eigen.Decomposition
	States        []boundstate.State
	Barrier       float64
	Exhausted     bool // every computed eigenvalue lies below the barrier
	Timings       Timings
}

// Energies returns the bound energies in order.
func (r *Result) Energies() []float64 { return boundstate.Energies(r.States) }

// Summary condenses the run for report.SaveXLSX.
func (r *Result) Summary() report.Summary {
	return report.Summary{
		Mesh:     r.Mesh.Kind.String(),
		Elements: r.Mesh.Nx,
		Degree:   r.Space.Degree,
		Dofs:     r.Space.NumDofs,
		Free:     r.Space.NumFree(),
		Backend:  r.Decomposition.Backend,
		Barrier:  r.Barrier,
		Pairs:    r.Decomposition.Len(),
		Elapsed:  r.Timings.Total.String(),
	}
}

// Run validates cfg and computes its bound states.
//
// A decomposition lying entirely below the barrier is not an error: the
// states are returned, Result.Exhausted is set and a warning is logged.
// Cancellation of ctx is honoured between stages and inside the Jacobi sweeps.
func Run(ctx context.Context, cfg config.Config, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	lg := o.logger
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := eigen.CheckCapabilities(cfg.Solver.Backend, cfg.Requirement()); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st, err := cfg.Structure()
	if err != nil {
		return nil, err
	}
	res := &Result{Config: cfg, Structure: st, Barrier: st.Barrier()}

	t := time.Now()
	if res.Mesh, err = buildMesh(cfg, st); err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	if res.Space, err = fem.NewSpace(res.Mesh, cfg.Mesh.Degree); err != nil {
		return nil, fmt.Errorf("space: %w", err)
	}
	res.Timings.Mesh = time.Since(t)
	lg.Debug("mesh", "kind", res.Mesh.Kind, "cells", res.Mesh.NumCells(),
		"boundary", len(res.Mesh.BoundaryTags), "dofs", res.Space.NumDofs, "free", res.Space.NumFree())
	warnTransverse(lg, cfg, st, res.Mesh)

	t = time.Now()
	if res.System, err = fem.AssembleSystem(res.Space, st); err != nil {
		return nil, err
	}
	h, m, err := res.System.Reduce()
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	res.Timings.Assemble = time.Since(t)
	lg.Debug("assembled", "nnz", res.System.H.NNZ(), "free", h.Rows(), "elapsed", res.Timings.Assemble)
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	solver, err := eigen.New(cfg.EigenOptions()...)
	if err != nil {
		return nil, err
	}
	if o.console != nil {
		if err = o.console.Computing(); err != nil {
			return nil, err
		}
	}
	t = time.Now()
	if res.Decomposition, err = solver.Solve(ctx, h, m); err != nil {
		return nil, err
	}
	res.Timings.Solve = time.Since(t)
	lg.Info("solved", "backend", res.Decomposition.Backend, "pairs", res.Decomposition.Len(),
		"sweeps", res.Decomposition.Sweeps, "residual", res.Decomposition.Residual, "elapsed", res.Timings.Solve)

	t = time.Now()
	res.States, err = boundstate.Filter(res.Decomposition, res.System, res.Barrier)
	switch {
	case errors.Is(err, boundstate.ErrSpectrumExhausted):
		res.Exhausted = true
		lg.Warn("every eigenvalue lies below the barrier; refine the mesh", "pairs", res.Decomposition.Len())
	case err != nil:
		return nil, err
	}
	if st.IsSymmetric(symmetryTol) {
		boundstate.ClassifyAll(res.States, st.WellCenter())
	}
	res.Timings.Filter = time.Since(t)
	res.Timings.Total = time.Since(start)
	lg.Info("bound states", "count", len(res.States), "barrier", res.Barrier, "elapsed", res.Timings.Total)

	return res, nil
}

// buildMesh creates the configured mesh and marks its cells and boundary.
func buildMesh(cfg config.Config, st *geometry.Structure) (*mesh.Mesh, error) {
	kind, err := mesh.ParseKind(cfg.Mesh.Kind)
	if err != nil {
		return nil, err
	}
	var m *mesh.Mesh
	if kind == mesh.Strip {
		m, err = mesh.NewStrip(st.Total, cfg.StripHeight(st.Total), cfg.Mesh.Elements, cfg.Mesh.CrossElements)
	} else {
		m, err = mesh.NewInterval(st.Total, cfg.Mesh.Elements)
	}
	if err != nil {
		return nil, err
	}
	if err = m.MarkCells(st.LayerAt); err != nil {
		return nil, err
	}
	m.MarkBoundary(1e-9 * st.Total)

	return m, nil
}

// warnTransverse logs when the first periodic mode across a strip,
// c·(2π/H)² above the band bottom, is itself confined by the barrier.
// Such modes pollute the bound-state list with y-dependent states.
func warnTransverse(lg *log.Logger, cfg config.Config, st *geometry.Structure, m *mesh.Mesh) {
	if m.Kind != mesh.Strip || cfg.Mesh.Degree*m.Ny < 2 {
		return
	}
	c := math.Inf(1)
	for _, l := range st.Layers {
		c = math.Min(c, l.Coefficient)
	}
	k := 2 * math.Pi / m.Height
	if e := st.Bottom() + c*k*k; e < st.Barrier() {
		lg.Warn("transverse strip mode below barrier", "energy", e, "height", m.Height)
	}
}
