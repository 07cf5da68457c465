package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/katalvlaran/qwell/boundstate"
	"github.com/katalvlaran/qwell/config"
)

// SweepPoint is the outcome of one well width.
type SweepPoint struct {
	Width    float64
	Energies []float64
	Parities []boundstate.Parity
	Pairs    int
}

// Sweep runs the pipeline once per well width with at most workers runs in
// flight. Points come back in the order of widths. The first failing run
// cancels the rest and its error is returned, tagged with the width.
func Sweep(ctx context.Context, cfg config.Config, widths []float64, workers int, opts ...Option) ([]SweepPoint, error) {
	if len(cfg.Layers) > 0 {
		return nil, ErrSweepLayers
	}
	if workers < 1 {
		return nil, fmt.Errorf("workers=%d: %w", workers, ErrWorkers)
	}
	if len(widths) == 0 {
		return nil, nil
	}
	workers = min(workers, len(widths))

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		out   = make([]SweepPoint, len(widths))
		jobs  = make(chan int)
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-runCtx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					p, err := sweepOne(runCtx, cfg, widths[i], o)
					if err != nil {
						once.Do(func() {
							first = fmt.Errorf("width=%g: %w", widths[i], err)
							cancel()
						})

						return
					}
					out[i] = p
				}
			}
		}()
	}

feed:
	for i := range widths {
		select {
		case <-runCtx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if first != nil {
		return nil, first
	}

	return out, nil
}

func sweepOne(ctx context.Context, cfg config.Config, width float64, o options) (SweepPoint, error) {
	cfg.Geometry.WellWidth = width
	// the sweep list belongs to the caller; a single run never sweeps
	cfg.Sweep.Widths = nil
	res, err := Run(ctx, cfg, WithLogger(o.logger.With("width", width)))
	if err != nil {
		return SweepPoint{}, err
	}
	p := SweepPoint{Width: width, Energies: res.Energies(), Pairs: res.Decomposition.Len()}
	for _, s := range res.States {
		p.Parities = append(p.Parities, s.Parity)
	}

	return p, nil
}
