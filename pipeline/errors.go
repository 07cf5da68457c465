package pipeline

import "errors"

// Sentinel errors.
var (
	// ErrSweepLayers indicates a width sweep over a custom layer list; only the
	// three-layer finite well has a well width to vary.
	ErrSweepLayers = errors.New("pipeline: width sweep needs the finite-well geometry, not layers")

	// ErrWorkers indicates a non-positive worker count.
	ErrWorkers = errors.New("pipeline: workers must be >= 1")
)
