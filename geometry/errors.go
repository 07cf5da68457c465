package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveThickness indicates a layer of zero or negative width.
	ErrNonPositiveThickness = errors.New("geometry: layer thickness must be > 0")
	// ErrNonPositiveMass indicates a non-positive effective mass.
	ErrNonPositiveMass = errors.New("geometry: effective mass must be > 0")
	// ErrNonPositiveHb2m indicates a non-positive ħ²/2m0 constant.
	ErrNonPositiveHb2m = errors.New("geometry: hb2m must be > 0")
	// ErrNonFinite indicates a NaN or ±Inf parameter.
	ErrNonFinite = errors.New("geometry: parameter must be finite")
	// ErrLayerCount indicates an empty layer list.
	ErrLayerCount = errors.New("geometry: at least one layer is required")
	// ErrTilingGap indicates layers that do not partition [0, total) exactly.
	ErrTilingGap = errors.New("geometry: layers do not tile the structure")
)

// LayerError ties a validation failure to a layer index and field.
type LayerError struct {
	Index int
	Field string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("geometry: layer %d (%s): %v", e.Index, e.Field, e.Err)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *LayerError) Unwrap() error { return e.Err }
