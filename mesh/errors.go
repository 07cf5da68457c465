package mesh

import "errors"

var (
	// ErrBadExtent indicates a non-positive or non-finite length/height.
	ErrBadExtent = errors.New("mesh: extent must be finite and > 0")
	// ErrBadResolution indicates fewer than one element along an axis.
	ErrBadResolution = errors.New("mesh: element count must be >= 1")
	// ErrUntaggedCell indicates a cell whose centroid no layer claims.
	ErrUntaggedCell = errors.New("mesh: cell centroid outside every region")
	// ErrCellIndex indicates a cell index out of range.
	ErrCellIndex = errors.New("mesh: cell index out of range")
	// ErrUnknownKind indicates an unrecognised mesh kind name.
	ErrUnknownKind = errors.New("mesh: unknown mesh kind")
)
