package paint

import "errors"

// Errors returned by surface construction and export.
// Paint operations themselves never fail: coordinates are clamped instead.
var (
	// ErrInvalidDimension is returned when width or height is not positive.
	ErrInvalidDimension = errors.New("paint: invalid dimension")

	// ErrInvalidPlacement is returned for an unknown projection mode.
	ErrInvalidPlacement = errors.New("paint: invalid placement")

	// ErrUnsupportedFormat is returned when encoding to an unknown image format.
	ErrUnsupportedFormat = errors.New("paint: unsupported image format")
)
