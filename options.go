package paint

import "github.com/google/uuid"

// SurfaceOption configures a Surface during creation.
// Use functional options to customize Surface behavior.
//
// Example:
//
//	// Default stroke spacing and a 512x512 buffer
//	s, err := paint.New(512, 512, paint.White, paint.Corners(a, b))
//
//	// Tighter strokes and a stable identity
//	s, err := paint.New(512, 512, paint.White, paint.Corners(a, b),
//	    paint.WithStrokeSpacing(0.25),
//	    paint.WithID(id))
type SurfaceOption func(*surfaceOptions)

// surfaceOptions holds optional configuration for Surface creation.
type surfaceOptions struct {
	id           uuid.UUID
	spacing      float64
	minSteps     int
	scaleCeiling float64
}

const (
	// DefaultStrokeSpacing is the gap between line stamps as a fraction of
	// the brush radius. Half a radius keeps consecutive discs overlapping.
	DefaultStrokeSpacing = 0.5

	// DefaultMinLineSteps is the minimum number of interpolation steps per line.
	DefaultMinLineSteps = 3
)

// defaultOptions returns the default surface options.
func defaultOptions() surfaceOptions {
	return surfaceOptions{
		id:           uuid.Nil, // Will be generated if nil
		spacing:      DefaultStrokeSpacing,
		minSteps:     DefaultMinLineSteps,
		scaleCeiling: DefaultScaleCeiling,
	}
}

// WithID sets the surface identity. By default a random UUID is used.
func WithID(id uuid.UUID) SurfaceOption {
	return func(o *surfaceOptions) {
		o.id = id
	}
}

// WithStrokeSpacing sets the distance between line stamps as a fraction
// of the brush radius. Values outside (0, DefaultStrokeSpacing] are
// clamped into that range so strokes stay gap-free.
func WithStrokeSpacing(fraction float64) SurfaceOption {
	return func(o *surfaceOptions) {
		if fraction > 0 && fraction < DefaultStrokeSpacing {
			o.spacing = fraction
		} else {
			o.spacing = DefaultStrokeSpacing
		}
	}
}

// WithMinLineSteps sets the minimum number of interpolation steps PaintLine
// emits regardless of distance. Values below 1 are raised to 1.
func WithMinLineSteps(n int) SurfaceOption {
	return func(o *surfaceOptions) {
		if n < 1 {
			n = 1
		}
		o.minSteps = n
	}
}

// WithScaleCeiling caps the pixels-per-world-unit multiplier of a
// degenerate (zero-extent) placement axis. Non-positive values keep
// DefaultScaleCeiling.
func WithScaleCeiling(ceiling float64) SurfaceOption {
	return func(o *surfaceOptions) {
		if ceiling > 0 {
			o.scaleCeiling = ceiling
		}
	}
}
