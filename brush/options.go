// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import "github.com/gogpu/paint"

// Option configures a Brush during creation.
type Option func(*options)

type options struct {
	swatch  paint.Swatch
	color   paint.RGBA
	radius  int
	minMove float64
}

func defaultOptions() options {
	return options{
		swatch:  paint.SwatchBlack,
		color:   paint.SwatchBlack.Color(),
		radius:  DefaultRadius,
		minMove: DefaultMinMove,
	}
}

// WithSwatch sets the initial palette entry. Invalid entries are ignored.
func WithSwatch(s paint.Swatch) Option {
	return func(o *options) {
		if s.Valid() {
			o.swatch = s
			o.color = s.Color()
		}
	}
}

// WithRadius sets the stamp radius in pixels. Values below 1 become 1.
func WithRadius(r int) Option {
	return func(o *options) {
		o.radius = max(1, r)
	}
}

// WithMinMove sets the world distance a contact must move before the
// stroke is extended. Negative values become 0.
func WithMinMove(d float64) Option {
	return func(o *options) {
		o.minMove = max(0, d)
	}
}
