// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/paint"
)

// DefaultGunRadius is the splat radius of a new Gun, in pixels.
const DefaultGunRadius = 8

// Gun fires paintballs loaded with its current color and radius.
type Gun struct {
	mu     sync.Mutex
	color  paint.RGBA
	radius int
}

// NewGun returns a gun that fires blue paintballs with DefaultGunRadius.
func NewGun() *Gun {
	return &Gun{color: paint.Blue, radius: DefaultGunRadius}
}

// Load changes the color of paintballs fired from now on.
func (g *Gun) Load(c paint.RGBA) {
	g.mu.Lock()
	g.color = c
	g.mu.Unlock()
}

// SetRadius changes the splat radius. Values below 1 become 1.
func (g *Gun) SetRadius(r int) {
	g.mu.Lock()
	g.radius = max(1, r)
	g.mu.Unlock()
}

// Fire returns a new paintball. Paintballs already in flight keep the
// color and radius they were fired with.
func (g *Gun) Fire() *Paintball {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &Paintball{color: g.color, radius: g.radius}
}

// Paintball paints a single disc on the first target it hits.
type Paintball struct {
	color  paint.RGBA
	radius int
	spent  atomic.Bool
}

// Color returns the paint color of the ball.
func (p *Paintball) Color() paint.RGBA { return p.color }

// Radius returns the splat radius in pixels.
func (p *Paintball) Radius() int { return p.radius }

// Spent reports whether the ball has already hit something.
func (p *Paintball) Spent() bool { return p.spent.Load() }

// Hit paints the ball onto t at point and reports whether it did.
// Only the first hit paints; t may be nil for a miss that still consumes
// the ball.
func (p *Paintball) Hit(t Target, point paint.Vec3) bool {
	if !p.spent.CompareAndSwap(false, true) {
		return false
	}
	if t == nil {
		return false
	}
	t.PaintAt(point, p.color, p.radius)
	paint.Logger().Debug("brush: paintball hit",
		slog.String("target", t.ID().String()),
		slog.Int("radius", p.radius))
	return true
}
