// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/paint"
)

// Errors returned by Brush.Handle.
var (
	// ErrNoTarget is returned for a Contact without a target.
	ErrNoTarget = errors.New("brush: contact without target")

	// ErrUnknownCommand is returned for a nil command.
	ErrUnknownCommand = errors.New("brush: unknown command")
)

const (
	// DefaultRadius is the stamp radius of a new brush, in pixels.
	DefaultRadius = 4

	// DefaultMinMove is the world distance a contact must travel before the
	// stroke is extended. Smaller jitter is ignored.
	DefaultMinMove = 0.0005
)

// Target is anything a brush can paint on. *paint.Surface satisfies it.
type Target interface {
	ID() uuid.UUID
	PaintAt(p paint.Vec3, c paint.RGBA, radius int)
	PaintLine(from, to paint.Vec3, c paint.RGBA, radius int)
}

// State is the grab state of a brush.
type State uint8

const (
	// Idle brushes ignore contacts.
	Idle State = iota
	// Active brushes paint on contact.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Brush paints continuous strokes from contact events.
//
// Brush is safe for concurrent use; commands are applied one at a time in
// the order Handle is called.
type Brush struct {
	mu sync.Mutex

	state   State
	swatch  paint.Swatch
	color   paint.RGBA
	radius  int
	minMove float64

	// Current stroke.
	target  Target
	last    paint.Vec3
	drawing bool
}

// New returns an idle brush. Without options it paints black with
// DefaultRadius.
func New(opts ...Option) *Brush {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Brush{
		swatch:  o.swatch,
		color:   o.color,
		radius:  o.radius,
		minMove: o.minMove,
	}
}

// Handle applies one command to the brush.
func (b *Brush) Handle(cmd Command) error {
	if cmd == nil {
		return ErrUnknownCommand
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return cmd.apply(b)
}

// State returns the current grab state.
func (b *Brush) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Color returns the color the brush paints with.
func (b *Brush) Color() paint.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.color
}

// Swatch returns the last palette entry selected. After SetColor the
// swatch no longer describes Color.
func (b *Brush) Swatch() paint.Swatch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.swatch
}

// Radius returns the stamp radius in pixels.
func (b *Brush) Radius() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.radius
}

// Drawing reports whether a stroke is in progress.
func (b *Brush) Drawing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drawing
}

// contact extends or starts the stroke. Callers hold b.mu.
func (b *Brush) contact(t Target, p paint.Vec3) {
	if b.state != Active {
		return
	}
	if !b.drawing || b.target == nil || b.target.ID() != t.ID() {
		b.target = t
		b.last = p
		b.drawing = true
		t.PaintAt(p, b.color, b.radius)
		paint.Logger().Debug("brush: stroke started",
			slog.String("target", t.ID().String()),
			slog.Int("radius", b.radius))
		return
	}
	if b.last.Distance(p) > b.minMove {
		t.PaintLine(b.last, p, b.color, b.radius)
		b.last = p
	}
}

func (b *Brush) endStroke() {
	b.target = nil
	b.last = paint.Vec3{}
	b.drawing = false
}
