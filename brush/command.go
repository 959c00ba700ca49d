// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import (
	"fmt"

	"github.com/gogpu/paint"
)

// Command is a message applied to a Brush by Handle.
// The set of commands is closed; see the types in this file.
type Command interface {
	apply(b *Brush) error
}

// Grab activates the brush.
type Grab struct{}

// Release deactivates the brush and ends any stroke.
type Release struct{}

// SetSwatch selects a palette entry.
type SetSwatch struct {
	Swatch paint.Swatch
}

// SetColor selects an arbitrary color, for example one mixed in a Cup.
type SetColor struct {
	Color paint.RGBA
}

// SetRadius changes the stamp radius. Values below 1 become 1.
type SetRadius struct {
	Radius int
}

// Contact reports that the brush tip touches Target at Point.
type Contact struct {
	Target Target
	Point  paint.Vec3
}

// ContactLost reports that the brush tip left every target.
// The brush stays grabbed.
type ContactLost struct{}

func (Grab) apply(b *Brush) error {
	b.state = Active
	return nil
}

func (Release) apply(b *Brush) error {
	b.state = Idle
	b.endStroke()
	return nil
}

func (c SetSwatch) apply(b *Brush) error {
	if !c.Swatch.Valid() {
		return fmt.Errorf("%w: %v", paint.ErrUnknownSwatch, c.Swatch)
	}
	b.swatch = c.Swatch
	b.color = c.Swatch.Color()
	return nil
}

func (c SetColor) apply(b *Brush) error {
	b.color = c.Color
	return nil
}

func (c SetRadius) apply(b *Brush) error {
	b.radius = max(1, c.Radius)
	return nil
}

func (c Contact) apply(b *Brush) error {
	if c.Target == nil {
		return ErrNoTarget
	}
	b.contact(c.Target, c.Point)
	return nil
}

func (ContactLost) apply(b *Brush) error {
	b.endStroke()
	return nil
}
