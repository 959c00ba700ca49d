// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package brush turns a stream of contact events into paint strokes.
//
// A Brush is a small state machine driven by commands. Grab makes it
// active; Contact commands then paint on a Target, starting a stroke with
// a single disc and continuing it with lines so that fast movement leaves
// no gaps. Release returns the brush to Idle and forgets the stroke.
//
//	b := brush.New(brush.WithSwatch(paint.SwatchRed), brush.WithRadius(3))
//	_ = b.Handle(brush.Grab{})
//	_ = b.Handle(brush.Contact{Target: surface, Point: p0})
//	_ = b.Handle(brush.Contact{Target: surface, Point: p1}) // line p0 -> p1
//	_ = b.Handle(brush.ContactLost{})
//
// Paintball guns and paint cups are the other two tools: a Gun fires
// Paintballs that paint exactly once on impact, and a Cup mixes the
// colors dipped into it.
package brush
