// Package paint provides an engine-agnostic 2D paint buffer for painting
// tools driven by 3D contact events.
//
// # Overview
//
// A Surface owns a fixed-resolution RGBA8 buffer placed somewhere in world
// space. An external contact system (a VR brush touching a canvas, a
// paintball hitting a wall) supplies world points; the surface projects
// them onto the buffer, stamps filled discs, and fills the gaps between
// successive contacts so fast strokes stay continuous.
//
// # Quick Start
//
//	import "github.com/gogpu/paint"
//
//	// A 512x512 canvas spanning one world unit in the XY plane
//	s, err := paint.New(512, 512, paint.White,
//	    paint.Corners(paint.V3(0, 0, 0), paint.V3(1, 1, 0)))
//	if err != nil {
//	    return err
//	}
//
//	s.PaintAt(paint.V3(0.5, 0.5, 0), paint.Black, 4)
//	s.PaintLine(paint.V3(0.1, 0.1, 0), paint.V3(0.9, 0.2, 0), paint.Red, 2)
//
//	// Hand a consistent copy to the renderer
//	snap := s.Export()
//	_ = snap.SaveFile("canvas.png")
//
// # Projection
//
// Two projections are supported and chosen per surface through its
// Placement:
//   - Corners: two opposite corners; the flattest world axis is the normal
//     and pixel coordinates are absolute distances from the first corner.
//   - Scaled / AxisAligned: a center, right/up axes and a world size;
//     points are normalized across the surface with both axes mirrored.
//
// Projected coordinates are always clamped into the buffer, so Project
// never fails. Degenerate placements (an axis of zero extent) clamp the
// pixels-per-unit multiplier instead of dividing by zero; any real extent
// keeps its exact multiplier.
//
// # Buffer Layout
//
// Pixel (x, y) is stored at byte offset (x + y*width) * 4 in RGBA order.
// Origin (0,0) is the first pixel of the first row.
//
// # Concurrency
//
// Each Surface serializes its own mutations. Independent surfaces share no
// state and can be painted from different goroutines. Export returns an
// immutable Snapshot, so readers never observe a half-applied stamp.
//
// Consumers that upload only what changed (a GPU texture, a terminal view)
// each take their own Changes tracker from TrackChanges.
package paint
