// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucanvas uploads paint surfaces to GPU textures.
//
// The data flow is:
//
//	paint.Surface (stamp) -> Snapshot (CPU) -> GPU Texture -> Window
//
// # Architecture
//
// Canvas wraps a paint.Surface and keeps a texture in sync with it:
//
//   - Flush copies the surface into a caller-owned texture
//   - RenderTo creates a texture on first use and draws it
//   - Only the 64x64 tiles touched since the last upload are transferred
//     when the texture supports region updates
//
// # Usage
//
//	canvas, err := gpucanvas.NewForProvider(app.GPUContextProvider(), surface)
//	if err != nil {
//	    return err
//	}
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. The wrapped Surface may be
// painted from any goroutine; the canvas only reads it through snapshots.
// Use one Canvas per Surface: the canvas consumes the surface's change
// tracking.
//
// # Integration Without Circular Imports
//
// Only gpucontext interfaces are used, so this package does not depend on
// a particular windowing or GPU library.
package gpucanvas
