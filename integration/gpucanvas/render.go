// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrInvalidRenderer is returned when the draw context has no texture creator.
var ErrInvalidRenderer = errors.New("gpucanvas: draw context has no TextureCreator")

// RenderTo draws the surface at (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition draws the surface with its top-left corner at (x, y).
//
// The texture is created from the surface on the first call and updated
// on later calls. Textures created here hold RGBA8 data.
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}

	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		snap := c.changes.ExportFull()
		tex, err := creator.NewTextureFromRGBA(snap.Width(), snap.Height(), snap.Pix())
		if err != nil {
			c.changes.Invalidate()
			return fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
		}
		// Surface pixels are straight alpha.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(false)
		}
		c.texture = tex
	} else if err := c.flush(c.texture, gputypes.TextureFormatRGBA8Unorm); err != nil {
		return err
	}

	return dc.DrawTexture(c.texture, x, y)
}
