// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrNilSurface is returned when a nil Surface is passed.
	ErrNilSurface = errors.New("gpucanvas: nil surface")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gpucanvas: nil DeviceProvider")

	// ErrInvalidTexture is returned when a texture accepts neither full nor
	// region uploads.
	ErrInvalidTexture = errors.New("gpucanvas: texture must implement gpucontext.TextureUpdater or TextureRegionUpdater")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas keeps a GPU texture in sync with a paint.Surface.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	surface  *paint.Surface
	provider gpucontext.DeviceProvider
	format   gputypes.TextureFormat

	texture gpucontext.Texture // created by RenderTo

	// changes is this canvas's own view of modified tiles; other consumers
	// of the surface keep theirs.
	changes *paint.Changes
	closed  bool
}

// New creates a Canvas that uploads s in the given texture format.
// RGBA8 and BGRA8 formats, linear or sRGB, are supported.
func New(s *paint.Surface, format gputypes.TextureFormat) (*Canvas, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	if !supported(format) {
		return nil, fmt.Errorf("%w: %v", paint.ErrUnsupportedFormat, format)
	}
	return &Canvas{surface: s, format: format, changes: s.TrackChanges()}, nil
}

// NewForProvider creates a Canvas using the provider's surface format.
// Headless providers report no format; RGBA8 is used then.
func NewForProvider(provider gpucontext.DeviceProvider, s *paint.Surface) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	c, err := New(s, format)
	if err != nil {
		return nil, err
	}
	c.provider = provider

	info := provider.AdapterInfo()
	paint.Logger().Info("gpucanvas: canvas created",
		slog.String("surface", s.ID().String()),
		slog.String("format", format.String()),
		slog.String("adapter", info.Name),
		slog.String("adapterType", info.Type.String()))
	return c, nil
}

// Surface returns the wrapped surface.
func (c *Canvas) Surface() *paint.Surface {
	return c.surface
}

// Format returns the texture format used for uploads through Flush.
func (c *Canvas) Format() gputypes.TextureFormat {
	return c.format
}

// Provider returns the DeviceProvider associated with this canvas.
// Returns nil if the canvas is closed or was created without one.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Texture returns the texture created by RenderTo, or nil.
func (c *Canvas) Texture() gpucontext.Texture {
	return c.texture
}

// IsDirty reports whether the surface changed since the last upload.
func (c *Canvas) IsDirty() bool {
	return c.changes.Pending()
}

// Invalidate forces the next upload to transfer the whole surface.
// Call it before flushing into a different texture.
func (c *Canvas) Invalidate() {
	c.changes.Invalidate()
}

// Flush uploads surface changes into tex.
//
// If tex implements gpucontext.TextureRegionUpdater and only part of the
// surface changed, each changed rectangle is uploaded separately.
// Otherwise the whole surface is uploaded through
// gpucontext.TextureUpdater, or as a single region. Flush does nothing
// when the surface has not changed since the last upload.
//
// A canvas tracks one texture: use either Flush or RenderTo, not both.
func (c *Canvas) Flush(tex any) error {
	if c.closed {
		return ErrCanvasClosed
	}
	return c.flush(tex, c.format)
}

func (c *Canvas) flush(tex any, format gputypes.TextureFormat) error {
	if !c.changes.Pending() {
		return nil
	}

	region, hasRegion := tex.(gpucontext.TextureRegionUpdater)
	full, hasFull := tex.(gpucontext.TextureUpdater)
	if !hasRegion && !hasFull {
		return ErrInvalidTexture
	}

	var err error
	if changed, total := c.changes.Coverage(); hasRegion && changed < total {
		snap, rects := c.changes.Export()
		err = c.uploadRects(region, snap, rects, format)
	} else {
		snap := c.changes.ExportFull()
		w, h := snap.Width(), snap.Height()
		if hasFull {
			if err = full.UpdateData(convert(snap.Pix(), format)); err != nil {
				err = fmt.Errorf("gpucanvas: texture update failed: %w", err)
			}
		} else if err = region.UpdateRegion(0, 0, w, h, convert(snap.Pix(), format)); err != nil {
			err = fmt.Errorf("gpucanvas: region update failed: %w", err)
		}
	}
	if err != nil {
		// The taken tiles are lost; resend everything next time.
		c.changes.Invalidate()
		return err
	}
	return nil
}

func (c *Canvas) uploadRects(tex gpucontext.TextureRegionUpdater, snap *paint.Snapshot, rects []image.Rectangle, format gputypes.TextureFormat) error {
	n := 0
	for _, r := range rects {
		data := convert(snap.Region(r), format)
		if err := tex.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), data); err != nil {
			return fmt.Errorf("gpucanvas: region update failed at %v: %w", r, err)
		}
		n += len(data)
	}
	paint.Logger().Debug("gpucanvas: partial upload",
		slog.Int("rects", len(rects)),
		slog.Int("bytes", n))
	return nil
}

// Close releases the texture created by RenderTo and stops tracking the
// surface. Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.changes.Close()

	if c.texture != nil {
		if destroyer, ok := c.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.texture = nil
	}
	c.provider = nil
	return nil
}

func supported(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// convert reorders RGBA bytes in place for the target format.
func convert(data []byte, f gputypes.TextureFormat) []byte {
	if f != gputypes.TextureFormatBGRA8Unorm && f != gputypes.TextureFormatBGRA8UnormSrgb {
		return data
	}
	for i := 0; i+3 < len(data); i += 4 {
		data[i], data[i+2] = data[i+2], data[i]
	}
	return data
}
