// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeSoftware}
}

type regionCall struct {
	rect image.Rectangle
	data []byte
}

// mockTexture records full uploads.
type mockTexture struct {
	width, height int
	data          []byte
	updated       int
	destroyed     bool
	premultiplied *bool
	fail          error
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }

func (m *mockTexture) UpdateData(data []byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.data = append([]byte(nil), data...)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy() { m.destroyed = true }

func (m *mockTexture) SetPremultiplied(p bool) { m.premultiplied = &p }

// mockRegionTexture records full and region uploads.
type mockRegionTexture struct {
	mockTexture
	regions []regionCall
}

func (m *mockRegionTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	m.regions = append(m.regions, regionCall{image.Rect(x, y, x+w, y+h), append([]byte(nil), data...)})
	return nil
}

// mockRegionOnly supports only region uploads.
type mockRegionOnly struct {
	regions []regionCall
}

func (m *mockRegionOnly) UpdateRegion(x, y, w, h int, data []byte) error {
	m.regions = append(m.regions, regionCall{image.Rect(x, y, x+w, y+h), append([]byte(nil), data...)})
	return nil
}

// mockCreator implements gpucontext.TextureCreator.
type mockCreator struct {
	textures []*mockTexture
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

// mockDrawContext implements gpucontext.TextureDrawer.
type mockDrawContext struct {
	creator   *mockCreator
	drawn     gpucontext.Texture
	x, y      float32
	drawCount int
}

func (m *mockDrawContext) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.drawn, m.x, m.y = tex, x, y
	m.drawCount++
	return nil
}

func (m *mockDrawContext) TextureCreator() gpucontext.TextureCreator {
	if m.creator == nil {
		return nil
	}
	return m.creator
}

func newSurface(t *testing.T, w, h int) *paint.Surface {
	t.Helper()
	s, err := paint.New(w, h, paint.White, paint.Corners(paint.V3(0, 0, 0), paint.V3(1, 1, 0)))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newSurface(t, 8, 8)

	tests := []struct {
		name    string
		surface *paint.Surface
		format  gputypes.TextureFormat
		wantErr error
	}{
		{"rgba", s, gputypes.TextureFormatRGBA8Unorm, nil},
		{"rgba srgb", s, gputypes.TextureFormatRGBA8UnormSrgb, nil},
		{"bgra", s, gputypes.TextureFormatBGRA8Unorm, nil},
		{"bgra srgb", s, gputypes.TextureFormatBGRA8UnormSrgb, nil},
		{"nil surface", nil, gputypes.TextureFormatRGBA8Unorm, ErrNilSurface},
		{"undefined format", s, gputypes.TextureFormatUndefined, paint.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.surface, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if c.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", c.Format(), tt.format)
			}
			if !c.IsDirty() {
				t.Error("new canvas should be dirty")
			}
		})
	}
}

func TestNewForProvider(t *testing.T) {
	s := newSurface(t, 8, 8)

	if _, err := NewForProvider(nil, s); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewForProvider(nil) error = %v, want ErrNilProvider", err)
	}

	p := &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}
	c, err := NewForProvider(p, s)
	if err != nil {
		t.Fatal(err)
	}
	if c.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want provider format", c.Format())
	}
	if c.Provider() != p {
		t.Error("Provider() did not return the provider")
	}

	headless, err := NewForProvider(&mockProvider{}, s)
	if err != nil {
		t.Fatal(err)
	}
	if headless.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("headless Format() = %v, want RGBA8Unorm", headless.Format())
	}
}

func TestFlushFullUpload(t *testing.T) {
	s := newSurface(t, 4, 2)
	s.Stamp(0, 0, paint.Red, 1)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)

	tex := &mockTexture{}
	if err := c.Flush(tex); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if tex.updated != 1 {
		t.Fatalf("updated = %d, want 1", tex.updated)
	}
	if len(tex.data) != 4*2*4 {
		t.Fatalf("len(data) = %d", len(tex.data))
	}
	if got := tex.data[:4]; got[0] != 255 || got[1] != 0 || got[2] != 0 || got[3] != 255 {
		t.Errorf("pixel 0 = %v, want red RGBA", got)
	}
	if c.IsDirty() {
		t.Error("canvas dirty after Flush")
	}

	// No change, no upload.
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 1 {
		t.Errorf("unchanged surface uploaded again: updated = %d", tex.updated)
	}

	s.Stamp(3, 1, paint.Blue, 1)
	if !c.IsDirty() {
		t.Error("canvas not dirty after stamp")
	}
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 2 {
		t.Errorf("updated = %d, want 2", tex.updated)
	}
}

func TestFlushSwizzlesBGRA(t *testing.T) {
	s := newSurface(t, 2, 2)
	s.Reset(paint.Red)
	c, _ := New(s, gputypes.TextureFormatBGRA8UnormSrgb)

	tex := &mockTexture{}
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if got := tex.data[:4]; got[0] != 0 || got[2] != 255 || got[3] != 255 {
		t.Errorf("pixel 0 = %v, want BGRA red", got)
	}
	// The snapshot itself stays RGBA.
	if s.Export().Pix()[0] != 255 {
		t.Error("swizzle modified the surface snapshot")
	}
}

func TestFlushRegionUpload(t *testing.T) {
	s := newSurface(t, 200, 100)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)
	tex := &mockRegionTexture{}

	// First upload is always complete.
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 1 || len(tex.regions) != 0 {
		t.Fatalf("first flush: updated=%d regions=%d, want full upload", tex.updated, len(tex.regions))
	}

	s.Stamp(70, 10, paint.Green, 2)
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 1 {
		t.Errorf("partial change triggered a full upload")
	}
	if len(tex.regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(tex.regions))
	}
	got := tex.regions[0]
	if got.rect != image.Rect(64, 0, 128, 64) {
		t.Errorf("region = %v, want tile (1,0)", got.rect)
	}
	if len(got.data) != 64*64*4 {
		t.Errorf("region data = %d bytes, want %d", len(got.data), 64*64*4)
	}
	// (70,10) is at (6,10) inside the tile.
	off := (6 + 10*64) * 4
	if got.data[off] != 0 || got.data[off+1] != 255 {
		t.Errorf("stamped pixel in region = %v, want green", got.data[off:off+4])
	}

	// Reset touches every tile: back to a full upload.
	s.Reset(paint.Black)
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 2 {
		t.Errorf("full change: updated = %d, want 2", tex.updated)
	}
}

func TestFlushRegionOnlyTexture(t *testing.T) {
	s := newSurface(t, 100, 70)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)
	tex := &mockRegionOnly{}

	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if len(tex.regions) != 1 || tex.regions[0].rect != image.Rect(0, 0, 100, 70) {
		t.Fatalf("first flush regions = %v, want one full rect", tex.regions)
	}

	s.Stamp(99, 69, paint.Red, 1)
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if len(tex.regions) != 2 || tex.regions[1].rect != image.Rect(64, 64, 100, 70) {
		t.Errorf("regions = %v, want clipped edge tile", tex.regions)
	}
}

func TestFlushCanvasesShareSurface(t *testing.T) {
	s := newSurface(t, 200, 100)
	a, _ := New(s, gputypes.TextureFormatRGBA8Unorm)
	b, _ := New(s, gputypes.TextureFormatBGRA8Unorm)
	texA, texB := &mockRegionTexture{}, &mockRegionTexture{}

	for _, step := range []struct {
		c   *Canvas
		tex *mockRegionTexture
	}{{a, texA}, {b, texB}} {
		if err := step.c.Flush(step.tex); err != nil {
			t.Fatal(err)
		}
	}

	// a flushes between two stamps; b must still see both tiles.
	s.Stamp(70, 10, paint.Green, 2)
	if err := a.Flush(texA); err != nil {
		t.Fatal(err)
	}
	s.Stamp(10, 70, paint.Red, 2)
	if err := a.Flush(texA); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(texB); err != nil {
		t.Fatal(err)
	}

	want := []image.Rectangle{image.Rect(64, 0, 128, 64), image.Rect(0, 64, 64, 100)}
	for name, tex := range map[string]*mockRegionTexture{"a": texA, "b": texB} {
		if tex.updated != 1 {
			t.Errorf("%s: updated = %d, want only the first full upload", name, tex.updated)
		}
		var got []image.Rectangle
		for _, r := range tex.regions {
			got = append(got, r.rect)
		}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("%s: regions = %v, want %v", name, got, want)
		}
	}

	// A closed canvas stops tracking; the other keeps going.
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	s.Stamp(150, 50, paint.Blue, 1)
	if !b.IsDirty() {
		t.Error("remaining canvas missed a change after the other closed")
	}
}

func TestFlushErrors(t *testing.T) {
	s := newSurface(t, 4, 4)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)

	if err := c.Flush(struct{}{}); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("Flush(struct{}) error = %v, want ErrInvalidTexture", err)
	}

	boom := errors.New("device lost")
	tex := &mockTexture{fail: boom}
	if err := c.Flush(tex); !errors.Is(err, boom) {
		t.Errorf("Flush() error = %v, want wrapped %v", err, boom)
	}
	if !c.IsDirty() {
		t.Error("failed upload must leave the canvas dirty")
	}

	tex.fail = nil
	if err := c.Flush(tex); err != nil {
		t.Fatal(err)
	}
	if tex.updated != 1 {
		t.Errorf("retry updated = %d, want 1", tex.updated)
	}
}

func TestInvalidate(t *testing.T) {
	s := newSurface(t, 4, 4)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)
	tex := &mockTexture{}
	_ = c.Flush(tex)

	other := &mockTexture{}
	c.Invalidate()
	if err := c.Flush(other); err != nil {
		t.Fatal(err)
	}
	if other.updated != 1 {
		t.Error("Invalidate did not force an upload")
	}
}

func TestRenderTo(t *testing.T) {
	s := newSurface(t, 16, 16)
	s.Stamp(8, 8, paint.Red, 2)
	c, _ := New(s, gputypes.TextureFormatBGRA8Unorm)

	dc := &mockDrawContext{creator: &mockCreator{}}
	if err := c.RenderToPosition(dc, 10, 20); err != nil {
		t.Fatalf("RenderToPosition() error = %v", err)
	}
	if len(dc.creator.textures) != 1 {
		t.Fatalf("textures created = %d, want 1", len(dc.creator.textures))
	}
	tex := dc.creator.textures[0]
	if dc.drawn != tex || dc.x != 10 || dc.y != 20 {
		t.Errorf("drawn = %v at (%v,%v)", dc.drawn, dc.x, dc.y)
	}
	if tex.premultiplied == nil || *tex.premultiplied {
		t.Error("texture not marked straight alpha")
	}
	off := (8 + 8*16) * 4
	if tex.data[off] != 255 || tex.data[off+2] != 0 {
		t.Errorf("created texture pixel = %v, want RGBA red", tex.data[off:off+4])
	}

	// Second frame reuses the texture and uploads RGBA changes.
	s.Stamp(1, 1, paint.Blue, 1)
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	if len(dc.creator.textures) != 1 || tex.updated != 1 || dc.drawCount != 2 {
		t.Errorf("textures=%d updated=%d draws=%d", len(dc.creator.textures), tex.updated, dc.drawCount)
	}
	if c.Texture() != tex {
		t.Error("Texture() does not return the created texture")
	}
}

func TestRenderToErrors(t *testing.T) {
	s := newSurface(t, 4, 4)
	c, _ := New(s, gputypes.TextureFormatRGBA8Unorm)

	if err := c.RenderTo(&mockDrawContext{}); !errors.Is(err, ErrInvalidRenderer) {
		t.Errorf("RenderTo(no creator) error = %v, want ErrInvalidRenderer", err)
	}
	dc := &mockDrawContext{creator: &mockCreator{failNext: true}}
	if err := c.RenderTo(dc); err == nil {
		t.Error("RenderTo() should fail when texture creation fails")
	}
	if !c.IsDirty() {
		t.Error("failed texture creation must leave the canvas dirty")
	}
	if err := c.RenderTo(dc); err != nil {
		t.Errorf("retry error = %v", err)
	}
	if c.IsDirty() {
		t.Error("canvas dirty after the texture was created")
	}
}

func TestClose(t *testing.T) {
	s := newSurface(t, 4, 4)
	c, _ := NewForProvider(&mockProvider{}, s)
	dc := &mockDrawContext{creator: &mockCreator{}}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	tex := dc.creator.textures[0]

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !tex.destroyed {
		t.Error("Close did not destroy the texture")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if c.Provider() != nil {
		t.Error("Provider() after Close should be nil")
	}
	if err := c.Flush(&mockTexture{}); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Flush after Close error = %v", err)
	}
	if err := c.RenderTo(dc); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("RenderTo after Close error = %v", err)
	}
}
