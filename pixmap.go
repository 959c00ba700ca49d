package paint

import (
	"image"
	"image/color"
)

// Pixmap represents a rectangular RGBA8 pixel buffer.
// Pixels are stored row-major: pixel (x, y) starts at byte (x + y*width) * 4.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
// Non-positive dimensions produce an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = c.bytes()
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return fromBytes(p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3])
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := c.bytes()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// FillSpan writes one color to pixels [x0, x1] of row y.
// The span is clipped to the pixmap.
func (p *Pixmap) FillSpan(x0, x1, y int, c RGBA) {
	if y < 0 || y >= p.height {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= p.width {
		x1 = p.width - 1
	}
	if x0 > x1 {
		return
	}
	r, g, b, a := c.bytes()
	row := p.data[(y*p.width+x0)*4 : (y*p.width+x1+1)*4]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = r
		row[i+1] = g
		row[i+2] = b
		row[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// Region returns a densely packed copy of the pixels inside r.
// r is clipped to the pixmap bounds.
func (p *Pixmap) Region(r image.Rectangle) []uint8 {
	r = r.Intersect(p.Bounds())
	if r.Empty() {
		return nil
	}
	stride := r.Dx() * 4
	out := make([]uint8, 0, stride*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := (y*p.width + r.Min.X) * 4
		out = append(out, p.data[start:start+stride]...)
	}
	return out
}

// ToImage converts the pixmap to an image.NRGBA.
// Pixmap colors are not premultiplied, so the copy is byte-for-byte.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
