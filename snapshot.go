package paint

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gogpu/gputypes"
	"github.com/google/uuid"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Snapshot is an immutable copy of a surface buffer, as handed to a
// display or export consumer. Pixels are RGBA8, row-major, not
// premultiplied.
type Snapshot struct {
	surface uuid.UUID
	version uint64
	pix     *Pixmap
}

// Surface returns the identity of the surface the snapshot was taken from.
func (s *Snapshot) Surface() uuid.UUID {
	return s.surface
}

// Version returns the surface version the snapshot reflects.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Width returns the snapshot width in pixels.
func (s *Snapshot) Width() int {
	return s.pix.width
}

// Height returns the snapshot height in pixels.
func (s *Snapshot) Height() int {
	return s.pix.height
}

// Format returns the GPU texture format matching Pix.
func (s *Snapshot) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pix returns a copy of the pixel bytes.
func (s *Snapshot) Pix() []byte {
	out := make([]byte, len(s.pix.data))
	copy(out, s.pix.data)
	return out
}

// Color returns the color of cell (x, y), or Transparent outside the buffer.
func (s *Snapshot) Color(x, y int) RGBA {
	return s.pix.GetPixel(x, y)
}

// Region returns densely packed RGBA rows for the pixels inside r,
// clipped to the snapshot bounds.
func (s *Snapshot) Region(r image.Rectangle) []byte {
	return s.pix.Region(r)
}

// Checksum returns the xxhash64 of the pixel bytes.
// Equal checksums across versions mean the visible content did not change.
func (s *Snapshot) Checksum() uint64 {
	return xxhash.Sum64(s.pix.data)
}

// At implements the image.Image interface.
func (s *Snapshot) At(x, y int) color.Color {
	return s.pix.At(x, y)
}

// Bounds implements the image.Image interface.
func (s *Snapshot) Bounds() image.Rectangle {
	return s.pix.Bounds()
}

// ColorModel implements the image.Image interface.
func (s *Snapshot) ColorModel() color.Model {
	return color.NRGBAModel
}

// Image returns a copy of the snapshot as an image.NRGBA.
func (s *Snapshot) Image() *image.NRGBA {
	return s.pix.ToImage()
}

// Thumbnail returns a nearest-neighbor scaled copy of the snapshot.
// Point sampling keeps hard brush edges crisp. Non-positive sizes
// produce an empty image.
func (s *Snapshot) Thumbnail(width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), s.Image(), s.Bounds(), draw.Src, nil)
	return dst
}

// ImageFormat identifies an export encoding.
type ImageFormat uint8

// Supported export encodings.
const (
	FormatPNG ImageFormat = iota
	FormatBMP
	FormatTIFF
)

func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("ImageFormat(%d)", uint8(f))
	}
}

// FormatFromPath picks an encoding from a file extension.
func FormatFromPath(path string) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode writes the snapshot to w in the given format.
func (s *Snapshot) Encode(w io.Writer, f ImageFormat) error {
	img := s.Image()
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// SaveFile writes the snapshot to path, choosing the format by extension.
func (s *Snapshot) SaveFile(path string) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Encode(out, f)
}
