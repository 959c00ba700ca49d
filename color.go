package paint

import (
	"image/color"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	r, g, b, a := c.bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// bytes quantizes the color to the RGBA8 layout stored in a Pixmap.
func (c RGBA) bytes() (r, g, b, a uint8) {
	return uint8(clamp255(c.R*255 + 0.5)),
		uint8(clamp255(c.G*255 + 0.5)),
		uint8(clamp255(c.B*255 + 0.5)),
		uint8(clamp255(c.A*255 + 0.5))
}

func fromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. The second result is false if the string is malformed.
func Hex(hex string) (RGBA, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255
	ok := true

	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) &&
			parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) &&
			parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return Black, false
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// HexString formats the color as "#RRGGBBAA".
func (c RGBA) HexString() string {
	const digits = "0123456789abcdef"
	r, g, b, a := c.bytes()
	buf := []byte{'#', 0, 0, 0, 0, 0, 0, 0, 0}
	for i, v := range [4]uint8{r, g, b, a} {
		buf[1+i*2] = digits[v>>4]
		buf[2+i*2] = digits[v&0x0f]
	}
	return string(buf)
}

// Equal reports whether two colors quantize to the same RGBA8 value.
func (c RGBA) Equal(other RGBA) bool {
	r1, g1, b1, a1 := c.bytes()
	r2, g2, b2, a2 := other.bytes()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || x != x {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Purple      = RGB(1, 0, 1)
	Grey        = RGB(0.5, 0.5, 0.5)
	Transparent = RGBA{}
)
