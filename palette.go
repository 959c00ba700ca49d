package paint

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownSwatch is returned by ParseSwatch for names outside the palette.
var ErrUnknownSwatch = errors.New("paint: unknown swatch")

// Swatch is an entry of the fixed tool palette.
type Swatch uint8

// Palette entries.
const (
	SwatchBlack Swatch = iota
	SwatchWhite
	SwatchRed
	SwatchGreen
	SwatchBlue
	SwatchYellow
	SwatchPurple
	SwatchGrey
	SwatchEraser

	swatchCount
)

var swatchColors = [swatchCount]RGBA{
	SwatchBlack:  Black,
	SwatchWhite:  White,
	SwatchRed:    Red,
	SwatchGreen:  Green,
	SwatchBlue:   Blue,
	SwatchYellow: Yellow,
	SwatchPurple: Purple,
	SwatchGrey:   Grey,
	SwatchEraser: White,
}

var swatchNames = [swatchCount]string{
	SwatchBlack:  "black",
	SwatchWhite:  "white",
	SwatchRed:    "red",
	SwatchGreen:  "green",
	SwatchBlue:   "blue",
	SwatchYellow: "yellow",
	SwatchPurple: "purple",
	SwatchGrey:   "grey",
	SwatchEraser: "eraser",
}

// swatchAliases maps alternative spellings onto palette entries.
var swatchAliases = map[string]Swatch{
	"magenta": SwatchPurple,
	"gray":    SwatchGrey,
}

// Swatches returns every palette entry in declaration order.
func Swatches() []Swatch {
	out := make([]Swatch, swatchCount)
	for i := range out {
		out[i] = Swatch(i)
	}
	return out
}

// Color returns the color painted by the swatch.
// The eraser paints the default background (white).
// Out-of-range values map to black.
func (s Swatch) Color() RGBA {
	if s >= swatchCount {
		return Black
	}
	return swatchColors[s]
}

// Valid reports whether s is a palette entry.
func (s Swatch) Valid() bool {
	return s < swatchCount
}

func (s Swatch) String() string {
	if s >= swatchCount {
		return fmt.Sprintf("Swatch(%d)", uint8(s))
	}
	return swatchNames[s]
}

// ParseSwatch resolves a palette name. Matching ignores case and
// surrounding whitespace; "magenta" and "gray" are accepted as aliases.
func ParseSwatch(name string) (Swatch, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	for _, sw := range Swatches() {
		if sw.String() == key {
			return sw, nil
		}
	}
	if s, ok := swatchAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSwatch, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Swatch) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSwatch, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Swatch) UnmarshalText(text []byte) error {
	v, err := ParseSwatch(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
