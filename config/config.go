// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads studio layouts from YAML or TOML files.
//
// A layout names the paint surfaces of a scene, where they sit in world
// space, and how the brush starts out:
//
//	surfaces:
//	  - name: easel
//	    width: 512
//	    height: 512
//	    background: "#ffffff"
//	    projection: corners
//	    corners: [[0, 0, 0], [1, 1, 0]]
//	brush:
//	  swatch: black
//	  radius: 4
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
)

var (
	// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Projection names accepted in Surface.Projection.
const (
	ProjectionCorners = "corners"
	ProjectionScale   = "scale"
)

// Studio is the root of a layout file.
type Studio struct {
	Surfaces []Surface `yaml:"surfaces" toml:"surfaces"`
	Brush    Brush     `yaml:"brush" toml:"brush"`
}

// Surface describes one paint surface.
type Surface struct {
	Name   string `yaml:"name" toml:"name"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`

	// Background is a hex color; empty means white.
	Background string `yaml:"background,omitempty" toml:"background,omitempty"`

	// Projection is "corners" (default) or "scale".
	Projection string `yaml:"projection,omitempty" toml:"projection,omitempty"`

	// Corners mode.
	Corners [2][3]float64 `yaml:"corners" toml:"corners"`

	// Scale mode. Zero axes default to world X and Y.
	Center [3]float64 `yaml:"center" toml:"center"`
	Right  [3]float64 `yaml:"right" toml:"right"`
	Up     [3]float64 `yaml:"up" toml:"up"`
	Size   [2]float64 `yaml:"size" toml:"size"`

	// Tuning; zero keeps the library default.
	ScaleCeiling  float64 `yaml:"scale_ceiling,omitempty" toml:"scale_ceiling,omitempty"`
	StrokeSpacing float64 `yaml:"stroke_spacing,omitempty" toml:"stroke_spacing,omitempty"`
	MinLineSteps  int     `yaml:"min_line_steps,omitempty" toml:"min_line_steps,omitempty"`
}

// Brush describes the initial brush.
type Brush struct {
	Swatch  string  `yaml:"swatch,omitempty" toml:"swatch,omitempty"`
	Radius  int     `yaml:"radius,omitempty" toml:"radius,omitempty"`
	MinMove float64 `yaml:"min_move,omitempty" toml:"min_move,omitempty"`
}

// Default returns a layout with a single 512x512 easel spanning one world
// unit in the XY plane.
func Default() *Studio {
	return &Studio{
		Surfaces: []Surface{{
			Name:       "easel",
			Width:      512,
			Height:     512,
			Background: "#ffffff",
			Projection: ProjectionCorners,
			Corners:    [2][3]float64{{0, 0, 0}, {1, 1, 0}},
		}},
		Brush: Brush{Swatch: "black", Radius: brush.DefaultRadius},
	}
}

// Load reads a layout, choosing the decoder by file extension
// (.yaml, .yml or .toml), and validates it.
func Load(path string) (*Studio, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *Studio
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = LoadYAML(f)
	case ".toml":
		c, err = LoadTOML(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadYAML decodes a layout from YAML. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Studio, error) {
	var c Studio
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadTOML decodes a layout from TOML. Unknown keys are rejected.
func LoadTOML(r io.Reader) (*Studio, error) {
	var c Studio
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the layout to path, choosing the encoder by file extension.
func (c *Studio) Save(path string) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if ext == ".toml" {
		return toml.NewEncoder(f).Encode(c)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate reports every problem in the layout at once.
func (c *Studio) Validate() error {
	var errs []error
	if len(c.Surfaces) == 0 {
		errs = append(errs, fmt.Errorf("%w: no surfaces", ErrInvalid))
	}
	seen := make(map[string]bool, len(c.Surfaces))
	for i, s := range c.Surfaces {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%w: surface %d has no name", ErrInvalid, i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate surface name %q", ErrInvalid, s.Name))
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.Brush.Options(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks a single surface entry.
func (s *Surface) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 || s.Width > paint.MaxDimension || s.Height > paint.MaxDimension {
		errs = append(errs, fmt.Errorf("%w: surface %q: size %dx%d", ErrInvalid, s.Name, s.Width, s.Height))
	}
	if _, err := s.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.Placement(); err != nil {
		errs = append(errs, err)
	}
	if s.StrokeSpacing < 0 || s.MinLineSteps < 0 || s.ScaleCeiling < 0 {
		errs = append(errs, fmt.Errorf("%w: surface %q: negative tuning value", ErrInvalid, s.Name))
	}
	return errors.Join(errs...)
}

// BackgroundColor parses Background. Empty means white.
func (s *Surface) BackgroundColor() (paint.RGBA, error) {
	if s.Background == "" {
		return paint.White, nil
	}
	c, ok := paint.Hex(s.Background)
	if !ok {
		return paint.RGBA{}, fmt.Errorf("%w: surface %q: background %q", ErrInvalid, s.Name, s.Background)
	}
	return c, nil
}

// Placement builds the world placement of the surface.
func (s *Surface) Placement() (paint.Placement, error) {
	switch strings.ToLower(s.Projection) {
	case "", ProjectionCorners:
		return paint.Corners(vec(s.Corners[0]), vec(s.Corners[1])), nil
	case ProjectionScale:
		return paint.Scaled(vec(s.Center), vec(s.Right), vec(s.Up), s.Size[0], s.Size[1]), nil
	default:
		return paint.Placement{}, fmt.Errorf("%w: surface %q: projection %q", ErrInvalid, s.Name, s.Projection)
	}
}

// Options returns the surface options for the tuning fields that are set.
func (s *Surface) Options() []paint.SurfaceOption {
	var opts []paint.SurfaceOption
	if s.ScaleCeiling > 0 {
		opts = append(opts, paint.WithScaleCeiling(s.ScaleCeiling))
	}
	if s.StrokeSpacing > 0 {
		opts = append(opts, paint.WithStrokeSpacing(s.StrokeSpacing))
	}
	if s.MinLineSteps > 0 {
		opts = append(opts, paint.WithMinLineSteps(s.MinLineSteps))
	}
	return opts
}

// Build creates the surface described by s.
func (s *Surface) Build() (*paint.Surface, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bg, _ := s.BackgroundColor()
	pl, _ := s.Placement()
	return paint.New(s.Width, s.Height, bg, pl, s.Options()...)
}

// Options returns the brush options described by b.
func (b *Brush) Options() ([]brush.Option, error) {
	var opts []brush.Option
	if b.Swatch != "" {
		sw, err := paint.ParseSwatch(b.Swatch)
		if err != nil {
			return nil, fmt.Errorf("%w: brush: %w", ErrInvalid, err)
		}
		opts = append(opts, brush.WithSwatch(sw))
	}
	if b.Radius < 0 || b.MinMove < 0 {
		return nil, fmt.Errorf("%w: brush: negative radius or min_move", ErrInvalid)
	}
	if b.Radius > 0 {
		opts = append(opts, brush.WithRadius(b.Radius))
	}
	if b.MinMove > 0 {
		opts = append(opts, brush.WithMinMove(b.MinMove))
	}
	return opts, nil
}

// NewBrush creates the brush described by b.
func (b *Brush) NewBrush() (*brush.Brush, error) {
	opts, err := b.Options()
	if err != nil {
		return nil, err
	}
	return brush.New(opts...), nil
}

func vec(a [3]float64) paint.Vec3 {
	return paint.V3(a[0], a[1], a[2])
}
