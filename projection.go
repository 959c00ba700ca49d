package paint

import (
	"fmt"
	"log/slog"
	"math"
)

// ProjectionMode selects how world points map onto a surface.
// The two modes produce different pixel mappings for the same physical
// surface; each surface uses exactly one.
type ProjectionMode uint8

const (
	// ProjectCorners derives the surface plane from two opposite corners.
	// The world axis with the smallest corner extent is the normal; the
	// remaining two axes, in X, Y, Z order, become U and V. Pixel
	// coordinates are absolute distances from the first corner.
	ProjectCorners ProjectionMode = iota

	// ProjectScale places the surface at a center with right/up axes and a
	// local width and height. Points are normalized to [0, 1] across the
	// surface and both axes are mirrored, so the first pixel sits at the
	// +right, +up corner.
	ProjectScale
)

func (m ProjectionMode) String() string {
	switch m {
	case ProjectCorners:
		return "corners"
	case ProjectScale:
		return "scale"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", uint8(m))
	}
}

const (
	// MinExtent floors a placement extent before it is used as a divisor.
	MinExtent = 1e-6

	// DefaultScaleCeiling caps the pixels-per-world-unit multiplier of an
	// axis whose extent was floored at MinExtent.
	DefaultScaleCeiling = 1000.0
)

// Placement describes where a surface sits in world space.
// Build one with Corners, Scaled or AxisAligned.
type Placement struct {
	Mode ProjectionMode

	// Corner mode.
	CornerA, CornerB Vec3

	// Scale mode. Right and Up are normalized by Scaled.
	Center        Vec3
	Right, Up     Vec3
	Width, Height float64
}

// Corners returns a corner-based placement spanning a to b.
func Corners(a, b Vec3) Placement {
	return Placement{Mode: ProjectCorners, CornerA: a, CornerB: b}
}

// Scaled returns a scale-based placement centered at center.
// width and height are the surface extents along right and up.
// Zero-length axes fall back to world X and Y.
func Scaled(center, right, up Vec3, width, height float64) Placement {
	r := right.Normalize()
	if r.IsZero() {
		r = unitAxis(0)
	}
	u := up.Normalize()
	if u.IsZero() {
		u = unitAxis(1)
	}
	return Placement{
		Mode:   ProjectScale,
		Center: center,
		Right:  r,
		Up:     u,
		Width:  width,
		Height: height,
	}
}

// AxisAligned returns a scale-based placement in the world XY plane.
func AxisAligned(center Vec3, width, height float64) Placement {
	return Scaled(center, unitAxis(0), unitAxis(1), width, height)
}

// projector maps world points to continuous pixel coordinates.
// Results are not rounded or clamped.
type projector interface {
	project(p Vec3) (u, v float64)
	// delta returns the unfolded pixel displacement from a to b.
	delta(a, b Vec3) (du, dv float64)
	scales() (su, sv float64)
}

// newProjector derives projection parameters for a width×height buffer.
func newProjector(pl Placement, width, height int, ceiling float64) (projector, error) {
	switch pl.Mode {
	case ProjectCorners:
		return newCornerProjector(pl, width, height, ceiling), nil
	case ProjectScale:
		return newScaleProjector(pl, width, height, ceiling), nil
	default:
		return nil, fmt.Errorf("%w: mode %v", ErrInvalidPlacement, pl.Mode)
	}
}

// pixelScale converts a world extent to a pixels-per-unit multiplier.
// Extents below MinExtent (a flat or NaN axis) are floored, and only then is
// the result capped at ceiling. Any real extent keeps its exact multiplier,
// so the full buffer stays reachable however dense the surface is.
func pixelScale(pixels int, extent, ceiling float64) (scale float64, clamped bool) {
	extent = math.Abs(extent)
	if extent >= MinExtent && !math.IsInf(extent, 0) {
		return float64(pixels) / extent, false
	}
	if math.IsInf(extent, 0) {
		return 0, true
	}
	return math.Min(float64(pixels)/MinExtent, ceiling), true
}

type cornerProjector struct {
	origin         Vec3
	axisU, axisV   Vec3
	scaleU, scaleV float64
}

func newCornerProjector(pl Placement, width, height int, ceiling float64) *cornerProjector {
	extent := pl.CornerB.Sub(pl.CornerA).Abs()

	normal := 0
	for i := 1; i < 3; i++ {
		if extent.Axis(i) < extent.Axis(normal) {
			normal = i
		}
	}
	var in [2]int
	n := 0
	for i := 0; i < 3; i++ {
		if i != normal {
			in[n] = i
			n++
		}
	}

	su, cu := pixelScale(width, extent.Axis(in[0]), ceiling)
	sv, cv := pixelScale(height, extent.Axis(in[1]), ceiling)
	if cu || cv {
		Logger().Warn("paint: degenerate corner placement clamped",
			slog.Float64("scaleU", su), slog.Float64("scaleV", sv))
	}

	return &cornerProjector{
		origin: pl.CornerA,
		axisU:  unitAxis(in[0]),
		axisV:  unitAxis(in[1]),
		scaleU: su,
		scaleV: sv,
	}
}

func (c *cornerProjector) project(p Vec3) (u, v float64) {
	local := p.Sub(c.origin)
	return math.Abs(local.Dot(c.axisU)) * c.scaleU, math.Abs(local.Dot(c.axisV)) * c.scaleV
}

func (c *cornerProjector) delta(a, b Vec3) (du, dv float64) {
	d := b.Sub(a)
	return d.Dot(c.axisU) * c.scaleU, d.Dot(c.axisV) * c.scaleV
}

func (c *cornerProjector) scales() (su, sv float64) { return c.scaleU, c.scaleV }

type scaleProjector struct {
	center         Vec3
	right, up      Vec3
	width, height  float64 // pixels
	scaleU, scaleV float64
}

func newScaleProjector(pl Placement, width, height int, ceiling float64) *scaleProjector {
	pl = Scaled(pl.Center, pl.Right, pl.Up, pl.Width, pl.Height)
	su, cu := pixelScale(width, pl.Width, ceiling)
	sv, cv := pixelScale(height, pl.Height, ceiling)
	if cu || cv {
		Logger().Warn("paint: degenerate scaled placement clamped",
			slog.Float64("scaleU", su), slog.Float64("scaleV", sv))
	}
	return &scaleProjector{
		center: pl.Center,
		right:  pl.Right,
		up:     pl.Up,
		width:  float64(width),
		height: float64(height),
		scaleU: su,
		scaleV: sv,
	}
}

// project normalizes into [0, 1] and mirrors both axes:
// u = (1 - (local.x/width + 0.5)) * pixels = pixels/2 - local.x*scale.
func (s *scaleProjector) project(p Vec3) (u, v float64) {
	local := p.Sub(s.center)
	return s.width/2 - local.Dot(s.right)*s.scaleU, s.height/2 - local.Dot(s.up)*s.scaleV
}

func (s *scaleProjector) delta(a, b Vec3) (du, dv float64) {
	d := b.Sub(a)
	return d.Dot(s.right) * s.scaleU, d.Dot(s.up) * s.scaleV
}

func (s *scaleProjector) scales() (su, sv float64) { return s.scaleU, s.scaleV }

// toPixel rounds a continuous coordinate and clamps it to [0, n-1].
// NaN maps to 0.
func toPixel(f float64, n int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= float64(n-1) {
		return n - 1
	}
	return int(math.Round(f))
}
