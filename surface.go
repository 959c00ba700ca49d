package paint

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	// MaxDimension is the largest accepted surface width or height.
	MaxDimension = 1 << 15

	// MaxRadius caps stamp radii so squared distances stay in range.
	MaxRadius = 1 << 16

	// MaxLineSteps bounds the number of stamps emitted by one PaintLine.
	MaxLineSteps = 1 << 20
)

// Surface is a fixed-resolution paint buffer placed in world space.
//
// World points supplied by an external contact system are projected onto
// the buffer and stamped as filled discs. Every write is clipped to the
// buffer: paint operations never fail and never write out of range.
//
// Surface is safe for concurrent use. Mutations are serialized by an
// internal mutex; Export returns an immutable copy so readers never observe
// a partially applied stamp.
type Surface struct {
	mu sync.Mutex

	id         uuid.UUID
	pix        *Pixmap
	background RGBA
	placement  Placement
	proj       projector
	spacing    float64
	minSteps   int

	trackers []*Changes
	version  atomic.Uint64
	snap     atomic.Pointer[Snapshot]
}

// New creates a width×height surface filled with background.
//
// The placement selects and parameterizes the projection used by Project,
// PaintAt and PaintLine. New returns ErrInvalidDimension if width or height
// is not in [1, MaxDimension] and ErrInvalidPlacement for an unknown
// projection mode.
func New(width, height int, background RGBA, placement Placement, opts ...SurfaceOption) (*Surface, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimension, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	proj, err := newProjector(placement, width, height, o.scaleCeiling)
	if err != nil {
		return nil, err
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	s := &Surface{
		id:         o.id,
		pix:        NewPixmap(width, height),
		background: background,
		placement:  placement,
		proj:       proj,
		spacing:    o.spacing,
		minSteps:   o.minSteps,
	}
	s.pix.Clear(background)

	su, sv := proj.scales()
	Logger().Info("paint: surface created",
		slog.String("id", s.id.String()),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.String("projection", placement.Mode.String()),
		slog.Float64("scaleU", su),
		slog.Float64("scaleV", sv))

	return s, nil
}

// ID returns the surface identity.
func (s *Surface) ID() uuid.UUID {
	return s.id
}

// Width returns the buffer width in pixels.
func (s *Surface) Width() int {
	return s.pix.width
}

// Height returns the buffer height in pixels.
func (s *Surface) Height() int {
	return s.pix.height
}

// Background returns the color the surface was created with.
func (s *Surface) Background() RGBA {
	return s.background
}

// Placement returns the placement the surface was created with.
func (s *Surface) Placement() Placement {
	return s.placement
}

// Scale returns the pixels-per-world-unit multipliers along U and V.
func (s *Surface) Scale() (su, sv float64) {
	return s.proj.scales()
}

// Version returns a counter that increases on every mutation.
func (s *Surface) Version() uint64 {
	return s.version.Load()
}

// Project maps a world point to buffer coordinates.
// The result is always inside [0, Width-1]×[0, Height-1].
func (s *Surface) Project(p Vec3) (px, py int) {
	u, v := s.proj.project(p)
	return toPixel(u, s.pix.width), toPixel(v, s.pix.height)
}

// Stamp writes c into every cell within radius pixels of (px, py).
//
// The disc is clipped to the buffer; the center itself may lie outside.
// A radius below 1 paints a radius-1 disc. Stamping overwrites without
// blending, so repeating a stamp with the same color changes nothing.
func (s *Surface) Stamp(px, py int, c RGBA, radius int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(px, py, c, clampRadius(radius))
}

// PaintAt projects p onto the buffer and stamps a disc there.
func (s *Surface) PaintAt(p Vec3, c RGBA, radius int) {
	px, py := s.Project(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(px, py, c, clampRadius(radius))
}

// PaintLine paints a continuous stroke from one world point to another by
// stamping discs at evenly spaced points along the segment. The number of
// steps is chosen by LineSteps so consecutive discs overlap.
func (s *Surface) PaintLine(from, to Vec3, c RGBA, radius int) {
	r := clampRadius(radius)
	steps := s.LineSteps(from, to, r)

	s.mu.Lock()
	defer s.mu.Unlock()

	lastX, lastY := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px, py := s.Project(from.Lerp(to, t))
		if px == lastX && py == lastY {
			continue
		}
		s.stamp(px, py, c, r)
		lastX, lastY = px, py
	}

	Logger().Debug("paint: paint line",
		slog.String("id", s.id.String()),
		slog.Int("steps", steps),
		slog.Int("radius", r))
}

// LineSteps returns the number of interpolation steps PaintLine uses
// between from and to at the given radius:
//
//	max(minSteps, ceil(d/spacing), ceil(dpix/spacing))
//
// where d is the world distance, dpix the projected pixel distance and
// spacing the configured fraction of the radius. The result is at most
// MaxLineSteps.
func (s *Surface) LineSteps(from, to Vec3, radius int) int {
	spacing := float64(clampRadius(radius)) * s.spacing

	du, dv := s.proj.delta(from, to)
	d := from.Distance(to)
	dpix := math.Hypot(du, dv)

	steps := float64(s.minSteps)
	steps = math.Max(steps, math.Ceil(d/spacing))
	steps = math.Max(steps, math.Ceil(dpix/spacing))
	if math.IsNaN(steps) || steps > MaxLineSteps {
		return MaxLineSteps
	}
	return int(steps)
}

// Reset overwrites the whole buffer with c.
func (s *Surface) Reset(c RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pix.Clear(c)
	for _, t := range s.trackers {
		t.region.MarkAll()
	}
	s.version.Add(1)
}

// Clear resets the buffer to the background color.
func (s *Surface) Clear() {
	s.Reset(s.background)
}

// At returns the color of cell (x, y), or Transparent outside the buffer.
func (s *Surface) At(x, y int) RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pix.GetPixel(x, y)
}

// Export returns an immutable copy of the buffer reflecting every mutation
// made before the call. Exports with no mutation in between share the same
// snapshot.
func (s *Surface) Export() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

func (s *Surface) exportLocked() *Snapshot {
	v := s.version.Load()
	if snap := s.snap.Load(); snap != nil && snap.version == v {
		return snap
	}
	snap := &Snapshot{
		surface: s.id,
		version: v,
		pix:     s.pix.Clone(),
	}
	s.snap.Store(snap)
	return snap
}

// stamp rasterizes a disc row by row. Callers hold s.mu and pass a radius
// already clamped to [1, MaxRadius].
func (s *Surface) stamp(px, py int, c RGBA, r int) {
	w, h := s.pix.width, s.pix.height
	if px < -r || py < -r || px >= w+r || py >= h+r {
		return
	}

	y0 := max(0, py-r)
	y1 := min(h-1, py+r)
	r2 := int64(r) * int64(r)
	for y := y0; y <= y1; y++ {
		dy := int64(y - py)
		half := isqrt(r2 - dy*dy)
		if half == 0 {
			// Disc tip.
			s.pix.SetPixel(px, y, c)
			continue
		}
		s.pix.FillSpan(px-half, px+half, y, c)
	}

	if len(s.trackers) > 0 {
		rect := image.Rect(px-r, py-r, px+r+1, py+r+1)
		for _, t := range s.trackers {
			t.region.MarkRect(rect)
		}
	}
	s.version.Add(1)
}

func clampRadius(r int) int {
	if r < 1 {
		return 1
	}
	if r > MaxRadius {
		return MaxRadius
	}
	return r
}

// isqrt returns the largest d with d*d <= n, for n >= 0.
func isqrt(n int64) int {
	if n <= 0 {
		return 0
	}
	d := int64(math.Sqrt(float64(n)))
	for d*d > n {
		d--
	}
	for (d+1)*(d+1) <= n {
		d++
	}
	return int(d)
}
