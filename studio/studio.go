// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package studio manages the set of paint surfaces in a scene.
//
// A Studio routes contact events to surfaces by identity and fans bulk
// operations (reset, export, save) out across them. Surfaces share no
// state, so the fan-out runs them in parallel.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
	"github.com/gogpu/paint/config"
)

// Errors returned by Studio operations.
var (
	// ErrDuplicateName is returned by Add when the name is taken.
	ErrDuplicateName = errors.New("studio: duplicate surface name")

	// ErrDuplicateID is returned by Add when the surface is already registered.
	ErrDuplicateID = errors.New("studio: duplicate surface id")

	// ErrUnknownSurface is returned for ids that are not registered.
	ErrUnknownSurface = errors.New("studio: unknown surface")

	// ErrNilSurface is returned by Add for a nil surface.
	ErrNilSurface = errors.New("studio: nil surface")
)

type entry struct {
	name    string
	surface *paint.Surface
}

// Studio is a registry of named surfaces. It is safe for concurrent use.
type Studio struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]entry
	byName map[string]uuid.UUID

	brush *brush.Brush
}

// New returns an empty studio with a default brush.
func New() *Studio {
	return &Studio{
		byID:   make(map[uuid.UUID]entry),
		byName: make(map[string]uuid.UUID),
		brush:  brush.New(),
	}
}

// FromConfig builds every surface and the brush described by c.
func FromConfig(c *config.Studio) (*Studio, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	st := New()
	b, err := c.Brush.NewBrush()
	if err != nil {
		return nil, err
	}
	st.brush = b

	for i := range c.Surfaces {
		sc := &c.Surfaces[i]
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("studio: surface %q: %w", sc.Name, err)
		}
		if err := st.Add(sc.Name, s); err != nil {
			return nil, err
		}
	}

	paint.Logger().Info("studio: built from config",
		slog.Int("surfaces", st.Len()),
		slog.String("swatch", b.Swatch().String()),
		slog.Int("radius", b.Radius()))
	return st, nil
}

// Brush returns the studio brush.
func (st *Studio) Brush() *brush.Brush {
	return st.brush
}

// Add registers s under name.
func (st *Studio) Add(name string, s *paint.Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if _, ok := st.byID[s.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, s.ID())
	}
	st.byID[s.ID()] = entry{name: name, surface: s}
	st.byName[name] = s.ID()
	return nil
}

// Remove unregisters the surface and reports whether it was present.
func (st *Studio) Remove(id uuid.UUID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.byID[id]
	if !ok {
		return false
	}
	delete(st.byID, id)
	delete(st.byName, e.name)
	return true
}

// Surface returns the surface with the given id.
func (st *Studio) Surface(id uuid.UUID) (*paint.Surface, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	e, ok := st.byID[id]
	return e.surface, ok
}

// Lookup returns the surface registered under name.
func (st *Studio) Lookup(name string) (*paint.Surface, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	id, ok := st.byName[name]
	if !ok {
		return nil, false
	}
	return st.byID[id].surface, true
}

// Names returns the registered names in sorted order.
func (st *Studio) Names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	names := make([]string, 0, len(st.byName))
	for n := range st.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered surfaces.
func (st *Studio) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}

// Contact paints a single disc on the surface with the given id.
func (st *Studio) Contact(id uuid.UUID, p paint.Vec3, c paint.RGBA, radius int) error {
	s, ok := st.Surface(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSurface, id)
	}
	s.PaintAt(p, c, radius)
	return nil
}

// Stroke paints a line on the surface with the given id.
func (st *Studio) Stroke(id uuid.UUID, from, to paint.Vec3, c paint.RGBA, radius int) error {
	s, ok := st.Surface(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSurface, id)
	}
	s.PaintLine(from, to, c, radius)
	return nil
}

// named is a registry entry captured for fan-out.
type named struct {
	name    string
	surface *paint.Surface
}

func (st *Studio) entries() []named {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]named, 0, len(st.byID))
	for _, e := range st.byID {
		out = append(out, named{e.name, e.surface})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// each runs fn for every surface in parallel, stopping early once ctx is
// done or fn fails.
func (st *Studio) each(ctx context.Context, fn func(n named) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, n := range st.entries() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(n)
		})
	}
	return g.Wait()
}

// ResetAll fills every surface with c.
func (st *Studio) ResetAll(ctx context.Context, c paint.RGBA) error {
	return st.each(ctx, func(n named) error {
		n.surface.Reset(c)
		return nil
	})
}

// ClearAll resets every surface to its own background.
func (st *Studio) ClearAll(ctx context.Context) error {
	return st.each(ctx, func(n named) error {
		n.surface.Clear()
		return nil
	})
}

// ExportAll returns a snapshot of every surface keyed by name.
func (st *Studio) ExportAll(ctx context.Context) (map[string]*paint.Snapshot, error) {
	var mu sync.Mutex
	out := make(map[string]*paint.Snapshot)
	err := st.each(ctx, func(n named) error {
		snap := n.surface.Export()
		mu.Lock()
		out[n.name] = snap
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAll writes every surface to dir as <name>.<ext>, using the format's
// extension.
func (st *Studio) SaveAll(ctx context.Context, dir string, f paint.ImageFormat) error {
	return st.each(ctx, func(n named) error {
		if filepath.Base(n.name) != n.name {
			return fmt.Errorf("studio: save %q: name is not a file name", n.name)
		}
		path := filepath.Join(dir, n.name+"."+f.String())
		if err := n.surface.Export().SaveFile(path); err != nil {
			return fmt.Errorf("studio: save %q: %w", n.name, err)
		}
		paint.Logger().Debug("studio: saved surface", slog.String("path", path))
		return nil
	})
}
