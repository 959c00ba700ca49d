// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/paint"
)

func TestPaintballPaintsOnce(t *testing.T) {
	g := NewGun()
	ball := g.Fire()
	require.Equal(t, paint.Blue, ball.Color())
	require.Equal(t, DefaultGunRadius, ball.Radius())

	r := newRecorder()
	require.True(t, ball.Hit(r, paint.V3(1, 2, 3)))
	require.False(t, ball.Hit(r, paint.V3(4, 5, 6)))
	require.True(t, ball.Spent())
	require.Len(t, r.calls, 1)
	require.Equal(t, paint.V3(1, 2, 3), r.calls[0].from)
}

func TestPaintballMissConsumesBall(t *testing.T) {
	ball := NewGun().Fire()
	require.False(t, ball.Hit(nil, paint.V3(0, 0, 0)))
	r := newRecorder()
	require.False(t, ball.Hit(r, paint.V3(0, 0, 0)))
	require.Empty(t, r.calls)
}

func TestPaintballConcurrentHits(t *testing.T) {
	ball := NewGun().Fire()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		hits int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ball.Hit(newRecorder(), paint.V3(0, 0, 0)) {
				mu.Lock()
				hits++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, hits)
}

func TestGunReload(t *testing.T) {
	g := NewGun()
	inFlight := g.Fire()
	g.Load(paint.Green)
	g.SetRadius(0)

	next := g.Fire()
	require.Equal(t, paint.Blue, inFlight.Color(), "fired balls keep their color")
	require.Equal(t, paint.Green, next.Color())
	require.Equal(t, 1, next.Radius())
}

func TestCupMix(t *testing.T) {
	c := NewCup()
	require.Equal(t, paint.White, c.Color())

	c.Dip(paint.Red)
	got := c.Dip(paint.Blue)
	require.Equal(t, paint.RGBA{R: 0.5, G: 0, B: 0.5, A: 1}, got)
	require.Equal(t, 2, c.Count())

	// Alpha of dipped colors is ignored.
	got = c.Dip(paint.RGBA{R: 0.5, G: 0.75, B: 0.5, A: 0})
	require.InDelta(t, 0.5, got.R, 1e-12)
	require.InDelta(t, 0.25, got.G, 1e-12)
	require.InDelta(t, 0.5, got.B, 1e-12)
	require.Equal(t, 1.0, got.A)
}

func TestCupTilt(t *testing.T) {
	tests := []struct {
		name    string
		upDot   float64
		spilled bool
	}{
		{"upright", 1, false},
		{"sideways", 0, false},
		{"at threshold", DumpThreshold, false},
		{"upside down", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCup()
			c.Dip(paint.Black)
			require.Equal(t, tt.spilled, c.Tilt(tt.upDot))
			if tt.spilled {
				require.Equal(t, paint.White, c.Color())
				require.Zero(t, c.Count())
			} else {
				require.Equal(t, 1, c.Count())
			}
		})
	}
}

func TestCupFeedsBrush(t *testing.T) {
	c := NewCup()
	c.Dip(paint.Red)
	c.Dip(paint.Yellow)

	b := New()
	require.NoError(t, b.Handle(SetColor{Color: c.Color()}))
	require.Equal(t, paint.RGBA{R: 1, G: 0.5, B: 0, A: 1}, b.Color())
}
