// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package brush

import (
	"sync"

	"github.com/gogpu/paint"
)

// DumpThreshold is the up-vector alignment below which a tilted cup spills.
const DumpThreshold = -0.9

// Cup mixes the colors dipped into it. The mix is the running average of
// the RGB components; alpha is always opaque. An empty cup is white.
type Cup struct {
	mu    sync.Mutex
	sum   [3]float64
	count int
}

// NewCup returns an empty cup.
func NewCup() *Cup {
	return &Cup{}
}

// Dip adds c to the mix and returns the new mixed color.
func (c *Cup) Dip(col paint.RGBA) paint.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sum[0] += col.R
	c.sum[1] += col.G
	c.sum[2] += col.B
	c.count++
	return c.mixLocked()
}

// Color returns the current mix.
func (c *Cup) Color() paint.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixLocked()
}

// Count returns the number of colors in the mix.
func (c *Cup) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Empty discards the mix.
func (c *Cup) Empty() {
	c.mu.Lock()
	c.sum = [3]float64{}
	c.count = 0
	c.mu.Unlock()
}

// Tilt updates the cup orientation, given as the dot product of its up
// vector with world up. A cup turned over past DumpThreshold is emptied,
// and Tilt reports whether that happened.
func (c *Cup) Tilt(upDot float64) bool {
	if upDot >= DumpThreshold {
		return false
	}
	c.Empty()
	return true
}

func (c *Cup) mixLocked() paint.RGBA {
	if c.count == 0 {
		return paint.White
	}
	n := float64(c.count)
	return paint.RGBA{R: c.sum[0] / n, G: c.sum[1] / n, B: c.sum[2] / n, A: 1}
}
