// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dirty tracks which tiles of a pixel buffer changed since the last
// upload, so display code can transfer only the modified rectangles.
package dirty

import (
	"image"
	"math/bits"
	"sync/atomic"
)

const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64
)

// Region tracks dirty tiles using an atomic bitmap.
// It provides lock-free, thread-safe operations for concurrent access.
//
// The bitmap uses one bit per tile, packed into uint64 words (64 tiles per word).
// Bit index = ty * tilesX + tx.
type Region struct {
	words []atomic.Uint64

	tilesX, tilesY int

	// width and height are the pixel dimensions covered by the region.
	width, height int
}

// NewRegion creates a tracker for a width×height pixel buffer.
// All tiles start clean. Returns nil if dimensions are not positive.
func NewRegion(width, height int) *Region {
	if width <= 0 || height <= 0 {
		return nil
	}

	tilesX := (width + TileWidth - 1) / TileWidth
	tilesY := (height + TileHeight - 1) / TileHeight
	totalTiles := tilesX * tilesY

	return &Region{
		words:  make([]atomic.Uint64, (totalTiles+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}
}

// Mark marks a single tile as dirty.
// Does nothing if coordinates are out of bounds.
func (d *Region) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect marks all tiles intersecting the pixel rectangle r as dirty.
// Rectangles outside the buffer are ignored.
func (d *Region) MarkRect(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, d.width, d.height))
	if r.Empty() {
		return
	}

	tx1 := r.Min.X / TileWidth
	ty1 := r.Min.Y / TileHeight
	tx2 := (r.Max.X - 1) / TileWidth
	ty2 := (r.Max.Y - 1) / TileHeight

	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkAll marks all tiles as dirty.
func (d *Region) MarkAll() {
	totalTiles := d.tilesX * d.tilesY
	fullWords := totalTiles / 64
	remainder := totalTiles % 64

	for i := 0; i < fullWords; i++ {
		d.words[i].Store(^uint64(0))
	}
	if remainder > 0 {
		d.words[fullWords].Store((uint64(1) << remainder) - 1)
	}
}

// Clear marks all tiles as clean.
func (d *Region) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsEmpty returns true if no tiles are marked as dirty.
func (d *Region) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of tiles marked as dirty.
func (d *Region) Count() int {
	count := 0
	for i := range d.words {
		count += bits.OnesCount64(d.words[i].Load())
	}
	return count
}

// TotalTiles returns the total number of tiles in the region.
func (d *Region) TotalTiles() int {
	return d.tilesX * d.tilesY
}

// TileRect returns the pixel rectangle covered by tile (tx, ty),
// clipped to the buffer. Edge tiles may be smaller than a full tile.
func (d *Region) TileRect(tx, ty int) image.Rectangle {
	r := image.Rect(tx*TileWidth, ty*TileHeight, (tx+1)*TileWidth, (ty+1)*TileHeight)
	return r.Intersect(image.Rect(0, 0, d.width, d.height))
}

// TakeRects atomically retrieves all dirty tiles as pixel rectangles and
// clears them. Rectangles are returned in row-major tile order.
func (d *Region) TakeRects() []image.Rectangle {
	var dirty []image.Rectangle
	totalTiles := d.tilesX * d.tilesY

	for wordIdx := range d.words {
		// Atomically swap the word with 0 to get and clear
		word := d.words[wordIdx].Swap(0)
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			tileIdx := wordIdx*64 + bitIdx
			if tileIdx >= totalTiles {
				break
			}
			dirty = append(dirty, d.TileRect(tileIdx%d.tilesX, tileIdx/d.tilesX))
			word &^= 1 << bitIdx
		}
	}

	return dirty
}
