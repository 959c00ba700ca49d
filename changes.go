package paint

import (
	"image"
	"slices"

	"github.com/gogpu/paint/internal/dirty"
)

// Changes follows the 64x64 tiles of one surface modified since the tracker
// last exported. Each consumer (a GPU canvas, a terminal view) takes its own
// tracker from TrackChanges, so exporting through one tracker never clears
// the tiles another has yet to see.
//
// Changes is safe for concurrent use.
type Changes struct {
	s      *Surface
	region *dirty.Region
}

// TrackChanges registers a new change tracker on s.
// The whole surface starts out changed, so the first export covers every tile.
func (s *Surface) TrackChanges() *Changes {
	c := &Changes{s: s, region: dirty.NewRegion(s.pix.width, s.pix.height)}
	c.region.MarkAll()

	s.mu.Lock()
	s.trackers = append(s.trackers, c)
	s.mu.Unlock()
	return c
}

// Surface returns the tracked surface.
func (c *Changes) Surface() *Surface {
	return c.s
}

// Pending reports whether any tile changed since the last export.
func (c *Changes) Pending() bool {
	return !c.region.IsEmpty()
}

// Coverage returns the number of changed tiles and the total tile count.
func (c *Changes) Coverage() (changed, total int) {
	return c.region.Count(), c.region.TotalTiles()
}

// Export returns a snapshot together with the pixel rectangles that changed
// since this tracker's previous export, and marks them clean. Both are taken
// under the surface lock so no change can fall between them.
func (c *Changes) Export() (*Snapshot, []image.Rectangle) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.exportLocked(), c.region.TakeRects()
}

// ExportFull returns a snapshot and marks every tile clean.
func (c *Changes) ExportFull() *Snapshot {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.region.Clear()
	return c.s.exportLocked()
}

// Invalidate marks every tile changed.
func (c *Changes) Invalidate() {
	c.region.MarkAll()
}

// Close detaches the tracker from its surface. Later mutations are no
// longer recorded. Close is idempotent.
func (c *Changes) Close() {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if i := slices.Index(c.s.trackers, c); i >= 0 {
		c.s.trackers = slices.Delete(c.s.trackers, i, i+1)
	}
}
