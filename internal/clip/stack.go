// Package clip tracks the scissor rectangle while render commands are
// translated.
package clip

import "github.com/gogpu/uipaint/geom"

// ClipStack manages nested scissor rectangles with push/pop operations.
// Each push narrows the current bounds; Pop restores the bounds in effect
// before the matching push.
type ClipStack struct {
	entries []geom.Rect
	bounds  geom.Rect
}

// NewClipStack creates a clip stack with the given bounds, typically the
// viewport.
func NewClipStack(bounds geom.Rect) *ClipStack {
	return &ClipStack{
		entries: make([]geom.Rect, 0, 8),
		bounds:  bounds,
	}
}

// PushRect narrows the clip to the intersection of the current bounds and r.
func (cs *ClipStack) PushRect(r geom.Rect) {
	cs.entries = append(cs.entries, cs.bounds)
	cs.bounds = cs.bounds.Intersect(r)
}

// PushReplace replaces the clip with r regardless of the current bounds.
// Render targets use it to start from their own extent.
func (cs *ClipStack) PushReplace(r geom.Rect) {
	cs.entries = append(cs.entries, cs.bounds)
	cs.bounds = r
}

// Pop restores the bounds in effect before the most recent push.
// It reports false if the stack is empty.
func (cs *ClipStack) Pop() bool {
	if len(cs.entries) == 0 {
		return false
	}
	last := len(cs.entries) - 1
	cs.bounds = cs.entries[last]
	cs.entries = cs.entries[:last]
	return true
}

// Bounds returns the current effective clip bounds.
func (cs *ClipStack) Bounds() geom.Rect {
	return cs.bounds
}

// IsEmpty reports whether nothing can be drawn inside the current bounds.
func (cs *ClipStack) IsEmpty() bool {
	return cs.bounds.W <= 0 || cs.bounds.H <= 0
}

// Depth returns the number of pushed rectangles.
func (cs *ClipStack) Depth() int {
	return len(cs.entries)
}

// Reset clears all entries and restores the given bounds.
func (cs *ClipStack) Reset(bounds geom.Rect) {
	cs.entries = cs.entries[:0]
	cs.bounds = bounds
}
