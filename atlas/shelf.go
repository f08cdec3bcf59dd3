package atlas

import "fmt"

// MinPageSize is the smallest page dimension accepted.
const MinPageSize = 64

// Region is a rectangle inside a page, in pixels.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsValid returns true if the region has positive dimensions.
func (r Region) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf is a horizontal strip of a page.
type shelf struct {
	y      int
	height int
	nextX  int
}

// ShelfAllocator places rectangles on horizontal shelves. A rectangle goes on
// the first shelf with room for it; otherwise a new shelf is opened below the
// last one. Individual regions are never freed, only the whole allocator.
//
// ShelfAllocator is not safe for concurrent use.
type ShelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	allocCount int
	usedArea   int
}

// NewShelfAllocator creates an allocator for a width x height area.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	if width < MinPageSize {
		width = MinPageSize
	}
	if height < MinPageSize {
		height = MinPageSize
	}
	if padding < 0 {
		padding = 0
	}
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// Size returns the allocator's dimensions.
func (a *ShelfAllocator) Size() (width, height int) { return a.width, a.height }

// Allocate finds space for a width x height rectangle.
// The second result is false when the rectangle does not fit.
func (a *ShelfAllocator) Allocate(width, height int) (Region, bool) {
	if width <= 0 || height <= 0 {
		return Region{}, false
	}
	pw, ph := width+a.padding, height+a.padding
	if pw > a.width || ph > a.height {
		return Region{}, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.nextX+pw > a.width {
			continue
		}
		if ph > s.height {
			continue
		}
		r := Region{X: s.nextX, Y: s.y, Width: width, Height: height}
		s.nextX += pw
		a.record(width, height)
		return r, true
	}

	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	if y+ph > a.height {
		return Region{}, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: ph, nextX: pw})
	a.record(width, height)
	return Region{X: 0, Y: y, Width: width, Height: height}, true
}

func (a *ShelfAllocator) record(width, height int) {
	a.allocCount++
	a.usedArea += width * height
}

// Reset clears all allocations.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0]
	a.allocCount = 0
	a.usedArea = 0
}

// Utilization returns the fraction of area used (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}

// AllocCount returns the number of successful allocations since Reset.
func (a *ShelfAllocator) AllocCount() int { return a.allocCount }
