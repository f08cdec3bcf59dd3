package mesh

import (
	"sync"

	"github.com/gogpu/uipaint"
)

// DefaultPageSize is the initial capacity of a TempAllocator page.
const DefaultPageSize = 4096

// TempAllocator is a per-frame bump allocator. Slices it hands out stay
// valid until Reset; there is no per-slice free.
//
// When a frame outgrows the current page, a new page at least twice as large
// is appended so earlier slices are never moved. Reset folds all pages into
// one page of the combined size, so a steady-state frame runs out of a
// single page without allocating.
type TempAllocator[T any] struct {
	mu     sync.Mutex
	pages  [][]T
	page   int
	offset int

	allocs   int
	used     int
	peakUsed int
	name     string
}

// NewTempAllocator creates an allocator with one page of the given capacity.
func NewTempAllocator[T any](name string, capacity int) *TempAllocator[T] {
	if capacity <= 0 {
		capacity = DefaultPageSize
	}
	return &TempAllocator[T]{
		pages: [][]T{make([]T, capacity)},
		name:  name,
	}
}

// Alloc returns a slice of exactly count elements. The returned slice has
// cap == len so appending to it never overwrites a neighbour.
// Alloc(0) returns nil without touching the pool.
func (a *TempAllocator[T]) Alloc(count int) []T {
	if count <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.pages[a.page]
	if a.offset+count > len(cur) {
		a.grow(count)
		cur = a.pages[a.page]
	}
	s := cur[a.offset : a.offset+count : a.offset+count]
	a.offset += count
	a.allocs++
	a.used += count
	return s
}

// grow moves to the next page, appending a larger one when needed.
func (a *TempAllocator[T]) grow(count int) {
	for a.page+1 < len(a.pages) {
		a.page++
		a.offset = 0
		if len(a.pages[a.page]) >= count {
			return
		}
	}
	size := 2 * len(a.pages[len(a.pages)-1])
	if size < count {
		size = count
	}
	a.pages = append(a.pages, make([]T, size))
	a.page = len(a.pages) - 1
	a.offset = 0
	uipaint.Logger().Debug("mesh: temp allocator grew", "pool", a.name, "pages", len(a.pages), "pageSize", size)
}

// Reset invalidates every slice handed out since the previous Reset.
// If the frame needed more than one page, the pages are replaced by a single
// page large enough for the whole frame.
func (a *TempAllocator[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.used > a.peakUsed {
		a.peakUsed = a.used
	}
	if len(a.pages) > 1 {
		total := 0
		for _, p := range a.pages {
			total += len(p)
		}
		a.pages = [][]T{make([]T, total)}
	}
	a.page = 0
	a.offset = 0
	a.allocs = 0
	a.used = 0
}

// AllocStats describes the allocator state.
type AllocStats struct {
	Pages       int
	Capacity    int
	Used        int
	Allocations int
	PeakUsed    int
}

// Stats returns the current allocator statistics.
func (a *TempAllocator[T]) Stats() AllocStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	capacity := 0
	for _, p := range a.pages {
		capacity += len(p)
	}
	return AllocStats{
		Pages:       len(a.pages),
		Capacity:    capacity,
		Used:        a.used,
		Allocations: a.allocs,
		PeakUsed:    max(a.peakUsed, a.used),
	}
}
