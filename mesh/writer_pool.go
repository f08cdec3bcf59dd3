package mesh

import (
	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
)

// WriterPool hands out MeshWriteData cursors from a growable arena.
// Get reuses cursors below the high-water mark; Reset rewinds the mark, so
// steady-state frames never allocate cursors.
type WriterPool struct {
	writers []*MeshWriteData
	used    int
}

// Get returns a cursor bound to the given storage.
func (p *WriterPool) Get(vertices []Vertex, indices []Index, uvRegion geom.Rect) *MeshWriteData {
	if p.used == len(p.writers) {
		p.writers = append(p.writers, &MeshWriteData{})
	}
	w := p.writers[p.used]
	p.used++
	w.reset(vertices, indices, uvRegion)
	return w
}

// InUse returns the number of cursors handed out since the last Reset.
func (p *WriterPool) InUse() int { return p.used }

// Capacity returns the number of cursors the arena holds.
func (p *WriterPool) Capacity() int { return len(p.writers) }

// ValidateMeshWriteData checks every cursor handed out since the last Reset.
// Under-filled cursors are logged and padded so the GPU never reads
// uninitialized geometry; over-filled cursors are logged. It returns the
// number of cursors that were not exactly filled.
func (p *WriterPool) ValidateMeshWriteData() int {
	bad := 0
	for _, w := range p.writers[:p.used] {
		if w.IsComplete() && w.overflow == 0 {
			continue
		}
		bad++
		uipaint.Logger().Error("mesh: writer not filled as requested",
			"vertexCount", len(w.vertices), "vertexWritten", w.currentVertex,
			"indexCount", len(w.indices), "indexWritten", w.currentIndex,
			"overflow", w.overflow)
		w.pad()
		w.overflow = 0
	}
	return bad
}

// Reset validates outstanding cursors and rewinds the high-water mark.
func (p *WriterPool) Reset() {
	p.ValidateMeshWriteData()
	for _, w := range p.writers[:p.used] {
		w.reset(nil, nil, UnitUVRegion)
	}
	p.used = 0
}
