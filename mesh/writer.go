package mesh

import (
	"github.com/gogpu/uipaint/geom"
)

// UnitUVRegion is the default UV region covering the whole texture.
var UnitUVRegion = geom.R(0, 0, 1, 1)

// MeshWriteData is a bounded cursor over one vertex slice and one index
// slice. Producers must write exactly VertexCount vertices and IndexCount
// indices; ValidateMeshWriteData pads any shortfall.
type MeshWriteData struct {
	vertices []Vertex
	indices  []Index

	currentVertex int
	currentIndex  int

	// overflow counts writes rejected because the slice was already full.
	overflow int

	uvRegion geom.Rect
}

// reset rebinds the cursor to new storage.
func (m *MeshWriteData) reset(vertices []Vertex, indices []Index, uvRegion geom.Rect) {
	m.vertices = vertices
	m.indices = indices
	m.currentVertex = 0
	m.currentIndex = 0
	m.overflow = 0
	m.uvRegion = uvRegion
}

// VertexCount returns the number of vertices requested.
func (m *MeshWriteData) VertexCount() int { return len(m.vertices) }

// IndexCount returns the number of indices requested.
func (m *MeshWriteData) IndexCount() int { return len(m.indices) }

// CurrentVertex returns how many vertices have been written.
func (m *MeshWriteData) CurrentVertex() int { return m.currentVertex }

// CurrentIndex returns how many indices have been written.
func (m *MeshWriteData) CurrentIndex() int { return m.currentIndex }

// Vertices returns the full vertex slice.
func (m *MeshWriteData) Vertices() []Vertex { return m.vertices }

// Indices returns the full index slice.
func (m *MeshWriteData) Indices() []Index { return m.indices }

// UVRegion returns the sub-rectangle of the bound texture that UVs in [0,1]
// should map into. It is the unit square unless the texture was atlased.
func (m *MeshWriteData) UVRegion() geom.Rect { return m.uvRegion }

// SetUVRegion overrides the UV region.
func (m *MeshWriteData) SetUVRegion(r geom.Rect) { m.uvRegion = r }

// IsComplete reports whether every requested vertex and index was written.
func (m *MeshWriteData) IsComplete() bool {
	return m.currentVertex == len(m.vertices) && m.currentIndex == len(m.indices)
}

// SetNextVertex writes the next vertex. Writes past VertexCount are dropped
// and reported by validation.
func (m *MeshWriteData) SetNextVertex(v Vertex) {
	if m.currentVertex >= len(m.vertices) {
		m.overflow++
		return
	}
	m.vertices[m.currentVertex] = v
	m.currentVertex++
}

// SetNextIndex writes the next index.
func (m *MeshWriteData) SetNextIndex(i Index) {
	if m.currentIndex >= len(m.indices) {
		m.overflow++
		return
	}
	m.indices[m.currentIndex] = i
	m.currentIndex++
}

// SetAllVertices copies vs into the vertex slice starting at the beginning.
func (m *MeshWriteData) SetAllVertices(vs []Vertex) {
	n := copy(m.vertices, vs)
	m.currentVertex = n
	m.overflow += len(vs) - n
}

// SetAllIndices copies is into the index slice starting at the beginning.
func (m *MeshWriteData) SetAllIndices(is []Index) {
	n := copy(m.indices, is)
	m.currentIndex = n
	m.overflow += len(is) - n
}

// pad completes an under-filled cursor: missing vertices duplicate vertex 0
// (zeroed first if it was never written) and missing indices are 0.
func (m *MeshWriteData) pad() {
	if m.currentVertex < len(m.vertices) {
		if m.currentVertex == 0 {
			m.vertices[0] = Vertex{}
		}
		first := m.vertices[0]
		for i := m.currentVertex; i < len(m.vertices); i++ {
			m.vertices[i] = first
		}
		m.currentVertex = len(m.vertices)
	}
	for i := m.currentIndex; i < len(m.indices); i++ {
		m.indices[i] = 0
	}
	m.currentIndex = len(m.indices)
}
