package mesh

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := uipaint.Logger()
	t.Cleanup(func() { uipaint.SetLogger(orig) })
	var buf bytes.Buffer
	uipaint.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestMeshWriteDataComplete(t *testing.T) {
	var pool WriterPool
	w := pool.Get(make([]Vertex, 4), make([]Index, 6), UnitUVRegion)
	for i := range 4 {
		w.SetNextVertex(Vertex{Position: f32.Vec3{float32(i), 0, 0}})
	}
	w.SetAllIndices(QuadIndices[:])
	if !w.IsComplete() {
		t.Fatalf("cursor incomplete: v=%d i=%d", w.CurrentVertex(), w.CurrentIndex())
	}
	if bad := pool.ValidateMeshWriteData(); bad != 0 {
		t.Errorf("ValidateMeshWriteData() = %d, want 0", bad)
	}
}

func TestValidateMeshWriteDataPadsUnderfilled(t *testing.T) {
	logs := captureLogs(t)

	var pool WriterPool
	vertices := make([]Vertex, 4)
	indices := make([]Index, 6)
	for i := range indices {
		indices[i] = 0xBEEF
	}
	w := pool.Get(vertices, indices, UnitUVRegion)
	first := Vertex{Position: f32.Vec3{1, 2, 0}, Tint: color.NRGBA{R: 255, A: 255}}
	w.SetNextVertex(first)
	w.SetNextIndex(0)
	w.SetNextIndex(1)

	if bad := pool.ValidateMeshWriteData(); bad != 1 {
		t.Fatalf("ValidateMeshWriteData() = %d, want 1", bad)
	}
	if w.CurrentVertex() != w.VertexCount() || w.CurrentIndex() != w.IndexCount() {
		t.Fatalf("cursor not padded: v=%d/%d i=%d/%d",
			w.CurrentVertex(), w.VertexCount(), w.CurrentIndex(), w.IndexCount())
	}
	for i, v := range vertices {
		if v != first {
			t.Errorf("vertex %d = %+v, want copy of vertex 0", i, v)
		}
	}
	for i := 2; i < len(indices); i++ {
		if indices[i] != 0 {
			t.Errorf("index %d = %#x, want 0", i, indices[i])
		}
	}
	if !strings.Contains(logs.String(), "writer not filled") {
		t.Errorf("expected diagnostic, got %q", logs.String())
	}
}

func TestValidateMeshWriteDataNothingWritten(t *testing.T) {
	captureLogs(t)

	var pool WriterPool
	vertices := []Vertex{{Position: f32.Vec3{5, 5, 5}}, {Position: f32.Vec3{6, 6, 6}}, {}}
	w := pool.Get(vertices, make([]Index, 3), UnitUVRegion)
	pool.ValidateMeshWriteData()
	for i, v := range w.Vertices() {
		if v != (Vertex{}) {
			t.Errorf("vertex %d = %+v, want zero vertex", i, v)
		}
	}
}

func TestMeshWriteDataOverflowReported(t *testing.T) {
	captureLogs(t)

	var pool WriterPool
	w := pool.Get(make([]Vertex, 1), make([]Index, 1), UnitUVRegion)
	w.SetAllVertices([]Vertex{{}, {}})
	w.SetNextIndex(0)
	w.SetNextIndex(0)
	if bad := pool.ValidateMeshWriteData(); bad != 1 {
		t.Errorf("ValidateMeshWriteData() = %d, want 1 for overflow", bad)
	}
}

func TestWriterPoolReuse(t *testing.T) {
	var pool WriterPool
	a := pool.Get(nil, nil, UnitUVRegion)
	b := pool.Get(nil, nil, geom.R(0.5, 0.5, 0.25, 0.25))
	if b.UVRegion() != geom.R(0.5, 0.5, 0.25, 0.25) {
		t.Errorf("UVRegion = %v", b.UVRegion())
	}
	pool.Reset()
	if pool.InUse() != 0 {
		t.Errorf("InUse after Reset = %d", pool.InUse())
	}
	if got := pool.Get(nil, nil, UnitUVRegion); got != a {
		t.Error("Get after Reset should reuse the first cursor")
	}
	if pool.Capacity() != 2 {
		t.Errorf("Capacity = %d, want 2", pool.Capacity())
	}
}
