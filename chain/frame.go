package chain

import (
	"sync"

	"honnef.co/go/safeish"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/mesh"
)

// Stats describes one translated frame.
type Stats struct {
	// Elements is the number of elements entered.
	Elements int

	// Entries is the number of draw entries translated, including mask
	// unregisters and immediate geometry.
	Entries int

	// DrawCalls is the number of draw commands after batching.
	DrawCalls int

	// Culled is the number of draw entries dropped because their clip
	// rectangle or scissor was empty.
	Culled int

	Vertices int
	Indices  int
}

// Frame is the output of one frame: geometry in screen space and the
// commands drawing it.
type Frame struct {
	Index    uint64
	Viewport geom.Rect

	Vertices []mesh.Vertex

	// Indices address Vertices directly; draws have no base vertex.
	Indices []uint32

	Commands []Command
	Stats    Stats
}

// Reset clears the frame, keeping its storage.
func (f *Frame) Reset() {
	f.Index = 0
	f.Viewport = geom.Rect{}
	f.Vertices = f.Vertices[:0]
	f.Indices = f.Indices[:0]
	clear(f.Commands)
	f.Commands = f.Commands[:0]
	f.Stats = Stats{}
}

// VertexBytes returns the vertex buffer as raw bytes for upload.
// The result aliases f.Vertices.
func (f *Frame) VertexBytes() []byte {
	return safeish.SliceCast[[]byte](f.Vertices)
}

// IndexBytes returns the index buffer as raw bytes for upload.
// The result aliases f.Indices.
func (f *Frame) IndexBytes() []byte {
	return safeish.SliceCast[[]byte](f.Indices)
}

// DrawCommands returns the draw commands of the frame.
func (f *Frame) DrawCommands() []Command {
	var out []Command
	for _, c := range f.Commands {
		if c.Type == CmdDraw {
			out = append(out, c)
		}
	}
	return out
}

// FramePool manages a pool of reusable frames.
// After warmup, allocations are minimized by reusing frame storage.
type FramePool struct {
	pool sync.Pool
}

// NewFramePool creates a new frame pool.
func NewFramePool() *FramePool {
	return &FramePool{
		pool: sync.Pool{
			New: func() any {
				return &Frame{}
			},
		},
	}
}

// Get retrieves a frame from the pool.
// The frame is reset and ready for use.
func (p *FramePool) Get() *Frame {
	f := p.pool.Get().(*Frame)
	f.Reset()
	return f
}

// Put returns a frame to the pool for reuse.
func (p *FramePool) Put(f *Frame) {
	if f == nil {
		return
	}
	p.pool.Put(f)
}

// Warmup pre-allocates frames so the first frames do not allocate them.
func (p *FramePool) Warmup(count int) {
	frames := make([]*Frame, count)
	for i := range count {
		frames[i] = p.Get()
	}
	for i := range count {
		p.Put(frames[i])
	}
}
