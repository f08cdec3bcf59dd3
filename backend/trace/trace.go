// Package trace provides a chain backend that prints frames as text.
//
// Each frame is written as a header line followed by one line per command,
// indented by the push depth:
//
//	frame 3 viewport=Rect(0,0 800x600) elements=4 entries=6 draws=2 culled=0
//	  PushView([1 0 0 0 1 0])
//	    Draw(first=0 count=12 tex=tex(none) mat=default ref=0 cw scissor=Rect(0,0 800x600) entries=2)
//	  PopView
//
// The backend is registered as "trace" and writes to standard output.
package trace

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/uipaint/chain"
)

func init() {
	chain.Register("trace", func() (chain.Backend, error) {
		return New(os.Stdout), nil
	})
}

// Backend writes frames to an io.Writer. It is safe for concurrent use.
type Backend struct {
	mu     sync.Mutex
	w      *bufio.Writer
	opts   options
	frames int
}

// New creates a backend writing to w.
func New(w io.Writer, opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{w: bufio.NewWriter(w), opts: o}
}

// Name implements chain.Backend.
func (b *Backend) Name() string { return "trace" }

// Frames returns the number of frames written.
func (b *Backend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Execute implements chain.Backend.
func (b *Backend) Execute(ctx context.Context, f *chain.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frames++
	if b.opts.every > 1 && (b.frames-1)%b.opts.every != 0 {
		return nil
	}
	s := f.Stats
	fmt.Fprintf(b.w, "frame %d viewport=%v elements=%d entries=%d draws=%d culled=%d\n",
		f.Index, f.Viewport, s.Elements, s.Entries, s.DrawCalls, s.Culled)
	if !b.opts.summary {
		depth := 1
		for i := range f.Commands {
			c := &f.Commands[i]
			if closes(c.Type) && depth > 1 {
				depth--
			}
			b.w.WriteString(strings.Repeat(b.opts.indent, depth))
			b.w.WriteString(c.String())
			b.w.WriteByte('\n')
			if opens(c.Type) {
				depth++
			}
		}
	}
	if err := b.w.Flush(); err != nil {
		return fmt.Errorf("trace: write frame %d: %w", f.Index, err)
	}
	return nil
}

// Close implements chain.Backend. It flushes buffered output.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w.Flush()
}

func opens(t chain.CommandType) bool {
	switch t {
	case chain.CmdPushView, chain.CmdPushScissor, chain.CmdPushRenderTexture, chain.CmdPushDefaultMaterial:
		return true
	}
	return false
}

func closes(t chain.CommandType) bool {
	switch t {
	case chain.CmdPopView, chain.CmdPopScissor, chain.CmdBlitAndPopRenderTexture, chain.CmdPopDefaultMaterial:
		return true
	}
	return false
}
