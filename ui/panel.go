package ui

import (
	"context"
	"fmt"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/internal/parallel"
	"github.com/gogpu/uipaint/layout"
	"github.com/gogpu/uipaint/painter"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

// FrameStats describes the last frame produced by a panel.
type FrameStats struct {
	Frame uint64

	// LayoutPasses is the number of solver runs; LayoutChanges the number
	// of elements whose box or display changed.
	LayoutPasses  int
	LayoutChanges int

	// Repainted is the number of elements whose entries were regenerated.
	Repainted int

	// Shaped is the number of text layouts built ahead of layout.
	Shaped int

	chain.Stats
}

// Panel is the root of an element tree rendered as one surface.
//
// Panels are not safe for concurrent use.
type Panel struct {
	opts          panelOptions
	width, height float32
	root          *Element

	updater  *LayoutUpdater
	painter  *painter.StylePainter
	chain    *chain.RenderChain
	shaper   *text.Shaper
	registry *atlas.TextureRegistry
	pool     *parallel.WorkerPool

	frame      uint64
	stats      FrameStats
	inCallback bool
	closed     bool
}

// NewPanel creates a panel of the given size with an empty root element.
//
// Optional PanelOption arguments configure clipping, texture packing and
// the backend:
//
//	p := ui.NewPanel(800, 600, ui.WithBackend(b), ui.WithClipPolicy(uipaint.ClipPolicyStencil))
func NewPanel(width, height float32, opts ...PanelOption) *Panel {
	o := defaultPanelOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Panel{opts: o, width: width, height: height}
	p.shaper = o.shaper
	if p.shaper == nil {
		p.shaper = text.NewShaper(nil, text.DefaultCacheSize)
	}
	p.registry = atlas.NewTextureRegistry()
	if o.atlas != nil {
		p.registry = o.atlas.Registry()
	}

	chainOpts := []chain.Option{
		chain.WithRegistry(p.registry),
		chain.WithImmediateGuard(p.guardCallback),
	}
	painterOpts := []painter.Option{
		painter.WithRegistry(p.registry),
		painter.WithTextShaper(p.shaper),
	}
	if o.atlas != nil {
		chainOpts = append(chainOpts, chain.WithAtlas(o.atlas))
		painterOpts = append(painterOpts, painter.WithDynamicAtlas(o.atlas))
	}
	p.chain = chain.New(chainOpts...)
	p.painter = painter.New(p.chain, p.chain, painterOpts...)
	p.updater = NewLayoutUpdater(o.maxPasses, o.focus)
	if o.workers > 1 {
		p.pool = parallel.NewWorkerPool(o.workers)
	}

	p.root = NewElement("root")
	p.root.SetLayoutStyle(layout.Style{Width: layout.Pct(100), Height: layout.Pct(100)})
	p.root.attach(p)
	return p
}

// Root returns the root element.
func (p *Panel) Root() *Element { return p.root }

// Size returns the panel size.
func (p *Panel) Size() (width, height float32) { return p.width, p.height }

// Resize changes the panel size. The next Update lays out the tree again.
func (p *Panel) Resize(width, height float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, width, height)
	}
	p.width, p.height = width, height
	return nil
}

// Chain returns the panel's render chain.
func (p *Panel) Chain() *chain.RenderChain { return p.chain }

// Painter returns the panel's style painter.
func (p *Panel) Painter() *painter.StylePainter { return p.painter }

// Registry returns the registry of directly bound textures.
func (p *Panel) Registry() *atlas.TextureRegistry { return p.registry }

// Stats returns the statistics of the last completed frame.
func (p *Panel) Stats() FrameStats { return p.stats }

// LayoutState returns the phase of the panel's layout updater.
func (p *Panel) LayoutState() LayoutState { return p.updater.State() }

// DetermineClipMethod returns how e clips its overflow under the panel's
// policy. The automatic policy uses stencil masks only where a scissor
// cannot follow the clip shape: rounded corners and rotated or skewed
// transforms.
func (p *Panel) DetermineClipMethod(e *Element) uipaint.ClipMethod {
	switch p.opts.clipPolicy {
	case uipaint.ClipPolicyScissor:
		return uipaint.ClipScissor
	case uipaint.ClipPolicyStencil:
		return uipaint.ClipStencil
	}
	if !e.style.BorderRadius.IsZero() || e.rotated {
		return uipaint.ClipStencil
	}
	return uipaint.ClipScissor
}

// Update produces one frame: it lays out the tree, repaints changed
// elements, translates the displayed tree into commands and executes them
// on the backend, if any.
//
// A tree mutation during layout or inside an immediate callback aborts the
// frame; the returned error then wraps the *MutationError.
func (p *Panel) Update(ctx context.Context) (err error) {
	if p.closed {
		return ErrPanelClosed
	}
	p.frame++
	stats := FrameStats{Frame: p.frame}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		me, ok := r.(*MutationError)
		if !ok {
			panic(r)
		}
		p.inCallback = false
		p.painter.Reset()
		p.chain.Abort()
		err = fmt.Errorf("ui: frame %d aborted: %w", p.frame, me)
	}()

	if p.pool != nil {
		stats.Shaped = p.shapeText()
	}
	stats.LayoutChanges = p.updater.Update(p.root, p.width, p.height)
	stats.LayoutPasses = p.updater.Passes()

	stats.Repainted = p.repaint(p.root, nil, painter.RootContext)
	p.painter.EndFrame()

	p.chain.BeginFrame(geom.R(0, 0, p.width, p.height))
	p.traverse(p.root)
	f := p.chain.EndFrame()
	defer p.chain.Release(f)

	stats.Stats = f.Stats
	p.stats = stats

	if b := p.opts.backend; b != nil {
		if err := b.Execute(ctx, f); err != nil {
			return fmt.Errorf("ui: execute frame %d on %s: %w", p.frame, b.Name(), err)
		}
	}
	return nil
}

// shapeText builds the missing text layouts of displayed elements on the
// worker pool. Results are stored on the calling goroutine.
func (p *Panel) shapeText() int {
	var pending []*Element
	var walk func(e *Element)
	walk = func(e *Element) {
		if e.style.Display == style.DisplayNone {
			return
		}
		if e.text != "" && e.textLayout == nil {
			pending = append(pending, e)
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(p.root)
	if len(pending) == 0 {
		return 0
	}

	layouts := make([]*text.Layout, len(pending))
	errs := make([]error, len(pending))
	work := make([]func(), len(pending))
	for i, e := range pending {
		str, font, size, fallback := e.text, e.style.Font, e.style.FontSize, e.style.Fallback
		work[i] = func() {
			layouts[i], errs[i] = p.shaper.Shape(str, font, size, fallback)
		}
	}
	p.pool.ExecuteAll(work)

	n := 0
	for i, e := range pending {
		if errs[i] != nil {
			uipaint.Logger().Warn("ui: shaping failed", "element", e.name, "err", errs[i])
			continue
		}
		e.textLayout = layouts[i]
		n++
	}
	return n
}

// repaint updates transforms and regenerates the entries of elements that
// changed or whose inherited paint state changed. It returns the number of
// elements painted.
func (p *Panel) repaint(e, parent *Element, ctx painter.PaintContext) int {
	if !e.displayed {
		return 0
	}
	e.updateTransform(parent)

	n := 0
	if e.changes.Has(ChangeRepaint) || !e.painted || ctx != e.paintCtx {
		res := p.painter.Paint(e, ctx)
		p.chain.Update(e, res)
		p.painter.Reset()
		e.paintCtx, e.painted = ctx, true
		n++
	}
	e.changes = 0

	children, _ := p.chain.ChildContext(e)
	for _, c := range e.children {
		n += p.repaint(c, e, children)
	}
	return n
}

// traverse walks the displayed tree through the render chain.
func (p *Panel) traverse(e *Element) {
	if !e.displayed {
		return
	}
	p.chain.Enter(e)
	for _, c := range e.children {
		p.traverse(c)
	}
	p.chain.Leave(e)
}

func (p *Panel) guardCallback(run func()) {
	p.inCallback = true
	defer func() { p.inCallback = false }()
	run()
}

// checkMutation panics when the tree may not change.
func (p *Panel) checkMutation(e *Element, op string) {
	var cause error
	switch {
	case p.updater.State() == StateComputingLayout:
		cause = ErrTreeMutationDuringLayout
	case p.inCallback:
		cause = ErrTreeMutationDuringCallback
	default:
		return
	}
	err := &MutationError{Element: e.name, Op: op, Err: cause}
	uipaint.Logger().Error("ui: forbidden tree mutation", "element", e.name, "op", op, "err", cause)
	panic(err)
}

// Close releases the panel's elements and closes the backend.
// Close is idempotent.
func (p *Panel) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.root.detach()
	if p.pool != nil {
		p.pool.Close()
	}
	if b := p.opts.backend; b != nil {
		return b.Close()
	}
	return nil
}
