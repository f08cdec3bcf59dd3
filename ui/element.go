package ui

import (
	"slices"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/layout"
	"github.com/gogpu/uipaint/painter"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

// ContentFunc draws custom content after an element's background, border
// and text.
type ContentFunc func(p *painter.StylePainter)

// Element is a node of the retained tree. It implements painter.Visual.
//
// Elements are not safe for concurrent use.
type Element struct {
	name     string
	panel    *Panel
	parent   *Element
	children []*Element
	node     *layout.Node

	style      style.Style
	text       string
	textLayout *text.Layout
	content    ContentFunc
	onGeometry func(GeometryChangedEvent)

	group  bool
	local  f32.Aff3
	target *gfx.Texture

	// Results of the last layout, relative to the parent's border box.
	layoutRect  geom.Rect
	paddingRect geom.Rect
	displayed   bool
	changes     ChangeType

	// transform maps local coordinates into the enclosing group; view maps
	// the group started by this element into the parent group.
	transform f32.Aff3
	view      f32.Aff3
	rotated   bool

	paintCtx painter.PaintContext
	painted  bool
}

// NewElement creates a detached element.
func NewElement(name string) *Element {
	e := &Element{
		name:      name,
		node:      layout.NewNode(layout.Style{}),
		style:     style.Default(),
		local:     geom.Identity,
		transform: geom.Identity,
		view:      geom.Identity,
		changes:   ChangeRepaint,
	}
	return e
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

// String returns the element name.
func (e *Element) String() string { return e.name }

// Panel returns the panel the element is attached to, or nil.
func (e *Element) Panel() *Panel { return e.panel }

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements. The slice must not be modified.
func (e *Element) Children() []*Element { return e.children }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// Add appends child, detaching it from its previous parent.
func (e *Element) Add(child *Element) { e.Insert(len(e.children), child) }

// Insert adds child at index i, detaching it from its previous parent.
// Inserting e or one of its ancestors is refused and logged.
func (e *Element) Insert(i int, child *Element) {
	e.checkMutation("Insert")
	child.checkMutation("Insert")
	if e.hasAncestor(child) {
		uipaint.Logger().Error("ui: refused to insert an ancestor", "parent", e.name, "child", child.name)
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	i = min(max(i, 0), len(e.children))
	e.children = slices.Insert(e.children, i, child)
	child.parent = e
	e.node.Insert(i, child.node)
	if e.panel != nil {
		child.attach(e.panel)
	}
}

// hasAncestor reports whether a is e or one of its ancestors.
func (e *Element) hasAncestor(a *Element) bool {
	for p := e; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// Remove detaches child. It reports whether child was a child of e.
func (e *Element) Remove(child *Element) bool {
	e.checkMutation("Remove")
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	e.node.Remove(child.node)
	child.parent = nil
	child.detach()
	return true
}

// Clear detaches every child.
func (e *Element) Clear() {
	e.checkMutation("Clear")
	for _, c := range e.children {
		c.parent = nil
		c.detach()
	}
	e.children = e.children[:0]
	e.node.RemoveAll()
}

func (e *Element) attach(p *Panel) {
	e.panel = p
	e.changes |= ChangeRepaint
	e.painted = false
	for _, c := range e.children {
		c.attach(p)
	}
}

func (e *Element) detach() {
	if e.panel != nil {
		e.panel.chain.Remove(e)
	}
	e.panel = nil
	e.painted = false
	e.displayed = false
	for _, c := range e.children {
		c.detach()
	}
}

func (e *Element) checkMutation(op string) {
	if e.panel != nil {
		e.panel.checkMutation(e, op)
	}
}

// Style returns a copy of the element's computed style.
func (e *Element) Style() style.Style { return e.style }

// SetStyle replaces the computed style. Border widths and display also
// update the layout node.
func (e *Element) SetStyle(s style.Style) {
	e.checkMutation("SetStyle")
	if s.Font != e.style.Font || s.FontSize != e.style.FontSize || s.Fallback != e.style.Fallback {
		e.textLayout = nil
		if e.text != "" {
			e.node.MarkDirty()
		}
	}
	e.style = s
	e.changes |= ChangeRepaint
	e.syncNode(e.node.Style())
}

// LayoutStyle returns the layout input of the element.
func (e *Element) LayoutStyle() layout.Style { return e.node.Style() }

// SetLayoutStyle replaces the layout input. Border and DisplayNone are
// taken from the computed style.
func (e *Element) SetLayoutStyle(ls layout.Style) {
	e.checkMutation("SetLayoutStyle")
	e.syncNode(ls)
}

func (e *Element) syncNode(ls layout.Style) {
	ls.Border = e.style.BorderWidth
	ls.DisplayNone = e.style.Display == style.DisplayNone
	e.node.SetStyle(ls)
}

// Text returns the element's text.
func (e *Element) Text() string { return e.text }

// SetText sets the text drawn in the content box. Text elements are sized
// by their shaped extent unless the layout style fixes their size.
func (e *Element) SetText(s string) {
	e.checkMutation("SetText")
	if s == e.text {
		return
	}
	e.text = s
	e.textLayout = nil
	e.changes |= ChangeRepaint
	if s == "" {
		e.node.SetMeasureFunc(nil)
		return
	}
	e.node.SetMeasureFunc(e.measure)
}

func (e *Element) measure(float32) (float32, float32) {
	l := e.TextLayout()
	if l == nil {
		return 0, 0
	}
	return l.Size()
}

// SetTransform sets a transform applied in local coordinates after layout
// placement. Transforms other than translations start a transform group.
func (e *Element) SetTransform(m f32.Aff3) {
	e.local = m
	e.changes |= ChangeTransform | ChangeRepaint
}

// SetGroupTransform forces the element to start a transform group.
func (e *Element) SetGroupTransform(group bool) {
	e.group = group
	e.changes |= ChangeTransform | ChangeRepaint
}

// SetRenderTarget renders the subtree into tex, which is then drawn in the
// element's place. Render target elements start a transform group.
func (e *Element) SetRenderTarget(tex *gfx.Texture) {
	e.target = tex
	e.changes |= ChangeRepaint
}

// SetContent sets the custom content function.
func (e *Element) SetContent(fn ContentFunc) {
	e.content = fn
	e.changes |= ChangeRepaint
}

// OnGeometryChanged sets the handler called when layout moves or resizes
// the element. Handlers may change styles; the layout is then solved again.
func (e *Element) OnGeometryChanged(fn func(GeometryChangedEvent)) {
	e.onGeometry = fn
}

// MarkDirtyRepaint schedules the element to be painted again.
func (e *Element) MarkDirtyRepaint() { e.changes |= ChangeRepaint }

// Changes returns the updates pending since the last paint.
func (e *Element) Changes() ChangeType { return e.changes }

// Layout returns the border box relative to the parent's border box.
func (e *Element) Layout() geom.Rect { return e.layoutRect }

// PaddingRect returns the padding box relative to the parent's border box.
func (e *Element) PaddingRect() geom.Rect { return e.paddingRect }

// IsHierarchyDisplayed reports whether the element and all its ancestors
// are displayed.
func (e *Element) IsHierarchyDisplayed() bool { return e.displayed }

// ComputedStyle implements painter.Visual.
func (e *Element) ComputedStyle() *style.Style { return &e.style }

// LocalRect implements painter.Visual.
func (e *Element) LocalRect() geom.Rect {
	return geom.R(0, 0, e.layoutRect.W, e.layoutRect.H)
}

// ContentRect implements painter.Visual.
func (e *Element) ContentRect() geom.Rect { return e.node.ContentRect() }

// Transform implements painter.Visual.
func (e *Element) Transform() f32.Aff3 { return e.transform }

// IsGroupTransform implements painter.Visual.
func (e *Element) IsGroupTransform() bool {
	return e.group || e.target != nil || !geom.IsTranslation(e.local)
}

// GroupTransform implements painter.Visual.
func (e *Element) GroupTransform() f32.Aff3 { return e.view }

// RenderTarget implements painter.Visual.
func (e *Element) RenderTarget() *gfx.Texture { return e.target }

// ClipMethod implements painter.Visual.
func (e *Element) ClipMethod() uipaint.ClipMethod {
	if e.panel == nil {
		return uipaint.ClipScissor
	}
	return e.panel.DetermineClipMethod(e)
}

// TextLayout implements painter.Visual. The text is shaped on first use
// with the panel's shaper.
func (e *Element) TextLayout() *text.Layout {
	if e.text == "" || e.panel == nil {
		return nil
	}
	if e.textLayout == nil {
		l, err := e.panel.shaper.Shape(e.text, e.style.Font, e.style.FontSize, e.style.Fallback)
		if err != nil {
			uipaint.Logger().Warn("ui: shaping failed", "element", e.name, "err", err)
			return nil
		}
		e.textLayout = l
	}
	return e.textLayout
}

// GenerateContent implements painter.ContentGenerator.
func (e *Element) GenerateContent(p *painter.StylePainter) {
	if e.content != nil {
		e.content(p)
	}
}

// updateTransform recomputes the element's transforms from its layout and
// its parent's transform. A moved group root is repainted since its view is
// part of its entries.
func (e *Element) updateTransform(parent *Element) {
	m := geom.Mul(geom.Translation(e.layoutRect.X, e.layoutRect.Y), e.local)
	e.rotated = !geom.IsAxisAligned(e.local)
	if parent != nil {
		m = geom.Mul(parent.transform, m)
		e.rotated = e.rotated || parent.rotated
	}
	if !e.IsGroupTransform() {
		e.transform = m
		return
	}
	e.transform = geom.Identity
	if m != e.view {
		e.view = m
		e.changes |= ChangeRepaint
	}
}
