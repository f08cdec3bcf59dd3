// Package layout is a small constraint solver for element boxes.
//
// Nodes stack their flow children in a row or a column; sizes are fixed,
// relative to the parent, automatic (content sized, or stretched across a
// column), or measured by a callback. Absolute nodes are placed inside the
// parent's padding box. Grow, shrink, wrapping and cross-axis alignment are
// not supported.
//
// A node is dirty after any change that can affect layout; dirtiness
// propagates to the root. CalculateLayout clears it and sets HasNewLayout on
// every node whose box changed or that lies on a path to such a node.
package layout

import (
	"slices"

	"github.com/gogpu/uipaint/geom"
)

// MeasureFunc returns the content size of a leaf node given the width
// available to its content. A negative width means unconstrained.
type MeasureFunc func(availableWidth float32) (width, height float32)

// Node is one box of the layout tree. Nodes are not safe for concurrent use.
type Node struct {
	style    Style
	parent   *Node
	children []*Node
	measure  MeasureFunc

	rect         geom.Rect
	dirty        bool
	hasNewLayout bool

	lastWidth, lastHeight float32
}

// NewNode creates a dirty node with the given style.
func NewNode(s Style) *Node {
	return &Node{style: s, dirty: true}
}

// Style returns the node style.
func (n *Node) Style() Style { return n.style }

// SetStyle replaces the node style and marks it dirty.
func (n *Node) SetStyle(s Style) {
	if s == n.style {
		return
	}
	n.style = s
	n.MarkDirty()
}

// SetMeasureFunc sets or clears the measure callback of a leaf.
func (n *Node) SetMeasureFunc(f MeasureFunc) {
	n.measure = f
	n.MarkDirty()
}

// IsMeasureDefined reports whether the node has a measure callback.
func (n *Node) IsMeasureDefined() bool { return n.measure != nil }

// MarkDirty flags the node and its ancestors for re-layout.
func (n *Node) MarkDirty() {
	for p := n; p != nil && !p.dirty; p = p.parent {
		p.dirty = true
	}
}

// IsDirty reports whether the node needs layout.
func (n *Node) IsDirty() bool { return n.dirty }

// HasNewLayout reports whether the last CalculateLayout changed this node's
// box or a descendant's.
func (n *Node) HasNewLayout() bool { return n.hasNewLayout }

// MarkLayoutSeen clears HasNewLayout.
func (n *Node) MarkLayoutSeen() { n.hasNewLayout = false }

// Layout returns the border box relative to the parent's border box.
func (n *Node) Layout() geom.Rect { return n.rect }

// PaddingRect returns the padding box (the border box minus borders)
// relative to the parent's border box.
func (n *Node) PaddingRect() geom.Rect {
	return n.rect.Inset(n.style.Border)
}

// ContentRect returns the content box relative to the node's own border box.
func (n *Node) ContentRect() geom.Rect {
	r := geom.R(0, 0, n.rect.W, n.rect.H)
	return r.Inset(n.style.Border.Add(n.style.Padding))
}

// Parent returns the parent node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Insert adds child at index i, detaching it from any previous parent.
func (n *Node) Insert(i int, child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	i = min(max(i, 0), len(n.children))
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	child.MarkDirty()
	n.MarkDirty()
}

// Append adds child as the last child.
func (n *Node) Append(child *Node) { n.Insert(len(n.children), child) }

// Remove detaches child. It reports whether child was a child of n.
func (n *Node) Remove(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	n.MarkDirty()
	return true
}

// RemoveAll detaches every child.
func (n *Node) RemoveAll() {
	if len(n.children) == 0 {
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	n.MarkDirty()
}
