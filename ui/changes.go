package ui

import (
	"strings"

	"github.com/gogpu/uipaint/geom"
)

// ChangeType is a set of pending updates on an element.
type ChangeType uint8

const (
	// ChangeSize means the border or padding box changed size.
	ChangeSize ChangeType = 1 << iota

	// ChangeRepaint means the element's entries must be regenerated.
	ChangeRepaint

	// ChangeTransform means the element moved within its parent.
	ChangeTransform

	// ChangeHierarchyDisplay means the element was shown or hidden by itself
	// or an ancestor.
	ChangeHierarchyDisplay
)

var changeNames = [...]string{"Size", "Repaint", "Transform", "HierarchyDisplay"}

// Has reports whether every change in o is set.
func (c ChangeType) Has(o ChangeType) bool { return c&o == o }

// String returns the set changes joined by '|'.
func (c ChangeType) String() string {
	if c == 0 {
		return "None"
	}
	var b strings.Builder
	for i, name := range changeNames {
		if c&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
	}
	return b.String()
}

// GeometryChangedEvent is delivered to an element's geometry handler when
// its border box moved or resized during layout.
type GeometryChangedEvent struct {
	Element *Element

	// Old and New are border boxes relative to the parent.
	Old, New geom.Rect

	// Pass is the solver pass that produced New, starting at 0.
	Pass int
}

// FocusController decides which element may hold keyboard focus. It is
// consulted once per frame after layout settles, since display and
// visibility changes can make the focused element unreachable.
type FocusController interface {
	ReevaluateFocus(root *Element)
}
