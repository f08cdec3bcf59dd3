package ui

import (
	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/style"
)

// LayoutState is the phase of a LayoutUpdater.
type LayoutState uint8

const (
	// StateIdle means no layout work is in progress.
	StateIdle LayoutState = iota

	// StateComputingLayout means the solver is running. The element tree
	// must not be restructured.
	StateComputingLayout

	// StatePropagatingChanges means solved boxes are being compared with the
	// previous ones and geometry handlers are running.
	StatePropagatingChanges
)

// String returns the name of the state.
func (s LayoutState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateComputingLayout:
		return "ComputingLayout"
	case StatePropagatingChanges:
		return "PropagatingChanges"
	default:
		return "Unknown"
	}
}

// LayoutUpdater solves the layout of an element tree and turns changed boxes
// into element changes.
type LayoutUpdater struct {
	maxPasses int
	focus     FocusController
	state     LayoutState

	width, height float32
	passes        int
}

// NewLayoutUpdater creates an updater that re-runs the solver at most
// maxPasses times per Update. focus may be nil.
func NewLayoutUpdater(maxPasses int, focus FocusController) *LayoutUpdater {
	if maxPasses <= 0 {
		maxPasses = uipaint.DefaultMaxLayoutPasses
	}
	return &LayoutUpdater{maxPasses: maxPasses, focus: focus}
}

// State returns the current phase.
func (u *LayoutUpdater) State() LayoutState { return u.state }

// Passes returns the number of solver passes run by the last Update.
func (u *LayoutUpdater) Passes() int { return u.passes }

// Update lays out the tree rooted at root inside width x height and returns
// the number of elements that received changes.
//
// Geometry handlers may change styles, which dirties the layout again; the
// solver is then re-run, up to the pass limit. Clean subtrees are skipped.
func (u *LayoutUpdater) Update(root *Element, width, height float32) int {
	defer func() { u.state = StateIdle }()

	needed := root.node.IsDirty() || width != u.width || height != u.height
	u.width, u.height = width, height

	changed, pass := 0, 0
	for needed {
		if pass == u.maxPasses {
			uipaint.Logger().Error("ui: layout did not settle, using the last solution",
				"passes", pass, "root", root.name)
			break
		}
		u.state = StateComputingLayout
		root.node.CalculateLayout(width, height)

		u.state = StatePropagatingChanges
		changed += u.propagate(root, true, pass)
		pass++
		needed = root.node.IsDirty()
	}
	u.passes = pass

	if pass > 0 {
		u.state = StateIdle
		if u.focus != nil {
			u.focus.ReevaluateFocus(root)
		}
		uipaint.Logger().Debug("ui: layout", "passes", pass, "changed", changed)
	}
	return changed
}

// propagate compares the solved boxes of e with the stored ones and
// descends into children that have a new layout.
func (u *LayoutUpdater) propagate(e *Element, parentDisplayed bool, pass int) int {
	n := e.node
	eps := uipaint.Epsilon
	displayed := parentDisplayed && e.style.Display != style.DisplayNone

	var ch ChangeType
	if displayed != e.displayed {
		e.displayed = displayed
		ch |= ChangeHierarchyDisplay | ChangeRepaint
	}

	rect, pad := n.Layout(), n.PaddingRect()
	old := e.layoutRect
	if !rect.SameSize(old, eps) || !pad.SameSize(e.paddingRect, eps) {
		ch |= ChangeSize | ChangeRepaint
	}
	if !rect.SamePosition(old, eps) || !pad.SamePosition(e.paddingRect, eps) {
		ch |= ChangeTransform
	}
	geometryChanged := !rect.ApproxEqual(old, eps)
	e.layoutRect, e.paddingRect = rect, pad

	count := 0
	if ch != 0 {
		e.changes |= ch
		count++
	}
	if geometryChanged && e.onGeometry != nil {
		e.onGeometry(GeometryChangedEvent{Element: e, Old: old, New: rect, Pass: pass})
	}

	if n.HasNewLayout() || ch.Has(ChangeHierarchyDisplay) {
		for _, c := range e.children {
			count += u.propagate(c, displayed, pass)
		}
	}
	n.MarkLayoutSeen()
	return count
}
