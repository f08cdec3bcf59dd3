package ui

import (
	"strings"
	"testing"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/layout"
	"github.com/gogpu/uipaint/style"
)

func TestElementTree(t *testing.T) {
	root := NewElement("root")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	root.Add(a)
	root.Add(c)
	root.Insert(1, b)

	if got := root.Children(); len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("children = %v", got)
	}
	for i, n := range root.node.Children() {
		if n != root.children[i].node {
			t.Errorf("layout node %d out of sync", i)
		}
	}

	// Reparenting detaches from the old parent.
	a.Add(c)
	if root.ChildCount() != 2 || c.Parent() != a || a.node.ChildCount() != 1 {
		t.Errorf("reparent: root has %d children, c parent %v", root.ChildCount(), c.Parent())
	}

	if root.Remove(c) {
		t.Error("Remove of a grandchild reported true")
	}
	root.Clear()
	if root.ChildCount() != 0 || root.node.ChildCount() != 0 || a.Parent() != nil {
		t.Error("Clear left children")
	}
}

func TestInsertAncestorRefused(t *testing.T) {
	buf := captureLogs(t)
	root := NewElement("root")
	a, b := NewElement("a"), NewElement("b")
	root.Add(a)
	a.Add(b)

	tests := []struct {
		name          string
		parent, child *Element
	}{
		{"self", b, b},
		{"parent", b, a},
		{"grandparent", b, root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.parent.Add(tt.child)
			if tt.child.Parent() == tt.parent {
				t.Errorf("%s became a child of %s", tt.child.Name(), tt.parent.Name())
			}
		})
	}
	if root.Parent() != nil || a.Parent() != root || b.Parent() != a {
		t.Errorf("tree changed: root.parent=%v a.parent=%v b.parent=%v", root.Parent(), a.Parent(), b.Parent())
	}
	if b.ChildCount() != 0 || b.node.ChildCount() != 0 {
		t.Errorf("b children = %d, nodes = %d, want 0", b.ChildCount(), b.node.ChildCount())
	}
	if n := strings.Count(buf.String(), "refused to insert an ancestor"); n != 3 {
		t.Errorf("refusals logged = %d, want 3:\n%s", n, buf)
	}

	// Moving a sibling subtree is still allowed.
	c := NewElement("c")
	root.Add(c)
	b.Add(c)
	if c.Parent() != b || root.ChildCount() != 1 {
		t.Errorf("move: c.parent=%v root children=%d", c.Parent(), root.ChildCount())
	}
}

func TestStyleSyncsLayoutNode(t *testing.T) {
	e := NewElement("e")
	e.SetLayoutStyle(layout.Style{Width: layout.Px(10), Border: geom.Uniform(9)})
	if got := e.LayoutStyle().Border; !got.IsZero() {
		t.Errorf("layout border = %v, want the computed style's", got)
	}

	s := e.Style()
	s.BorderWidth = geom.Uniform(2)
	s.Display = style.DisplayNone
	e.SetStyle(s)
	ls := e.LayoutStyle()
	if ls.Border != geom.Uniform(2) || !ls.DisplayNone || ls.Width != layout.Px(10) {
		t.Errorf("layout style = %+v", ls)
	}
}

func TestRenderTargetStartsGroup(t *testing.T) {
	e := NewElement("e")
	if e.IsGroupTransform() {
		t.Fatal("plain element starts a group")
	}
	e.SetRenderTarget(gfx.NewRenderTexture("rt", 8, 8))
	if !e.IsGroupTransform() {
		t.Error("render target element does not start a group")
	}
}
