package layout

import "github.com/gogpu/uipaint/geom"

// CalculateLayout lays out the tree rooted at n inside width x height.
// A negative height leaves the root's automatic height content sized.
// Clean trees laid out at the same size are not recomputed.
func (n *Node) CalculateLayout(width, height float32) {
	if !n.dirty && width == n.lastWidth && height == n.lastHeight {
		return
	}
	n.lastWidth, n.lastHeight = width, height

	if n.style.DisplayNone {
		n.hide()
		return
	}
	w, h := n.size(width, height, Column, true)
	n.setRect(geom.R(n.style.Margin.Left, n.style.Margin.Top, w, h))
	n.layoutChildren()
	n.dirty = false
}

// size resolves the border box size of n. availW and availH are the
// containing block's content size; availH < 0 is indefinite.
func (n *Node) size(availW, availH float32, parentDir Direction, root bool) (w, h float32) {
	s := &n.style
	frame := s.Border.Add(s.Padding)
	fw, fh := frame.Left+frame.Right, frame.Top+frame.Bottom

	w, wok := s.Width.resolve(availW)
	if !wok {
		switch {
		case n.measure != nil && (parentDir == Row || s.Position == Absolute):
			mw, _ := n.measure(-1)
			w = mw + fw
		case parentDir == Row || s.Position == Absolute:
			w = n.intrinsicWidth()
		default:
			w = max(0, availW-s.Margin.Left-s.Margin.Right)
			if root {
				w = max(0, availW)
			}
		}
	}

	h, hok := s.Height.resolve(availH)
	if !hok {
		if root && availH >= 0 {
			h = availH
		} else if n.measure != nil {
			_, mh := n.measure(max(0, w-fw))
			h = mh + fh
		} else {
			h = n.contentHeight(w-fw) + fh
		}
	}
	return max(0, w), max(0, h)
}

// intrinsicWidth is the border box width of n sized to its content.
func (n *Node) intrinsicWidth() float32 {
	s := &n.style
	frame := s.Border.Add(s.Padding)
	fw := frame.Left + frame.Right
	if w, ok := s.Width.resolve(-1); ok {
		return w
	}
	if n.measure != nil {
		mw, _ := n.measure(-1)
		return mw + fw
	}
	var content float32
	flow := 0
	for _, c := range n.children {
		if c.style.DisplayNone || c.style.Position == Absolute {
			continue
		}
		cw := c.intrinsicWidth() + c.style.Margin.Left + c.style.Margin.Right
		if s.Direction == Row {
			content += cw
		} else {
			content = max(content, cw)
		}
		flow++
	}
	if s.Direction == Row && flow > 1 {
		content += s.Gap * float32(flow-1)
	}
	return content + fw
}

// contentHeight is the height of n's flow children stacked in n's
// direction inside a content box contentW wide.
func (n *Node) contentHeight(contentW float32) float32 {
	s := &n.style
	var total float32
	flow := 0
	for _, c := range n.children {
		if c.style.DisplayNone || c.style.Position == Absolute {
			continue
		}
		_, ch := c.size(contentW, -1, s.Direction, false)
		ch += c.style.Margin.Top + c.style.Margin.Bottom
		if s.Direction == Row {
			total = max(total, ch)
		} else {
			total += ch
		}
		flow++
	}
	if s.Direction == Column && flow > 1 {
		total += s.Gap * float32(flow-1)
	}
	return total
}

// layoutChildren sizes and places the children of n, whose rect is final.
func (n *Node) layoutChildren() {
	s := &n.style
	content := n.ContentRect()
	padding := geom.R(0, 0, n.rect.W, n.rect.H).Inset(s.Border)

	availH := content.H
	if s.Height.IsAuto() && n.measure == nil && n.parent != nil {
		availH = -1
	}

	cursor := float32(0)
	for _, c := range n.children {
		cs := &c.style
		switch {
		case cs.DisplayNone:
			c.hide()
			continue
		case cs.Position == Absolute:
			w, h := c.size(padding.W, padding.H, s.Direction, false)
			x, _ := cs.Left.resolve(padding.W)
			y, _ := cs.Top.resolve(padding.H)
			c.place(geom.R(padding.X+x+cs.Margin.Left, padding.Y+y+cs.Margin.Top, w, h))
			continue
		}

		w, h := c.size(content.W, availH, s.Direction, false)
		dx, _ := cs.Left.resolve(content.W)
		dy, _ := cs.Top.resolve(content.H)
		var r geom.Rect
		if s.Direction == Row {
			r = geom.R(content.X+cursor+cs.Margin.Left+dx, content.Y+cs.Margin.Top+dy, w, h)
			cursor += cs.Margin.Left + w + cs.Margin.Right + s.Gap
		} else {
			r = geom.R(content.X+cs.Margin.Left+dx, content.Y+cursor+cs.Margin.Top+dy, w, h)
			cursor += cs.Margin.Top + h + cs.Margin.Bottom + s.Gap
		}
		c.place(r)
	}

	for _, c := range n.children {
		if c.hasNewLayout {
			n.hasNewLayout = true
			break
		}
	}
}

// place sets the final rect of n and lays out its subtree.
func (n *Node) place(r geom.Rect) {
	n.setRect(r)
	n.layoutChildren()
	n.dirty = false
}

func (n *Node) setRect(r geom.Rect) {
	if n.dirty || r != n.rect {
		n.hasNewLayout = true
	}
	n.rect = r
}

// hide collapses a display:none subtree to empty boxes.
func (n *Node) hide() {
	n.setRect(geom.Rect{})
	for _, c := range n.children {
		c.hide()
	}
	n.dirty = false
}
