package chain

import (
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/painter"
)

type clipRect struct {
	owner  painter.Visual
	parent painter.ClipRectID
	rect   geom.Rect

	// resolved is valid when stamp equals the chain's frame.
	resolved geom.Rect
	stamp    uint64
}

// clipTable stores clip rectangles by handle. Handle 0 is the infinite
// rectangle; an owner keeps its handle until it is removed.
type clipTable struct {
	rects   []clipRect
	byOwner map[painter.Visual]painter.ClipRectID
	free    []painter.ClipRectID
}

func newClipTable() clipTable {
	return clipTable{
		rects:   make([]clipRect, 1),
		byOwner: make(map[painter.Visual]painter.ClipRectID),
	}
}

func (t *clipTable) register(owner painter.Visual, parent painter.ClipRectID, r geom.Rect) painter.ClipRectID {
	id, ok := t.byOwner[owner]
	if !ok {
		if n := len(t.free); n > 0 {
			id = t.free[n-1]
			t.free = t.free[:n-1]
		} else {
			id = painter.ClipRectID(len(t.rects))
			t.rects = append(t.rects, clipRect{})
		}
		t.byOwner[owner] = id
	}
	t.rects[id] = clipRect{owner: owner, parent: parent, rect: r}
	return id
}

func (t *clipTable) remove(owner painter.Visual) {
	id, ok := t.byOwner[owner]
	if !ok {
		return
	}
	delete(t.byOwner, owner)
	t.rects[id] = clipRect{}
	t.free = append(t.free, id)
}

// resolve returns the clip rectangle of id in the space of its transform
// group: the owner's rectangle intersected with every ancestor clip.
func (t *clipTable) resolve(id painter.ClipRectID, frame uint64) geom.Rect {
	if id == painter.InfiniteClipRect || int(id) >= len(t.rects) {
		return geom.Infinite
	}
	c := &t.rects[id]
	if c.owner == nil {
		return geom.Infinite
	}
	if c.stamp == frame {
		return c.resolved
	}
	r := geom.TransformRect(c.owner.Transform(), c.rect)
	if c.parent != id {
		r = r.Intersect(t.resolve(c.parent, frame))
	}
	c.resolved, c.stamp = r, frame
	return r
}

func (t *clipTable) len() int { return len(t.byOwner) }
