// Package painter turns visual elements into draw entries.
//
// A StylePainter paints one element at a time. Begin inherits the stencil
// and clip state from the parent's PaintContext; draw calls append Entries
// stamped with that state; ApplyVisualElementClipping narrows it for the
// element's content and children; End validates the geometry and returns the
// entries together with the ClosingInfo the render chain runs after the
// element's children.
//
// All geometry is emitted in clockwise winding. The render chain flips it
// when an entry's mask depth runs ahead of its stencil reference.
package painter
