// Package chain turns painter entries into an ordered, batched command
// stream for a backend.
//
// A RenderChain retains a copy of every painted element's entries. Each
// frame the caller walks the element tree, calling Enter before an
// element's children and Leave after them; the chain emits the element's
// entries on Enter and its closing commands on Leave. Geometry is
// transformed to screen space, triangle winding is resolved from each
// entry's mask depth and stencil reference, and consecutive compatible
// draws are merged into one command.
//
// Backends execute the resulting Frame. They register by name:
//
//	func init() {
//	    chain.Register("trace", func() (chain.Backend, error) { return New(os.Stdout), nil })
//	}
package chain
