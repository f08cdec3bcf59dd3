// Package uipaint turns a retained tree of UI elements into an ordered,
// batched stream of GPU draw commands.
//
// # Overview
//
// uipaint is the painting half of a retained-mode UI toolkit. Every frame it
// recomputes element rectangles, repaints only the elements whose geometry or
// style changed, and translates the resulting geometry into a bounded command
// stream that a GPU backend can execute in order.
//
// # Architecture
//
// The module is organized leaf-first:
//   - mesh: vertex/index types, the per-frame geometry pool, mesh write
//     cursors and winding helpers
//   - layout: a small constraint solver with dirty and has-new-layout flags
//   - style, gfx: computed element style and read-only resource handles
//   - atlas: dynamic texture atlas and the texture id registry
//   - text: shaping into per-material glyph meshes (go-text/typesetting)
//   - painter: the style painter producing draw entries and closing info
//   - chain: the render chain translating entries into commands
//   - ui: elements, the layout updater and the per-frame Panel
//   - backend/wgpu, backend/trace: command executors
//
// # Clipping
//
// Elements with hidden overflow clip their descendants either with a scissor
// rectangle or with a stencil mask. Stencil masks nest up to [MaxMaskDepth]
// levels. Geometry is always generated clockwise; the render chain flips
// winding only when an entry is drawn inside a mask whose stencil reference
// lags its mask depth.
//
// # Coordinate System
//
// Origin (0,0) at the top-left, X increases right, Y increases down.
// A triangle is clockwise when the cross product of its edge vectors is
// positive in this convention.
package uipaint

// Version information
const (
	// Version is the current version of the module.
	Version = "0.3.0"

	// VersionMajor is the major version.
	VersionMajor = 0

	// VersionMinor is the minor version.
	VersionMinor = 3

	// VersionPatch is the patch version.
	VersionPatch = 0
)
