// Package ui holds the retained element tree and drives it through layout,
// painting and command translation once per frame.
//
// A Panel owns a root Element. Each call to Panel.Update runs the
// LayoutUpdater, repaints the elements whose size, style or inherited paint
// state changed, walks the displayed tree through the render chain and hands
// the resulting frame to the backend.
//
// The element tree must not be restructured while the layout solver runs or
// while an immediate callback executes. Doing so panics with a
// *MutationError, which Update turns into an error that aborts the frame.
package ui
