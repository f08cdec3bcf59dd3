// Package atlas packs small textures into shared pages and hands out stable
// ids for textures that are bound directly.
//
// DynamicAtlas reduces texture switches between draws: a texture that fits is
// copied into a page and addressed through a UV sub-rectangle. Textures that
// do not fit are registered in a TextureRegistry instead. Both paths produce
// a gfx.TextureID the render chain can bind.
package atlas
