// Package text shapes strings into positioned glyphs and groups the glyph
// quads by the texture they sample.
//
// Shaping uses HarfBuzz through go-text/typesetting after splitting the
// string into bidi runs. Outline glyphs are rendered once into signed
// distance field pages and scaled to any size. Runes the font cannot render
// can fall back to a SpriteAsset, in which case a single string produces
// several MeshInfo groups.
package text
