package text

import "github.com/gogpu/uipaint/gfx"

// SpriteAsset maps runes to sprites, for icons and emoji the font lacks.
// Sprites are drawn one em tall and keep their aspect ratio.
type SpriteAsset struct {
	Name    string
	sprites map[rune]*gfx.Sprite
}

// NewSpriteAsset creates an empty sprite asset.
func NewSpriteAsset(name string) *SpriteAsset {
	return &SpriteAsset{Name: name, sprites: make(map[rune]*gfx.Sprite)}
}

// Add maps r to s.
func (a *SpriteAsset) Add(r rune, s *gfx.Sprite) {
	a.sprites[r] = s
}

// Lookup returns the sprite for r.
func (a *SpriteAsset) Lookup(r rune) (*gfx.Sprite, bool) {
	if a == nil {
		return nil, false
	}
	s, ok := a.sprites[r]
	return s, ok && s != nil && s.Texture != nil
}
