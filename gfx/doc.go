// Package gfx defines the drawable resources referenced by computed style:
// textures, render textures, sprites, vector images and materials.
//
// Resources are plain values owned by the application. The painter and the
// render chain only read them and key GPU residency on Texture.Key.
package gfx
