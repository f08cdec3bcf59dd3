package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
)

func solidTexture(name string, w, h int, c color.RGBA) *gfx.Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return gfx.NewTexture(name, img)
}

func TestDynamicAtlasAddRemapsUV(t *testing.T) {
	a := New(nil, WithSize(256), WithPadding(0))
	red := solidTexture("red", 64, 32, color.RGBA{R: 255, A: 255})

	p, err := a.Add(red)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := geom.R(0, 0, 0.25, 0.125)
	if !p.UVRect.ApproxEqual(want, 1e-6) {
		t.Errorf("UVRect = %v, want %v", p.UVRect, want)
	}
	u, v := p.RemapUV(1, 1)
	if u != 0.25 || v != 0.125 {
		t.Errorf("RemapUV(1,1) = %v,%v", u, v)
	}
	if got := p.Page.img.RGBAAt(10, 10); got.R != 255 {
		t.Errorf("page pixel = %v, want red", got)
	}
	if tex, ok := a.Registry().Lookup(p.Page.ID()); !ok || tex != p.Page.Texture() {
		t.Error("page texture not registered")
	}
}

func TestDynamicAtlasMisses(t *testing.T) {
	a := New(nil, WithSize(128), WithMaxEntrySize(32))
	tests := []struct {
		name string
		tex  *gfx.Texture
		want error
	}{
		{"render texture", gfx.NewRenderTexture("rt", 16, 16), ErrNotPackable},
		{"too large", solidTexture("big", 64, 8, color.RGBA{A: 255}), ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Add(tt.tex); !errors.Is(err, tt.want) {
				t.Errorf("Add err = %v, want %v", err, tt.want)
			}
			if _, ok := a.TryAdd(tt.tex); ok {
				t.Error("TryAdd reported a hit")
			}
		})
	}
}

func TestDynamicAtlasRefCounting(t *testing.T) {
	a := New(nil, WithSize(128))
	tex := solidTexture("t", 8, 8, color.RGBA{G: 255, A: 255})

	p1, _ := a.TryAdd(tex)
	p2, _ := a.TryAdd(tex)
	if p1.Region != p2.Region {
		t.Fatalf("second add moved the texture: %v vs %v", p1.Region, p2.Region)
	}
	a.Remove(tex)
	if _, ok := a.Lookup(tex); !ok {
		t.Fatal("texture dropped while still referenced")
	}
	a.Remove(tex)
	if _, ok := a.Lookup(tex); ok {
		t.Fatal("texture kept after last reference")
	}
}

func TestDynamicAtlasGrowsPages(t *testing.T) {
	a := New(nil, WithSize(64), WithPadding(0), WithMaxEntrySize(64), WithMaxPages(2))
	for i := range 2 {
		if _, err := a.Add(solidTexture("full", 64, 64, color.RGBA{A: 255})); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if n := len(a.Pages()); n != 2 {
		t.Fatalf("pages = %d, want 2", n)
	}
	if _, err := a.Add(solidTexture("extra", 8, 8, color.RGBA{A: 255})); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("err = %v, want ErrAtlasFull", err)
	}
	a.Reset()
	if _, err := a.Add(solidTexture("after", 8, 8, color.RGBA{A: 255})); err != nil {
		t.Errorf("after Reset: %v", err)
	}
	if n := len(a.Pages()); n != 2 {
		t.Errorf("Reset changed page count to %d", n)
	}
}

func TestDynamicAtlasReuploadsModifiedTexture(t *testing.T) {
	a := New(nil, WithSize(64))
	tex := solidTexture("t", 4, 4, color.RGBA{R: 255, A: 255})
	p, _ := a.Add(tex)
	before := p.Page.Texture().Version()

	img := tex.Image().(*image.RGBA)
	img.SetRGBA(0, 0, color.RGBA{B: 255, A: 255})
	tex.MarkModified()
	p, _ = a.Add(tex)

	if got := p.Page.img.RGBAAt(p.Region.X, p.Region.Y); got.B != 255 {
		t.Errorf("modified pixel not re-blitted: %v", got)
	}
	if p.Page.Texture().Version() == before {
		t.Error("page version not bumped")
	}
}
