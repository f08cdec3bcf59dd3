package painter

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/mesh"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/text"
)

type testVisual struct {
	style   style.Style
	rect    geom.Rect
	content geom.Rect
	group   bool
	view    f32.Aff3
	target  *gfx.Texture
	clip    uipaint.ClipMethod
	layout  *text.Layout
}

func newVisual(r geom.Rect) *testVisual {
	return &testVisual{style: style.Default(), rect: r, content: r, clip: uipaint.ClipScissor}
}

func (v *testVisual) ComputedStyle() *style.Style { return &v.style }
func (v *testVisual) LocalRect() geom.Rect { return v.rect }
func (v *testVisual) ContentRect() geom.Rect { return v.content }
func (v *testVisual) Transform() f32.Aff3 { return geom.Identity }
func (v *testVisual) IsGroupTransform() bool { return v.group }
func (v *testVisual) GroupTransform() f32.Aff3 { return v.view }
func (v *testVisual) RenderTarget() *gfx.Texture { return v.target }
func (v *testVisual) ClipMethod() uipaint.ClipMethod { return v.clip }
func (v *testVisual) TextLayout() *text.Layout { return v.layout }

type textureUse struct {
	owner   Visual
	src     *gfx.Texture
	id      gfx.TextureID
	atlased bool
}

type testSink struct {
	uses []textureUse
}

func (s *testSink) AppendTexture(owner Visual, src *gfx.Texture, id gfx.TextureID, atlased bool) {
	s.uses = append(s.uses, textureUse{owner, src, id, atlased})
}

type clipRecord struct {
	parent ClipRectID
	rect   geom.Rect
}

type testClips struct {
	rects []clipRecord
}

func (c *testClips) RegisterClipRect(_ Visual, parent ClipRectID, r geom.Rect) ClipRectID {
	c.rects = append(c.rects, clipRecord{parent, r})
	return ClipRectID(100 + len(c.rects))
}

func newTestPainter(opts ...Option) (*StylePainter, *testSink, *testClips) {
	sink := &testSink{}
	clips := &testClips{}
	return New(sink, clips, opts...), sink, clips
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := uipaint.Logger()
	t.Cleanup(func() { uipaint.SetLogger(orig) })
	var buf bytes.Buffer
	uipaint.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func assertClockwise(t *testing.T, e *Entry) {
	t.Helper()
	for i := 0; i+2 < len(e.Indices); i += 3 {
		a, b, c := e.Vertices[e.Indices[i]], e.Vertices[e.Indices[i+1]], e.Vertices[e.Indices[i+2]]
		pa := f32.Vec2{a.Position[0], a.Position[1]}
		pb := f32.Vec2{b.Position[0], b.Position[1]}
		pc := f32.Vec2{c.Position[0], c.Position[1]}
		if geom.Cross(geom.Sub(pb, pa), geom.Sub(pc, pa)) < 0 {
			t.Fatalf("triangle %d of %v winds counter-clockwise", i/3, e)
		}
	}
}

func draws(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Type == EntryDraw {
			out = append(out, e)
		}
	}
	return out
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestPaintSolidBackground(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 100, 50))
	v.style.BackgroundColor = white

	res := p.Paint(v, PaintContext{ClipRect: 7})
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(res.Entries))
	}
	e := &res.Entries[0]
	if e.Type != EntryDraw || e.Flags != 0 || e.Texture != gfx.InvalidTextureID {
		t.Errorf("entry = %v, want untextured draw", e)
	}
	if len(e.Vertices) != 4 || len(e.Indices) != 6 {
		t.Errorf("geometry = %d/%d, want 4/6", len(e.Vertices), len(e.Indices))
	}
	if e.ClipRect != 7 || e.MaskDepth != 0 || e.StencilRef != 0 {
		t.Errorf("state = clip %d depth %d ref %d, want 7 0 0", e.ClipRect, e.MaskDepth, e.StencilRef)
	}
	for _, vx := range e.Vertices {
		if vx.Flags != mesh.FlagSolid || vx.Tint != white || vx.Position[2] != mesh.ContentPosZ {
			t.Errorf("vertex = %+v", vx)
		}
	}
	assertClockwise(t, e)
	if res.Closing.NeedsClosing {
		t.Error("plain element needs closing")
	}
	if res.Children != (PaintContext{ClipRect: 7}) {
		t.Errorf("children context = %+v", res.Children)
	}
}

func TestPaintBackgroundAndBorder(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 100, 50))
	v.style.BackgroundColor = white
	v.style.BorderWidth = geom.Uniform(2)
	v.style.BorderRadius = style.UniformRadii(8)
	v.style.BorderColor = style.BorderColors{Left: red, Top: green, Right: blue, Bottom: black}

	res := p.Paint(v, RootContext)
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	bg, border := &res.Entries[0], &res.Entries[1]
	if bg.Vertices[0].Tint != white {
		t.Errorf("first entry is not the background: %v", bg)
	}
	seen := map[color.NRGBA]bool{}
	for _, vx := range border.Vertices {
		seen[vx.Tint] = true
	}
	for _, c := range []color.NRGBA{red, green, blue, black} {
		if !seen[c] {
			t.Errorf("border misses edge color %v", c)
		}
	}
	assertClockwise(t, bg)
	assertClockwise(t, border)
}

func TestBorderSkipsInvisibleEdges(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 40, 40))
	p.Begin(v, RootContext)
	p.DrawBorder(BorderParams{
		Rect:   v.rect,
		Widths: geom.Insets{Top: 2, Bottom: 2},
		Colors: style.BorderColors{Top: red, Bottom: color.NRGBA{}, Left: blue, Right: blue},
	})
	res := p.End()
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(res.Entries))
	}
	// One straight strip of two points: 4 vertices, 6 indices.
	e := &res.Entries[0]
	if len(e.Vertices) != 4 || len(e.Indices) != 6 {
		t.Errorf("geometry = %d/%d, want 4/6", len(e.Vertices), len(e.Indices))
	}
	for _, vx := range e.Vertices {
		if vx.Tint != red {
			t.Errorf("tint = %v, want top edge color", vx.Tint)
		}
	}

	p.Reset()
	p.Begin(v, RootContext)
	p.DrawBorder(BorderParams{Rect: v.rect, Colors: style.UniformBorderColor(red)})
	if n := len(p.End().Entries); n != 0 {
		t.Errorf("zero-width border produced %d entries", n)
	}
}

func TestStencilClipRegistersMask(t *testing.T) {
	p, _, clips := newTestPainter()
	v := newVisual(geom.R(0, 0, 100, 50))
	v.style.BackgroundColor = white
	v.style.Overflow = style.OverflowHidden
	v.clip = uipaint.ClipStencil

	res := p.Paint(v, RootContext)
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	reg := &res.Entries[1]
	if !reg.Flags.Has(IsClipRegisterEntry) {
		t.Fatalf("second entry %v is not a clip register", reg)
	}
	if reg.MaskDepth != 0 || reg.StencilRef != 0 {
		t.Errorf("register state = depth %d ref %d, want 0 0", reg.MaskDepth, reg.StencilRef)
	}
	for _, vx := range reg.Vertices {
		if vx.Position[2] != mesh.MaskPosZ {
			t.Fatalf("register vertex z = %v, want mask plane", vx.Position[2])
		}
	}
	if res.Children.MaskDepth != 1 || res.Children.StencilRef != 0 {
		t.Errorf("children = %+v, want depth 1 ref 0", res.Children)
	}
	c := res.Closing
	if !c.NeedsClosing || c.ClipUnregister == nil || c.MaskStencilRef != 0 {
		t.Errorf("closing = %+v", c)
	}
	if len(clips.rects) != 1 || res.Children.ClipRect != 101 {
		t.Errorf("clip rects = %+v, children clip = %d", clips.rects, res.Children.ClipRect)
	}
}

func TestNestedStencilInvariant(t *testing.T) {
	logs := captureLogs(t)
	p, _, _ := newTestPainter()
	ctx := RootContext
	for level := range 10 {
		v := newVisual(geom.R(0, 0, 100, 100))
		v.style.Overflow = style.OverflowHidden
		v.style.BorderRadius = style.UniformRadii(10)
		v.clip = uipaint.ClipStencil

		res := p.Paint(v, ctx)
		for _, e := range res.Entries {
			if e.MaskDepth != e.StencilRef && e.MaskDepth != e.StencilRef+1 {
				t.Fatalf("level %d: entry depth %d ref %d", level, e.MaskDepth, e.StencilRef)
			}
		}
		ctx = res.Children
		if ctx.MaskDepth != ctx.StencilRef+1 {
			t.Fatalf("level %d: children depth %d ref %d", level, ctx.MaskDepth, ctx.StencilRef)
		}
		if ctx.MaskDepth > uipaint.MaxMaskDepth {
			t.Fatalf("level %d: depth %d exceeds limit", level, ctx.MaskDepth)
		}
		registered := len(draws(res.Entries)) == 1
		if wantRegister := level < uipaint.MaxMaskDepth; registered != wantRegister {
			t.Errorf("level %d: registered = %v, want %v", level, registered, wantRegister)
		}
		if registered && res.Closing.MaskStencilRef != ctx.StencilRef {
			t.Errorf("level %d: mask ref %d, want %d", level, res.Closing.MaskStencilRef, ctx.StencilRef)
		}
		p.Reset()
	}
	if !strings.Contains(logs.String(), "mask depth limit") {
		t.Error("mask overflow not logged")
	}
}

func TestStencilRefCatchesUpByOne(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.style.Overflow = style.OverflowHidden
	v.clip = uipaint.ClipStencil

	res := p.Paint(v, PaintContext{MaskDepth: 3, StencilRef: 2})
	if res.Children.StencilRef != 3 || res.Children.MaskDepth != 4 {
		t.Errorf("children = %+v, want depth 4 ref 3", res.Children)
	}
	reg := res.Entries[0]
	if reg.StencilRef != 3 || reg.MaskDepth != 3 {
		t.Errorf("register state = depth %d ref %d, want 3 3", reg.MaskDepth, reg.StencilRef)
	}
}

func TestTextWithSpriteFallback(t *testing.T) {
	const smile = '\U0001F600'
	if text.DefaultFont().HasGlyph(smile) {
		t.Skip("default font has the fallback rune")
	}
	sheet := gfx.NewTexture("emoji", image.NewRGBA(image.Rect(0, 0, 32, 32)))
	asset := text.NewSpriteAsset("emoji")
	asset.Add(smile, &gfx.Sprite{Texture: sheet, Rect: geom.R(0, 0, 32, 32)})

	p, sink, _ := newTestPainter()
	layout, err := p.Shaper().Shape("ok"+string(smile), text.DefaultFont(), 16, asset)
	if err != nil {
		t.Fatal(err)
	}
	v := newVisual(geom.R(0, 0, 200, 40))
	v.layout = layout

	res := p.Paint(v, RootContext)
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	infos := layout.MeshInfos()
	for i, e := range res.Entries {
		if !e.Flags.Has(IsTextEntry) {
			t.Errorf("entry %d is not a text entry", i)
		}
		if len(e.Vertices) != infos[i].VertexCount() || len(e.Indices) != infos[i].IndexCount() {
			t.Errorf("entry %d geometry = %d/%d, want %d/%d", i,
				len(e.Vertices), len(e.Indices), infos[i].VertexCount(), infos[i].IndexCount())
		}
		assertClockwise(t, &e)
	}
	if res.Entries[0].Texture == res.Entries[1].Texture {
		t.Error("glyph page and sprite share a texture id")
	}
	if res.Entries[0].Vertices[0].Flags != mesh.FlagText {
		t.Errorf("glyph vertex flags = %v", res.Entries[0].Vertices[0].Flags)
	}
	if len(sink.uses) != 2 || sink.uses[1].src != sheet {
		t.Errorf("texture uses = %+v", sink.uses)
	}
}

func TestZeroSizeSkipsPool(t *testing.T) {
	p, sink, _ := newTestPainter()
	tex := gfx.NewTexture("t", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	v := newVisual(geom.R(0, 0, 100, 100))
	hello, err := p.Shaper().Shape("hello", text.DefaultFont(), 16, nil)
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	p.Begin(v, RootContext)
	beforeV, beforeI := p.PoolStats()

	thin := geom.R(0, 0, uipaint.Epsilon/2, 50)
	p.DrawText(TextParams{Layout: hello, Rect: geom.R(0, 0, 0, 0), Color: white})
	p.DrawText(TextParams{Text: "hello", Rect: thin, FontSize: 16, Color: white})
	p.DrawRectangle(SolidRectangle(thin, white, style.Radii{}))
	p.DrawRectangle(TexturedRectangle(geom.R(0, 0, 50, 0), tex))
	p.DrawBorder(BorderParams{Rect: thin, Widths: geom.Uniform(1), Colors: style.UniformBorderColor(red)})
	p.DrawVectorImage(&gfx.VectorImage{Size: f32.Vec2{1, 1}}, geom.R(0, 0, 10, 10), white)
	p.DrawMesh(MeshParams{VertexCount: 0, IndexCount: 6, Fill: func(*mesh.MeshWriteData) {
		t.Error("fill called for an empty mesh")
	}})

	res := p.End()
	if len(res.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(res.Entries))
	}
	afterV, afterI := p.PoolStats()
	if afterV.Allocations != beforeV.Allocations || afterI.Allocations != beforeI.Allocations {
		t.Error("degenerate draws allocated from the pool")
	}
	if len(sink.uses) != 0 {
		t.Errorf("degenerate draws referenced textures: %+v", sink.uses)
	}
}

func TestRectangleKindPriority(t *testing.T) {
	tex := gfx.NewTexture("t", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	sprite := &gfx.Sprite{Texture: tex, Rect: geom.R(0, 0, 2, 2)}
	vec := &gfx.VectorImage{Size: f32.Vec2{1, 1}}
	tests := []struct {
		name   string
		params RectangleParams
		want   RectKind
	}{
		{"all", RectangleParams{Vector: vec, Sprite: sprite, Texture: tex}, RectVectorImage},
		{"sprite and texture", RectangleParams{Sprite: sprite, Texture: tex}, RectSprite},
		{"texture", RectangleParams{Texture: tex}, RectTextured},
		{"none", RectangleParams{}, RectSolid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpriteWinsOverTexture(t *testing.T) {
	sheet := gfx.NewTexture("sheet", image.NewRGBA(image.Rect(0, 0, 8, 8)))
	other := gfx.NewTexture("other", image.NewRGBA(image.Rect(0, 0, 8, 8)))
	p, sink, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 10, 10)), RootContext)
	p.DrawRectangle(RectangleParams{
		Rect:    geom.R(0, 0, 10, 10),
		Color:   white,
		Sprite:  &gfx.Sprite{Texture: sheet, Rect: geom.R(4, 0, 4, 8)},
		Texture: other,
	})
	res := p.End()
	if len(res.Entries) != 1 || len(sink.uses) != 1 || sink.uses[0].src != sheet {
		t.Fatalf("entries = %d, uses = %+v", len(res.Entries), sink.uses)
	}
	uv := res.Entries[0].Vertices[0].UV
	if uv != (f32.Vec2{0.5, 0}) {
		t.Errorf("top-left UV = %v, want sprite region", uv)
	}
}

func TestSpriteMeshWinding(t *testing.T) {
	sheet := gfx.NewTexture("sheet", image.NewRGBA(image.Rect(0, 0, 8, 8)))
	sprite := &gfx.Sprite{
		Texture:  sheet,
		Rect:     geom.R(0, 0, 8, 8),
		Vertices: []f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		UVs:      []f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		// First triangle counter-clockwise, second clockwise.
		Indices: []uint16{0, 2, 1, 2, 3, 0},
	}
	p, _, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 20, 20)), RootContext)
	p.DrawSprite(sprite, geom.R(0, 0, 20, 20), white)
	res := p.End()
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(res.Entries))
	}
	got := res.Entries[0].Indices
	want := []mesh.Index{2, 0, 1, 2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
	assertClockwise(t, &res.Entries[0])
	if sprite.Indices[0] != 0 || sprite.Indices[1] != 2 {
		t.Error("source sprite indices modified")
	}
}

func TestVectorImageScaledAndTinted(t *testing.T) {
	img := &gfx.VectorImage{
		Size: f32.Vec2{2, 2},
		Vertices: []gfx.VectorVertex{
			{Position: f32.Vec2{0, 0}, Color: white},
			{Position: f32.Vec2{0, 2}, Color: white},
			{Position: f32.Vec2{2, 0}, Color: white},
		},
		Indices: []uint16{0, 1, 2},
	}
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.style.Opacity = 0.5
	p.Begin(v, RootContext)
	p.DrawVectorImage(img, geom.R(10, 10, 20, 20), red)
	e := p.End().Entries[0]
	if e.Vertices[1].Position != (f32.Vec3{10, 30, 0}) {
		t.Errorf("scaled position = %v", e.Vertices[1].Position)
	}
	if c := e.Vertices[0].Tint; c.R != 255 || c.G != 0 || c.A != 128 {
		t.Errorf("tint = %v, want red at half alpha", c)
	}
	if e.Vertices[0].Flags != mesh.FlagVector {
		t.Errorf("flags = %v", e.Vertices[0].Flags)
	}
	assertClockwise(t, &e)
}

func TestVectorBackgroundBecomesMask(t *testing.T) {
	img := &gfx.VectorImage{
		Size: f32.Vec2{1, 1},
		Vertices: []gfx.VectorVertex{
			{Position: f32.Vec2{0.5, 0}, Color: white},
			{Position: f32.Vec2{1, 1}, Color: white},
			{Position: f32.Vec2{0, 1}, Color: white},
		},
		Indices: []uint16{0, 1, 2},
	}
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 50, 50))
	v.style.BackgroundImage.Vector = img
	v.style.Overflow = style.OverflowHidden
	v.clip = uipaint.ClipStencil

	res := p.Paint(v, RootContext)
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	bg, reg := res.Entries[0], res.Entries[1]
	if len(reg.Vertices) != len(bg.Vertices) {
		t.Fatalf("mask vertices = %d, want %d", len(reg.Vertices), len(bg.Vertices))
	}
	for i := range reg.Vertices {
		if reg.Vertices[i].Position[2] != mesh.MaskPosZ || bg.Vertices[i].Position[2] != mesh.ContentPosZ {
			t.Fatalf("vertex %d: mask z %v content z %v", i, reg.Vertices[i].Position[2], bg.Vertices[i].Position[2])
		}
	}
}

func TestScissorClip(t *testing.T) {
	p, _, clips := newTestPainter()
	v := newVisual(geom.R(0, 0, 100, 100))
	v.style.Overflow = style.OverflowHidden
	v.style.BorderWidth = geom.Uniform(5)
	v.style.BorderColor = style.UniformBorderColor(red)
	v.content = geom.R(10, 10, 80, 80)
	v.style.OverflowClipBox = style.ClipContentBox
	v.layout = nil

	res := p.Paint(v, PaintContext{ClipRect: 3})
	if len(res.Entries) != 2 || res.Entries[1].Type != EntryPushScissor {
		t.Fatalf("entries = %v", res.Entries)
	}
	if res.Entries[0].ClipRect != 3 {
		t.Errorf("border clip = %d, want inherited 3", res.Entries[0].ClipRect)
	}
	if got := clips.rects[0]; got.parent != 3 || got.rect != v.content {
		t.Errorf("registered clip = %+v", got)
	}
	if res.Entries[1].ClipRect != res.Children.ClipRect || res.Children.ClipRect == 3 {
		t.Errorf("scissor clip %d, children clip %d", res.Entries[1].ClipRect, res.Children.ClipRect)
	}
	if !res.Closing.PopScissorClip || !res.Closing.NeedsClosing {
		t.Errorf("closing = %+v", res.Closing)
	}
	if res.Children.MaskDepth != 0 {
		t.Error("scissor clip changed mask depth")
	}
}

func TestGroupRootResetsClip(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.group = true
	v.view = geom.Translation(5, 5)
	v.style.BackgroundColor = white

	res := p.Paint(v, PaintContext{ClipRect: 9})
	if res.Entries[0].Type != EntryPushView || res.Entries[0].View != v.view {
		t.Fatalf("first entry = %v", &res.Entries[0])
	}
	if res.Entries[1].ClipRect != InfiniteClipRect || res.Children.ClipRect != InfiniteClipRect {
		t.Error("group root kept the inherited clip rect")
	}
	if !res.Closing.PopViewMatrix {
		t.Error("PopViewMatrix not set")
	}
}

func TestRenderTargetInsideMaskLogged(t *testing.T) {
	logs := captureLogs(t)
	p, sink, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.target = gfx.NewRenderTexture("rt", 10, 10)
	v.style.Material = &gfx.Material{Name: "m"}

	res := p.Paint(v, PaintContext{MaskDepth: 1})
	if !strings.Contains(logs.String(), "render target inside a stencil mask") {
		t.Error("conflict not logged")
	}
	if len(res.Entries) != 2 || res.Entries[0].Type != EntryPushRenderTexture || res.Entries[1].Type != EntryPushDefaultMaterial {
		t.Fatalf("entries = %v", res.Entries)
	}
	c := res.Closing
	if !c.BlitAndPopRenderTexture || !c.PopDefaultMaterial || c.RenderTexture != v.target {
		t.Errorf("closing = %+v", c)
	}
	if len(sink.uses) != 1 || sink.uses[0].src != v.target || sink.uses[0].atlased {
		t.Errorf("uses = %+v", sink.uses)
	}
}

func TestTextureBinding(t *testing.T) {
	small := gfx.NewTexture("small", image.NewRGBA(image.Rect(0, 0, 16, 16)))
	reg := atlas.NewTextureRegistry()
	a := atlas.New(reg, atlas.WithSize(64))

	t.Run("atlas", func(t *testing.T) {
		p, sink, _ := newTestPainter(WithDynamicAtlas(a))
		p.Begin(newVisual(geom.R(0, 0, 16, 16)), RootContext)
		p.DrawRectangle(TexturedRectangle(geom.R(0, 0, 16, 16), small))
		e := p.End().Entries[0]
		if !e.Flags.Has(IsDynamicAtlasSource) || e.Vertices[0].Flags != mesh.FlagDynamic {
			t.Errorf("entry = %v", &e)
		}
		pl, ok := a.Lookup(small)
		if !ok || e.Texture != pl.Page.ID() {
			t.Fatalf("texture %v not the atlas page", e.Texture)
		}
		br := e.Vertices[2].UV
		if want := (f32.Vec2{pl.UVRect.MaxX(), pl.UVRect.MaxY()}); br != want {
			t.Errorf("bottom-right UV = %v, want %v", br, want)
		}
		if len(sink.uses) != 1 || !sink.uses[0].atlased {
			t.Errorf("uses = %+v", sink.uses)
		}
	})

	t.Run("direct", func(t *testing.T) {
		p, sink, _ := newTestPainter(WithRegistry(reg))
		p.Begin(newVisual(geom.R(0, 0, 16, 16)), RootContext)
		p.DrawRectangle(TexturedRectangle(geom.R(0, 0, 16, 16), small))
		e := p.End().Entries[0]
		if !e.Flags.Has(IsDirectlyTextured) || e.Vertices[0].Flags != mesh.FlagTextured {
			t.Errorf("entry = %v", &e)
		}
		if reg.Refs(e.Texture) != 1 {
			t.Errorf("refs = %d, want 1", reg.Refs(e.Texture))
		}
		if e.Vertices[2].UV != (f32.Vec2{1, 1}) {
			t.Errorf("bottom-right UV = %v", e.Vertices[2].UV)
		}
		if len(sink.uses) != 1 || sink.uses[0].atlased {
			t.Errorf("uses = %+v", sink.uses)
		}
	})
}

func TestNineSlice(t *testing.T) {
	tex := gfx.NewTexture("frame", image.NewRGBA(image.Rect(0, 0, 30, 30)))
	p, _, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 100, 60)), RootContext)
	r := TexturedRectangle(geom.R(0, 0, 100, 60), tex)
	r.Slice = style.Slice{Left: 10, Top: 10, Right: 10, Bottom: 10}
	p.DrawRectangle(r)
	e := p.End().Entries[0]
	if len(e.Vertices) != 16 || len(e.Indices) != 54 {
		t.Fatalf("geometry = %d/%d, want 16/54", len(e.Vertices), len(e.Indices))
	}
	if x := e.Vertices[1].Position[0]; x != 10 {
		t.Errorf("left slice x = %v, want 10", x)
	}
	if u := e.Vertices[2].UV[0]; u < 0.66 || u > 0.67 {
		t.Errorf("right slice u = %v, want 2/3", u)
	}
	assertClockwise(t, &e)
}

func TestRoundedRectangle(t *testing.T) {
	p, _, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 40, 40)), RootContext)
	p.DrawRectangle(SolidRectangle(geom.R(0, 0, 40, 40), white, style.UniformRadii(8)))
	e := p.End().Entries[0]
	if len(e.Indices) != 3*(len(e.Vertices)-1) {
		t.Errorf("fan geometry = %d/%d", len(e.Vertices), len(e.Indices))
	}
	for _, vx := range e.Vertices {
		if vx.Position[0] < 0 || vx.Position[0] > 40 || vx.Position[1] < 0 || vx.Position[1] > 40 {
			t.Fatalf("vertex %v outside the rectangle", vx.Position)
		}
	}
	assertClockwise(t, &e)
}

func TestDrawMeshPadsUnderfilled(t *testing.T) {
	logs := captureLogs(t)
	p, _, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 10, 10)), RootContext)
	p.DrawMesh(MeshParams{VertexCount: 4, IndexCount: 6, Fill: func(w *mesh.MeshWriteData) {
		w.SetNextVertex(mesh.Vertex{Position: f32.Vec3{1, 2, 0}})
		w.SetNextIndex(0)
	}})
	e := p.End().Entries[0]
	for i, vx := range e.Vertices {
		if vx.Position != (f32.Vec3{1, 2, 0}) {
			t.Errorf("vertex %d = %v, want copy of vertex 0", i, vx.Position)
		}
	}
	for i, ix := range e.Indices {
		if ix != 0 {
			t.Errorf("index %d = %d, want 0", i, ix)
		}
	}
	if !strings.Contains(logs.String(), "writer not filled") {
		t.Error("under-filled writer not logged")
	}
}

func TestImmediateEntryStamped(t *testing.T) {
	p, _, _ := newTestPainter()
	p.Begin(newVisual(geom.R(0, 0, 10, 10)), PaintContext{MaskDepth: 2, StencilRef: 1, ClipRect: 4})
	p.DrawImmediate(func(ImmediateWriter) {})
	p.DrawImmediate(nil)
	res := p.End()
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Type != EntryImmediate || e.Callback == nil || e.MaskDepth != 2 || e.StencilRef != 1 || e.ClipRect != 4 {
		t.Errorf("entry = %+v", e)
	}
}

func TestHiddenElementStillClips(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.style.BackgroundColor = white
	v.style.Visibility = style.Hidden
	v.style.Overflow = style.OverflowHidden

	res := p.Paint(v, RootContext)
	if len(res.Entries) != 1 || res.Entries[0].Type != EntryPushScissor {
		t.Errorf("entries = %v", res.Entries)
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 10, 10))
	v.style.BackgroundColor = white
	v.style.BorderWidth = geom.Uniform(1)
	v.style.BorderColor = style.UniformBorderColor(red)
	p.Paint(v, RootContext)
	c := cap(p.Entries())
	p.Reset()
	if len(p.Entries()) != 0 || cap(p.Entries()) != c {
		t.Errorf("after Reset len=%d cap=%d, want 0 %d", len(p.Entries()), cap(p.Entries()), c)
	}
	if p.Closing().NeedsClosing || p.ClipRect() != InfiniteClipRect {
		t.Error("Reset kept element state")
	}
}

func BenchmarkPaintBorderedElement(b *testing.B) {
	p, _, _ := newTestPainter()
	v := newVisual(geom.R(0, 0, 200, 40))
	v.style.BackgroundColor = white
	v.style.BorderWidth = geom.Uniform(2)
	v.style.BorderRadius = style.UniformRadii(6)
	v.style.BorderColor = style.UniformBorderColor(black)
	b.ReportAllocs()
	for b.Loop() {
		p.Paint(v, RootContext)
		p.EndFrame()
	}
}
