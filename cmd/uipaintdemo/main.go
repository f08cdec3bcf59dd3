// Command uipaintdemo builds a small element tree, runs a few frames and
// prints the resulting command streams.
//
//	uipaintdemo -frames 3 -backend trace
//	uipaintdemo -backend wgpu -samples 4 -v
//
// The wgpu backend runs on the HAL noop device, so it exercises resource
// setup and pass encoding without a GPU.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/atlas"
	"github.com/gogpu/uipaint/backend/trace"
	"github.com/gogpu/uipaint/backend/wgpu"
	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/geom"
	"github.com/gogpu/uipaint/gfx"
	"github.com/gogpu/uipaint/layout"
	"github.com/gogpu/uipaint/style"
	"github.com/gogpu/uipaint/ui"
)

func main() {
	var (
		width   = flag.Int("width", 800, "panel width")
		height  = flag.Int("height", 600, "panel height")
		frames  = flag.Int("frames", 3, "frames to run")
		backend = flag.String("backend", "trace", "backend: trace or wgpu")
		policy  = flag.String("clip", "auto", "clip policy: auto, scissor or stencil")
		samples = flag.Uint("samples", 1, "MSAA samples for the wgpu backend (1 or 4)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		uipaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	clip, err := parseClipPolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}

	registry := atlas.NewTextureRegistry()
	dynamic := atlas.New(registry)

	b, cleanup, err := newBackend(*backend, registry, uint32(*samples)) //nolint:gosec // flag value
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	defer cleanup()

	panel := ui.NewPanel(float32(*width), float32(*height),
		ui.WithAtlas(dynamic),
		ui.WithClipPolicy(clip),
		ui.WithBackend(b),
	)
	defer panel.Close()

	spinner := buildTree(panel)

	ctx := context.Background()
	for i := range *frames {
		angle := float64(i) * math.Pi / 12
		spinner.SetTransform(rotation(angle, 20, 20))
		if err := panel.Update(ctx); err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
		st := panel.Stats()
		log.Printf("frame %d: layout passes=%d changes=%d repainted=%d draws=%d culled=%d vertices=%d",
			st.Frame, st.LayoutPasses, st.LayoutChanges, st.Repainted, st.DrawCalls, st.Culled, st.Vertices)
	}
}

func parseClipPolicy(s string) (uipaint.ClipPolicy, error) {
	switch s {
	case "auto":
		return uipaint.ClipPolicyAuto, nil
	case "scissor":
		return uipaint.ClipPolicyScissor, nil
	case "stencil":
		return uipaint.ClipPolicyStencil, nil
	}
	return 0, fmt.Errorf("unknown clip policy %q", s)
}

func newBackend(name string, registry *atlas.TextureRegistry, samples uint32) (chain.Backend, func(), error) {
	switch name {
	case "trace":
		return trace.New(os.Stdout), func() {}, nil
	case "wgpu":
		api := noop.API{}
		instance, err := api.CreateInstance(nil)
		if err != nil {
			return nil, nil, err
		}
		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			return nil, nil, fmt.Errorf("no noop adapter")
		}
		dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			return nil, nil, err
		}
		exec, err := wgpu.New(dev.Device, dev.Queue, wgpu.WithTextures(registry), wgpu.WithSampleCount(samples))
		if err != nil {
			dev.Device.Destroy()
			instance.Destroy()
			return nil, nil, err
		}
		return exec, func() {
			st := exec.Stats()
			log.Printf("wgpu: passes=%d draws=%d skipped=%d uploads=%d", st.Passes, st.DrawCalls, st.Skipped, st.Uploads)
			dev.Device.Destroy()
			instance.Destroy()
		}, nil
	}
	b, err := chain.NewBackend(name)
	if err != nil {
		return nil, nil, err
	}
	return b, func() {}, nil
}

// buildTree adds a header, a clipped card with a spinning badge and a
// render texture panel. It returns the badge.
func buildTree(panel *ui.Panel) *ui.Element {
	root := panel.Root()
	root.SetLayoutStyle(layout.Style{
		Width: layout.Pct(100), Height: layout.Pct(100),
		Padding: geom.Uniform(16), Gap: 12,
	})

	header := ui.NewElement("header")
	header.SetLayoutStyle(layout.Style{Width: layout.Pct(100), Padding: geom.Uniform(8)})
	hs := header.Style()
	hs.BackgroundColor = color.NRGBA{R: 32, G: 36, B: 48, A: 255}
	hs.Color = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	hs.FontSize = 18
	header.SetStyle(hs)
	header.SetText("uipaint demo")
	root.Add(header)

	card := ui.NewElement("card")
	card.SetLayoutStyle(layout.Style{
		Width: layout.Px(240), Height: layout.Px(120),
		Direction: layout.Row, Padding: geom.Uniform(10), Gap: 8,
	})
	cs := card.Style()
	cs.BackgroundColor = color.NRGBA{R: 245, G: 245, B: 250, A: 255}
	cs.BorderWidth = geom.Uniform(1)
	cs.BorderColor = style.UniformBorderColor(color.NRGBA{R: 180, G: 180, B: 200, A: 255})
	cs.BorderRadius = style.UniformRadii(12)
	cs.Overflow = style.OverflowHidden
	card.SetStyle(cs)
	root.Add(card)

	badge := ui.NewElement("badge")
	badge.SetLayoutStyle(layout.Style{Width: layout.Px(40), Height: layout.Px(40)})
	bs := badge.Style()
	bs.BackgroundColor = color.NRGBA{R: 220, G: 80, B: 60, A: 255}
	bs.BorderRadius = style.UniformRadii(8)
	badge.SetStyle(bs)
	card.Add(badge)

	wide := ui.NewElement("overflowing")
	wide.SetLayoutStyle(layout.Style{Width: layout.Px(400), Height: layout.Px(30)})
	ws := wide.Style()
	ws.BackgroundColor = color.NRGBA{R: 60, G: 140, B: 220, A: 255}
	wide.SetStyle(ws)
	card.Add(wide)

	offscreen := ui.NewElement("offscreen")
	offscreen.SetLayoutStyle(layout.Style{Width: layout.Px(128), Height: layout.Px(64)})
	offscreen.SetRenderTarget(gfx.NewRenderTexture("offscreen", 128, 64))
	ofs := offscreen.Style()
	ofs.BackgroundColor = color.NRGBA{R: 40, G: 160, B: 90, A: 255}
	offscreen.SetStyle(ofs)
	offscreen.OnGeometryChanged(func(ev ui.GeometryChangedEvent) {
		uipaint.Logger().Debug("demo: offscreen moved", "from", ev.Old, "to", ev.New, "pass", ev.Pass)
	})
	root.Add(offscreen)

	return badge
}

// rotation rotates by angle around (cx, cy) in local coordinates.
func rotation(angle float64, cx, cy float32) f32.Aff3 {
	sin, cos := math.Sincos(angle)
	s, c := float32(sin), float32(cos)
	r := f32.Aff3{c, -s, 0, s, c, 0}
	return geom.Mul(geom.Translation(cx, cy), geom.Mul(r, geom.Translation(-cx, -cy)))
}
