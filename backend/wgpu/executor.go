// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"honnef.co/go/safeish"

	"github.com/gogpu/uipaint"
	"github.com/gogpu/uipaint/chain"
	"github.com/gogpu/uipaint/gfx"
)

// Name is the name the executor reports.
const Name = "wgpu"

// Completion polling backs off from pollMinDelay to pollMaxDelay.
const (
	pollMinDelay = 50 * time.Microsecond
	pollMaxDelay = time.Millisecond
)

// ExecStats describes the last executed frame.
type ExecStats struct {
	Passes    int
	DrawCalls int
	Skipped   int
	Uploads   int
}

// Executor replays chain frames on a HAL device. It implements
// chain.Backend. Execute may be called from one goroutine at a time; the
// executor serializes callers.
type Executor struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	opts   options

	pipes    *pipelines
	textures *textureCache

	surface     *target
	surfaceView hal.TextureView
	targets     map[uint64]*target

	vertBuf, idxBuf   hal.Buffer
	vertSize, idxSize uint64

	frame  uint64
	stats  ExecStats
	closed bool
}

// New creates an executor on device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Executor, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: nil device or queue")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pipes, err := newPipelines(device, &o)
	if err != nil {
		return nil, fmt.Errorf("wgpu: %w", err)
	}
	textures, err := newTextureCache(device, queue)
	if err != nil {
		pipes.destroy()
		return nil, fmt.Errorf("wgpu: %w", err)
	}
	uipaint.Logger().Debug("wgpu: executor ready", "samples", o.sampleCount, "format", o.format, "spirv", o.spirv)
	return &Executor{
		device:   device,
		queue:    queue,
		opts:     o,
		pipes:    pipes,
		textures: textures,
		targets:  make(map[uint64]*target),
	}, nil
}

// NewFromProvider creates an executor on the device shared by provider.
// The provider must expose HalDevice() and HalQueue() returning hal.Device
// and hal.Queue. Its surface format is used unless an option overrides it.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Executor, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	opts = append([]Option{WithSurfaceFormat(provider.SurfaceFormat())}, opts...)
	return New(device, queue, opts...)
}

// Factory returns a chain.BackendFactory creating executors on provider.
func Factory(provider gpucontext.DeviceProvider, opts ...Option) chain.BackendFactory {
	return func() (chain.Backend, error) {
		return NewFromProvider(provider, opts...)
	}
}

// Name implements chain.Backend.
func (e *Executor) Name() string { return Name }

// Stats returns the statistics of the last executed frame.
func (e *Executor) Stats() ExecStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// SetSurfaceView renders the surface pass into view instead of the
// executor's own texture. With MSAA the view is the resolve target. A nil
// view restores the executor's texture.
func (e *Executor) SetSurfaceView(view hal.TextureView) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surfaceView = view
}

// SurfaceTexture returns the executor's own surface texture, or nil before
// the first frame. It holds the last frame when no surface view is set.
func (e *Executor) SurfaceTexture() hal.Texture {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surface == nil {
		return nil
	}
	if e.surface.resolve != nil {
		return e.surface.resolve
	}
	return e.surface.color
}

// Execute implements chain.Backend. It returns after the device finished
// the frame.
func (e *Executor) Execute(ctx context.Context, f *chain.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	p, err := buildPlan(f)
	if err != nil {
		return fmt.Errorf("wgpu: frame %d: %w", f.Index, err)
	}
	e.frame++
	e.stats = ExecStats{Passes: len(p.passes)}

	if err := e.prepareTargets(p); err != nil {
		return fmt.Errorf("wgpu: frame %d: %w", f.Index, err)
	}
	if err := e.upload(f, p); err != nil {
		return fmt.Errorf("wgpu: frame %d: %w", f.Index, err)
	}

	res := &frameResources{}
	defer res.release(e.device)

	if err := e.submit(ctx, p, res); err != nil {
		return fmt.Errorf("wgpu: frame %d: %w", f.Index, err)
	}
	e.textures.prune(e.frame)
	e.stats.Uploads = e.textures.uploads
	e.textures.uploads = 0

	uipaint.Logger().Debug("wgpu: frame",
		"index", f.Index, "passes", e.stats.Passes, "draws", e.stats.DrawCalls,
		"skipped", e.stats.Skipped, "uploads", e.stats.Uploads)
	return nil
}

// prepareTargets creates or resizes the surface and render textures used
// by p, and destroys render textures that p no longer draws.
func (e *Executor) prepareTargets(p *plan) error {
	used := make(map[uint64]bool, len(p.passes))
	for i := range p.passes {
		ps := &p.passes[i]
		w, h := pixelSize(ps.width, ps.height)
		if ps.target == nil {
			if e.surface != nil && e.surface.fits(w, h) {
				continue
			}
			if e.surface != nil {
				e.surface.destroy(e.device)
			}
			t, err := newTarget(e.device, "ui_surface", w, h, &e.opts)
			if err != nil {
				e.surface = nil
				return err
			}
			e.surface = t
			continue
		}
		key := ps.target.Key()
		used[key] = true
		if t, ok := e.targets[key]; ok {
			if t.fits(w, h) {
				continue
			}
			t.destroy(e.device)
			delete(e.targets, key)
		}
		t, err := newTarget(e.device, "ui_"+ps.target.Name(), w, h, &e.opts)
		if err != nil {
			return err
		}
		e.targets[key] = t
	}
	for key, t := range e.targets {
		if !used[key] {
			t.destroy(e.device)
			delete(e.targets, key)
		}
	}
	return nil
}

// upload writes the frame geometry followed by the blit quads, growing the
// buffers when needed.
func (e *Executor) upload(f *chain.Frame, p *plan) error {
	vb := f.VertexBytes()
	vbBlit := safeish.SliceCast[[]byte](p.vertices)
	ib := f.IndexBytes()
	ibBlit := safeish.SliceCast[[]byte](p.indices)

	if err := e.ensureBuffer(&e.vertBuf, &e.vertSize, uint64(len(vb)+len(vbBlit)),
		"ui_vertices", gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if err := e.ensureBuffer(&e.idxBuf, &e.idxSize, uint64(len(ib)+len(ibBlit)),
		"ui_indices", gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	writes := []struct {
		buf    hal.Buffer
		offset int
		data   []byte
	}{
		{e.vertBuf, 0, vb},
		{e.vertBuf, len(vb), vbBlit},
		{e.idxBuf, 0, ib},
		{e.idxBuf, len(ib), ibBlit},
	}
	for _, w := range writes {
		if len(w.data) == 0 {
			continue
		}
		if err := e.queue.WriteBuffer(w.buf, uint64(w.offset), w.data); err != nil {
			return fmt.Errorf("write geometry: %w", err)
		}
	}
	return nil
}

func (e *Executor) ensureBuffer(buf *hal.Buffer, size *uint64, need uint64, label string, usage gputypes.BufferUsage) error {
	if *buf != nil && *size >= need {
		return nil
	}
	// Buffers grow in powers of two, with a small minimum.
	capacity := uint64(4096)
	for capacity < need {
		capacity *= 2
	}
	b, err := e.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: capacity, Usage: usage})
	if err != nil {
		return fmt.Errorf("create %s buffer: %w", label, err)
	}
	if *buf != nil {
		e.device.DestroyBuffer(*buf)
	}
	*buf, *size = b, capacity
	return nil
}

// submit records every pass, submits them and waits for completion.
func (e *Executor) submit(ctx context.Context, p *plan, res *frameResources) error {
	encoder, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "ui_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ui_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	for i := range p.passes {
		if err := e.encodePass(encoder, &p.passes[i], res); err != nil {
			encoder.DiscardEncoding()
			return err
		}
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer e.device.FreeCommandBuffer(cmdBuf)

	idx, err := e.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return e.wait(ctx, idx)
}

// wait polls the queue until submission idx has completed, the submit
// timeout elapses or ctx is done.
func (e *Executor) wait(ctx context.Context, idx uint64) error {
	if e.queue.PollCompleted() >= idx {
		return nil
	}
	deadline := time.Now().Add(e.opts.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	delay := pollMinDelay
	for e.queue.PollCompleted() < idx {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: submission %d", ErrSubmitTimeout, idx)
		}
		time.Sleep(delay)
		delay = min(2*delay, pollMaxDelay)
	}
	return nil
}

//nolint:funlen // Pass setup and draw loop.
func (e *Executor) encodePass(encoder hal.CommandEncoder, ps *pass, res *frameResources) error {
	t := e.surface
	if ps.target != nil {
		t = e.targets[ps.target.Key()]
	}
	color := hal.RenderPassColorAttachment{
		View:       t.colorView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
	}
	if t.resolveView != nil {
		color.ResolveTarget = t.resolveView
	}
	if ps.target == nil && e.surfaceView != nil {
		if t.resolveView != nil {
			color.ResolveTarget = e.surfaceView
		} else {
			color.View = e.surfaceView
		}
	}

	uniform, err := e.uniformBuffer(t, res)
	if err != nil {
		return err
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "ui_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{color},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	defer rp.End()

	if len(ps.ops) == 0 {
		return nil
	}
	rp.SetVertexBuffer(0, e.vertBuf, 0)
	rp.SetIndexBuffer(e.idxBuf, gputypes.IndexFormatUint32, 0)

	groups := make(map[hal.TextureView]hal.BindGroup)
	var (
		lastPipeline hal.RenderPipeline
		lastGroup    hal.BindGroup
		lastRef      = uint32(math.MaxUint32)
	)
	for i := range ps.ops {
		op := &ps.ops[i]
		x, y, w, h, ok := scissorRect(op.scissor, t.width, t.height)
		if !ok || op.count == 0 {
			e.stats.Skipped++
			continue
		}
		view := e.resolveTexture(op)
		group, ok := groups[view]
		if !ok {
			group, err = e.bindGroup(uniform, view, res)
			if err != nil {
				return err
			}
			groups[view] = group
		}

		if pl := e.pipes.pipeline(op.mask, op.blend); pl != lastPipeline {
			rp.SetPipeline(pl)
			lastPipeline = pl
		}
		if group != lastGroup {
			rp.SetBindGroup(0, group, nil)
			lastGroup = group
		}
		if op.ref != lastRef {
			rp.SetStencilReference(op.ref)
			lastRef = op.ref
		}
		rp.SetScissorRect(x, y, w, h)
		rp.DrawIndexed(op.count, 1, op.first, 0, 0)
		e.stats.DrawCalls++
	}
	return nil
}

// resolveTexture returns the view sampled by op.
func (e *Executor) resolveTexture(op *drawOp) hal.TextureView {
	if op.source != nil {
		if t, ok := e.targets[op.source.Key()]; ok {
			return t.sampledView()
		}
		return e.textures.white.view
	}
	if op.texture == gfx.InvalidTextureID || e.opts.textures == nil {
		return e.textures.white.view
	}
	tex, ok := e.opts.textures.Lookup(op.texture)
	if !ok {
		uipaint.Logger().Warn("wgpu: unknown texture", "id", op.texture)
		return e.textures.white.view
	}
	if tex.IsRenderTarget() {
		if t, ok := e.targets[tex.Key()]; ok {
			return t.sampledView()
		}
		uipaint.Logger().Warn("wgpu: render texture sampled before it was drawn", "texture", tex)
		return e.textures.white.view
	}
	view, err := e.textures.view(op.texture, tex, e.frame)
	if err != nil {
		uipaint.Logger().Error("wgpu: texture upload failed", "texture", tex, "err", err)
		return e.textures.white.view
	}
	return view
}

func (e *Executor) uniformBuffer(t *target, res *frameResources) (hal.Buffer, error) {
	buf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	res.buffers = append(res.buffers, buf)
	var data [uniformSize]byte
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(float32(t.width)))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(float32(t.height)))
	if err := e.queue.WriteBuffer(buf, 0, data[:]); err != nil {
		return nil, fmt.Errorf("write uniforms: %w", err)
	}
	return buf, nil
}

func (e *Executor) bindGroup(uniform hal.Buffer, view hal.TextureView, res *frameResources) (hal.BindGroup, error) {
	group, err := e.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ui_bind",
		Layout: e.pipes.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniform.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: e.pipes.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	res.groups = append(res.groups, group)
	return group, nil
}

// Close implements chain.Backend. It releases every device resource the
// executor created; the device and queue stay with their owner.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for key, t := range e.targets {
		t.destroy(e.device)
		delete(e.targets, key)
	}
	if e.surface != nil {
		e.surface.destroy(e.device)
		e.surface = nil
	}
	if e.vertBuf != nil {
		e.device.DestroyBuffer(e.vertBuf)
		e.vertBuf = nil
	}
	if e.idxBuf != nil {
		e.device.DestroyBuffer(e.idxBuf)
		e.idxBuf = nil
	}
	e.textures.close()
	e.pipes.destroy()
	return nil
}

// frameResources are destroyed once a frame has been waited for.
type frameResources struct {
	buffers []hal.Buffer
	groups  []hal.BindGroup
}

func (r *frameResources) release(device hal.Device) {
	for _, g := range r.groups {
		device.DestroyBindGroup(g)
	}
	for _, b := range r.buffers {
		device.DestroyBuffer(b)
	}
}
