// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu executes render chain frames on a gogpu/wgpu HAL device.
//
// The executor uploads a frame's vertex and index buffers once, splits the
// command stream into one render pass per render texture plus a final pass
// for the surface, and replays the draws with the scissor, stencil reference
// and material of each command.
//
// # Stencil clipping
//
// Every pass has a Depth24PlusStencil8 attachment cleared to zero. Two
// pipelines share the same shader:
//
//   - content: color writes on. Front faces pass when the stencil value
//     equals the reference, back faces when it is greater.
//   - mask: color writes off. Front faces increment where the value equals
//     the reference, back faces decrement where it is greater.
//
// The render chain flips the triangle winding of an entry drawn inside a
// mask that has not been folded into the reference yet, so the face state
// selects the test.
//
// # Usage
//
//	exec, err := wgpu.NewFromProvider(provider, wgpu.WithTextures(panel.Registry()))
//	if err != nil {
//	    return err
//	}
//	defer exec.Close()
//
//	panel := ui.NewPanel(800, 600, ui.WithBackend(exec))
//
// Executors can also be registered by name:
//
//	chain.Register("wgpu", wgpu.Factory(provider))
package wgpu
