// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// ErrNilTarget is returned when rendering into a nil target.
var ErrNilTarget = errors.New("render: nil target")

// Renderer executes draw lists to a render target.
//
// Renderers are stateless between Render calls, allowing the same renderer
// to be used with different targets and lists.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
type Renderer interface {
	// Render draws each list into its viewport rectangle of target, in order.
	// Lists are not modified and can be rendered multiple times.
	Render(target Target, lists ...DrawList) error

	// Flush ensures all pending rendering operations are complete.
	// For CPU renderers this is a no-op.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if anti-aliased rendering is supported.
	SupportsAntialiasing bool

	// SupportsBlending indicates if translucent materials are blended.
	SupportsBlending bool

	// SupportsLabels indicates if point identity labels are drawn.
	SupportsLabels bool
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}
