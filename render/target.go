// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// Target is where a Renderer writes pixels.
type Target interface {
	draw.Image

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(1280, 720)
//	sw.Render(target, list)
//	png.Encode(f, target.Image())
type PixmapTarget struct {
	*image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{RGBA: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.Bounds().Dy()
}

// Size returns the target size as a point.
func (t *PixmapTarget) Size() image.Point {
	return t.Bounds().Size()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.RGBA
}

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	t.Fill(t.Bounds(), c)
}

// Fill fills r, clipped to the target, with c.
func (t *PixmapTarget) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(t.RGBA, r.Intersect(t.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize replaces the pixels with a cleared image of the given size.
// The contents are not preserved. Resizing to the current size is a no-op.
func (t *PixmapTarget) Resize(width, height int) {
	if t.RGBA != nil && t.Width() == width && t.Height() == height {
		return
	}
	t.RGBA = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapTarget implements Target.
var _ Target = (*PixmapTarget)(nil)
