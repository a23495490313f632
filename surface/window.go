// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"math"
)

// WindowID identifies a window in a Registry. The zero ID is never issued.
type WindowID uint32

// String implements fmt.Stringer.
func (id WindowID) String() string {
	return fmt.Sprintf("window#%d", uint32(id))
}

// Window is a snapshot of one registered window.
type Window struct {
	ID    WindowID
	Title string

	// Size is the drawable size in physical pixels.
	Size image.Point

	// ScaleFactor maps logical to physical pixels.
	ScaleFactor float64

	// Primary marks the window the scene is presented on.
	Primary bool
}

// LogicalSize returns Size divided by ScaleFactor, rounded.
func (w Window) LogicalSize() image.Point {
	if w.ScaleFactor <= 0 {
		return w.Size
	}
	return image.Pt(
		int(math.Round(float64(w.Size.X)/w.ScaleFactor)),
		int(math.Round(float64(w.Size.Y)/w.ScaleFactor)),
	)
}

// Drawable reports whether the window has a non-empty drawable area.
// Minimized windows report a zero size.
func (w Window) Drawable() bool {
	return w.Size.X > 0 && w.Size.Y > 0
}
