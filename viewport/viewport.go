// Package viewport computes picture-in-picture viewport rectangles.
//
// A secondary camera renders into a corner of the primary surface. Its
// rectangle is a fraction of the current surface resolution and is
// recomputed every frame so it follows window resizes:
//
//	rect, err := viewport.Compute(viewport.Config{
//		Fraction: mgl32.Vec2{0.3, 0.3},
//		Anchor:   viewport.BottomRight,
//	}, image.Pt(1920, 1080))
//	// rect = (1344,756)-(1920,1080)
//
// Coordinates are physical pixels with the origin at the top-left corner.
package viewport

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrConfig is the root of all viewport configuration errors.
	ErrConfig = errors.New("viewport: invalid configuration")

	// ErrInvalidFraction reports a fraction component that is not a positive
	// finite number.
	ErrInvalidFraction = fmt.Errorf("%w: fraction must be > 0", ErrConfig)

	// ErrViewportTooLarge reports a viewport larger than the surface.
	ErrViewportTooLarge = fmt.Errorf("%w: viewport exceeds surface", ErrConfig)
)

// Config describes a fractional viewport.
type Config struct {
	// Fraction is the viewport width and height relative to the surface.
	// Both components must be positive and finite; the resulting size must
	// fit the surface.
	Fraction mgl32.Vec2

	// Anchor is the corner the viewport is pinned to.
	Anchor Anchor
}

// Validate checks the resolution-independent part of c.
func (c Config) Validate() error {
	if !positiveFinite(c.Fraction.X()) || !positiveFinite(c.Fraction.Y()) {
		return fmt.Errorf("%w: got %v", ErrInvalidFraction, c.Fraction)
	}
	if int(c.Anchor) >= len(anchorNames) {
		return fmt.Errorf("%w: unknown anchor %v", ErrConfig, c.Anchor)
	}
	return nil
}

func positiveFinite(f float32) bool {
	return f > 0 && !math.IsInf(float64(f), 1)
}

// Size returns round(res * Fraction) componentwise. The result is only
// meaningful for a valid c whose size fits res; see Compute.
func (c Config) Size(res image.Point) image.Point {
	w, h := c.scaled(res)
	return image.Pt(int(w), int(h))
}

func (c Config) scaled(res image.Point) (w, h float64) {
	return math.Round(float64(res.X) * float64(c.Fraction.X())),
		math.Round(float64(res.Y) * float64(c.Fraction.Y()))
}

// Compute returns the viewport rectangle of c on a surface of size res.
func Compute(c Config, res image.Point) (image.Rectangle, error) {
	if err := c.Validate(); err != nil {
		return image.Rectangle{}, err
	}
	// Compare before converting: a huge fraction overflows int.
	w, h := c.scaled(res)
	if w > float64(res.X) || h > float64(res.Y) {
		return image.Rectangle{}, fmt.Errorf("%w: %gx%g of %v at fraction %v", ErrViewportTooLarge, w, h, res, c.Fraction)
	}
	size := image.Pt(int(w), int(h))
	at := c.Anchor.origin(res, size)
	return image.Rectangle{Min: at, Max: at.Add(size)}, nil
}

// MustCompute is like Compute but panics on a configuration error.
func MustCompute(c Config, res image.Point) image.Rectangle {
	r, err := Compute(c, res)
	if err != nil {
		panic(err)
	}
	return r
}
