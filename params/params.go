// Package params holds the tunable parameters of the generated scene.
//
// A Store keeps the current Params and answers, for exactly one consumer,
// whether they changed since that consumer last looked:
//
//	store := params.NewStore(params.Defaults())
//	_ = store.SetPlaneCount(3)
//	if store.ChangedSinceLastCheck() {
//		// rebuild
//	}
//
// The scene builder is that consumer. Everyone else learns whether a rebuild
// happened from the builder, never from the store.
package params

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalid reports a parameter value outside its domain.
var ErrInvalid = errors.New("params: invalid value")

// Default parameter values.
const (
	DefaultPlaneCount = 7
	DefaultPointCount = 10
	DefaultPointSize  = 0.05
)

// DefaultBasePlaneSize is the default width and height of the first plane.
var DefaultBasePlaneSize = mgl32.Vec2{2, 2}

// Params is one consistent parameter set.
type Params struct {
	// PlaneCount is the number of image planes, at depths 1..PlaneCount. At least 1.
	PlaneCount int

	// PointCount is the number of base points sampled on the first plane.
	PointCount int

	// PointSize is the uniform scale of every point sphere. Positive.
	PointSize float32

	// BasePlaneSize is the width (X) and height (Y) of the plane at depth 1.
	// Plane i is BasePlaneSize*i. Both components positive.
	BasePlaneSize mgl32.Vec2
}

// Defaults returns the startup parameter set.
func Defaults() Params {
	return Params{
		PlaneCount:    DefaultPlaneCount,
		PointCount:    DefaultPointCount,
		PointSize:     DefaultPointSize,
		BasePlaneSize: DefaultBasePlaneSize,
	}
}

// Validate returns an error wrapping ErrInvalid if any field is out of range.
func (p Params) Validate() error {
	switch {
	case p.PlaneCount < 1:
		return fmt.Errorf("%w: plane count %d, want >= 1", ErrInvalid, p.PlaneCount)
	case p.PointCount < 0:
		return fmt.Errorf("%w: point count %d, want >= 0", ErrInvalid, p.PointCount)
	case !(p.PointSize > 0):
		return fmt.Errorf("%w: point size %g, want > 0", ErrInvalid, p.PointSize)
	case !(p.BasePlaneSize.X() > 0) || !(p.BasePlaneSize.Y() > 0):
		return fmt.Errorf("%w: base plane size %v, want both > 0", ErrInvalid, p.BasePlaneSize)
	}
	return nil
}

// SubPointCount returns the number of projected sub-points, PointCount*(PlaneCount-1).
func (p Params) SubPointCount() int {
	if p.PlaneCount < 2 {
		return 0
	}
	return p.PointCount * (p.PlaneCount - 1)
}

// EntityCount returns the total number of generated entities.
func (p Params) EntityCount() int {
	return p.PlaneCount + p.PointCount + p.SubPointCount()
}
