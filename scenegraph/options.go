package scenegraph

import (
	"image"
	"math/rand/v2"

	"github.com/gogpu/imageplanes/resource"
)

// SurfaceSource reports the primary render surface.
// surface.Registry implements it.
type SurfaceSource interface {
	// PrimarySize returns the physical size of the primary surface, or false
	// if there is no primary surface yet.
	PrimarySize() (image.Point, bool)
}

// PoolStatus reports whether the GPU resource pools can accept uploads.
// gpu.Pool implements it.
type PoolStatus interface {
	Ready() bool
}

// PlaneOverlayKey is the material key shared by every plane.
var PlaneOverlayKey = resource.ColorKey(resource.Green300)

// Option configures a Builder.
type Option func(*options)

type options struct {
	rng        *rand.Rand
	surface    SurfaceSource
	pool       PoolStatus
	overlayKey resource.MaterialKey
}

func defaultOptions() options {
	return options{overlayKey: PlaneOverlayKey}
}

// WithRand sets the random source for point positions.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithSeed seeds the point position source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed+1)))
}

// WithSurface makes rebuilds wait until s reports a primary surface.
// Without it the builder assumes the surface is always available.
func WithSurface(s SurfaceSource) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithPool makes rebuilds wait until p is ready.
func WithPool(p PoolStatus) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithPlaneMaterial overrides the material key shared by planes.
func WithPlaneMaterial(key resource.MaterialKey) Option {
	return func(o *options) {
		o.overlayKey = key
	}
}
