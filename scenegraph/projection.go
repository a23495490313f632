package scenegraph

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Project returns base point p dilated to depth d: the point where the ray
// from the origin through p crosses the plane at depth d when p is on the
// plane at depth 1.
func Project(p mgl32.Vec3, d int) mgl32.Vec3 {
	return p.Mul(float32(d))
}

// Unproject maps a position on the plane at depth d back to the base plane.
func Unproject(p mgl32.Vec3, d int) mgl32.Vec3 {
	if d == 0 {
		return p
	}
	return p.Mul(1 / float32(d))
}

// SamplePoint returns a point uniform in the base rectangle of the given
// size centred on the origin, on the plane at depth 1.
func SamplePoint(r *rand.Rand, size mgl32.Vec2) mgl32.Vec3 {
	return mgl32.Vec3{
		(r.Float32() - 0.5) * size.X(),
		(r.Float32() - 0.5) * size.Y(),
		1,
	}
}
