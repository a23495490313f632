package render

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default perspective parameters.
const (
	DefaultFovY = math.Pi / 4
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// PrimaryName is the name of the full-surface camera.
const PrimaryName = "primary"

// Camera is a perspective view of the scene.
type Camera struct {
	Name string

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
	Far  float32

	// Viewport names the compositor viewport this camera renders into.
	// Empty means the whole surface.
	Viewport string
}

// PrimaryCamera returns the main camera: at the origin, looking down +Z
// with +Y up, covering the whole surface.
func PrimaryCamera() Camera {
	return Camera{
		Name:   PrimaryName,
		Target: mgl32.Vec3{0, 0, 1},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   DefaultFovY,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// SideCamera returns a camera bound to viewport that looks at the plane
// stack from above and to the side, so the projection rays are visible.
// depth is the deepest plane; the camera backs off with it.
func SideCamera(viewport string, depth int) Camera {
	d := float32(max(depth, 1))
	return Camera{
		Name:     viewport,
		Position: mgl32.Vec3{-1.5 * d, 0.75 * d, -0.5 * d},
		Target:   mgl32.Vec3{0, 0, d / 2},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Viewport: viewport,
	}
}

// View returns the world-to-view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for aspect (width / height).
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View for a viewport rectangle.
func (c Camera) ViewProjection(rect image.Rectangle) mgl32.Mat4 {
	return c.Projection(aspectOf(rect)).Mul4(c.View())
}

// Distance returns the view-space depth of world point p: positive in front
// of the camera.
func (c Camera) Distance(p mgl32.Vec3) float32 {
	return -c.View().Mul4x1(p.Vec4(1)).Z()
}

// FocalLength returns the distance, in pixels of rect, at which one world
// unit spans one pixel.
func (c Camera) FocalLength(rect image.Rectangle) float32 {
	return float32(rect.Dy()) / 2 / float32(math.Tan(float64(c.FovY)/2))
}

func aspectOf(rect image.Rectangle) float32 {
	if rect.Dy() <= 0 {
		return 1
	}
	return float32(rect.Dx()) / float32(rect.Dy())
}
