package scenegraph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/resource"
)

// Kind tags a generated entity.
type Kind uint8

const (
	// KindPlane is an image plane at an integer depth.
	KindPlane Kind = iota + 1
	// KindPoint is a base point on the first plane.
	KindPoint
	// KindSubPoint is a base point projected onto a deeper plane.
	KindSubPoint
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindPoint:
		return "point"
	case KindSubPoint:
		return "sub-point"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// EntityID names an entity within one generation. IDs from a previous
// generation never resolve, even if the slot is reused.
type EntityID struct {
	Generation uint32
	Slot       uint32
}

// IsZero reports whether id is the zero ID, which never names an entity.
func (id EntityID) IsZero() bool {
	return id.Generation == 0
}

// String implements fmt.Stringer.
func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Generation, id.Slot)
}

// Transform places an entity in the world. The model matrix is T * R * S.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the model matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}

// Entity is one generated scene entity. Entities are values: the builder
// hands out copies and nothing outside the package can mutate the live set.
type Entity struct {
	ID   EntityID
	Kind Kind
	Name string

	// Index is the point identity for points and sub-points and the plane
	// number for planes.
	Index int

	// Depth is the plane depth the entity sits on: i for plane i, 1 for base
	// points, d for sub-points.
	Depth int

	Transform Transform

	Mesh        resource.Handle[resource.Mesh]
	Material    resource.Handle[resource.Material]
	MaterialKey resource.MaterialKey
	Color       gputypes.Color
}

// Position returns the world translation.
func (e Entity) Position() mgl32.Vec3 {
	return e.Transform.Translation
}

// IsPoint reports whether e is a base point or a sub-point.
func (e Entity) IsPoint() bool {
	return e.Kind == KindPoint || e.Kind == KindSubPoint
}

// Counts is the size of a generation by kind.
type Counts struct {
	Planes    int
	Points    int
	SubPoints int
}

// Total returns the number of entities.
func (c Counts) Total() int {
	return c.Planes + c.Points + c.SubPoints
}
