package render

import (
	"cmp"
	"image"
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/scenegraph"
)

// MaterialLookup resolves material handles. *resource.Cache implements it.
type MaterialLookup interface {
	MaterialData(h resource.Handle[resource.Material]) (resource.Material, bool)
}

// MeshLookup resolves mesh handles. *resource.Cache implements it.
type MeshLookup interface {
	Mesh(h resource.Handle[resource.Mesh]) (resource.Mesh, bool)
}

// DrawItem is one entity as seen by one camera.
type DrawItem struct {
	Entity scenegraph.EntityID
	Kind   scenegraph.Kind
	Index  int

	Mesh     resource.Handle[resource.Mesh]
	Material resource.Handle[resource.Material]

	Model mgl32.Mat4
	Color gputypes.Color
	Blend bool

	// Distance is the view-space depth of the entity origin.
	Distance float32

	// Radius is the world-space bounding radius, used for point discs.
	Radius float32

	// Label is drawn next to base points when labels are enabled.
	Label string
}

// Center returns the world position of the item.
func (it DrawItem) Center() mgl32.Vec3 {
	return it.Model.Col(3).Vec3()
}

// Line is a world-space debug segment.
type Line struct {
	From, To mgl32.Vec3
	Color    gputypes.Color
}

// DrawList is everything one camera draws into one viewport rectangle.
//
// Items are in painter's order: opaque items back to front, then blended
// items back to front. Lines are drawn after all items.
type DrawList struct {
	Camera         Camera
	Rect           image.Rectangle
	ViewProjection mgl32.Mat4
	Items          []DrawItem
	Lines          []Line
}

// Len returns the number of items.
func (l DrawList) Len() int {
	return len(l.Items)
}

// Collect builds the draw list of cam for rect from entities.
// Entities behind the camera or with unknown materials are dropped.
func Collect(cam Camera, rect image.Rectangle, entities []scenegraph.Entity, materials MaterialLookup) DrawList {
	list := DrawList{
		Camera:         cam,
		Rect:           rect,
		ViewProjection: cam.ViewProjection(rect),
		Items:          make([]DrawItem, 0, len(entities)),
	}
	view := cam.View()

	for _, e := range entities {
		m, ok := materials.MaterialData(e.Material)
		if !ok {
			continue
		}
		model := e.Transform.Matrix()
		pos := e.Position()
		dist := -view.Mul4x1(pos.Vec4(1)).Z()

		item := DrawItem{
			Entity:   e.ID,
			Kind:     e.Kind,
			Index:    e.Index,
			Mesh:     e.Mesh,
			Material: e.Material,
			Model:    model,
			Color:    m.Color,
			Blend:    m.AlphaMode == resource.AlphaBlend,
			Distance: dist,
		}
		if e.IsPoint() {
			if dist <= cam.Near {
				continue
			}
			item.Radius = 0.5 * e.Transform.Scale.X()
		}
		if e.Kind == scenegraph.KindPoint {
			item.Label = strconv.Itoa(e.Index)
		}
		list.Items = append(list.Items, item)
	}

	slices.SortStableFunc(list.Items, func(a, b DrawItem) int {
		if a.Blend != b.Blend {
			if a.Blend {
				return 1
			}
			return -1
		}
		return cmp.Compare(b.Distance, a.Distance)
	})
	return list
}

// Axis colors of WorldAxes.
var (
	AxisX = gputypes.Color{R: 1, A: 1}
	AxisY = gputypes.Color{G: 1, A: 1}
	AxisZ = gputypes.Color{B: 1, A: 1}
)

// WorldAxes returns the unit axes at the world origin: X red, Y green, Z blue.
func WorldAxes() []Line {
	return []Line{
		{To: mgl32.Vec3{1, 0, 0}, Color: AxisX},
		{To: mgl32.Vec3{0, 1, 0}, Color: AxisY},
		{To: mgl32.Vec3{0, 0, 1}, Color: AxisZ},
	}
}
