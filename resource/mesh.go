package resource

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Archetype identifies a geometry shape shared by many entities.
type Archetype uint8

// Built-in archetypes.
const (
	// ArchetypePlane is a unit quad in the XZ plane with a +Y normal.
	ArchetypePlane Archetype = iota + 1

	// ArchetypeSphere is a UV sphere of radius 0.5 centred at the origin.
	ArchetypeSphere
)

// String implements fmt.Stringer.
func (a Archetype) String() string {
	switch a {
	case ArchetypePlane:
		return "plane"
	case ArchetypeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("archetype(%d)", uint8(a))
	}
}

// Default sphere tessellation.
const (
	DefaultSphereSectors = 32
	DefaultSphereStacks  = 18
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Topology  gputypes.PrimitiveTopology
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of indexed triangles.
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// PlaneMesh returns a 1x1 quad in the XZ plane facing +Y.
func PlaneMesh() Mesh {
	const h = 0.5
	return Mesh{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Positions: []mgl32.Vec3{
			{-h, 0, -h},
			{h, 0, -h},
			{h, 0, h},
			{-h, 0, h},
		},
		Normals: []mgl32.Vec3{
			{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
		},
		UVs: []mgl32.Vec2{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		},
		Indices: []uint16{0, 2, 1, 0, 3, 2},
	}
}

// SphereMesh returns a UV sphere of radius 0.5.
// sectors is the number of longitude slices, stacks the number of latitude bands.
func SphereMesh(sectors, stacks int) Mesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	const radius = 0.5

	n := (stacks + 1) * (sectors + 1)
	m := Mesh{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Positions: make([]mgl32.Vec3, 0, n),
		Normals:   make([]mgl32.Vec3, 0, n),
		UVs:       make([]mgl32.Vec2, 0, n),
		Indices:   make([]uint16, 0, stacks*sectors*6),
	}

	for i := 0; i <= stacks; i++ {
		phi := math.Pi/2 - float64(i)*math.Pi/float64(stacks)
		xy := math.Cos(phi)
		z := math.Sin(phi)
		for j := 0; j <= sectors; j++ {
			theta := float64(j) * 2 * math.Pi / float64(sectors)
			normal := mgl32.Vec3{
				float32(xy * math.Cos(theta)),
				float32(xy * math.Sin(theta)),
				float32(z),
			}
			m.Normals = append(m.Normals, normal)
			m.Positions = append(m.Positions, normal.Mul(radius))
			m.UVs = append(m.UVs, mgl32.Vec2{
				float32(j) / float32(sectors),
				float32(i) / float32(stacks),
			})
		}
	}

	// Pole bands emit one triangle per sector, inner bands two.
	//nolint:gosec // vertex count is bounded by the tessellation, well below 2^16
	for i := 0; i < stacks; i++ {
		k1 := uint16(i * (sectors + 1))
		k2 := k1 + uint16(sectors+1)
		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				m.Indices = append(m.Indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, k1+1, k2, k2+1)
			}
		}
	}
	return m
}

// DefaultSphereMesh returns SphereMesh with the default tessellation.
func DefaultSphereMesh() Mesh {
	return SphereMesh(DefaultSphereSectors, DefaultSphereStacks)
}
