// Package scenegraph derives the image-plane entity graph from scene parameters.
//
// A Builder owns every generated entity. Once per frame the host calls
// RebuildIfNeeded; when the parameters changed the builder generates a
// complete new generation (planes, base points, projected sub-points) and
// swaps it in atomically, releasing the previous generation as a whole.
//
//	res := resource.NewCache()
//	store := params.NewStore(params.Defaults())
//	b := scenegraph.NewBuilder(store, res, scenegraph.WithSurface(windows))
//
//	for frame := range frames {
//		b.RebuildIfNeeded()
//		for _, p := range b.Points() {
//			// draw p
//		}
//	}
//
// Geometry and materials come from the resource cache, so a rebuild never
// allocates a second sphere mesh and point #3 keeps its color.
package scenegraph

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/params"
	"github.com/gogpu/imageplanes/resource"
)

// PlaneThickness is the Y scale of the plane mesh before rotation.
const PlaneThickness = 0.01

// planeRotation turns the XZ plane mesh into an XY plane facing the Z axis.
var planeRotation = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})

// SkipReason explains why RebuildIfNeeded did not rebuild.
type SkipReason uint8

const (
	// SkipNone means the scene was rebuilt.
	SkipNone SkipReason = iota
	// SkipUnchanged means parameters are unchanged and no rebuild was forced.
	SkipUnchanged
	// SkipSurfaceUnavailable means there is no primary surface yet.
	SkipSurfaceUnavailable
	// SkipPoolNotReady means the GPU resource pools are not ready.
	SkipPoolNotReady
)

// String implements fmt.Stringer.
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipUnchanged:
		return "unchanged"
	case SkipSurfaceUnavailable:
		return "surface unavailable"
	case SkipPoolNotReady:
		return "pool not ready"
	default:
		return fmt.Sprintf("SkipReason(%d)", uint8(r))
	}
}

// RebuildResult describes one RebuildIfNeeded call.
type RebuildResult struct {
	// Rebuilt is true if a new generation was swapped in.
	Rebuilt bool

	// Skipped is the reason nothing was rebuilt. SkipNone when Rebuilt.
	Skipped SkipReason

	// Generation is the live generation after the call.
	Generation uint32

	// Counts is the size of the live generation after the call.
	Counts Counts

	// Released is the number of entities released from the previous generation.
	Released int
}

// Builder generates and owns the scene entities.
//
// Queries are safe for concurrent use with RebuildIfNeeded. RebuildIfNeeded
// calls are serialized.
type Builder struct {
	params *params.Store
	res    *resource.Cache
	opts   options

	// buildMu serializes rebuilds and guards rng.
	buildMu sync.Mutex
	rng     *rand.Rand

	arena       *arena
	invalidated atomic.Bool
	rebuilds    atomic.Uint64
}

// NewBuilder creates a builder over store and res. Nothing is generated
// until the first RebuildIfNeeded.
func NewBuilder(store *params.Store, res *resource.Cache, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{
		params: store,
		res:    res,
		opts:   o,
		rng:    o.rng,
		arena:  newArena(),
	}
}

// ---------------------------------------------------------------------------
// Rebuild
// ---------------------------------------------------------------------------

// RebuildIfNeeded rebuilds the scene if the parameters changed since the
// previous rebuild or Invalidate was called.
//
// While the primary surface or the resource pools are unavailable the call
// returns without looking at the parameters, so a pending change is picked
// up by the first call after they become available.
func (b *Builder) RebuildIfNeeded() RebuildResult {
	b.buildMu.Lock()
	defer b.buildMu.Unlock()

	if b.opts.surface != nil {
		if _, ok := b.opts.surface.PrimarySize(); !ok {
			logger().Debug("scene rebuild deferred", "reason", SkipSurfaceUnavailable.String())
			return b.skipped(SkipSurfaceUnavailable)
		}
	}
	if b.opts.pool != nil && !b.opts.pool.Ready() {
		logger().Debug("scene rebuild deferred", "reason", SkipPoolNotReady.String())
		return b.skipped(SkipPoolNotReady)
	}

	changed := b.params.ChangedSinceLastCheck()
	forced := b.invalidated.Swap(false)
	if !changed && !forced {
		return b.skipped(SkipUnchanged)
	}

	p := b.params.Params()
	next := b.generate(p, b.arena.reserve())
	prev := b.arena.swap(next)
	b.rebuilds.Add(1)

	logger().Info("scene rebuilt",
		"generation", next.id,
		"planes", next.counts.Planes,
		"points", next.counts.Points,
		"subPoints", next.counts.SubPoints,
		"released", len(prev.entities),
		"forced", forced && !changed)

	return RebuildResult{
		Rebuilt:    true,
		Generation: next.id,
		Counts:     next.counts,
		Released:   len(prev.entities),
	}
}

func (b *Builder) skipped(reason SkipReason) RebuildResult {
	r := RebuildResult{Skipped: reason}
	b.arena.view(func(g *generation) {
		r.Generation = g.id
		r.Counts = g.counts
	})
	return r
}

// Invalidate forces the next RebuildIfNeeded to rebuild.
func (b *Builder) Invalidate() {
	b.invalidated.Store(true)
}

// Rebuilds returns the number of completed rebuilds.
func (b *Builder) Rebuilds() uint64 {
	return b.rebuilds.Load()
}

// generate builds a complete generation from p. Called with buildMu held.
func (b *Builder) generate(p params.Params, id uint32) *generation {
	g := &generation{
		id:       id,
		entities: make([]Entity, 0, p.EntityCount()),
	}
	add := func(e Entity) {
		e.ID = EntityID{Generation: id, Slot: uint32(len(g.entities))}
		g.entities = append(g.entities, e)
	}
	size := p.BasePlaneSize

	planeMesh := b.res.Geometry(resource.ArchetypePlane)
	overlay, overlayColor := b.res.Material(b.opts.overlayKey)
	for i := 1; i <= p.PlaneCount; i++ {
		depth := float32(i)
		add(Entity{
			Kind:  KindPlane,
			Name:  fmt.Sprintf("plane-%d", i),
			Index: i,
			Depth: i,
			Transform: Transform{
				Translation: mgl32.Vec3{0, 0, depth},
				Rotation:    planeRotation,
				Scale:       mgl32.Vec3{size.X() * depth, PlaneThickness, size.Y() * depth},
			},
			Mesh:        planeMesh,
			Material:    overlay,
			MaterialKey: b.opts.overlayKey,
			Color:       overlayColor,
		})
	}
	g.counts.Planes = p.PlaneCount

	sphere := b.res.Geometry(resource.ArchetypeSphere)
	scale := mgl32.Vec3{p.PointSize, p.PointSize, p.PointSize}
	base := make([]Entity, 0, p.PointCount)
	for index := 0; index < p.PointCount; index++ {
		key := resource.IndexKey(index)
		mat, color := b.res.Material(key)
		e := Entity{
			Kind:  KindPoint,
			Name:  fmt.Sprintf("point-%d", index),
			Index: index,
			Depth: 1,
			Transform: Transform{
				Translation: SamplePoint(b.rng, size),
				Rotation:    mgl32.QuatIdent(),
				Scale:       scale,
			},
			Mesh:        sphere,
			Material:    mat,
			MaterialKey: key,
			Color:       color,
		}
		add(e)
		base = append(base, e)
	}
	g.counts.Points = p.PointCount

	for _, pt := range base {
		for d := 2; d <= p.PlaneCount; d++ {
			sub := pt
			sub.Kind = KindSubPoint
			sub.Name = fmt.Sprintf("sub-point %d-%d", d, pt.Index)
			sub.Depth = d
			sub.Transform.Translation = Project(pt.Position(), d)
			add(sub)
		}
	}
	g.counts.SubPoints = p.SubPointCount()

	return g
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Generation returns the live generation, 0 before the first rebuild.
func (b *Builder) Generation() uint32 {
	var id uint32
	b.arena.view(func(g *generation) { id = g.id })
	return id
}

// Counts returns the size of the live generation.
func (b *Builder) Counts() Counts {
	var c Counts
	b.arena.view(func(g *generation) { c = g.counts })
	return c
}

// Planes returns the planes ordered by depth.
func (b *Builder) Planes() []Entity {
	var out []Entity
	b.arena.view(func(g *generation) { out = clone(g.planes()) })
	return out
}

// Points returns the base points ordered by index.
func (b *Builder) Points() []Entity {
	var out []Entity
	b.arena.view(func(g *generation) { out = clone(g.points()) })
	return out
}

// SubPoints returns the projected sub-points, grouped by parent point and
// ordered by depth within a group.
func (b *Builder) SubPoints() []Entity {
	var out []Entity
	b.arena.view(func(g *generation) { out = clone(g.subPoints()) })
	return out
}

// Entities returns every live entity: planes, then points, then sub-points.
func (b *Builder) Entities() []Entity {
	var out []Entity
	b.arena.view(func(g *generation) { out = clone(g.entities) })
	return out
}

// Lookup returns the live entity with the given ID. IDs from earlier
// generations report false.
func (b *Builder) Lookup(id EntityID) (Entity, bool) {
	return b.arena.lookup(id)
}

// Each calls fn for every live entity under the read lock, stopping when fn
// returns false. fn must not call RebuildIfNeeded.
func (b *Builder) Each(fn func(Entity) bool) {
	b.arena.view(func(g *generation) {
		for i := range g.entities {
			if !fn(g.entities[i]) {
				return
			}
		}
	})
}

func clone(src []Entity) []Entity {
	if len(src) == 0 {
		return nil
	}
	out := make([]Entity, len(src))
	copy(out, src)
	return out
}
