// Package resource memoizes the graphics resources of the generated scene.
//
// A Cache hands out geometry handles by Archetype and material handles by
// MaterialKey. Resources are created on first request and never evicted, so
// an identical request always returns the identical handle: the sphere mesh
// is allocated once no matter how many points share it, and point #3 keeps
// its color across any number of scene rebuilds.
//
//	res := resource.NewCache()
//	mesh := res.Geometry(resource.ArchetypeSphere)
//	mat, color := res.Material(resource.IndexKey(3))
//
// The Cache exclusively owns the assets (see Assets); callers only ever hold
// Handle values.
package resource

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/cache"
)

// MeshFactory builds the default mesh of an archetype.
type MeshFactory func() Mesh

// Option configures a Cache.
type Option func(*options)

type options struct {
	rng       *rand.Rand
	factories map[Archetype]MeshFactory
}

// WithRand sets the random source used for index-keyed material colors.
// Use a seeded source for reproducible colors.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithSeed is shorthand for WithRand with a PCG source seeded by seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithMeshFactory registers or replaces the default mesh of archetype a.
func WithMeshFactory(a Archetype, f MeshFactory) Option {
	return func(o *options) {
		o.factories[a] = f
	}
}

type materialEntry struct {
	handle Handle[Material]
	color  gputypes.Color
}

// Cache is the process-lifetime resource pool of the scene.
//
// Cache is safe for concurrent use.
type Cache struct {
	meshes    *Assets[Mesh]
	materials *Assets[Material]

	geometry *cache.Store[Archetype, Handle[Mesh]]
	surfaces *cache.Store[MaterialKey, materialEntry]

	factories map[Archetype]MeshFactory

	// rngMu guards rng.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewCache creates an empty cache with the built-in plane and sphere archetypes.
func NewCache(opts ...Option) *Cache {
	o := options{
		factories: map[Archetype]MeshFactory{
			ArchetypePlane:  PlaneMesh,
			ArchetypeSphere: DefaultSphereMesh,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Cache{
		meshes:    NewAssets[Mesh](),
		materials: NewAssets[Material](),
		geometry:  cache.New[Archetype, Handle[Mesh]](),
		surfaces:  cache.New[MaterialKey, materialEntry](),
		factories: o.factories,
		rng:       o.rng,
	}
}

// Geometry returns the shared mesh handle of archetype a, creating the
// default mesh on first request.
//
// Geometry panics if a has no registered factory: that is a programming
// error, not a runtime condition.
func (c *Cache) Geometry(a Archetype) Handle[Mesh] {
	return c.geometry.GetOrCreate(a, func() Handle[Mesh] {
		f, ok := c.factories[a]
		if !ok {
			panic(fmt.Sprintf("resource: no mesh factory for %v", a))
		}
		h := c.meshes.Add(a.String(), f())
		logger().Debug("geometry created", "archetype", a.String(), "handle", h.ID())
		return h
	})
}

// Material returns the shared material handle and color for key, creating
// the material on first request. Index keys get a random color, color keys
// use theirs verbatim; both are unlit and double-sided. Later requests return
// the stored handle and color unchanged.
func (c *Cache) Material(key MaterialKey) (Handle[Material], gputypes.Color) {
	e := c.surfaces.GetOrCreate(key, func() materialEntry {
		var color gputypes.Color
		if rgba, ok := key.RGBA(); ok {
			color = ColorFromRGBA8(rgba)
		} else {
			c.rngMu.Lock()
			color = RandomColor(c.rng)
			c.rngMu.Unlock()
		}
		h := c.materials.Add(key.String(), UnlitMaterial(color))
		logger().Debug("material created", "key", key.String(), "handle", h.ID())
		return materialEntry{handle: h, color: color}
	})
	return e.handle, e.color
}

// MaterialHandle returns only the material handle for key.
func (c *Cache) MaterialHandle(key MaterialKey) Handle[Material] {
	h, _ := c.Material(key)
	return h
}

// Color returns only the color for key.
func (c *Cache) Color(key MaterialKey) gputypes.Color {
	_, color := c.Material(key)
	return color
}

// Mesh returns a copy of the mesh behind h.
func (c *Cache) Mesh(h Handle[Mesh]) (Mesh, bool) {
	return c.meshes.Get(h)
}

// MaterialData returns a copy of the material behind h.
func (c *Cache) MaterialData(h Handle[Material]) (Material, bool) {
	return c.materials.Get(h)
}

// Stats describes the cache contents.
type Stats struct {
	Geometry  cache.Stats
	Materials cache.Stats
}

// Stats returns current statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Geometry:  c.geometry.Stats(),
		Materials: c.surfaces.Stats(),
	}
}
