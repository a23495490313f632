package scenegraph

import "sync"

// generation is one complete entity set, ordered planes, points, sub-points.
type generation struct {
	id       uint32
	entities []Entity
	counts   Counts
}

func (g *generation) planes() []Entity {
	return g.entities[:g.counts.Planes]
}

func (g *generation) points() []Entity {
	start := g.counts.Planes
	return g.entities[start : start+g.counts.Points]
}

func (g *generation) subPoints() []Entity {
	return g.entities[g.counts.Planes+g.counts.Points:]
}

// arena owns the live generation. Readers take the read lock; a rebuild
// prepares the next generation without the lock and swaps it in under the
// write lock, so readers see either the old set or the new one.
type arena struct {
	mu   sync.RWMutex
	live *generation
	last uint32
}

func newArena() *arena {
	return &arena{live: &generation{}}
}

// reserve returns the id of the next generation. Not safe for concurrent
// use; callers serialize rebuilds.
func (a *arena) reserve() uint32 {
	a.last++
	return a.last
}

// swap installs g and returns the previous generation.
func (a *arena) swap(g *generation) *generation {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.live
	a.live = g
	return prev
}

// view runs fn with the live generation under the read lock.
func (a *arena) view(fn func(g *generation)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fn(a.live)
}

func (a *arena) lookup(id EntityID) (Entity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return lookupIn(a.live, id)
}
