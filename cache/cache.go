// Package cache provides a generic memoizing store for process-lifetime resources.
//
// A Store maps keys to values that are created lazily on first request and
// kept until the Store itself is dropped. There is no eviction and no removal:
// once a key has a value, every later lookup returns that same value. This is
// what gives shared GPU resources a stable identity across scene rebuilds.
//
//	meshes := cache.New[Archetype, Handle]()
//	h := meshes.GetOrCreate(ArchetypeSphere, func() Handle {
//	    return assets.Add(SphereMesh())
//	})
//
// # Thread Safety
//
// Store is safe for concurrent use. GetOrCreate runs the create function
// under the store lock, so two concurrent misses on the same key produce a
// single value.
package cache

import (
	"sync"
	"sync/atomic"
)

// Store is a thread-safe insert-only memo.
//
// Store must not be copied after creation (has mutex).
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a cached value by key.
// Returns (value, true) if found, (zero, false) otherwise.
// Get does not count towards hit/miss statistics.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok
}

// GetOrCreate returns the cached value for key, or creates, stores and
// returns it. The create function is called at most once per key for the
// lifetime of the store.
//
// Keep create fast: it runs with the store write lock held.
func (s *Store[K, V]) GetOrCreate(key K, create func() V) V {
	// Fast path: read lock
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check after acquiring write lock
	if v, ok := s.entries[key]; ok {
		s.hits.Add(1)
		return v
	}

	s.misses.Add(1)
	v = create()
	s.entries[key] = v
	return v
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns a snapshot of the stored keys in unspecified order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns current store statistics.
func (s *Store[K, V]) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:     s.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// Stats contains store statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of GetOrCreate calls served from the store.
	Hits uint64
	// Misses is the number of GetOrCreate calls that created a value.
	Misses uint64
	// HitRate is the hit rate 0.0 to 1.0.
	HitRate float64
}
