package resource

import (
	"fmt"
	"sync"
)

// Handle is a non-owning reference to an asset stored in an Assets pool.
//
// Handles are plain ids: copying one never keeps anything alive, and two
// handles are the same resource exactly when they compare equal. The zero
// Handle refers to nothing.
type Handle[T any] struct {
	id uint32
}

// ID returns the numeric id of the handle. Zero means invalid.
func (h Handle[T]) ID() uint32 { return h.id }

// IsValid reports whether the handle refers to an asset.
func (h Handle[T]) IsValid() bool { return h.id != 0 }

// String implements fmt.Stringer.
func (h Handle[T]) String() string {
	return fmt.Sprintf("handle#%d", h.id)
}

// Assets owns every asset of one type. It is the strong side of the
// handle relationship: assets live as long as the pool.
//
// Assets is safe for concurrent use.
type Assets[T any] struct {
	mu     sync.RWMutex
	items  []T // index = id - 1
	labels []string
}

// NewAssets creates an empty pool.
func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{}
}

// Add stores v and returns its handle.
func (a *Assets[T]) Add(label string, v T) Handle[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = append(a.items, v)
	a.labels = append(a.labels, label)
	//nolint:gosec // asset count is bounded far below 2^32
	return Handle[T]{id: uint32(len(a.items))}
}

// Get returns a copy of the asset behind h.
func (a *Assets[T]) Get(h Handle[T]) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if h.id == 0 || int(h.id) > len(a.items) {
		var zero T
		return zero, false
	}
	return a.items[h.id-1], true
}

// Label returns the debug label the asset was added with.
func (a *Assets[T]) Label(h Handle[T]) string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if h.id == 0 || int(h.id) > len(a.labels) {
		return ""
	}
	return a.labels[h.id-1]
}

// Len returns the number of stored assets.
func (a *Assets[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}
