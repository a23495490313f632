// Package dirty provides versioned values with single-consumer change gates.
//
// A Value bumps a monotonic version on every mutation that actually changes
// the stored value. A Gate remembers the version and value it last observed,
// so the question "did anything change since I last looked" is answered by
// exactly one party instead of a shared flag that several readers could
// consume by accident.
package dirty

import "sync"

// Value holds a comparable value together with a mutation counter.
//
// Value is safe for concurrent use.
// Value must not be copied after creation (has mutex).
type Value[T comparable] struct {
	mu      sync.RWMutex
	value   T
	version uint64
}

// NewValue creates a Value holding v at version 0.
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{value: v}
}

// Get returns the current value.
func (d *Value[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Version returns the mutation counter.
func (d *Value[T]) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Snapshot returns the value and version read under one lock.
func (d *Value[T]) Snapshot() (T, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value, d.version
}

// Set stores v and bumps the version if v differs from the current value.
// Returns true if the value changed.
func (d *Value[T]) Set(v T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.value == v {
		return false
	}
	d.value = v
	d.version++
	return true
}

// Update applies fn to a copy of the current value and stores the result
// if check accepts it. A nil check accepts everything.
// Returns whether the value changed, or the error from check.
func (d *Value[T]) Update(fn func(*T), check func(T) error) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.value
	fn(&next)
	if check != nil {
		if err := check(next); err != nil {
			return false, err
		}
	}
	if next == d.value {
		return false, nil
	}
	d.value = next
	d.version++
	return true, nil
}

// Gate observes a Value on behalf of a single consumer.
//
// Gate is not safe for concurrent use: it belongs to exactly one consumer.
type Gate[T comparable] struct {
	src      *Value[T]
	version  uint64
	seen     T
	observed bool
}

// NewGate creates a gate over src. The first call to Changed reports true.
func NewGate[T comparable](src *Value[T]) *Gate[T] {
	return &Gate[T]{src: src}
}

// Changed reports whether the source value differs from the value observed
// at the previous call, then moves the baseline to the current value.
//
// An unchanged version short-circuits. A bumped version still compares values,
// so an edit that was reverted before the next check is not a change.
func (g *Gate[T]) Changed() bool {
	v, version := g.src.Snapshot()
	if !g.observed {
		g.observed = true
		g.version = version
		g.seen = v
		return true
	}
	if version == g.version {
		return false
	}
	g.version = version
	if v == g.seen {
		return false
	}
	g.seen = v
	return true
}

// Pending reports whether Changed would return true, without moving the baseline.
func (g *Gate[T]) Pending() bool {
	if !g.observed {
		return true
	}
	v, version := g.src.Snapshot()
	return version != g.version && v != g.seen
}
