package params

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/internal/dirty"
)

// Store holds the current Params.
//
// Mutations are safe for concurrent use. ChangedSinceLastCheck belongs to a
// single consumer and must only be called from one goroutine.
type Store struct {
	value *dirty.Value[Params]
	gate  *dirty.Gate[Params]
}

// NewStore creates a store holding p, falling back to Defaults if p is invalid.
func NewStore(p Params) *Store {
	if p.Validate() != nil {
		p = Defaults()
	}
	v := dirty.NewValue(p)
	return &Store{value: v, gate: dirty.NewGate(v)}
}

// Params returns a snapshot of the current parameters.
func (s *Store) Params() Params {
	return s.value.Get()
}

// Version returns the mutation counter. It increases on every effective change.
func (s *Store) Version() uint64 {
	return s.value.Version()
}

// Update applies fn to a copy of the current parameters and stores the result
// if it is valid. On error the store is unchanged.
func (s *Store) Update(fn func(*Params)) error {
	_, err := s.value.Update(fn, Params.Validate)
	return err
}

// Replace stores p if it is valid.
func (s *Store) Replace(p Params) error {
	return s.Update(func(cur *Params) { *cur = p })
}

// SetPlaneCount sets the number of planes. n must be at least 1.
func (s *Store) SetPlaneCount(n int) error {
	return s.Update(func(p *Params) { p.PlaneCount = n })
}

// SetPointCount sets the number of base points. n must not be negative.
func (s *Store) SetPointCount(n int) error {
	return s.Update(func(p *Params) { p.PointCount = n })
}

// SetPointSize sets the point scale. size must be positive.
func (s *Store) SetPointSize(size float32) error {
	return s.Update(func(p *Params) { p.PointSize = size })
}

// SetBasePlaneSize sets the size of the first plane. Both components must be positive.
func (s *Store) SetBasePlaneSize(size mgl32.Vec2) error {
	return s.Update(func(p *Params) { p.BasePlaneSize = size })
}

// ChangedSinceLastCheck reports whether the parameters differ from those seen
// at the previous call, then moves the baseline. The first call returns true.
func (s *Store) ChangedSinceLastCheck() bool {
	return s.gate.Changed()
}

// Pending reports what ChangedSinceLastCheck would return, without consuming it.
func (s *Store) Pending() bool {
	return s.gate.Pending()
}
