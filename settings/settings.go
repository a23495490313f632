// Package settings holds the UI and gizmo settings and the settings panel
// model that edits them together with the scene parameters.
package settings

import (
	"errors"
	"fmt"

	"github.com/gogpu/imageplanes/internal/dirty"
)

// ErrInvalid reports a setting outside its range.
var ErrInvalid = errors.New("settings: invalid value")

// UI scale limits.
const (
	MinScale = 0.5
	MaxScale = 1.5
)

// UI configures the settings UI itself.
type UI struct {
	// ShowWorldUI shows the world inspector next to the settings panel.
	ShowWorldUI bool

	// Scale is the UI scale factor in [MinScale, MaxScale].
	Scale float32
}

// DefaultUI returns the startup UI settings.
func DefaultUI() UI {
	return UI{Scale: 1}
}

// Validate reports whether u is in range.
func (u UI) Validate() error {
	if !(u.Scale >= MinScale && u.Scale <= MaxScale) {
		return fmt.Errorf("%w: ui scale %g outside [%g, %g]", ErrInvalid, u.Scale, MinScale, MaxScale)
	}
	return nil
}

// Gizmo configures debug gizmos.
type Gizmo struct {
	// ShowWorldAxes draws unit X, Y and Z axes at the origin.
	ShowWorldAxes bool
}

// ScaleApplier receives the UI scale factor.
type ScaleApplier interface {
	SetScale(float32)
}

// ScaleFunc adapts a function to ScaleApplier.
type ScaleFunc func(float32)

// SetScale implements ScaleApplier.
func (f ScaleFunc) SetScale(s float32) { f(s) }

// UIStore holds the UI settings and applies the scale only when it changes.
type UIStore struct {
	value *dirty.Value[UI]
	gate  *dirty.Gate[UI]

	applied   bool
	lastScale float32
}

// NewUIStore creates a store holding u, or DefaultUI if u is invalid.
func NewUIStore(u UI) *UIStore {
	if u.Validate() != nil {
		u = DefaultUI()
	}
	v := dirty.NewValue(u)
	return &UIStore{value: v, gate: dirty.NewGate(v)}
}

// Get returns the current settings.
func (s *UIStore) Get() UI {
	return s.value.Get()
}

// Set stores u if it is valid.
func (s *UIStore) Set(u UI) error {
	_, err := s.value.Update(func(cur *UI) { *cur = u }, UI.Validate)
	return err
}

// SetScale sets the UI scale.
func (s *UIStore) SetScale(scale float32) error {
	_, err := s.value.Update(func(u *UI) { u.Scale = scale }, UI.Validate)
	return err
}

// SetShowWorldUI toggles the world inspector.
func (s *UIStore) SetShowWorldUI(show bool) {
	_, _ = s.value.Update(func(u *UI) { u.ShowWorldUI = show }, nil)
}

// Apply passes the scale to a if it differs from the scale of the previous
// Apply. Edits of other UI settings never re-apply it. The first call always
// applies. Returns whether a was called. Apply is meant to be called from the
// frame goroutine only.
func (s *UIStore) Apply(a ScaleApplier) bool {
	if !s.gate.Changed() {
		return false
	}
	scale := s.Get().Scale
	if s.applied && scale == s.lastScale {
		return false
	}
	a.SetScale(scale)
	s.applied, s.lastScale = true, scale
	return true
}

// GizmoStore holds the gizmo settings.
type GizmoStore struct {
	value *dirty.Value[Gizmo]
}

// NewGizmoStore creates a store holding g.
func NewGizmoStore(g Gizmo) *GizmoStore {
	return &GizmoStore{value: dirty.NewValue(g)}
}

// Get returns the current settings.
func (s *GizmoStore) Get() Gizmo {
	return s.value.Get()
}

// Set stores g.
func (s *GizmoStore) Set(g Gizmo) {
	s.value.Set(g)
}
