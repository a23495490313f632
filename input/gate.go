// Package input arbitrates pointer input between the UI and the free camera.
//
// Once per frame, before the camera consumes pointer input, the host asks the
// Gate whether camera motion is allowed. Motion is suppressed while the UI
// layer claims the pointer or a transform gizmo is active or focused, so the
// camera never acts on an event a widget already handled.
package input

// PointerLayer is the UI layer's view of the pointer.
type PointerLayer interface {
	// WantsPointerInput reports whether a widget is consuming the pointer.
	WantsPointerInput() bool
	// IsPointerOverArea reports whether the pointer is over a UI window.
	IsPointerOverArea() bool
}

// Gizmo is a transform manipulation widget.
type Gizmo interface {
	// IsActive reports whether the gizmo is being dragged.
	IsActive() bool
	// IsFocused reports whether the pointer hovers a gizmo handle.
	IsFocused() bool
}

// GizmoSource lists the gizmos present this frame.
type GizmoSource interface {
	Gizmos() []Gizmo
}

// GizmoList is a fixed GizmoSource.
type GizmoList []Gizmo

// Gizmos implements GizmoSource.
func (l GizmoList) Gizmos() []Gizmo { return l }

// Motion selects which camera motions are enabled.
type Motion struct {
	Pan   bool
	Orbit bool
	Zoom  bool
}

// AllMotion returns a Motion with every field set to enabled.
func AllMotion(enabled bool) Motion {
	return Motion{Pan: enabled, Orbit: enabled, Zoom: enabled}
}

// MotionController is a camera controller whose motions can be toggled.
type MotionController interface {
	SetMotion(Motion)
}

// Gate decides per frame whether camera input is enabled.
// A nil collaborator never suppresses input.
type Gate struct {
	pointer PointerLayer
	gizmos  GizmoSource

	last    bool
	decided bool
}

// NewGate creates a gate over the UI pointer layer and gizmo source.
func NewGate(pointer PointerLayer, gizmos GizmoSource) *Gate {
	return &Gate{pointer: pointer, gizmos: gizmos}
}

// Decide returns whether camera input is enabled this frame.
func (g *Gate) Decide() bool {
	enabled := !g.suppressed()
	if g.decided && enabled != g.last {
		logger().Debug("camera input toggled", "enabled", enabled)
	}
	g.last, g.decided = enabled, true
	return enabled
}

func (g *Gate) suppressed() bool {
	if g.pointer != nil && (g.pointer.WantsPointerInput() || g.pointer.IsPointerOverArea()) {
		return true
	}
	if g.gizmos == nil {
		return false
	}
	for _, gz := range g.gizmos.Gizmos() {
		if gz != nil && (gz.IsActive() || gz.IsFocused()) {
			return true
		}
	}
	return false
}

// Arbitrate decides and applies the result to every controller.
func (g *Gate) Arbitrate(controllers ...MotionController) bool {
	enabled := g.Decide()
	m := AllMotion(enabled)
	for _, c := range controllers {
		c.SetMotion(m)
	}
	return enabled
}

// Last returns the most recent decision, true before the first one.
func (g *Gate) Last() bool {
	if !g.decided {
		return true
	}
	return g.last
}

// Pointer is a PointerLayer backed by two flags, for hosts that poll the UI
// once per frame. A nil *Pointer reports both flags as false.
type Pointer struct {
	Wants bool
	Over  bool
}

// WantsPointerInput implements PointerLayer.
func (p *Pointer) WantsPointerInput() bool { return p != nil && p.Wants }

// IsPointerOverArea implements PointerLayer.
func (p *Pointer) IsPointerOverArea() bool { return p != nil && p.Over }

// GizmoState is a Gizmo backed by two flags. A nil *GizmoState is idle.
type GizmoState struct {
	Active  bool
	Focused bool
}

// IsActive implements Gizmo.
func (s *GizmoState) IsActive() bool { return s != nil && s.Active }

// IsFocused implements Gizmo.
func (s *GizmoState) IsFocused() bool { return s != nil && s.Focused }
