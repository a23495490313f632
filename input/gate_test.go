package input

import "testing"

type recorder struct {
	got   Motion
	calls int
}

func (r *recorder) SetMotion(m Motion) {
	r.got = m
	r.calls++
}

func TestGatePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		ptr    Pointer
		gizmos []GizmoState
		want   bool
	}{
		{"all false", Pointer{}, []GizmoState{{}, {}}, true},
		{"no gizmos", Pointer{}, nil, true},
		{"pointer over ui", Pointer{Over: true}, []GizmoState{{}}, false},
		{"pointer wanted", Pointer{Wants: true}, nil, false},
		{"gizmo active", Pointer{}, []GizmoState{{}, {Active: true}}, false},
		{"gizmo focused", Pointer{}, []GizmoState{{Focused: true}}, false},
		{"everything", Pointer{Wants: true, Over: true}, []GizmoState{{Active: true, Focused: true}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list GizmoList
			for i := range tt.gizmos {
				list = append(list, &tt.gizmos[i])
			}
			ptr := tt.ptr
			g := NewGate(&ptr, list)
			if got := g.Decide(); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateArbitrate(t *testing.T) {
	ptr := &Pointer{}
	gz := &GizmoState{}
	g := NewGate(ptr, GizmoList{gz})
	a, b := &recorder{}, &recorder{}

	if !g.Arbitrate(a, b) {
		t.Fatal("Arbitrate() = false with nothing claiming the pointer")
	}
	if a.got != AllMotion(true) || b.got != AllMotion(true) {
		t.Errorf("motions = %+v, %+v, want all enabled", a.got, b.got)
	}

	gz.Active = true
	if g.Arbitrate(a, b) {
		t.Fatal("Arbitrate() = true while gizmo active")
	}
	if a.got != (Motion{}) || b.got != (Motion{}) {
		t.Errorf("motions = %+v, %+v, want all disabled", a.got, b.got)
	}
	if a.calls != 2 || b.calls != 2 {
		t.Errorf("calls = %d, %d, want 2 each", a.calls, b.calls)
	}
	if g.Last() {
		t.Error("Last() = true after disabling decision")
	}
}

func TestGateNilCollaborators(t *testing.T) {
	g := NewGate(nil, nil)
	if !g.Last() {
		t.Error("Last() before any decision = false")
	}
	if !g.Decide() {
		t.Error("Decide() with no collaborators = false")
	}
	if !NewGate(nil, GizmoList{nil}).Decide() {
		t.Error("nil gizmo entry suppressed input")
	}
}

func TestGateTypedNilCollaborators(t *testing.T) {
	var pointer *Pointer
	var gizmo *GizmoState
	g := NewGate(pointer, GizmoList{gizmo})
	if !g.Decide() {
		t.Error("typed-nil pointer and gizmo suppressed input")
	}
	if pointer.WantsPointerInput() || pointer.IsPointerOverArea() {
		t.Error("nil *Pointer reports the pointer as claimed")
	}
	if gizmo.IsActive() || gizmo.IsFocused() {
		t.Error("nil *GizmoState reports the gizmo as engaged")
	}
}
