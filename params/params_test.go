package params

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
	if p.PlaneCount != 7 || p.PointCount != 10 || p.PointSize != 0.05 {
		t.Errorf("Defaults() = %+v", p)
	}
	if p.BasePlaneSize != (mgl32.Vec2{2, 2}) {
		t.Errorf("BasePlaneSize = %v, want [2 2]", p.BasePlaneSize)
	}
	if p.SubPointCount() != 60 {
		t.Errorf("SubPointCount() = %d, want 60", p.SubPointCount())
	}
	if p.EntityCount() != 77 {
		t.Errorf("EntityCount() = %d, want 77", p.EntityCount())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		ok     bool
	}{
		{"defaults", func(*Params) {}, true},
		{"one plane", func(p *Params) { p.PlaneCount = 1 }, true},
		{"zero planes", func(p *Params) { p.PlaneCount = 0 }, false},
		{"zero points", func(p *Params) { p.PointCount = 0 }, true},
		{"negative points", func(p *Params) { p.PointCount = -1 }, false},
		{"zero size", func(p *Params) { p.PointSize = 0 }, false},
		{"negative size", func(p *Params) { p.PointSize = -0.1 }, false},
		{"zero width", func(p *Params) { p.BasePlaneSize = mgl32.Vec2{0, 1} }, false},
		{"zero height", func(p *Params) { p.BasePlaneSize = mgl32.Vec2{1, 0} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.modify(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSubPointCountSinglePlane(t *testing.T) {
	p := Params{PlaneCount: 1, PointCount: 8, PointSize: 1, BasePlaneSize: mgl32.Vec2{1, 1}}
	if n := p.SubPointCount(); n != 0 {
		t.Errorf("SubPointCount() = %d, want 0", n)
	}
}
