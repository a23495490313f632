package params

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestStoreFirstCheckTrue(t *testing.T) {
	s := NewStore(Defaults())
	if !s.ChangedSinceLastCheck() {
		t.Error("first check = false, want true")
	}
	if s.ChangedSinceLastCheck() {
		t.Error("second check = true, want false")
	}
}

func TestStoreChangeGating(t *testing.T) {
	s := NewStore(Defaults())
	s.ChangedSinceLastCheck()

	if err := s.SetPlaneCount(3); err != nil {
		t.Fatalf("SetPlaneCount(3) = %v", err)
	}
	if !s.ChangedSinceLastCheck() {
		t.Error("check after mutation = false, want true")
	}
	if s.ChangedSinceLastCheck() {
		t.Error("repeated check = true, want false")
	}
	if got := s.Params().PlaneCount; got != 3 {
		t.Errorf("PlaneCount = %d, want 3", got)
	}
}

func TestStoreSameValueIsNotChange(t *testing.T) {
	s := NewStore(Defaults())
	s.ChangedSinceLastCheck()
	before := s.Version()

	if err := s.SetPointCount(DefaultPointCount); err != nil {
		t.Fatal(err)
	}
	if s.Version() != before {
		t.Errorf("Version() = %d after no-op set, want %d", s.Version(), before)
	}
	if s.ChangedSinceLastCheck() {
		t.Error("setting the current value reported a change")
	}
}

func TestStoreRevertedEditIsNotChange(t *testing.T) {
	s := NewStore(Defaults())
	s.ChangedSinceLastCheck()

	if err := s.SetPointSize(0.2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPointSize(DefaultPointSize); err != nil {
		t.Fatal(err)
	}
	if s.Version() != 2 {
		t.Errorf("Version() = %d, want 2", s.Version())
	}
	if s.Pending() {
		t.Error("Pending() = true after reverted edit")
	}
	if s.ChangedSinceLastCheck() {
		t.Error("reverted edit reported a change")
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Store) error
	}{
		{"plane count", func(s *Store) error { return s.SetPlaneCount(0) }},
		{"point count", func(s *Store) error { return s.SetPointCount(-3) }},
		{"point size", func(s *Store) error { return s.SetPointSize(0) }},
		{"base size", func(s *Store) error { return s.SetBasePlaneSize(mgl32.Vec2{-1, 2}) }},
		{"update", func(s *Store) error {
			return s.Update(func(p *Params) {
				p.PlaneCount = 4
				p.PointSize = -1
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(Defaults())
			s.ChangedSinceLastCheck()

			if err := tt.set(s); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
			if s.Params() != Defaults() {
				t.Errorf("store changed to %+v after rejected set", s.Params())
			}
			if s.ChangedSinceLastCheck() {
				t.Error("rejected set reported a change")
			}
		})
	}
}

func TestStoreUpdateAtomic(t *testing.T) {
	s := NewStore(Defaults())
	s.ChangedSinceLastCheck()

	err := s.Update(func(p *Params) {
		p.PlaneCount = 2
		p.PointCount = 4
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Version() != 1 {
		t.Errorf("Version() = %d, want 1 for one multi-field update", s.Version())
	}
	p := s.Params()
	if p.PlaneCount != 2 || p.PointCount != 4 {
		t.Errorf("Params() = %+v", p)
	}
}

func TestNewStoreInvalidFallsBack(t *testing.T) {
	s := NewStore(Params{})
	if s.Params() != Defaults() {
		t.Errorf("NewStore(zero) = %+v, want defaults", s.Params())
	}
}

func TestStoreReplace(t *testing.T) {
	s := NewStore(Defaults())
	next := Params{PlaneCount: 1, PointCount: 0, PointSize: 1, BasePlaneSize: mgl32.Vec2{4, 3}}
	if err := s.Replace(next); err != nil {
		t.Fatal(err)
	}
	if s.Params() != next {
		t.Errorf("Params() = %+v, want %+v", s.Params(), next)
	}
}
