package scenegraph

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/params"
)

func TestResolveHitPlane(t *testing.T) {
	b, _, _ := newTestBuilder(t, testParams(3, 4))
	b.RebuildIfNeeded()

	pt := b.Points()[2]
	plane := b.Planes()[2]
	onPlane := Project(pt.Position(), plane.Depth)

	hit, err := b.ResolveHit(HitEvent{Entity: plane.ID, Position: onPlane})
	if err != nil {
		t.Fatalf("ResolveHit() = %v", err)
	}
	if hit.Entity.ID != plane.ID {
		t.Errorf("hit entity %s, want %s", hit.Entity.ID, plane.ID)
	}
	if !hit.HasNearest || hit.Nearest.Index != pt.Index {
		t.Errorf("nearest = %v (ok=%v), want point %d", hit.Nearest.Name, hit.HasNearest, pt.Index)
	}
	if hit.Distance > 1e-5 {
		t.Errorf("distance = %g, want ~0", hit.Distance)
	}
	if !hit.Base.ApproxEqualThreshold(pt.Position().Vec2(), 1e-5) {
		t.Errorf("base = %v, want %v", hit.Base, pt.Position().Vec2())
	}
}

func TestResolveHitSubPoint(t *testing.T) {
	b, _, _ := newTestBuilder(t, testParams(4, 3))
	b.RebuildIfNeeded()

	sub := b.SubPoints()[1]
	hit, err := b.ResolveHit(HitEvent{Entity: sub.ID})
	if err != nil {
		t.Fatal(err)
	}
	if hit.Nearest.Index != sub.Index {
		t.Errorf("nearest index %d, want parent %d", hit.Nearest.Index, sub.Index)
	}
}

func TestResolveHitStale(t *testing.T) {
	b, store, _ := newTestBuilder(t, params.Defaults())
	b.RebuildIfNeeded()
	plane := b.Planes()[0]

	if err := store.SetPlaneCount(2); err != nil {
		t.Fatal(err)
	}
	b.RebuildIfNeeded()

	_, err := b.ResolveHit(HitEvent{Entity: plane.ID, Position: mgl32.Vec3{0, 0, 1}})
	if !errors.Is(err, ErrStaleEntity) {
		t.Errorf("err = %v, want ErrStaleEntity", err)
	}
	if _, err := b.ResolveHit(HitEvent{}); !errors.Is(err, ErrStaleEntity) {
		t.Errorf("zero id: err = %v, want ErrStaleEntity", err)
	}
}

func TestResolveHitUnexpectedDepth(t *testing.T) {
	b, _, _ := newTestBuilder(t, testParams(3, 2))
	b.RebuildIfNeeded()
	plane := b.Planes()[1]

	_, err := b.ResolveHit(HitEvent{Entity: plane.ID, Position: mgl32.Vec3{0.1, 0.1, 2.5}})
	if !errors.Is(err, ErrUnexpectedDepth) {
		t.Errorf("err = %v, want ErrUnexpectedDepth", err)
	}
}

func TestResolveHitNoPoints(t *testing.T) {
	b, _, _ := newTestBuilder(t, testParams(2, 0))
	b.RebuildIfNeeded()

	hit, err := b.ResolveHit(HitEvent{Entity: b.Planes()[0].ID, Position: mgl32.Vec3{0.2, 0.3, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if hit.HasNearest {
		t.Error("HasNearest = true with no points")
	}
}

func TestProjectUnproject(t *testing.T) {
	p := mgl32.Vec3{0.25, -0.5, 1}
	for d := 1; d <= 8; d++ {
		got := Unproject(Project(p, d), d)
		if !got.ApproxEqual(p) {
			t.Errorf("d=%d: Unproject(Project(p)) = %v, want %v", d, got, p)
		}
	}
}
