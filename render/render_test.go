package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/overlay"
	"github.com/gogpu/imageplanes/params"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/scenegraph"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func near(got, want color.RGBA) bool {
	d := func(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= 2 }
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

func defaultScene(t *testing.T) (*resource.Cache, []scenegraph.Entity) {
	t.Helper()
	res := resource.NewCache(resource.WithSeed(1))
	b := scenegraph.NewBuilder(params.NewStore(params.Defaults()), res, scenegraph.WithSeed(1))
	if r := b.RebuildIfNeeded(); !r.Rebuilt {
		t.Fatalf("RebuildIfNeeded() = %+v, want rebuilt", r)
	}
	return res, b.Entities()
}

func pointEntity(res *resource.Cache, at mgl32.Vec3, rgba [4]uint8) scenegraph.Entity {
	key := resource.ColorKey(rgba)
	h, c := res.Material(key)
	return scenegraph.Entity{
		ID:   scenegraph.EntityID{Generation: 1, Slot: 0},
		Kind: scenegraph.KindPoint,
		Transform: scenegraph.Transform{
			Translation: at,
			Rotation:    mgl32.QuatIdent(),
			Scale:       mgl32.Vec3{0.2, 0.2, 0.2},
		},
		Mesh:        res.Geometry(resource.ArchetypeSphere),
		Material:    h,
		MaterialKey: key,
		Color:       c,
	}
}

func TestPrimaryCamera(t *testing.T) {
	cam := PrimaryCamera()
	if cam.Name != PrimaryName || cam.Viewport != "" {
		t.Errorf("PrimaryCamera() name %q viewport %q", cam.Name, cam.Viewport)
	}
	if d := cam.Distance(mgl32.Vec3{0, 0, 5}); !approx(d, 5) {
		t.Errorf("Distance(0,0,5) = %v, want 5", d)
	}
	if d := cam.Distance(mgl32.Vec3{0, 0, -1}); d >= 0 {
		t.Errorf("Distance(behind) = %v, want negative", d)
	}

	rect := image.Rect(0, 0, 200, 100)
	clip := cam.ViewProjection(rect).Mul4x1(mgl32.Vec4{0, 0, 3, 1})
	if !approx(clip.X()/clip.W(), 0) || !approx(clip.Y()/clip.W(), 0) {
		t.Errorf("on-axis point projects to ndc (%v, %v), want center", clip.X()/clip.W(), clip.Y()/clip.W())
	}
	up := cam.ViewProjection(rect).Mul4x1(mgl32.Vec4{0, 1, 3, 1})
	if up.Y()/up.W() <= 0 {
		t.Error("+Y does not project upward")
	}
}

func TestSideCameraBound(t *testing.T) {
	cam := SideCamera("secondary", 7)
	if cam.Viewport != "secondary" {
		t.Errorf("Viewport = %q, want secondary", cam.Viewport)
	}
	// The middle of the stack is in front of the camera.
	if d := cam.Distance(mgl32.Vec3{0, 0, 3.5}); d <= cam.Near {
		t.Errorf("stack center at distance %v", d)
	}
}

func TestFocalLength(t *testing.T) {
	cam := PrimaryCamera()
	cam.FovY = math.Pi / 2
	if f := cam.FocalLength(image.Rect(0, 0, 10, 100)); !approx(f, 50) {
		t.Errorf("FocalLength = %v, want 50", f)
	}
}

func TestCollectOrder(t *testing.T) {
	res, entities := defaultScene(t)
	list := Collect(PrimaryCamera(), image.Rect(0, 0, 320, 180), entities, res)

	if list.Len() != len(entities) {
		t.Fatalf("Len() = %d, want %d", list.Len(), len(entities))
	}

	seenBlend := false
	for i, it := range list.Items {
		if it.Blend {
			seenBlend = true
		} else if seenBlend {
			t.Fatalf("opaque item %d after a blended item", i)
		}
		if i > 0 && it.Blend == list.Items[i-1].Blend && it.Distance > list.Items[i-1].Distance {
			t.Errorf("item %d at distance %v drawn after nearer item at %v", i, it.Distance, list.Items[i-1].Distance)
		}
	}
	if !seenBlend {
		t.Error("no blended plane items")
	}
}

func TestCollectLabelsAndRadius(t *testing.T) {
	res, entities := defaultScene(t)
	list := Collect(PrimaryCamera(), image.Rect(0, 0, 320, 180), entities, res)

	labels := 0
	for _, it := range list.Items {
		switch it.Kind {
		case scenegraph.KindPoint:
			labels++
			if it.Label == "" {
				t.Errorf("point %d has no label", it.Index)
			}
			if !approx(it.Radius, params.DefaultPointSize/2) {
				t.Errorf("point radius = %v, want %v", it.Radius, params.DefaultPointSize/2)
			}
		case scenegraph.KindSubPoint:
			if it.Label != "" {
				t.Errorf("sub-point labeled %q", it.Label)
			}
		case scenegraph.KindPlane:
			if it.Radius != 0 {
				t.Errorf("plane radius = %v, want 0", it.Radius)
			}
		}
	}
	if labels != params.DefaultPointCount {
		t.Errorf("labels = %d, want %d", labels, params.DefaultPointCount)
	}
}

type noMaterials struct{}

func (noMaterials) MaterialData(resource.Handle[resource.Material]) (resource.Material, bool) {
	return resource.Material{}, false
}

func TestCollectDrops(t *testing.T) {
	res, entities := defaultScene(t)
	if l := Collect(PrimaryCamera(), image.Rect(0, 0, 10, 10), entities, noMaterials{}); l.Len() != 0 {
		t.Errorf("unknown materials: Len() = %d, want 0", l.Len())
	}

	behind := pointEntity(res, mgl32.Vec3{0, 0, -2}, [4]uint8{255, 0, 0, 255})
	if l := Collect(PrimaryCamera(), image.Rect(0, 0, 10, 10), []scenegraph.Entity{behind}, res); l.Len() != 0 {
		t.Errorf("point behind camera collected")
	}
}

func TestWorldAxes(t *testing.T) {
	axes := WorldAxes()
	if len(axes) != 3 {
		t.Fatalf("len = %d, want 3", len(axes))
	}
	want := []struct {
		dir mgl32.Vec3
		col gputypes.Color
	}{
		{mgl32.Vec3{1, 0, 0}, AxisX},
		{mgl32.Vec3{0, 1, 0}, AxisY},
		{mgl32.Vec3{0, 0, 1}, AxisZ},
	}
	for i, w := range want {
		ln := axes[i]
		if ln.From != (mgl32.Vec3{}) || ln.To != w.dir {
			t.Errorf("axis %d = %v -> %v, want origin -> %v", i, ln.From, ln.To, w.dir)
		}
		if ln.Color != w.col {
			t.Errorf("axis %d color = %v, want %v", i, ln.Color, w.col)
		}
		if l := ln.To.Sub(ln.From).Len(); !approx(l, 1) {
			t.Errorf("axis %d length = %v, want 1", i, l)
		}
	}
}

func TestSoftwareNilTarget(t *testing.T) {
	if err := NewSoftware().Render(nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("Render(nil) error = %v, want ErrNilTarget", err)
	}
}

func TestSoftwarePointDisc(t *testing.T) {
	res := resource.NewCache()
	target := NewPixmapTarget(200, 100)
	rect := target.Bounds()
	e := pointEntity(res, mgl32.Vec3{0, 0, 2}, [4]uint8{255, 0, 0, 255})
	list := Collect(PrimaryCamera(), rect, []scenegraph.Entity{e}, res)

	sw := NewSoftware(WithMeshes(res))
	if err := sw.Render(target, list); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := target.RGBAAt(100, 50); !near(got, color.RGBA{R: 255, A: 255}) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := target.RGBAAt(2, 2); got != DefaultBackground {
		t.Errorf("corner pixel = %v, want background", got)
	}
	if st := sw.Stats(); st.Lists != 1 || st.Items != 1 || st.Labels != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestSoftwareBlendedPlane(t *testing.T) {
	res, entities := defaultScene(t)
	var plane scenegraph.Entity
	for _, e := range entities {
		if e.Kind == scenegraph.KindPlane && e.Index == 1 {
			plane = e
		}
	}
	target := NewPixmapTarget(160, 90)
	list := Collect(PrimaryCamera(), target.Bounds(), []scenegraph.Entity{plane}, res)
	if err := NewSoftware(WithMeshes(res)).Render(target, list); err != nil {
		t.Fatal(err)
	}

	got := target.RGBAAt(80, 45)
	if got == DefaultBackground {
		t.Fatal("plane did not tint the viewport")
	}
	if got.G <= DefaultBackground.G || got.G > 60 {
		t.Errorf("center green = %d, want a faint tint above %d", got.G, DefaultBackground.G)
	}
}

func TestSoftwareViewportRect(t *testing.T) {
	res := resource.NewCache()
	target := NewPixmapTarget(100, 100)
	target.Clear(color.Black)

	inset := image.Rect(50, 50, 100, 100)
	e := pointEntity(res, mgl32.Vec3{0, 0, 2}, [4]uint8{0, 0, 255, 255})
	list := Collect(PrimaryCamera(), inset, []scenegraph.Entity{e}, res)
	sw := NewSoftware()
	if err := sw.Render(target, list); err != nil {
		t.Fatal(err)
	}

	if got := target.RGBAAt(10, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("outside viewport = %v, want untouched black", got)
	}
	if got := target.RGBAAt(75, 75); !near(got, color.RGBA{B: 255, A: 255}) {
		t.Errorf("viewport center = %v, want blue", got)
	}

	offscreen := Collect(PrimaryCamera(), image.Rect(200, 200, 300, 300), nil, res)
	if err := sw.Render(target, offscreen); err != nil {
		t.Fatal(err)
	}
	if sw.Stats().Lists != 0 {
		t.Error("rendered a list outside the target")
	}
}

func TestSoftwareLabelsAndLines(t *testing.T) {
	res := resource.NewCache()
	labels, err := overlay.Default()
	if err != nil {
		t.Fatal(err)
	}
	target := NewPixmapTarget(200, 100)
	e := pointEntity(res, mgl32.Vec3{0, 0, 2}, [4]uint8{255, 255, 0, 255})
	list := Collect(PrimaryCamera(), target.Bounds(), []scenegraph.Entity{e}, res)
	list.Lines = WorldAxes()

	sw := NewSoftware(WithLabels(labels), WithLineWidth(2))
	if !sw.Capabilities().SupportsLabels {
		t.Error("SupportsLabels = false with a labeler")
	}
	if err := sw.Render(target, list); err != nil {
		t.Fatal(err)
	}
	st := sw.Stats()
	if st.Labels != 1 {
		t.Errorf("Labels = %d, want 1", st.Labels)
	}
	if st.Lines != 3 {
		t.Errorf("Lines = %d, want 3", st.Lines)
	}
}

func TestClipPolygon(t *testing.T) {
	size := mgl32.Vec2{10, 10}
	tests := []struct {
		name string
		in   []mgl32.Vec2
		area float32
	}{
		{"inside", []mgl32.Vec2{{1, 1}, {4, 1}, {4, 4}}, 4.5},
		{"covering", []mgl32.Vec2{{-5, -5}, {15, -5}, {15, 15}, {-5, 15}}, 100},
		{"half", []mgl32.Vec2{{5, -5}, {15, -5}, {15, 15}, {5, 15}}, 50},
		{"outside", []mgl32.Vec2{{20, 20}, {30, 20}, {30, 30}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := clipPolygon(tt.in, size)
			var a float32
			if len(out) >= 3 {
				a = float32(math.Abs(float64(signedArea(out))))
			}
			if !approx(a, tt.area) {
				t.Errorf("clipped area = %v, want %v", a, tt.area)
			}
		})
	}
}

func TestPixmapTarget(t *testing.T) {
	target := NewPixmapTarget(4, 3)
	if target.Width() != 4 || target.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", target.Width(), target.Height())
	}

	target.Fill(image.Rect(2, 0, 10, 10), color.White)
	if target.RGBAAt(1, 0).A != 0 || target.RGBAAt(3, 2) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Fill did not clip to the target")
	}

	img := target.Image()
	target.Resize(4, 3)
	if target.Image() != img {
		t.Error("same-size Resize replaced the image")
	}
	target.Resize(8, 2)
	if target.Size() != image.Pt(8, 2) {
		t.Errorf("Size() = %v after resize", target.Size())
	}
}

func TestHasDevice(t *testing.T) {
	if HasDevice(nil) {
		t.Error("HasDevice(nil) = true")
	}
	if HasDevice(NullDeviceHandle{}) {
		t.Error("HasDevice(NullDeviceHandle) = true")
	}
}
