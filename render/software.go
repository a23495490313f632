// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/overlay"
	"golang.org/x/image/vector"
)

// Software is a CPU renderer for draw lists.
//
// Planes are filled from their mesh triangles and outlined, points are
// drawn as discs sized by perspective, lines as thin quads. All coverage is
// computed by golang.org/x/image/vector, so edges are anti-aliased.
//
// Example:
//
//	sw := render.NewSoftware(render.WithMeshes(res), render.WithLabels(labeler))
//	target := render.NewPixmapTarget(1280, 720)
//	sw.Render(target, primary, secondary)
//	img := target.Image()
type Software struct {
	meshes     MeshLookup
	labels     *overlay.Labeler
	background color.Color
	lineWidth  float32

	// raster is reused between calls.
	raster *vector.Rasterizer

	last SoftwareStats
}

// SoftwareStats counts what the last Render call drew.
type SoftwareStats struct {
	Lists  int
	Items  int
	Lines  int
	Labels int
}

// SoftwareOption configures a Software renderer.
type SoftwareOption func(*Software)

// WithMeshes sets the mesh source for filled planes. Without one, planes
// are drawn as outlines of the unit quad only.
func WithMeshes(m MeshLookup) SoftwareOption {
	return func(s *Software) { s.meshes = m }
}

// WithLabels enables point identity labels drawn with l.
func WithLabels(l *overlay.Labeler) SoftwareOption {
	return func(s *Software) { s.labels = l }
}

// WithBackground sets the color each viewport is cleared to.
func WithBackground(c color.Color) SoftwareOption {
	return func(s *Software) {
		if c != nil {
			s.background = c
		}
	}
}

// WithLineWidth sets the stroke width of outlines and lines in pixels.
func WithLineWidth(w float32) SoftwareOption {
	return func(s *Software) {
		if w > 0 {
			s.lineWidth = w
		}
	}
}

// DefaultBackground is the viewport clear color.
var DefaultBackground = color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff}

// NewSoftware creates a CPU renderer.
func NewSoftware(opts ...SoftwareOption) *Software {
	s := &Software{
		background: DefaultBackground,
		lineWidth:  1.5,
		raster:     vector.NewRasterizer(0, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render clears each list's rectangle and draws the list into it.
// Lists whose rectangle misses the target are skipped.
func (s *Software) Render(target Target, lists ...DrawList) error {
	if target == nil {
		return ErrNilTarget
	}
	s.last = SoftwareStats{}
	for i := range lists {
		s.renderList(target, &lists[i])
	}
	return nil
}

// Flush is a no-op: software rendering is synchronous.
func (s *Software) Flush() error {
	return nil
}

// Capabilities implements CapableRenderer.
func (s *Software) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		SupportsAntialiasing: true,
		SupportsBlending:     true,
		SupportsLabels:       s.labels != nil,
	}
}

// Stats returns what the last Render call drew.
func (s *Software) Stats() SoftwareStats {
	return s.last
}

func (s *Software) renderList(target Target, l *DrawList) {
	rect := l.Rect.Intersect(target.Bounds())
	if rect.Empty() {
		return
	}
	s.last.Lists++
	dst := canvas(target)
	draw.Draw(dst, rect, image.NewUniform(s.background), image.Point{}, draw.Src)

	p := projector{vp: l.ViewProjection, rect: l.Rect, clip: rect, near: l.Camera.Near}
	focal := l.Camera.FocalLength(l.Rect)

	for _, it := range l.Items {
		if it.Radius > 0 {
			s.disc(dst, p, it, focal)
		} else {
			s.surface(dst, p, it)
		}
		s.last.Items++
	}
	for _, ln := range l.Lines {
		s.segment(dst, p, ln.From, ln.To, toNRGBA(ln.Color))
		s.last.Lines++
	}
	if s.labels != nil {
		s.drawLabels(dst, p, l.Items, focal)
	}
}

func (s *Software) disc(dst draw.Image, p projector, it DrawItem, focal float32) {
	center, ok := p.screen(it.Center())
	if !ok {
		return
	}
	r := max(it.Radius*focal/it.Distance, 1.5)
	const segments = 20
	pts := make([]mgl32.Vec2, segments)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / segments
		pts[i] = center.Add(mgl32.Vec2{r * float32(math.Cos(a)), r * float32(math.Sin(a))})
	}
	s.fill(dst, p, [][]mgl32.Vec2{pts}, toNRGBA(it.Color))
}

// surface fills the item's mesh triangles and outlines its first four
// vertices, which for the plane mesh is the quad perimeter.
func (s *Software) surface(dst draw.Image, p projector, it DrawItem) {
	var positions []mgl32.Vec3
	var indices []uint16
	if s.meshes != nil {
		if m, ok := s.meshes.Mesh(it.Mesh); ok {
			positions, indices = m.Positions, m.Indices
		}
	}
	if positions == nil {
		positions = unitQuad
	}

	world := make([]mgl32.Vec3, len(positions))
	for i, v := range positions {
		world[i] = it.Model.Mul4x1(v.Vec4(1)).Vec3()
	}

	col := toNRGBA(it.Color)
	if len(indices) >= 3 {
		tris := make([][]mgl32.Vec2, 0, len(indices)/3)
		for i := 0; i+2 < len(indices); i += 3 {
			tri, ok := p.triangle(world[indices[i]], world[indices[i+1]], world[indices[i+2]])
			if ok {
				tris = append(tris, tri)
			}
		}
		s.fill(dst, p, tris, col)
	}

	if len(world) >= 4 {
		edge := col
		edge.A = uint8(min(255, max(int(edge.A)*6, 110)))
		for i := 0; i < 4; i++ {
			s.segment(dst, p, world[i], world[(i+1)%4], edge)
		}
	}
}

var unitQuad = []mgl32.Vec3{{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5}}

func (s *Software) segment(dst draw.Image, p projector, from, to mgl32.Vec3, c color.NRGBA) {
	a, b, ok := p.segment(from, to)
	if !ok {
		return
	}
	d := b.Sub(a)
	if d.Len() < 1e-3 {
		return
	}
	n := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(s.lineWidth / 2)
	quad := []mgl32.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
	s.fill(dst, p, [][]mgl32.Vec2{quad}, c)
}

// fill rasterizes polygons, given in target coordinates, as one coverage
// mask so overlapping parts are painted once.
func (s *Software) fill(dst draw.Image, p projector, polys [][]mgl32.Vec2, c color.NRGBA) {
	r := p.clip
	z := s.raster
	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = draw.Over

	origin := mgl32.Vec2{float32(r.Min.X), float32(r.Min.Y)}
	bounds := mgl32.Vec2{float32(r.Dx()), float32(r.Dy())}
	drawn := false
	for _, poly := range polys {
		local := make([]mgl32.Vec2, len(poly))
		for i, v := range poly {
			local[i] = v.Sub(origin)
		}
		local = clipPolygon(local, bounds)
		if len(local) < 3 {
			continue
		}
		if signedArea(local) < 0 {
			slices.Reverse(local)
		}
		z.MoveTo(local[0].X(), local[0].Y())
		for _, v := range local[1:] {
			z.LineTo(v.X(), v.Y())
		}
		z.ClosePath()
		drawn = true
	}
	if drawn {
		z.Draw(dst, r, image.NewUniform(c), image.Point{})
	}
}

// canvas unwraps pixmap targets so x/image takes its *image.RGBA fast paths.
func canvas(t Target) draw.Image {
	if pt, ok := t.(*PixmapTarget); ok && pt.RGBA != nil {
		return pt.RGBA
	}
	return t
}

func (s *Software) drawLabels(dst draw.Image, p projector, items []DrawItem, focal float32) {
	var clipped draw.Image = dst
	if sub, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if d, ok := sub.SubImage(p.clip).(draw.Image); ok {
			clipped = d
		}
	}
	for _, it := range items {
		if it.Label == "" {
			continue
		}
		at, ok := p.screen(it.Center())
		if !ok || !inside(at, p.clip) {
			continue
		}
		off := max(it.Radius*focal/it.Distance, 1.5)
		s.labels.DrawLabel(clipped, it.Label, int(at.X()+off), int(at.Y()+off), color.White)
		s.last.Labels++
	}
}

// projector maps world points into the pixel space of one viewport.
type projector struct {
	vp   mgl32.Mat4
	rect image.Rectangle
	clip image.Rectangle
	near float32
}

func (p projector) clipSpace(v mgl32.Vec3) mgl32.Vec4 {
	return p.vp.Mul4x1(v.Vec4(1))
}

func (p projector) toScreen(c mgl32.Vec4) mgl32.Vec2 {
	w := c.W()
	x := (c.X()/w + 1) / 2 * float32(p.rect.Dx())
	y := (1 - c.Y()/w) / 2 * float32(p.rect.Dy())
	return mgl32.Vec2{x + float32(p.rect.Min.X), y + float32(p.rect.Min.Y)}
}

// screen projects v. ok is false when v is not in front of the near plane.
func (p projector) screen(v mgl32.Vec3) (mgl32.Vec2, bool) {
	c := p.clipSpace(v)
	if c.W() < p.nearW() {
		return mgl32.Vec2{}, false
	}
	return p.toScreen(c), true
}

func (p projector) nearW() float32 {
	return max(p.near, 1e-4)
}

// triangle projects a triangle; triangles crossing the near plane are dropped.
func (p projector) triangle(a, b, c mgl32.Vec3) ([]mgl32.Vec2, bool) {
	pa, ok1 := p.screen(a)
	pb, ok2 := p.screen(b)
	pc, ok3 := p.screen(c)
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return []mgl32.Vec2{pa, pb, pc}, true
}

// segment projects a segment, clipping it to the near plane.
func (p projector) segment(a, b mgl32.Vec3) (mgl32.Vec2, mgl32.Vec2, bool) {
	ca, cb := p.clipSpace(a), p.clipSpace(b)
	n := p.nearW()
	if ca.W() < n && cb.W() < n {
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	}
	if ca.W() < n {
		t := (n - ca.W()) / (cb.W() - ca.W())
		ca = ca.Add(cb.Sub(ca).Mul(t))
	} else if cb.W() < n {
		t := (n - cb.W()) / (ca.W() - cb.W())
		cb = cb.Add(ca.Sub(cb).Mul(t))
	}
	return p.toScreen(ca), p.toScreen(cb), true
}

func inside(v mgl32.Vec2, r image.Rectangle) bool {
	return v.X() >= float32(r.Min.X) && v.X() < float32(r.Max.X) &&
		v.Y() >= float32(r.Min.Y) && v.Y() < float32(r.Max.Y)
}

// clipPolygon clips poly to the box [0, size.X] x [0, size.Y]
// (Sutherland-Hodgman).
func clipPolygon(poly []mgl32.Vec2, size mgl32.Vec2) []mgl32.Vec2 {
	edges := []struct {
		axis int
		at   float32
		keep func(v, at float32) bool
	}{
		{0, 0, func(v, at float32) bool { return v >= at }},
		{0, size.X(), func(v, at float32) bool { return v <= at }},
		{1, 0, func(v, at float32) bool { return v >= at }},
		{1, size.Y(), func(v, at float32) bool { return v <= at }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]mgl32.Vec2, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := e.keep(cur[e.axis], e.at), e.keep(prev[e.axis], e.at)
			if curIn != prevIn {
				t := (e.at - prev[e.axis]) / (cur[e.axis] - prev[e.axis])
				out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
			}
			if curIn {
				out = append(out, cur)
			}
			prev = cur
		}
	}
	return out
}

func signedArea(poly []mgl32.Vec2) float32 {
	var a float32
	for i, v := range poly {
		w := poly[(i+1)%len(poly)]
		a += v.X()*w.Y() - w.X()*v.Y()
	}
	return a / 2
}

func toNRGBA(c gputypes.Color) color.NRGBA {
	ch := func(f float64) uint8 {
		return uint8(math.Round(min(max(f, 0), 1) * 255))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

// Ensure Software implements CapableRenderer.
var _ CapableRenderer = (*Software)(nil)
