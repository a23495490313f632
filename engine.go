package imageplanes

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/imageplanes/gpu"
	"github.com/gogpu/imageplanes/input"
	"github.com/gogpu/imageplanes/overlay"
	"github.com/gogpu/imageplanes/params"
	"github.com/gogpu/imageplanes/render"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/scenegraph"
	"github.com/gogpu/imageplanes/settings"
	"github.com/gogpu/imageplanes/surface"
	"github.com/gogpu/imageplanes/viewport"
)

// CameraInput consumes pointer input for the free camera. The engine calls
// it right after the input gate decided, within the same frame.
type CameraInput interface {
	ConsumeInput(enabled bool)
}

// CameraInputFunc adapts a function to CameraInput.
type CameraInputFunc func(enabled bool)

// ConsumeInput implements CameraInput.
func (f CameraInputFunc) ConsumeInput(enabled bool) { f(enabled) }

// FrameResult describes one Engine.Frame call.
type FrameResult struct {
	// Frame is the 1-based frame number.
	Frame uint64

	// CameraEnabled is the input gate decision of this frame.
	CameraEnabled bool

	// UIScaleApplied is true if the UI scale was passed to the scale applier.
	UIScaleApplied bool

	// Rebuild is the result of the conditional scene rebuild.
	Rebuild scenegraph.RebuildResult

	// Uploads is the number of new GPU uploads after a rebuild.
	Uploads int

	// SyncErr is the GPU sync error of this frame. The sync is retried
	// next frame.
	SyncErr error

	// Resolution is the primary surface size, zero without a primary window.
	Resolution image.Point

	// Viewports is the state of every secondary viewport after this frame.
	Viewports []viewport.State

	// ViewportErr joins the configuration errors of disabled viewports.
	ViewportErr error
}

// Stats returns the overlay summary of r.
func (r FrameResult) Stats() overlay.FrameStats {
	enabled := 0
	for _, v := range r.Viewports {
		if v.Enabled {
			enabled++
		}
	}
	return overlay.FrameStats{
		Frame:         r.Frame,
		Generation:    r.Rebuild.Generation,
		Entities:      r.Rebuild.Counts.Total(),
		Rebuilt:       r.Rebuild.Rebuilt,
		Uploads:       r.Uploads,
		Viewports:     enabled,
		CameraEnabled: r.CameraEnabled,
	}
}

// Engine runs the per-frame core of the image plane viewer.
//
// Every Frame performs, in order: UI scale application, input arbitration,
// camera input consumption, the conditional scene rebuild, GPU upload of new
// shared resources and the viewport recomputation. Parameter edits happen
// between frames through Panel or Params.
//
// Engine is meant to be driven from a single goroutine. Its queries
// (Builder, DrawLists) may be read concurrently with Frame.
type Engine struct {
	windows    *surface.Registry
	res        *resource.Cache
	store      *params.Store
	panel      *settings.Panel
	builder    *scenegraph.Builder
	compositor *viewport.Compositor
	gate       *input.Gate
	pool       *gpu.Pool

	motion      []input.MotionController
	cameraInput []CameraInput
	scale       settings.ScaleApplier
	cameras     map[string]render.Camera

	frame       uint64
	syncPending bool
	last        FrameResult
}

// New creates an engine. It returns an error if a secondary viewport has an
// invalid configuration.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.windows == nil {
		o.windows = surface.NewRegistry()
	}
	if o.res == nil {
		var resOpts []resource.Option
		if o.seeded {
			resOpts = append(resOpts, resource.WithSeed(o.seed))
		}
		o.res = resource.NewCache(resOpts...)
	}

	store := params.NewStore(o.params)
	builderOpts := []scenegraph.Option{scenegraph.WithSurface(o.windows)}
	if o.pool != nil {
		builderOpts = append(builderOpts, scenegraph.WithPool(o.pool))
	}
	if o.seeded {
		builderOpts = append(builderOpts, scenegraph.WithSeed(o.seed))
	}

	compositor := viewport.NewCompositor()
	var errs []error
	for _, v := range o.views {
		if err := compositor.Register(v.name, v.cfg); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("imageplanes: %w", err)
	}

	e := &Engine{
		windows:    o.windows,
		res:        o.res,
		store:      store,
		panel:      settings.NewPanel(store, settings.NewUIStore(o.ui), settings.NewGizmoStore(o.gizmo)),
		builder:    scenegraph.NewBuilder(store, o.res, builderOpts...),
		compositor: compositor,
		gate:       input.NewGate(o.pointer, o.gizmos),
		pool:       o.pool,
		motion:     o.motion,
		scale:      o.scale,
		cameras:    o.cameras,
	}
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// AddCameraInput registers a camera input consumer.
func (e *Engine) AddCameraInput(c CameraInput) {
	e.cameraInput = append(e.cameraInput, c)
}

// Frame runs one frame.
func (e *Engine) Frame() FrameResult {
	e.frame++
	r := FrameResult{Frame: e.frame}

	if e.scale != nil {
		r.UIScaleApplied = e.panel.UI.Apply(e.scale)
	}

	// The gate must decide before any camera input is consumed.
	r.CameraEnabled = e.gate.Arbitrate(e.motion...)
	for _, c := range e.cameraInput {
		c.ConsumeInput(r.CameraEnabled)
	}

	r.Rebuild = e.builder.RebuildIfNeeded()
	if r.Rebuild.Rebuilt {
		e.syncPending = e.pool != nil
	}
	if e.syncPending {
		r.Uploads, r.SyncErr = e.syncPool()
	}

	if size, ok := e.windows.PrimarySize(); ok {
		r.Resolution = size
		r.ViewportErr = e.compositor.Update(size)
	}
	r.Viewports = e.compositor.Viewports()

	e.last = r
	return r
}

// syncPool uploads resources of the live generation and prepares the
// shader. A failed sync is retried next frame.
func (e *Engine) syncPool() (int, error) {
	if !e.pool.Ready() {
		return 0, nil
	}
	n, err := e.pool.Sync(e.res, e.builder.Entities())
	if err != nil {
		Logger().Warn("gpu sync failed, retrying next frame", "err", err)
		return n, err
	}
	e.syncPending = false
	if n > 0 {
		Logger().Debug("gpu resources uploaded", "uploads", n)
	}
	return n, nil
}

// Last returns the result of the most recent Frame.
func (e *Engine) Last() FrameResult {
	return e.last
}

// HandleHit resolves a picking hit against the live scene. Hits on entities
// released by a rebuild and hits off the plane depth are dropped and
// reported as false.
func (e *Engine) HandleHit(ev scenegraph.HitEvent) (scenegraph.Hit, bool) {
	hit, err := e.builder.ResolveHit(ev)
	if err != nil {
		return scenegraph.Hit{}, false
	}
	return hit, true
}

// DrawLists returns the draw lists of the primary camera, covering bounds,
// and of every enabled secondary viewport, offset by bounds.Min.
func (e *Engine) DrawLists(bounds image.Rectangle) []render.DrawList {
	entities := e.builder.Entities()
	var axes []render.Line
	if e.panel.Gizmo.Get().ShowWorldAxes {
		axes = render.WorldAxes()
	}

	primary, ok := e.cameras[""]
	if !ok {
		primary = render.PrimaryCamera()
	}
	lists := []render.DrawList{e.collect(primary, bounds, entities, axes)}

	depth := e.store.Params().PlaneCount
	for _, s := range e.compositor.Viewports() {
		if !s.Enabled {
			continue
		}
		cam, ok := e.cameras[s.Name]
		if !ok {
			cam = render.SideCamera(s.Name, depth)
		}
		lists = append(lists, e.collect(cam, s.Rect.Add(bounds.Min), entities, axes))
	}
	return lists
}

func (e *Engine) collect(cam render.Camera, rect image.Rectangle, entities []scenegraph.Entity, axes []render.Line) render.DrawList {
	list := render.Collect(cam, rect, entities, e.res)
	list.Lines = append(list.Lines, axes...)
	return list
}

// Render draws every draw list of target's bounds with r.
func (e *Engine) Render(target render.Target, r render.Renderer) error {
	if target == nil {
		return render.ErrNilTarget
	}
	return r.Render(target, e.DrawLists(target.Bounds())...)
}

// Windows returns the window registry. The scene is generated once a
// primary window with a drawable area exists.
func (e *Engine) Windows() *surface.Registry { return e.windows }

// Params returns the scene parameter store.
func (e *Engine) Params() *params.Store { return e.store }

// Panel returns the settings panel model.
func (e *Engine) Panel() *settings.Panel { return e.panel }

// Builder returns the scene builder for read-only queries.
func (e *Engine) Builder() *scenegraph.Builder { return e.builder }

// Resources returns the shared resource cache.
func (e *Engine) Resources() *resource.Cache { return e.res }

// Compositor returns the viewport compositor.
func (e *Engine) Compositor() *viewport.Compositor { return e.compositor }

// Gate returns the input gate.
func (e *Engine) Gate() *input.Gate { return e.gate }
