package imageplanes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/config"
	"github.com/gogpu/imageplanes/gpu"
	"github.com/gogpu/imageplanes/input"
	"github.com/gogpu/imageplanes/params"
	"github.com/gogpu/imageplanes/render"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/settings"
	"github.com/gogpu/imageplanes/surface"
	"github.com/gogpu/imageplanes/viewport"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Defaults: 7 planes, 10 points, one bottom-right viewport
//	e, err := imageplanes.New()
//
//	// Reproducible scene on a host-owned window registry
//	e, err := imageplanes.New(
//	    imageplanes.WithSeed(42),
//	    imageplanes.WithWindows(windows),
//	)
type Option func(*engineOptions)

type namedViewport struct {
	name string
	cfg  viewport.Config
}

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	params   params.Params
	ui       settings.UI
	gizmo    settings.Gizmo
	seed     uint64
	seeded   bool
	windows  *surface.Registry
	res      *resource.Cache
	pool     *gpu.Pool
	pointer  input.PointerLayer
	gizmos   input.GizmoSource
	motion   []input.MotionController
	scale    settings.ScaleApplier
	views    []namedViewport
	cameras  map[string]render.Camera
	explicit bool // views were set explicitly, even if empty
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		params:  params.Defaults(),
		ui:      settings.DefaultUI(),
		cameras: make(map[string]render.Camera),
		views: []namedViewport{{
			name: config.DefaultViewportName,
			cfg:  viewport.Config{Fraction: mgl32.Vec2{0.3, 0.3}, Anchor: viewport.BottomRight},
		}},
	}
}

// WithParams sets the initial scene parameters. Invalid parameters fall
// back to params.Defaults.
func WithParams(p params.Params) Option {
	return func(o *engineOptions) {
		o.params = p
	}
}

// WithUISettings sets the initial UI settings.
func WithUISettings(u settings.UI) Option {
	return func(o *engineOptions) {
		o.ui = u
	}
}

// WithGizmoSettings sets the initial gizmo settings.
func WithGizmoSettings(g settings.Gizmo) Option {
	return func(o *engineOptions) {
		o.gizmo = g
	}
}

// WithSeed makes point positions and colors reproducible.
func WithSeed(seed uint64) Option {
	return func(o *engineOptions) {
		o.seed, o.seeded = seed, true
	}
}

// WithWindows sets the window registry the engine presents on.
// Without it the engine creates an empty registry; see Engine.Windows.
func WithWindows(r *surface.Registry) Option {
	return func(o *engineOptions) {
		o.windows = r
	}
}

// WithResourceCache shares an existing resource cache. WithSeed does not
// affect the colors of a shared cache.
func WithResourceCache(c *resource.Cache) Option {
	return func(o *engineOptions) {
		o.res = c
	}
}

// WithPool uploads shared meshes and materials to a GPU pool after every
// rebuild. Rebuilds wait until the pool is ready.
func WithPool(p *gpu.Pool) Option {
	return func(o *engineOptions) {
		o.pool = p
	}
}

// WithPointer sets the UI pointer layer consulted by the input gate.
func WithPointer(p input.PointerLayer) Option {
	return func(o *engineOptions) {
		o.pointer = p
	}
}

// WithGizmos sets the gizmo source consulted by the input gate.
func WithGizmos(g input.GizmoSource) Option {
	return func(o *engineOptions) {
		o.gizmos = g
	}
}

// WithCameraControllers adds camera controllers whose motion the input
// gate toggles every frame.
func WithCameraControllers(c ...input.MotionController) Option {
	return func(o *engineOptions) {
		o.motion = append(o.motion, c...)
	}
}

// WithScaleApplier receives the UI scale on the first frame and whenever the
// scale changes.
func WithScaleApplier(a settings.ScaleApplier) Option {
	return func(o *engineOptions) {
		o.scale = a
	}
}

// WithViewport adds a secondary viewport. The first WithViewport replaces
// the default bottom-right viewport.
func WithViewport(name string, cfg viewport.Config) Option {
	return func(o *engineOptions) {
		if !o.explicit {
			o.views, o.explicit = nil, true
		}
		o.views = append(o.views, namedViewport{name: name, cfg: cfg})
	}
}

// WithoutViewports removes every secondary viewport.
func WithoutViewports() Option {
	return func(o *engineOptions) {
		o.views, o.explicit = nil, true
	}
}

// WithCamera sets the camera rendered into the viewport named by
// cam.Viewport, or the primary camera if cam.Viewport is empty.
// Viewports without a camera get render.SideCamera.
func WithCamera(cam render.Camera) Option {
	return func(o *engineOptions) {
		o.cameras[cam.Viewport] = cam
	}
}

// FromConfig returns the options described by cfg. cfg should already be
// validated; invalid sections fall back to defaults.
func FromConfig(cfg config.Config) []Option {
	var opts []Option
	if p, err := cfg.Params(); err == nil {
		opts = append(opts, WithParams(p))
	}
	if u, err := cfg.UISettings(); err == nil {
		opts = append(opts, WithUISettings(u))
	}
	opts = append(opts, WithGizmoSettings(cfg.GizmoSettings()))
	if cfg.Seed != 0 {
		opts = append(opts, WithSeed(cfg.Seed))
	}

	opts = append(opts, WithoutViewports())
	for _, v := range cfg.Viewports {
		vc, err := v.Config()
		if err != nil {
			continue
		}
		opts = append(opts, WithViewport(v.Name, vc))
	}
	return opts
}
