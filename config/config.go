// Package config loads the demo configuration from TOML or YAML files.
//
// Files are decoded on top of Default, so a file only lists what it changes.
// Unknown keys are rejected. The format is chosen by extension:
//
//	cfg, err := config.Load("planes.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p, err := cfg.Params()
package config

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/params"
	"github.com/gogpu/imageplanes/settings"
	"github.com/gogpu/imageplanes/viewport"
)

// ErrInvalid reports a configuration that decoded but failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Scene holds the scene parameters.
type Scene struct {
	Planes    int        `toml:"planes" yaml:"planes"`
	Points    int        `toml:"points" yaml:"points"`
	PointSize float32    `toml:"point_size" yaml:"point_size"`
	BaseSize  [2]float32 `toml:"base_size" yaml:"base_size"`
}

// UI holds the UI settings.
type UI struct {
	ShowWorldUI bool    `toml:"show_world_ui" yaml:"show_world_ui"`
	Scale       float32 `toml:"scale" yaml:"scale"`
}

// Gizmo holds the gizmo settings.
type Gizmo struct {
	ShowWorldAxes bool `toml:"show_world_axes" yaml:"show_world_axes"`
}

// Viewport describes a secondary camera viewport.
type Viewport struct {
	Name     string     `toml:"name" yaml:"name"`
	Fraction [2]float32 `toml:"fraction" yaml:"fraction"`
	Anchor   string     `toml:"anchor" yaml:"anchor"`
}

// Window is the initial primary window size in physical pixels.
type Window struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Config is the complete demo configuration.
type Config struct {
	// Seed seeds point positions and colors. Zero picks a random seed.
	Seed uint64 `toml:"seed" yaml:"seed"`

	Window Window `toml:"window" yaml:"window"`
	Scene  Scene  `toml:"scene" yaml:"scene"`
	UI     UI     `toml:"ui" yaml:"ui"`
	Gizmo  Gizmo  `toml:"gizmo" yaml:"gizmo"`

	// Viewports lists the secondary viewports. Omitted means the default
	// bottom-right picture-in-picture viewport.
	Viewports []Viewport `toml:"viewports" yaml:"viewports"`
}

// DefaultViewportName is the name of the default secondary viewport.
const DefaultViewportName = "secondary"

// Default returns the built-in configuration.
func Default() Config {
	p := params.Defaults()
	ui := settings.DefaultUI()
	return Config{
		Window: Window{Width: 1280, Height: 720},
		Scene: Scene{
			Planes:    p.PlaneCount,
			Points:    p.PointCount,
			PointSize: p.PointSize,
			BaseSize:  [2]float32{p.BasePlaneSize.X(), p.BasePlaneSize.Y()},
		},
		UI:        UI{ShowWorldUI: ui.ShowWorldUI, Scale: ui.Scale},
		Viewports: defaultViewports(),
	}
}

func defaultViewports() []Viewport {
	return []Viewport{{
		Name:     DefaultViewportName,
		Fraction: [2]float32{0.3, 0.3},
		Anchor:   viewport.BottomRight.String(),
	}}
}

// Params converts the scene section.
func (c Config) Params() (params.Params, error) {
	p := params.Params{
		PlaneCount:    c.Scene.Planes,
		PointCount:    c.Scene.Points,
		PointSize:     c.Scene.PointSize,
		BasePlaneSize: mgl32.Vec2(c.Scene.BaseSize),
	}
	if err := p.Validate(); err != nil {
		return params.Params{}, fmt.Errorf("%w: scene: %w", ErrInvalid, err)
	}
	return p, nil
}

// UISettings converts the ui section.
func (c Config) UISettings() (settings.UI, error) {
	u := settings.UI{ShowWorldUI: c.UI.ShowWorldUI, Scale: c.UI.Scale}
	if err := u.Validate(); err != nil {
		return settings.UI{}, fmt.Errorf("%w: ui: %w", ErrInvalid, err)
	}
	return u, nil
}

// GizmoSettings converts the gizmo section.
func (c Config) GizmoSettings() settings.Gizmo {
	return settings.Gizmo{ShowWorldAxes: c.Gizmo.ShowWorldAxes}
}

// WindowSize returns the window size as a point.
func (c Config) WindowSize() image.Point {
	return image.Pt(c.Window.Width, c.Window.Height)
}

// Config converts v.
// Whether the viewport fits a surface is only known per resolution and is
// checked by the compositor.
func (v Viewport) Config() (viewport.Config, error) {
	anchor := viewport.BottomRight
	if v.Anchor != "" {
		a, err := viewport.ParseAnchor(v.Anchor)
		if err != nil {
			return viewport.Config{}, err
		}
		anchor = a
	}
	cfg := viewport.Config{Fraction: mgl32.Vec2(v.Fraction), Anchor: anchor}
	if err := cfg.Validate(); err != nil {
		return viewport.Config{}, err
	}
	return cfg, nil
}

// Validate checks every section and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if _, err := c.Params(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.UISettings(); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]bool, len(c.Viewports))
	for i, v := range c.Viewports {
		if v.Name == "" {
			errs = append(errs, fmt.Errorf("%w: viewport %d has no name", ErrInvalid, i))
			continue
		}
		if seen[v.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate viewport %q", ErrInvalid, v.Name))
		}
		seen[v.Name] = true
		if _, err := v.Config(); err != nil {
			errs = append(errs, fmt.Errorf("%w: viewport %q: %w", ErrInvalid, v.Name, err))
		}
	}
	return errors.Join(errs...)
}
