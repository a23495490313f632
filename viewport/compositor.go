package viewport

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// State is the per-frame result for one registered viewport.
type State struct {
	Name   string
	Config Config

	// Rect is the viewport rectangle for the current resolution. Empty when
	// the viewport is disabled.
	Rect image.Rectangle

	// Enabled is false when Config does not fit the current resolution.
	Enabled bool

	// Err is the configuration error that disabled the viewport.
	Err error
}

// Compositor tracks the secondary viewports of one surface.
//
// Compositor is safe for concurrent use.
type Compositor struct {
	mu    sync.RWMutex
	order []string
	views map[string]*State
	res   image.Point
}

// NewCompositor creates an empty compositor.
func NewCompositor() *Compositor {
	return &Compositor{views: make(map[string]*State)}
}

// Register adds a viewport or replaces the config of an existing one.
// The fraction is validated immediately; whether the viewport fits is
// decided by the next Update.
func (c *Compositor) Register(name string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("viewport %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.views[name]; ok {
		s.Config = cfg
		return nil
	}
	c.views[name] = &State{Name: name, Config: cfg}
	c.order = append(c.order, name)
	return nil
}

// Unregister removes a viewport. It reports whether the viewport existed.
func (c *Compositor) Unregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.views[name]; !ok {
		return false
	}
	delete(c.views, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Update recomputes every viewport for resolution res. Viewports that do
// not fit are disabled for this frame; their errors are joined into the
// returned error.
func (c *Compositor) Update(res image.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.res = res
	var errs []error
	for _, name := range c.order {
		s := c.views[name]
		wasEnabled, hadErr := s.Enabled, s.Err != nil

		rect, err := Compute(s.Config, res)
		if err != nil {
			err = fmt.Errorf("viewport %q: %w", name, err)
			errs = append(errs, err)
			s.Rect, s.Enabled, s.Err = image.Rectangle{}, false, err
			if !hadErr {
				logger().Error("viewport disabled", "name", name, "resolution", res.String(), "err", err)
			}
			continue
		}

		s.Rect, s.Enabled, s.Err = rect, true, nil
		if !wasEnabled {
			logger().Debug("viewport enabled", "name", name, "rect", rect.String())
		}
	}
	return errors.Join(errs...)
}

// Resolution returns the resolution of the last Update.
func (c *Compositor) Resolution() image.Point {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res
}

// Rect returns the rectangle of an enabled viewport.
func (c *Compositor) Rect(name string) (image.Rectangle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.views[name]
	if !ok || !s.Enabled {
		return image.Rectangle{}, false
	}
	return s.Rect, true
}

// Viewports returns the state of every viewport in registration order.
func (c *Compositor) Viewports() []State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]State, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.views[name])
	}
	return out
}

// Len returns the number of registered viewports.
func (c *Compositor) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
