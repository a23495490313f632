// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"sort"
	"sync"
)

// Registry tracks open windows and the primary window.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	windows map[WindowID]*Window
	primary WindowID
	next    WindowID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		windows: make(map[WindowID]*Window),
	}
}

// Open records a new window and returns its ID. The first window opened
// while there is no primary window becomes primary.
// A scale factor <= 0 is treated as 1.
func (r *Registry) Open(title string, size image.Point, scale float64) WindowID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if scale <= 0 {
		scale = 1
	}
	r.next++
	id := r.next
	r.windows[id] = &Window{ID: id, Title: title, Size: size, ScaleFactor: scale}
	if r.primary == 0 {
		r.primary = id
		r.windows[id].Primary = true
	}
	return id
}

// Resize updates the physical size of a window.
func (r *Registry) Resize(id WindowID, size image.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return &WindowNotFoundError{ID: id}
	}
	w.Size = size
	return nil
}

// SetScaleFactor updates the scale factor of a window.
func (r *Registry) SetScaleFactor(id WindowID, scale float64) error {
	if scale <= 0 {
		return ErrInvalidScale
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return &WindowNotFoundError{ID: id}
	}
	w.ScaleFactor = scale
	return nil
}

// SetPrimary makes id the primary window.
func (r *Registry) SetPrimary(id WindowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return &WindowNotFoundError{ID: id}
	}
	if prev, ok := r.windows[r.primary]; ok {
		prev.Primary = false
	}
	r.primary = id
	w.Primary = true
	return nil
}

// Close removes a window. Closing the primary window leaves the registry
// without a primary window until SetPrimary or the next Open.
func (r *Registry) Close(id WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id]; !ok {
		return false
	}
	delete(r.windows, id)
	if r.primary == id {
		r.primary = 0
	}
	return true
}

// Get returns a snapshot of a window.
func (r *Registry) Get(id WindowID) (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Primary returns the primary window.
func (r *Registry) Primary() (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.windows[r.primary]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// PrimarySize returns the physical size of the primary window. It reports
// false when there is no primary window or it has no drawable area.
func (r *Registry) PrimarySize() (image.Point, bool) {
	w, ok := r.Primary()
	if !ok || !w.Drawable() {
		return image.Point{}, false
	}
	return w.Size, true
}

// List returns all windows ordered by ID.
func (r *Registry) List() []Window {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Window, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// Errors.
var (
	// ErrInvalidScale is returned for a non-positive scale factor.
	ErrInvalidScale = errors.New("surface: scale factor must be > 0")
)

// WindowNotFoundError indicates an ID that is not registered.
type WindowNotFoundError struct {
	ID WindowID
}

func (e *WindowNotFoundError) Error() string {
	return "surface: window not found: " + e.ID.String()
}
