// Package overlay draws text annotations on top of the software preview:
// point identity labels next to projected points and a frame statistics line.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the label font size in points.
const DefaultSize = 12

// ErrNoFont is returned when a Labeler is built from empty font data.
var ErrNoFont = errors.New("overlay: empty font data")

// Labeler draws short single-line strings with one font face.
//
// A Labeler is safe for concurrent use; drawing is serialized because
// opentype faces keep a glyph buffer.
type Labeler struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

var (
	defaultOnce    sync.Once
	defaultLabeler *Labeler
	defaultErr     error
)

// Default returns the shared Go Regular labeler at DefaultSize.
func Default() (*Labeler, error) {
	defaultOnce.Do(func() {
		defaultLabeler, defaultErr = NewLabeler(goregular.TTF, DefaultSize)
	})
	return defaultLabeler, defaultErr
}

// NewLabeler parses TrueType or OpenType data and opens a face of size points.
func NewLabeler(data []byte, size float64) (*Labeler, error) {
	if len(data) == 0 {
		return nil, ErrNoFont
	}
	if size <= 0 {
		size = DefaultSize
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: open face: %w", err)
	}
	return &Labeler{face: face, size: size}, nil
}

// Size returns the face size in points.
func (l *Labeler) Size() float64 {
	return l.size
}

// Measure returns the advance width and line height of s in pixels.
func (l *Labeler) Measure(s string) (width, height int) {
	if s == "" {
		return 0, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	adv := font.MeasureString(l.face, s)
	return adv.Ceil(), l.face.Metrics().Height.Ceil()
}

// Draw writes s onto dst with its baseline starting at (x, y).
// Glyphs outside dst's bounds are clipped.
func (l *Labeler) Draw(dst draw.Image, s string, x, y int, c color.Color) {
	if s == "" || dst == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: l.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// DrawLabel writes s so that its top-left corner sits at (x, y) offset by
// a small gap, the placement used for point labels.
func (l *Labeler) DrawLabel(dst draw.Image, s string, x, y int, c color.Color) image.Rectangle {
	const gap = 3
	w, h := l.Measure(s)
	l.mu.Lock()
	ascent := l.face.Metrics().Ascent.Ceil()
	l.mu.Unlock()
	l.Draw(dst, s, x+gap, y+gap+ascent, c)
	return image.Rect(x+gap, y+gap, x+gap+w, y+gap+h)
}

// Close releases the face.
func (l *Labeler) Close() error {
	return l.face.Close()
}
