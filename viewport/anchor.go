package viewport

import (
	"fmt"
	"image"
	"strings"
)

// Anchor is the surface corner a viewport is pinned to.
// The zero Anchor is BottomRight.
type Anchor uint8

const (
	// BottomRight pins the viewport to the bottom-right corner.
	BottomRight Anchor = iota
	// BottomLeft pins the viewport to the bottom-left corner.
	BottomLeft
	// TopRight pins the viewport to the top-right corner.
	TopRight
	// TopLeft pins the viewport to the top-left corner.
	TopLeft
)

var anchorNames = [...]string{
	BottomRight: "bottom-right",
	BottomLeft:  "bottom-left",
	TopRight:    "top-right",
	TopLeft:     "top-left",
}

// String implements fmt.Stringer.
func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", uint8(a))
}

// ParseAnchor parses an anchor name such as "bottom-right". Case and the
// separator ('-', '_' or ' ') are ignored.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range anchorNames {
		if norm == name || norm == strings.ReplaceAll(name, "-", "") {
			return Anchor(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown anchor %q", ErrConfig, s)
}

// origin returns the top-left pixel of a viewport of the given size pinned
// to corner a of a surface of size res.
func (a Anchor) origin(res, size image.Point) image.Point {
	free := res.Sub(size)
	switch a {
	case TopLeft:
		return image.Point{}
	case TopRight:
		return image.Pt(free.X, 0)
	case BottomLeft:
		return image.Pt(0, free.Y)
	default:
		return free
	}
}
