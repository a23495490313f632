package resource

import (
	"math/rand/v2"

	"github.com/gogpu/gputypes"
)

// AlphaMode selects how a material's alpha is used.
type AlphaMode uint8

const (
	// AlphaOpaque ignores alpha.
	AlphaOpaque AlphaMode = iota
	// AlphaBlend blends with what is behind.
	AlphaBlend
)

// String implements fmt.Stringer.
func (m AlphaMode) String() string {
	if m == AlphaBlend {
		return "blend"
	}
	return "opaque"
}

// Material describes a renderable surface appearance.
type Material struct {
	// Color is the base color.
	Color gputypes.Color

	// Unlit disables lighting; the surface shows Color as is.
	Unlit bool

	// CullMode selects which faces are culled. CullModeNone renders both sides.
	CullMode gputypes.CullMode

	// AlphaMode selects opaque or blended rendering.
	AlphaMode AlphaMode
}

// UnlitMaterial returns an unlit, double-sided material of color c.
// Translucent colors get blended alpha.
func UnlitMaterial(c gputypes.Color) Material {
	mode := AlphaOpaque
	if c.A < 1 {
		mode = AlphaBlend
	}
	return Material{
		Color:     c,
		Unlit:     true,
		CullMode:  gputypes.CullModeNone,
		AlphaMode: mode,
	}
}

// ColorFromRGBA8 converts 8-bit channels to a color in [0, 1].
func ColorFromRGBA8(rgba [4]uint8) gputypes.Color {
	return gputypes.Color{
		R: float64(rgba[0]) / 255,
		G: float64(rgba[1]) / 255,
		B: float64(rgba[2]) / 255,
		A: float64(rgba[3]) / 255,
	}
}

// RandomColor returns an opaque color with each RGB channel uniform in [0, 1).
func RandomColor(r *rand.Rand) gputypes.Color {
	return gputypes.Color{
		R: r.Float64(),
		G: r.Float64(),
		B: r.Float64(),
		A: 1,
	}
}

// Green300 is the tailwind green-300 swatch (#86efac) at 5% alpha,
// the overlay tint of image planes.
var Green300 = [4]uint8{0x86, 0xef, 0xac, 13}
