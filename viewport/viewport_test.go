package viewport

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestComputeBottomRight(t *testing.T) {
	rect, err := Compute(Config{Fraction: mgl32.Vec2{0.3, 0.3}, Anchor: BottomRight}, image.Pt(1920, 1080))
	if err != nil {
		t.Fatalf("Compute() = %v", err)
	}
	if rect.Min != image.Pt(1344, 756) {
		t.Errorf("position = %v, want (1344,756)", rect.Min)
	}
	if rect.Size() != image.Pt(576, 324) {
		t.Errorf("size = %v, want (576,324)", rect.Size())
	}
}

func TestComputeAnchors(t *testing.T) {
	res := image.Pt(1000, 500)
	cfg := Config{Fraction: mgl32.Vec2{0.25, 0.5}}

	tests := []struct {
		anchor Anchor
		want   image.Rectangle
	}{
		{TopLeft, image.Rect(0, 0, 250, 250)},
		{TopRight, image.Rect(750, 0, 1000, 250)},
		{BottomLeft, image.Rect(0, 250, 250, 500)},
		{BottomRight, image.Rect(750, 250, 1000, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			cfg.Anchor = tt.anchor
			got, err := Compute(cfg, res)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
			if !got.In(image.Rectangle{Max: res}) {
				t.Errorf("%v not inside surface %v", got, res)
			}
		})
	}
}

func TestComputeErrors(t *testing.T) {
	res := image.Pt(1920, 1080)
	tests := []struct {
		name     string
		fraction mgl32.Vec2
		want     error
	}{
		{"too wide", mgl32.Vec2{1.2, 0.5}, ErrViewportTooLarge},
		{"too tall", mgl32.Vec2{0.5, 1.01}, ErrViewportTooLarge},
		{"zero", mgl32.Vec2{0, 0.5}, ErrInvalidFraction},
		{"negative", mgl32.Vec2{0.5, -0.1}, ErrInvalidFraction},
		{"huge", mgl32.Vec2{1e20, 0.5}, ErrViewportTooLarge},
		{"huge height", mgl32.Vec2{0.5, math.MaxFloat32}, ErrViewportTooLarge},
		{"infinite", mgl32.Vec2{float32(math.Inf(1)), 0.5}, ErrInvalidFraction},
		{"nan", mgl32.Vec2{0.5, float32(math.NaN())}, ErrInvalidFraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(Config{Fraction: tt.fraction}, res)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("err = %v does not wrap ErrConfig", err)
			}
		})
	}
}

func TestComputeFullSurface(t *testing.T) {
	rect, err := Compute(Config{Fraction: mgl32.Vec2{1, 1}}, image.Pt(640, 480))
	if err != nil {
		t.Fatal(err)
	}
	if rect != image.Rect(0, 0, 640, 480) {
		t.Errorf("rect = %v, want full surface", rect)
	}
}

func TestComputeRounds(t *testing.T) {
	// 0.5 * 101 = 50.5 rounds away from zero.
	rect, err := Compute(Config{Fraction: mgl32.Vec2{0.5, 0.5}, Anchor: TopLeft}, image.Pt(101, 99))
	if err != nil {
		t.Fatal(err)
	}
	if rect.Size() != image.Pt(51, 50) {
		t.Errorf("size = %v, want (51,50)", rect.Size())
	}
}

func TestMustComputePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrViewportTooLarge) {
			t.Errorf("recovered %v, want ErrViewportTooLarge", r)
		}
	}()
	MustCompute(Config{Fraction: mgl32.Vec2{1.2, 0.5}}, image.Pt(1920, 1080))
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"bottom-right", BottomRight},
		{"Bottom_Left", BottomLeft},
		{"top right", TopRight},
		{"topleft", TopLeft},
		{" TOP-LEFT ", TopLeft},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseAnchor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseAnchor("center"); !errors.Is(err, ErrConfig) {
		t.Errorf("ParseAnchor(center) err = %v, want ErrConfig", err)
	}
}
