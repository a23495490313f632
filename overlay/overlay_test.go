package overlay

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func testLabeler(t *testing.T) *Labeler {
	t.Helper()
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return l
}

func TestDefaultShared(t *testing.T) {
	a := testLabeler(t)
	b := testLabeler(t)
	if a != b {
		t.Error("Default() returned different labelers")
	}
	if a.Size() != DefaultSize {
		t.Errorf("Size() = %v, want %v", a.Size(), DefaultSize)
	}
}

func TestNewLabelerErrors(t *testing.T) {
	if _, err := NewLabeler(nil, 12); !errors.Is(err, ErrNoFont) {
		t.Errorf("NewLabeler(nil) error = %v, want ErrNoFont", err)
	}
	if _, err := NewLabeler([]byte("not a font"), 12); err == nil {
		t.Error("NewLabeler(garbage) succeeded")
	}
}

func TestMeasure(t *testing.T) {
	l := testLabeler(t)

	if w, h := l.Measure(""); w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = %d, %d, want 0, 0", w, h)
	}
	w1, h1 := l.Measure("1")
	w3, h3 := l.Measure("123")
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure(\"1\") = %d, %d, want positive", w1, h1)
	}
	if w3 <= w1 {
		t.Errorf("Measure(\"123\") width %d not wider than %d", w3, w1)
	}
	if h3 != h1 {
		t.Errorf("line height changed with text: %d vs %d", h3, h1)
	}
}

func TestDrawLabelPaints(t *testing.T) {
	l := testLabeler(t)
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))

	r := l.DrawLabel(img, "42", 0, 0, color.White)
	if r.Empty() {
		t.Fatal("DrawLabel returned empty bounds")
	}

	painted := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y).A > 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("DrawLabel painted no pixels")
	}
}

func TestDrawClipped(t *testing.T) {
	l := testLabeler(t)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	// Far outside the image: must not panic.
	l.Draw(img, "clipped", 500, 500, color.White)
	l.Draw(nil, "nil", 0, 0, color.White)
}

func TestStatsFormat(t *testing.T) {
	s := NewStats(language.Und)

	tests := []struct {
		name string
		in   FrameStats
		want []string
	}{
		{
			name: "idle",
			in:   FrameStats{Frame: 1024, Generation: 3, Entities: 76, CameraEnabled: true},
			want: []string{"frame 1,024", "gen 3", "76 entities", "camera on"},
		},
		{
			name: "rebuilt",
			in:   FrameStats{Frame: 2, Generation: 4, Entities: 10, Rebuilt: true, Uploads: 15, Viewports: 1},
			want: []string{"camera off", "rebuilt, 15 uploads", "1 viewports"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Format(tt.in)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Format() = %q, missing %q", got, w)
				}
			}
		})
	}

	if got := s.Format(FrameStats{}); strings.Contains(got, "rebuilt") || strings.Contains(got, "viewports") {
		t.Errorf("Format(zero) = %q, want no optional parts", got)
	}
}

func TestDrawStats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 40))
	DrawStats(img, testLabeler(t), NewStats(language.English), FrameStats{Frame: 1})
	painted := false
	for x := 0; x < 400 && !painted; x++ {
		for y := 0; y < 40; y++ {
			if img.RGBAAt(x, y).A > 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("DrawStats painted no pixels")
	}
	DrawStats(img, nil, nil, FrameStats{})
}
