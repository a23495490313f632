package overlay

import (
	"image/color"
	"image/draw"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FrameStats summarizes one engine frame.
type FrameStats struct {
	Frame         uint64
	Generation    uint32
	Entities      int
	Rebuilt       bool
	Uploads       int
	Viewports     int
	CameraEnabled bool
}

// Stats formats frame statistics for display.
type Stats struct {
	printer *message.Printer
}

// NewStats returns a formatter for tag. The zero tag formats as English.
func NewStats(tag language.Tag) *Stats {
	if tag == language.Und {
		tag = language.English
	}
	return &Stats{printer: message.NewPrinter(tag)}
}

// Format returns a one-line summary such as
// "frame 1,024 | gen 3 | 76 entities | camera on".
func (s *Stats) Format(fs FrameStats) string {
	camera := "off"
	if fs.CameraEnabled {
		camera = "on"
	}
	line := s.printer.Sprintf("frame %d | gen %d | %d entities | camera %s",
		fs.Frame, fs.Generation, fs.Entities, camera)
	if fs.Rebuilt {
		line += s.printer.Sprintf(" | rebuilt, %d uploads", fs.Uploads)
	}
	if fs.Viewports > 0 {
		line += s.printer.Sprintf(" | %d viewports", fs.Viewports)
	}
	return line
}

// DrawStats writes the summary of fs in the top-left corner of dst.
func DrawStats(dst draw.Image, l *Labeler, s *Stats, fs FrameStats) {
	if l == nil || s == nil {
		return
	}
	b := dst.Bounds()
	l.DrawLabel(dst, s.Format(fs), b.Min.X+2, b.Min.Y+2, color.White)
}
