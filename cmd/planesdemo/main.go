// Command planesdemo runs the image plane scene headless and writes the
// composed frame, primary view plus picture-in-picture viewports, to a PNG.
//
// Usage:
//
//	planesdemo -config planes.toml -set planes.count=5 -set points.size=0.1 -output planes.png
//
// Edits given with -set are applied after the first frame, the way the
// settings panel edits a running scene.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/imageplanes"
	"github.com/gogpu/imageplanes/config"
	"github.com/gogpu/imageplanes/overlay"
	"github.com/gogpu/imageplanes/render"
	"github.com/gogpu/imageplanes/settings"
	"golang.org/x/text/language"
)

// assignments collects repeated -set flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(s string) error {
	*a = append(*a, s)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML or YAML configuration file")
		output     = flag.String("output", "planes.png", "output file")
		frames     = flag.Int("frames", 3, "frames to run before rendering")
		resize     = flag.String("resize", "", "resize the window to WxH after the first frame")
		labels     = flag.Bool("labels", true, "draw point labels")
		verbose    = flag.Bool("v", false, "debug logging")
		edits      assignments
	)
	flag.Var(&edits, "set", "settings edit key=value, repeatable")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	imageplanes.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	e, err := imageplanes.New(imageplanes.FromConfig(cfg)...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	win := e.Windows().Open("planesdemo", cfg.WindowSize(), 1)

	var last imageplanes.FrameResult
	for i := 0; i < max(*frames, 1); i++ {
		last = e.Frame()
		if last.ViewportErr != nil {
			log.Printf("viewport: %v", last.ViewportErr)
		}
		if i != 0 {
			continue
		}
		for _, s := range edits {
			key, value, err := settings.ParseAssignment(s)
			if err == nil {
				err = e.Panel().Set(key, value)
			}
			if err != nil {
				log.Fatalf("Invalid edit %q: %v", s, err)
			}
		}
		if *resize != "" {
			size, err := parseSize(*resize)
			if err != nil {
				log.Fatalf("Invalid -resize: %v", err)
			}
			if err := e.Windows().Resize(win, size); err != nil {
				log.Fatalf("Resize failed: %v", err)
			}
		}
	}

	size, ok := e.Windows().PrimarySize()
	if !ok {
		log.Fatal("No drawable primary window")
	}
	target := render.NewPixmapTarget(size.X, size.Y)

	opts := []render.SoftwareOption{render.WithMeshes(e.Resources())}
	labeler, err := overlay.Default()
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	if *labels {
		opts = append(opts, render.WithLabels(labeler))
	}
	if err := e.Render(target, render.NewSoftware(opts...)); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	overlay.DrawStats(target.Image(), labeler, overlay.NewStats(language.English), last.Stats())

	if err := savePNG(*output, target.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d, %d entities)\n", *output, size.X, size.Y, last.Rebuild.Counts.Total())
}

func parseSize(s string) (image.Point, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return image.Point{}, fmt.Errorf("want WxH, got %q", s)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("size %dx%d must be positive", w, h)
	}
	return image.Pt(w, h), nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
