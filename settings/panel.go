package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/imageplanes/params"
)

// Field is one editable value of a Section.
type Field struct {
	Key   string
	Label string
	Value string
}

// Section is one group of the settings panel.
type Section struct {
	Title  string
	Fields []Field
}

// Panel groups everything the settings window edits, in display order:
// planes, points, size, gizmo, UI.
type Panel struct {
	Params *params.Store
	UI     *UIStore
	Gizmo  *GizmoStore
}

// NewPanel creates a panel over the given stores. Nil stores get defaults.
func NewPanel(p *params.Store, ui *UIStore, gizmo *GizmoStore) *Panel {
	if p == nil {
		p = params.NewStore(params.Defaults())
	}
	if ui == nil {
		ui = NewUIStore(DefaultUI())
	}
	if gizmo == nil {
		gizmo = NewGizmoStore(Gizmo{})
	}
	return &Panel{Params: p, UI: ui, Gizmo: gizmo}
}

// Sections returns the panel contents in display order.
func (p *Panel) Sections() []Section {
	ps := p.Params.Params()
	ui := p.UI.Get()
	gz := p.Gizmo.Get()

	return []Section{
		{Title: "Image planes", Fields: []Field{
			{Key: "planes.count", Label: "Planes", Value: strconv.Itoa(ps.PlaneCount)},
		}},
		{Title: "Image points", Fields: []Field{
			{Key: "points.count", Label: "Points", Value: strconv.Itoa(ps.PointCount)},
			{Key: "points.size", Label: "Point size", Value: formatFloat(ps.PointSize)},
		}},
		{Title: "Image size", Fields: []Field{
			{Key: "size.x", Label: "Width", Value: formatFloat(ps.BasePlaneSize.X())},
			{Key: "size.y", Label: "Height", Value: formatFloat(ps.BasePlaneSize.Y())},
		}},
		{Title: "Gizmo settings", Fields: []Field{
			{Key: "gizmo.world_axes", Label: "Show world axes", Value: strconv.FormatBool(gz.ShowWorldAxes)},
		}},
		{Title: "UI settings", Fields: []Field{
			{Key: "ui.show_world_ui", Label: "Show world UI", Value: strconv.FormatBool(ui.ShowWorldUI)},
			{Key: "ui.scale", Label: "UI scale", Value: formatFloat(ui.Scale)},
		}},
	}
}

// Set edits the field named key, parsing value for its type. Invalid
// values leave every store unchanged.
func (p *Panel) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "planes.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings: %s: %w", key, err)
		}
		return p.Params.SetPlaneCount(n)
	case "points.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings: %s: %w", key, err)
		}
		return p.Params.SetPointCount(n)
	case "points.size":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		return p.Params.SetPointSize(f)
	case "size.x", "size.y":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		return p.Params.Update(func(ps *params.Params) {
			if key == "size.x" {
				ps.BasePlaneSize = mgl32.Vec2{f, ps.BasePlaneSize.Y()}
			} else {
				ps.BasePlaneSize = mgl32.Vec2{ps.BasePlaneSize.X(), f}
			}
		})
	case "gizmo.world_axes":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("settings: %s: %w", key, err)
		}
		p.Gizmo.Set(Gizmo{ShowWorldAxes: b})
		return nil
	case "ui.show_world_ui":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("settings: %s: %w", key, err)
		}
		p.UI.SetShowWorldUI(b)
		return nil
	case "ui.scale":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		return p.UI.SetScale(f)
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalid, key)
	}
}

// ParseAssignment splits "key=value".
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("%w: want key=value, got %q", ErrInvalid, s)
	}
	return strings.TrimSpace(key), value, nil
}

func parseFloat(key, value string) (float32, error) {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("settings: %s: %w", key, err)
	}
	return float32(f), nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
