// Package style holds the tool, colour and width used for new actions.
package style

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/whiteboard/internal/action"
)

const (
	DefaultTool  = action.ToolPen
	DefaultColor = "#000000"
	DefaultWidth = 3
)

// Settings is the drawing style read by the board whenever it creates an
// action. Changing it never alters actions that already exist.
type Settings struct {
	Tool  action.Tool
	Color string
	Width int
}

// Default returns the initial settings: black 3px pen.
func Default() Settings {
	return Settings{Tool: DefaultTool, Color: DefaultColor, Width: DefaultWidth}
}

// SetTool selects a tool by name.
func (s *Settings) SetTool(name string) error {
	t, err := action.ParseTool(name)
	if err != nil {
		return err
	}
	s.Tool = t
	return nil
}

// SetColor accepts a #RRGGBB value, an SVG colour name or a palette name and
// stores it as #RRGGBB.
func (s *Settings) SetColor(spec string) error {
	hex, err := ResolveColor(spec)
	if err != nil {
		return err
	}
	s.Color = hex
	return nil
}

// SetWidth stores w clamped to the supported range.
func (s *Settings) SetWidth(w int) {
	s.Width = ClampWidth(w)
}

// Normalize replaces any unusable field with its default.
func (s Settings) Normalize() Settings {
	if s.Tool.Kind() == "" {
		s.Tool = DefaultTool
	}
	if _, err := action.ParseColor(s.Color); err != nil {
		s.Color = DefaultColor
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	s.Width = ClampWidth(s.Width)
	return s
}

func (s Settings) String() string {
	return fmt.Sprintf("%s %s %dpx", s.Tool, s.Color, s.Width)
}

// ClampWidth limits w to [action.MinWidth, action.MaxWidth].
func ClampWidth(w int) int {
	if w < action.MinWidth {
		return action.MinWidth
	}
	if w > action.MaxWidth {
		return action.MaxWidth
	}
	return w
}

// ResolveColor converts a colour specification to #RRGGBB.
func ResolveColor(spec string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return "", fmt.Errorf("color cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		c, err := action.ParseColor(s)
		if err != nil {
			return "", err
		}
		return action.Hex(c), nil
	}
	for _, entry := range palette {
		if strings.EqualFold(entry.Name, s) {
			return action.Hex(entry.Color), nil
		}
	}
	if c, ok := colornames.Map[s]; ok {
		return action.Hex(c), nil
	}
	return "", fmt.Errorf("invalid color %q", spec)
}

// PaletteColor is a named toolbar swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Orange", color.RGBA{255, 136, 0, 255}},
	{"Yellow", color.RGBA{255, 221, 0, 255}},
	{"Green", color.RGBA{0, 160, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
}

var widths = []int{1, 2, 3, 5, 8, 12, 20}

// Palette returns the toolbar swatches.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// WidthOptions returns the toolbar width presets.
func WidthOptions() []int {
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}
