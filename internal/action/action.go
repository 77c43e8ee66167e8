package action

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Tool names a drawing tool.
type Tool string

const (
	ToolPen       Tool = "pen"
	ToolPencil    Tool = "pencil"
	ToolEraser    Tool = "eraser"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolArrow     Tool = "arrow"
	ToolText      Tool = "text"
)

// Kind is the variant tag of an Action.
type Kind string

const (
	KindStroke    Kind = "stroke"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
)

// Composite selects how an action is blended onto the surface.
type Composite string

const (
	CompositePaintOver Composite = "paint-over"
	// CompositeErase removes coverage from the destination (destination-out).
	CompositeErase Composite = "erase"
)

const (
	MinWidth = 1
	MaxWidth = 20

	PencilOpacity = 0.7

	ArrowHeadLength = 15.0
	ArrowHeadAngle  = math.Pi / 6

	// FontScale converts a stroke width into a text size in pixels.
	FontScale = 5
)

var tools = []Tool{ToolPen, ToolPencil, ToolEraser, ToolRectangle, ToolEllipse, ToolText, ToolArrow}

// Tools returns the available tools in toolbar order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// ParseTool resolves a tool name. The legacy names "square" and "circle" map
// to the rectangle and ellipse tools.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "square", "rect":
		return ToolRectangle, nil
	case "circle":
		return ToolEllipse, nil
	}
	for _, t := range tools {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so persisted records may
// use any name accepted by ParseTool.
func (t *Tool) UnmarshalText(b []byte) error {
	parsed, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Kind reports the action variant produced by the tool.
func (t Tool) Kind() Kind {
	switch t {
	case ToolPen, ToolPencil, ToolEraser:
		return KindStroke
	case ToolRectangle:
		return KindRectangle
	case ToolEllipse:
		return KindEllipse
	case ToolArrow:
		return KindArrow
	case ToolText:
		return KindText
	}
	return ""
}

// Freehand reports whether the tool records a poly-line while dragging.
func (t Tool) Freehand() bool { return t.Kind() == KindStroke }

// Shape reports whether the tool is defined by a start and end point.
func (t Tool) Shape() bool {
	switch t.Kind() {
	case KindRectangle, KindEllipse, KindArrow:
		return true
	}
	return false
}

// Point is a position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Action is one drawing primitive. The populated fields depend on Kind():
// strokes use Points, shapes use Start and End, text uses Text and Anchor.
type Action struct {
	Tool      Tool      `json:"tool"`
	Color     string    `json:"color"`
	Width     int       `json:"width"`
	Opacity   float64   `json:"opacity,omitempty"`
	Composite Composite `json:"composite,omitempty"`
	Points    []Point   `json:"points,omitempty"`
	Start     *Point    `json:"start,omitempty"`
	End       *Point    `json:"end,omitempty"`
	Text      string    `json:"text,omitempty"`
	Anchor    *Point    `json:"anchor,omitempty"`
}

// NewStroke starts a freehand stroke at p.
func NewStroke(tool Tool, col string, width int, p Point) Action {
	a := Action{Tool: tool, Color: col, Width: width, Points: []Point{p}}
	a.normalize()
	return a
}

// NewShape starts a rectangle, ellipse or arrow anchored at start.
func NewShape(tool Tool, col string, width int, start Point) Action {
	s := start
	return Action{Tool: tool, Color: col, Width: width, Start: &s}
}

// NewText builds a text action with its baseline-left corner at anchor.
func NewText(col string, width int, anchor Point, text string) Action {
	p := anchor
	return Action{Tool: ToolText, Color: col, Width: width, Text: text, Anchor: &p}
}

// Kind reports the variant of a.
func (a Action) Kind() Kind { return a.Tool.Kind() }

// normalize fills the stroke blending fields implied by the tool.
func (a *Action) normalize() {
	if a.Kind() != KindStroke {
		a.Opacity = 0
		a.Composite = ""
		return
	}
	switch a.Tool {
	case ToolPencil:
		a.Opacity = PencilOpacity
	default:
		a.Opacity = 1
	}
	a.Composite = CompositePaintOver
	if a.Tool == ToolEraser {
		a.Composite = CompositeErase
	}
}

// Alpha is the opacity multiplier applied when compositing a.
func (a Action) Alpha() float64 {
	if a.Kind() != KindStroke || a.Opacity <= 0 || a.Opacity > 1 {
		return 1
	}
	return a.Opacity
}

// Erases reports whether a removes coverage instead of painting.
func (a Action) Erases() bool { return a.Composite == CompositeErase }

// Valid reports whether a can be rendered and committed.
func (a Action) Valid() bool {
	if a.Width < MinWidth || a.Width > MaxWidth {
		return false
	}
	if _, err := ParseColor(a.Color); err != nil {
		return false
	}
	switch a.Kind() {
	case KindStroke:
		return len(a.Points) >= 2
	case KindRectangle, KindEllipse, KindArrow:
		return a.Start != nil && a.End != nil
	case KindText:
		return a.Text != "" && a.Anchor != nil
	}
	return false
}

// Clone returns a deep copy of a that shares no memory with it.
func (a Action) Clone() Action {
	out := a
	if a.Points != nil {
		out.Points = make([]Point, len(a.Points))
		copy(out.Points, a.Points)
	}
	out.Start = clonePoint(a.Start)
	out.End = clonePoint(a.End)
	out.Anchor = clonePoint(a.Anchor)
	return out
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ParseColor parses a #RRGGBB hex string.
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := s[1:]
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex length in %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(val >> 16),
		G: uint8((val >> 8) & 0xFF),
		B: uint8(val & 0xFF),
		A: 255,
	}, nil
}

// Hex formats c as a #RRGGBB string, dropping alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
