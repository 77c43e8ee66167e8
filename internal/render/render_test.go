package render

import (
	"bytes"
	"image"
	"image/color"
	"runtime"
	"strings"
	"testing"

	"github.com/example/whiteboard/internal/action"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func stroke(tool action.Tool, col string, width int, pts ...action.Point) action.Action {
	a := action.NewStroke(tool, col, width, pts[0])
	a.Points = append(a.Points, pts[1:]...)
	return a
}

func shape(tool action.Tool, col string, width int, start, end action.Point) action.Action {
	a := action.NewShape(tool, col, width, start)
	a.End = &end
	return a
}

func TestRenderEmptyIsWhite(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Render(dst, nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, got)
			}
		}
	}
	// A missing surface is ignored.
	Render(nil, []action.Action{stroke(action.ToolPen, "#000000", 3, action.Pt(0, 0), action.Pt(5, 5))})
}

func TestRenderPenStroke(t *testing.T) {
	dst := NewSurface(60, 30)
	Render(dst, []action.Action{stroke(action.ToolPen, "#000000", 4, action.Pt(5, 10), action.Pt(45, 10))})
	if got := dst.RGBAAt(20, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("stroke centre = %v, want opaque black", got)
	}
	if got := dst.RGBAAt(20, 25); got != white {
		t.Errorf("pixel away from stroke = %v, want white", got)
	}
	// Round caps extend past the end points by half the width.
	if got := dst.RGBAAt(46, 10); got == white {
		t.Errorf("expected round cap coverage beyond the end point")
	}
}

func TestRenderPencilIsTranslucentWithoutDoubleBlending(t *testing.T) {
	single := NewSurface(60, 30)
	Render(single, []action.Action{stroke(action.ToolPencil, "#000000", 4, action.Pt(5, 10), action.Pt(45, 10))})
	got := single.RGBAAt(20, 10)
	if got.R < 74 || got.R > 78 || got.A != 255 {
		t.Fatalf("pencil pixel = %v, want about 30%% white", got)
	}

	// Retracing the same line within one stroke must not darken it.
	retraced := NewSurface(60, 30)
	Render(retraced, []action.Action{stroke(action.ToolPencil, "#000000", 4,
		action.Pt(5, 10), action.Pt(45, 10), action.Pt(5, 10), action.Pt(45, 10))})
	if again := retraced.RGBAAt(20, 10); again != got {
		t.Fatalf("retraced pencil pixel = %v, want %v", again, got)
	}
}

func TestRenderEraserRevealsTransparency(t *testing.T) {
	dst := NewSurface(60, 30)
	Render(dst, []action.Action{
		stroke(action.ToolPen, "#FF0000", 20, action.Pt(5, 15), action.Pt(55, 15)),
		stroke(action.ToolEraser, "#000000", 4, action.Pt(5, 15), action.Pt(55, 15)),
	})
	if got := dst.RGBAAt(30, 15); got.A != 0 {
		t.Errorf("erased pixel = %v, want transparent", got)
	}
	if got := dst.RGBAAt(30, 7); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel outside eraser = %v, want red", got)
	}
}

func TestRenderSkipsInvalidActions(t *testing.T) {
	dst := NewSurface(20, 20)
	Render(dst, []action.Action{
		action.NewStroke(action.ToolPen, "#000000", 3, action.Pt(10, 10)),
		stroke(action.ToolPen, "nope", 3, action.Pt(0, 0), action.Pt(19, 19)),
	})
	want := NewSurface(20, 20)
	if !bytes.Equal(dst.Pix, want.Pix) {
		t.Fatalf("invalid actions changed the surface")
	}
}

func TestRenderRectangleOutline(t *testing.T) {
	dst := NewSurface(130, 80)
	Render(dst, []action.Action{shape(action.ToolRectangle, "#0000FF", 2, action.Pt(10, 10), action.Pt(110, 60))})
	blue := color.RGBA{B: 255, A: 255}
	if got := dst.RGBAAt(60, 10); got != blue {
		t.Errorf("top edge = %v, want blue", got)
	}
	if got := dst.RGBAAt(110, 35); got != blue {
		t.Errorf("right edge = %v, want blue", got)
	}
	if got := dst.RGBAAt(60, 35); got != white {
		t.Errorf("interior = %v, want white", got)
	}
}

func TestRenderEllipseAndArrow(t *testing.T) {
	dst := NewSurface(130, 80)
	Render(dst, []action.Action{
		shape(action.ToolEllipse, "#000000", 2, action.Pt(10, 10), action.Pt(110, 60)),
	})
	if got := dst.RGBAAt(60, 35); got != white {
		t.Errorf("ellipse centre = %v, want white", got)
	}
	if got := dst.RGBAAt(110, 35); got == white {
		t.Errorf("expected ellipse outline at the right extreme")
	}

	arrow := NewSurface(130, 40)
	Render(arrow, []action.Action{shape(action.ToolArrow, "#000000", 2, action.Pt(10, 20), action.Pt(110, 20))})
	if got := arrow.RGBAAt(60, 20); got == white {
		t.Errorf("expected arrow shaft")
	}
	if got := arrow.RGBAAt(98, 13); got == white {
		t.Errorf("expected arrowhead wing near the tip")
	}
}

func TestRenderText(t *testing.T) {
	dst := NewSurface(200, 80)
	Render(dst, []action.Action{action.NewText("#000000", 3, action.Pt(50, 50), "Hi")})
	inked := 0
	for y := 30; y < 52; y++ {
		for x := 50; x < 80; x++ {
			if dst.RGBAAt(x, y) != white {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatalf("expected glyph coverage above the baseline")
	}
	for x := 0; x < 200; x++ {
		if dst.RGBAAt(x, 5) != white {
			t.Fatalf("unexpected ink far above the text at x=%d", x)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	actions := []action.Action{
		stroke(action.ToolPencil, "#336699", 7, action.Pt(3, 3), action.Pt(40, 25), action.Pt(10, 30)),
		shape(action.ToolEllipse, "#FF8800", 3, action.Pt(5, 5), action.Pt(35, 30)),
	}
	a := NewSurface(50, 40)
	b := NewSurface(50, 40)
	Render(a, actions)
	rd := NewRenderer()
	rd.Render(b, actions)
	rd.Render(b, actions)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("rendering twice produced different pixels")
	}
}

func TestIncrementalMatchesFullRender(t *testing.T) {
	committed := []action.Action{
		stroke(action.ToolPen, "#112233", 12, action.Pt(0, 20), action.Pt(80, 20)),
		shape(action.ToolRectangle, "#00AA00", 3, action.Pt(10, 5), action.Pt(70, 45)),
	}
	strokes := []action.Action{
		stroke(action.ToolPen, "#CC0000", 5, action.Pt(5, 5), action.Pt(30, 40), action.Pt(60, 10), action.Pt(75, 45)),
		stroke(action.ToolPencil, "#0000CC", 9, action.Pt(2, 30), action.Pt(40, 30), action.Pt(20, 31), action.Pt(78, 29)),
		stroke(action.ToolEraser, "#000000", 6, action.Pt(-5, 20), action.Pt(40, 22), action.Pt(90, 18)),
		stroke(action.ToolPen, "#336699", 7, action.Pt(-3000, 25), action.Pt(40, 25), action.Pt(9000, -4000)),
	}
	for _, s := range strokes {
		t.Run(string(s.Tool), func(t *testing.T) {
			rd := NewRenderer()
			live := NewSurface(80, 50)
			rd.Render(live, committed)

			sr := NewStrokeRenderer(rd)
			pending := action.NewStroke(s.Tool, s.Color, s.Width, s.Points[0])
			sr.Begin(live, pending)
			for _, p := range s.Points[1:] {
				pending.Points = append(pending.Points, p)
				sr.Extend(pending)
			}
			sr.End()

			full := NewSurface(80, 50)
			Render(full, append(append([]action.Action{}, committed...), s))
			if !bytes.Equal(live.Pix, full.Pix) {
				t.Fatalf("incremental output differs from a full render")
			}
		})
	}
}

func TestStrokeRendererIgnoresShapesAndNilSurface(t *testing.T) {
	sr := NewStrokeRenderer(nil)
	sr.Begin(nil, stroke(action.ToolPen, "#000000", 3, action.Pt(0, 0), action.Pt(1, 1)))
	if sr.Active() {
		t.Fatalf("stroke renderer active without a surface")
	}
	dst := NewSurface(10, 10)
	sr.Begin(dst, shape(action.ToolRectangle, "#000000", 3, action.Pt(0, 0), action.Pt(5, 5)))
	if sr.Active() {
		t.Fatalf("stroke renderer active for a shape")
	}
}

func TestThumbnailAndDataURI(t *testing.T) {
	src := NewSurface(640, 240)
	th := Thumbnail(src, ThumbnailWidth, ThumbnailHeight)
	if th.Bounds().Dx() != 320 || th.Bounds().Dy() != 120 {
		t.Fatalf("thumbnail bounds = %v, want 320x120", th.Bounds())
	}
	small := Thumbnail(NewSurface(10, 10), ThumbnailWidth, ThumbnailHeight)
	if small.Bounds().Dx() != 10 {
		t.Fatalf("small images should not be scaled, got %v", small.Bounds())
	}
	uri, err := DataURI(th)
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected data URI prefix: %.40s", uri)
	}
}

func allocatedBytes(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestRenderOffCanvasActions(t *testing.T) {
	const size = 100
	const budget = 4 << 20
	black := "#000000"
	cases := []struct {
		name  string
		a     action.Action
		ink   []image.Point
		blank []image.Point
	}{
		{"stroke through canvas", stroke(action.ToolPen, black, 4, action.Pt(-20000, 50), action.Pt(20000, 50)),
			[]image.Point{{50, 50}, {0, 50}, {99, 50}}, []image.Point{{50, 10}}},
		{"long diagonal", stroke(action.ToolPen, black, 4, action.Pt(0, 0), action.Pt(20000, 20000)),
			[]image.Point{{50, 50}}, []image.Point{{80, 20}}},
		{"negative start", stroke(action.ToolPen, black, 4, action.Pt(-5000, -5000), action.Pt(150, 150)),
			[]image.Point{{50, 50}}, []image.Point{{80, 20}}},
		{"stroke beyond canvas", stroke(action.ToolPen, black, 4, action.Pt(-9000, -9000), action.Pt(-4000, -8000)),
			nil, []image.Point{{0, 0}, {50, 50}}},
		{"huge rectangle", shape(action.ToolRectangle, black, 4, action.Pt(10, 10), action.Pt(1e9, 1e9)),
			[]image.Point{{10, 50}, {50, 10}}, []image.Point{{50, 50}}},
		{"huge ellipse edge", shape(action.ToolEllipse, black, 4, action.Pt(10, -1e6), action.Pt(10+2e6, 1e6)),
			[]image.Point{{10, 50}}, []image.Point{{50, 50}, {5, 50}}},
		{"ellipse beyond canvas", shape(action.ToolEllipse, black, 4, action.Pt(0, 0), action.Pt(1e9, 1e9)),
			nil, []image.Point{{0, 0}, {50, 50}, {99, 99}}},
		{"long arrow", shape(action.ToolArrow, black, 4, action.Pt(20, 50), action.Pt(1e9, 50)),
			[]image.Point{{60, 50}, {99, 50}}, []image.Point{{60, 20}}},
		{"far text", action.NewText(black, 4, action.Pt(1e9, 50), "far"),
			nil, []image.Point{{50, 50}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.a.Valid() {
				t.Fatalf("test action is invalid: %+v", tc.a)
			}
			rd := NewRenderer()
			dst := NewSurface(size, size)
			used := allocatedBytes(func() { rd.Render(dst, []action.Action{tc.a}) })
			if used > budget {
				t.Fatalf("render allocated %d bytes for a %dx%d surface", used, size, size)
			}
			for _, p := range tc.ink {
				if got := dst.RGBAAt(p.X, p.Y); got.R > 60 || got.A != 255 {
					t.Errorf("pixel %v = %v, want ink", p, got)
				}
			}
			for _, p := range tc.blank {
				if got := dst.RGBAAt(p.X, p.Y); got != white {
					t.Errorf("pixel %v = %v, want white", p, got)
				}
			}
		})
	}
}

func TestClipSegment(t *testing.T) {
	a, b := action.Pt(2, 3), action.Pt(8, 7)
	ca, cb, ok := clipSegment(a, b, 0, 0, 10, 10)
	if !ok || ca != a || cb != b {
		t.Fatalf("inside segment changed: %v %v %v", ca, cb, ok)
	}
	ca, cb, ok = clipSegment(action.Pt(-10, 5), action.Pt(30, 5), 0, 0, 10, 10)
	if !ok || ca != action.Pt(0, 5) || cb != action.Pt(10, 5) {
		t.Fatalf("crossing segment clipped to %v %v %v", ca, cb, ok)
	}
	if _, _, ok := clipSegment(action.Pt(-10, 20), action.Pt(20, 40), 0, 0, 10, 10); ok {
		t.Fatalf("segment above the rectangle reported as visible")
	}
	if _, _, ok := clipSegment(action.Pt(-5, -5), action.Pt(-5, -5), 0, 0, 10, 10); ok {
		t.Fatalf("outside point reported as visible")
	}
}
