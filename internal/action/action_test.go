package action

import (
	"math"
	"strings"
	"testing"
)

func TestStrokeValidity(t *testing.T) {
	a := NewStroke(ToolPen, "#000000", 3, Pt(0, 0))
	if a.Valid() {
		t.Fatalf("single point stroke should not be valid")
	}
	a.Points = append(a.Points, Pt(10, 10))
	if !a.Valid() {
		t.Fatalf("two point stroke should be valid")
	}
	a.Width = 21
	if a.Valid() {
		t.Errorf("width above %d should be rejected", MaxWidth)
	}
	a.Width = 0
	if a.Valid() {
		t.Errorf("width below %d should be rejected", MinWidth)
	}
	a.Width = 3
	a.Color = "black"
	if a.Valid() {
		t.Errorf("non-hex color should be rejected")
	}
}

func TestStrokeBlendingFollowsTool(t *testing.T) {
	pencil := NewStroke(ToolPencil, "#123456", 2, Pt(1, 1))
	if pencil.Alpha() != PencilOpacity || pencil.Erases() {
		t.Errorf("pencil: alpha %v erases %v", pencil.Alpha(), pencil.Erases())
	}
	pen := NewStroke(ToolPen, "#123456", 2, Pt(1, 1))
	if pen.Alpha() != 1 || pen.Composite != CompositePaintOver {
		t.Errorf("pen: alpha %v composite %q", pen.Alpha(), pen.Composite)
	}
	eraser := NewStroke(ToolEraser, "#123456", 2, Pt(1, 1))
	if !eraser.Erases() {
		t.Errorf("eraser should use %q, got %q", CompositeErase, eraser.Composite)
	}
}

func TestShapeAndTextValidity(t *testing.T) {
	r := NewShape(ToolRectangle, "#FF0000", 2, Pt(10, 10))
	if r.Valid() {
		t.Fatalf("shape without an end point should not be valid")
	}
	end := Pt(110, 60)
	r.End = &end
	if !r.Valid() {
		t.Fatalf("shape with start and end should be valid")
	}

	if NewText("#000000", 3, Pt(50, 50), "").Valid() {
		t.Errorf("empty text should not be valid")
	}
	if !NewText("#000000", 3, Pt(50, 50), "Hi").Valid() {
		t.Errorf("text with content should be valid")
	}
}

func TestRectangleBox(t *testing.T) {
	a := NewShape(ToolRectangle, "#000000", 3, Pt(10, 10))
	end := Pt(110, 60)
	a.End = &end
	x, y, w, h := a.Box()
	if x != 10 || y != 10 || w != 100 || h != 50 {
		t.Fatalf("box = (%v,%v,%v,%v), want (10,10,100,50)", x, y, w, h)
	}

	// Dragging up and to the left spans the same box.
	b := NewShape(ToolRectangle, "#000000", 3, Pt(110, 60))
	start := Pt(10, 10)
	b.End = &start
	if bx, by, bw, bh := b.Box(); bx != x || by != y || bw != w || bh != h {
		t.Fatalf("reversed drag box = (%v,%v,%v,%v)", bx, by, bw, bh)
	}
}

func TestEllipseGeometry(t *testing.T) {
	a := NewShape(ToolEllipse, "#000000", 3, Pt(10, 10))
	end := Pt(110, 60)
	a.End = &end
	cx, cy, rx, ry := a.Ellipse()
	if cx != 60 || cy != 35 || rx != 50 || ry != 25 {
		t.Fatalf("ellipse = (%v,%v,%v,%v), want (60,35,50,25)", cx, cy, rx, ry)
	}
	outline := a.Outline()
	if len(outline) != 1 {
		t.Fatalf("expected one closed outline, got %d", len(outline))
	}
	pts := outline[0]
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("ellipse outline is not closed")
	}
}

func TestEllipseOutlineVertexLimit(t *testing.T) {
	small := NewShape(ToolEllipse, "#000000", 3, Pt(0, 0))
	smallEnd := Pt(4, 4)
	small.End = &smallEnd
	if n := len(small.Outline()[0]); n != minEllipseVertices+1 {
		t.Errorf("small ellipse has %d points, want %d", n, minEllipseVertices+1)
	}

	huge := NewShape(ToolEllipse, "#000000", 3, Pt(0, 0))
	hugeEnd := Pt(1e9, 1e9)
	huge.End = &hugeEnd
	pts := huge.Outline()[0]
	if len(pts) != maxEllipseVertices+1 {
		t.Fatalf("huge ellipse has %d points, want %d", len(pts), maxEllipseVertices+1)
	}
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("huge ellipse outline is not closed")
	}
}

func TestArrowHead(t *testing.T) {
	a := NewShape(ToolArrow, "#000000", 3, Pt(0, 0))
	end := Pt(100, 0)
	a.End = &end
	left, right := a.ArrowHead()
	wantX := 100 - ArrowHeadLength*math.Cos(math.Pi/6)
	wantY := ArrowHeadLength * math.Sin(math.Pi/6)
	if math.Abs(left.X-wantX) > 1e-9 || math.Abs(left.Y-wantY) > 1e-9 {
		t.Errorf("left wing = %+v, want (%v,%v)", left, wantX, wantY)
	}
	if math.Abs(right.X-wantX) > 1e-9 || math.Abs(right.Y+wantY) > 1e-9 {
		t.Errorf("right wing = %+v, want (%v,%v)", right, wantX, -wantY)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := NewStroke(ToolPen, "#000000", 3, Pt(0, 0))
	a.Points = append(a.Points, Pt(1, 1))
	c := a.Clone()
	a.Points[0] = Pt(99, 99)
	if c.Points[0] != Pt(0, 0) {
		t.Fatalf("clone shares point storage with the original")
	}

	s := NewShape(ToolArrow, "#000000", 3, Pt(5, 5))
	sc := s.Clone()
	s.Start.X = 42
	if sc.Start.X != 5 {
		t.Fatalf("clone shares start point with the original")
	}
}

func TestDecodeAcceptsLegacyToolNames(t *testing.T) {
	data := `[{"tool":"square","color":"#000000","width":3,"start":{"x":1,"y":2},"end":{"x":3,"y":4}},
{"tool":"pencil","color":"#00FF00","width":2,"points":[{"x":0,"y":0},{"x":5,"y":5}]}]`
	actions, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[0].Tool != ToolRectangle {
		t.Errorf("expected square to decode as %q, got %q", ToolRectangle, actions[0].Tool)
	}
	if actions[1].Alpha() != PencilOpacity {
		t.Errorf("decoded pencil alpha = %v", actions[1].Alpha())
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	if _, err := Decode([]byte(`{"tool":`)); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
	_, err := Decode([]byte(`[{"tool":"spray","color":"#000000","width":1}]`))
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}

func TestEncodeKeepsTextPayload(t *testing.T) {
	in := []Action{NewText("#000000", 3, Pt(50, 50), "Hi")}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != 1 || out[0].Text != "Hi" || out[0].Anchor == nil || *out[0].Anchor != Pt(50, 50) {
		t.Fatalf("text action did not survive encoding: %+v", out)
	}

	empty, err := Encode(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("Encode(nil) = %q, %v", empty, err)
	}
}

func TestParseTool(t *testing.T) {
	for in, want := range map[string]Tool{"Pen": ToolPen, " circle ": ToolEllipse, "arrow": ToolArrow} {
		got, err := ParseTool(in)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTool("laser"); err == nil {
		t.Errorf("expected error for unknown tool")
	}
	if len(Tools()) != 7 {
		t.Errorf("expected 7 tools, got %d", len(Tools()))
	}
}
