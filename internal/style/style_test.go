package style

import (
	"testing"

	"github.com/example/whiteboard/internal/action"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Tool != action.ToolPen || s.Color != "#000000" || s.Width != 3 {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestSetColor(t *testing.T) {
	cases := map[string]string{
		"#ff8800":        "#FF8800",
		"red":            "#FF0000",
		"Orange":         "#FF8800",
		"cornflowerblue": "#6495ED",
	}
	for in, want := range cases {
		s := Default()
		if err := s.SetColor(in); err != nil {
			t.Errorf("SetColor(%q): %v", in, err)
			continue
		}
		if s.Color != want {
			t.Errorf("SetColor(%q) = %q, want %q", in, s.Color, want)
		}
	}
	s := Default()
	if err := s.SetColor("#12"); err == nil {
		t.Errorf("expected error for short hex")
	}
	if s.Color != DefaultColor {
		t.Errorf("failed SetColor changed colour to %q", s.Color)
	}
}

func TestSetWidthClamps(t *testing.T) {
	s := Default()
	s.SetWidth(0)
	if s.Width != 1 {
		t.Errorf("width 0 clamped to %d, want 1", s.Width)
	}
	s.SetWidth(50)
	if s.Width != 20 {
		t.Errorf("width 50 clamped to %d, want 20", s.Width)
	}
}

func TestSetToolAndNormalize(t *testing.T) {
	s := Default()
	if err := s.SetTool("circle"); err != nil || s.Tool != action.ToolEllipse {
		t.Fatalf("SetTool(circle) = %q, %v", s.Tool, err)
	}
	if err := s.SetTool("laser"); err == nil {
		t.Fatalf("expected unknown tool error")
	}
	n := Settings{Tool: "bogus", Color: "blue", Width: 99}.Normalize()
	if n.Tool != DefaultTool || n.Color != DefaultColor || n.Width != 20 {
		t.Fatalf("Normalize = %+v", n)
	}
}

func TestPresets(t *testing.T) {
	for _, w := range WidthOptions() {
		if ClampWidth(w) != w {
			t.Errorf("width preset %d out of range", w)
		}
	}
	if len(Palette()) == 0 || Palette()[0].Name != "Black" {
		t.Errorf("palette should start with black")
	}
}
