package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/example/whiteboard/internal/action"
)

func sample() []action.Action {
	stroke := action.NewStroke(action.ToolPen, "#000000", 3, action.Pt(0, 0))
	stroke.Points = append(stroke.Points, action.Pt(10, 10), action.Pt(20, 5))
	eraser := action.NewStroke(action.ToolEraser, "#000000", 6, action.Pt(5, 5))
	eraser.Points = append(eraser.Points, action.Pt(15, 15))
	rect := action.NewShape(action.ToolRectangle, "#FF0000", 2, action.Pt(10, 10))
	end := action.Pt(110, 60)
	rect.End = &end
	ellipse := rect.Clone()
	ellipse.Tool = action.ToolEllipse
	arrow := rect.Clone()
	arrow.Tool = action.ToolArrow
	return []action.Action{stroke, eraser, rect, ellipse, arrow, action.NewText("#0000FF", 3, action.Pt(50, 90), "Hi")}
}

func TestFilename(t *testing.T) {
	cases := []struct{ name, ext, want string }{
		{"", "png", "whiteboard.png"},
		{"  ", ".pdf", "whiteboard.pdf"},
		{"Sprint plan", "png", "Sprint plan.png"},
		{"a/b", "png", "a-b.png"},
	}
	for _, c := range cases {
		if got := Filename(c.name, c.ext); got != c.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", c.name, c.ext, got, c.want)
		}
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(sample(), 160, 120)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Fatalf("bounds = %v", b)
	}
	if _, err := PNG(nil, 0, 10); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatPDF, sample(), 160, 120); err != nil {
		t.Fatalf("Write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %.10q", buf.Bytes())
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" PDF "); err != nil || f != FormatPDF {
		t.Fatalf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for gif")
	}
}
