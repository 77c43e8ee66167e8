package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/whiteboard/internal/action"
)

// WritePDF draws actions as vector paths on a single page the size of the
// canvas, one point per pixel. PDF has no destination-out blending, so
// eraser strokes are painted in the background colour.
func WritePDF(out io.Writer, actions []action.Action, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, float64(w), float64(h), "F")
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	for _, a := range actions {
		if !a.Valid() {
			continue
		}
		pdfAction(pdf, a)
	}
	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfAction(pdf *gofpdf.Fpdf, a action.Action) {
	c, _ := action.ParseColor(a.Color)
	if a.Erases() {
		c.R, c.G, c.B = 255, 255, 255
	}
	pdf.SetAlpha(a.Alpha(), "Normal")
	defer pdf.SetAlpha(1, "Normal")

	switch a.Kind() {
	case action.KindText:
		pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		pdf.SetFont("Helvetica", "", a.FontSize())
		pdf.Text(a.Anchor.X, a.Anchor.Y, a.Text)
		return
	case action.KindRectangle:
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		pdf.SetLineWidth(float64(a.Width))
		x, y, bw, bh := a.Box()
		pdf.Rect(x, y, bw, bh, "D")
		return
	case action.KindEllipse:
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		pdf.SetLineWidth(float64(a.Width))
		cx, cy, rx, ry := a.Ellipse()
		pdf.Ellipse(cx, cy, rx, ry, 0, "D")
		return
	}

	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(float64(a.Width))
	for _, line := range a.Outline() {
		if len(line) < 2 {
			continue
		}
		pdf.MoveTo(line[0].X, line[0].Y)
		for _, p := range line[1:] {
			pdf.LineTo(p.X, p.Y)
		}
		pdf.DrawPath("D")
	}
}
