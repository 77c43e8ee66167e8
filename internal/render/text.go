package render

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/whiteboard/internal/action"
)

var (
	fontOnce sync.Once
	textFont *opentype.Font
	fontErr  error
)

func parsedFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		textFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse text font: %w", fontErr)
		}
	})
	return textFont, fontErr
}

// faceForSize returns a cached face of the requested pixel size. Faces are
// kept per Renderer since opentype faces are not safe for concurrent use.
func (rd *Renderer) faceForSize(size float64) (font.Face, error) {
	if face, ok := rd.faces[size]; ok {
		return face, nil
	}
	f, err := parsedFont()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("text face %v: %w", size, err)
	}
	rd.faces[size] = face
	return face, nil
}

// textCoverage renders the glyphs of a text action into a mask clipped to
// bounds. The anchor is the left end of the baseline.
func (rd *Renderer) textCoverage(bounds image.Rectangle, a action.Action) (*image.Alpha, error) {
	// Beyond this a 26.6 dot overflows; such text cannot reach a surface.
	const limit = 1 << 24
	if math.Abs(a.Anchor.X) > limit || math.Abs(a.Anchor.Y) > limit {
		return nil, nil
	}
	face, err := rd.faceForSize(a.FontSize())
	if err != nil {
		return nil, err
	}
	dot := fixed.Point26_6{
		X: fixed.Int26_6(math.Round(a.Anchor.X * 64)),
		Y: fixed.Int26_6(math.Round(a.Anchor.Y * 64)),
	}
	b, _ := font.BoundString(face, a.Text)
	b = b.Add(dot)
	area := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()).Inset(-1).Intersect(bounds)
	if area.Empty() {
		return nil, nil
	}
	mask := image.NewAlpha(area)
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: dot}
	d.DrawString(a.Text)
	return mask, nil
}

// MeasureText returns the advance width and line height of text drawn with
// the given stroke width.
func (rd *Renderer) MeasureText(text string, width int) (w, h int, err error) {
	face, err := rd.faceForSize(float64(width * action.FontScale))
	if err != nil {
		return 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), (m.Ascent + m.Descent).Ceil(), nil
}
