// Package render paints whiteboard actions onto raster surfaces.
package render

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"github.com/example/whiteboard/internal/action"
)

// Renderer holds scratch buffers and font faces reused across calls. A
// Renderer must not be used from more than one goroutine at a time.
type Renderer struct {
	z       *vector.Rasterizer
	scratch []byte
	faces   map[float64]font.Face
}

// NewRenderer returns a ready Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		z:     vector.NewRasterizer(0, 0),
		faces: make(map[float64]font.Face),
	}
}

// Render clears dst to opaque white and paints every valid action in order.
// A nil dst is ignored.
func (rd *Renderer) Render(dst *image.RGBA, actions []action.Action) {
	if dst == nil {
		return
	}
	fillWhite(dst, dst.Bounds())
	for _, a := range actions {
		rd.Paint(dst, a)
	}
}

// Paint draws a single action on top of the current contents of dst.
// Invalid actions are skipped.
func (rd *Renderer) Paint(dst *image.RGBA, a action.Action) {
	if dst == nil || !a.Valid() {
		return
	}
	col, _ := action.ParseColor(a.Color)
	mask := rd.coverage(dst.Bounds(), a)
	if mask == nil {
		return
	}
	if a.Erases() {
		erase(dst, mask, a.Alpha())
		return
	}
	paintOver(dst, mask, col, a.Alpha())
}

// coverage returns the alpha mask of pixels touched by a.
func (rd *Renderer) coverage(bounds image.Rectangle, a action.Action) *image.Alpha {
	if a.Kind() == action.KindText {
		mask, err := rd.textCoverage(bounds, a)
		if err != nil {
			log.Printf("render text: %v", err)
			return nil
		}
		return mask
	}
	return rd.strokeCoverage(bounds, a.Outline(), a.Width)
}

// Render paints actions onto dst with a throwaway Renderer.
func Render(dst *image.RGBA, actions []action.Action) {
	NewRenderer().Render(dst, actions)
}

// NewSurface allocates a w×h surface filled with white. Non-positive sizes
// yield nil.
func NewSurface(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillWhite(img, img.Bounds())
	return img
}

// Clone returns a copy of src with its own pixel storage.
func Clone(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
