package render

import (
	"image"
	"image/color"

	"github.com/example/whiteboard/internal/action"
)

// StrokeRenderer paints an in-progress freehand stroke one segment at a
// time. Each new segment is merged into a coverage mask for the whole
// stroke and only the pixels that segment can reach are recomposited from
// the surface as it was at Begin, so the result always matches a full
// Render of the finished stroke.
type StrokeRenderer struct {
	rd *Renderer

	dst   *image.RGBA
	base  *image.RGBA
	mask  *image.Alpha
	col   color.RGBA
	alpha float64
	erase bool
	r     float64
	done  int
}

// NewStrokeRenderer returns a StrokeRenderer sharing rd's buffers. A nil rd
// gets a private Renderer.
func NewStrokeRenderer(rd *Renderer) *StrokeRenderer {
	if rd == nil {
		rd = NewRenderer()
	}
	return &StrokeRenderer{rd: rd}
}

// Begin starts painting stroke onto dst. Any segments already present in the
// stroke are painted immediately. Non-stroke actions and a nil dst leave the
// renderer inactive.
func (s *StrokeRenderer) Begin(dst *image.RGBA, stroke action.Action) {
	s.End()
	if dst == nil || stroke.Kind() != action.KindStroke {
		return
	}
	if stroke.Width < action.MinWidth || stroke.Width > action.MaxWidth {
		return
	}
	col, err := action.ParseColor(stroke.Color)
	if err != nil {
		return
	}
	s.dst = dst
	s.base = Clone(dst)
	s.mask = image.NewAlpha(dst.Bounds())
	s.col = col
	s.alpha = stroke.Alpha()
	s.erase = stroke.Erases()
	s.r = float64(stroke.Width) / 2
	s.done = 1
	s.Extend(stroke)
}

// Extend paints the segments added to stroke since the previous call.
func (s *StrokeRenderer) Extend(stroke action.Action) {
	if !s.Active() {
		return
	}
	pts := stroke.Points
	for ; s.done < len(pts); s.done++ {
		dirty := s.rd.addSegment(s.mask, pts[s.done-1], pts[s.done], s.r)
		s.recomposite(dirty)
	}
}

// End releases the snapshot taken by Begin. The painted pixels stay on the
// surface.
func (s *StrokeRenderer) End() {
	s.dst, s.base, s.mask = nil, nil, nil
	s.done = 0
}

// Active reports whether a stroke is being painted.
func (s *StrokeRenderer) Active() bool { return s.dst != nil }

func (s *StrokeRenderer) recomposite(r image.Rectangle) {
	if r.Empty() {
		return
	}
	copyRect(s.dst, s.base, r)
	m := s.mask.SubImage(r).(*image.Alpha)
	if s.erase {
		erase(s.dst, m, s.alpha)
		return
	}
	paintOver(s.dst, m, s.col, s.alpha)
}
