package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/whiteboard/internal/action"
)

// capSteps is the number of chords used for each round cap of a segment.
const capSteps = 16

// maxCoord bounds the coordinates used for pixel rectangles so that far away
// points cannot overflow int conversions.
const maxCoord = 1 << 30

func clampCoord(v float64) float64 { return math.Max(-maxCoord, math.Min(maxCoord, v)) }

// segmentBounds returns the pixel rectangle that can receive coverage from
// the round-capped segment a-b of half width r.
func segmentBounds(a, b action.Point, r float64) image.Rectangle {
	minX := clampCoord(math.Floor(math.Min(a.X, b.X)-r) - 1)
	minY := clampCoord(math.Floor(math.Min(a.Y, b.Y)-r) - 1)
	maxX := clampCoord(math.Ceil(math.Max(a.X, b.X)+r) + 1)
	maxY := clampCoord(math.Ceil(math.Max(a.Y, b.Y)+r) + 1)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// strokeCoverage rasterises the union of round-capped segments of lines into
// an alpha mask clipped to bounds. It returns nil when nothing is covered.
func (rd *Renderer) strokeCoverage(bounds image.Rectangle, lines [][]action.Point, width int) *image.Alpha {
	r := float64(width) / 2
	var area image.Rectangle
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			area = area.Union(segmentBounds(line[i-1], line[i], r).Intersect(bounds))
		}
	}
	if area.Empty() {
		return nil
	}
	mask := image.NewAlpha(area)
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			rd.addSegment(mask, line[i-1], line[i], r)
		}
	}
	return mask
}

// addSegment merges the coverage of segment a-b into mask using the maximum
// of the existing and new coverage, so overlapping segments never darken
// their joins. It returns the region of mask that may have changed.
//
// Only the part of the segment within r+2 pixels of the mask is
// rasterised, so work and memory are bounded by the mask size however far
// the segment reaches.
func (rd *Renderer) addSegment(mask *image.Alpha, a, b action.Point, r float64) image.Rectangle {
	clip := segmentBounds(a, b, r).Intersect(mask.Bounds())
	if clip.Empty() {
		return image.Rectangle{}
	}
	m := r + 2
	ca, cb, ok := clipSegment(a, b,
		float64(clip.Min.X)-m, float64(clip.Min.Y)-m,
		float64(clip.Max.X)+m, float64(clip.Max.Y)+m)
	if !ok {
		return image.Rectangle{}
	}
	w, h := clip.Dx(), clip.Dy()
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)

	rd.z.Reset(w, h)
	rd.z.DrawOp = draw.Src
	capsule(rd.z, ca.X-ox, ca.Y-oy, cb.X-ox, cb.Y-oy, r)
	tmp := rd.scratchAlpha(w, h)
	rd.z.Draw(tmp, tmp.Bounds(), image.Opaque, image.Point{})

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		src := tmp.Pix[(y-clip.Min.Y)*tmp.Stride:]
		dst := mask.Pix[mask.PixOffset(clip.Min.X, y):]
		for x := 0; x < w; x++ {
			if src[x] > dst[x] {
				dst[x] = src[x]
			}
		}
	}
	return clip
}

// clipSegment trims a-b to the rectangle [x0,x1]×[y0,y1] (Liang-Barsky).
// Endpoints inside the rectangle are returned unchanged. ok is false when
// the segment misses the rectangle.
func clipSegment(a, b action.Point, x0, y0, x1, y1 float64) (ca, cb action.Point, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - x0},
		{dx, x1 - a.X},
		{-dy, a.Y - y0},
		{dy, y1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	ca, cb = a, b
	if t0 > 0 {
		ca = action.Pt(a.X+t0*dx, a.Y+t0*dy)
	}
	if t1 < 1 {
		cb = action.Pt(a.X+t1*dx, a.Y+t1*dy)
	}
	return ca, cb, true
}

// scratchAlpha returns a reusable w×h mask anchored at the origin.
func (rd *Renderer) scratchAlpha(w, h int) *image.Alpha {
	if cap(rd.scratch) < w*h {
		rd.scratch = make([]byte, w*h)
	}
	return &image.Alpha{Pix: rd.scratch[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
}

// capsule adds the outline of a round-capped segment to z. A zero-length
// segment yields a disc.
func capsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	dx, dy := bx-ax, by-ay
	ux, uy := 1.0, 0.0
	if l := math.Hypot(dx, dy); l > 1e-9 {
		ux, uy = dx/l, dy/l
	}
	base := math.Atan2(uy, ux)

	z.MoveTo(f32(ax-uy*r), f32(ay+ux*r))
	for i := 0; i <= capSteps; i++ {
		t := base + math.Pi/2 - math.Pi*float64(i)/capSteps
		z.LineTo(f32(bx+r*math.Cos(t)), f32(by+r*math.Sin(t)))
	}
	for i := 0; i <= capSteps; i++ {
		t := base - math.Pi/2 - math.Pi*float64(i)/capSteps
		z.LineTo(f32(ax+r*math.Cos(t)), f32(ay+r*math.Sin(t)))
	}
	z.ClosePath()
}

func f32(v float64) float32 { return float32(v) }
