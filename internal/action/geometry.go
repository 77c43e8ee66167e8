package action

import "math"

// Box returns the normalised bounding box spanned by the start and end
// points of a shape action. Width and height are never negative.
func (a Action) Box() (x, y, w, h float64) {
	if a.Start == nil || a.End == nil {
		return 0, 0, 0, 0
	}
	x = math.Min(a.Start.X, a.End.X)
	y = math.Min(a.Start.Y, a.End.Y)
	w = math.Abs(a.End.X - a.Start.X)
	h = math.Abs(a.End.Y - a.Start.Y)
	return
}

// Ellipse returns the centre and radii of the ellipse inscribed in Box.
func (a Action) Ellipse() (cx, cy, rx, ry float64) {
	x, y, w, h := a.Box()
	rx = w / 2
	ry = h / 2
	return x + rx, y + ry, rx, ry
}

// ArrowHead returns the two wing tips of the arrowhead drawn at End.
func (a Action) ArrowHead() (left, right Point) {
	if a.Start == nil || a.End == nil {
		return Point{}, Point{}
	}
	angle := math.Atan2(a.End.Y-a.Start.Y, a.End.X-a.Start.X)
	left = Point{
		X: a.End.X - ArrowHeadLength*math.Cos(angle-ArrowHeadAngle),
		Y: a.End.Y - ArrowHeadLength*math.Sin(angle-ArrowHeadAngle),
	}
	right = Point{
		X: a.End.X - ArrowHeadLength*math.Cos(angle+ArrowHeadAngle),
		Y: a.End.Y - ArrowHeadLength*math.Sin(angle+ArrowHeadAngle),
	}
	return left, right
}

// FontSize is the pixel size used for text actions.
func (a Action) FontSize() float64 { return float64(a.Width * FontScale) }

// Outline returns the poly-lines traced by a shape or stroke action. Closed
// outlines repeat their first point at the end.
func (a Action) Outline() [][]Point {
	switch a.Kind() {
	case KindStroke:
		return [][]Point{a.Points}
	case KindRectangle:
		x, y, w, h := a.Box()
		return [][]Point{{
			{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y},
		}}
	case KindEllipse:
		return [][]Point{ellipsePoints(a.Ellipse())}
	case KindArrow:
		if a.Start == nil || a.End == nil {
			return nil
		}
		left, right := a.ArrowHead()
		return [][]Point{
			{*a.Start, *a.End},
			{*a.End, left},
			{*a.End, right},
		}
	}
	return nil
}

// Vertex limits for flattened ellipses.
const (
	minEllipseVertices = 16
	maxEllipseVertices = 1 << 14
)

// ellipsePoints flattens an ellipse into a closed poly-line with roughly one
// vertex every two pixels of circumference, within the vertex limits.
func ellipsePoints(cx, cy, rx, ry float64) []Point {
	circ := math.Pi * (3*(rx+ry) - math.Sqrt((3*rx+ry)*(rx+3*ry)))
	n := maxEllipseVertices
	if c := circ / 2; c < maxEllipseVertices {
		n = max(int(math.Ceil(c)), minEllipseVertices)
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, Point{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)})
	}
	return append(pts, pts[0])
}
