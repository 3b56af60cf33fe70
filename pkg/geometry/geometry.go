package geometry

import "math"

// Point is a planar coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.Height }

// Perimeter returns 2*(Width+Height).
func (r Rect) Perimeter() float64 { return 2 * (r.Width + r.Height) }

// Center returns the centroid of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Valid reports whether both dimensions are strictly positive.
func (r Rect) Valid() bool { return r.Width > 0 && r.Height > 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Expand grows r by d on every side. Negative d shrinks it.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Contains reports whether o lies entirely inside r, allowing eps of slack
// on each edge.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Top() <= r.Top()+eps
}

// ContainsPoint reports whether p lies inside r or on its boundary.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Top()
}

// Intersects reports whether r and o share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	return OverlapArea(r, o) > 0
}

// Corners returns the four corners counter-clockwise from the lower-left.
func (r Rect) Corners() []Point {
	return []Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Top()},
		{X: r.X, Y: r.Top()},
	}
}

// BoundingBox returns the smallest rectangle enclosing pts. It returns the
// zero Rect for an empty slice.
func BoundingBox(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// PolygonArea returns the unsigned area of the polygon described by pts
// using the shoelace formula. Fewer than three points yield 0.
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// PolylineLength returns the summed segment length of an open chain.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// OverlapArea returns the area shared by a and b, or 0 when they are
// disjoint or merely touch.
func OverlapArea(a, b Rect) float64 {
	dx := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	dy := math.Min(a.Top(), b.Top()) - math.Max(a.Y, b.Y)
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return dx * dy
}

// Intersection returns the overlapping region of a and b and whether it has
// positive area.
func Intersection(a, b Rect) (Rect, bool) {
	x0 := math.Max(a.X, b.X)
	y0 := math.Max(a.Y, b.Y)
	x1 := math.Min(a.Right(), b.Right())
	y1 := math.Min(a.Top(), b.Top())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// PointInPolygon reports whether p lies inside poly using the even-odd
// ray-casting rule. Polygons with fewer than three vertices contain nothing.
func PointInPolygon(p Point, poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SubtractRect removes hole from area and returns the remainder as up to
// four disjoint rectangles: a full-height left and right sliver, plus a
// bottom and top sliver bounded by the hole's x-extent. Zero-area slivers
// are dropped. When hole does not intersect area, area is returned unchanged.
func SubtractRect(area, hole Rect) []Rect {
	in, ok := Intersection(area, hole)
	if !ok {
		return []Rect{area}
	}

	candidates := [4]Rect{
		{X: area.X, Y: area.Y, Width: in.X - area.X, Height: area.Height},
		{X: in.Right(), Y: area.Y, Width: area.Right() - in.Right(), Height: area.Height},
		{X: in.X, Y: area.Y, Width: in.Width, Height: in.Y - area.Y},
		{X: in.X, Y: in.Top(), Width: in.Width, Height: area.Top() - in.Top()},
	}

	out := make([]Rect, 0, 4)
	for _, r := range candidates {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// TotalArea sums the areas of rects.
func TotalArea(rects []Rect) float64 {
	var total float64
	for _, r := range rects {
		total += r.Area()
	}
	return total
}
