package space

import (
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// Free returns pairwise-disjoint rectangles covering the part of floor not
// occupied by obstacle zones. Rectangles whose width or height is at or
// below noiseFloor are dropped. A negative noiseFloor is treated as zero.
func Free(floor geometry.Rect, zones []zone.Zone, noiseFloor float64) []geometry.Rect {
	if !floor.Valid() {
		return nil
	}
	holes := make([]geometry.Rect, 0, len(zones))
	for _, z := range zone.Obstacles(zones) {
		holes = append(holes, z.Bounds())
	}
	return Subtract(floor, holes, noiseFloor)
}

// Subtract removes every hole from area and returns the remaining
// rectangles above noiseFloor.
func Subtract(area geometry.Rect, holes []geometry.Rect, noiseFloor float64) []geometry.Rect {
	noiseFloor = max(noiseFloor, 0)

	free := []geometry.Rect{area}
	for _, h := range holes {
		if h.Width <= 0 || h.Height <= 0 {
			continue
		}
		next := make([]geometry.Rect, 0, len(free)+3)
		for _, r := range free {
			next = append(next, geometry.SubtractRect(r, h)...)
		}
		free = next
	}

	out := free[:0]
	for _, r := range free {
		if r.Width > noiseFloor && r.Height > noiseFloor {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Area returns the total free area of rects.
func Area(rects []geometry.Rect) float64 {
	return geometry.TotalArea(rects)
}

// Largest returns the free rectangle with the greatest area.
func Largest(rects []geometry.Rect) (geometry.Rect, bool) {
	if len(rects) == 0 {
		return geometry.Rect{}, false
	}
	best := rects[0]
	for _, r := range rects[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best, true
}

// Fits returns the free rectangles that can hold a w by h unit in either
// orientation.
func Fits(rects []geometry.Rect, w, h float64) []geometry.Rect {
	var out []geometry.Rect
	for _, r := range rects {
		if (r.Width >= w && r.Height >= h) || (r.Width >= h && r.Height >= w) {
			out = append(out, r)
		}
	}
	return out
}
