package zone

import "github.com/matzehuels/ilotplan/pkg/geometry"

// path is a wall polyline assembled from one or more entity chains.
type path struct {
	points  []geometry.Point
	members int
}

func (p path) closed(tol float64) bool {
	return len(p.points) > 2 && geometry.Distance(p.points[0], p.points[len(p.points)-1]) <= tol
}

// joinChains stitches vertex chains into continuous paths. Each chain is
// appended, prepended or reverse-attached to the first open path whose
// endpoint lies within tol; unmatched chains start new paths. Paths whose
// endpoints meet after the first pass are merged until nothing changes.
func joinChains(chains [][]geometry.Point, tol float64) []path {
	var paths []path

	for _, c := range chains {
		if len(c) < 2 {
			continue
		}
		attached := false
		for i := range paths {
			if paths[i].closed(tol) {
				continue
			}
			if joined, ok := join(paths[i].points, c, tol); ok {
				paths[i].points = joined
				paths[i].members++
				attached = true
				break
			}
		}
		if !attached {
			paths = append(paths, path{points: append([]geometry.Point(nil), c...), members: 1})
		}
	}

	for merged := true; merged; {
		merged = false
	outer:
		for i := 0; i < len(paths); i++ {
			if paths[i].closed(tol) {
				continue
			}
			for j := i + 1; j < len(paths); j++ {
				if paths[j].closed(tol) {
					continue
				}
				if joined, ok := join(paths[i].points, paths[j].points, tol); ok {
					paths[i].points = joined
					paths[i].members += paths[j].members
					paths = append(paths[:j], paths[j+1:]...)
					merged = true
					break outer
				}
			}
		}
	}

	return paths
}

// join attaches seg to one end of p when an endpoint pair lies within tol.
// The shared endpoint is kept once. The result never aliases p or seg.
func join(p, seg []geometry.Point, tol float64) ([]geometry.Point, bool) {
	head, tail := p[0], p[len(p)-1]
	first, last := seg[0], seg[len(seg)-1]

	out := make([]geometry.Point, 0, len(p)+len(seg)-1)
	switch {
	case geometry.Distance(tail, first) <= tol:
		out = append(out, p...)
		out = append(out, seg[1:]...)
	case geometry.Distance(tail, last) <= tol:
		out = append(out, p...)
		out = append(out, reversed(seg)[1:]...)
	case geometry.Distance(head, last) <= tol:
		out = append(out, seg[:len(seg)-1]...)
		out = append(out, p...)
	case geometry.Distance(head, first) <= tol:
		out = append(out, reversed(seg)[:len(seg)-1]...)
		out = append(out, p...)
	default:
		return nil, false
	}
	return out, true
}

func reversed(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
