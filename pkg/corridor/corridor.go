package corridor

import (
	"sort"

	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// gapEpsilon absorbs rounding when a gap equals the corridor width.
const gapEpsilon = 1e-9

// Options controls corridor synthesis.
type Options struct {
	// Width of every corridor. Must be positive.
	Width float64
	// Overlap is the area under which a corridor is not considered to
	// collide with a unit.
	Overlap float64
	// Vertical also emits corridors between facing columns.
	Vertical bool
}

// Synthesize returns the corridors for a placed layout. Corridors never
// overlap a unit by more than opts.Overlap; a row pair whose corridor would
// is left without one. IDs are assigned from zero in emission order.
func Synthesize(ilots []layout.Ilot, opts Options) []layout.Corridor {
	if opts.Width <= 0 || len(ilots) < 2 {
		return nil
	}

	out := between(ilots, opts)
	if opts.Vertical {
		for _, c := range between(transpose(ilots), opts) {
			c.Rect = flip(c.Rect)
			c.Orientation = layout.Vertical
			out = append(out, c)
		}
	}
	for i := range out {
		out[i].ID = i
	}
	return out
}

// between emits horizontal corridors between adjacent rows.
func between(ilots []layout.Ilot, opts Options) []layout.Corridor {
	rows := GroupRows(ilots)

	var out []layout.Corridor
	for i := 0; i+1 < len(rows); i++ {
		lower, upper := rows[i], rows[i+1]

		gap := upper.AvgY() - lower.AvgTop()
		if gap+gapEpsilon < opts.Width {
			continue
		}

		lo1, hi1 := lower.Span()
		lo2, hi2 := upper.Span()
		lo, hi := max(lo1, lo2), min(hi1, hi2)
		if hi-lo <= 0 {
			continue
		}

		rect := geometry.Rect{X: lo, Y: lower.AvgTop(), Width: hi - lo, Height: opts.Width}
		if collides(rect, ilots, opts.Overlap) {
			continue
		}

		ids := append(lower.IDs(), upper.IDs()...)
		sort.Ints(ids)
		out = append(out, layout.Corridor{
			Rect:             rect,
			Orientation:      layout.Horizontal,
			ConnectedIlotIDs: ids,
		})
	}
	return out
}

func collides(r geometry.Rect, ilots []layout.Ilot, tol float64) bool {
	for _, il := range ilots {
		if geometry.OverlapArea(r, il.Rect) > tol {
			return true
		}
	}
	return false
}

// Reachable returns the ids of ilots listed by a corridor or lying within
// buffer of one.
func Reachable(ilots []layout.Ilot, corridors []layout.Corridor, buffer float64) map[int]bool {
	out := make(map[int]bool)
	for _, c := range corridors {
		for _, id := range c.ConnectedIlotIDs {
			out[id] = true
		}
		zone := c.Rect.Expand(buffer)
		for _, il := range ilots {
			if zone.Intersects(il.Rect) {
				out[il.ID] = true
			}
		}
	}
	return out
}

func flip(r geometry.Rect) geometry.Rect {
	return geometry.Rect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
}

func transpose(ilots []layout.Ilot) []layout.Ilot {
	out := make([]layout.Ilot, len(ilots))
	for i, il := range ilots {
		il.Rect = flip(il.Rect)
		out[i] = il
	}
	return out
}
