package corridor

import (
	"math"
	"sort"

	"github.com/matzehuels/ilotplan/pkg/layout"
)

// Row is a group of units sharing roughly the same y.
type Row struct {
	Ilots []layout.Ilot
	sumY  float64
}

func (r *Row) add(il layout.Ilot) {
	r.Ilots = append(r.Ilots, il)
	r.sumY += il.Rect.Y
}

// AvgY returns the mean bottom edge of the row.
func (r Row) AvgY() float64 {
	if len(r.Ilots) == 0 {
		return 0
	}
	return r.sumY / float64(len(r.Ilots))
}

// AvgTop returns the mean top edge of the row.
func (r Row) AvgTop() float64 {
	if len(r.Ilots) == 0 {
		return 0
	}
	var sum float64
	for _, il := range r.Ilots {
		sum += il.Rect.Top()
	}
	return sum / float64(len(r.Ilots))
}

// Span returns the x-extent covered by the row.
func (r Row) Span() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, il := range r.Ilots {
		lo = math.Min(lo, il.Rect.X)
		hi = math.Max(hi, il.Rect.Right())
	}
	return lo, hi
}

// IDs returns the ilot ids in the row.
func (r Row) IDs() []int {
	ids := make([]int, len(r.Ilots))
	for i, il := range r.Ilots {
		ids[i] = il.ID
	}
	return ids
}

// GroupRows partitions ilots into rows ordered by their first member's y.
func GroupRows(ilots []layout.Ilot) []Row {
	sorted := append([]layout.Ilot(nil), ilots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rect.Y < sorted[j].Rect.Y
	})

	var rows []Row
	for _, il := range sorted {
		placed := false
		for i := range rows {
			if math.Abs(rows[i].AvgY()-il.Rect.Y) <= il.Rect.Height {
				rows[i].add(il)
				placed = true
				break
			}
		}
		if !placed {
			var r Row
			r.add(il)
			rows = append(rows, r)
		}
	}
	return rows
}
