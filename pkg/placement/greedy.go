package placement

import (
	"math"
	"sort"

	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// Greedy packs square units of each band's average area onto horizontal
// shelves inside the free rectangles, largest units first. It is
// deterministic and ignores the corridor width.
type Greedy struct{}

// NewGreedy returns a shelf-packing placer.
func NewGreedy() *Greedy { return &Greedy{} }

// Name implements Placer.
func (*Greedy) Name() string { return AlgorithmGreedy }

// shelf tracks the packing cursor inside one free rectangle.
type shelf struct {
	bin    geometry.Rect
	x, y   float64
	height float64
}

func (s *shelf) insert(w, h float64) (geometry.Rect, bool) {
	if s.x+w <= s.bin.Right() && s.y+h <= s.bin.Top() {
		r := geometry.Rect{X: s.x, Y: s.y, Width: w, Height: h}
		s.x += w
		s.height = max(s.height, h)
		return r, true
	}
	// Open a new shelf above the current one.
	ny := s.y + s.height
	if s.bin.X+w <= s.bin.Right() && ny+h <= s.bin.Top() {
		s.x, s.y, s.height = s.bin.X+w, ny, h
		return geometry.Rect{X: s.bin.X, Y: ny, Width: w, Height: h}, true
	}
	return geometry.Rect{}, false
}

// Place implements Placer.
func (g *Greedy) Place(p Problem) Outcome {
	units := expand(p.Requirements)
	if p.FreeArea() <= 0 || len(units) == 0 {
		return Outcome{Requested: len(units)}
	}

	bins := append([]geometry.Rect(nil), p.Free...)
	sort.SliceStable(bins, func(i, j int) bool { return bins[i].Area() > bins[j].Area() })
	shelves := make([]*shelf, len(bins))
	for i, b := range bins {
		shelves[i] = &shelf{bin: b, x: b.X, y: b.Y}
	}

	order := append([]unitSpec(nil), units...)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].minSize+order[i].maxSize > order[j].minSize+order[j].maxSize
	})

	c := make(layout.Candidate, 0, len(order))
	for _, u := range order {
		side := math.Sqrt((u.minSize + u.maxSize) / 2)
		if side <= 0 {
			continue
		}
		for _, s := range shelves {
			if r, ok := s.insert(side, side); ok {
				il := layout.NewIlot(u.id, r, u.category, layout.Rot0)
				il.MinSize, il.MaxSize = u.minSize, u.maxSize
				c = append(c, il)
				break
			}
		}
	}
	sort.SliceStable(c, func(i, j int) bool { return c[i].ID < c[j].ID })

	out := finish(c, p, len(units), 1)
	if p.Progress != nil {
		p.Progress(0, out.Fitness)
	}
	return out
}
