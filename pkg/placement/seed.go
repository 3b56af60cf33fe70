package placement

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// unitSpec is one unit to place, expanded from a requirement. Its index in
// the expanded list is the ilot id.
type unitSpec struct {
	id       int
	minSize  float64
	maxSize  float64
	category string
}

func expand(reqs []demand.UnitRequirement) []unitSpec {
	var out []unitSpec
	for _, r := range reqs {
		for i := 0; i < r.Count; i++ {
			out = append(out, unitSpec{
				id:       len(out),
				minSize:  r.MinSize,
				maxSize:  r.MaxSize,
				category: r.Category,
			})
		}
	}
	return out
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x1107d1a5))
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// seeder draws random candidates.
type seeder struct {
	units []unitSpec
	free  []geometry.Rect
	cfg   GeneticConfig
	tol   float64
}

// candidate places every unit in turn and omits those that exhaust their
// attempts.
func (s seeder) candidate(rng *rand.Rand) layout.Candidate {
	c := make(layout.Candidate, 0, len(s.units))
	for _, u := range s.units {
		if il, ok := s.place(rng, u, c); ok {
			c = append(c, il)
		}
	}
	return c
}

func (s seeder) place(rng *rand.Rand, u unitSpec, placed layout.Candidate) (layout.Ilot, bool) {
	area := uniform(rng, u.minSize, u.maxSize)
	if area <= 0 {
		return layout.Ilot{}, false
	}
	aspect := uniform(rng, s.cfg.AspectMin, s.cfg.AspectMax)
	w := math.Sqrt(area * aspect)
	h := area / w
	rot := layout.Rot0
	if rng.Float64() < 0.5 {
		w, h = h, w
		rot = layout.Rot90
	}

	var fits []geometry.Rect
	for _, r := range s.free {
		if r.Width >= w && r.Height >= h {
			fits = append(fits, r)
		}
	}
	if len(fits) == 0 {
		return layout.Ilot{}, false
	}

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		r := fits[rng.IntN(len(fits))]
		rect := geometry.Rect{
			X:      uniform(rng, r.X, r.Right()-w),
			Y:      uniform(rng, r.Y, r.Top()-h),
			Width:  w,
			Height: h,
		}
		if collides(rect, placed, s.tol) {
			continue
		}
		il := layout.NewIlot(u.id, rect, u.category, rot)
		il.MinSize, il.MaxSize = u.minSize, u.maxSize
		return il, true
	}
	return layout.Ilot{}, false
}

func collides(r geometry.Rect, placed layout.Candidate, tol float64) bool {
	for _, p := range placed {
		if geometry.OverlapArea(r, p.Rect) > tol {
			return true
		}
	}
	return false
}
