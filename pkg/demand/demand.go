package demand

import (
	"math"

	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// SizeBand is one entry of the user's size distribution.
type SizeBand struct {
	MinSize    float64 `json:"min_size" toml:"min_size" validate:"gte=0"`
	MaxSize    float64 `json:"max_size" toml:"max_size" validate:"gtefield=MinSize"`
	Percentage float64 `json:"percentage" toml:"percentage" validate:"gte=0,lte=100"`
}

// Average returns the mean unit area of the band.
func (b SizeBand) Average() float64 { return (b.MinSize + b.MaxSize) / 2 }

// Category returns the band's label.
func (b SizeBand) Category() string { return layout.Category(b.MinSize, b.MaxSize) }

// DefaultBands is used when neither a distribution nor room-size bounds
// are configured.
var DefaultBands = []SizeBand{
	{MinSize: 15, MaxSize: 25, Percentage: 40},
	{MinSize: 25, MaxSize: 35, Percentage: 35},
	{MinSize: 35, MaxSize: 50, Percentage: 25},
}

// UnitRequirement is the derived demand for one band.
type UnitRequirement struct {
	Count    int     `json:"count"`
	MinSize  float64 `json:"min_size"`
	MaxSize  float64 `json:"max_size"`
	Category string  `json:"category"`
}

// Validate checks a size distribution. Percentages must sum to 100 within
// errors.PercentageTolerance and every band needs 0 <= min <= max with a
// positive average.
func Validate(bands []SizeBand) error {
	pcts := make([]float64, len(bands))
	for i, b := range bands {
		if b.MinSize < 0 || b.MaxSize < b.MinSize || math.IsNaN(b.MinSize) || math.IsNaN(b.MaxSize) {
			return errors.New(errors.ErrCodeConfiguration,
				"size band %d: need 0 <= min_size <= max_size, got [%v, %v]", i, b.MinSize, b.MaxSize)
		}
		if b.Average() <= 0 {
			return errors.New(errors.ErrCodeConfiguration, "size band %d has zero average size", i)
		}
		pcts[i] = b.Percentage
	}
	return errors.ValidatePercentages(pcts)
}

// Bounded resolves the effective distribution from the configured bands and
// optional room-size bounds (zero means unset). With no bands, a single
// band spanning [minRoom, maxRoom] is used when both bounds are set,
// otherwise DefaultBands. Configured bands outside the bounds are a
// configuration error.
func Bounded(bands []SizeBand, minRoom, maxRoom float64) ([]SizeBand, error) {
	if minRoom < 0 || maxRoom < 0 || (maxRoom > 0 && minRoom > maxRoom) {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"invalid room size bounds [%v, %v]", minRoom, maxRoom)
	}
	if len(bands) == 0 {
		if minRoom > 0 && maxRoom > 0 {
			return []SizeBand{{MinSize: minRoom, MaxSize: maxRoom, Percentage: 100}}, nil
		}
		return append([]SizeBand(nil), DefaultBands...), nil
	}
	for i, b := range bands {
		if minRoom > 0 && b.MinSize < minRoom {
			return nil, errors.New(errors.ErrCodeConfiguration,
				"size band %d min_size %v is below min_room_size %v", i, b.MinSize, minRoom)
		}
		if maxRoom > 0 && b.MaxSize > maxRoom {
			return nil, errors.New(errors.ErrCodeConfiguration,
				"size band %d max_size %v exceeds max_room_size %v", i, b.MaxSize, maxRoom)
		}
	}
	return bands, nil
}

// Plan computes one requirement per band from the free rectangles. Every
// band yields at least one unit. Bands are assumed valid.
func Plan(bands []SizeBand, free []geometry.Rect) []UnitRequirement {
	total := geometry.TotalArea(free)
	reqs := make([]UnitRequirement, 0, len(bands))
	for _, b := range bands {
		target := total * b.Percentage / 100
		count := max(1, int(math.Floor(target/b.Average())))
		reqs = append(reqs, UnitRequirement{
			Count:    count,
			MinSize:  b.MinSize,
			MaxSize:  b.MaxSize,
			Category: b.Category(),
		})
	}
	return reqs
}

// Total returns the summed unit count of reqs.
func Total(reqs []UnitRequirement) int {
	n := 0
	for _, r := range reqs {
		n += r.Count
	}
	return n
}

// Adherence compares the realized area share of each band against its
// requested percentage and returns 100 minus half the summed absolute
// deviation, so a perfect match scores 100 and a disjoint one 0. An empty
// layout scores 0.
func Adherence(bands []SizeBand, ilots []layout.Ilot) float64 {
	var total float64
	byCat := make(map[string]float64)
	for _, il := range ilots {
		byCat[il.Category] += il.Area
		total += il.Area
	}
	if total <= 0 || len(bands) == 0 {
		return 0
	}

	var deviation float64
	seen := make(map[string]bool, len(bands))
	for _, b := range bands {
		cat := b.Category()
		seen[cat] = true
		deviation += math.Abs(byCat[cat]/total*100 - b.Percentage)
	}
	for cat, a := range byCat {
		if !seen[cat] {
			deviation += a / total * 100
		}
	}
	return math.Max(0, 100-deviation/2)
}

// Unplaceable returns the requirements whose smallest unit cannot fit into
// any free rectangle. The optimizer degrades these to zero placed units.
func Unplaceable(reqs []UnitRequirement, free []geometry.Rect) []UnitRequirement {
	var largest float64
	for _, r := range free {
		largest = math.Max(largest, r.Area())
	}
	var out []UnitRequirement
	for _, r := range reqs {
		if r.MinSize > largest {
			out = append(out, r)
		}
	}
	return out
}
