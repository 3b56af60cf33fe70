package placement

import (
	"math"

	"github.com/matzehuels/ilotplan/pkg/corridor"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// Fitness weights.
const (
	weightUtilization = 100
	weightOverlap     = 50
	weightCorridor    = 20
	weightBoundary    = 30

	// boundaryShare is the fraction of a stray unit's area charged as penalty.
	boundaryShare = 0.1

	// rowSpacingFactor bounds, in corridor widths, the row separation that
	// earns the corridor bonus.
	rowSpacingFactor = 3
)

// Fitness scores a candidate; higher is better and the result is never
// negative. It rewards utilization of the free area and rows spaced for a
// corridor, and penalizes overlapping units and units outside free space.
func Fitness(c layout.Candidate, p Problem) float64 {
	if len(c) == 0 {
		return 0
	}
	free := p.FreeArea()
	var util float64
	if free > 0 {
		util = c.TotalArea() / free
	}
	f := weightUtilization*util -
		weightOverlap*c.OverlapArea() +
		weightCorridor*CorridorBonus(c, p.CorridorWidth) -
		weightBoundary*boundaryPenalty(c, p.Free, p.Tolerances.WithDefaults().Overlap)
	return math.Max(0, f)
}

// CorridorBonus returns the fraction of adjacent row pairs whose average-y
// separation is within three corridor widths.
func CorridorBonus(c layout.Candidate, width float64) float64 {
	rows := corridor.GroupRows(c)
	if len(rows) < 2 || width <= 0 {
		return 0
	}
	hits := 0
	for i := 0; i+1 < len(rows); i++ {
		if math.Abs(rows[i+1].AvgY()-rows[i].AvgY()) <= rowSpacingFactor*width {
			hits++
		}
	}
	return float64(hits) / float64(len(rows)-1)
}

func boundaryPenalty(c layout.Candidate, free []geometry.Rect, eps float64) float64 {
	var total float64
	for _, il := range c {
		if !insideFree(il.Rect, free, eps) {
			total += boundaryShare * il.Area
		}
	}
	return total
}
