package score

import (
	"math"

	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// Scorer turns a feature vector into a score in [0, 100].
type Scorer interface {
	Name() string
	Score(f Features) float64
}

// Heuristic weights.
const (
	heuristicUtilization   = 40
	heuristicOverlap       = 20
	heuristicCorridor      = 5
	heuristicAccessibility = 20
	heuristicAlignment     = 15
)

// Heuristic is the fixed weighted-sum scorer.
type Heuristic struct{}

// Name implements Scorer.
func (Heuristic) Name() string { return "heuristic" }

// Score implements Scorer.
func (Heuristic) Score(f Features) float64 {
	s := heuristicUtilization*f.Utilization -
		heuristicOverlap*f.Overlap +
		heuristicCorridor*float64(f.Corridors) +
		heuristicAccessibility*f.Accessibility +
		heuristicAlignment*f.Alignment
	return clamp(s)
}

// Evaluate extracts features from a layout and scores them with s. A nil
// scorer means Heuristic.
func Evaluate(s Scorer, ilots []layout.Ilot, corridors []layout.Corridor, free []geometry.Rect, tol geometry.Tolerances) (float64, Features) {
	if s == nil {
		s = Heuristic{}
	}
	f := Extract(ilots, corridors, free, tol)
	return s.Score(f), f
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
