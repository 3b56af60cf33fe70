package score

import (
	"math"

	"github.com/matzehuels/ilotplan/pkg/corridor"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// NumFeatures is the length of a feature vector.
const NumFeatures = 10

// Features describes a layout. Every field except Corridors is normalized.
type Features struct {
	Utilization       float64 `json:"utilization"`
	UnitCount         float64 `json:"unit_count"`
	CorridorCount     float64 `json:"corridor_count"`
	CorridorAreaRatio float64 `json:"corridor_area_ratio"`
	Overlap           float64 `json:"overlap"`
	AspectRatio       float64 `json:"aspect_ratio"`
	SpacingUniformity float64 `json:"spacing_uniformity"`
	Accessibility     float64 `json:"accessibility"`
	Compactness       float64 `json:"compactness"`
	Alignment         float64 `json:"alignment"`

	// Corridors is the raw corridor count.
	Corridors int `json:"corridors"`
}

// Vector returns the normalized features in a fixed order.
func (f Features) Vector() [NumFeatures]float64 {
	return [NumFeatures]float64{
		f.Utilization,
		f.UnitCount,
		f.CorridorCount,
		f.CorridorAreaRatio,
		f.Overlap,
		f.AspectRatio,
		f.SpacingUniformity,
		f.Accessibility,
		f.Compactness,
		f.Alignment,
	}
}

// FeatureNames lists the vector entries in order.
var FeatureNames = [NumFeatures]string{
	"utilization",
	"unit_count",
	"corridor_count",
	"corridor_area_ratio",
	"overlap",
	"aspect_ratio",
	"spacing_uniformity",
	"accessibility",
	"compactness",
	"alignment",
}

// Extract computes the feature vector of a layout.
func Extract(ilots []layout.Ilot, corridors []layout.Corridor, free []geometry.Rect, tol geometry.Tolerances) Features {
	tol = tol.WithDefaults()
	freeArea := geometry.TotalArea(free)

	var unitArea, perimeter, aspect float64
	for _, il := range ilots {
		unitArea += il.Area
		perimeter += il.Rect.Perimeter()
		if lo, hi := math.Min(il.Rect.Width, il.Rect.Height), math.Max(il.Rect.Width, il.Rect.Height); hi > 0 {
			aspect += lo / hi
		}
	}
	var corridorArea float64
	for _, c := range corridors {
		corridorArea += c.Rect.Area()
	}

	f := Features{
		UnitCount:     float64(len(ilots)) / 100,
		CorridorCount: float64(len(corridors)) / 20,
		Corridors:     len(corridors),
	}
	if freeArea > 0 {
		f.Utilization = unitArea / freeArea
		f.CorridorAreaRatio = corridorArea / freeArea
	}
	if unitArea > 0 {
		f.Overlap = layout.Candidate(ilots).OverlapArea() / unitArea
	}
	if len(ilots) > 0 {
		f.AspectRatio = aspect / float64(len(ilots))
		f.Accessibility = float64(len(corridor.Reachable(ilots, corridors, tol.Adjacency))) / float64(len(ilots))
	}
	if perimeter > 0 {
		f.Compactness = unitArea / perimeter
	}
	f.SpacingUniformity = spacingUniformity(ilots)
	f.Alignment = alignment(ilots, tol.Alignment)
	return f
}

// spacingUniformity is exp(-variance/mean^2) of pairwise centroid distances.
func spacingUniformity(ilots []layout.Ilot) float64 {
	if len(ilots) < 2 {
		return 0
	}
	var dists []float64
	var sum float64
	for i := range ilots {
		for j := i + 1; j < len(ilots); j++ {
			d := geometry.Distance(ilots[i].Rect.Center(), ilots[j].Rect.Center())
			dists = append(dists, d)
			sum += d
		}
	}
	mean := sum / float64(len(dists))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, d := range dists {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(dists))
	return math.Exp(-variance / (mean * mean))
}

// alignment is the fraction of unit pairs sharing an x or y coordinate.
func alignment(ilots []layout.Ilot, tol float64) float64 {
	if len(ilots) < 2 {
		return 0
	}
	aligned, pairs := 0, 0
	for i := range ilots {
		for j := i + 1; j < len(ilots); j++ {
			pairs++
			a, b := ilots[i].Rect, ilots[j].Rect
			if math.Abs(a.X-b.X) <= tol || math.Abs(a.Y-b.Y) <= tol {
				aligned++
			}
		}
	}
	return float64(aligned) / float64(pairs)
}
