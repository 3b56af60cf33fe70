package zone

import "github.com/matzehuels/ilotplan/pkg/geometry"

// Entity is one normalized geometric entity handed over by a CAD parser.
// Curves are already tessellated into vertex chains.
type Entity struct {
	Kind     EntityKind       `json:"kind"`
	Layer    string           `json:"layer"`
	Color    int              `json:"color"`
	Vertices []geometry.Point `json:"vertices"`
}

// Zone is a classified region of the floor plan. Walls are open polylines;
// the other kinds are closed polygons whose Area is meaningful.
type Zone struct {
	Kind       Kind             `json:"type"`
	Geometry   []geometry.Point `json:"geometry"`
	Area       float64          `json:"area"`
	Color      string           `json:"color"`
	Properties map[string]any   `json:"properties,omitempty"`
}

// Bounds returns the bounding box of the zone geometry.
func (z Zone) Bounds() geometry.Rect {
	return geometry.BoundingBox(z.Geometry)
}

// Anomaly records an entity skipped during classification.
type Anomaly struct {
	Index    int    `json:"index"`
	Layer    string `json:"layer"`
	Vertices int    `json:"vertices"`
	Reason   string `json:"reason"`
}

// Count returns the number of zones of kind k.
func Count(zones []Zone, k Kind) int {
	n := 0
	for _, z := range zones {
		if z.Kind == k {
			n++
		}
	}
	return n
}

// Obstacles returns the zones that remove floor area (every non-wall zone).
func Obstacles(zones []Zone) []Zone {
	var out []Zone
	for _, z := range zones {
		if z.Kind.HasArea() {
			out = append(out, z)
		}
	}
	return out
}

// Synthesized reports whether zones contain a boundary wall added by
// EnsureBoundary rather than one found in the input.
func Synthesized(zones []Zone) bool {
	for _, z := range zones {
		if z.Kind == Wall && z.Properties["source"] == "boundary" {
			return true
		}
	}
	return false
}

// BoundaryWall returns a closed wall polyline tracing floor.
func BoundaryWall(floor geometry.Rect) Zone {
	pts := floor.Corners()
	pts = append(pts, pts[0])
	return Zone{
		Kind:     Wall,
		Geometry: pts,
		Color:    Wall.Color(),
		Properties: map[string]any{
			"source": "boundary",
			"length": geometry.PolylineLength(pts),
		},
	}
}
