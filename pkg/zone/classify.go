package zone

import (
	"strings"

	"github.com/matzehuels/ilotplan/pkg/geometry"
)

// Options controls vector classification.
type Options struct {
	// ConnectTolerance is the maximum distance between two chain endpoints
	// for them to be joined into one wall path.
	ConnectTolerance float64
}

// DefaultOptions returns the standard vector classification options.
func DefaultOptions() Options {
	return Options{ConnectTolerance: geometry.DefaultConnectTolerance}
}

// layerKeywords is matched in order against the lowercase layer name.
var layerKeywords = []struct {
	kind  Kind
	words []string
}{
	{Wall, []string{"wall", "mur", "cloison"}},
	{Restricted, []string{"stair", "escalier", "elevator", "ascenseur", "lift", "restricted", "interdit"}},
	{Entrance, []string{"entrance", "entree", "entrée", "exit", "sortie", "door", "porte"}},
}

// colorKinds maps AutoCAD colour indices to zone kinds when no layer
// keyword matched. Unlisted colours default to Wall.
var colorKinds = map[int]Kind{
	1: Entrance,   // red
	3: Exit,       // green
	4: Restricted, // cyan
	5: Restricted, // blue
}

// KindFor returns the kind for a layer/colour pair and how it was decided:
// "keyword", "color" or "default".
func KindFor(layer string, color int) (Kind, string) {
	name := strings.ToLower(layer)
	for _, kw := range layerKeywords {
		for _, w := range kw.words {
			if strings.Contains(name, w) {
				return kw.kind, "keyword"
			}
		}
	}
	if k, ok := colorKinds[color]; ok {
		return k, "color"
	}
	return Wall, "default"
}

type groupKey struct {
	layer string
	color int
}

type group struct {
	key      groupKey
	entities []Entity
	indices  []int // position of each entity in the input list
}

// Classify turns normalized entities into zones. Entities with fewer than
// two vertices, and area entities with fewer than three, are skipped and
// returned as anomalies. If no wall results, a boundary wall tracing floor
// is appended.
func Classify(entities []Entity, floor geometry.Rect, opts Options) ([]Zone, []Anomaly) {
	if opts.ConnectTolerance <= 0 {
		opts.ConnectTolerance = geometry.DefaultConnectTolerance
	}

	var anomalies []Anomaly
	var groups []*group
	index := make(map[groupKey]*group)

	for i, e := range entities {
		if len(e.Vertices) < 2 {
			anomalies = append(anomalies, Anomaly{
				Index:    i,
				Layer:    e.Layer,
				Vertices: len(e.Vertices),
				Reason:   "fewer than 2 vertices",
			})
			continue
		}
		key := groupKey{layer: e.Layer, color: e.Color}
		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.entities = append(g.entities, e)
		g.indices = append(g.indices, i)
	}

	var zones []Zone
	for _, g := range groups {
		kind, how := KindFor(g.key.layer, g.key.color)
		switch kind {
		case Wall:
			zones = append(zones, wallZones(g, opts.ConnectTolerance, how)...)
		case Restricted, Entrance, Exit:
			zs, skipped := areaZones(g, kind, how)
			zones = append(zones, zs...)
			anomalies = append(anomalies, skipped...)
		}
	}

	zones, _ = EnsureBoundary(zones, floor)
	return zones, anomalies
}

// EnsureBoundary appends a boundary wall for floor when zones contains no
// wall. It reports whether a wall was synthesized.
func EnsureBoundary(zones []Zone, floor geometry.Rect) ([]Zone, bool) {
	if Count(zones, Wall) > 0 || !floor.Valid() {
		return zones, false
	}
	return append(zones, BoundaryWall(floor)), true
}

func wallZones(g *group, tol float64, how string) []Zone {
	chains := make([][]geometry.Point, len(g.entities))
	for i, e := range g.entities {
		chains[i] = e.Vertices
	}

	paths := joinChains(chains, tol)
	zones := make([]Zone, 0, len(paths))
	for _, p := range paths {
		zones = append(zones, Zone{
			Kind:     Wall,
			Geometry: p.points,
			Color:    Wall.Color(),
			Properties: map[string]any{
				"layer":     g.key.layer,
				"dxf_color": g.key.color,
				"matched":   how,
				"entities":  p.members,
				"length":    geometry.PolylineLength(p.points),
			},
		})
	}
	return zones
}

func areaZones(g *group, kind Kind, how string) ([]Zone, []Anomaly) {
	var zones []Zone
	var skipped []Anomaly
	for i, e := range g.entities {
		if len(e.Vertices) < 3 {
			skipped = append(skipped, Anomaly{
				Index:    g.indices[i],
				Layer:    e.Layer,
				Vertices: len(e.Vertices),
				Reason:   "area zone needs at least 3 vertices",
			})
			continue
		}
		pts := append([]geometry.Point(nil), e.Vertices...)
		zones = append(zones, Zone{
			Kind:     kind,
			Geometry: pts,
			Area:     geometry.PolygonArea(pts),
			Color:    kind.Color(),
			Properties: map[string]any{
				"layer":     g.key.layer,
				"dxf_color": g.key.color,
				"matched":   how,
				"entity":    e.Kind.String(),
			},
		})
	}
	return zones, skipped
}
