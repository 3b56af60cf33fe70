package zone

import (
	"math"

	"github.com/matzehuels/ilotplan/pkg/geometry"
)

// Raster defaults.
const (
	DefaultBlockStride    = 10
	DefaultColorTolerance = 50
	DefaultMinClusterSize = 3
)

// PixelBuffer is a decoded raster image: row-major pixels with Channels
// bytes each (3 for RGB, 4 for RGBA).
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Valid reports whether the buffer dimensions agree with its pixel data.
func (b PixelBuffer) Valid() bool {
	return b.Width > 0 && b.Height > 0 && b.Channels >= 3 &&
		len(b.Pix) >= b.Width*b.Height*b.Channels
}

// At returns the RGB colour of the pixel at (x, y).
func (b PixelBuffer) At(x, y int) RGB {
	i := (y*b.Width + x) * b.Channels
	return RGB{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Near reports whether every channel of c is within tol of o.
func (c RGB) Near(o RGB, tol int) bool {
	return absDiff(c.R, o.R) <= tol && absDiff(c.G, o.G) <= tol && absDiff(c.B, o.B) <= tol
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// Reference ties a zone kind to the colour it is drawn with.
type Reference struct {
	Kind  Kind
	Color RGB
}

// DefaultReferences is checked in order; the first match wins.
var DefaultReferences = []Reference{
	{Kind: Wall, Color: RGB{0, 0, 0}},
	{Kind: Restricted, Color: RGB{0, 255, 255}},
	{Kind: Entrance, Color: RGB{255, 0, 0}},
}

// RasterOptions controls raster classification.
type RasterOptions struct {
	// BlockStride samples one pixel every BlockStride pixels in both axes.
	BlockStride int
	// ColorTolerance is the maximum per-channel difference to a reference.
	ColorTolerance int
	// MinClusterSize discards clusters with fewer sampled points.
	MinClusterSize int
	// LinkDistance is the single-link clustering radius in pixels.
	// Zero means twice the stride.
	LinkDistance float64
	// Scale converts pixels to floor units. Zero means 1.
	Scale float64
	// References overrides DefaultReferences when non-empty.
	References []Reference
}

// DefaultRasterOptions returns the standard raster settings.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		BlockStride:    DefaultBlockStride,
		ColorTolerance: DefaultColorTolerance,
		MinClusterSize: DefaultMinClusterSize,
		Scale:          1,
	}
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.BlockStride <= 0 {
		o.BlockStride = DefaultBlockStride
	}
	if o.ColorTolerance <= 0 {
		o.ColorTolerance = DefaultColorTolerance
	}
	if o.MinClusterSize <= 0 {
		o.MinClusterSize = DefaultMinClusterSize
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = 2 * float64(o.BlockStride)
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if len(o.References) == 0 {
		o.References = DefaultReferences
	}
	return o
}

type sample struct {
	x, y int
}

// ClassifyRaster samples buf on a grid, matches each sample against the
// reference colours and groups matching samples of the same kind into
// clusters. Every cluster of at least MinClusterSize samples becomes a
// rectangular zone covering its sampled blocks. A boundary wall tracing the
// image is appended when no wall cluster survives.
func ClassifyRaster(buf PixelBuffer, opts RasterOptions) []Zone {
	if !buf.Valid() {
		return nil
	}
	opts = opts.withDefaults()

	byKind := make(map[Kind][]sample)
	for y := 0; y < buf.Height; y += opts.BlockStride {
		for x := 0; x < buf.Width; x += opts.BlockStride {
			c := buf.At(x, y)
			for _, ref := range opts.References {
				if c.Near(ref.Color, opts.ColorTolerance) {
					byKind[ref.Kind] = append(byKind[ref.Kind], sample{x, y})
					break
				}
			}
		}
	}

	var zones []Zone
	for _, ref := range opts.References {
		pts, ok := byKind[ref.Kind]
		if !ok {
			continue
		}
		delete(byKind, ref.Kind)
		for _, cl := range cluster(pts, opts.LinkDistance) {
			if len(cl) < opts.MinClusterSize {
				continue
			}
			zones = append(zones, clusterZone(ref.Kind, cl, buf, opts))
		}
	}

	floor := geometry.Rect{Width: float64(buf.Width) * opts.Scale, Height: float64(buf.Height) * opts.Scale}
	zones, _ = EnsureBoundary(zones, floor)
	return zones
}

func clusterZone(kind Kind, cl []sample, buf PixelBuffer, opts RasterOptions) Zone {
	minX, minY := cl[0].x, cl[0].y
	maxX, maxY := minX, minY
	for _, s := range cl[1:] {
		minX, maxX = min(minX, s.x), max(maxX, s.x)
		minY, maxY = min(minY, s.y), max(maxY, s.y)
	}
	maxX = min(maxX+opts.BlockStride, buf.Width)
	maxY = min(maxY+opts.BlockStride, buf.Height)

	r := geometry.Rect{
		X:      float64(minX) * opts.Scale,
		Y:      float64(minY) * opts.Scale,
		Width:  float64(maxX-minX) * opts.Scale,
		Height: float64(maxY-minY) * opts.Scale,
	}
	pts := r.Corners()
	z := Zone{
		Kind:     kind,
		Geometry: pts,
		Color:    kind.Color(),
		Properties: map[string]any{
			"source":  "raster",
			"samples": len(cl),
		},
	}
	if kind.HasArea() {
		z.Area = r.Area()
	} else {
		z.Geometry = append(pts, pts[0])
		z.Properties["length"] = geometry.PolylineLength(z.Geometry)
	}
	return z
}

// cluster groups samples by single linkage: two samples within link of
// each other end up in the same cluster. Samples are bucketed on a grid of
// cell size link so only neighbouring cells are compared.
func cluster(pts []sample, link float64) [][]sample {
	parent := make([]int, len(pts))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	type cell struct{ cx, cy int }
	cellOf := func(s sample) cell {
		return cell{int(math.Floor(float64(s.x) / link)), int(math.Floor(float64(s.y) / link))}
	}
	grid := make(map[cell][]int)
	for i, s := range pts {
		c := cellOf(s)
		grid[c] = append(grid[c], i)
	}

	link2 := link * link
	for i, s := range pts {
		c := cellOf(s)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range grid[cell{c.cx + dx, c.cy + dy}] {
					if j <= i {
						continue
					}
					ddx, ddy := float64(pts[j].x-s.x), float64(pts[j].y-s.y)
					if ddx*ddx+ddy*ddy <= link2 {
						union(i, j)
					}
				}
			}
		}
	}

	order := []int{}
	groups := make(map[int][]sample)
	for i, s := range pts {
		r := find(i)
		if _, ok := groups[r]; !ok {
			order = append(order, r)
		}
		groups[r] = append(groups[r], s)
	}
	out := make([][]sample, 0, len(order))
	for _, r := range order {
		out = append(out, groups[r])
	}
	return out
}
