// Package geometry provides the planar primitives used by every stage of the
// layout pipeline.
//
// All coordinates are floor-plan units (meters). Y grows upward, so a
// rectangle's Y is its bottom edge and Y+Height its top edge.
//
// Every function in this package is pure: inputs are values, results are
// freshly allocated, and degenerate inputs (too few points, zero-area
// rectangles) yield zero or empty results instead of errors.
//
// # Rectangles
//
// [Rect] is axis-aligned and derives its area on demand:
//
//	r := geometry.Rect{X: 0, Y: 0, Width: 20, Height: 10}
//	r.Area() // 200
//
// [SubtractRect] splits a rectangle around a hole into at most four
// remainder slivers (left, right, bottom, top). The remainders are disjoint,
// so their total area is exactly area(a) - overlap(a, hole).
//
// # Polygons
//
// [PolygonArea] uses the shoelace formula and is orientation independent.
// [PointInPolygon] uses the ray-casting parity test.
//
// # Tolerances
//
// Floating point slack is never hard-coded in callers. [Tolerances] carries
// the connection tolerance for wall joining, the noise floor for free-space
// slivers, the alignment tolerance used by scoring and the overlap tolerance
// used when deciding whether two units collide.
package geometry
