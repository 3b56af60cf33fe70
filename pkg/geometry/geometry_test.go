package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", Rect{0, 0, 2, 2}, Rect{0, 0, 2, 2}, 4},
		{"partial", Rect{0, 0, 4, 4}, Rect{2, 2, 4, 4}, 4},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 3, 1, 2}, 2},
		{"touching edge", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, 0},
		{"disjoint x", Rect{0, 0, 1, 1}, Rect{5, 0, 1, 1}, 0},
		{"disjoint y", Rect{0, 0, 1, 1}, Rect{0, 5, 1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapArea(tt.a, tt.b)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("OverlapArea() = %v, want %v", got, tt.want)
			}
			if rev := OverlapArea(tt.b, tt.a); math.Abs(rev-got) > eps {
				t.Errorf("OverlapArea not symmetric: %v vs %v", got, rev)
			}
			if got < 0 {
				t.Errorf("OverlapArea negative: %v", got)
			}
		})
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {4, 0}, {4, 3}, {0, 3}}
	if got := PolygonArea(square); math.Abs(got-12) > eps {
		t.Fatalf("PolygonArea(square) = %v, want 12", got)
	}

	lshape := []Point{{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}}
	want := PolygonArea(lshape)
	if math.Abs(want-7) > eps {
		t.Fatalf("PolygonArea(L) = %v, want 7", want)
	}

	for shift := 1; shift < len(lshape); shift++ {
		rotated := append(append([]Point{}, lshape[shift:]...), lshape[:shift]...)
		if got := PolygonArea(rotated); math.Abs(got-want) > eps {
			t.Errorf("rotation %d: area %v, want %v", shift, got, want)
		}
	}

	reversed := make([]Point, len(lshape))
	for i, p := range lshape {
		reversed[len(lshape)-1-i] = p
	}
	if got := PolygonArea(reversed); math.Abs(got-want) > eps {
		t.Errorf("reversed: area %v, want %v", got, want)
	}
}

func TestPolygonAreaDegenerate(t *testing.T) {
	if got := PolygonArea(nil); got != 0 {
		t.Errorf("nil polygon area = %v", got)
	}
	if got := PolygonArea([]Point{{0, 0}, {1, 1}}); got != 0 {
		t.Errorf("two-point polygon area = %v", got)
	}
}

func TestBoundingBox(t *testing.T) {
	got := BoundingBox([]Point{{3, 1}, {-1, 4}, {2, -2}})
	want := Rect{X: -1, Y: -2, Width: 4, Height: 6}
	if got != want {
		t.Errorf("BoundingBox() = %+v, want %+v", got, want)
	}
	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("BoundingBox(nil) = %+v", got)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{0.1, 9.9}, true},
		{Point{-1, 5}, false},
		{Point{11, 5}, false},
		{Point{5, 12}, false},
	}
	for _, tt := range tests {
		if got := PointInPolygon(tt.p, square); got != tt.want {
			t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	// Concave notch: the point sits in the cut-out.
	u := []Point{{0, 0}, {9, 0}, {9, 9}, {6, 9}, {6, 3}, {3, 3}, {3, 9}, {0, 9}}
	if PointInPolygon(Point{4.5, 6}, u) {
		t.Error("point inside notch reported as inside")
	}
	if !PointInPolygon(Point{1.5, 6}, u) {
		t.Error("point in left arm reported as outside")
	}
	if PointInPolygon(Point{0, 0}, []Point{{0, 0}, {1, 1}}) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestSubtractRect(t *testing.T) {
	area := Rect{0, 0, 20, 10}

	t.Run("disjoint", func(t *testing.T) {
		out := SubtractRect(area, Rect{30, 30, 2, 2})
		if len(out) != 1 || out[0] != area {
			t.Fatalf("disjoint subtraction = %+v, want [area]", out)
		}
	})

	t.Run("full height obstacle", func(t *testing.T) {
		out := SubtractRect(area, Rect{8, 0, 4, 10})
		if len(out) != 2 {
			t.Fatalf("got %d rects, want 2: %+v", len(out), out)
		}
		if got := TotalArea(out); math.Abs(got-160) > eps {
			t.Errorf("remaining area = %v, want 160", got)
		}
	})

	t.Run("interior hole", func(t *testing.T) {
		hole := Rect{5, 3, 2, 2}
		out := SubtractRect(area, hole)
		if len(out) != 4 {
			t.Fatalf("got %d rects, want 4", len(out))
		}
		assertPartition(t, area, hole, out)
	})

	t.Run("hole covers area", func(t *testing.T) {
		out := SubtractRect(area, Rect{-1, -1, 30, 30})
		if len(out) != 0 {
			t.Fatalf("got %+v, want nothing", out)
		}
	})

	t.Run("corner overlap", func(t *testing.T) {
		hole := Rect{15, 6, 10, 10}
		assertPartition(t, area, hole, SubtractRect(area, hole))
	})
}

func assertPartition(t *testing.T, area, hole Rect, out []Rect) {
	t.Helper()
	want := area.Area() - OverlapArea(area, hole)
	if got := TotalArea(out); math.Abs(got-want) > eps {
		t.Errorf("remainder area = %v, want %v", got, want)
	}
	if TotalArea(out) > area.Area()+eps {
		t.Errorf("remainder exceeds original area")
	}
	for i, r := range out {
		if !r.Valid() {
			t.Errorf("rect %d not valid: %+v", i, r)
		}
		if OverlapArea(r, hole) > eps {
			t.Errorf("rect %d overlaps hole: %+v", i, r)
		}
		if !area.Contains(r, eps) {
			t.Errorf("rect %d escapes area: %+v", i, r)
		}
		for j := i + 1; j < len(out); j++ {
			if OverlapArea(r, out[j]) > eps {
				t.Errorf("rects %d and %d overlap", i, j)
			}
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	if r.Right() != 4 || r.Top() != 6 {
		t.Errorf("Right/Top = %v/%v", r.Right(), r.Top())
	}
	if r.Center() != (Point{2.5, 4}) {
		t.Errorf("Center = %v", r.Center())
	}
	if r.Perimeter() != 14 {
		t.Errorf("Perimeter = %v", r.Perimeter())
	}
	if got := r.Expand(1); got != (Rect{0, 1, 5, 6}) {
		t.Errorf("Expand = %+v", got)
	}
	if (Rect{Width: 0, Height: 1}).Valid() {
		t.Error("zero-width rect should be invalid")
	}
}

func TestTolerancesWithDefaults(t *testing.T) {
	got := Tolerances{Connect: 0.5}.WithDefaults()
	if got.Connect != 0.5 {
		t.Errorf("Connect overwritten: %v", got.Connect)
	}
	if got.NoiseFloor != DefaultNoiseFloor || got.Alignment != DefaultAlignmentTolerance {
		t.Errorf("defaults not applied: %+v", got)
	}
}
