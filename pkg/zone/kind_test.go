package zone

import (
	"testing"

	"github.com/matzehuels/ilotplan/pkg/geometry"
)

func TestKindsRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("%v: %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %q: %v", b, err)
		}
		if got != k {
			t.Errorf("round trip %v -> %v", k, got)
		}
		if k.Color() == "" {
			t.Errorf("%v has no display color", k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("corridor"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestHasArea(t *testing.T) {
	if Wall.HasArea() {
		t.Error("walls must not consume floor area")
	}
	for _, k := range []Kind{Restricted, Entrance, Exit} {
		if !k.HasArea() {
			t.Errorf("%v should consume floor area", k)
		}
	}
}

func TestSynthesized(t *testing.T) {
	floor := geometry.Rect{Width: 10, Height: 5}
	found := Zone{Kind: Wall, Geometry: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}

	if Synthesized([]Zone{found}) {
		t.Error("input wall reported as synthesized")
	}
	zones, added := EnsureBoundary(nil, floor)
	if !added || !Synthesized(zones) {
		t.Errorf("boundary wall not synthesized: added=%v zones=%v", added, zones)
	}
	if _, added := EnsureBoundary([]Zone{found}, floor); added {
		t.Error("boundary added although a wall exists")
	}
}
