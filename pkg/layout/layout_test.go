package layout

import (
	"testing"

	"github.com/matzehuels/ilotplan/pkg/geometry"
)

func TestCandidateCloneIsIndependent(t *testing.T) {
	c := Candidate{
		NewIlot(0, geometry.Rect{Width: 2, Height: 1}, "1-3", Rot0),
		NewIlot(1, geometry.Rect{X: 3, Width: 1, Height: 2}, "1-3", Rot90),
	}
	d := c.Clone()
	d[0] = d[0].Moved(5, 5)

	if c[0].Rect.X != 0 {
		t.Errorf("clone shares storage with original")
	}
	if d.TotalArea() != 4 {
		t.Errorf("TotalArea = %v, want 4", d.TotalArea())
	}
	if Candidate(nil).Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestCandidateOverlapArea(t *testing.T) {
	c := Candidate{
		NewIlot(0, geometry.Rect{Width: 2, Height: 2}, "", Rot0),
		NewIlot(1, geometry.Rect{X: 1, Y: 1, Width: 2, Height: 2}, "", Rot0),
		NewIlot(2, geometry.Rect{X: 10, Width: 1, Height: 1}, "", Rot0),
	}
	if got := c.OverlapArea(); got != 1 {
		t.Errorf("OverlapArea = %v, want 1", got)
	}
}

func TestCategory(t *testing.T) {
	if got := Category(1, 3); got != "1-3" {
		t.Errorf("Category = %q", got)
	}
	if got := Category(0.5, 2.5); got != "0.5-2.5" {
		t.Errorf("Category = %q", got)
	}
}

func TestCorridorConnects(t *testing.T) {
	c := Corridor{ConnectedIlotIDs: []int{1, 4, 7}}
	if !c.Connects(4) || c.Connects(5) {
		t.Error("Connects mismatch")
	}
}
