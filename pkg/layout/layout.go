package layout

import (
	"fmt"

	"github.com/matzehuels/ilotplan/pkg/geometry"
)

// Rotation is the orientation of a placed unit.
type Rotation int

const (
	Rot0  Rotation = 0
	Rot90 Rotation = 90
)

// Ilot is a placed rectangular unit. ID is stable within one run only.
type Ilot struct {
	ID       int           `json:"id"`
	Rect     geometry.Rect `json:"rect"`
	Area     float64       `json:"area"`
	Category string        `json:"size_category"`
	MinSize  float64       `json:"min_size"`
	MaxSize  float64       `json:"max_size"`
	Rotation Rotation      `json:"rotation"`
}

// NewIlot returns an ilot with Area derived from r.
func NewIlot(id int, r geometry.Rect, category string, rot Rotation) Ilot {
	return Ilot{ID: id, Rect: r, Area: r.Area(), Category: category, Rotation: rot}
}

// Moved returns a copy of the ilot translated by (dx, dy).
func (i Ilot) Moved(dx, dy float64) Ilot {
	i.Rect = i.Rect.Translate(dx, dy)
	return i
}

// Category returns the label used for a size band.
func Category(minSize, maxSize float64) string {
	return fmt.Sprintf("%g-%g", minSize, maxSize)
}

// Orientation of a corridor.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Corridor is a passage between two rows of ilots.
type Corridor struct {
	ID               int           `json:"id"`
	Rect             geometry.Rect `json:"rect"`
	Orientation      Orientation   `json:"orientation"`
	ConnectedIlotIDs []int         `json:"connected_ilot_ids"`
}

// Connects reports whether the corridor lists the given ilot.
func (c Corridor) Connects(id int) bool {
	for _, v := range c.ConnectedIlotIDs {
		if v == id {
			return true
		}
	}
	return false
}

// Candidate is one proposed layout.
type Candidate []Ilot

// Clone returns a deep copy of c.
func (c Candidate) Clone() Candidate {
	if c == nil {
		return nil
	}
	out := make(Candidate, len(c))
	copy(out, c)
	return out
}

// TotalArea returns the summed ilot area.
func (c Candidate) TotalArea() float64 {
	var total float64
	for _, i := range c {
		total += i.Area
	}
	return total
}

// Rects returns the rectangles of every ilot in order.
func (c Candidate) Rects() []geometry.Rect {
	out := make([]geometry.Rect, len(c))
	for i, il := range c {
		out[i] = il.Rect
	}
	return out
}

// OverlapArea returns the summed pairwise overlap between ilots.
func (c Candidate) OverlapArea() float64 {
	var total float64
	for i := range c {
		for j := i + 1; j < len(c); j++ {
			total += geometry.OverlapArea(c[i].Rect, c[j].Rect)
		}
	}
	return total
}
