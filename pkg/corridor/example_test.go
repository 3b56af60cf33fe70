package corridor_test

import (
	"fmt"

	"github.com/matzehuels/ilotplan/pkg/corridor"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

func ExampleSynthesize() {
	// Two rows of 2x2 units separated by a 1.5 gap.
	var ilots []layout.Ilot
	for i, y := range []float64{0, 3.5} {
		for j := range 4 {
			r := geometry.Rect{X: float64(j) * 2, Y: y, Width: 2, Height: 2}
			ilots = append(ilots, layout.NewIlot(i*4+j, r, "1-5", layout.Rot0))
		}
	}

	for _, c := range corridor.Synthesize(ilots, corridor.Options{Width: 1.5}) {
		fmt.Printf("%s corridor at (%g,%g) %gx%g joining %d units\n",
			c.Orientation, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, len(c.ConnectedIlotIDs))
	}
	// Output:
	// horizontal corridor at (0,2) 8x1.5 joining 8 units
}
