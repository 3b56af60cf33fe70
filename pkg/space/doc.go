// Package space computes the free floor area available for placement.
//
// The floor starts as a single rectangle. Every obstacle zone (restricted
// areas, entrances and exits) is reduced to its bounding box and subtracted
// from each free rectangle, splitting it into up to four disjoint slivers.
// Slivers thinner than the noise floor are discarded:
//
//	free := space.Free(floor, zones, geometry.DefaultNoiseFloor)
//	fmt.Println(geometry.TotalArea(free))
//
// Walls do not consume area and are ignored here.
package space
