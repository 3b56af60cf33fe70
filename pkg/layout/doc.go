// Package layout defines the placed-unit types shared by the optimizer,
// the corridor synthesizer and the scorer.
//
// An [Ilot] is one placed rectangular unit. A [Candidate] is an ordered
// list of ilots forming one proposed layout; candidates never share ilot
// storage, so [Candidate.Clone] is used whenever a layout is derived from
// another. A [Corridor] is a passage inserted between two facing rows.
package layout
