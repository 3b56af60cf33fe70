// Package demand turns a percentage-based size distribution into concrete
// unit requirements.
//
// Each [SizeBand] claims a share of the free floor area. The planner divides
// that share by the band's average unit area to obtain a unit count:
//
//	reqs, err := demand.Plan(bands, free)
//
// This is a greedy area-budget allocation; the optimizer's fitness is what
// decides how much of the budget is actually realized. [Adherence] measures
// afterwards how closely a placed layout follows the requested distribution.
package demand
