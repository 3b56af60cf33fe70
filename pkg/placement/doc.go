// Package placement positions units inside the free floor rectangles.
//
// Three placers implement [Placer]:
//
//   - "genetic" evolves a population of candidate layouts (the default)
//   - "greedy" packs average-sized square units onto shelves, largest first
//   - "random" returns a single randomly seeded layout
//
// All placers take a [Problem] and return an [Outcome]. They are pure with
// respect to their inputs: a placer built with a fixed seed returns the same
// layout for the same problem. Use [New] to build a placer by name.
//
// # Genetic search
//
// Each candidate is seeded by drawing every unit's area from its band and an
// aspect ratio from [GeneticConfig.AspectMin, GeneticConfig.AspectMax], then
// trying up to [GeneticConfig.MaxAttempts] random positions inside a free
// rectangle large enough to hold it. Units that never find a collision-free
// position are left out of that candidate.
//
// Every generation keeps the elite unchanged, then fills the population with
// offspring of tournament-selected parents: single-point crossover by unit
// index, or a clone, followed by an optional position nudge. The search runs
// for a fixed number of generations and has no internal cancellation; callers
// that need to abort should run it on their own goroutine and drop the result.
package placement
