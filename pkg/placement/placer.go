package placement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// Algorithm names accepted by New.
const (
	AlgorithmGenetic = "genetic"
	AlgorithmGreedy  = "greedy"
	AlgorithmRandom  = "random"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = AlgorithmGenetic

// Problem is the input to a placer.
type Problem struct {
	Requirements  []demand.UnitRequirement
	Free          []geometry.Rect
	CorridorWidth float64
	Tolerances    geometry.Tolerances

	// Progress, if set, is called after every generation with the best
	// fitness so far. Placers without generations call it once.
	Progress func(generation int, best float64)
}

// FreeArea returns the total free area of the problem.
func (p Problem) FreeArea() float64 { return geometry.TotalArea(p.Free) }

// Outcome is the best layout a placer found.
type Outcome struct {
	Candidate   layout.Candidate
	TotalArea   float64
	Utilization float64 // percent of free area, in [0, 100]
	Fitness     float64
	Requested   int
	Generations int
}

// Placer positions the units of a problem.
type Placer interface {
	Name() string
	Place(p Problem) Outcome
}

// Factory builds a placer from a config and seed.
type Factory func(cfg GeneticConfig, seed uint64) Placer

var registry = map[string]Factory{
	AlgorithmGenetic: func(cfg GeneticConfig, seed uint64) Placer { return NewGenetic(cfg, seed) },
	AlgorithmGreedy:  func(_ GeneticConfig, _ uint64) Placer { return NewGreedy() },
	AlgorithmRandom:  func(cfg GeneticConfig, seed uint64) Placer { return NewRandom(cfg, seed) },
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the placer registered under name. An empty name selects
// DefaultAlgorithm.
func New(name string, cfg GeneticConfig, seed uint64) (Placer, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm,
			"unknown algorithm %q (must be one of: %s)", name, strings.Join(Algorithms(), ", "))
	}
	return f(cfg.WithDefaults(), seed), nil
}

// finish turns a candidate into an outcome. Units overlapping an earlier
// unit, or lying outside every free rectangle, are dropped first.
func finish(c layout.Candidate, p Problem, requested, generations int) Outcome {
	c = repair(c, p.Free, p.Tolerances.WithDefaults().Overlap)
	out := Outcome{
		Candidate:   c,
		TotalArea:   c.TotalArea(),
		Fitness:     Fitness(c, p),
		Requested:   requested,
		Generations: generations,
	}
	if free := p.FreeArea(); free > 0 {
		out.Utilization = min(100, out.TotalArea/free*100)
	}
	return out
}

func repair(c layout.Candidate, free []geometry.Rect, tol float64) layout.Candidate {
	kept := make(layout.Candidate, 0, len(c))
	for _, il := range c {
		if !insideFree(il.Rect, free, tol) {
			continue
		}
		ok := true
		for _, k := range kept {
			if geometry.OverlapArea(il.Rect, k.Rect) > tol {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, il)
		}
	}
	return kept
}

func insideFree(r geometry.Rect, free []geometry.Rect, eps float64) bool {
	for _, f := range free {
		if f.Contains(r, eps) {
			return true
		}
	}
	return false
}

func (o Outcome) String() string {
	return fmt.Sprintf("%d/%d units, %.1f%% utilization", len(o.Candidate), o.Requested, o.Utilization)
}
