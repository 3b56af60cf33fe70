package placement

import (
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ilotplan/pkg/layout"
)

// individual is one member of a generation.
type individual struct {
	genes     layout.Candidate
	fitness   float64
	evaluated bool
}

// Genetic is the evolutionary placer.
type Genetic struct {
	cfg  GeneticConfig
	seed uint64
}

// NewGenetic returns a genetic placer. Unset config fields take defaults.
func NewGenetic(cfg GeneticConfig, seed uint64) *Genetic {
	return &Genetic{cfg: cfg.WithDefaults(), seed: seed}
}

// Name implements Placer.
func (g *Genetic) Name() string { return AlgorithmGenetic }

// Config returns the effective configuration.
func (g *Genetic) Config() GeneticConfig { return g.cfg }

// Place implements Placer. It never fails: an infeasible problem yields an
// empty outcome.
func (g *Genetic) Place(p Problem) Outcome {
	units := expand(p.Requirements)
	if p.FreeArea() <= 0 || len(units) == 0 {
		return Outcome{Requested: len(units)}
	}

	e := &evolution{
		cfg:     g.cfg,
		problem: p,
		units:   len(units),
		rng:     newRand(g.seed),
		seeder: seeder{
			units: units,
			free:  p.Free,
			cfg:   g.cfg,
			tol:   p.Tolerances.WithDefaults().Overlap,
		},
	}
	best := e.run()
	return finish(best, p, len(units), g.cfg.Generations)
}

// evolution holds the state of one run. Generations are freshly allocated
// slices; an individual is never modified once a later generation exists.
type evolution struct {
	cfg     GeneticConfig
	problem Problem
	units   int
	rng     *rand.Rand
	seeder  seeder
}

func (e *evolution) run() layout.Candidate {
	pop := make([]individual, e.cfg.PopulationSize)
	for i := range pop {
		pop[i] = individual{genes: e.seeder.candidate(e.rng)}
	}
	e.evaluate(pop)

	for gen := 0; gen < e.cfg.Generations; gen++ {
		rank(pop)

		next := make([]individual, 0, e.cfg.PopulationSize)
		for i := 0; i < e.cfg.eliteCount(); i++ {
			next = append(next, individual{
				genes:     pop[i].genes.Clone(),
				fitness:   pop[i].fitness,
				evaluated: true,
			})
		}

		for len(next) < e.cfg.PopulationSize {
			p1 := e.tournament(pop)
			p2 := e.tournament(pop)

			var child layout.Candidate
			if e.rng.Float64() < e.cfg.CrossoverRate {
				child = e.crossover(p1.genes, p2.genes)
			} else {
				child = p1.genes.Clone()
			}
			if e.rng.Float64() < e.cfg.MutationRate {
				child = e.mutate(child)
			}
			next = append(next, individual{genes: child})
		}

		e.evaluate(next)
		pop = next

		if e.problem.Progress != nil {
			e.problem.Progress(gen, bestOf(pop).fitness)
		}
	}

	return bestOf(pop).genes
}

// evaluate fills in fitness for individuals not yet scored. Fitness only
// reads its candidate, so evaluation may run concurrently.
func (e *evolution) evaluate(pop []individual) {
	if !e.cfg.Parallel {
		for i := range pop {
			if !pop[i].evaluated {
				pop[i].fitness = Fitness(pop[i].genes, e.problem)
				pop[i].evaluated = true
			}
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range pop {
		if pop[i].evaluated {
			continue
		}
		g.Go(func() error {
			pop[i].fitness = Fitness(pop[i].genes, e.problem)
			pop[i].evaluated = true
			return nil
		})
	}
	_ = g.Wait()
}

// tournament returns the fittest of TournamentSize random picks.
func (e *evolution) tournament(pop []individual) individual {
	best := pop[e.rng.IntN(len(pop))]
	for i := 1; i < e.cfg.TournamentSize; i++ {
		c := pop[e.rng.IntN(len(pop))]
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best
}

// crossover takes the units with id below a random cut from a and the rest
// from b. Each unit id appears at most once in the child.
func (e *evolution) crossover(a, b layout.Candidate) layout.Candidate {
	cut := e.rng.IntN(e.units + 1)
	child := make(layout.Candidate, 0, max(len(a), len(b)))
	for _, il := range a {
		if il.ID < cut {
			child = append(child, il)
		}
	}
	for _, il := range b {
		if il.ID >= cut {
			child = append(child, il)
		}
	}
	return child
}

// mutate nudges one unit by up to MutationStep in x and y. Size and
// rotation are unchanged.
func (e *evolution) mutate(c layout.Candidate) layout.Candidate {
	if len(c) == 0 {
		return c
	}
	out := c.Clone()
	i := e.rng.IntN(len(out))
	dx := uniform(e.rng, -e.cfg.MutationStep, e.cfg.MutationStep)
	dy := uniform(e.rng, -e.cfg.MutationStep, e.cfg.MutationStep)
	out[i] = out[i].Moved(dx, dy)
	return out
}

// rank sorts by fitness descending, keeping the previous order on ties.
func rank(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})
}

func bestOf(pop []individual) individual {
	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.fitness > best.fitness {
			best = ind
		}
	}
	return best
}
