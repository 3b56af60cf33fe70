package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

// smallConfig keeps test runs fast.
func smallConfig() GeneticConfig {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 12
	cfg.Generations = 10
	return cfg
}

func splitFloorProblem() Problem {
	free := []geometry.Rect{{X: 0, Y: 0, Width: 8, Height: 10}, {X: 12, Y: 0, Width: 8, Height: 10}}
	bands := []demand.SizeBand{{MinSize: 1, MaxSize: 3, Percentage: 100}}
	return Problem{
		Requirements:  demand.Plan(bands, free),
		Free:          free,
		CorridorWidth: 1.5,
		Tolerances:    geometry.DefaultTolerances(),
	}
}

func assertNoOverlap(t *testing.T, c layout.Candidate, tol float64) {
	t.Helper()
	for i := range c {
		for j := i + 1; j < len(c); j++ {
			ov := geometry.OverlapArea(c[i].Rect, c[j].Rect)
			assert.LessOrEqual(t, ov, tol, "units %d and %d overlap", c[i].ID, c[j].ID)
		}
	}
}

func assertInsideFree(t *testing.T, c layout.Candidate, free []geometry.Rect) {
	t.Helper()
	for _, il := range c {
		assert.True(t, insideFree(il.Rect, free, 1e-6), "unit %d at %+v outside free space", il.ID, il.Rect)
	}
}

func TestGenetic_SplitFloor(t *testing.T) {
	p := splitFloorProblem()
	require.Equal(t, 80, demand.Total(p.Requirements))

	out := NewGenetic(smallConfig(), 42).Place(p)

	require.NotEmpty(t, out.Candidate)
	assert.Equal(t, 80, out.Requested)
	assert.Greater(t, out.Utilization, 0.0)
	assert.LessOrEqual(t, out.Utilization, 100.0)
	assert.InDelta(t, out.Candidate.TotalArea(), out.TotalArea, 1e-9)
	assertNoOverlap(t, out.Candidate, p.Tolerances.Overlap)
	assertInsideFree(t, out.Candidate, p.Free)

	for _, il := range out.Candidate {
		assert.GreaterOrEqual(t, il.Area, 1.0-1e-9)
		assert.LessOrEqual(t, il.Area, 3.0+1e-9)
		assert.Contains(t, []layout.Rotation{layout.Rot0, layout.Rot90}, il.Rotation)
		assert.Equal(t, "1-3", il.Category)
	}
}

func TestGenetic_TriviallySatisfiable(t *testing.T) {
	free := []geometry.Rect{{Width: 10, Height: 10}}
	p := Problem{
		Requirements: demand.Plan([]demand.SizeBand{{MinSize: 1, MaxSize: 1, Percentage: 50}}, free),
		Free:         free,
		Tolerances:   geometry.DefaultTolerances(),
	}

	out := NewGenetic(smallConfig(), 7).Place(p)

	require.NotEmpty(t, out.Candidate)
	assertNoOverlap(t, out.Candidate, p.Tolerances.Overlap)
}

func TestGenetic_Deterministic(t *testing.T) {
	p := splitFloorProblem()
	a := NewGenetic(smallConfig(), 99).Place(p)
	b := NewGenetic(smallConfig(), 99).Place(p)
	assert.Equal(t, a.Candidate, b.Candidate)
	assert.Equal(t, a.Fitness, b.Fitness)
}

func TestGenetic_ParallelMatchesSequential(t *testing.T) {
	p := splitFloorProblem()
	seq := NewGenetic(smallConfig(), 5).Place(p)

	cfg := smallConfig()
	cfg.Parallel = true
	par := NewGenetic(cfg, 5).Place(p)

	assert.Equal(t, seq.Candidate, par.Candidate)
}

func TestGenetic_ZeroFreeArea(t *testing.T) {
	p := Problem{
		Requirements:  []demand.UnitRequirement{{Count: 3, MinSize: 1, MaxSize: 3}},
		CorridorWidth: 1,
	}
	out := NewGenetic(smallConfig(), 42).Place(p)

	assert.Empty(t, out.Candidate)
	assert.Zero(t, out.Utilization)
	assert.Zero(t, out.TotalArea)
	assert.Equal(t, 3, out.Requested)
}

func TestGenetic_OversizedBandDegrades(t *testing.T) {
	free := []geometry.Rect{{Width: 5, Height: 5}}
	p := Problem{
		Requirements: []demand.UnitRequirement{
			{Count: 2, MinSize: 100, MaxSize: 120, Category: "100-120"},
			{Count: 3, MinSize: 1, MaxSize: 2, Category: "1-2"},
		},
		Free:       free,
		Tolerances: geometry.DefaultTolerances(),
	}
	out := NewGenetic(smallConfig(), 1).Place(p)

	require.NotEmpty(t, out.Candidate)
	for _, il := range out.Candidate {
		assert.Equal(t, "1-2", il.Category, "oversized units must not be placed")
	}
}

func TestGenetic_ProgressCalledPerGeneration(t *testing.T) {
	p := splitFloorProblem()
	var gens []int
	var last float64
	p.Progress = func(gen int, best float64) {
		gens = append(gens, gen)
		assert.GreaterOrEqual(t, best, last, "elitism keeps the best fitness")
		last = best
	}
	NewGenetic(smallConfig(), 3).Place(p)

	assert.Len(t, gens, smallConfig().Generations)
}

func TestCrossover_UniqueIDs(t *testing.T) {
	mk := func(ids ...int) layout.Candidate {
		var c layout.Candidate
		for _, id := range ids {
			c = append(c, layout.NewIlot(id, geometry.Rect{X: float64(id), Width: 1, Height: 1}, "", layout.Rot0))
		}
		return c
	}
	e := &evolution{units: 6, rng: newRand(1)}
	a := mk(0, 1, 3, 5)
	b := mk(0, 2, 3, 4)

	for i := 0; i < 50; i++ {
		child := e.crossover(a, b)
		seen := map[int]bool{}
		for _, il := range child {
			assert.False(t, seen[il.ID], "duplicate id %d", il.ID)
			seen[il.ID] = true
		}
	}
}

func TestMutate_CopyOnWrite(t *testing.T) {
	cfg := DefaultGeneticConfig()
	e := &evolution{cfg: cfg, rng: newRand(2)}
	orig := layout.Candidate{layout.NewIlot(0, geometry.Rect{X: 5, Y: 5, Width: 1, Height: 1}, "", layout.Rot0)}

	child := e.mutate(orig)

	assert.Equal(t, 5.0, orig[0].Rect.X)
	assert.Equal(t, 5.0, orig[0].Rect.Y)
	assert.InDelta(t, 5, child[0].Rect.X, cfg.MutationStep)
	assert.InDelta(t, 5, child[0].Rect.Y, cfg.MutationStep)
	assert.Equal(t, orig[0].Rect.Width, child[0].Rect.Width)
}

func TestFitness(t *testing.T) {
	free := []geometry.Rect{{Width: 10, Height: 10}}
	p := Problem{Free: free, CorridorWidth: 1, Tolerances: geometry.DefaultTolerances()}

	clean := layout.Candidate{
		layout.NewIlot(0, geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5}, "", layout.Rot0),
		layout.NewIlot(1, geometry.Rect{X: 5, Y: 5, Width: 5, Height: 4}, "", layout.Rot0),
	}
	// Utilization 0.45; the two rows are 5 apart, more than 3 widths.
	assert.InDelta(t, 45, Fitness(clean, p), 1e-9)

	p.CorridorWidth = 2
	assert.InDelta(t, 65, Fitness(clean, p), 1e-9)

	overlapping := layout.Candidate{
		layout.NewIlot(0, geometry.Rect{Width: 2, Height: 2}, "", layout.Rot0),
		layout.NewIlot(1, geometry.Rect{X: 1, Width: 2, Height: 2}, "", layout.Rot0),
	}
	assert.Zero(t, Fitness(overlapping, p), "fitness is clamped at zero")

	stray := layout.Candidate{layout.NewIlot(0, geometry.Rect{X: 9, Y: 9, Width: 2, Height: 2}, "", layout.Rot0)}
	// 100*0.04 - 30*0.1*4
	assert.InDelta(t, 0, Fitness(stray, p), 1e-9)

	assert.Zero(t, Fitness(nil, p))
}

func TestGreedy(t *testing.T) {
	p := splitFloorProblem()
	out := NewGreedy().Place(p)

	require.NotEmpty(t, out.Candidate)
	assertNoOverlap(t, out.Candidate, p.Tolerances.Overlap)
	assertInsideFree(t, out.Candidate, p.Free)
	assert.LessOrEqual(t, out.Utilization, 100.0)
	for i := 1; i < len(out.Candidate); i++ {
		assert.Less(t, out.Candidate[i-1].ID, out.Candidate[i].ID)
	}
}

func TestRandom(t *testing.T) {
	p := splitFloorProblem()
	calls := 0
	p.Progress = func(int, float64) { calls++ }

	out := NewRandom(smallConfig(), 42).Place(p)

	require.NotEmpty(t, out.Candidate)
	assertNoOverlap(t, out.Candidate, p.Tolerances.Overlap)
	assert.Equal(t, 1, calls)
}

func TestNew(t *testing.T) {
	for _, name := range Algorithms() {
		pl, err := New(name, GeneticConfig{}, 1)
		require.NoError(t, err)
		assert.Equal(t, name, pl.Name())
	}

	pl, err := New("", GeneticConfig{}, 1)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmGenetic, pl.Name())

	_, err = New("simulated-annealing", GeneticConfig{}, 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidAlgorithm, errors.GetCode(err))
}

func TestGeneticConfig_WithDefaults(t *testing.T) {
	cfg := GeneticConfig{PopulationSize: 10, MutationRate: 0.3}.WithDefaults()
	assert.Equal(t, 10, cfg.PopulationSize)
	assert.Equal(t, 100, cfg.Generations)
	assert.Equal(t, 0.3, cfg.MutationRate)
	assert.Equal(t, 0.0, cfg.CrossoverRate, "explicit rates are kept")
	assert.Equal(t, 1, cfg.eliteCount())

	assert.Equal(t, 5, DefaultGeneticConfig().eliteCount())
}
