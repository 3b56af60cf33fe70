package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ilotplan/pkg/corridor"
	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
	"github.com/matzehuels/ilotplan/pkg/observability"
	"github.com/matzehuels/ilotplan/pkg/placement"
	"github.com/matzehuels/ilotplan/pkg/score"
	"github.com/matzehuels/ilotplan/pkg/space"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// Classification is the output of the classify stage.
type Classification struct {
	Floor     geometry.Rect  `json:"floor"`
	Zones     []zone.Zone    `json:"zones"`
	Anomalies []zone.Anomaly `json:"anomalies,omitempty"`
}

// Optimize runs the full pipeline on in without caching.
func Optimize(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var classifyTime time.Duration
	var cls *Classification
	err := runStage(ctx, StageClassify, &classifyTime, func() error {
		var err error
		cls, err = Classify(in, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	res, err := Plan(ctx, cls, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.ClassifyTime = classifyTime
	return res, nil
}

// Classify turns the input into typed zones. Explicit zones are used as
// given, raster input is sampled and CAD entities are classified by layer
// and colour. A boundary wall is synthesized when no wall was found.
func Classify(in Input, opts Options) (*Classification, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	floor, err := in.Floor(opts.Raster)
	if err != nil {
		return nil, err
	}

	cls := &Classification{Floor: floor}
	switch {
	case len(in.Zones) > 0:
		cls.Zones = append([]zone.Zone(nil), in.Zones...)
	case in.Raster != nil:
		cls.Zones = zone.ClassifyRaster(*in.Raster, opts.Raster)
	default:
		cls.Zones, cls.Anomalies = zone.Classify(in.Entities, floor,
			zone.Options{ConnectTolerance: opts.Tolerances.Connect})
	}
	cls.Zones, _ = zone.EnsureBoundary(cls.Zones, floor)

	for _, a := range cls.Anomalies {
		opts.Logger.Debug("skipped entity", "index", a.Index, "layer", a.Layer, "reason", a.Reason)
	}
	return cls, nil
}

// Plan runs every stage after classification: free space, demand planning,
// placement, corridor synthesis and scoring.
func Plan(ctx context.Context, cls *Classification, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	logger := opts.Logger

	res := &Result{
		RunID:     uuid.NewString(),
		Floor:     cls.Floor,
		Zones:     cls.Zones,
		Anomalies: cls.Anomalies,
	}
	res.Stats.ZoneCount = len(cls.Zones)
	if zone.Synthesized(cls.Zones) {
		res.warn(ctx, logger, WarnNoWallZone, "no wall zone found, using the floor boundary")
	}

	// Free space
	err := runStage(ctx, StageSpace, &res.Stats.SpaceTime, func() error {
		res.FreeSpace = space.Free(cls.Floor, cls.Zones, opts.Tolerances.NoiseFloor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	free := res.FreeSpace
	res.Stats.FreeRects = len(free)
	res.Stats.FreeArea = space.Area(free)
	if res.Stats.FreeArea <= 0 {
		res.warn(ctx, logger, WarnZeroFreeArea, "no free floor area remains after removing obstacles")
	}
	logger.Info("free space", "rects", len(free), "area", res.Stats.FreeArea)

	// Demand
	err = runStage(ctx, StagePlan, &res.Stats.PlanTime, func() error {
		res.Requirements = demand.Plan(opts.bands, free)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Stats.Requested = demand.Total(res.Requirements)

	// Placement
	var outcome placement.Outcome
	err = runStage(ctx, StagePlace, &res.Stats.PlaceTime, func() error {
		var err error
		outcome, err = place(ctx, res.Requirements, free, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	ilots := []layout.Ilot(outcome.Candidate)
	if ilots == nil {
		ilots = []layout.Ilot{}
	}
	res.Stats.Placed = len(ilots)
	res.Stats.Fitness = outcome.Fitness
	res.Stats.Generations = outcome.Generations
	logger.Info("placed units", "placed", len(ilots), "requested", res.Stats.Requested,
		"utilization", fmt.Sprintf("%.1f%%", outcome.Utilization))

	if res.Stats.FreeArea > 0 {
		for _, req := range res.Requirements {
			if !hasCategory(ilots, req.Category) {
				res.warn(ctx, logger, WarnUnplaceableBand,
					fmt.Sprintf("no unit of size band %s could be placed", req.Category))
			}
		}
		if len(ilots) < res.Stats.Requested {
			res.warn(ctx, logger, WarnUnplacedUnits,
				fmt.Sprintf("placed %d of %d requested units", len(ilots), res.Stats.Requested))
		}
	}

	// Corridors
	var corridors []layout.Corridor
	err = runStage(ctx, StageCorridors, &res.Stats.CorridorTime, func() error {
		corridors = corridor.Synthesize(ilots, corridor.Options{
			Width:    opts.CorridorWidth,
			Overlap:  opts.Tolerances.Overlap,
			Vertical: opts.VerticalCorridors,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if corridors == nil {
		corridors = []layout.Corridor{}
	}
	res.Stats.CorridorCount = len(corridors)

	// Score
	var value float64
	err = runStage(ctx, StageScore, &res.Stats.ScoreTime, func() error {
		value, res.Features = score.Evaluate(opts.Scorer, ilots, corridors, free, opts.Tolerances)
		res.DistributionAdherence = demand.Adherence(opts.bands, ilots)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Optimization = OptimizationResult{
		Ilots:                 ilots,
		Corridors:             corridors,
		Score:                 value,
		UtilizationPercentage: outcome.Utilization,
		TotalArea:             outcome.TotalArea,
		GenerationTimeSeconds: time.Since(start).Seconds(),
		AlgorithmName:         opts.Algorithm,
	}
	return res, nil
}

// place runs the configured placer. The placer itself is not interruptible,
// so a cancelled context abandons it and its result is discarded.
func place(ctx context.Context, reqs []demand.UnitRequirement, free []geometry.Rect, opts Options) (placement.Outcome, error) {
	placer, err := placement.New(opts.Algorithm, opts.Genetic, opts.Seed)
	if err != nil {
		return placement.Outcome{}, err
	}
	hooks := observability.Pipeline()
	problem := placement.Problem{
		Requirements:  reqs,
		Free:          free,
		CorridorWidth: opts.CorridorWidth,
		Tolerances:    opts.Tolerances,
		Progress:      progress(ctx, hooks, placer.Name(), opts.Logger),
	}

	done := make(chan placement.Outcome, 1)
	go func() { done <- placer.Place(problem) }()
	select {
	case out := <-done:
		return out, nil
	case <-ctx.Done():
		return placement.Outcome{}, ctx.Err()
	}
}

// progress forwards optimizer generations to hooks until ctx ends. An
// abandoned placer keeps reporting after cancellation; those reports are
// dropped.
func progress(ctx context.Context, hooks observability.PipelineHooks, algorithm string, logger *log.Logger) func(int, float64) {
	return func(gen int, best float64) {
		if ctx.Err() != nil {
			return
		}
		hooks.OnGeneration(ctx, algorithm, gen, best)
		logger.Debug("generation", "gen", gen, "best", best)
	}
}

// runStage wraps a stage with hooks, timing and error context.
func runStage(ctx context.Context, stage string, elapsed *time.Duration, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	err := fn()
	*elapsed = time.Since(start)
	hooks.OnStageComplete(ctx, stage, *elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}

func (r *Result) warn(ctx context.Context, logger *log.Logger, kind, msg string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Message: msg})
	logger.Warn(msg, "kind", kind)
	observability.Pipeline().OnWarning(ctx, kind, msg)
}

func hasCategory(ilots []layout.Ilot, category string) bool {
	for _, il := range ilots {
		if il.Category == category {
			return true
		}
	}
	return false
}
