// Package pipeline provides the floor-plan optimization pipeline for ilotplan.
//
// This package implements the complete classify → free space → plan → place →
// corridors → score pipeline used by the CLI. By centralizing this logic, every
// entry point validates configuration, reports warnings and caches results the
// same way.
//
// # Architecture
//
// The pipeline consists of six stages:
//
//  1. Classify: Turn CAD entities or raster pixels into typed zones
//  2. Space: Subtract obstacle zones from the floor rectangle
//  3. Plan: Convert the size distribution into unit requirements
//  4. Place: Position units with the selected placement algorithm
//  5. Corridors: Insert corridors between facing rows of units
//  6. Score: Rate the finished layout
//
// Every stage is a pure function of its inputs. Only configuration errors
// stop a run; degenerate inputs produce a well-formed, possibly empty result
// together with [Warning] entries.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SizeDistribution: []demand.SizeBand{{MinSize: 1, MaxSize: 3, Percentage: 100}},
//	    CorridorWidth:    1.5,
//	}
//	result, err := runner.Execute(ctx, pipeline.Input{Width: 20, Height: 10, Entities: entities}, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Optimization.UtilizationPercentage)
//
// Or call [Optimize] directly to run without caching.
package pipeline

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ilotplan/pkg/cache"
	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
	"github.com/matzehuels/ilotplan/pkg/placement"
	"github.com/matzehuels/ilotplan/pkg/score"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultCorridorWidth is used by configuration defaults. The pipeline
	// itself rejects a zero width rather than defaulting it.
	DefaultCorridorWidth = 2.0
)

// Stage names reported to observability hooks.
const (
	StageClassify  = "classify"
	StageSpace     = "space"
	StagePlan      = "plan"
	StagePlace     = "place"
	StageCorridors = "corridors"
	StageScore     = "score"
)

// Warning kinds.
const (
	WarnZeroFreeArea    = "zero_free_area"
	WarnUnplaceableBand = "unplaceable_band"
	WarnNoWallZone      = "no_wall_zone"
	WarnUnplacedUnits   = "unplaced_units"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an optimization run.
type Options struct {
	// Demand
	SizeDistribution []demand.SizeBand `json:"size_distribution,omitempty"`
	MinRoomSize      float64           `json:"min_room_size,omitempty"`
	MaxRoomSize      float64           `json:"max_room_size,omitempty"`

	// Placement
	Algorithm string                  `json:"algorithm,omitempty"`
	Seed      uint64                  `json:"seed,omitempty"`
	Genetic   placement.GeneticConfig `json:"genetic"`

	// Corridors
	CorridorWidth     float64 `json:"corridor_width"`
	VerticalCorridors bool    `json:"vertical_corridors,omitempty"`

	// Classification and geometry
	Tolerances geometry.Tolerances `json:"tolerances"`
	Raster     zone.RasterOptions  `json:"raster"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Scorer score.Scorer `json:"-"`
	Logger *log.Logger  `json:"-"`

	// bands is the resolved, validated size distribution.
	bands []demand.SizeBand
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the configuration and applies defaults.
// Configuration problems are reported as CONFIGURATION errors (or
// INVALID_ALGORITHM) before any work starts; nothing is silently corrected.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateCorridorWidth(o.CorridorWidth); err != nil {
		return err
	}
	bands, err := demand.Bounded(o.SizeDistribution, o.MinRoomSize, o.MaxRoomSize)
	if err != nil {
		return err
	}
	if err := demand.Validate(bands); err != nil {
		return err
	}
	o.bands = bands

	if o.Algorithm == "" {
		o.Algorithm = placement.DefaultAlgorithm
	}
	o.Algorithm = strings.ToLower(o.Algorithm)
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.Genetic = o.Genetic.WithDefaults()
	o.Tolerances = o.Tolerances.WithDefaults()

	if o.Scorer == nil {
		o.Scorer = score.Heuristic{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Bands returns the effective size distribution. It is only populated after
// ValidateAndSetDefaults.
func (o *Options) Bands() []demand.SizeBand { return o.bands }

// ValidateAlgorithm checks that name is a registered placement algorithm.
func ValidateAlgorithm(name string) error {
	for _, a := range placement.Algorithms() {
		if a == name {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidAlgorithm,
		"invalid algorithm: %q (must be one of: %s)", name, strings.Join(placement.Algorithms(), ", "))
}

// ZonesKeySettings returns the options that change classification output.
func (o *Options) ZonesKeySettings() any {
	return struct {
		Connect float64            `json:"connect"`
		Raster  zone.RasterOptions `json:"raster"`
	}{o.Tolerances.Connect, o.Raster}
}

// ResultKeyOpts returns cache key options for an optimization result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	scorer := ""
	if o.Scorer != nil {
		scorer = o.Scorer.Name()
		if fp, ok := o.Scorer.(score.Fingerprinter); ok {
			scorer += ":" + fp.Fingerprint()
		}
	}
	return cache.ResultKeyOpts{
		Algorithm: o.Algorithm,
		Seed:      o.Seed,
		Settings: struct {
			Bands      []demand.SizeBand       `json:"bands"`
			Corridor   float64                 `json:"corridor_width"`
			Vertical   bool                    `json:"vertical"`
			Genetic    placement.GeneticConfig `json:"genetic"`
			Tolerances geometry.Tolerances     `json:"tolerances"`
			Raster     zone.RasterOptions      `json:"raster"`
			Scorer     string                  `json:"scorer"`
		}{o.bands, o.CorridorWidth, o.VerticalCorridors, o.Genetic, o.Tolerances, o.Raster, scorer},
	}
}

// =============================================================================
// Input
// =============================================================================

// Input is a floor plan to optimize. Exactly one of Zones, Entities or
// Raster is normally set; Zones takes precedence, then Raster, then
// Entities. An input with none of them is an empty floor.
type Input struct {
	// Width and Height of the floor. For raster input they may be zero, in
	// which case the image size times the raster scale is used.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Entities []zone.Entity     `json:"entities,omitempty"`
	Zones    []zone.Zone       `json:"zones,omitempty"`
	Raster   *zone.PixelBuffer `json:"-"`
}

// Floor returns the floor rectangle.
func (in Input) Floor(raster zone.RasterOptions) (geometry.Rect, error) {
	w, h := in.Width, in.Height
	if in.Raster != nil && (w == 0 || h == 0) {
		scale := raster.Scale
		if scale <= 0 {
			scale = 1
		}
		w, h = float64(in.Raster.Width)*scale, float64(in.Raster.Height)*scale
	}
	if err := errors.ValidateFloor(w, h); err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{Width: w, Height: h}, nil
}

// Hash returns the content hash of the input using keyer.
func (in Input) Hash(keyer cache.Keyer) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode input")
	}
	if in.Raster != nil {
		var dims [24]byte
		binary.LittleEndian.PutUint64(dims[0:], uint64(in.Raster.Width))
		binary.LittleEndian.PutUint64(dims[8:], uint64(in.Raster.Height))
		binary.LittleEndian.PutUint64(dims[16:], uint64(in.Raster.Channels))
		data = append(data, dims[:]...)
		data = append(data, in.Raster.Pix...)
	}
	return keyer.PlanHash(data), nil
}

// =============================================================================
// Result
// =============================================================================

// OptimizationResult is the externally visible outcome of a run.
type OptimizationResult struct {
	Ilots                 []layout.Ilot     `json:"ilots"`
	Corridors             []layout.Corridor `json:"corridors"`
	Score                 float64           `json:"score"`
	UtilizationPercentage float64           `json:"utilization_percentage"`
	TotalArea             float64           `json:"total_area"`
	GenerationTimeSeconds float64           `json:"generation_time_seconds"`
	AlgorithmName         string            `json:"algorithm_name"`
}

// Warning is a non-fatal degenerate-input condition.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run that produced the result.
	RunID string `json:"run_id"`

	Floor        geometry.Rect            `json:"floor"`
	Zones        []zone.Zone              `json:"zones"`
	Anomalies    []zone.Anomaly           `json:"anomalies,omitempty"`
	FreeSpace    []geometry.Rect          `json:"free_space"`
	Requirements []demand.UnitRequirement `json:"requirements"`

	Optimization OptimizationResult `json:"optimization"`

	// Features is the vector the score was computed from.
	Features score.Features `json:"features"`
	// DistributionAdherence is how closely placed area follows the
	// requested distribution, from 0 to 100.
	DistributionAdherence float64 `json:"distribution_adherence"`

	Warnings []Warning `json:"warnings,omitempty"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ZoneCount     int           `json:"zone_count"`
	FreeRects     int           `json:"free_rects"`
	FreeArea      float64       `json:"free_area"`
	Requested     int           `json:"requested"`
	Placed        int           `json:"placed"`
	CorridorCount int           `json:"corridor_count"`
	Fitness       float64       `json:"fitness"`
	Generations   int           `json:"generations"`
	ClassifyTime  time.Duration `json:"classify_time"`
	SpaceTime     time.Duration `json:"space_time"`
	PlanTime      time.Duration `json:"plan_time"`
	PlaceTime     time.Duration `json:"place_time"`
	CorridorTime  time.Duration `json:"corridor_time"`
	ScoreTime     time.Duration `json:"score_time"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ZonesHit  bool // Whether classified zones came from cache
	ResultHit bool // Whether the whole result came from cache
}

// HasWarning reports whether the result carries a warning of kind.
func (r *Result) HasWarning(kind string) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
