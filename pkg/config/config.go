// Package config loads ilotplan settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, when a path is given
//  3. Environment variables prefixed with ILOTPLAN_
//
// The merged configuration is validated before use. Every problem is
// reported as a CONFIGURATION error so the pipeline never starts with a
// distribution that does not sum to 100% or a non-positive corridor width.
//
// # File Format
//
//	corridor_width = 1.5
//	algorithm = "genetic"
//	seed = 7
//
//	[[size_distribution]]
//	min_size = 1
//	max_size = 3
//	percentage = 100
//
//	[genetic]
//	population_size = 80
//	generations = 150
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
// # Environment
//
// Scalar settings can be overridden from the environment, for example
// ILOTPLAN_CORRIDOR_WIDTH, ILOTPLAN_GENETIC_GENERATIONS,
// ILOTPLAN_TOLERANCE_NOISE_FLOOR or ILOTPLAN_CACHE_REDIS_URL. The size
// distribution can only be set in the file.
package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/ilotplan/pkg/cache"
	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/pipeline"
	"github.com/matzehuels/ilotplan/pkg/placement"
	"github.com/matzehuels/ilotplan/pkg/score"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ILOTPLAN_"

// AppName names the cache directory.
const AppName = "ilotplan"

// =============================================================================
// Config
// =============================================================================

// Config is the complete user-facing configuration.
type Config struct {
	SizeDistribution  []demand.SizeBand `toml:"size_distribution" validate:"dive"`
	CorridorWidth     float64           `toml:"corridor_width" env:"CORRIDOR_WIDTH" validate:"gt=0"`
	VerticalCorridors bool              `toml:"vertical_corridors" env:"VERTICAL_CORRIDORS"`
	MinRoomSize       float64           `toml:"min_room_size" env:"MIN_ROOM_SIZE" validate:"gte=0"`
	MaxRoomSize       float64           `toml:"max_room_size" env:"MAX_ROOM_SIZE" validate:"gte=0"`
	Algorithm         string            `toml:"algorithm" env:"ALGORITHM" validate:"omitempty,oneof=genetic greedy random"`
	Seed              uint64            `toml:"seed" env:"SEED"`

	Genetic    placement.GeneticConfig `toml:"genetic" envPrefix:"GENETIC_"`
	Tolerances geometry.Tolerances     `toml:"tolerances" envPrefix:"TOLERANCE_"`
	Raster     RasterConfig            `toml:"raster" envPrefix:"RASTER_"`
	Scorer     ScorerConfig            `toml:"scorer" envPrefix:"SCORER_"`
	Cache      CacheConfig             `toml:"cache" envPrefix:"CACHE_"`
}

// RasterConfig controls image classification.
type RasterConfig struct {
	BlockStride    int     `toml:"block_stride" env:"BLOCK_STRIDE" validate:"gte=0"`
	ColorTolerance int     `toml:"color_tolerance" env:"COLOR_TOLERANCE" validate:"gte=0,lte=255"`
	MinClusterSize int     `toml:"min_cluster_size" env:"MIN_CLUSTER_SIZE" validate:"gte=0"`
	Scale          float64 `toml:"scale" env:"SCALE" validate:"gte=0"`
}

// ScorerConfig selects the quality scorer.
type ScorerConfig struct {
	// Model is the path of a trained model. Empty selects the heuristic.
	Model string `toml:"model" env:"MODEL"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Disabled      bool   `toml:"disabled" env:"DISABLED"`
	Dir           string `toml:"dir" env:"DIR"`
	RedisURL      string `toml:"redis_url" env:"REDIS_URL" validate:"omitempty,url"`
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB" validate:"gte=0"`
	Prefix        string `toml:"prefix" env:"PREFIX"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SizeDistribution: append([]demand.SizeBand(nil), demand.DefaultBands...),
		CorridorWidth:    pipeline.DefaultCorridorWidth,
		Algorithm:        placement.DefaultAlgorithm,
		Seed:             pipeline.DefaultSeed,
		Genetic:          placement.DefaultGeneticConfig(),
		Tolerances:       geometry.DefaultTolerances(),
		Raster: RasterConfig{
			BlockStride:    zone.DefaultBlockStride,
			ColorTolerance: zone.DefaultColorTolerance,
			MinClusterSize: zone.DefaultMinClusterSize,
			Scale:          1,
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the configuration file at path (optional) and applies
// environment overrides from the process environment.
func Load(path string) (*Config, error) {
	return load(path, nil)
}

// load is Load with an explicit environment. A nil environ reads the
// process environment.
func load(path string, environ map[string]string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, firstEnvError(err), "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	// A configured distribution replaces the default bands wholesale.
	c.SizeDistribution = nil
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "config %s", path)
	}
	if len(c.SizeDistribution) == 0 {
		c.SizeDistribution = append([]demand.SizeBand(nil), demand.DefaultBands...)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeConfiguration, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// firstEnvError unwraps an aggregate so that only the first problem is
// reported.
func firstEnvError(err error) error {
	var agg env.AggregateError
	if stderrors.As(err, &agg) && len(agg.Errors) > 0 {
		return agg.Errors[0]
	}
	return err
}

// =============================================================================
// Validation
// =============================================================================

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and the size distribution.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeConfiguration,
				"invalid %s: %v fails %q", fieldPath(fe.Namespace()), fe.Value(), fe.Tag())
		}
		return errors.Wrap(errors.ErrCodeConfiguration, err, "validate")
	}
	if err := errors.ValidateCorridorWidth(c.CorridorWidth); err != nil {
		return err
	}
	bands, err := demand.Bounded(c.SizeDistribution, c.MinRoomSize, c.MaxRoomSize)
	if err != nil {
		return err
	}
	return demand.Validate(bands)
}

// fieldPath drops the root type from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// =============================================================================
// Conversion
// =============================================================================

// Options converts the configuration to pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		SizeDistribution:  c.SizeDistribution,
		MinRoomSize:       c.MinRoomSize,
		MaxRoomSize:       c.MaxRoomSize,
		Algorithm:         c.Algorithm,
		Seed:              c.Seed,
		Genetic:           c.Genetic,
		CorridorWidth:     c.CorridorWidth,
		VerticalCorridors: c.VerticalCorridors,
		Tolerances:        c.Tolerances,
		Raster: zone.RasterOptions{
			BlockStride:    c.Raster.BlockStride,
			ColorTolerance: c.Raster.ColorTolerance,
			MinClusterSize: c.Raster.MinClusterSize,
			Scale:          c.Raster.Scale,
		},
	}
}

// LoadScorer returns the configured scorer. Without a model the heuristic
// is used. A model that cannot be loaded is logged and replaced by the
// heuristic so that a broken model file never blocks optimization.
func (c *Config) LoadScorer(logger *log.Logger) score.Scorer {
	if c.Scorer.Model == "" {
		return score.Heuristic{}
	}
	m, err := score.LoadModel(c.Scorer.Model)
	if err != nil {
		logger.Warn("falling back to heuristic scorer", "model", c.Scorer.Model, "error", err)
		return score.Heuristic{}
	}
	logger.Debug("loaded scoring model", "model", c.Scorer.Model, "samples", m.Samples)
	return score.NewTrained(m)
}

// OpenCache returns the configured cache backend: none when disabled, redis
// when a redis URL or address is set, otherwise a file cache under
// CacheDir.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	cc := c.Cache
	switch {
	case cc.Disabled:
		return cache.NewNullCache(), nil
	case cc.RedisURL != "" || cc.RedisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:      cc.RedisURL,
			Addr:     cc.RedisAddr,
			Password: cc.RedisPassword,
			DB:       cc.RedisDB,
			Prefix:   cc.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// CacheDir returns the file cache directory: the configured one, or the XDG
// cache home (~/.cache/ilotplan).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}
