package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ilotplan/pkg/cache"
	"github.com/matzehuels/ilotplan/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete classify → place → score pipeline with caching.
// Identical inputs and options return the cached result unless opts.Refresh
// is set.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	planHash, err := in.Hash(r.Keyer)
	if err != nil {
		return nil, err
	}
	resultKey := r.Keyer.ResultKey(planHash, opts.ResultKeyOpts())

	if !opts.Refresh {
		var cached Result
		if r.load(ctx, "result", resultKey, &cached) {
			cached.CacheInfo.ResultHit = true
			r.Logger.Info("using cached result", "run", cached.RunID)
			return &cached, nil
		}
	}

	classifyStart := time.Now()
	cls, zonesHit, err := r.classify(ctx, planHash, in, opts)
	if err != nil {
		return nil, err
	}
	classifyTime := time.Since(classifyStart)
	r.Logger.Info("classified zones",
		"zones", len(cls.Zones),
		"anomalies", len(cls.Anomalies),
		"cached", zonesHit,
		"duration", classifyTime)

	result, err := Plan(ctx, cls, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ClassifyTime = classifyTime
	result.CacheInfo.ZonesHit = zonesHit

	r.Logger.Info("optimized layout",
		"algorithm", result.Optimization.AlgorithmName,
		"ilots", len(result.Optimization.Ilots),
		"corridors", len(result.Optimization.Corridors),
		"score", result.Optimization.Score,
		"duration", result.Stats.PlaceTime)

	r.store(ctx, "result", resultKey, result, cache.TTLResult)
	return result, nil
}

// ClassifyWithCacheInfo classifies the input with caching and reports
// whether the zones came from cache.
func (r *Runner) ClassifyWithCacheInfo(ctx context.Context, in Input, opts Options) (*Classification, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	planHash, err := in.Hash(r.Keyer)
	if err != nil {
		return nil, false, err
	}
	return r.classify(ctx, planHash, in, opts)
}

// Classify is a convenience wrapper that calls ClassifyWithCacheInfo and discards the cache hit info.
func (r *Runner) Classify(ctx context.Context, in Input, opts Options) (*Classification, error) {
	cls, _, err := r.ClassifyWithCacheInfo(ctx, in, opts)
	return cls, err
}

func (r *Runner) classify(ctx context.Context, planHash string, in Input, opts Options) (*Classification, bool, error) {
	key := r.Keyer.ZonesKey(planHash, opts.ZonesKeySettings())
	if !opts.Refresh {
		var cached Classification
		if r.load(ctx, "zones", key, &cached) {
			return &cached, true, nil
		}
	}

	var cls *Classification
	var elapsed time.Duration
	err := runStage(ctx, StageClassify, &elapsed, func() error {
		var err error
		cls, err = Classify(in, opts)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, "zones", key, cls, cache.TTLZones)
	return cls, false, nil
}

// load decodes a cached entry into v. Decode failures count as a miss so
// that the entry is recomputed and overwritten.
func (r *Runner) load(ctx context.Context, keyType, key string, v any) bool {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		hooks.OnCacheMiss(ctx, keyType)
		return false
	}
	hooks.OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Debug("skipping cache write", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
