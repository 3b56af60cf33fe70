// Package observability lets callers watch an optimization run without the
// library depending on a logging or metrics backend.
//
// Two event families exist: [PipelineHooks] for stage timings, optimizer
// progress and degenerate-input warnings, and [CacheHooks] for result and
// zone cache traffic. Both default to no-ops. A process installs its own
// implementations once at startup:
//
//	observability.SetPipelineHooks(myHooks)
//	observability.SetCacheHooks(myHooks)
//
// Temporary observers, such as a progress spinner, are layered on top of
// the installed hooks with [Tee] and [SwapPipelineHooks]:
//
//	restore := observability.SwapPipelineHooks(
//	    observability.Tee(observability.Pipeline(), spinner))
//	defer restore()
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Events
// =============================================================================

// PipelineHooks receives events from the optimization pipeline. Stage names
// are the pipeline.Stage* constants.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnGeneration reports the best fitness after each optimizer generation.
	// Non-iterative placers report a single generation.
	OnGeneration(ctx context.Context, algorithm string, generation int, best float64)

	// OnWarning reports a degenerate-input condition that did not stop the run.
	OnWarning(ctx context.Context, kind, message string)
}

// CacheHooks receives events from the pipeline runner's cache lookups.
// keyType is "zones" or "result".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnGeneration(context.Context, string, int, float64)            {}
func (NoopPipelineHooks) OnWarning(context.Context, string, string)                     {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Fan-out
// =============================================================================

// Tee returns hooks that forward every event to each of hs in order. Nil
// entries are skipped.
func Tee(hs ...PipelineHooks) PipelineHooks {
	out := make(tee, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type tee []PipelineHooks

func (t tee) OnStageStart(ctx context.Context, stage string) {
	for _, h := range t {
		h.OnStageStart(ctx, stage)
	}
}

func (t tee) OnStageComplete(ctx context.Context, stage string, d time.Duration, err error) {
	for _, h := range t {
		h.OnStageComplete(ctx, stage, d, err)
	}
}

func (t tee) OnGeneration(ctx context.Context, algorithm string, gen int, best float64) {
	for _, h := range t {
		h.OnGeneration(ctx, algorithm, gen, best)
	}
}

func (t tee) OnWarning(ctx context.Context, kind, message string) {
	for _, h := range t {
		h.OnWarning(ctx, kind, message)
	}
}

// =============================================================================
// Registry
// =============================================================================

var registry struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

func init() { Reset() }

// SetPipelineHooks installs h as the process-wide pipeline hooks. A nil h
// is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SwapPipelineHooks installs h and returns a function restoring the hooks
// it replaced.
func SwapPipelineHooks(h PipelineHooks) (restore func()) {
	prev := Pipeline()
	SetPipelineHooks(h)
	return func() { SetPipelineHooks(prev) }
}

// SetCacheHooks installs h as the process-wide cache hooks. A nil h is
// ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	registry.Lock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.Unlock()
}
