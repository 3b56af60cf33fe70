package observability

import (
	"context"
	"testing"
	"time"
)

// recorder counts pipeline events.
type recorder struct {
	NoopPipelineHooks
	stages      []string
	generations int
	warnings    []string
}

func (r *recorder) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	r.stages = append(r.stages, stage)
}

func (r *recorder) OnGeneration(context.Context, string, int, float64) { r.generations++ }

func (r *recorder) OnWarning(_ context.Context, kind, _ string) {
	r.warnings = append(r.warnings, kind)
}

func TestDefaultsAreNoop(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}

	ctx := context.Background()
	Pipeline().OnGeneration(ctx, "genetic", 1, 3.5)
	Cache().OnCacheSet(ctx, "result", 128)
}

func TestSetNilIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)

	if Pipeline() != rec {
		t.Error("nil pipeline hooks replaced the installed ones")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil cache hooks replaced the defaults")
	}
}

func TestTee(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	h := Tee(a, nil, b)
	ctx := context.Background()

	h.OnStageStart(ctx, "place")
	h.OnStageComplete(ctx, "place", time.Millisecond, nil)
	h.OnGeneration(ctx, "genetic", 1, 10)
	h.OnGeneration(ctx, "genetic", 2, 12)
	h.OnWarning(ctx, "unplaced_units", "3 units could not be placed")

	for name, r := range map[string]*recorder{"a": a, "b": b} {
		if len(r.stages) != 1 || r.stages[0] != "place" {
			t.Errorf("%s stages = %v", name, r.stages)
		}
		if r.generations != 2 {
			t.Errorf("%s generations = %d, want 2", name, r.generations)
		}
		if len(r.warnings) != 1 {
			t.Errorf("%s warnings = %v", name, r.warnings)
		}
	}
}

func TestSwapPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)
	base, overlay := &recorder{}, &recorder{}
	SetPipelineHooks(base)

	restore := SwapPipelineHooks(Tee(Pipeline(), overlay))
	Pipeline().OnGeneration(context.Background(), "genetic", 1, 1)
	restore()
	Pipeline().OnGeneration(context.Background(), "genetic", 2, 1)

	if base.generations != 2 {
		t.Errorf("base saw %d generations, want 2", base.generations)
	}
	if overlay.generations != 1 {
		t.Errorf("overlay saw %d generations, want 1", overlay.generations)
	}
}
