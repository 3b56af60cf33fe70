package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Timestamps carry hundredths of a second
// so stage timings are readable at debug level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs a completion message with the time elapsed since it was
// created. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Placed 78 units (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// generationEvery limits generation logging to every n-th generation.
const generationEvery = 10

// logHooks reports pipeline and cache events to the CLI logger at debug
// level. Warnings are already logged by the pipeline itself.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnStageStart(_ context.Context, stage string) {
	h.logger.Debug("stage started", "stage", stage)
}

func (h *logHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "stage", stage, "duration", d, "error", err)
		return
	}
	h.logger.Debug("stage done", "stage", stage, "duration", d)
}

func (h *logHooks) OnGeneration(_ context.Context, algorithm string, gen int, best float64) {
	if gen%generationEvery == 0 {
		h.logger.Debug("optimizer progress", "algorithm", algorithm, "generation", gen, "best", best)
	}
}

func (h *logHooks) OnWarning(context.Context, string, string) {}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
