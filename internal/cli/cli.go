// Package cli implements the ilotplan command-line interface.
//
// This package provides commands for classifying floor plans, optimizing
// unit layouts, comparing placement algorithms, training a scoring model
// and managing the result cache. The CLI is built using cobra and logs via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - optimize: Place units and corridors on a floor plan
//   - classify: Classify plan entities or an image into zones
//   - compare: Run several placement algorithms side by side
//   - train: Fit a scoring model from scored feature vectors
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports per-generation optimizer progress.
package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ilotplan/pkg/buildinfo"
	"github.com/matzehuels/ilotplan/pkg/cache"
	"github.com/matzehuels/ilotplan/pkg/config"
	"github.com/matzehuels/ilotplan/pkg/observability"
	"github.com/matzehuels/ilotplan/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the optional TOML configuration file.
	ConfigPath string
	// NoCache disables result caching for this invocation.
	NoCache bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ilotplan places units and corridors on floor plans",
		Long:         `ilotplan classifies a floor plan into walls, restricted areas and entrances, then packs rectangular units (îlots) into the remaining space and connects facing rows with corridors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := newLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "TOML configuration file")
	root.PersistentFlags().BoolVar(&c.NoCache, "no-cache", false, "disable the result cache")

	// Register all subcommands
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.trainCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig loads the configuration named by --config and applies CLI-wide
// overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.NoCache {
		cfg.Cache.Disabled = true
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. An unreachable redis
// cache degrades to no caching rather than failing the command.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	store, err := cfg.OpenCache(ctx)
	if stderrors.Is(err, cache.ErrUnavailable) {
		c.Logger.Warn("cache unavailable, continuing without it", "error", err)
		store = cache.NewNullCache()
	} else if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// pipelineOptions converts the configuration into pipeline options with the
// configured scorer and the CLI logger.
func (c *CLI) pipelineOptions(cfg *config.Config) pipeline.Options {
	opts := cfg.Options()
	opts.Scorer = cfg.LoadScorer(c.Logger)
	opts.Logger = c.Logger
	return opts
}
