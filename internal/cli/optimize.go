package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ilotplan/pkg/config"
	planio "github.com/matzehuels/ilotplan/pkg/io"
	"github.com/matzehuels/ilotplan/pkg/observability"
	"github.com/matzehuels/ilotplan/pkg/placement"
)

// optimizeFlags are per-invocation overrides of the loaded configuration.
type optimizeFlags struct {
	output        string
	json          bool
	algorithm     string
	seed          uint64
	corridorWidth float64
	vertical      bool
	scale         float64
	refresh       bool
}

func (f *optimizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result JSON to this file")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result JSON to stdout")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "",
		"placement algorithm ("+strings.Join(placement.Algorithms(), ", ")+")")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed")
	cmd.Flags().Float64VarP(&f.corridorWidth, "corridor-width", "w", 0, "corridor width")
	cmd.Flags().BoolVar(&f.vertical, "vertical", false, "also place corridors between facing columns")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "floor units per pixel for image plans")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// apply copies explicitly set flags onto cfg.
func (f *optimizeFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("corridor-width") {
		cfg.CorridorWidth = f.corridorWidth
	}
	if cmd.Flags().Changed("vertical") {
		cfg.VerticalCorridors = f.vertical
	}
	if cmd.Flags().Changed("scale") {
		cfg.Raster.Scale = f.scale
	}
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var flags optimizeFlags
	cmd := &cobra.Command{
		Use:   "optimize <plan>",
		Short: "Place units and corridors on a floor plan",
		Long: `Optimize reads a floor plan (plan JSON or an image), classifies it into zones,
computes the free space and places units according to the size distribution.
Corridors are then inserted between facing rows and the layout is scored.`,
		Example: `  ilotplan optimize plan.json
  ilotplan optimize plan.json -c ilotplan.toml -o result.json
  ilotplan optimize floor.png --scale 0.05 --algorithm greedy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd, args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runOptimize(cmd *cobra.Command, path string, flags *optimizeFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := planio.ImportPlan(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.pipelineOptions(cfg)
	opts.Refresh = flags.refresh

	spinner := newSpinnerWithContext(ctx, "Optimizing layout...")
	restore := c.trackGenerations(spinner, cfg.Genetic.WithDefaults().Generations)
	spinner.Start()
	res, err := runner.Execute(ctx, in, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Optimization failed")
		return err
	}
	spinner.Stop()

	if flags.json {
		return planio.WriteResult(res, os.Stdout)
	}
	printResult(res)
	if flags.output != "" {
		if err := planio.ExportResult(res, flags.output); err != nil {
			return err
		}
		printFile(flags.output)
	} else {
		printNextStep("Save the layout", fmt.Sprintf("%s optimize %s -o result.json", appName, path))
	}
	return nil
}

// trackGenerations mirrors optimizer progress in the spinner until the
// returned function is called.
func (c *CLI) trackGenerations(s *Spinner, total int) (restore func()) {
	return observability.SwapPipelineHooks(
		observability.Tee(observability.Pipeline(), &spinnerHooks{spinner: s, total: total}))
}

type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
	total   int
}

func (h *spinnerHooks) OnGeneration(_ context.Context, algorithm string, gen int, best float64) {
	if algorithm == placement.AlgorithmGenetic {
		h.spinner.Progress(gen, h.total)
		h.spinner.Update(fmt.Sprintf("Optimizing layout (generation %d/%d, best fitness %.1f)", gen, h.total, best))
	}
}
