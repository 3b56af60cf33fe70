package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	planio "github.com/matzehuels/ilotplan/pkg/io"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		output string
		scale  float64
	)
	cmd := &cobra.Command{
		Use:   "classify <plan>",
		Short: "Classify plan entities or an image into zones",
		Long: `Classify turns CAD entities (plan JSON) or a floor plan image into walls,
restricted areas, entrances and exits. The output is itself a plan and can be
edited and passed to optimize.`,
		Example: `  ilotplan classify plan.json -o zones.json
  ilotplan classify floor.png --scale 0.05`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				cfg.Raster.Scale = scale
			}

			in, err := planio.ImportPlan(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			cls, hit, err := runner.ClassifyWithCacheInfo(ctx, in, c.pipelineOptions(cfg))
			if err != nil {
				return err
			}
			prog.done("Classified plan")

			if output == "" {
				return planio.WriteClassification(cls, os.Stdout)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := planio.WriteClassification(cls, f); err != nil {
				return err
			}

			printSuccess("Classified %d zones on a %.1f × %.1f floor", len(cls.Zones), cls.Floor.Width, cls.Floor.Height)
			if hit {
				printDetail("zones from cache")
			}
			if zone.Synthesized(cls.Zones) {
				printWarning("no wall zone found, using the floor boundary")
			}
			for _, a := range cls.Anomalies {
				printWarning("entity %d on layer %q skipped: %s", a.Index, a.Layer, a.Reason)
			}
			fmt.Println(zoneTable(cls))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write zones to this file instead of stdout")
	cmd.Flags().Float64Var(&scale, "scale", 0, "floor units per pixel for image plans")
	return cmd
}
