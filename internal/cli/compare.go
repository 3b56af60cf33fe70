package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	planio "github.com/matzehuels/ilotplan/pkg/io"
	"github.com/matzehuels/ilotplan/pkg/pipeline"
	"github.com/matzehuels/ilotplan/pkg/placement"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		algorithms  []string
		output      string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "compare <plan>",
		Short: "Run several placement algorithms side by side",
		Long: `Compare optimizes the same plan with each placement algorithm concurrently
and prints the results ranked by score. With --output the best layout is saved;
with --interactive the layout to save is picked from a list.`,
		Example: `  ilotplan compare plan.json
  ilotplan compare plan.json --algorithms genetic,greedy -o best.json
  ilotplan compare plan.json -i -o chosen.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			for _, a := range algorithms {
				if err := pipeline.ValidateAlgorithm(strings.ToLower(a)); err != nil {
					return err
				}
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

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %d algorithms...", len(algorithms)))
			spinner.Start()
			base := c.pipelineOptions(cfg)
			results := make([]*pipeline.Result, len(algorithms))
			g, gctx := errgroup.WithContext(ctx)
			for i, name := range algorithms {
				g.Go(func() error {
					opts := base
					opts.Algorithm = name
					res, err := runner.Execute(gctx, in, opts)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				spinner.StopWithError("Comparison failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Compared %d algorithms", len(algorithms)))

			rankResults(results)
			fmt.Println(compareTable(results))
			for _, w := range results[0].Warnings {
				printWarning("%s", w.Message)
			}

			chosen := results[0]
			if interactive {
				picked, err := pickResult(results)
				if err != nil {
					return err
				}
				if picked == nil {
					printInfo("No layout selected")
					return nil
				}
				chosen = picked
			}
			if output == "" {
				return nil
			}
			if err := planio.ExportResult(chosen, output); err != nil {
				return err
			}
			printSuccess("Saved %s layout", StyleHighlight.Render(chosen.Optimization.AlgorithmName))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&algorithms, "algorithms", placement.Algorithms(), "algorithms to compare")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the chosen layout to this file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the layout to save interactively")
	return cmd
}

// rankResults orders results by score, then utilization, best first.
func rankResults(results []*pipeline.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Optimization, results[j].Optimization
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.UtilizationPercentage > b.UtilizationPercentage
	})
}

// pickResult runs the interactive picker and returns the chosen result, or
// nil when the user quits without choosing.
func pickResult(results []*pipeline.Result) (*pipeline.Result, error) {
	final, err := tea.NewProgram(NewResultListModel(results)).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	return final.(ResultListModel).Selected, nil
}
