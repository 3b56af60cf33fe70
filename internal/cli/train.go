package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	planio "github.com/matzehuels/ilotplan/pkg/io"
	"github.com/matzehuels/ilotplan/pkg/score"
)

// trainCommand creates the train command.
func (c *CLI) trainCommand() *cobra.Command {
	var (
		output string
		fit    = score.DefaultFitOptions()
	)
	cmd := &cobra.Command{
		Use:   "train <samples.json>",
		Short: "Fit a scoring model from scored feature vectors",
		Long: `Train fits the trained scorer on a JSON array of {"features": {...}, "score": n}
samples and writes the model as TOML. Point [scorer] model in the configuration
at the file to use it; the heuristic scorer remains the fallback.`,
		Example: `  ilotplan train samples.json -o model.toml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := planio.ImportSamples(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			model, err := score.Fit(samples, fit)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fitted model on %d samples", model.Samples))

			if err := model.Save(output); err != nil {
				return err
			}
			printSuccess("Trained scoring model")
			printKeyValue("Samples", StyleNumber.Render(fmt.Sprintf("%d", model.Samples)))
			printKeyValue("Loss", StyleNumber.Render(fmt.Sprintf("%.4f", model.Loss)))
			printFile(output)
			printNextStep("Use it", fmt.Sprintf("ILOTPLAN_SCORER_MODEL=%s %s optimize plan.json", output, appName))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "model.toml", "model file to write")
	cmd.Flags().IntVar(&fit.Epochs, "epochs", fit.Epochs, "gradient descent epochs")
	cmd.Flags().Float64Var(&fit.LearningRate, "learning-rate", fit.LearningRate, "gradient descent step size")
	return cmd
}
