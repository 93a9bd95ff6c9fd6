package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gazetteer/internal/linker"
)

func newLabelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "label MESSY_CSV",
		Short: "Label candidate pairs interactively and train the classifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("labeling needs an interactive terminal on stdin")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Answer until the pairs look obvious, then finish with f.")

			engine := linker.New(cfg, logger)
			oracle := newConsoleOracle(cmd.InOrStdin(), out)
			report, err := engine.Train(cmd.Context(), args[0], oracle)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Training", "Count"},
				[][]string{
					{"New labels", strconv.Itoa(report.NewLabels)},
					{"Matches", strconv.Itoa(report.Matches)},
					{"Distinct", strconv.Itoa(report.Distinct)},
					{"Unsure", strconv.Itoa(report.Uncertain)},
					{"Predicates", strconv.Itoa(len(report.Predicates))},
				},
				1,
			))
			if report.Covered < report.Positives {
				fmt.Fprintf(out, "Warning: predicates cover %d of %d labeled matches; more labels may improve recall.\n",
					report.Covered, report.Positives)
			}
			fmt.Fprintf(out, "Settings written to %s\n", report.SettingsPath)
			return nil
		},
	}
}
