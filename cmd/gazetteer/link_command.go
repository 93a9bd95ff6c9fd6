package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gazetteer/internal/linker"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "link MESSY_CSV OUTPUT_CSV",
		Short: "Link a messy filer CSV against the canonical gazetteer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			engine := linker.New(cfg, logger)
			report, err := engine.Link(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Linking", "Count"},
				[][]string{
					{"Filer records", strconv.Itoa(report.MessyRecords)},
					{"Candidate pairs", strconv.Itoa(report.CandidatePairs)},
					{"Linked records", strconv.Itoa(report.Linked)},
					{"Canonical locals matched", strconv.Itoa(report.CanonicalMatched)},
				},
				1,
			))
			fmt.Fprintf(out, "Output written to %s\n", report.OutputPath)
			return nil
		},
	}
}
