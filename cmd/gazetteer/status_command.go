package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gazetteer/internal/linker"
	"gazetteer/internal/settings"
	"gazetteer/internal/training"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show trained settings and accumulated labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			engine := linker.New(cfg, logger)
			st, err := engine.Settings()
			switch {
			case errors.Is(err, settings.ErrNotFound):
				fmt.Fprintln(out, "No trained settings yet; run \"gazetteer label\" first.")
			case err != nil:
				return err
			default:
				rows := [][]string{
					{"Trained at", st.TrainedAt.Local().Format(time.RFC1123)},
					{"Comparator fields", strconv.Itoa(len(st.Fields))},
					{"Predicates", strconv.Itoa(len(st.Predicates))},
				}
				for i, predicate := range st.Predicates {
					rows = append(rows, []string{
						fmt.Sprintf("Predicate %d", i+1),
						predicate.String(),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Settings", "Value"}, rows))
			}

			if _, statErr := os.Stat(cfg.TrainingDBPath()); statErr != nil {
				fmt.Fprintln(out, "No labels collected yet.")
				return nil
			}
			store, err := training.Open(cfg.TrainingDBPath())
			if err != nil {
				return err
			}
			defer store.Close()
			matches, distinct, uncertain, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Labels", "Count"},
				[][]string{
					{"Matches", strconv.Itoa(matches)},
					{"Distinct", strconv.Itoa(distinct)},
					{"Unsure", strconv.Itoa(uncertain)},
				},
				1,
			))
			return nil
		},
	}
}
