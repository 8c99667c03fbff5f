package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossbom/crossbom/internal/history"
)

// newRunsCmd creates the runs subcommand.
func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past processing runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := NewUI(outputJSON)

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			if ui.JSON(runs) {
				return nil
			}

			if len(runs) == 0 {
				ui.Info("No runs recorded yet")
				return nil
			}

			for _, r := range runs {
				fmt.Printf("%s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
				fmt.Printf("    %s -> %s (project %s)\n", r.InputFile, r.OutputFile, r.ProjectColumn)
				fmt.Printf("    %d rows, %d matches, %d misses\n",
					r.Stats.TotalProcessed, r.Stats.LookupMatches, r.Stats.LookupMisses)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	return cmd
}
