package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossbom/crossbom/internal/sheet"
	"github.com/crossbom/crossbom/internal/suggest"
)

func newSuggester() *suggest.Suggester {
	return suggest.NewWithWindow(suggest.Window{
		Start: cfg.Columns.WindowStart,
		End:   cfg.Columns.WindowEnd,
	})
}

// newColumnsCmd creates the columns subcommand.
func newColumnsCmd() *cobra.Command {
	var masterPath string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Analyze the Master BOM's candidate project columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := NewUI(outputJSON)

			if masterPath == "" {
				masterPath = cfg.Paths.MasterBOM
			}
			catalog, err := sheet.ReadFile(masterPath)
			if err != nil {
				return fmt.Errorf("read master bom: %w", err)
			}

			analysis := newSuggester().AnalyzeColumns(catalog)
			if ui.JSON(analysis) {
				return nil
			}

			ui.Info("%d candidate columns in %s", analysis.TotalColumns, masterPath)
			for _, c := range analysis.Columns {
				marker := " "
				if c.StatusLike {
					marker = "*"
				}
				fmt.Printf("  %s %-40s %5.1f%% filled (%d/%d)\n",
					marker, c.Name, c.FillPercentage, c.FillCount, c.TotalCount)
			}
			if analysis.TotalColumns > 0 {
				ui.Info("* column carries activation status values")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&masterPath, "master", "m", "", "Master BOM file (default: from config)")
	return cmd
}

// newSuggestCmd creates the suggest subcommand.
func newSuggestCmd() *cobra.Command {
	var masterPath string

	cmd := &cobra.Command{
		Use:   "suggest <hint>",
		Short: "Suggest the Master BOM project column for a program hint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := NewUI(outputJSON)
			hint := args[0]

			if masterPath == "" {
				masterPath = cfg.Paths.MasterBOM
			}
			catalog, err := sheet.ReadFile(masterPath)
			if err != nil {
				return fmt.Errorf("read master bom: %w", err)
			}

			column, confidence, _ := newSuggester().FindBestProjectColumn(catalog, hint)
			if column == "" {
				return fmt.Errorf("no candidate columns found in %s", masterPath)
			}

			if ui.JSON(map[string]any{"column": column, "confidence": confidence}) {
				return nil
			}

			if confidence >= suggest.Threshold {
				ui.Success("%s (confidence %.2f)", column, confidence)
			} else {
				ui.Warning("%s (low confidence %.2f) - verify before processing", column, confidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&masterPath, "master", "m", "", "Master BOM file (default: from config)")
	return cmd
}
