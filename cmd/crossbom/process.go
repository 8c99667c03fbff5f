package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/crossbom/crossbom/internal/clean"
	"github.com/crossbom/crossbom/internal/history"
	"github.com/crossbom/crossbom/internal/process"
	"github.com/crossbom/crossbom/internal/sheet"
)

// newProcessCmd creates the process subcommand.
func newProcessCmd() *cobra.Command {
	var (
		masterPath    string
		projectColumn string
		keyColumn     string
		outputPath    string
		noHistory     bool
	)

	cmd := &cobra.Command{
		Use:   "process <input-file>",
		Short: "Cross-reference an input file against the Master BOM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := NewUI(outputJSON)
			inputPath := args[0]

			if masterPath == "" {
				masterPath = cfg.Paths.MasterBOM
			}
			if projectColumn == "" {
				projectColumn = cfg.Columns.DefaultProject
			}

			input, err := sheet.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			catalog, err := sheet.ReadFile(masterPath)
			if err != nil {
				return fmt.Errorf("read master bom: %w", err)
			}

			cleaner := clean.New(clean.Options{
				Uppercase:      cfg.Cleaning.Uppercase,
				StripNonASCII:  cfg.Cleaning.StripNonASCII,
				ExcludeInvalid: cfg.Cleaning.ExcludeInvalid,
			}, logger)
			cleaned := cleaner.Clean(input)
			if cleaned.Stats.RowsExcluded > 0 {
				ui.Warning("%d rows excluded: missing part number or project", cleaned.Stats.RowsExcluded)
			}

			stop := ui.Spinner("cross-referencing...")
			res, err := process.New(logger).Process(cleaned.Table, catalog, projectColumn, keyColumn)
			stop()
			if err != nil {
				return fmt.Errorf("process: %w", err)
			}

			runID := uuid.New()
			if outputPath == "" {
				base := filepath.Base(inputPath)
				stem := strings.TrimSuffix(base, filepath.Ext(base))
				outputPath = filepath.Join(cfg.Paths.OutputDir,
					fmt.Sprintf("%s_processed_%s.xlsx", stem, runID.String()[:8]))
			}

			err = sheet.WriteFile(outputPath, res.Output, sheet.WriteOptions{
				Colors: sheet.HighlightColors{
					Updated: cfg.Highlight.Updated,
					Added:   cfg.Highlight.Added,
					Skipped: cfg.Highlight.Skipped,
				},
				Summary: []sheet.SummaryEntry{
					{Label: "Project column", Value: res.ProjectColumn},
					{Label: "Total processed", Value: res.Stats.TotalProcessed},
					{Label: "Lookup matches", Value: res.Stats.LookupMatches},
					{Label: "Lookup misses", Value: res.Stats.LookupMisses},
					{Label: "Match rate %", Value: res.Stats.MatchRatePct},
				},
			})
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if cfg.History.Enabled && !noHistory {
				if err := recordRun(cmd, runID, inputPath, masterPath, outputPath, res); err != nil {
					ui.Warning("run not recorded: %v", err)
				}
			}

			if ui.JSON(map[string]any{
				"run_id":         runID.String(),
				"output_file":    outputPath,
				"project_column": res.ProjectColumn,
				"stats":          res.Stats,
				"cleaning":       cleaned.Stats,
			}) {
				return nil
			}

			ui.Success("Processed %d rows against %q", res.Stats.TotalProcessed, res.ProjectColumn)
			ui.Info("Matches: %d (%.1f%%)  Misses: %d (%.1f%%)",
				res.Stats.LookupMatches, res.Stats.MatchRatePct,
				res.Stats.LookupMisses, res.Stats.MissRatePct)
			ui.Info("Updated: %d  Duplicates: %d  Unknowns: %d  Skipped: %d",
				res.Stats.StatusDUpdates, res.Stats.Status0Duplicates,
				res.Stats.StatusNaNUnknowns, res.Stats.StatusXSkipped)
			ui.Success("Output written to %s", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&masterPath, "master", "m", "", "Master BOM file (default: from config)")
	cmd.Flags().StringVarP(&projectColumn, "project-column", "p", "", "catalog project column (default: from config)")
	cmd.Flags().StringVarP(&keyColumn, "key-column", "k", "", "input part-number column override")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (.xlsx or .csv)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this run")

	return cmd
}

func recordRun(cmd *cobra.Command, runID uuid.UUID, inputPath, masterPath, outputPath string, res *process.Result) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(cmd.Context(), &history.Run{
		ID:            runID,
		InputFile:     filepath.Base(inputPath),
		MasterFile:    masterPath,
		ProjectColumn: res.ProjectColumn,
		OutputFile:    outputPath,
		Stats:         res.Stats,
	})
}
