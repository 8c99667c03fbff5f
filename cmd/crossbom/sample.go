package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crossbom/crossbom/internal/sample"
	"github.com/crossbom/crossbom/internal/sheet"
)

// newSampleCmd creates the sample subcommand.
func newSampleCmd() *cobra.Command {
	var (
		dir        string
		seed       int64
		masterRows int
		inputRows  int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample Master BOM and input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := NewUI(outputJSON)

			g := sample.New(seed)
			master := g.MasterBOM(masterRows)
			input := g.Input(master, inputRows, "")

			masterPath := filepath.Join(dir, "sample_master_bom.xlsx")
			inputPath := filepath.Join(dir, "sample_input.xlsx")

			if err := sheet.WriteFile(masterPath, master, sheet.WriteOptions{}); err != nil {
				return fmt.Errorf("write master bom: %w", err)
			}
			if err := sheet.WriteFile(inputPath, input, sheet.WriteOptions{}); err != nil {
				return fmt.Errorf("write input: %w", err)
			}

			if ui.JSON(map[string]any{
				"master_file": masterPath,
				"input_file":  inputPath,
				"master_rows": master.Len(),
				"input_rows":  input.Len(),
			}) {
				return nil
			}

			ui.Success("Master BOM with %d parts written to %s", master.Len(), masterPath)
			ui.Success("Input file with %d rows written to %s", input.Len(), inputPath)
			ui.Info("Try: crossbom process %s --master %s --project-column %s",
				inputPath, masterPath, sample.ProjectColumns[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write the sample files to")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&masterRows, "master-rows", 200, "number of catalog parts")
	cmd.Flags().IntVar(&inputRows, "input-rows", 50, "number of input rows")

	return cmd
}
