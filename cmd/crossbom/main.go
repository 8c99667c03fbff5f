// Package main provides the cross-reference CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crossbom/crossbom/internal/config"
	"github.com/crossbom/crossbom/internal/observability"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "crossbom",
	Short: "Cross-reference supplier BOM files against the Master BOM",
	Long: `crossbom checks supplier part lists against the Master BOM catalog.

Use this tool to:
- Process an input file and produce an annotated result workbook
- Inspect which Master BOM columns can serve as the project column
- Suggest the project column for a program hint
- Generate sample data for trying out the pipeline
- List past processing runs

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logLevel := cfg.Observability.LogLevel
		if verbose {
			logLevel = "debug"
		} else if !outputJSON {
			// Keep console runs quiet; the UI reports progress.
			logLevel = "error"
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       logLevel,
			Format:      logFormat,
			ServiceName: "crossbom",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newRunsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
