// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/costindex/internal/convert"
	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/internal/store"
	"github.com/pdiddy/costindex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.pdf]",
	Short: "Extract city cost indexes from a PDF into nested JSON",
	Long: `Convert reads a MASTERFORMAT City Cost Indexes PDF and writes the
extracted data as JSON keyed by city. Each city maps division names to
MAT, INST, and TOTAL index values, with subdivision breakdowns nested
under their parent divisions.

Beside the JSON output, convert writes a validation report and a run
summary. With --index-db, the run is also recorded in a SQLite index
for later inspection via the runs subcommand.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %s: %w", input, err)
	}

	cfg := convertConfig(cmd)

	doc, err := document.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer doc.Close()

	result, err := convert.Run(doc, cfg, os.Stdout)
	if err != nil {
		return err
	}

	summary, err := convert.WriteOutputs(result, cfg, input, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.IndexDB != "" {
		if err := recordRun(cfg.IndexDB, summary, result.Cities); err != nil {
			fmt.Fprintf(os.Stderr, "warning: run index update failed: %v\n", err)
		}
	}

	if result.Source == types.SourceSynthetic {
		fmt.Fprintln(os.Stderr, "WARNING: output contains synthetic data, not values extracted from the input")
	}

	if cfg.Strict && result.HasFailures() {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Report.Errors))
	}
	return nil
}

func convertConfig(cmd *cobra.Command) types.ConversionConfig {
	output, _ := cmd.Flags().GetString("output")
	strict, _ := cmd.Flags().GetBool("strict")
	noSubs, _ := cmd.Flags().GetBool("no-subdivisions")
	maxErrors, _ := cmd.Flags().GetInt("max-errors")
	catalog, _ := cmd.Flags().GetString("catalog")
	indexDB, _ := cmd.Flags().GetString("index-db")
	reportFormat, _ := cmd.Flags().GetString("report-format")

	if output == "" {
		output = types.DefaultOutputPath
	}

	return types.ConversionConfig{
		OutputPath:          output,
		Strict:              strict,
		IncludeSubdivisions: !noSubs,
		MaxErrors:           maxErrors,
		CatalogPath:         catalog,
		IndexDB:             indexDB,
		ReportFormat:        reportFormat,
	}
}

func recordRun(dbPath string, summary types.ConversionSummary, cities types.CityMap) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Record(context.Background(), summary, cities)
}

func init() {
	convertCmd.Flags().StringP("output", "o", types.DefaultOutputPath, "output JSON path")
	convertCmd.Flags().Bool("strict", false, "exit non-zero when validation finds errors")
	convertCmd.Flags().Bool("no-subdivisions", false, "omit subdivision breakdowns from the output")
	convertCmd.Flags().Int("max-errors", 0, "validation error budget (0 = default of 100)")
	convertCmd.Flags().String("catalog", "", "city catalog YAML for synthetic fallback (default: built-in)")
	convertCmd.Flags().String("index-db", "", "SQLite run index path (empty = no run recording)")
	convertCmd.Flags().String("report-format", "text", "validation report format: text or yaml")

	rootCmd.AddCommand(convertCmd)
}
