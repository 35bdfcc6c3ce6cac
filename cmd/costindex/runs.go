// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/costindex/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded conversion runs from the run index",
	Long: `Runs lists conversion runs recorded in the SQLite run index, newest
first. Each row shows the input file, how many cities were produced,
whether the data came from extraction or synthetic fallback, and the
validation outcome.`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("index-db")
	limit, _ := cmd.Flags().GetInt("limit")

	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("run index %s: %w", dbPath, err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-30s  %-9s  %-6s  %-6s  %-6s  %s\n",
		"ID", "Run At", "Input", "Source", "Cities", "Errors", "Warns", "Complete")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range records {
		input := r.InputFile
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-30s  %-9s  %-6d  %-6d  %-6d  %.1f%%\n",
			r.ID, r.RunAt, input, r.Source, r.CityCount, r.ErrorCount, r.WarningCount, r.CompletenessPct)
	}

	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(records))
	return nil
}

func init() {
	runsCmd.Flags().String("index-db", "costindex.db", "SQLite run index path")
	runsCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")

	rootCmd.AddCommand(runsCmd)
}
