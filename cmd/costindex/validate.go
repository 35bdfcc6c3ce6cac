// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/costindex/internal/validate"
	"github.com/pdiddy/costindex/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate [output.json]",
	Short: "Validate a previously written city cost index JSON file",
	Long: `Validate re-checks an existing conversion output against the division
schema and value ranges, printing the validation report to stdout. The
exit code is non-zero when validation finds errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var cities types.CityMap
	if err := json.Unmarshal(data, &cities); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	maxErrors, _ := cmd.Flags().GetInt("max-errors")
	format, _ := cmd.Flags().GetString("report-format")

	validator := validate.New(strict, maxErrors)
	report, err := validator.Validate(cities)
	if err != nil {
		return err
	}
	metrics := validate.Metrics(cities)

	switch format {
	case "yaml":
		body, err := validate.RenderYAML(report, metrics)
		if err != nil {
			return err
		}
		fmt.Print(body)
	default:
		fmt.Print(validate.RenderText(report, metrics))
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(report.Errors))
	}
	return nil
}

func init() {
	validateCmd.Flags().Bool("strict", false, "treat low-coverage cities as invalid")
	validateCmd.Flags().Int("max-errors", 0, "validation error budget (0 = default of 100)")
	validateCmd.Flags().String("report-format", "text", "report format: text or yaml")

	rootCmd.AddCommand(validateCmd)
}
