// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/costindex/pkg/types"
)

// reportListCap truncates long finding lists in the text rendering.
const reportListCap = 10

// RenderText formats the report and metrics as the human-readable summary
// written next to the primary output.
func RenderText(report types.ValidationReport, metrics types.QualityMetrics) string {
	var b strings.Builder

	b.WriteString("MASTERFORMAT JSON Validation Report\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	status := "FAILED"
	if report.Valid {
		status = "PASSED"
	}
	fmt.Fprintf(&b, "Overall Validation: %s\n\n", status)

	b.WriteString("Summary Statistics:\n")
	fmt.Fprintf(&b, "  Cities Processed: %d\n", report.CitiesProcessed)
	fmt.Fprintf(&b, "  Cities Valid: %d\n", report.CitiesValid)
	fmt.Fprintf(&b, "  Divisions Processed: %d\n", report.DivisionsProcessed)
	fmt.Fprintf(&b, "  Divisions Valid: %d\n\n", report.DivisionsValid)

	b.WriteString("Data Quality Metrics:\n")
	fmt.Fprintf(&b, "  Data Completeness: %.1f%%\n", metrics.DataCompletenessPct)
	fmt.Fprintf(&b, "  Complete Data Points: %d\n", metrics.CompleteDataPoints)
	fmt.Fprintf(&b, "  Missing Data Points: %d\n", metrics.MissingDataPoints)
	fmt.Fprintf(&b, "  Average Divisions per City: %.1f\n", metrics.AverageDivisionsPerCity)
	fmt.Fprintf(&b, "  Divisions with Subdivisions: %d\n\n", metrics.DivisionsWithSubdivisions)

	writeSection(&b, "Missing Divisions:", report.MissingDivisions)
	writeSection(&b, "Errors:", report.Errors)
	writeSection(&b, "Warnings:", report.Warnings)

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for i, item := range items {
		if i == reportListCap {
			fmt.Fprintf(b, "  ... and %d more\n", len(items)-reportListCap)
			break
		}
		fmt.Fprintf(b, "  %s\n", item)
	}
	b.WriteString("\n")
}

// RenderYAML formats the report and metrics as YAML for machine consumers.
func RenderYAML(report types.ValidationReport, metrics types.QualityMetrics) (string, error) {
	doc := struct {
		Validation types.ValidationReport `yaml:"validation"`
		Quality    types.QualityMetrics   `yaml:"quality"`
	}{report, metrics}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("rendering YAML report: %w", err)
	}
	return string(out), nil
}
