// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates the PDF-to-JSON conversion pipeline: page
// extraction through the strategy cascade, fallback generation when a
// document yields nothing, validation, and output writing.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/internal/extract"
	"github.com/pdiddy/costindex/internal/fallback"
	"github.com/pdiddy/costindex/internal/schema"
	"github.com/pdiddy/costindex/internal/validate"
	"github.com/pdiddy/costindex/pkg/types"
)

// Source is a paginated document. *document.Document satisfies it; tests
// supply in-memory implementations.
type Source interface {
	Path() string
	NumPages() int
	Page(n int) document.Page
}

// Result holds everything a conversion run produced before output writing.
type Result struct {
	Cities types.CityMap
	Source types.Provenance

	PagesProcessed int
	PageErrors     int
	Overwrites     int
	StrategyHits   map[string]int

	Report  types.ValidationReport
	Metrics types.QualityMetrics
}

// HasFailures reports whether validation found any errors.
func (r *Result) HasFailures() bool {
	return len(r.Report.Errors) > 0
}

// Run executes the conversion pipeline over src, printing progress to w.
// Extraction failures on individual pages are reported and skipped; the
// run fails only when the division table is inconsistent or validation
// aborts on its error budget.
func Run(src Source, cfg types.ConversionConfig, w io.Writer) (*Result, error) {
	if err := schema.Verify(); err != nil {
		return nil, fmt.Errorf("division table: %w", err)
	}

	result := &Result{
		Cities:       make(types.CityMap),
		Source:       types.SourceExtracted,
		StrategyHits: make(map[string]int),
	}

	extractor := extract.New(cfg.IncludeSubdivisions)
	numPages := src.NumPages()
	fmt.Fprintf(w, "Processing %d pages...\n", numPages)

	for n := 1; n <= numPages; n++ {
		page := extractor.ExtractPage(src.Page(n), w)
		result.PagesProcessed++
		if page.Failures > 0 && len(page.Cities) == 0 {
			result.PageErrors++
			continue
		}
		if len(page.Cities) == 0 {
			continue
		}
		result.StrategyHits[page.Strategy]++
		result.Overwrites += merge(result.Cities, page.Cities)
		fmt.Fprintf(w, "  page %d: %d cities (%s)\n", n, len(page.Cities), page.Strategy)
	}

	if len(result.Cities) == 0 {
		fmt.Fprintf(w, "WARNING: no cities extracted from %s; generating synthetic data\n", src.Path())
		catalog, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load city catalog: %w", err)
		}
		result.Cities = fallback.Generate(catalog, cfg.IncludeSubdivisions)
		result.Source = types.SourceSynthetic
	}

	validator := validate.New(cfg.Strict, cfg.MaxErrors)
	report, err := validator.Validate(result.Cities)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	result.Report = report
	result.Metrics = validate.Metrics(result.Cities)

	fmt.Fprintf(w, "Extracted %d cities (%d valid)\n", report.CitiesProcessed, report.CitiesValid)
	return result, nil
}

// merge copies cities from src into dst, returning the number of existing
// entries that were replaced. Later pages win.
func merge(dst, src types.CityMap) int {
	overwrites := 0
	for key, data := range src {
		if _, ok := dst[key]; ok {
			overwrites++
		}
		dst[key] = data
	}
	return overwrites
}

func loadCatalog(path string) (fallback.Catalog, error) {
	if path == "" {
		return fallback.DefaultCatalog()
	}
	return fallback.LoadCatalog(path)
}

// WriteOutputs writes the city data JSON, the validation report, and the
// run summary next to the configured output path. It returns the summary
// it wrote.
func WriteOutputs(result *Result, cfg types.ConversionConfig, inputPath string, w io.Writer) (types.ConversionSummary, error) {
	summary := types.ConversionSummary{
		SchemaID:       schema.SchemaID,
		InputFile:      inputPath,
		OutputFile:     cfg.OutputPath,
		CityCount:      len(result.Cities),
		Source:         result.Source,
		PagesProcessed: result.PagesProcessed,
		PageErrors:     result.PageErrors,
		Overwrites:     result.Overwrites,
		StrategyHits:   result.StrategyHits,
		Validation:     result.Report,
		Quality:        result.Metrics,
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return summary, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := writeJSON(cfg.OutputPath, result.Cities); err != nil {
		return summary, fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s (%d cities)\n", cfg.OutputPath, len(result.Cities))

	reportPath, reportBody, err := renderReport(result, cfg)
	if err != nil {
		return summary, err
	}
	if err := os.WriteFile(reportPath, []byte(reportBody), 0o644); err != nil {
		return summary, fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", reportPath)

	summaryPath := sidecarPath(cfg.OutputPath, ".summary.json")
	if err := writeJSON(summaryPath, summary); err != nil {
		return summary, fmt.Errorf("write summary: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", summaryPath)

	return summary, nil
}

func renderReport(result *Result, cfg types.ConversionConfig) (string, string, error) {
	switch cfg.ReportFormat {
	case "yaml":
		body, err := validate.RenderYAML(result.Report, result.Metrics)
		if err != nil {
			return "", "", fmt.Errorf("render report: %w", err)
		}
		return sidecarPath(cfg.OutputPath, ".report.yaml"), body, nil
	default:
		body := validate.RenderText(result.Report, result.Metrics)
		return sidecarPath(cfg.OutputPath, ".report.txt"), body, nil
	}
}

// writeJSON serializes v with two-space indentation. Map keys come out
// sorted, so repeated runs over the same input produce identical bytes.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sidecarPath swaps the output file's extension for suffix, so
// out/indexes.json gets out/indexes.summary.json beside it.
func sidecarPath(outputPath, suffix string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + suffix
}
