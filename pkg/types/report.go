// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ValidationReport is the structured outcome of validating a CityMap.
type ValidationReport struct {
	// Valid is the overall result. Strict mode additionally requires at
	// least 80% of cities to be individually valid.
	Valid bool `json:"valid" yaml:"valid"`

	// CitiesProcessed counts every city examined.
	CitiesProcessed int `json:"cities_processed" yaml:"cities_processed"`

	// CitiesValid counts cities that passed per-city checks.
	CitiesValid int `json:"cities_valid" yaml:"cities_valid"`

	// DivisionsProcessed counts every top-level division examined.
	DivisionsProcessed int `json:"divisions_processed" yaml:"divisions_processed"`

	// DivisionsValid counts divisions that passed structural checks.
	DivisionsValid int `json:"divisions_valid" yaml:"divisions_valid"`

	// MissingDivisions lists, per city, schema divisions absent from the output.
	MissingDivisions []string `json:"missing_divisions" yaml:"missing_divisions"`

	// Errors are fatal structural problems.
	Errors []string `json:"errors" yaml:"errors"`

	// Warnings are non-fatal findings (out-of-range values, sparse cities).
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// QualityMetrics summarizes data completeness across a CityMap.
type QualityMetrics struct {
	TotalCities int `json:"total_cities" yaml:"total_cities"`

	TotalDivisions int `json:"total_divisions" yaml:"total_divisions"`

	// CompleteDataPoints counts present (division, metric) pairs.
	CompleteDataPoints int `json:"complete_data_points" yaml:"complete_data_points"`

	// MissingDataPoints counts absent (division, metric) pairs out of the
	// 13 divisions × 3 metrics possible per city.
	MissingDataPoints int `json:"missing_data_points" yaml:"missing_data_points"`

	// DataCompletenessPct is CompleteDataPoints over the total possible,
	// as a percentage.
	DataCompletenessPct float64 `json:"data_completeness_percentage" yaml:"data_completeness_percentage"`

	// DivisionsWithSubdivisions counts division entries carrying a nested map.
	DivisionsWithSubdivisions int `json:"divisions_with_subdivisions" yaml:"divisions_with_subdivisions"`

	AverageDivisionsPerCity float64 `json:"average_divisions_per_city" yaml:"average_divisions_per_city"`
}

// ConversionSummary is the JSON side file written next to the primary output.
type ConversionSummary struct {
	// SchemaID names the division layout the output follows.
	SchemaID string `json:"schema" yaml:"schema"`

	InputFile  string `json:"input_file" yaml:"input_file"`
	OutputFile string `json:"output_file" yaml:"output_file"`

	CityCount int `json:"city_count" yaml:"city_count"`

	// Source distinguishes extracted data from synthetic fallback output.
	Source Provenance `json:"source" yaml:"source"`

	// PagesProcessed counts document pages walked.
	PagesProcessed int `json:"pages_processed" yaml:"pages_processed"`

	// PageErrors counts pages skipped after extraction failures.
	PageErrors int `json:"page_errors" yaml:"page_errors"`

	// Overwrites counts same-key city records replaced by later pages.
	Overwrites int `json:"overwrites" yaml:"overwrites"`

	// StrategyHits counts, per strategy name, the pages it won.
	StrategyHits map[string]int `json:"strategy_hits" yaml:"strategy_hits"`

	Validation ValidationReport `json:"validation" yaml:"validation"`
	Quality    QualityMetrics   `json:"quality" yaml:"quality"`
}
