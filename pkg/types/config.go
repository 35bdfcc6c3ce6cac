// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the costindex pipeline:
// city/division records, validation reports, and configuration.
package types

// ConversionConfig carries the settings for a single conversion run.
type ConversionConfig struct {
	// OutputPath is where the primary JSON mapping is written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Strict enables strict validation: every city needs at least 80% of
	// the schema divisions, and 80% of cities must be individually valid.
	Strict bool `json:"strict" yaml:"strict"`

	// IncludeSubdivisions controls whether subdivision slots are consumed
	// and nested under their parent divisions.
	IncludeSubdivisions bool `json:"include_subdivisions" yaml:"include_subdivisions"`

	// MaxErrors bounds the validation error collector. Exceeding it aborts
	// the run. Zero means the default (100).
	MaxErrors int `json:"max_errors" yaml:"max_errors"`

	// CatalogPath optionally overrides the embedded fallback city catalog.
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// IndexDB, when non-empty, is the SQLite database recording run history.
	IndexDB string `json:"index_db" yaml:"index_db"`

	// ReportFormat selects the validation report rendering: "text" or "yaml".
	ReportFormat string `json:"report_format" yaml:"report_format"`
}

// DefaultOutputPath is used when no output path is given.
const DefaultOutputPath = "masterformat_output.json"
