// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/pkg/types"
)

// fakePage implements document.Page from canned content.
type fakePage struct {
	number int
	rows   [][]string
	plain  string

	rowsErr  error
	fragsErr error
	plainErr error
}

func (p *fakePage) Number() int { return p.number }

func (p *fakePage) PlainText() (string, error) {
	return p.plain, p.plainErr
}

func (p *fakePage) Fragments() ([]document.Fragment, error) {
	return nil, p.fragsErr
}

func (p *fakePage) TableRows() ([][]string, error) {
	return p.rows, p.rowsErr
}

// fakeSource implements Source over a fixed page list.
type fakeSource struct {
	path  string
	pages []*fakePage
}

func (s *fakeSource) Path() string    { return s.path }
func (s *fakeSource) NumPages() int   { return len(s.pages) }
func (s *fakeSource) Page(n int) document.Page {
	return s.pages[n-1]
}

// valueRun renders n decimal values starting from base.
func valueRun(base float64, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%.1f", base+float64(i))
	}
	return strings.Join(parts, " ")
}

// cityPage builds a table-structured page carrying one city.
func cityPage(number int, header string, base float64) *fakePage {
	return &fakePage{
		number: number,
		rows: [][]string{
			{header},
			{"MAT. " + valueRun(base, 13)},
			{"INST. " + valueRun(base-10, 13)},
			{"TOTAL " + valueRun(base-5, 13)},
		},
	}
}

func testConfig(dir string) types.ConversionConfig {
	return types.ConversionConfig{
		OutputPath:          filepath.Join(dir, "out.json"),
		IncludeSubdivisions: true,
	}
}

func writeTestCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.yaml")
	body := "cities:\n  - name: ABILENE\n    zip: \"796\"\n  - name: SANTA FE\n    zip: \"875\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ExtractsAcrossPages(t *testing.T) {
	src := &fakeSource{
		path: "indexes.pdf",
		pages: []*fakePage{
			cityPage(1, "ABILENE 796", 95),
			cityPage(2, "SANTA FE 875", 102),
		},
	}

	var log bytes.Buffer
	result, err := Run(src, testConfig(t.TempDir()), &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Source != types.SourceExtracted {
		t.Errorf("Source = %q, want extracted", result.Source)
	}
	if len(result.Cities) != 2 {
		t.Fatalf("cities = %d, want 2", len(result.Cities))
	}
	if result.PagesProcessed != 2 {
		t.Errorf("PagesProcessed = %d, want 2", result.PagesProcessed)
	}
	if result.StrategyHits["table"] != 2 {
		t.Errorf("StrategyHits[table] = %d, want 2", result.StrategyHits["table"])
	}
	if result.Overwrites != 0 {
		t.Errorf("Overwrites = %d, want 0", result.Overwrites)
	}
	if !result.Report.Valid {
		t.Errorf("report invalid: %v", result.Report.Errors)
	}
}

func TestRun_LastPageWinsDuplicateKey(t *testing.T) {
	src := &fakeSource{
		path: "indexes.pdf",
		pages: []*fakePage{
			cityPage(1, "BIRMINGHAM 350 - 352", 95),
			cityPage(2, "BIRMINGHAM 350 - 352", 200),
		},
	}

	var log bytes.Buffer
	result, err := Run(src, testConfig(t.TempDir()), &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Cities) != 1 {
		t.Fatalf("cities = %d, want 1", len(result.Cities))
	}
	if result.Overwrites != 1 {
		t.Errorf("Overwrites = %d, want 1", result.Overwrites)
	}

	entry := result.Cities["BIRMINGHAM_350-352"]["015433"]
	if entry.MAT == nil || *entry.MAT != 200.0 {
		t.Errorf("015433 MAT = %v, want 200.0 from the later page", entry.MAT)
	}
}

func TestRun_PageErrorRecovery(t *testing.T) {
	broken := &fakePage{
		number:   1,
		rowsErr:  errors.New("bad xref"),
		fragsErr: errors.New("bad xref"),
		plainErr: errors.New("bad xref"),
	}
	src := &fakeSource{
		path:  "indexes.pdf",
		pages: []*fakePage{broken, cityPage(2, "ABILENE 796", 95)},
	}

	var log bytes.Buffer
	result, err := Run(src, testConfig(t.TempDir()), &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.PageErrors != 1 {
		t.Errorf("PageErrors = %d, want 1", result.PageErrors)
	}
	if len(result.Cities) != 1 {
		t.Errorf("cities = %d, want 1 from the good page", len(result.Cities))
	}
	if !strings.Contains(log.String(), "bad xref") {
		t.Errorf("log %q should report the page failure", log.String())
	}
}

func TestRun_FallbackOnEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.CatalogPath = writeTestCatalog(t, dir)

	src := &fakeSource{
		path:  "empty.pdf",
		pages: []*fakePage{{number: 1}, {number: 2}},
	}

	var log bytes.Buffer
	result, err := Run(src, cfg, &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Source != types.SourceSynthetic {
		t.Errorf("Source = %q, want synthetic", result.Source)
	}
	if len(result.Cities) != 2 {
		t.Errorf("cities = %d, want 2 from the catalog", len(result.Cities))
	}
	if !strings.Contains(log.String(), "WARNING") {
		t.Errorf("log %q should carry the synthetic data warning", log.String())
	}
	if _, ok := result.Cities["ABILENE_796"]; !ok {
		t.Error("missing catalog city ABILENE_796")
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	src := &fakeSource{path: "indexes.pdf", pages: []*fakePage{cityPage(1, "ABILENE 796", 95)}}
	var log bytes.Buffer
	result, err := Run(src, cfg, &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	summary, err := WriteOutputs(result, cfg, "indexes.pdf", &log)
	if err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}

	if summary.SchemaID != "mf2018/13" {
		t.Errorf("SchemaID = %q, want mf2018/13", summary.SchemaID)
	}
	if summary.CityCount != 1 {
		t.Errorf("CityCount = %d, want 1", summary.CityCount)
	}

	data, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var cities types.CityMap
	if err := json.Unmarshal(data, &cities); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	entry := cities["ABILENE_796"]["015433"]
	if entry.Description != "CONTRACTOR EQUIPMENT" {
		t.Errorf("round-tripped description = %q", entry.Description)
	}

	reportBody, err := os.ReadFile(filepath.Join(dir, "out.report.txt"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(reportBody), "Validation Report") {
		t.Error("report file missing header")
	}

	summaryBody, err := os.ReadFile(filepath.Join(dir, "out.summary.json"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	var parsed types.ConversionSummary
	if err := json.Unmarshal(summaryBody, &parsed); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if parsed.Source != types.SourceExtracted {
		t.Errorf("summary source = %q, want extracted", parsed.Source)
	}
}

func TestWriteOutputs_Deterministic(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	src := &fakeSource{
		path: "indexes.pdf",
		pages: []*fakePage{
			cityPage(1, "SANTA FE 875", 102),
			cityPage(2, "ABILENE 796", 95),
		},
	}
	var log bytes.Buffer
	result, err := Run(src, cfg, &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := WriteOutputs(result, cfg, "indexes.pdf", &log); err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}
	first, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := WriteOutputs(result, cfg, "indexes.pdf", &log); err != nil {
		t.Fatalf("WriteOutputs (second): %v", err)
	}
	second, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated writes of the same result differ")
	}
}

func TestWriteOutputs_YAMLReport(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ReportFormat = "yaml"

	src := &fakeSource{path: "indexes.pdf", pages: []*fakePage{cityPage(1, "ABILENE 796", 95)}}
	var log bytes.Buffer
	result, err := Run(src, cfg, &log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := WriteOutputs(result, cfg, "indexes.pdf", &log); err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(dir, "out.report.yaml"))
	if err != nil {
		t.Fatalf("reading YAML report: %v", err)
	}
	if !strings.Contains(string(body), "validation:") {
		t.Error("YAML report missing validation section")
	}
}

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		out, suffix, want string
	}{
		{"out/indexes.json", ".summary.json", "out/indexes.summary.json"},
		{"result.json", ".report.txt", "result.report.txt"},
		{"noext", ".report.txt", "noext.report.txt"},
	}
	for _, tt := range tests {
		if got := sidecarPath(tt.out, tt.suffix); got != tt.want {
			t.Errorf("sidecarPath(%q, %q) = %q, want %q", tt.out, tt.suffix, got, tt.want)
		}
	}
}
