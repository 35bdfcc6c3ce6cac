// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse recognizes the text shapes that make up a cost-index page:
// decimal value runs, city/ZIP header fragments, and MAT/INST/TOTAL data
// rows. All recognizers are pure functions over strings; rejection is a
// return value, never an error.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/costindex/pkg/types"
)

var (
	// numberPattern captures decimal-formatted values only. Integers are
	// deliberately excluded so page numbers and ZIP prefixes never leak
	// into value lists.
	numberPattern = regexp.MustCompile(`\d+\.\d+`)

	// cityZipPattern splits "CITY NAME 123", "CITY NAME 123-456" and
	// comma-separated combinations of those into name and ZIP spec.
	cityZipPattern = regexp.MustCompile(`^([A-Z][A-Z\s&\.\-/']*?)\s+(\d{3}(?:\s*-\s*\d{3})?(?:\s*,\s*\d{3}(?:\s*-\s*\d{3})?)*)$`)

	// dataRowPattern matches a metric label (optional trailing period) and
	// its value run.
	dataRowPattern = regexp.MustCompile(`^(MAT\.?|INST\.?|TOTAL\.?)\s+(.*)$`)

	whitespaceRun = regexp.MustCompile(`\s+`)
	keyStrip      = regexp.MustCompile(`[^\w\s]`)
	textStrip     = regexp.MustCompile(`[^\w\s\-\.,&/']`)
)

// excludedTerms are vocabulary hits that disqualify a fragment as a city
// name. Table cells and page furniture frequently satisfy the naive
// shape pattern otherwise.
var excludedTerms = []string{
	"DIVISION", "MAT", "INST", "TOTAL", "CONCRETE", "MASONRY", "METALS",
	"THERMAL", "OPENINGS", "FINISHES", "COVERS", "FIRE", "ELECTRICAL",
	"WEIGHTED", "AVERAGE", "EQUIPMENT", "INFRASTRUCTURE", "DEMOLITION",
}

// headerNoise lists boilerplate substrings; a line containing any of them
// is skipped entirely.
var headerNoise = []string{
	"MASTERFORMAT City Cost Indexes",
	"Year 2023 Base",
	"015433 0241",
	"DIVISION",
	"CONTRACTOR EQUIPMENT SITE",
	"WEIGHTED AVERAGE",
	"Concrete Forming & Accessories",
}

// minCityNameLen rejects fragments too short to be a city name.
const minCityNameLen = 3

// Numbers returns every decimal-formatted value in s, in order of
// appearance. Absence of matches yields an empty slice.
func Numbers(s string) []float64 {
	matches := numberPattern.FindAllString(s, -1)
	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// CleanText collapses whitespace and strips characters that interfere with
// pattern matching.
func CleanText(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.TrimSpace(textStrip.ReplaceAllString(s, ""))
}

// CityZip splits a candidate fragment into city name and ZIP spec. The ZIP
// spec is a single 3-digit prefix, a hyphenated range, or a comma list of
// those. Fragments that are mostly non-alphabetic, shorter than three
// characters, or that contain an excluded vocabulary term are rejected.
func CityZip(fragment string) (city, zipSpec string, ok bool) {
	fragment = CleanText(fragment)
	m := cityZipPattern.FindStringSubmatch(fragment)
	if m == nil {
		return "", "", false
	}

	city = strings.TrimSpace(m[1])
	zipSpec = strings.TrimSpace(m[2])
	if !validCityName(city) {
		return "", "", false
	}
	return city, zipSpec, true
}

func validCityName(name string) bool {
	if len(name) < minCityNameLen {
		return false
	}

	alpha := 0
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' {
			alpha++
		}
	}
	if float64(alpha)/float64(len(name)) < 0.7 {
		return false
	}

	upper := strings.ToUpper(name)
	for _, term := range excludedTerms {
		if strings.Contains(upper, term) {
			return false
		}
	}
	return true
}

// RowClass classifies a line of page text.
type RowClass int

const (
	// RowUnclassified lines are forwarded to the next extraction strategy.
	RowUnclassified RowClass = iota

	// RowHeaderNoise lines are boilerplate and skipped entirely.
	RowHeaderNoise

	// RowData lines carry a MAT/INST/TOTAL label and a value run.
	RowData
)

// Row is the result of classifying one line.
type Row struct {
	Class  RowClass
	Kind   types.DataKind
	Values []float64
}

// ClassifyRow decides whether a line is boilerplate, a labeled data row, or
// neither. Labels tolerate an optional trailing period ("MAT." vs "MAT").
func ClassifyRow(line string) Row {
	line = strings.TrimSpace(line)

	for _, noise := range headerNoise {
		if strings.Contains(line, noise) {
			return Row{Class: RowHeaderNoise}
		}
	}

	m := dataRowPattern.FindStringSubmatch(line)
	if m == nil {
		return Row{Class: RowUnclassified}
	}

	kind := types.DataKind(strings.TrimSuffix(m[1], "."))
	return Row{Class: RowData, Kind: kind, Values: Numbers(m[2])}
}

// LabelKind recognizes a bare MAT/INST/TOTAL label token (as found in table
// cells), tolerating a trailing period.
func LabelKind(cell string) (types.DataKind, bool) {
	switch strings.TrimSuffix(strings.TrimSpace(strings.ToUpper(cell)), ".") {
	case "MAT":
		return types.KindMAT, true
	case "INST":
		return types.KindINST, true
	case "TOTAL":
		return types.KindTOTAL, true
	}
	return "", false
}

// CityKey synthesizes the output key for a city: the cleaned uppercase name
// with spaces collapsed to underscores, suffixed with the ZIP spec, or with
// the page number when no ZIP was found.
func CityKey(city, zipSpec string, page int) string {
	clean := keyStrip.ReplaceAllString(city, "")
	clean = whitespaceRun.ReplaceAllString(strings.TrimSpace(clean), "_")
	clean = strings.ToUpper(clean)

	if zipSpec != "" {
		return fmt.Sprintf("%s_%s", clean, whitespaceRun.ReplaceAllString(zipSpec, ""))
	}
	return fmt.Sprintf("%s_PAGE%d", clean, page)
}
