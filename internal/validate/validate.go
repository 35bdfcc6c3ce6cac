// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks assembled city data for structural and range
// problems and produces the validation report and quality metrics emitted
// alongside the primary output.
package validate

import (
	"fmt"
	"sort"

	"github.com/pdiddy/costindex/internal/schema"
	"github.com/pdiddy/costindex/pkg/types"
)

// Value range outside which a cost index is flagged. The domain permits
// occasional outliers, so breaches warn rather than fail.
const (
	valueMin = 0.0
	valueMax = 1000.0
)

// minDivisionRatio is the strict-mode floor: each city needs at least this
// share of the schema's main divisions, and overall validity needs this
// share of cities individually valid.
const minDivisionRatio = 0.8

// Validator runs structure, range, and completeness checks over a CityMap.
type Validator struct {
	strict    bool
	collector *Collector
}

// New builds a Validator. maxErrors <= 0 selects the default error bound.
func New(strict bool, maxErrors int) *Validator {
	return &Validator{strict: strict, collector: NewCollector(maxErrors)}
}

// Validate checks the full mapping and returns the structured report.
// A non-nil error means the error budget was exhausted and the run must
// abort; an invalid report with a nil error is the normal failure shape.
// Validating the same data twice yields identical reports.
func (v *Validator) Validate(data types.CityMap) (types.ValidationReport, error) {
	report := types.ValidationReport{Valid: true}

	if len(data) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "no city data found")
		return report, nil
	}

	// Deterministic iteration keeps repeated reports identical.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, cityKey := range keys {
		report.CitiesProcessed++

		cityValid, err := v.validateCity(cityKey, data[cityKey], &report)
		if err != nil {
			return report, err
		}
		if cityValid {
			report.CitiesValid++
		}
	}

	if v.strict && float64(report.CitiesValid) < float64(report.CitiesProcessed)*minDivisionRatio {
		report.Valid = false
	}

	report.Errors = append(report.Errors, v.collector.Errors()...)
	report.Warnings = append(report.Warnings, v.collector.Warnings()...)
	if v.collector.HasErrors() {
		report.Valid = false
	}

	return report, nil
}

// validateCity checks one city's divisions. A city is valid when it has at
// least one valid division and, in strict mode, misses no more than 20% of
// the schema divisions.
func (v *Validator) validateCity(cityKey string, city types.CityData, report *types.ValidationReport) (bool, error) {
	if len(city) == 0 {
		if err := v.collector.Errorf("no division data found for city %s", cityKey); err != nil {
			return false, err
		}
		return false, nil
	}

	validDivisions := 0
	codes := make([]string, 0, len(city))
	for code := range city {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		report.DivisionsProcessed++

		ok, err := v.validateDivision(cityKey, code, city[code])
		if err != nil {
			return false, err
		}
		if ok {
			report.DivisionsValid++
			validDivisions++
		}
	}

	missing := missingDivisions(city)
	if len(missing) > 0 {
		report.MissingDivisions = append(report.MissingDivisions,
			fmt.Sprintf("%s: %v", cityKey, missing))
	}

	if float64(validDivisions) < float64(schema.MainDivisionCount)*minDivisionRatio {
		v.collector.Warnf("city %s has only %d/%d valid divisions",
			cityKey, validDivisions, schema.MainDivisionCount)
		if v.strict {
			return false, nil
		}
	}

	return validDivisions > 0, nil
}

// validateDivision checks one entry: description present, subdivision codes
// never surfacing at the top level, values numeric and in range.
func (v *Validator) validateDivision(cityKey, code string, entry types.DivisionEntry) (bool, error) {
	if entry.Description == "" {
		if err := v.collector.Errorf("missing division description for %s.%s", cityKey, code); err != nil {
			return false, err
		}
		return false, nil
	}

	if schema.IsSubdivisionCode(code) {
		if err := v.collector.Errorf("subdivision code %s appears as a top-level division for %s", code, cityKey); err != nil {
			return false, err
		}
		return false, nil
	}

	hasData := false
	for _, kind := range types.DataKinds {
		val := entry.Value(kind)
		if val == nil {
			continue
		}
		hasData = true
		if *val < valueMin || *val > valueMax {
			v.collector.Warnf("unusual value for %s.%s.%s: %g", cityKey, code, kind, *val)
		}
	}

	subCodes := make([]string, 0, len(entry.Subdivisions))
	for subCode := range entry.Subdivisions {
		subCodes = append(subCodes, subCode)
	}
	sort.Strings(subCodes)

	for _, subCode := range subCodes {
		sub := entry.Subdivisions[subCode]
		if sub.Description == "" {
			if err := v.collector.Errorf("missing division description for %s.%s.%s", cityKey, code, subCode); err != nil {
				return false, err
			}
			continue
		}
		for _, kind := range types.DataKinds {
			if val := sub.Value(kind); val != nil {
				hasData = true
				if *val < valueMin || *val > valueMax {
					v.collector.Warnf("unusual value for %s.%s.%s.%s: %g", cityKey, code, subCode, kind, *val)
				}
			}
		}
	}

	if !hasData {
		v.collector.Warnf("no data values found for %s.%s", cityKey, code)
	}

	return true, nil
}

// missingDivisions lists schema divisions absent from a city, in schema order.
func missingDivisions(city types.CityData) []string {
	var missing []string
	for _, div := range schema.Main() {
		if _, ok := city[div.Code]; !ok {
			missing = append(missing, div.Code)
		}
	}
	return missing
}

// Metrics computes completeness statistics. The possible-point denominator
// is the full schema surface (13 divisions × 3 metrics) per city, so sparse
// cities lower the percentage even when their present entries are complete.
func Metrics(data types.CityMap) types.QualityMetrics {
	m := types.QualityMetrics{TotalCities: len(data)}
	if len(data) == 0 {
		return m
	}

	totalPossible := 0
	for _, city := range data {
		m.TotalDivisions += len(city)
		totalPossible += schema.MainDivisionCount * len(types.DataKinds)

		for _, entry := range city {
			for _, kind := range types.DataKinds {
				if entry.Value(kind) != nil {
					m.CompleteDataPoints++
				}
			}
			if len(entry.Subdivisions) > 0 {
				m.DivisionsWithSubdivisions++
			}
		}
	}

	m.MissingDataPoints = totalPossible - m.CompleteDataPoints
	if totalPossible > 0 {
		m.DataCompletenessPct = float64(m.CompleteDataPoints) / float64(totalPossible) * 100
	}
	m.AverageDivisionsPerCity = float64(m.TotalDivisions) / float64(m.TotalCities)
	return m
}
