// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns document pages into city cost-index records. Three
// strategies attempt each page in order of decreasing strictness; the first
// to yield at least one city wins the page, with no merging of partial
// results across strategies.
package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/pkg/types"
)

// minSeriesValues is the shared acceptance floor: a city is kept only when
// at least one data row contributed this many values. Shorter runs indicate
// a misdetected header or a truncated row.
const minSeriesValues = 10

// Strategy attempts to extract city records from a single page.
type Strategy interface {
	// Name identifies the strategy in progress output and summaries.
	Name() string

	// Attempt returns the cities found on the page, or an empty map when
	// the page's structure does not suit this strategy. Errors are
	// recoverable; the cascade falls through to the next strategy.
	Attempt(p document.Page) (types.CityMap, error)
}

// Extractor runs the strategy cascade over document pages.
type Extractor struct {
	strategies []Strategy
}

// New builds the standard cascade: table structure, positioned fragments,
// then raw lines.
func New(includeSubdivisions bool) *Extractor {
	return &Extractor{
		strategies: []Strategy{
			&TableStrategy{IncludeSubdivisions: includeSubdivisions},
			&CoordinateStrategy{IncludeSubdivisions: includeSubdivisions},
			&RawTextStrategy{IncludeSubdivisions: includeSubdivisions},
		},
	}
}

// PageResult reports the outcome of extracting one page.
type PageResult struct {
	Cities types.CityMap

	// Strategy names the cascade member that produced Cities. Empty when
	// no strategy yielded anything.
	Strategy string

	// Failures counts strategies that errored on this page.
	Failures int
}

// ExtractPage runs the cascade over one page. Strategy errors are printed
// to w and the cascade continues; an empty result is not an error.
func (e *Extractor) ExtractPage(p document.Page, w io.Writer) PageResult {
	var result PageResult
	for _, s := range e.strategies {
		cities, err := s.Attempt(p)
		if err != nil {
			fmt.Fprintf(w, "  page %d: %s: %v\n", p.Number(), s.Name(), err)
			result.Failures++
			continue
		}
		if len(cities) > 0 {
			result.Cities = cities
			result.Strategy = s.Name()
			return result
		}
	}
	return result
}
