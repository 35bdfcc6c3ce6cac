// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/internal/parse"
	"github.com/pdiddy/costindex/pkg/types"
)

// CoordinateStrategy flattens the page into positioned text fragments,
// reconstructs reading-order rows from their coordinates, and pairs city
// headers with nearby value rows. Used when the page exposes no usable
// table structure.
type CoordinateStrategy struct {
	IncludeSubdivisions bool
}

func (s *CoordinateStrategy) Name() string { return "coordinate" }

const (
	// rowTolerance is the maximum Y distance, in PDF units, between
	// fragments of the same visual row.
	rowTolerance = 5.0

	// rowLookahead bounds the search below a city header for its data rows.
	rowLookahead = 10
)

func (s *CoordinateStrategy) Attempt(p document.Page) (types.CityMap, error) {
	frags, err := p.Fragments()
	if err != nil {
		return nil, err
	}
	if len(frags) == 0 {
		return nil, nil
	}

	rows := groupRows(frags)
	cities := make(types.CityMap)

	for i, row := range rows {
		city, zipSpec, ok := rowCityHeader(row)
		if !ok {
			continue
		}

		set := s.collectNearby(rows, i)
		if !set.hasEnough() {
			continue
		}

		data := Assemble(set, s.IncludeSubdivisions)
		if len(data) > 0 {
			cities[parse.CityKey(city, zipSpec, p.Number())] = data
		}
	}

	return cities, nil
}

// groupRows sorts fragments into reading order and buckets them into rows
// whose Y coordinates differ by no more than rowTolerance. PDF Y grows
// upward, so reading order is descending Y.
func groupRows(frags []document.Fragment) [][]document.Fragment {
	sorted := make([]document.Fragment, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]document.Fragment
	current := []document.Fragment{sorted[0]}
	currentY := sorted[0].Y

	for _, f := range sorted[1:] {
		if currentY-f.Y <= rowTolerance {
			current = append(current, f)
		} else {
			rows = append(rows, current)
			current = []document.Fragment{f}
			currentY = f.Y
		}
	}
	rows = append(rows, current)
	return rows
}

// rowText joins a row's fragments left to right.
func rowText(row []document.Fragment) string {
	parts := make([]string, len(row))
	for i, f := range row {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// rowCityHeader recognizes a city header either from the row's concatenated
// text or from a single fragment that independently parses as city+ZIP.
func rowCityHeader(row []document.Fragment) (city, zipSpec string, ok bool) {
	if city, zipSpec, ok = parse.CityZip(rowText(row)); ok {
		return city, zipSpec, true
	}
	for _, f := range row {
		if city, zipSpec, ok = parse.CityZip(f.Text); ok {
			return city, zipSpec, true
		}
	}
	return "", "", false
}

// collectNearby walks up to rowLookahead rows below a city header. Labeled
// rows assign their kind directly; unlabeled rows carrying enough values
// fill the first empty series in MAT, INST, TOTAL order.
func (s *CoordinateStrategy) collectNearby(rows [][]document.Fragment, headerIdx int) SeriesSet {
	set := make(SeriesSet)

	end := headerIdx + rowLookahead
	if end >= len(rows) {
		end = len(rows) - 1
	}

	for r := headerIdx + 1; r <= end; r++ {
		text := rowText(rows[r])

		classified := parse.ClassifyRow(text)
		switch classified.Class {
		case parse.RowHeaderNoise:
			continue
		case parse.RowData:
			if len(classified.Values) < minSeriesValues {
				continue
			}
			if _, exists := set[classified.Kind]; !exists {
				set[classified.Kind] = FloatSeries(truncate(classified.Values))
			}
			continue
		}

		values := parse.Numbers(text)
		if len(values) < minSeriesValues {
			continue
		}
		for _, kind := range types.DataKinds {
			if _, exists := set[kind]; !exists {
				set[kind] = FloatSeries(truncate(values))
				break
			}
		}
	}

	return set
}
