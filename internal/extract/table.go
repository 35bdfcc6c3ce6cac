// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/internal/parse"
	"github.com/pdiddy/costindex/pkg/types"
)

// TableStrategy reads the page's tabular structure. It is the strictest
// cascade member: a city is only accepted from a header cell that parses as
// city+ZIP with labeled data rows nearby.
type TableStrategy struct {
	IncludeSubdivisions bool
}

func (s *TableStrategy) Name() string { return "table" }

// labelLookahead is how many rows past a city header are scanned for
// MAT/INST/TOTAL rows.
const labelLookahead = 3

func (s *TableStrategy) Attempt(p document.Page) (types.CityMap, error) {
	rows, err := p.TableRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cities := make(types.CityMap)

	for i, row := range rows {
		city, zipSpec, ok := cityHeaderCell(row)
		if !ok {
			continue
		}

		set := s.collectLabeled(rows, i)
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

// cityHeaderCell searches a row's cells for a city+ZIP header. The ZIP may
// sit in the same cell as the name or in the cell next to it.
func cityHeaderCell(row []string) (city, zipSpec string, ok bool) {
	for j, cell := range row {
		if city, zipSpec, ok = parse.CityZip(cell); ok {
			return city, zipSpec, true
		}
		if j+1 < len(row) {
			joined := strings.TrimSpace(cell + " " + row[j+1])
			if city, zipSpec, ok = parse.CityZip(joined); ok {
				return city, zipSpec, true
			}
		}
	}
	return "", "", false
}

// collectLabeled scans the header row plus the next labelLookahead rows for
// rows whose first cell is a MAT/INST/TOTAL label, gathering their values.
// Rows with fewer than minSeriesValues values are discarded as noise from
// merged or split cells.
func (s *TableStrategy) collectLabeled(rows [][]string, headerIdx int) SeriesSet {
	set := make(SeriesSet)

	end := headerIdx + labelLookahead
	if end >= len(rows) {
		end = len(rows) - 1
	}

	for r := headerIdx; r <= end; r++ {
		row := rows[r]
		if len(row) == 0 {
			continue
		}

		kind, ok := parse.LabelKind(firstToken(row[0]))
		if !ok {
			continue
		}

		var values []float64
		values = append(values, parse.Numbers(row[0])...)
		for _, cell := range row[1:] {
			values = append(values, parse.Numbers(cell)...)
		}
		if len(values) < minSeriesValues {
			continue
		}
		if _, exists := set[kind]; !exists {
			set[kind] = FloatSeries(truncate(values))
		}
	}

	return set
}

// firstToken returns the first whitespace-separated token of a cell.
func firstToken(cell string) string {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
