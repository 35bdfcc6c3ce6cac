// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/costindex/internal/document"
	"github.com/pdiddy/costindex/internal/parse"
	"github.com/pdiddy/costindex/pkg/types"
)

// RawTextStrategy walks the page's plain text lines looking for a city/ZIP
// prefix followed by an INST-labeled value run, optionally with a TOTAL row
// on the next line. It is the most permissive cascade member and runs only
// when the table and coordinate strategies yield nothing.
type RawTextStrategy struct {
	IncludeSubdivisions bool
}

func (s *RawTextStrategy) Name() string { return "rawtext" }

// minInlineValues is the acceptance floor for an inline INST run. Higher
// than the shared floor because this strategy has no positional evidence to
// back a short run.
const minInlineValues = 15

// instMarkers split a combined "CITY ZIP INST. values..." line.
var instMarkers = []string{" INST.", " INST "}

func (s *RawTextStrategy) Attempt(p document.Page) (types.CityMap, error) {
	text, err := p.PlainText()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	cities := make(types.CityMap)

	for i, line := range lines {
		if parse.ClassifyRow(line).Class == parse.RowHeaderNoise {
			continue
		}

		city, zipSpec, instValues, ok := splitCityInstLine(line)
		if !ok {
			continue
		}

		set := SeriesSet{types.KindINST: FloatSeries(truncate(instValues))}

		if i+1 < len(lines) {
			next := parse.ClassifyRow(lines[i+1])
			if next.Class == parse.RowData && next.Kind == types.KindTOTAL && len(next.Values) >= minSeriesValues {
				set[types.KindTOTAL] = FloatSeries(truncate(next.Values))
			}
		}

		data := Assemble(set, s.IncludeSubdivisions)
		if len(data) > 0 {
			cities[parse.CityKey(city, zipSpec, p.Number())] = data
		}
	}

	return cities, nil
}

// splitCityInstLine recognizes "CITY NAME ZIP INST. v1 v2 ..." lines: the
// text before the INST marker must parse as city+ZIP and the tail must
// carry at least minInlineValues values.
func splitCityInstLine(line string) (city, zipSpec string, values []float64, ok bool) {
	for _, marker := range instMarkers {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}

		head := strings.TrimSpace(line[:idx])
		tail := line[idx+len(marker):]

		city, zipSpec, ok = parse.CityZip(head)
		if !ok {
			continue
		}

		values = parse.Numbers(tail)
		if len(values) < minInlineValues {
			return "", "", nil, false
		}
		return city, zipSpec, values, true
	}
	return "", "", nil, false
}
