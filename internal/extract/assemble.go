// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/costindex/internal/schema"
	"github.com/pdiddy/costindex/pkg/types"
)

// Series is an ordered list of positional values. A nil entry marks a value
// the source did not provide; positions never shift to fill gaps.
type Series []*float64

// FloatSeries wraps a dense value list as a Series.
func FloatSeries(values []float64) Series {
	s := make(Series, len(values))
	for i := range values {
		v := values[i]
		s[i] = &v
	}
	return s
}

// SeriesSet holds up to three parallel value lists indexed positionally
// against the division schema. Any kind may be absent.
type SeriesSet map[types.DataKind]Series

// at returns the value at slot i of the kind's series, or nil when the
// series is absent, exhausted, or holds a gap there.
func (set SeriesSet) at(kind types.DataKind, i int) *float64 {
	s, ok := set[kind]
	if !ok || i >= len(s) {
		return nil
	}
	return s[i]
}

// hasEnough reports whether at least one series meets the acceptance floor.
func (set SeriesSet) hasEnough() bool {
	for _, s := range set {
		if len(s) >= minSeriesValues {
			return true
		}
	}
	return false
}

// Assemble maps the set's values onto the division schema. Division i takes
// slot i of each series; the two divisions that define subdivisions
// additionally consume the slots immediately following their own, one per
// subdivision in definition order. Divisions without any value or populated
// subdivision are dropped rather than emitted empty.
func Assemble(set SeriesSet, includeSubdivisions bool) types.CityData {
	data := make(types.CityData)

	for i, div := range schema.Main() {
		entry := types.DivisionEntry{Description: div.Description}

		for _, kind := range types.DataKinds {
			entry.SetValue(kind, set.at(kind, i))
		}

		if includeSubdivisions && len(div.Subdivisions) > 0 {
			subs := make(map[string]types.DivisionEntry)
			for j, sub := range div.Subdivisions {
				slot := schema.SubdivisionSlot(i, j)
				subEntry := types.DivisionEntry{Description: sub.Description}
				for _, kind := range types.DataKinds {
					subEntry.SetValue(kind, set.at(kind, slot))
				}
				if subEntry.HasData() {
					subs[sub.Code] = subEntry
				}
			}
			if len(subs) > 0 {
				entry.Subdivisions = subs
			}
		}

		if entry.HasData() {
			data[div.Code] = entry
		}
	}

	return data
}

// truncate caps a value list at the 13 main-division slots. No division
// carries more than one scalar per metric, so anything beyond is noise from
// merged rows.
func truncate(values []float64) []float64 {
	if len(values) > schema.MainDivisionCount {
		return values[:schema.MainDivisionCount]
	}
	return values
}
