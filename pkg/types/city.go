// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DataKind identifies one of the three cost-index metrics tracked per division.
type DataKind string

const (
	KindMAT   DataKind = "MAT"
	KindINST  DataKind = "INST"
	KindTOTAL DataKind = "TOTAL"
)

// DataKinds lists the metrics in the order they appear in source rows.
var DataKinds = []DataKind{KindMAT, KindINST, KindTOTAL}

// DivisionEntry holds the cost-index values for one division of one city.
// Value fields are pointers: a nil field means the source carried no value,
// which is serialized as an absent key, never as zero.
type DivisionEntry struct {
	// Description is the human-readable division label, copied from the schema.
	Description string `json:"division" yaml:"division"`

	// MAT is the material cost index.
	MAT *float64 `json:"MAT,omitempty" yaml:"MAT,omitempty"`

	// INST is the installation cost index.
	INST *float64 `json:"INST,omitempty" yaml:"INST,omitempty"`

	// TOTAL is the combined cost index.
	TOTAL *float64 `json:"TOTAL,omitempty" yaml:"TOTAL,omitempty"`

	// Subdivisions maps subdivision codes to nested entries. Present only on
	// the two divisions that define subdivisions, and only when at least one
	// subdivision carries a value.
	Subdivisions map[string]DivisionEntry `json:"subdivisions,omitempty" yaml:"subdivisions,omitempty"`
}

// Value returns the metric for kind, or nil when absent.
func (e DivisionEntry) Value(kind DataKind) *float64 {
	switch kind {
	case KindMAT:
		return e.MAT
	case KindINST:
		return e.INST
	case KindTOTAL:
		return e.TOTAL
	}
	return nil
}

// SetValue stores v as the metric for kind.
func (e *DivisionEntry) SetValue(kind DataKind, v *float64) {
	switch kind {
	case KindMAT:
		e.MAT = v
	case KindINST:
		e.INST = v
	case KindTOTAL:
		e.TOTAL = v
	}
}

// HasData reports whether the entry carries at least one metric or a
// non-empty subdivisions map. Entries without data are dropped from output.
func (e DivisionEntry) HasData() bool {
	return e.MAT != nil || e.INST != nil || e.TOTAL != nil || len(e.Subdivisions) > 0
}

// CityData maps main-division codes to their entries for a single city.
// Subdivision codes never appear as top-level keys; they nest under their
// parent division's Subdivisions map.
type CityData map[string]DivisionEntry

// CityMap is the primary output structure: city key to division data.
// City keys combine the cleaned uppercase city name with either its ZIP
// prefix or the source page number.
type CityMap map[string]CityData

// Provenance records where a CityMap's values came from.
type Provenance string

const (
	// SourceExtracted marks data read from the input document.
	SourceExtracted Provenance = "extracted"

	// SourceSynthetic marks catalog-generated placeholder data emitted when
	// no strategy yielded any city across the whole document.
	SourceSynthetic Provenance = "synthetic"
)
