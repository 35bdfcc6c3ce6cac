// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema defines the fixed MASTERFORMAT division layout the
// converter maps extracted values onto. The layout is positional: a parsed
// data row carries one value per main division, and the two divisions that
// own subdivisions additionally consume the slots immediately following
// their own.
package schema

import "fmt"

// Subdivision is a finer cost breakdown nested under a main division.
type Subdivision struct {
	Code        string
	Description string
}

// Division is one of the 13 fixed cost categories tracked per city.
type Division struct {
	Code        string
	Description string

	// Subdivisions, when non-empty, occupy the value slots immediately
	// after this division's slot, in definition order.
	Subdivisions []Subdivision
}

// SchemaID names this layout in summaries and the run index.
const SchemaID = "mf2018/13"

// RowValueBudget is the number of values a full source row carries:
// 13 main divisions plus 7 subdivision slots.
const RowValueBudget = 20

// MainDivisionCount is the number of top-level divisions in the layout.
const MainDivisionCount = 13

// divisions is the layout in the exact order values appear in a parsed row.
var divisions = []Division{
	{Code: "015433", Description: "CONTRACTOR EQUIPMENT"},
	{
		Code:        "0241, 31 - 34",
		Description: "SITE & INFRASTRUCTURE, DEMOLITION",
		Subdivisions: []Subdivision{
			{Code: "0310", Description: "Concrete Forming & Accessories"},
			{Code: "0320", Description: "Concrete Reinforcing"},
			{Code: "0330", Description: "Cast-in-Place Concrete"},
		},
	},
	{Code: "03", Description: "CONCRETE"},
	{Code: "04", Description: "MASONRY"},
	{Code: "05", Description: "METALS"},
	{Code: "06", Description: "WOOD, PLASTICS & COMPOSITES"},
	{Code: "07", Description: "THERMAL & MOISTURE PROTECTION"},
	{Code: "08", Description: "OPENINGS"},
	{
		Code:        "09",
		Description: "FINISHES",
		Subdivisions: []Subdivision{
			{Code: "0920", Description: "Plaster & Gypsum Board"},
			{Code: "0950, 0980", Description: "Ceilings & Acoustic Treatment"},
			{Code: "0960", Description: "Flooring"},
			{Code: "0970, 0990", Description: "Wall Finishes & Painting/Coating"},
		},
	},
	{Code: "COVERS", Description: "DIVS. 10 - 14, 25, 28, 41, 43, 44, 46"},
	{Code: "21, 22, 23", Description: "FIRE SUPPRESSION, PLUMBING & HVAC"},
	{Code: "26, 27, 3370", Description: "ELECTRICAL, COMMUNICATIONS & UTIL."},
	{Code: "MF2018", Description: "WEIGHTED AVERAGE"},
}

// Main returns the ordered main divisions. Callers must not mutate the
// returned slice.
func Main() []Division {
	return divisions
}

// SubdivisionSlot returns the value-slot index of the j-th subdivision of
// the division at main index i: the slot immediately following the parent,
// offset by definition order.
func SubdivisionSlot(i, j int) int {
	return i + 1 + j
}

// IsSubdivisionCode reports whether code belongs to any division's
// subdivision list. Such codes must never appear as top-level keys.
func IsSubdivisionCode(code string) bool {
	for _, d := range divisions {
		for _, s := range d.Subdivisions {
			if s.Code == code {
				return true
			}
		}
	}
	return false
}

// Verify checks the layout invariants the extraction strategies assume.
// It is called once at pipeline start so a bad edit to the table fails
// loudly instead of silently misaligning values.
func Verify() error {
	if len(divisions) != MainDivisionCount {
		return fmt.Errorf("schema: %d main divisions, want %d", len(divisions), MainDivisionCount)
	}

	seen := make(map[string]bool)
	subSlots := 0
	for i, d := range divisions {
		if d.Code == "" || d.Description == "" {
			return fmt.Errorf("schema: division %d has empty code or description", i)
		}
		if seen[d.Code] {
			return fmt.Errorf("schema: duplicate division code %q", d.Code)
		}
		seen[d.Code] = true

		for j, s := range d.Subdivisions {
			subSlots++
			if seen[s.Code] {
				return fmt.Errorf("schema: subdivision code %q collides with another code", s.Code)
			}
			seen[s.Code] = true
			if slot := SubdivisionSlot(i, j); slot >= RowValueBudget {
				return fmt.Errorf("schema: subdivision %q slot %d exceeds row budget %d", s.Code, slot, RowValueBudget)
			}
		}
	}

	if MainDivisionCount+subSlots > RowValueBudget {
		return fmt.Errorf("schema: %d divisions + %d subdivision slots exceed row budget %d",
			MainDivisionCount, subSlots, RowValueBudget)
	}
	return nil
}
