// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"reflect"
	"testing"

	"github.com/pdiddy/costindex/pkg/types"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []float64
	}{
		{
			name: "value run",
			in:   "98.5 102.3 100.1",
			want: []float64{98.5, 102.3, 100.1},
		},
		{
			name: "integers excluded",
			in:   "page 14 of 250",
			want: []float64{},
		},
		{
			name: "mixed integers and decimals",
			in:   "350 98.5 352 101.2",
			want: []float64{98.5, 101.2},
		},
		{
			name: "embedded in label text",
			in:   "MAT. 96.2 104.7",
			want: []float64{96.2, 104.7},
		},
		{
			name: "empty input",
			in:   "",
			want: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Numbers(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Numbers(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCityZip(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantCity string
		wantZip  string
		wantOK   bool
	}{
		{
			name:     "single prefix",
			in:       "ABILENE 796",
			wantCity: "ABILENE",
			wantZip:  "796",
			wantOK:   true,
		},
		{
			name:     "zip range",
			in:       "BIRMINGHAM 350 - 352",
			wantCity: "BIRMINGHAM",
			wantZip:  "350 - 352",
			wantOK:   true,
		},
		{
			name:     "comma list",
			in:       "LOS ANGELES 900 - 902, 904",
			wantCity: "LOS ANGELES",
			wantZip:  "900 - 902, 904",
			wantOK:   true,
		},
		{
			name:     "multi-word name",
			in:       "NEW YORK 100 - 102",
			wantCity: "NEW YORK",
			wantZip:  "100 - 102",
			wantOK:   true,
		},
		{
			name:   "excluded vocabulary",
			in:     "WEIGHTED AVERAGE 123",
			wantOK: false,
		},
		{
			name:   "division name",
			in:     "CONCRETE 030",
			wantOK: false,
		},
		{
			name:   "too short",
			in:     "AB 123",
			wantOK: false,
		},
		{
			name:   "no zip",
			in:     "ABILENE",
			wantOK: false,
		},
		{
			name:   "lowercase start",
			in:     "abilene 796",
			wantOK: false,
		},
		{
			name:   "value run is not a city",
			in:     "98.5 102.3 100.1",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, zip, ok := CityZip(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("CityZip(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if city != tt.wantCity {
				t.Errorf("city = %q, want %q", city, tt.wantCity)
			}
			if zip != tt.wantZip {
				t.Errorf("zip = %q, want %q", zip, tt.wantZip)
			}
		})
	}
}

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantClass  RowClass
		wantKind   types.DataKind
		wantValues int
	}{
		{
			name:       "MAT row with period",
			in:         "MAT. 98.5 102.3 100.1 97.2",
			wantClass:  RowData,
			wantKind:   types.KindMAT,
			wantValues: 4,
		},
		{
			name:       "INST row without period",
			in:         "INST 85.2 90.1 88.8",
			wantClass:  RowData,
			wantKind:   types.KindINST,
			wantValues: 3,
		},
		{
			name:       "TOTAL row",
			in:         "TOTAL. 91.9 96.2 94.5",
			wantClass:  RowData,
			wantKind:   types.KindTOTAL,
			wantValues: 3,
		},
		{
			name:      "publication banner",
			in:        "MASTERFORMAT City Cost Indexes continued",
			wantClass: RowHeaderNoise,
		},
		{
			name:      "basis line",
			in:        "Year 2023 Base = 100",
			wantClass: RowHeaderNoise,
		},
		{
			name:      "division code header",
			in:        "015433 0241, 31 - 34 03 04",
			wantClass: RowHeaderNoise,
		},
		{
			name:      "city header is unclassified",
			in:        "ABILENE 796",
			wantClass: RowUnclassified,
		},
		{
			name:      "empty line",
			in:        "",
			wantClass: RowUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ClassifyRow(tt.in)
			if row.Class != tt.wantClass {
				t.Fatalf("ClassifyRow(%q).Class = %v, want %v", tt.in, row.Class, tt.wantClass)
			}
			if row.Class != RowData {
				return
			}
			if row.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", row.Kind, tt.wantKind)
			}
			if len(row.Values) != tt.wantValues {
				t.Errorf("len(Values) = %d, want %d", len(row.Values), tt.wantValues)
			}
		})
	}
}

func TestLabelKind(t *testing.T) {
	tests := []struct {
		in       string
		wantKind types.DataKind
		wantOK   bool
	}{
		{"MAT.", types.KindMAT, true},
		{"MAT", types.KindMAT, true},
		{"mat", types.KindMAT, true},
		{" INST. ", types.KindINST, true},
		{"TOTAL", types.KindTOTAL, true},
		{"SUBTOTAL", "", false},
		{"MATERIAL", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		kind, ok := LabelKind(tt.in)
		if ok != tt.wantOK || kind != tt.wantKind {
			t.Errorf("LabelKind(%q) = (%q, %v), want (%q, %v)", tt.in, kind, ok, tt.wantKind, tt.wantOK)
		}
	}
}

func TestCityKey(t *testing.T) {
	tests := []struct {
		name string
		city string
		zip  string
		page int
		want string
	}{
		{
			name: "simple",
			city: "ABILENE",
			zip:  "796",
			want: "ABILENE_796",
		},
		{
			name: "zip range normalized",
			city: "BIRMINGHAM",
			zip:  "350 - 352",
			want: "BIRMINGHAM_350-352",
		},
		{
			name: "multi-word city",
			city: "NEW YORK",
			zip:  "100 - 102",
			want: "NEW_YORK_100-102",
		},
		{
			name: "no zip falls back to page",
			city: "ABILENE",
			zip:  "",
			page: 7,
			want: "ABILENE_PAGE7",
		},
		{
			name: "punctuation stripped",
			city: "ST. LOUIS",
			zip:  "630 - 631",
			want: "ST_LOUIS_630-631",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CityKey(tt.city, tt.zip, tt.page)
			if got != tt.want {
				t.Errorf("CityKey(%q, %q, %d) = %q, want %q", tt.city, tt.zip, tt.page, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  ABILENE   796  ", "ABILENE 796"},
		{"ST. LOUIS\t630", "ST. LOUIS 630"},
		{"CITY*NAME", "CITYNAME"},
	}

	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
