// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document wraps the PDF library behind the three page views the
// extraction strategies consume: plain text, positioned text fragments, and
// clustered table rows. Strategies and tests depend only on the Page
// interface, never on the library directly.
package document

import (
	"fmt"
	"os"
	"sort"

	"github.com/ledongthuc/pdf"
)

// Fragment is one positioned piece of page text. Coordinates are PDF user
// units with the origin at the bottom-left of the page.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Page provides the extraction views of a single document page.
type Page interface {
	// Number is the 1-based page number.
	Number() int

	// PlainText returns the page's text in extraction order.
	PlainText() (string, error)

	// Fragments returns the page's individual positioned text pieces.
	Fragments() ([]Fragment, error)

	// TableRows returns the page text clustered into rows of cells,
	// approximating the page's tabular structure. An empty result means
	// no usable structure was found.
	TableRows() ([][]string, error)
}

// Document is an open PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	path   string
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Document{file: f, reader: r, path: path}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Page returns the n-th page (1-based).
func (d *Document) Page(n int) Page {
	return &pdfPage{page: d.reader.Page(n), number: n}
}

// pdfPage adapts one library page to the Page interface.
type pdfPage struct {
	page   pdf.Page
	number int
}

func (p *pdfPage) Number() int {
	return p.number
}

func (p *pdfPage) PlainText() (string, error) {
	if p.page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", p.number)
	}
	text, err := p.page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: plain text: %w", p.number, err)
	}
	return text, nil
}

func (p *pdfPage) Fragments() ([]Fragment, error) {
	if p.page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", p.number)
	}

	content := p.page.Content()
	frags := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		frags = append(frags, Fragment{Text: t.S, X: t.X, Y: t.Y})
	}
	return frags, nil
}

// cellGap is the horizontal distance, in PDF units, separating two text
// pieces into different table cells.
const cellGap = 12.0

func (p *pdfPage) TableRows() ([][]string, error) {
	if p.page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", p.number)
	}

	rows, err := p.page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d: row extraction: %w", p.number, err)
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := clusterCells(row.Content)
		if len(cells) > 0 {
			table = append(table, cells)
		}
	}
	return table, nil
}

// clusterCells merges X-adjacent text pieces into cells, splitting where
// the horizontal gap exceeds cellGap.
func clusterCells(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	current := sorted[0].S
	prevEnd := sorted[0].X + sorted[0].W

	for _, t := range sorted[1:] {
		if t.S == "" {
			continue
		}
		if t.X-prevEnd > cellGap {
			cells = append(cells, current)
			current = t.S
		} else {
			current += " " + t.S
		}
		if end := t.X + t.W; end > prevEnd {
			prevEnd = end
		}
	}
	cells = append(cells, current)
	return cells
}
