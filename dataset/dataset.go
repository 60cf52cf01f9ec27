// Package dataset reads product records from xlsx spreadsheets.
package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Field is a cell value tagged with column presence, so "column absent"
// and "present but empty" stay distinguishable downstream.
type Field struct {
	Value   string
	Present bool
}

// Empty reports whether the field carries no usable text.
func (f Field) Empty() bool { return !f.Present || strings.TrimSpace(f.Value) == "" }

// Record is one product row. SKU, Name and URL come from required
// columns; Barcode and Photo from optional ones.
type Record struct {
	SKU  string
	Name string

	URL     Field
	Barcode Field
	Photo   Field
}

// Table holds the records of one spreadsheet in row order.
type Table struct {
	Records []Record
}

// MissingColumnError reports a required header column the spreadsheet
// does not provide under any accepted alias.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

// Column aliases, lower-case. The first name is canonical; the others
// match the headers of the Spanish-language product sheets this tool
// grew up with.
var columnAliases = map[string][]string{
	"sku":           {"sku"},
	"name":          {"name", "nombre"},
	"target_url":    {"target_url", "url"},
	"barcode_value": {"barcode_value", "codigo_barras"},
	"image_url":     {"image_url", "imagen"},
}

var requiredColumns = []string{"sku", "name", "target_url"}

// FromRows builds a Table from raw cell rows. The first row is the
// header; matching is case-insensitive and ignores surrounding space.
// Rows shorter than the header read as empty cells, and rows with no
// content at all are skipped.
func FromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet has no header row")
	}
	idx := map[string]int{}
	for col, h := range rows[0] {
		norm := strings.ToLower(strings.TrimSpace(h))
		for canonical, aliases := range columnAliases {
			for _, alias := range aliases {
				if norm != alias {
					continue
				}
				if _, dup := idx[canonical]; !dup {
					idx[canonical] = col
				}
			}
		}
	}
	for _, req := range requiredColumns {
		if _, ok := idx[req]; !ok {
			return nil, &MissingColumnError{Column: req}
		}
	}

	cell := func(row []string, canonical string) (string, bool) {
		col, ok := idx[canonical]
		if !ok {
			return "", false
		}
		if col >= len(row) {
			return "", true
		}
		return strings.TrimSpace(row[col]), true
	}

	t := &Table{}
	for _, row := range rows[1:] {
		blank := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		var r Record
		r.SKU, _ = cell(row, "sku")
		r.Name, _ = cell(row, "name")
		r.URL.Value, r.URL.Present = cell(row, "target_url")
		r.Barcode.Value, r.Barcode.Present = cell(row, "barcode_value")
		r.Photo.Value, r.Photo.Present = cell(row, "image_url")
		t.Records = append(t.Records, r)
	}
	return t, nil
}

// Read parses the first sheet of an xlsx workbook.
func Read(r io.Reader) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return FromRows(rows)
}

// ReadFile reads an xlsx workbook from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
