// Package tabledoc converts tabular screen data into portable Word documents.
//
// A Table is a plain grid of strings: row 0 is the header row, every other
// row is data. The same Table value backs both the HTML rendering of a
// collection and its DOCX export, so a generated document always matches
// what the user saw on screen, regardless of markup or styling changes.
package tabledoc

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Table is an ordered grid of text cells. Row 0 is the header row.
type Table struct {
	Rows [][]string
}

// New creates a table from a header row. Data rows are appended with AddRow.
func New(header ...string) *Table {
	return &Table{Rows: [][]string{header}}
}

// AddRow appends a data row in display order.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// RowCount returns the number of rows, including the header row.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the header row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Header returns the header row, or nil for an empty table.
func (t *Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns all rows after the header row.
func (t *Table) DataRows() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Validate checks that the table is exportable: at least a header row,
// a non-zero column count, and every row as wide as the header.
func (t *Table) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Rows,
			validation.Required.Error("table has no rows"),
			validation.By(rectangular),
		),
	)
}

// rectangular rejects ragged rows. A ragged grid would serialize into a
// structurally inconsistent document table, so it fails up front.
func rectangular(value interface{}) error {
	rows, ok := value.([][]string)
	if !ok || len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	if width == 0 {
		return fmt.Errorf("header row has no cells")
	}
	for i, row := range rows[1:] {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), width)
		}
	}
	return nil
}
