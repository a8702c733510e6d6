package render

import (
	"reflect"
	"testing"

	"github.com/wareroom/stockview/internal/gateway"
)

func TestImportsTable(t *testing.T) {
	records := []gateway.ImportRecord{
		{
			ID:               4,
			Item:             &gateway.ItemRef{ID: 1, Name: "Widget"},
			Date:             "2026-01-15",
			DocumentNumber:   "IMP-4",
			VendorName:       "Acme Supply",
			QuantityOrdered:  10,
			QuantityBilled:   10,
			QuantityReceived: 8,
			Status:           "Partial",
		},
		{
			ID:             5,
			Date:           "2026-01-20",
			DocumentNumber: "IMP-5",
			Status:         "Pending",
		},
	}

	tbl := ImportsTable(records)
	if err := tbl.Validate(); err != nil {
		t.Fatalf("built table failed validation: %v", err)
	}
	if got := tbl.ColCount(); got != 9 {
		t.Errorf("ColCount = %d, want 9", got)
	}

	want := []string{"4", "Widget", "2026-01-15", "IMP-4", "Acme Supply", "10", "10", "8", "Partial"}
	if !reflect.DeepEqual(tbl.Rows[1], want) {
		t.Errorf("row 1 = %v, want %v", tbl.Rows[1], want)
	}

	// Missing item and vendor fall back to a dash.
	if got := tbl.Rows[2][1]; got != Dash {
		t.Errorf("missing item rendered as %q, want %q", got, Dash)
	}
	if got := tbl.Rows[2][4]; got != Dash {
		t.Errorf("missing vendor rendered as %q, want %q", got, Dash)
	}
}

func TestExportsTable(t *testing.T) {
	records := []gateway.ExportRecord{
		{
			ID:              7,
			Item:            gateway.ItemRef{ID: 2},
			Date:            "2026-02-02",
			DocumentNumber:  "EXP-7",
			QuantityOrdered: 5,
			QuantityBilled:  5,
			QuantityShipped: 5,
			Status:          "Shipped",
		},
	}

	tbl := ExportsTable(records)
	if err := tbl.Validate(); err != nil {
		t.Fatalf("built table failed validation: %v", err)
	}

	header := tbl.Header()
	if header[4] != "Customer" || header[7] != "Shipped" {
		t.Errorf("unexpected header: %v", header)
	}

	row := tbl.Rows[1]
	if row[1] != Dash {
		t.Errorf("unnamed item rendered as %q, want %q", row[1], Dash)
	}
	if row[4] != Dash {
		t.Errorf("missing customer rendered as %q, want %q", row[4], Dash)
	}
	if row[7] != "5" || row[8] != "Shipped" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestEmptyCollectionsKeepHeaderRow(t *testing.T) {
	imports := ImportsTable(nil)
	exports := ExportsTable(nil)

	if imports.RowCount() != 1 || exports.RowCount() != 1 {
		t.Errorf("empty collections should build header-only tables, got %d and %d rows",
			imports.RowCount(), exports.RowCount())
	}
}
