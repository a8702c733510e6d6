// Package render turns fetched collections into HTML components and the
// table models behind them.
//
// Each collection has a single table model builder; the HTML table and the
// DOCX export both consume that model, so a downloaded document always
// matches the rendered screen cell for cell.
package render

import (
	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/tabledoc"
)

// ImportsTable builds the nine-column table model for import records.
func ImportsTable(records []gateway.ImportRecord) *tabledoc.Table {
	tbl := tabledoc.New("ID", "Item", "Date", "Document No.", "Vendor", "Ordered", "Billed", "Received", "Status")
	for _, rec := range records {
		tbl.AddRow(
			formatID(rec.ID),
			itemName(rec.Item),
			orDash(rec.Date),
			orDash(rec.DocumentNumber),
			orDash(rec.VendorName),
			formatQty(rec.QuantityOrdered),
			formatQty(rec.QuantityBilled),
			formatQty(rec.QuantityReceived),
			orDash(rec.Status),
		)
	}
	return tbl
}

// ExportsTable builds the nine-column table model for export records.
func ExportsTable(records []gateway.ExportRecord) *tabledoc.Table {
	tbl := tabledoc.New("ID", "Item", "Date", "Document No.", "Customer", "Ordered", "Billed", "Shipped", "Status")
	for _, rec := range records {
		item := rec.Item
		tbl.AddRow(
			formatID(rec.ID),
			itemName(&item),
			orDash(rec.Date),
			orDash(rec.DocumentNumber),
			orDash(rec.CustomerName),
			formatQty(rec.QuantityOrdered),
			formatQty(rec.QuantityBilled),
			formatQty(rec.QuantityShipped),
			orDash(rec.Status),
		)
	}
	return tbl
}
