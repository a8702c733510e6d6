package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/report"
	"github.com/wareroom/stockview/internal/tabledoc"
)

// Layout wraps body in the page skeleton shared by every view.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		fmt.Fprintf(&b, "<title>%s</title>", templ.EscapeString(title))
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/app.css\"></head><body>")
		b.WriteString("<nav class=\"navbar\"><a href=\"/\">Report</a>")
		b.WriteString("<a href=\"/products\">Products</a>")
		b.WriteString("<a href=\"/records\">Imports &amp; Exports</a></nav>")
		b.WriteString("<main class=\"content\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// Notice renders a user-facing warning banner, used when a fetch failed and
// the page falls back to an empty collection.
func Notice(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="notice" role="alert">%s</div>`, templ.EscapeString(message))
		return err
	})
}

// DataTable renders a table model as an HTML table: row 0 as the header,
// remaining rows as data. With no data rows it renders a single placeholder
// row spanning the full width.
func DataTable(tbl *tabledoc.Table, emptyMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table class=\"data-table\"><thead><tr>")
		for _, cell := range tbl.Header() {
			fmt.Fprintf(&b, "<th>%s</th>", templ.EscapeString(cell))
		}
		b.WriteString("</tr></thead><tbody>")

		rows := tbl.DataRows()
		if len(rows) == 0 {
			fmt.Fprintf(&b, `<tr><td colspan="%d">%s</td></tr>`,
				tbl.ColCount(), templ.EscapeString(emptyMessage))
		}
		for _, row := range rows {
			b.WriteString("<tr>")
			for _, cell := range row {
				fmt.Fprintf(&b, "<td>%s</td>", templ.EscapeString(cell))
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RecordSection renders a titled table with its DOCX download link.
func RecordSection(heading string, tbl *tabledoc.Table, emptyMessage, downloadPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="records"><h2>%s</h2><a class="btn download" href="%s">Download DOCX</a>`,
			templ.EscapeString(heading), templ.EscapeString(downloadPath))
		if err != nil {
			return err
		}
		if err := DataTable(tbl, emptyMessage).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</section>")
		return err
	})
}

// ProductCards renders one card per item, or a placeholder message for an
// empty collection.
func ProductCards(items []gateway.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(items) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No products found.</p>`)
			return err
		}

		var b strings.Builder
		b.WriteString(`<div class="product-list">`)
		for _, item := range items {
			b.WriteString(`<div class="product-card">`)
			fmt.Fprintf(&b, "<h3>%s</h3>", templ.EscapeString(item.Name))
			fmt.Fprintf(&b, "<p><b>Description:</b> %s</p>", templ.EscapeString(orDash(item.Description)))
			fmt.Fprintf(&b, "<p><b>Price:</b> %s</p>", templ.EscapeString(price(item.Price)))
			fmt.Fprintf(&b, "<p><b>Quantity:</b> %d</p>", item.Quantity)
			fmt.Fprintf(&b, "<p><b>Warehouses:</b> %s</p>", templ.EscapeString(warehouseNames(item.Warehouses)))
			b.WriteString("</div>")
		}
		b.WriteString("</div>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SearchForm renders the product search box with the active query filled in.
func SearchForm(query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<form class="search" method="get" action="/products"><input type="search" name="q" value="%s" placeholder="Search products"><button type="submit">Search</button></form>`,
			templ.EscapeString(query))
		return err
	})
}

// StatCards renders the four report counters.
func StatCards(s report.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="report-cards">`)
		card := func(label, value string) {
			fmt.Fprintf(&b, `<div class="report-card"><span class="label">%s</span><span class="value">%s</span></div>`,
				templ.EscapeString(label), templ.EscapeString(value))
		}
		card("Total Products", fmt.Sprintf("%d", s.TotalProducts))
		card("Total Sold", fmt.Sprintf("%d", s.TotalSold))
		card("Pending Orders", fmt.Sprintf("%d", s.PendingOrders))
		card("Total Revenue", price(s.TotalRevenue))
		b.WriteString("</div>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// LoginPage is the minimal login surface unauthenticated users land on.
func LoginPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section class="login"><h2>Sign in</h2><p>Please sign in with your inventory account to continue.</p></section>`)
		return err
	})
}
