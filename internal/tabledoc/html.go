package tabledoc

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoTable is returned by FromHTML when the markup contains no table.
var ErrNoTable = errors.New("no table element found")

// FromHTML reads the first <table> in the markup into a Table. Each <tr>
// becomes a row, each <th> or <td> a cell holding its visible text with
// whitespace collapsed. This is the ingestion path for markup produced by
// an earlier render; exports built from live data should construct the
// Table directly.
func FromHTML(r io.Reader) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tableNode := findElement(doc, "table")
	if tableNode == nil {
		return nil, ErrNoTable
	}

	t := &Table{}
	collectRows(tableNode, t)
	return t, nil
}

// collectRows walks the table subtree and appends one row per tr element,
// preserving document order across thead/tbody sections.
func collectRows(n *html.Node, t *Table) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			t.Rows = append(t.Rows, rowCells(c))
			continue
		}
		collectRows(c, t)
	}
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

// findElement returns the first element with the given tag in depth-first
// document order.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent gathers all descendant text with runs of whitespace collapsed
// to single spaces, approximating the rendered text of the cell.
func textContent(n *html.Node) string {
	var sb strings.Builder
	appendText(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func appendText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(c, sb)
	}
}
