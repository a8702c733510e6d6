package tabledoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Styling constants for generated documents. These mirror the dashboard's
// table styling and are not user-configurable.
const (
	titleSize      = "36"     // half-points, ~18px
	cellSize       = "28"     // half-points, ~14px
	titleSpacing   = "300"    // twips below the title paragraph
	cellMarginDXA  = "200"    // twips of padding on every cell side
	borderSize     = "1"      // eighth-points, thin single line
	borderColor    = "000000"
	headerShadeHex = "DDDDDD" // light grey fill for the header row
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ExportDocx serializes the table into a DOCX payload: one bold title
// paragraph followed by one bordered table whose header row is bold and
// shaded. The result is a pure function of the table and title; the caller
// owns delivery (file name, download).
//
// The table must pass Validate: an empty or ragged table returns an error
// instead of a title-only or structurally broken document.
func ExportDocx(t *Table, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocx(&buf, t, title); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocx is ExportDocx writing to w instead of returning bytes.
func WriteDocx(w io.Writer, t *Table, title string) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("export table: %w", err)
	}

	body, err := documentXML(t, title)
	if err != nil {
		return fmt.Errorf("export table: %w", err)
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relationshipsXML)},
		{"docProps/core.xml", corePropertiesXML(title)},
		{"word/document.xml", body},
	}
	for _, part := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("export table: create %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return fmt.Errorf("export table: write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	return nil
}

// WordprocessingML document structure, marshalled with explicit w: prefixes.
// Element order inside property containers follows the OOXML schema sequence
// so strict validators accept the output.

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Title xmlParagraph `xml:"w:p"`
	Table xmlTable     `xml:"w:tbl"`
}

type xmlParagraph struct {
	Props *xmlParaProps `xml:"w:pPr,omitempty"`
	Run   xmlRun        `xml:"w:r"`
}

type xmlParaProps struct {
	Spacing *xmlSpacing `xml:"w:spacing,omitempty"`
}

type xmlSpacing struct {
	After string `xml:"w:after,attr"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"w:rPr,omitempty"`
	Text  xmlText      `xml:"w:t"`
}

type xmlRunProps struct {
	Bold *xmlEmpty `xml:"w:b,omitempty"`
	Size *xmlValue `xml:"w:sz,omitempty"`
}

type xmlEmpty struct{}

type xmlValue struct {
	Val string `xml:"w:val,attr"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type xmlTable struct {
	Props xmlTableProps `xml:"w:tblPr"`
	Grid  xmlTableGrid  `xml:"w:tblGrid"`
	Rows  []xmlTableRow `xml:"w:tr"`
}

type xmlTableProps struct {
	Width xmlTableWidth `xml:"w:tblW"`
}

type xmlTableWidth struct {
	W    string `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlTableGrid struct {
	Cols []xmlEmpty `xml:"w:gridCol"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"w:tc"`
}

type xmlTableCell struct {
	Props xmlCellProps `xml:"w:tcPr"`
	Para  xmlParagraph `xml:"w:p"`
}

type xmlCellProps struct {
	Borders xmlCellBorders `xml:"w:tcBorders"`
	Shading *xmlShading    `xml:"w:shd,omitempty"`
	Margins xmlCellMargins `xml:"w:tcMar"`
}

type xmlCellBorders struct {
	Top    xmlBorder `xml:"w:top"`
	Left   xmlBorder `xml:"w:left"`
	Bottom xmlBorder `xml:"w:bottom"`
	Right  xmlBorder `xml:"w:right"`
}

type xmlBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    string `xml:"w:sz,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlShading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type xmlCellMargins struct {
	Top    xmlTableWidth `xml:"w:top"`
	Left   xmlTableWidth `xml:"w:left"`
	Bottom xmlTableWidth `xml:"w:bottom"`
	Right  xmlTableWidth `xml:"w:right"`
}

// documentXML builds the main document part: title paragraph then table.
func documentXML(t *Table, title string) ([]byte, error) {
	doc := xmlDocument{
		NS: wordprocessingNS,
		Body: xmlBody{
			Title: xmlParagraph{
				Props: &xmlParaProps{Spacing: &xmlSpacing{After: titleSpacing}},
				Run:   run(title, true, titleSize),
			},
			Table: tableXML(t),
		},
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func tableXML(t *Table) xmlTable {
	tbl := xmlTable{
		Props: xmlTableProps{Width: xmlTableWidth{W: "0", Type: "auto"}},
		Grid:  xmlTableGrid{Cols: make([]xmlEmpty, t.ColCount())},
		Rows:  make([]xmlTableRow, 0, t.RowCount()),
	}
	for i, row := range t.Rows {
		cells := make([]xmlTableCell, 0, len(row))
		for _, text := range row {
			cells = append(cells, cell(text, i == 0))
		}
		tbl.Rows = append(tbl.Rows, xmlTableRow{Cells: cells})
	}
	return tbl
}

func cell(text string, header bool) xmlTableCell {
	border := xmlBorder{Val: "single", Sz: borderSize, Color: borderColor}
	margin := xmlTableWidth{W: cellMarginDXA, Type: "dxa"}
	props := xmlCellProps{
		Borders: xmlCellBorders{Top: border, Left: border, Bottom: border, Right: border},
		Margins: xmlCellMargins{Top: margin, Left: margin, Bottom: margin, Right: margin},
	}
	if header {
		props.Shading = &xmlShading{Val: "clear", Color: "auto", Fill: headerShadeHex}
	}
	return xmlTableCell{
		Props: props,
		Para:  xmlParagraph{Run: run(text, header, cellSize)},
	}
}

func run(text string, bold bool, size string) xmlRun {
	props := &xmlRunProps{Size: &xmlValue{Val: size}}
	if bold {
		props.Bold = &xmlEmpty{}
	}
	return xmlRun{
		Props: props,
		Text:  xmlText{Space: "preserve", Value: sanitizeText(text)},
	}
}

// sanitizeText strips characters that cannot appear in XML character data:
// control characters other than tab/newline/CR, and invalid UTF-8 sequences.
// Markup characters are left alone; the XML encoder escapes those.
func sanitizeText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, s)
}

// Fixed package parts. A DOCX file is a zip with a content-type manifest,
// package relationships, and the document part itself.
const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const relationshipsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

func corePropertiesXML(title string) []byte {
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(sanitizeText(title))) //nolint:errcheck // bytes.Buffer never fails

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	buf.WriteString(`<dc:title>`)
	buf.Write(esc.Bytes())
	buf.WriteString(`</dc:title>`)
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}
