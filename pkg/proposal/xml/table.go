package xml

import (
	"encoding/xml"
	"slices"
	"strings"
)

// Table represents a table in the document
type Table struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	// Content holds rows and table-level elements (tblPr, tblGrid) in order
	Content []TableContent
}

func (*Table) isBodyElement() {}

// NewTable creates a table from rows of cell texts.
func NewTable(rows ...[]string) *Table {
	t := &Table{XMLName: wName("tbl")}
	for _, cells := range rows {
		t.Content = append(t.Content, NewTableRow(cells...))
	}
	return t
}

// Rows returns the table rows in order.
func (t *Table) Rows() []*TableRow {
	var rows []*TableRow
	for _, c := range t.Content {
		if r, ok := c.(*TableRow); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// RemoveRows removes the rows at the given row indices (as returned by Rows).
// Rows are detached highest index first so that lower indices stay valid
// while the structure changes. Out-of-range and duplicate indices are ignored.
func (t *Table) RemoveRows(indices []int) {
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for i := len(sorted) - 1; i >= 0; i-- {
		t.removeRowAt(sorted[i])
	}
}

func (t *Table) removeRowAt(index int) {
	if index < 0 {
		return
	}
	n := 0
	for i, c := range t.Content {
		if _, ok := c.(*TableRow); !ok {
			continue
		}
		if n == index {
			t.Content = slices.Delete(t.Content, i, i+1)
			return
		}
		n++
	}
}

// TableRow represents a row in a table
type TableRow struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	// Content holds cells and row-level elements (trPr, tblPrEx) in order
	Content []RowContent
}

func (*TableRow) isTableContent() {}

// NewTableRow creates a row with one single-paragraph cell per text.
func NewTableRow(texts ...string) *TableRow {
	r := &TableRow{XMLName: wName("tr")}
	for _, text := range texts {
		r.Content = append(r.Content, NewTableCell(NewParagraph(text)))
	}
	return r
}

// Cells returns the row's cells in order.
func (r *TableRow) Cells() []*TableCell {
	var cells []*TableCell
	for _, c := range r.Content {
		if cell, ok := c.(*TableCell); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// CellKind distinguishes what a cell's content is processed as.
type CellKind int

const (
	// CellParagraphs is a cell whose content is its own paragraphs
	CellParagraphs CellKind = iota
	// CellNestedTables is a cell holding at least one nested table
	CellNestedTables
)

func (k CellKind) String() string {
	switch k {
	case CellParagraphs:
		return "paragraphs"
	case CellNestedTables:
		return "nested-tables"
	default:
		return "unknown"
	}
}

// TableCell represents a cell in a table
type TableCell struct {
	XMLName    xml.Name
	Attrs      []xml.Attr
	Properties *TableCellProperties
	Content    []BodyElement
}

func (*TableCell) isRowContent() {}

// NewTableCell creates a cell with the given content.
func NewTableCell(content ...BodyElement) *TableCell {
	return &TableCell{XMLName: wName("tc"), Content: content}
}

// Kind reports whether the cell holds nested tables.
func (c *TableCell) Kind() CellKind {
	if len(c.Tables()) > 0 {
		return CellNestedTables
	}
	return CellParagraphs
}

// Paragraphs returns the cell's own paragraphs in order.
func (c *TableCell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, el := range c.Content {
		if p, ok := el.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns the tables nested directly in the cell.
func (c *TableCell) Tables() []*Table {
	var tables []*Table
	for _, el := range c.Content {
		if t, ok := el.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// GetText returns the text of the cell's own paragraphs joined by newlines.
func (c *TableCell) GetText() string {
	paras := c.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.GetText()
	}
	return strings.Join(texts, "\n")
}

// EnsureProperties returns the cell's properties, creating an empty w:tcPr if needed.
func (c *TableCell) EnsureProperties() *TableCellProperties {
	if c.Properties == nil {
		c.Properties = &TableCellProperties{propertyList: propertyList{XMLName: wName("tcPr")}}
	}
	return c.Properties
}

// Vertical alignment values for table cells
const (
	VAlignTop    = "top"
	VAlignCenter = "center"
	VAlignBottom = "bottom"
)

// SetVerticalAlign sets the cell's vertical alignment.
func (c *TableCell) SetVerticalAlign(val string) {
	c.EnsureProperties().SetVerticalAlign(val)
}

// TableCellProperties represents cell properties (w:tcPr)
type TableCellProperties struct {
	propertyList
}

// VerticalAlign returns the cell's vertical alignment.
func (p *TableCellProperties) VerticalAlign() (string, bool) {
	el := p.get("vAlign")
	if el == nil {
		return "", false
	}
	return el.Attr("val")
}

// SetVerticalAlign sets the vertical alignment, keeping w:vAlign at its schema position.
func (p *TableCellProperties) SetVerticalAlign(val string) {
	p.set(NewElement("vAlign", xml.Attr{Name: xml.Name{Local: "val"}, Value: val}), cellPropertyOrder)
}

// Has reports whether a property element with the given local name is present.
func (p *TableCellProperties) Has(local string) bool {
	return p.get(local) != nil
}
