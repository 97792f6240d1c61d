package proposal

import (
	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
)

// WalkStats summarises one pass of the walker.
type WalkStats struct {
	Paragraphs   int // paragraphs visited
	Merged       int // paragraphs rewritten
	Cells        int // cells visited, nested ones included
	NestedTables int
}

type walker struct {
	merger *Merger
	stats  WalkStats
}

// Walk merges the tokens into every top-level paragraph and every table of
// the document body. A cell holding nested tables is merged through those
// tables only; its own paragraphs are left as they are. Every visited cell
// is vertically centered afterwards.
func Walk(doc *xml.Document, tokens TokenMap) WalkStats {
	w := &walker{merger: NewMerger(tokens)}
	if doc == nil || doc.Body == nil {
		return w.stats
	}

	for _, p := range doc.Body.Paragraphs() {
		w.paragraph(p)
	}
	for _, t := range doc.Body.Tables() {
		w.table(t)
	}
	return w.stats
}

func (w *walker) paragraph(p *xml.Paragraph) {
	w.stats.Paragraphs++
	if w.merger.MergeParagraph(p) {
		w.stats.Merged++
	}
}

func (w *walker) table(t *xml.Table) {
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			w.cell(cell)
		}
	}
}

func (w *walker) cell(c *xml.TableCell) {
	switch c.Kind() {
	case xml.CellNestedTables:
		for _, nested := range c.Tables() {
			w.stats.NestedTables++
			w.table(nested)
		}
	case xml.CellParagraphs:
		for _, p := range c.Paragraphs() {
			w.paragraph(p)
		}
	}
	c.SetVerticalAlign(xml.VAlignCenter)
	w.stats.Cells++
}
