package proposal

import (
	"strings"

	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
)

// valueCell is the index of the cell whose emptiness marks a row for removal.
const valueCell = 1

// PruneTable removes every row that has more than one cell and whose value
// cell (the second one) is blank. Candidates are collected first and then
// removed highest index first. The removed indices are returned ascending.
//
// A value cell is blank only if its own paragraphs and every nested table
// inside it are blank: a value cell holding nothing but a non-empty nested
// table keeps its row.
func PruneTable(t *xml.Table) []int {
	var candidates []int
	for i, row := range t.Rows() {
		cells := row.Cells()
		if len(cells) > valueCell && isBlankCell(cells[valueCell]) {
			candidates = append(candidates, i)
		}
	}
	t.RemoveRows(candidates)
	return candidates
}

// PruneDocument prunes every table of the body, nested tables first.
// It returns the total number of rows removed.
func PruneDocument(doc *xml.Document) int {
	if doc == nil || doc.Body == nil {
		return 0
	}
	removed := 0
	for _, t := range doc.Body.Tables() {
		removed += pruneTree(t)
	}
	return removed
}

func pruneTree(t *xml.Table) int {
	removed := 0
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			for _, nested := range cell.Tables() {
				removed += pruneTree(nested)
			}
		}
	}
	return removed + len(PruneTable(t))
}

// isBlankCell reports whether the cell holds only whitespace, counting the
// text of any nested tables. Non-breaking spaces are whitespace.
func isBlankCell(c *xml.TableCell) bool {
	if strings.TrimSpace(c.GetText()) != "" {
		return false
	}
	for _, nested := range c.Tables() {
		for _, row := range nested.Rows() {
			for _, cell := range row.Cells() {
				if !isBlankCell(cell) {
					return false
				}
			}
		}
	}
	return true
}
