package xml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rowTexts(table *Table) []string {
	var texts []string
	for _, row := range table.Rows() {
		texts = append(texts, row.Cells()[0].GetText())
	}
	return texts
}

func TestTableRemoveRows(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []string
	}{
		{"indices 1 and 3", []int{1, 3}, []string{"r0", "r2", "r4"}},
		{"unsorted with duplicate", []int{3, 1, 3}, []string{"r0", "r2", "r4"}},
		{"out of range ignored", []int{-1, 7, 0}, []string{"r1", "r2", "r3", "r4"}},
		{"none", nil, []string{"r0", "r1", "r2", "r3", "r4"}},
		{"all", []int{0, 1, 2, 3, 4}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable([]string{"r0"}, []string{"r1"}, []string{"r2"}, []string{"r3"}, []string{"r4"})
			table.RemoveRows(tt.indices)
			if diff := cmp.Diff(tt.want, rowTexts(table)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableRemoveRowsKeepsTableProperties(t *testing.T) {
	doc := mustParse(t, wrapBody(`<w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr><w:tblGrid/>`+
		`<w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc></w:tr>`+
		`<w:tr><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`))
	table := doc.Body.Tables()[0]

	table.RemoveRows([]int{0})

	if len(table.Content) != 3 {
		t.Fatalf("expected tblPr, tblGrid and one row, got %d items", len(table.Content))
	}
	if diff := cmp.Diff([]string{"b"}, rowTexts(table)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTableCellVerticalAlign(t *testing.T) {
	doc := mustParse(t, wrapBody(`<w:tbl><w:tr><w:tc><w:tcPr><w:tcW w:w="100" w:type="dxa"/><w:vAlign w:val="top"/><w:hideMark/></w:tcPr>`+
		`<w:p/></w:tc><w:tc><w:tcPr><w:tcW w:w="100" w:type="dxa"/><w:hideMark/></w:tcPr><w:p/></w:tc><w:tc><w:p/></w:tc></w:tr></w:tbl>`))
	cells := doc.Body.Tables()[0].Rows()[0].Cells()

	for i, cell := range cells {
		cell.SetVerticalAlign(VAlignCenter)
		if v, ok := cell.Properties.VerticalAlign(); !ok || v != VAlignCenter {
			t.Errorf("cell %d VerticalAlign() = %q, %v", i, v, ok)
		}
	}

	order := func(c *TableCell) []string {
		var names []string
		for _, child := range c.Properties.Children {
			names = append(names, child.XMLName.Local)
		}
		return names
	}
	if diff := cmp.Diff([]string{"tcW", "vAlign", "hideMark"}, order(cells[0])); diff != "" {
		t.Errorf("cell 0 order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"tcW", "vAlign", "hideMark"}, order(cells[1])); diff != "" {
		t.Errorf("cell 1 order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"vAlign"}, order(cells[2])); diff != "" {
		t.Errorf("cell 2 order (-want +got):\n%s", diff)
	}
}

func TestTableCellKind(t *testing.T) {
	plain := NewTableCell(NewParagraph("a"), NewParagraph("b"))
	if plain.Kind() != CellParagraphs {
		t.Errorf("Kind() = %v", plain.Kind())
	}
	if got := plain.GetText(); got != "a\nb" {
		t.Errorf("GetText() = %q", got)
	}

	nested := NewTableCell(NewParagraph("own"), NewTable([]string{"x"}))
	if nested.Kind() != CellNestedTables {
		t.Errorf("Kind() = %v", nested.Kind())
	}
	if len(nested.Tables()) != 1 || len(nested.Paragraphs()) != 1 {
		t.Errorf("Tables() = %d, Paragraphs() = %d", len(nested.Tables()), len(nested.Paragraphs()))
	}
	if CellNestedTables.String() != "nested-tables" {
		t.Errorf("String() = %q", CellNestedTables.String())
	}
}
