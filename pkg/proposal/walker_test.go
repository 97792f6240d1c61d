package proposal

import (
	"testing"

	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
	"github.com/google/go-cmp/cmp"
)

func TestWalkTopLevelAndTables(t *testing.T) {
	doc := parseBody(t, para("Proposal for <<Client Name>>")+
		tbl(tr("Client", "<<Client Name>>"), tr("Date", "<<Date>>"))+
		para("Valid until <<VDate>>"))

	stats := Walk(doc, TokenMap{"<<Client Name>>": "Acme", "<<Date>>": "05-03-2025", "<<VDate>>": "30-04-2025"})

	paras := doc.Body.Paragraphs()
	if paras[0].GetText() != "Proposal for Acme" || paras[1].GetText() != "Valid until 30-04-2025" {
		t.Errorf("top-level paragraphs = %q, %q", paras[0].GetText(), paras[1].GetText())
	}
	want := [][]string{{"Client", "Acme"}, {"Date", "05-03-2025"}}
	if diff := cmp.Diff(want, tableRows(doc.Body.Tables()[0])); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	wantStats := WalkStats{Paragraphs: 6, Merged: 4, Cells: 4}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkNestedTableReach(t *testing.T) {
	nested := tbl(tr("Make Automation", "<<M-Price>>"), tr("Total", "<<T-Price>>"))
	deeper := tbl(`<w:tr><w:tc>` + tbl(tr("Deep", "<<T1>>")) + para("") + `</w:tc><w:tc>` + para("x") + `</w:tc></w:tr>`)
	doc := parseBody(t, tbl(
		`<w:tr><w:tc>`+para("Pricing")+`</w:tc><w:tc>`+para("<<Country>> own paragraph")+nested+para("")+`</w:tc></w:tr>`,
		`<w:tr><w:tc>`+deeper+para("")+`</w:tc></w:tr>`,
	))

	stats := Walk(doc, TokenMap{"<<M-Price>>": "$10,000", "<<T-Price>>": "$11,000", "<<Country>>": "India", "<<T1>>": "Zapier"})

	outer := doc.Body.Tables()[0]
	valueCell := outer.Rows()[0].Cells()[1]
	if valueCell.Kind() != xml.CellNestedTables {
		t.Fatalf("Kind() = %v", valueCell.Kind())
	}
	want := [][]string{{"Make Automation", "$10,000"}, {"Total", "$11,000"}}
	if diff := cmp.Diff(want, tableRows(valueCell.Tables()[0])); diff != "" {
		t.Errorf("nested table mismatch (-want +got):\n%s", diff)
	}
	if got := valueCell.Paragraphs()[0].GetText(); got != "<<Country>> own paragraph" {
		t.Errorf("own paragraph of a nested-table cell should be left alone, got %q", got)
	}

	deep := outer.Rows()[1].Cells()[0].Tables()[0].Rows()[0].Cells()[0].Tables()[0]
	if diff := cmp.Diff([][]string{{"Deep", "Zapier"}}, tableRows(deep)); diff != "" {
		t.Errorf("deep table mismatch (-want +got):\n%s", diff)
	}

	if stats.NestedTables != 3 {
		t.Errorf("NestedTables = %d, want 3", stats.NestedTables)
	}
}

func TestWalkCentersEveryCell(t *testing.T) {
	doc := parseBody(t, tbl(
		`<w:tr><w:tc><w:tcPr><w:vAlign w:val="bottom"/></w:tcPr>`+para("a")+`</w:tc>`+
			`<w:tc>`+tbl(tr("n1", "n2"))+para("")+`</w:tc></w:tr>`,
	))

	Walk(doc, TokenMap{})

	var check func(table *xml.Table)
	check = func(table *xml.Table) {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				if cell.Properties == nil {
					t.Errorf("cell %q has no properties", cell.GetText())
					continue
				}
				if v, _ := cell.Properties.VerticalAlign(); v != xml.VAlignCenter {
					t.Errorf("cell %q vAlign = %q", cell.GetText(), v)
				}
				for _, nested := range cell.Tables() {
					check(nested)
				}
			}
		}
	}
	check(doc.Body.Tables()[0])
}

func TestWalkNilDocument(t *testing.T) {
	if stats := Walk(nil, TokenMap{"a": "b"}); stats != (WalkStats{}) {
		t.Errorf("Walk(nil) = %+v", stats)
	}
}
