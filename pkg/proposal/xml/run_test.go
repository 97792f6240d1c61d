package xml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func firstRun(t *testing.T, body string) *Run {
	t.Helper()
	doc := mustParse(t, wrapBody(body))
	runs := doc.Body.Paragraphs()[0].Runs()
	if len(runs) == 0 {
		t.Fatal("expected at least one run")
	}
	return runs[0]
}

func propertyNames(p *RunProperties) []string {
	var names []string
	for _, child := range p.Children {
		names = append(names, child.XMLName.Local)
	}
	return names
}

func TestRunGetText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain", `<w:p><w:r><w:t>abc</w:t></w:r></w:p>`, "abc"},
		{"tab and break", `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`, "a\tb\nc"},
		{"page break ignored", `<w:p><w:r><w:t>a</w:t><w:br w:type="page"/></w:r></w:p>`, "a"},
		{"drawing ignored", `<w:p><w:r><w:drawing><wp:inline/></w:drawing><w:t>x</w:t></w:r></w:p>`, "x"},
		{"non-breaking space kept", "<w:p><w:r><w:t>\u00a0</w:t></w:r></w:p>", "\u00a0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstRun(t, tt.body).GetText(); got != tt.want {
				t.Errorf("GetText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunSetText(t *testing.T) {
	r := NewRun("a\tb\nc ")
	if got := r.GetText(); got != "a\tb\nc " {
		t.Errorf("GetText() = %q", got)
	}

	var kinds []string
	for _, c := range r.Content {
		switch v := c.(type) {
		case *Text:
			kinds = append(kinds, "t:"+v.Content)
		case *RawXMLElement:
			kinds = append(kinds, v.XMLName.Local)
		}
	}
	want := []string{"t:a", "tab", "t:b", "br", "t:c "}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}

	last := r.Content[len(r.Content)-1].(*Text)
	if v, ok := attrValue(last.Attrs, "space"); !ok || v != "preserve" {
		t.Errorf("trailing space text should be space-preserving, attrs = %v", last.Attrs)
	}
}

func TestRunPropertiesAccessors(t *testing.T) {
	r := firstRun(t, `<w:p><w:r><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Arial"/>`+
		`<w:b/><w:i w:val="0"/><w:color w:val="1F4E79"/><w:sz w:val="28"/></w:rPr><w:t>x</w:t></w:r></w:p>`)
	p := r.Properties

	if name, ok := p.FontName(); !ok || name != "Calibri" {
		t.Errorf("FontName() = %q, %v", name, ok)
	}
	if size, ok := p.Size(); !ok || size != 28 {
		t.Errorf("Size() = %d, %v", size, ok)
	}
	if color, ok := p.Color(); !ok || color != "1F4E79" {
		t.Errorf("Color() = %q, %v", color, ok)
	}
	if b := p.Bold(); b == nil || !*b {
		t.Errorf("Bold() = %v, want true", b)
	}
	if i := p.Italic(); i == nil || *i {
		t.Errorf("Italic() = %v, want false", i)
	}
}

func TestRunPropertiesUnset(t *testing.T) {
	r := firstRun(t, `<w:p><w:r><w:rPr><w:color w:val="auto"/><w:rFonts w:asciiTheme="minorHAnsi"/></w:rPr><w:t>x</w:t></w:r></w:p>`)
	p := r.Properties

	if _, ok := p.Color(); ok {
		t.Error("auto color should count as unset")
	}
	if _, ok := p.FontName(); ok {
		t.Error("theme-only font should have no font name")
	}
	if _, ok := p.Size(); ok {
		t.Error("size should be unset")
	}
	if p.Bold() != nil || p.Italic() != nil {
		t.Error("bold and italic should be unset")
	}
}

func TestRunPropertiesSchemaOrder(t *testing.T) {
	r := NewRun("x")
	p := r.EnsureProperties()
	p.SetSize(24)
	p.SetColor("FF0000")
	p.SetItalic(true)
	p.SetBold(false)
	p.SetFontName("Georgia")

	want := []string{"rFonts", "b", "i", "color", "sz"}
	if diff := cmp.Diff(want, propertyNames(p)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	font := p.Font()
	if font.ASCII != "Georgia" || font.HAnsi != "Georgia" || font.EastAsia != "Georgia" {
		t.Errorf("Font() = %+v", font)
	}
	if b := p.Bold(); b == nil || *b {
		t.Errorf("Bold() = %v, want false", b)
	}

	doc := NewDocument(&Paragraph{Content: []ParagraphContent{r}})
	out, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	want2 := `<w:rPr><w:rFonts w:ascii="Georgia" w:hAnsi="Georgia" w:eastAsia="Georgia"/><w:b w:val="0"/><w:i/><w:color w:val="FF0000"/><w:sz w:val="24"/></w:rPr>`
	if !strings.Contains(string(out), want2) {
		t.Errorf("output missing %s\n%s", want2, out)
	}
}

func TestSetFontNameKeepsOtherAttributes(t *testing.T) {
	r := firstRun(t, `<w:p><w:r><w:rPr><w:rFonts w:ascii="Arial" w:cs="Mangal"/></w:rPr><w:t>x</w:t></w:r></w:p>`)
	original := r.Properties.Clone()

	r.Properties.SetFontName("Verdana")

	if got := r.Properties.Font(); got.CS != "Mangal" || got.EastAsia != "Verdana" {
		t.Errorf("Font() = %+v", got)
	}
	if name, _ := original.FontName(); name != "Arial" {
		t.Errorf("clone was modified: %q", name)
	}
}
