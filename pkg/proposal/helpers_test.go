package proposal

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
)

const testNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// documentXML wraps body content into a complete word/document.xml.
func documentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + testNamespaces + `><w:body>` + body + `</w:body></w:document>`
}

// createDOCXBytes creates a minimal DOCX package around the body content
func createDOCXBytes(body string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, documentXML(body))

	styles, _ := w.Create("word/styles.xml")
	io.WriteString(styles, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:styles `+testNamespaces+`/>`)

	w.Close()
	return buf.Bytes()
}

// writeTemplate stores a DOCX with the body content as dir/name.
func writeTemplate(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, createDOCXBytes(body), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

// parseBody parses body content into a document.
func parseBody(t *testing.T, body string) *xml.Document {
	t.Helper()
	doc, err := xml.ParseDocument(strings.NewReader(documentXML(body)))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

// readOutput parses the main document of a generated DOCX package.
func readOutput(t *testing.T, data []byte) *xml.Document {
	t.Helper()
	reader, err := NewDocxReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewDocxReader() error = %v", err)
	}
	content, err := reader.GetDocumentXML()
	if err != nil {
		t.Fatalf("GetDocumentXML() error = %v", err)
	}
	doc, err := xml.ParseDocument(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

func marshal(t *testing.T, doc *xml.Document) string {
	t.Helper()
	out, err := xml.MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	return string(out)
}

// tableRows returns the cell texts of each row of a table.
func tableRows(table *xml.Table) [][]string {
	var rows [][]string
	for _, row := range table.Rows() {
		var cells []string
		for _, cell := range row.Cells() {
			cells = append(cells, cell.GetText())
		}
		rows = append(rows, cells)
	}
	return rows
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// para builds a paragraph with one run per text. Texts are escaped, so tokens
// can be written as they appear in Word.
func para(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, text := range texts {
		b.WriteString(`<w:r><w:t xml:space="preserve">` + textEscaper.Replace(text) + `</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

// tr builds a table row with one single-paragraph cell per text.
func tr(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:tr>")
	for _, text := range texts {
		b.WriteString("<w:tc>" + para(text) + "</w:tc>")
	}
	b.WriteString("</w:tr>")
	return b.String()
}

func tbl(rows ...string) string {
	return "<w:tbl>" + strings.Join(rows, "") + "</w:tbl>"
}
