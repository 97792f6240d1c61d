package xml

import (
	"encoding/xml"
	"strings"
)

// Document represents a Word document structure
type Document struct {
	ProcInst *xml.ProcInst
	XMLName  xml.Name
	Attrs    []xml.Attr // root element attributes, namespace declarations included
	// Leading and Trailing hold elements around the body (w:background and the like)
	Leading  []*RawXMLElement
	Body     *Body
	Trailing []*RawXMLElement
}

// Body represents the document body
type Body struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	// Elements maintains the order of all body elements, section properties included
	Elements []BodyElement
}

// NewDocument creates a document with the main WordprocessingML namespace declared.
func NewDocument(elements ...BodyElement) *Document {
	return &Document{
		ProcInst: &xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8" standalone="yes"`)},
		XMLName:  wName("document"),
		Attrs: []xml.Attr{
			{Name: xml.Name{Space: "xmlns", Local: WordPrefix}, Value: "http://schemas.openxmlformats.org/wordprocessingml/2006/main"},
			{Name: xml.Name{Space: "xmlns", Local: "r"}, Value: "http://schemas.openxmlformats.org/officeDocument/2006/relationships"},
		},
		Body: &Body{XMLName: wName("body"), Elements: elements},
	}
}

// Paragraphs returns the top-level paragraphs of the body.
func (b *Body) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, el := range b.Elements {
		if p, ok := el.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns the top-level tables of the body.
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, el := range b.Elements {
		if t, ok := el.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ExtractNamespaces returns the namespace declarations of the root element keyed by prefix
func (doc *Document) ExtractNamespaces() map[string]string {
	namespaces := make(map[string]string)
	for _, attr := range doc.Attrs {
		switch {
		case attr.Name.Space == "xmlns":
			namespaces[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			namespaces[""] = attr.Value
		case attr.Name.Space == "" && strings.HasPrefix(attr.Name.Local, "xmlns:"):
			namespaces[strings.TrimPrefix(attr.Name.Local, "xmlns:")] = attr.Value
		}
	}
	return namespaces
}

// MarshalDocument serializes the document back to word/document.xml content
func MarshalDocument(doc *Document) ([]byte, error) {
	var e encoder
	if doc.ProcInst != nil {
		e.writeToken(*doc.ProcInst)
	}

	root := nameOr(doc.XMLName, "document")
	e.writeStart(root, doc.Attrs, false)
	for _, raw := range doc.Leading {
		e.writeRaw(raw)
	}
	if doc.Body != nil {
		body := nameOr(doc.Body.XMLName, "body")
		e.writeStart(body, doc.Body.Attrs, false)
		for _, el := range doc.Body.Elements {
			e.writeBodyElement(el)
		}
		e.writeEnd(body)
	}
	for _, raw := range doc.Trailing {
		e.writeRaw(raw)
	}
	e.writeEnd(root)

	return e.buf.Bytes(), nil
}
