package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	XMLName    xml.Name
	Attrs      []xml.Attr
	Properties *RawXMLElement // w:pPr, kept verbatim
	// Content maintains the order of runs and everything else
	Content []ParagraphContent
}

func (*Paragraph) isBodyElement() {}

// NewParagraph creates a paragraph with one run per text.
func NewParagraph(texts ...string) *Paragraph {
	p := &Paragraph{XMLName: wName("p")}
	for _, text := range texts {
		p.AddRun(text)
	}
	return p
}

// Runs returns the paragraph's direct runs in order.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Content {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// GetText returns the visible text of the paragraph: its direct runs plus
// runs nested in text containers such as hyperlinks, insertions, smart
// tags, simple fields and content controls, in document order.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, c := range p.Content {
		switch v := c.(type) {
		case *Run:
			sb.WriteString(v.GetText())
		case *RawXMLElement:
			sb.WriteString(v.RunText())
		}
	}
	return sb.String()
}

// Clear removes all content from the paragraph, keeping its properties.
func (p *Paragraph) Clear() {
	p.Content = nil
}

// AddRun appends a new run with the given text and returns it.
func (p *Paragraph) AddRun(text string) *Run {
	r := NewRun(text)
	p.Content = append(p.Content, r)
	return r
}
