package xml

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// encoder writes elements with their prefixes exactly as stored.
// encoding/xml.Encoder cannot be used here: it rewrites prefixed names
// into xmlns declarations and escapes newlines inside text.
type encoder struct {
	buf bytes.Buffer
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func (e *encoder) writeStart(name xml.Name, attrs []xml.Attr, selfClose bool) {
	e.buf.WriteByte('<')
	e.buf.WriteString(qualified(name))
	for _, a := range attrs {
		e.buf.WriteByte(' ')
		e.buf.WriteString(qualified(a.Name))
		e.buf.WriteString(`="`)
		attrEscaper.WriteString(&e.buf, a.Value)
		e.buf.WriteByte('"')
	}
	if selfClose {
		e.buf.WriteString("/>")
		return
	}
	e.buf.WriteByte('>')
}

func (e *encoder) writeEnd(name xml.Name) {
	e.buf.WriteString("</")
	e.buf.WriteString(qualified(name))
	e.buf.WriteByte('>')
}

func (e *encoder) writeText(s string) {
	textEscaper.WriteString(&e.buf, s)
}

func (e *encoder) writeToken(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		e.writeStart(t.Name, t.Attr, false)
	case xml.EndElement:
		e.writeEnd(t.Name)
	case xml.CharData:
		e.writeText(string(t))
	case xml.Comment:
		e.buf.WriteString("<!--")
		e.buf.Write(t)
		e.buf.WriteString("-->")
	case xml.ProcInst:
		e.buf.WriteString("<?")
		e.buf.WriteString(t.Target)
		if len(t.Inst) > 0 {
			e.buf.WriteByte(' ')
			e.buf.Write(t.Inst)
		}
		e.buf.WriteString("?>")
	case xml.Directive:
		e.buf.WriteString("<!")
		e.buf.Write(t)
		e.buf.WriteByte('>')
	}
}

func (e *encoder) writeRaw(r *RawXMLElement) {
	if len(r.Tokens) == 0 {
		e.writeStart(r.XMLName, r.Attrs, true)
		return
	}
	e.writeStart(r.XMLName, r.Attrs, false)
	for i := 0; i < len(r.Tokens); i++ {
		// An element with no content is written self-closing
		if start, ok := r.Tokens[i].(xml.StartElement); ok && i+1 < len(r.Tokens) {
			if _, ok := r.Tokens[i+1].(xml.EndElement); ok {
				e.writeStart(start.Name, start.Attr, true)
				i++
				continue
			}
		}
		e.writeToken(r.Tokens[i])
	}
	e.writeEnd(r.XMLName)
}

func (e *encoder) writeBodyElement(el BodyElement) {
	switch v := el.(type) {
	case *Paragraph:
		e.writeParagraph(v)
	case *Table:
		e.writeTable(v)
	case *RawXMLElement:
		e.writeRaw(v)
	}
}

func (e *encoder) writeParagraph(p *Paragraph) {
	e.writeStart(nameOr(p.XMLName, "p"), p.Attrs, false)
	if p.Properties != nil {
		e.writeRaw(p.Properties)
	}
	for _, c := range p.Content {
		switch v := c.(type) {
		case *Run:
			e.writeRun(v)
		case *RawXMLElement:
			e.writeRaw(v)
		}
	}
	e.writeEnd(nameOr(p.XMLName, "p"))
}

func (e *encoder) writeRun(r *Run) {
	e.writeStart(nameOr(r.XMLName, "r"), r.Attrs, false)
	if r.Properties != nil {
		e.writePropertyList(&r.Properties.propertyList, "rPr")
	}
	for _, c := range r.Content {
		switch v := c.(type) {
		case *Text:
			name := nameOr(v.XMLName, "t")
			e.writeStart(name, v.Attrs, false)
			e.writeText(v.Content)
			e.writeEnd(name)
		case *RawXMLElement:
			e.writeRaw(v)
		}
	}
	e.writeEnd(nameOr(r.XMLName, "r"))
}

func (e *encoder) writePropertyList(l *propertyList, local string) {
	name := nameOr(l.XMLName, local)
	if len(l.Children) == 0 {
		e.writeStart(name, l.Attrs, true)
		return
	}
	e.writeStart(name, l.Attrs, false)
	for _, child := range l.Children {
		e.writeRaw(child)
	}
	e.writeEnd(name)
}

func (e *encoder) writeTable(t *Table) {
	e.writeStart(nameOr(t.XMLName, "tbl"), t.Attrs, false)
	for _, c := range t.Content {
		switch v := c.(type) {
		case *TableRow:
			e.writeRow(v)
		case *RawXMLElement:
			e.writeRaw(v)
		}
	}
	e.writeEnd(nameOr(t.XMLName, "tbl"))
}

func (e *encoder) writeRow(r *TableRow) {
	e.writeStart(nameOr(r.XMLName, "tr"), r.Attrs, false)
	for _, c := range r.Content {
		switch v := c.(type) {
		case *TableCell:
			e.writeCell(v)
		case *RawXMLElement:
			e.writeRaw(v)
		}
	}
	e.writeEnd(nameOr(r.XMLName, "tr"))
}

func (e *encoder) writeCell(c *TableCell) {
	e.writeStart(nameOr(c.XMLName, "tc"), c.Attrs, false)
	if c.Properties != nil {
		e.writePropertyList(&c.Properties.propertyList, "tcPr")
	}
	for _, el := range c.Content {
		e.writeBodyElement(el)
	}
	e.writeEnd(nameOr(c.XMLName, "tc"))
}

// nameOr returns name, or w:<local> when name is unset (elements built in code).
func nameOr(name xml.Name, local string) xml.Name {
	if name.Local == "" {
		return wName(local)
	}
	return name
}
