package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// decoder reads raw tokens so that namespace prefixes are kept as written.
// encoding/xml's namespace translation would otherwise replace them with
// URIs and lose the original prefixes on output.
type decoder struct {
	d *xml.Decoder
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{d: xml.NewDecoder(r)}
}

func (p *decoder) next() (xml.Token, error) {
	tok, err := p.d.RawToken()
	if err != nil {
		return nil, err
	}
	return xml.CopyToken(tok), nil
}

// errUnexpectedEOF is returned when the input ends inside an element.
var errUnexpectedEOF = errors.New("unexpected end of document")

func (p *decoder) nextInElement() (xml.Token, error) {
	tok, err := p.next()
	if err == io.EOF {
		return nil, errUnexpectedEOF
	}
	return tok, err
}

// captureRaw reads the rest of the element opened by start and returns it
// with all inner tokens preserved.
func (p *decoder) captureRaw(start xml.StartElement) (*RawXMLElement, error) {
	raw := &RawXMLElement{
		XMLName: start.Name,
		Attrs:   start.Attr,
	}

	depth := 1
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				return raw, nil
			}
		}
		raw.Tokens = append(raw.Tokens, tok)
	}
}

func (p *decoder) parseBodyContent(start xml.StartElement) (BodyElement, error) {
	switch start.Name.Local {
	case "p":
		return p.parseParagraph(start)
	case "tbl":
		return p.parseTable(start)
	default:
		return p.captureRaw(start)
	}
}

func (p *decoder) parseBody(start xml.StartElement) (*Body, error) {
	body := &Body{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el, err := p.parseBodyContent(t)
			if err != nil {
				return nil, err
			}
			body.Elements = append(body.Elements, el)
		case xml.EndElement:
			return body, nil
		}
	}
}

func (p *decoder) parseParagraph(start xml.StartElement) (*Paragraph, error) {
	para := &Paragraph{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				raw, err := p.captureRaw(t)
				if err != nil {
					return nil, err
				}
				para.Properties = raw
			case "r":
				run, err := p.parseRun(t)
				if err != nil {
					return nil, err
				}
				para.Content = append(para.Content, run)
			default:
				// Hyperlinks, bookmarks, proofing marks and the like
				raw, err := p.captureRaw(t)
				if err != nil {
					return nil, err
				}
				para.Content = append(para.Content, raw)
			}
		case xml.EndElement:
			return para, nil
		}
	}
}

func (p *decoder) parseRun(start xml.StartElement) (*Run, error) {
	run := &Run{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				props, err := p.parseProperties(t)
				if err != nil {
					return nil, err
				}
				run.Properties = &RunProperties{propertyList: props}
			case "t":
				text, err := p.parseText(t)
				if err != nil {
					return nil, err
				}
				run.Content = append(run.Content, text)
			default:
				raw, err := p.captureRaw(t)
				if err != nil {
					return nil, err
				}
				run.Content = append(run.Content, raw)
			}
		case xml.EndElement:
			return run, nil
		}
	}
}

func (p *decoder) parseText(start xml.StartElement) (*Text, error) {
	raw, err := p.captureRaw(start)
	if err != nil {
		return nil, err
	}
	return &Text{XMLName: start.Name, Attrs: start.Attr, Content: raw.InnerText()}, nil
}

// parseProperties reads a property container (rPr, tcPr) whose children
// are kept in document order.
func (p *decoder) parseProperties(start xml.StartElement) (propertyList, error) {
	list := propertyList{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return list, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			raw, err := p.captureRaw(t)
			if err != nil {
				return list, err
			}
			list.Children = append(list.Children, raw)
		case xml.EndElement:
			return list, nil
		}
	}
}

func (p *decoder) parseTable(start xml.StartElement) (*Table, error) {
	table := &Table{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tr" {
				row, err := p.parseRow(t)
				if err != nil {
					return nil, err
				}
				table.Content = append(table.Content, row)
				continue
			}
			raw, err := p.captureRaw(t)
			if err != nil {
				return nil, err
			}
			table.Content = append(table.Content, raw)
		case xml.EndElement:
			return table, nil
		}
	}
}

func (p *decoder) parseRow(start xml.StartElement) (*TableRow, error) {
	row := &TableRow{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tc" {
				cell, err := p.parseCell(t)
				if err != nil {
					return nil, err
				}
				row.Content = append(row.Content, cell)
				continue
			}
			raw, err := p.captureRaw(t)
			if err != nil {
				return nil, err
			}
			row.Content = append(row.Content, raw)
		case xml.EndElement:
			return row, nil
		}
	}
}

func (p *decoder) parseCell(start xml.StartElement) (*TableCell, error) {
	cell := &TableCell{XMLName: start.Name, Attrs: start.Attr}
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tcPr" {
				props, err := p.parseProperties(t)
				if err != nil {
					return nil, err
				}
				cell.Properties = &TableCellProperties{propertyList: props}
				continue
			}
			el, err := p.parseBodyContent(t)
			if err != nil {
				return nil, err
			}
			cell.Content = append(cell.Content, el)
		case xml.EndElement:
			return cell, nil
		}
	}
}

// ParseDocument parses a Word document XML (word/document.xml)
func ParseDocument(r io.Reader) (*Document, error) {
	p := newDecoder(r)
	doc := &Document{}

	for {
		tok, err := p.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if doc.XMLName.Local == "" {
				doc.ProcInst = &t
			}
		case xml.StartElement:
			if doc.XMLName.Local != "" {
				return nil, fmt.Errorf("failed to parse document: unexpected element %q after root", t.Name.Local)
			}
			if t.Name.Local != "document" {
				return nil, fmt.Errorf("failed to parse document: root element is %q, want document", t.Name.Local)
			}
			doc.XMLName = t.Name
			doc.Attrs = t.Attr
			if err := p.parseDocumentChildren(doc); err != nil {
				return nil, fmt.Errorf("failed to parse document: %w", err)
			}
		}
	}

	if doc.Body == nil {
		return nil, errors.New("failed to parse document: missing body")
	}
	return doc, nil
}

func (p *decoder) parseDocumentChildren(doc *Document) error {
	for {
		tok, err := p.nextInElement()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" && doc.Body == nil {
				body, err := p.parseBody(t)
				if err != nil {
					return err
				}
				doc.Body = body
				continue
			}
			raw, err := p.captureRaw(t)
			if err != nil {
				return err
			}
			if doc.Body == nil {
				doc.Leading = append(doc.Leading, raw)
			} else {
				doc.Trailing = append(doc.Trailing, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}
