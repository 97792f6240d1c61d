package xml

import (
	"encoding/xml"
	"strings"
)

// WordPrefix is the namespace prefix used for elements created by this package.
const WordPrefix = "w"

// BodyElement represents any element that can appear in a document body or a table cell
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// RunContent represents any content that can appear in a run
type RunContent interface {
	isRunContent()
}

// TableContent represents any content that can appear directly in a table
type TableContent interface {
	isTableContent()
}

// RowContent represents any content that can appear directly in a table row
type RowContent interface {
	isRowContent()
}

// RawXMLElement represents an element we preserve but don't interpret.
// Names keep the prefix exactly as written in the source (prefix in Space).
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	// Tokens holds the inner tokens, excluding the element's own start and end
	Tokens []xml.Token
}

func (*RawXMLElement) isBodyElement()      {}
func (*RawXMLElement) isParagraphContent() {}
func (*RawXMLElement) isRunContent()       {}
func (*RawXMLElement) isTableContent()     {}
func (*RawXMLElement) isRowContent()       {}

// NewElement creates an empty element in the w: namespace with the given attributes.
// Attribute names without a prefix are placed in the w: namespace as well.
func NewElement(local string, attrs ...xml.Attr) *RawXMLElement {
	el := &RawXMLElement{XMLName: wName(local)}
	for _, a := range attrs {
		if a.Name.Space == "" {
			a.Name.Space = WordPrefix
		}
		el.Attrs = append(el.Attrs, a)
	}
	return el
}

// Attr returns the value of the attribute with the given local name.
func (r *RawXMLElement) Attr(local string) (string, bool) {
	return attrValue(r.Attrs, local)
}

// SetAttr sets the attribute with the given local name, adding it in the
// w: namespace if it doesn't exist yet.
func (r *RawXMLElement) SetAttr(local, value string) {
	r.Attrs = setAttrValue(r.Attrs, local, value)
}

// Clone returns a deep copy of the element.
func (r *RawXMLElement) Clone() *RawXMLElement {
	c := &RawXMLElement{XMLName: r.XMLName}
	c.Attrs = append([]xml.Attr(nil), r.Attrs...)
	for _, tok := range r.Tokens {
		c.Tokens = append(c.Tokens, xml.CopyToken(tok))
	}
	return c
}

// InnerText returns the concatenated character data inside the element.
func (r *RawXMLElement) InnerText() string {
	var sb strings.Builder
	for _, tok := range r.Tokens {
		if cd, ok := tok.(xml.CharData); ok {
			sb.Write(cd)
		}
	}
	return sb.String()
}

// textContainers are paragraph-level elements whose runs are visible text.
var textContainers = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"moveTo":     true,
	"smartTag":   true,
	"fldSimple":  true,
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
	"dir":        true,
	"bdo":        true,
}

// hiddenText are subtrees whose text is not part of the paragraph's text.
var hiddenText = map[string]bool{
	"rPr":         true,
	"sdtPr":       true,
	"sdtEndPr":    true,
	"del":         true,
	"moveFrom":    true,
	"drawing":     true,
	"pict":        true,
	"object":      true,
	"txbxContent": true,
	"instrText":   true,
}

// RunText returns the text of the runs nested in a text container, read
// like Run.GetText. Other elements have no run text.
func (r *RawXMLElement) RunText() string {
	if !textContainers[r.XMLName.Local] {
		return ""
	}

	var sb strings.Builder
	var stack []string
	hidden := 0
	for _, tok := range r.Tokens {
		switch t := tok.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.Name.Local)
			if hidden > 0 || hiddenText[t.Name.Local] {
				hidden++
				continue
			}
			if parent != "r" {
				continue
			}
			switch t.Name.Local {
			case "tab":
				sb.WriteByte('\t')
			case "cr":
				sb.WriteByte('\n')
			case "br":
				if typ, _ := attrValue(t.Attr, "type"); typ == "" || typ == "textWrapping" {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if hidden > 0 {
				hidden--
			}
		case xml.CharData:
			n := len(stack)
			if hidden == 0 && n >= 2 && stack[n-1] == "t" && stack[n-2] == "r" {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}

func wName(local string) xml.Name {
	return xml.Name{Space: WordPrefix, Local: local}
}

func attrValue(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

func setAttrValue(attrs []xml.Attr, local, value string) []xml.Attr {
	for i, a := range attrs {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, xml.Attr{Name: wName(local), Value: value})
}

// parseOnOff interprets an ST_OnOff value; a missing value means on.
func parseOnOff(val string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(val) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}
