package xml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	XMLName    xml.Name
	Attrs      []xml.Attr
	Properties *RunProperties
	// Content keeps text and everything else (tabs, breaks, drawings) in order
	Content []RunContent
}

func (*Run) isParagraphContent() {}

// Text represents a w:t element
type Text struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content string
}

func (*Text) isRunContent() {}

// NewText creates a w:t element, marking it space-preserving when the
// content has leading or trailing whitespace.
func NewText(s string) *Text {
	t := &Text{XMLName: wName("t"), Content: s}
	if s != strings.TrimSpace(s) {
		t.Attrs = []xml.Attr{{Name: xml.Name{Space: "xml", Local: "space"}, Value: "preserve"}}
	}
	return t
}

// NewRun creates a run holding text.
func NewRun(text string) *Run {
	r := &Run{XMLName: wName("r")}
	r.SetText(text)
	return r
}

// GetText returns the text content of a run. Tabs read as "\t" and
// line breaks as "\n".
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, c := range r.Content {
		switch v := c.(type) {
		case *Text:
			sb.WriteString(v.Content)
		case *RawXMLElement:
			switch v.XMLName.Local {
			case "tab":
				sb.WriteByte('\t')
			case "cr":
				sb.WriteByte('\n')
			case "br":
				if typ, _ := v.Attr("type"); typ == "" || typ == "textWrapping" {
					sb.WriteByte('\n')
				}
			}
		}
	}
	return sb.String()
}

// SetText replaces the run's content with text, keeping its properties.
// Tabs become w:tab and newlines w:br.
func (r *Run) SetText(text string) {
	r.Content = nil
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			r.Content = append(r.Content, NewText(sb.String()))
			sb.Reset()
		}
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.Content = append(r.Content, NewElement("tab"))
		case '\n':
			flush()
			r.Content = append(r.Content, NewElement("br"))
		case '\r':
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
}

// EnsureProperties returns the run's properties, creating an empty w:rPr if needed.
func (r *Run) EnsureProperties() *RunProperties {
	if r.Properties == nil {
		r.Properties = &RunProperties{propertyList: propertyList{XMLName: wName("rPr")}}
	}
	return r.Properties
}

// RunProperties represents run formatting properties (w:rPr).
// Each accessor reports whether the property is explicitly set.
type RunProperties struct {
	propertyList
}

// Font represents the w:rFonts element
type Font struct {
	ASCII    string
	HAnsi    string
	EastAsia string
	CS       string
}

// Font returns the run fonts, or nil if w:rFonts is absent.
func (p *RunProperties) Font() *Font {
	el := p.get("rFonts")
	if el == nil {
		return nil
	}
	f := &Font{}
	f.ASCII, _ = el.Attr("ascii")
	f.HAnsi, _ = el.Attr("hAnsi")
	f.EastAsia, _ = el.Attr("eastAsia")
	f.CS, _ = el.Attr("cs")
	return f
}

// FontName returns the primary (ASCII) font name.
func (p *RunProperties) FontName() (string, bool) {
	f := p.Font()
	if f == nil || f.ASCII == "" {
		return "", false
	}
	return f.ASCII, true
}

// SetFontName sets the ASCII, high-ANSI and East-Asian fonts, keeping any
// other rFonts attributes.
func (p *RunProperties) SetFontName(name string) {
	el := p.get("rFonts")
	if el == nil {
		el = NewElement("rFonts")
	} else {
		el = el.Clone()
	}
	el.SetAttr("ascii", name)
	el.SetAttr("hAnsi", name)
	el.SetAttr("eastAsia", name)
	p.set(el, runPropertyOrder)
}

// Size returns the font size in half-points.
func (p *RunProperties) Size() (int, bool) {
	return p.intVal("sz")
}

// SetSize sets the font size in half-points.
func (p *RunProperties) SetSize(halfPoints int) {
	p.set(NewElement("sz", xml.Attr{Name: xml.Name{Local: "val"}, Value: strconv.Itoa(halfPoints)}), runPropertyOrder)
}

// Color returns the explicit RGB color. "auto" counts as unset.
func (p *RunProperties) Color() (string, bool) {
	el := p.get("color")
	if el == nil {
		return "", false
	}
	val, ok := el.Attr("val")
	if !ok || val == "" || strings.EqualFold(val, "auto") {
		return "", false
	}
	return val, true
}

// SetColor sets an explicit RGB color such as "FF0000".
func (p *RunProperties) SetColor(rgb string) {
	p.set(NewElement("color", xml.Attr{Name: xml.Name{Local: "val"}, Value: rgb}), runPropertyOrder)
}

// Bold returns the bold flag, or nil when not set on the run.
func (p *RunProperties) Bold() *bool { return p.onOff("b") }

// SetBold sets the bold flag.
func (p *RunProperties) SetBold(on bool) { p.setOnOff("b", on, runPropertyOrder) }

// Italic returns the italic flag, or nil when not set on the run.
func (p *RunProperties) Italic() *bool { return p.onOff("i") }

// SetItalic sets the italic flag.
func (p *RunProperties) SetItalic(on bool) { p.setOnOff("i", on, runPropertyOrder) }

// Has reports whether a property element with the given local name is present.
func (p *RunProperties) Has(local string) bool {
	return p.get(local) != nil
}

// Len returns the number of property elements.
func (p *RunProperties) Len() int {
	return len(p.Children)
}

// Clone returns a deep copy of the properties.
func (p *RunProperties) Clone() *RunProperties {
	return &RunProperties{propertyList: p.clone()}
}

func (p *RunProperties) intVal(local string) (int, bool) {
	el := p.get(local)
	if el == nil {
		return 0, false
	}
	val, ok := el.Attr("val")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}
