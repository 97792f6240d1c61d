package xml

import (
	"encoding/xml"
	"slices"
)

// propertyList is an ordered property container such as w:rPr or w:tcPr.
// Children are kept in document order; new children are inserted at the
// position the WordprocessingML schema sequence requires.
type propertyList struct {
	XMLName  xml.Name
	Attrs    []xml.Attr
	Children []*RawXMLElement
}

// Schema sequence of CT_RPr children.
var runPropertyOrder = []string{
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike",
	"dstrike", "outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid",
	"vanish", "webHidden", "color", "spacing", "w", "kern", "position", "sz",
	"szCs", "highlight", "u", "effect", "bdr", "shd", "fitText", "vertAlign",
	"rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath", "rPrChange",
}

// Schema sequence of CT_TcPr children.
var cellPropertyOrder = []string{
	"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd",
	"noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
	"headers", "cellIns", "cellDel", "cellMerge", "tcPrChange",
}

func (l *propertyList) get(local string) *RawXMLElement {
	for _, child := range l.Children {
		if child.XMLName.Local == local {
			return child
		}
	}
	return nil
}

func (l *propertyList) remove(local string) {
	l.Children = slices.DeleteFunc(l.Children, func(child *RawXMLElement) bool {
		return child.XMLName.Local == local
	})
}

// set replaces the child with the same local name, or inserts el before
// the first child that comes later in order.
func (l *propertyList) set(el *RawXMLElement, order []string) {
	for i, child := range l.Children {
		if child.XMLName.Local == el.XMLName.Local {
			l.Children[i] = el
			return
		}
	}

	rank := func(local string) int {
		if i := slices.Index(order, local); i >= 0 {
			return i
		}
		return len(order)
	}

	want := rank(el.XMLName.Local)
	at := len(l.Children)
	for i, child := range l.Children {
		if rank(child.XMLName.Local) > want {
			at = i
			break
		}
	}
	l.Children = slices.Insert(l.Children, at, el)
}

func (l *propertyList) clone() propertyList {
	c := propertyList{XMLName: l.XMLName}
	c.Attrs = append([]xml.Attr(nil), l.Attrs...)
	for _, child := range l.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

func (l *propertyList) onOff(local string) *bool {
	el := l.get(local)
	if el == nil {
		return nil
	}
	val, ok := el.Attr("val")
	on := parseOnOff(val, ok)
	return &on
}

func (l *propertyList) setOnOff(local string, on bool, order []string) {
	if on {
		l.set(NewElement(local), order)
		return
	}
	l.set(NewElement(local, xml.Attr{Name: xml.Name{Local: "val"}, Value: "0"}), order)
}
