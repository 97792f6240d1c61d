package proposal

import (
	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
)

// RunFormat is the formatting carried from a template run onto the run
// that replaces it. A nil field means the source did not set it.
type RunFormat struct {
	FontName *string
	Size     *int
	Color    *string
	Bold     *bool
	Italic   *bool
}

// IsZero reports whether no attribute is set.
func (f RunFormat) IsZero() bool {
	return f.FontName == nil && f.Size == nil && f.Color == nil && f.Bold == nil && f.Italic == nil
}

// FormatOf reads the explicitly set formatting of a run. Inherited style
// formatting and an "auto" color do not count as set.
func FormatOf(r *xml.Run) RunFormat {
	var f RunFormat
	if r == nil || r.Properties == nil {
		return f
	}
	p := r.Properties
	if name, ok := p.FontName(); ok {
		f.FontName = &name
	}
	if size, ok := p.Size(); ok {
		f.Size = &size
	}
	if color, ok := p.Color(); ok {
		f.Color = &color
	}
	f.Bold = p.Bold()
	f.Italic = p.Italic()
	return f
}

// ApplyTo sets every attribute present in f on r and leaves the rest alone.
func (f RunFormat) ApplyTo(r *xml.Run) {
	if f.IsZero() {
		return
	}
	p := r.EnsureProperties()
	if f.FontName != nil {
		p.SetFontName(*f.FontName)
	}
	if f.Size != nil {
		p.SetSize(*f.Size)
	}
	if f.Color != nil {
		p.SetColor(*f.Color)
	}
	if f.Bold != nil {
		p.SetBold(*f.Bold)
	}
	if f.Italic != nil {
		p.SetItalic(*f.Italic)
	}
}

// ApplyFormatting copies the font (primary and East-Asian), size, explicit
// color, bold and italic of src onto dst, skipping whatever src leaves unset.
func ApplyFormatting(dst, src *xml.Run) {
	FormatOf(src).ApplyTo(dst)
}
