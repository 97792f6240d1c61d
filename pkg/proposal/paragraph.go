package proposal

import (
	"strings"

	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
)

// Merger substitutes tokens paragraph by paragraph. It is built once per
// token map and may be reused for every paragraph of a document.
type Merger struct {
	replacer *strings.Replacer
	empty    bool
}

// NewMerger prepares a merger for the token map.
func NewMerger(tokens TokenMap) *Merger {
	return &Merger{replacer: tokens.Replacer(), empty: len(tokens.Keys()) == 0}
}

// MergeParagraph replaces the tokens in the paragraph's full text. When the
// text changes, all runs are replaced by a single run holding the merged
// text, formatted like the first direct run that had text. Text inside
// hyperlinks and other text containers is part of the full text and ends up
// in that run. A paragraph without tokens is left exactly as it was.
// Reports whether it changed.
func (m *Merger) MergeParagraph(p *xml.Paragraph) bool {
	if m.empty {
		return false
	}

	original := p.GetText()
	merged := m.replacer.Replace(original)
	if merged == original {
		return false
	}

	var source *xml.Run
	for _, r := range p.Runs() {
		if r.GetText() != "" {
			source = r
			break
		}
	}

	p.Clear()
	run := p.AddRun(merged)
	if source != nil {
		ApplyFormatting(run, source)
	}
	return true
}

// MergeParagraph merges a single paragraph with the token map.
func MergeParagraph(p *xml.Paragraph, tokens TokenMap) bool {
	return NewMerger(tokens).MergeParagraph(p)
}
