package proposal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benjaminschreck/go-proposal/pkg/proposal/xml"
	"go.uber.org/zap"
)

// Template is a loaded DOCX template. Every assembly works on a freshly
// parsed copy of its document, so one Template may be assembled many times
// and from several goroutines.
type Template struct {
	Path        string
	reader      *DocxReader
	documentXML []byte
}

// ParseTemplate reads a template from DOCX bytes. The path is used in errors only.
func ParseTemplate(path string, data []byte) (*Template, error) {
	reader, err := NewDocxReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, NewDocumentError("load", path, err)
	}
	documentXML, err := reader.GetDocumentXML()
	if err != nil {
		return nil, NewDocumentError("load", path, err)
	}
	t := &Template{Path: path, reader: reader, documentXML: documentXML}

	// Fail at load time rather than on first assembly.
	if _, err := t.Document(); err != nil {
		return nil, err
	}
	return t, nil
}

// Document parses a fresh copy of the template's main document.
func (t *Template) Document() (*xml.Document, error) {
	doc, err := xml.ParseDocument(bytes.NewReader(t.documentXML))
	if err != nil {
		return nil, NewDocumentError("parse", t.Path, err)
	}
	return doc, nil
}

// Parts lists the package parts of the template.
func (t *Template) Parts() []string {
	return t.reader.ListParts()
}

// Result is a merged document ready to be serialised.
type Result struct {
	Document    *xml.Document
	Walk        WalkStats
	RowsRemoved int
	template    *Template
}

// WriteTo writes the merged DOCX package to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Bytes serialises the merged DOCX package.
func (r *Result) Bytes() ([]byte, error) {
	documentXML, err := xml.MarshalDocument(r.Document)
	if err != nil {
		return nil, NewDocumentError("marshal", r.template.Path, err)
	}
	var buf bytes.Buffer
	if err := r.template.reader.WriteDocx(&buf, documentXML); err != nil {
		return nil, NewDocumentError("write", r.template.Path, err)
	}
	return buf.Bytes(), nil
}

// LoadTemplate reads a template from disk. A path that does not resolve to a
// readable file yields a *TemplateNotFoundError; a file that is not a valid
// DOCX yields a *DocumentError.
func (e *Engine) LoadTemplate(path string) (*Template, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &TemplateNotFoundError{Path: path, Cause: err}
	}
	if info.IsDir() {
		return nil, &TemplateNotFoundError{Path: path, Cause: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateNotFoundError{Path: path, Cause: err}
	}

	t, err := ParseTemplate(path, data)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded template", zap.String("template", path), zap.Int("parts", len(t.Parts())))
	return t, nil
}

// Assemble merges the tokens into a fresh copy of the template, then prunes
// empty rows from every table, nested ones included. Row pruning only
// starts once all substitution is done.
func (e *Engine) Assemble(t *Template, tokens TokenMap) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("assemble: nil template")
	}
	doc, err := t.Document()
	if err != nil {
		return nil, err
	}

	stats := Walk(doc, tokens)
	removed := PruneDocument(doc)

	e.logger.Debug("assembled document",
		zap.String("template", t.Path),
		zap.Int("paragraphs", stats.Paragraphs),
		zap.Int("paragraphs_merged", stats.Merged),
		zap.Int("cells", stats.Cells),
		zap.Int("nested_tables", stats.NestedTables),
		zap.Int("rows_removed", removed),
	)

	return &Result{Document: doc, Walk: stats, RowsRemoved: removed, template: t}, nil
}
