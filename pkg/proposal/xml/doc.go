// Package xml provides the WordprocessingML document model used by the
// proposal merge engine.
//
// DOCX files are ZIP archives whose main part, word/document.xml, holds the
// document body. This package parses that part into a tree the engine can
// walk and mutate in place, and serializes it back.
//
// # Structure Organization
//
//   - types.go: content interfaces (BodyElement, ParagraphContent, RunContent,
//     TableContent, RowContent) and RawXMLElement
//   - document.go: Document and Body, MarshalDocument
//   - paragraph.go: Paragraph
//   - run.go: Run, Text and RunProperties
//   - table.go: Table, TableRow, TableCell and TableCellProperties
//   - properties.go: ordered property containers (w:rPr, w:tcPr)
//   - decode.go / encode.go: the parser and the writer
//
// # Fidelity
//
// The parser reads raw tokens, so namespace prefixes stay exactly as the
// template author's word processor wrote them. Anything the engine does not
// interpret (drawings, bookmarks, section properties, paragraph properties)
// is kept as a RawXMLElement and written back unchanged. Only paragraphs the
// engine rewrites and the properties it sets differ after a round trip.
//
// # Table cells
//
// A cell either holds only paragraphs or holds at least one nested table.
// TableCell.Kind reports which, so callers can switch over both cases:
//
//	switch cell.Kind() {
//	case xml.CellNestedTables:
//	    for _, nested := range cell.Tables() { ... }
//	case xml.CellParagraphs:
//	    for _, p := range cell.Paragraphs() { ... }
//	}
package xml
