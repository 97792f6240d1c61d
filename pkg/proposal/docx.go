package proposal

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// documentPart is the main document part of a WordprocessingML package.
const documentPart = "word/document.xml"

// DocxMIMEType is the content type of a generated proposal.
const DocxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocxReader handles reading DOCX packages
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[documentPart]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPart)
	}

	return dr, nil
}

// DocxReaderFromFile creates a DocxReader from a file path
func DocxReaderFromFile(path string) (*DocxReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetDocumentXML retrieves the content of word/document.xml
func (dr *DocxReader) GetDocumentXML() ([]byte, error) {
	return dr.GetPart(documentPart)
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// ListParts returns the part names in package order
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.reader.File))
	for _, file := range dr.reader.File {
		parts = append(parts, file.Name)
	}
	return parts
}

// WriteDocx writes a copy of the package to w with the main document part
// replaced. Every other part is copied unchanged and in its original order.
func (dr *DocxReader) WriteDocx(w io.Writer, documentXML []byte) error {
	zw := zip.NewWriter(w)

	for _, file := range dr.reader.File {
		header := &zip.FileHeader{
			Name:     file.Name,
			Method:   file.Method,
			Modified: file.Modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}

		if file.Name == documentPart {
			if _, err := fw.Write(documentXML); err != nil {
				return fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}

		if err := copyPart(fw, file); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize package: %w", err)
	}
	return nil
}

func copyPart(w io.Writer, file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to copy %s: %w", file.Name, err)
	}
	return nil
}

var filenameSanitizer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// OutputFilename derives the file name of a generated proposal, for example
// "Automation Proposal - Acme 05-03-2025.docx". Path separators in the client
// name are replaced so the result is always a single path element.
func OutputFilename(clientName string, date time.Time) string {
	name := filenameSanitizer.Replace(clientName)
	return fmt.Sprintf("Automation Proposal - %s %s.docx", name, date.Format(DateLayout))
}
