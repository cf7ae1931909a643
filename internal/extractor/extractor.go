package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// Format is a supported upload format, named by its file extension.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("empty file")
)

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatTXT:  "text/plain",
}

// Document is everything ingestion could read from one file: zero or more tables plus the
// plain text used for line-based quote parsing.
type Document struct {
	Filename string         `json:"filename"`
	Format   Format         `json:"format"`
	Tables   []models.Table `json:"tables"`
	Text     string         `json:"-"`
}

// FormatOf resolves the format from the file extension.
func FormatOf(filename string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	f := Format(ext)
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	return f, nil
}

// ContentType is the canonical MIME type for f.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Extract reads data according to the extension of filename.
func Extract(filename string, data []byte) (*Document, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	doc := &Document{Filename: filename, Format: format}

	switch format {
	case FormatCSV:
		if err := ValidateTXT(data); err != nil {
			return nil, err
		}
		t, err := ExtractCSV(filename, data)
		if err != nil {
			return nil, err
		}
		doc.Tables = []models.Table{t}
	case FormatXLSX:
		doc.Tables, err = ExtractXLSX(data)
		if err != nil {
			return nil, err
		}
	case FormatPDF:
		doc.Tables, doc.Text, err = ExtractPDFTables(data)
		if err != nil {
			return nil, err
		}
	case FormatDOCX:
		doc.Tables, doc.Text, err = ExtractDOCXTables(data)
		if err != nil {
			return nil, err
		}
	case FormatTXT:
		if err := ValidateTXT(data); err != nil {
			return nil, err
		}
		doc.Text, err = ExtractTXT(data)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}
