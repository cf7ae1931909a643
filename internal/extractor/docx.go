package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

type WordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    Body     `xml:"body"`
}

type Body struct {
	Paragraphs []Paragraph `xml:"p"`
	Tables     []WordTable `xml:"tbl"`
}

type Paragraph struct {
	Runs []Run `xml:"r"`
}

type Run struct {
	Text string `xml:"t"`
}

type WordTable struct {
	Rows []TableRow `xml:"tr"`
}

type TableRow struct {
	Cells []TableCell `xml:"tc"`
}

type TableCell struct {
	Paragraphs []Paragraph `xml:"p"`
}

func (p Paragraph) text() string {
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

func (c TableCell) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		if s := strings.TrimSpace(p.text()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// ExtractDOCX returns the paragraph text of a Word document.
func ExtractDOCX(data []byte) (string, error) {
	doc, err := readWordDocument(data)
	if err != nil {
		return "", err
	}

	text := paragraphText(doc)
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from DOCX")
	}
	return text, nil
}

// ExtractDOCXTables returns the top-level tables of a Word document along with the text of
// its paragraphs and table rows.
func ExtractDOCXTables(data []byte) ([]models.Table, string, error) {
	doc, err := readWordDocument(data)
	if err != nil {
		return nil, "", err
	}

	var tables []models.Table
	lines := []string{paragraphText(doc)}

	for i, tbl := range doc.Body.Tables {
		records := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			rec := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				rec[j] = cell.text()
			}
			records = append(records, rec)
			lines = append(lines, strings.Join(rec, "  "))
		}
		if t, ok := TableFromRecords(fmt.Sprintf("Table %d", i+1), records); ok {
			tables = append(tables, t)
		}
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" && len(tables) == 0 {
		return nil, "", fmt.Errorf("no text could be extracted from DOCX")
	}
	return tables, text, nil
}

func readWordDocument(data []byte) (*WordDocument, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX as ZIP: %w", err)
	}

	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}
	if documentFile == nil {
		return nil, fmt.Errorf("document.xml not found in DOCX")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read document.xml: %w", err)
	}

	var doc WordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document.xml: %w", err)
	}
	return &doc, nil
}

func paragraphText(doc *WordDocument) string {
	var textBuilder strings.Builder
	for _, para := range doc.Body.Paragraphs {
		textBuilder.WriteString(para.text())
		textBuilder.WriteString("\n")
	}
	return strings.TrimSpace(textBuilder.String())
}
