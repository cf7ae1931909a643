package extractor

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

const (
	// cellGapFactor is the horizontal gap, in multiples of the font size, that separates cells.
	cellGapFactor = 1.2
	// wordGapFactor is the gap that inserts a space inside a cell.
	wordGapFactor = 0.15
	// rowTolerance is how far apart, in points, glyph baselines may be on one row.
	rowTolerance = 2.0
)

// textRow is one visual line of a page split into cells.
type textRow struct {
	y     float64
	cells []textCell
}

type textCell struct {
	x    float64
	text string
}

// ExtractPDF returns the plain text of every page.
func ExtractPDF(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())
	if extractedText == "" {
		return "", fmt.Errorf("no text could be extracted from PDF")
	}
	return extractedText, nil
}

// ExtractPDFTables rebuilds tables from positioned text. Consecutive lines with two or more
// cells form a table whose first line is the header. The returned text holds one line per
// visual row and falls back to the plain page text when no positioned text is found.
func ExtractPDFTables(data []byte) ([]models.Table, string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var tables []models.Table
	var lines []string

	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := pageRows(page)
		if err != nil {
			continue
		}

		for _, r := range rows {
			parts := make([]string, len(r.cells))
			for j, c := range r.cells {
				parts[j] = c.text
			}
			lines = append(lines, strings.Join(parts, "  "))
		}

		for n, block := range tableBlocks(rows) {
			if t, ok := blockTable(fmt.Sprintf("Page %d Table %d", i, n+1), block); ok {
				tables = append(tables, t)
			}
		}
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		text, err = ExtractPDF(data)
		if err != nil {
			return nil, "", err
		}
	}
	return tables, text, nil
}

func pageRows(page pdf.Page) (rows []textRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read page content: %v", r)
		}
	}()

	glyphs := page.Content().Text
	if len(glyphs) == 0 {
		return nil, nil
	}

	// Group by baseline, keeping emission order inside a line.
	var lines [][]pdf.Text
	for _, g := range glyphs {
		placed := false
		for i := range lines {
			if math.Abs(lines[i][0].Y-g.Y) <= rowTolerance {
				lines[i] = append(lines[i], g)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []pdf.Text{g})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i][0].Y > lines[j][0].Y })

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
		if r, ok := splitCells(line); ok {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func splitCells(line []pdf.Text) (textRow, bool) {
	row := textRow{y: line[0].Y}

	var b strings.Builder
	cellX := line[0].X
	end := line[0].X

	flush := func() {
		if s := strings.Join(strings.Fields(b.String()), " "); s != "" {
			row.cells = append(row.cells, textCell{x: cellX, text: s})
		}
		b.Reset()
	}

	for i, g := range line {
		size := g.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 {
			gap := g.X - end
			switch {
			case gap > size*cellGapFactor:
				flush()
				cellX = g.X
			case gap > size*wordGapFactor:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		end = math.Max(end, g.X+g.W)
	}
	flush()

	return row, len(row.cells) > 0
}

// tableBlocks splits rows into runs of consecutive multi-cell rows.
func tableBlocks(rows []textRow) [][]textRow {
	var blocks [][]textRow
	var current []textRow
	for _, r := range rows {
		if len(r.cells) >= 2 {
			current = append(current, r)
			continue
		}
		if len(current) > 1 {
			blocks = append(blocks, current)
		}
		current = nil
	}
	if len(current) > 1 {
		blocks = append(blocks, current)
	}
	return blocks
}

// blockTable aligns each data cell to the header column starting at or left of it.
func blockTable(name string, block []textRow) (models.Table, bool) {
	header := block[0].cells
	names := make([]string, len(header))
	for i, c := range header {
		names[i] = c.text
	}

	records := make([][]string, 0, len(block)-1)
	for _, r := range block[1:] {
		rec := make([]string, len(header))
		for _, c := range r.cells {
			col := columnFor(header, c.x)
			if rec[col] != "" {
				rec[col] += " "
			}
			rec[col] += c.text
		}
		records = append(records, rec)
	}

	t := NewTable(name, names, records)
	return t, len(t.Rows) > 0
}

func columnFor(header []textCell, x float64) int {
	col := 0
	for i, h := range header {
		if h.x <= x+rowTolerance*2 {
			col = i
		}
	}
	return col
}
