package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// ExtractCSV reads a delimited text file with a header row. The delimiter is sniffed from the
// first line (comma, semicolon or tab).
func ExtractCSV(name string, data []byte) (models.Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to decode csv: %w", err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Table{}, fmt.Errorf("failed to parse csv: %w", err)
		}
		records = append(records, rec)
	}

	t, ok := TableFromRecords(name, records)
	if !ok {
		return models.Table{}, fmt.Errorf("no rows found in csv")
	}
	return t, nil
}

func sniffDelimiter(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	best, bestCount := ',', strings.Count(first, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(first, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
