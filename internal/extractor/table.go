package extractor

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// CleanColumns gives every header a unique, non-blank name. Blank headers become Column_<i>
// and repeats are suffixed _1, _2 in order of appearance, skipping suffixes already in use.
func CleanColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" || strings.EqualFold(name, "nan") {
			name = fmt.Sprintf("Column_%d", i)
		}
		if n, ok := seen[name]; ok {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s_%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// NewTable builds a Table from a header row and data records. Records shorter than the header
// are padded, extra cells are dropped and rows with no non-blank cell are discarded.
func NewTable(name string, header []string, records [][]string) models.Table {
	columns := CleanColumns(header)
	t := models.Table{Name: name, Columns: columns, Rows: make([]models.Row, 0, len(records))}

	for _, rec := range records {
		row := make(models.Row, len(columns))
		blank := true
		for i, col := range columns {
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				blank = false
			}
			row[col] = v
		}
		if !blank {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// TableFromRecords treats the first non-blank record as the header.
// ok is false when there is no header or no data row.
func TableFromRecords(name string, records [][]string) (models.Table, bool) {
	for i, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		t := NewTable(name, rec, records[i+1:])
		return t, len(t.Rows) > 0
	}
	return models.Table{}, false
}

// Largest returns the table with the most rows; ties go to the earliest.
func Largest(tables []models.Table) (models.Table, bool) {
	if len(tables) == 0 {
		return models.Table{}, false
	}
	best := 0
	for i := 1; i < len(tables); i++ {
		if len(tables[i].Rows) > len(tables[best].Rows) {
			best = i
		}
	}
	return tables[best], true
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
