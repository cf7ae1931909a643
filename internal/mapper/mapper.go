package mapper

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// SampleSize bounds how many values the positional fallback inspects.
const SampleSize = 10

var bareItemNumber = regexp.MustCompile(`^\d+[A-Za-z]?$`)

// NormalizeColumnName lower-cases and trims a header and collapses inner whitespace.
func NormalizeColumnName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// MapColumns assigns source columns to canonical fields using the keyword tables only.
func MapColumns(columns []string, schema models.Schema) models.FieldMapping {
	mapping, _ := mapByKeywords(columns, schema)
	return mapping
}

// MapTable maps by keyword and falls back to column position when neither the item number
// nor the description could be resolved by name.
func MapTable(t models.Table, schema models.Schema) models.FieldMapping {
	mapping, used := mapByKeywords(t.Columns, schema)
	if mapping.Has(models.FieldNo) || mapping.Has(models.FieldDescription) {
		return mapping
	}
	if len(t.Columns) == 0 || !looksLikeItemNumbers(sample(t, t.Columns[0])) {
		return mapping
	}

	positional := []models.Field{models.FieldNo, models.FieldDescription}
	if schema == models.SchemaDrawing {
		positional = append(positional, models.FieldEquipNum)
	}
	for i, field := range positional {
		if i >= len(t.Columns) || used[i] || mapping.Has(field) {
			continue
		}
		mapping[field] = t.Columns[i]
		used[i] = true
	}
	return mapping
}

func mapByKeywords(columns []string, schema models.Schema) (models.FieldMapping, map[int]bool) {
	mapping := make(models.FieldMapping)
	used := make(map[int]bool)

	normalized := make([]string, len(columns))
	for i, col := range columns {
		normalized[i] = NormalizeColumnName(col)
	}

	for _, fk := range KeywordsFor(schema) {
		idx := findExact(normalized, used, fk.Keywords)
		if idx < 0 {
			idx = findContaining(normalized, used, fk.Keywords)
		}
		if idx < 0 {
			continue
		}
		mapping[fk.Field] = columns[idx]
		used[idx] = true
	}

	return mapping, used
}

func findExact(columns []string, used map[int]bool, keywords []string) int {
	for i, col := range columns {
		if used[i] || col == "" {
			continue
		}
		for _, kw := range keywords {
			if col == kw {
				return i
			}
		}
	}
	return -1
}

func findContaining(columns []string, used map[int]bool, keywords []string) int {
	for i, col := range columns {
		if used[i] || col == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(col, kw) {
				return i
			}
		}
	}
	return -1
}

func sample(t models.Table, column string) []string {
	values := make([]string, 0, SampleSize)
	for _, r := range t.Rows {
		v := r.Get(column)
		if v == "" {
			continue
		}
		values = append(values, v)
		if len(values) == SampleSize {
			break
		}
	}
	return values
}

func looksLikeItemNumbers(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !bareItemNumber.MatchString(v) {
			return false
		}
	}
	return true
}
