package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

var (
	// ErrUnmappable means a required column (item number or description) is not mapped.
	ErrUnmappable = errors.New("required column not mapped")
	// ErrNoData means every row was rejected.
	ErrNoData = errors.New("no usable rows")
)

// Extraction is the outcome of reading one table into canonical records.
// Duplicates lists item numbers seen more than once, in first-seen order; the rows are kept.
type Extraction[T any] struct {
	Items      []T                 `json:"items"`
	Skipped    []models.SkippedRow `json:"skipped,omitempty"`
	Duplicates []string            `json:"duplicates,omitempty"`
}

func (e *Extraction[T]) skip(row int, format string, args ...any) {
	e.Skipped = append(e.Skipped, models.SkippedRow{
		Row:    row,
		Reason: fmt.Sprintf(format, args...),
	})
}

// rowError marks a row that must be skipped without aborting the batch.
type rowError struct {
	reason string
}

func (e *rowError) Error() string { return e.reason }

func skipRow(format string, args ...any) error {
	return &rowError{reason: fmt.Sprintf(format, args...)}
}

// duplicates returns the item numbers that occur more than once, compared case-insensitively.
func duplicates[T any](items []T, key func(T) string) []string {
	seen := make(map[string]int, len(items))
	var out []string
	for _, it := range items {
		k := strings.ToLower(strings.TrimSpace(key(it)))
		if k == "" {
			continue
		}
		seen[k]++
		if seen[k] == 2 {
			out = append(out, strings.TrimSpace(key(it)))
		}
	}
	return out
}
