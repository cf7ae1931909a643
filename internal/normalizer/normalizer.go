package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// DefaultQuantity is assumed whenever a quantity cell is blank or unreadable.
const DefaultQuantity = 1

var (
	nonCurrencyChars = regexp.MustCompile(`[^0-9.\-]`)
	eachPattern      = regexp.MustCompile(`(?i)(\d[\d,]*)\s*ea\b`)
	leadingNumber    = regexp.MustCompile(`\d+`)

	headerRemnants = map[string]bool{
		"":            true,
		"nan":         true,
		"no":          true,
		"no.":         true,
		"item":        true,
		"none":        true,
		"description": true,
	}
)

// ParseCurrency turns a free-text money cell ("$1,234.50", "USD 99") into a float.
// ok is false when nothing numeric is left after cleaning.
func ParseCurrency(raw string) (float64, bool) {
	cleaned := nonCurrencyChars.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseQuantity reads "<N> ea" style cells, otherwise the leading integer.
// Never returns less than DefaultQuantity.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultQuantity
	}

	if m := eachPattern.FindStringSubmatch(s); m != nil {
		if n, ok := atoiPositive(strings.ReplaceAll(m[1], ",", "")); ok {
			return n
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "-") {
		return DefaultQuantity
	}
	if n, ok := atoiPositive(leadingNumber.FindString(s)); ok {
		return n
	}
	return DefaultQuantity
}

// ParseSupplierCode reads the leading digit run of a category cell ("5", "5.0", "Cat 5").
// Returns nil when absent or outside the supported code range.
func ParseSupplierCode(raw string) *int {
	digits := leadingNumber.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return nil
	}
	code, err := strconv.Atoi(digits)
	if err != nil || code < models.MinSupplierCode || code > models.MaxSupplierCode {
		return nil
	}
	return &code
}

// IsHeaderRemnant reports values that are repeated header text or blank placeholders.
func IsHeaderRemnant(s string) bool {
	return headerRemnants[strings.ToLower(strings.TrimSpace(s))]
}

// CleanText trims s and maps pandas/Excel null spellings to "".
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return ""
	}
	return s
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func atoiPositive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
