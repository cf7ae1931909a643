package matcher

import (
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/normalizer"
)

// Match finds the quote line for a drawing item: an exact case-insensitive item number first,
// then equality of the digit-only forms. The earliest quote in input order wins each pass.
func Match(item models.DrawingItem, quotes []models.QuoteItem) *models.QuoteItem {
	key := exactKey(item.ItemNo)
	if key == "" {
		return nil
	}
	for i := range quotes {
		if exactKey(quotes[i].ItemNo) == key {
			return &quotes[i]
		}
	}

	digits := numericKey(key)
	if digits == "" {
		return nil
	}
	for i := range quotes {
		if numericKey(quotes[i].ItemNo) == digits {
			return &quotes[i]
		}
	}
	return nil
}

// Index answers Match queries in constant time for a fixed quote list.
type Index struct {
	quotes  []models.QuoteItem
	exact   map[string]int
	numeric map[string]int
}

// NewIndex indexes quotes, keeping the first position of every key.
func NewIndex(quotes []models.QuoteItem) *Index {
	idx := &Index{
		quotes:  quotes,
		exact:   make(map[string]int, len(quotes)),
		numeric: make(map[string]int, len(quotes)),
	}
	for i, q := range quotes {
		if k := exactKey(q.ItemNo); k != "" {
			if _, ok := idx.exact[k]; !ok {
				idx.exact[k] = i
			}
		}
		if k := numericKey(q.ItemNo); k != "" {
			if _, ok := idx.numeric[k]; !ok {
				idx.numeric[k] = i
			}
		}
	}
	return idx
}

// Lookup returns the same quote Match would, or nil.
func (idx *Index) Lookup(item models.DrawingItem) *models.QuoteItem {
	key := exactKey(item.ItemNo)
	if key == "" {
		return nil
	}
	if i, ok := idx.exact[key]; ok {
		return &idx.quotes[i]
	}
	if i, ok := idx.numeric[numericKey(key)]; ok {
		return &idx.quotes[i]
	}
	return nil
}

// Len is the number of indexed quote lines.
func (idx *Index) Len() int { return len(idx.quotes) }

func exactKey(itemNo string) string {
	return strings.ToLower(strings.TrimSpace(itemNo))
}

// numericKey drops leading zeros so "007" and "7" compare equal, as integer parsing would.
func numericKey(itemNo string) string {
	d := normalizer.DigitsOnly(itemNo)
	if d == "" {
		return ""
	}
	if t := strings.TrimLeft(d, "0"); t != "" {
		return t
	}
	return "0"
}
