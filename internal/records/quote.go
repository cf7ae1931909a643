package records

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/normalizer"
)

// MaxRangeSpan caps how many synthetic items a single range item number can produce.
const MaxRangeSpan = 500

const nicMarker = "NIC"

var (
	itemRange = regexp.MustCompile(`^(\d+)\s*[-–]\s*(\d+)$`)
	nicToken  = regexp.MustCompile(`\bNIC\b`)
)

// ExtractQuoteItems reads quotation rows through mapping, tagging every item with source.
// It never fails: rows without a usable item number or description are skipped and reported.
func ExtractQuoteItems(rows []models.Row, mapping models.FieldMapping, source string) *Extraction[models.QuoteItem] {
	out := &Extraction[models.QuoteItem]{}

	for i, row := range rows {
		rowNum := i + 2

		items, err := quoteItemsFromRow(row, mapping, source)
		if err != nil {
			out.skip(rowNum, "%s", err.Error())
			continue
		}
		out.Items = append(out.Items, items...)
	}

	out.Duplicates = duplicates(out.Items, func(q models.QuoteItem) string { return q.ItemNo })
	return out
}

// IsNotInContract reports whether a description or quantity cell carries the NIC marker.
func IsNotInContract(description, quantity string) bool {
	if nicToken.MatchString(strings.ToUpper(strings.TrimSpace(description))) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(quantity), nicMarker)
}

// CompletePrices derives whichever of unit or total price is missing from the other.
func CompletePrices(unit, total float64, qty int) (float64, float64) {
	if qty < 1 {
		return unit, total
	}
	switch {
	case unit > 0 && total == 0:
		total = unit * float64(qty)
	case total > 0 && unit == 0:
		unit = total / float64(qty)
	}
	return unit, total
}

// ExpandRange returns the item numbers encoded by a range such as "11-23". ok is false when
// itemNo is not a range, runs backwards or spans more than MaxRangeSpan numbers.
func ExpandRange(itemNo string) ([]string, bool) {
	m := itemRange.FindStringSubmatch(strings.TrimSpace(itemNo))
	if m == nil {
		return nil, false
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	if lo > hi || hi-lo+1 > MaxRangeSpan {
		return nil, false
	}

	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out, true
}

func quoteItemsFromRow(row models.Row, mapping models.FieldMapping, source string) ([]models.QuoteItem, error) {
	var no, desc string
	if mapping.Has(models.FieldNo) {
		no = normalizer.CleanText(row.Get(mapping.Column(models.FieldNo)))
	}
	if mapping.Has(models.FieldDescription) {
		desc = normalizer.CleanText(row.Get(mapping.Column(models.FieldDescription)))
	}
	if normalizer.IsHeaderRemnant(no) && normalizer.IsHeaderRemnant(desc) {
		return nil, skipRow("no item number or description")
	}
	if normalizer.IsHeaderRemnant(no) {
		no = ""
	}
	if normalizer.IsHeaderRemnant(desc) {
		desc = ""
	}

	var rawQty string
	if mapping.Has(models.FieldQty) {
		rawQty = row.Get(mapping.Column(models.FieldQty))
	}

	nic := IsNotInContract(desc, rawQty)
	if nic {
		desc = nicMarker
	}

	if numbers, ok := ExpandRange(no); ok {
		items := make([]models.QuoteItem, 0, len(numbers))
		for _, n := range numbers {
			items = append(items, models.QuoteItem{
				ItemNo:        n,
				Description:   rangeDescription(desc),
				Quantity:      normalizer.DefaultQuantity,
				NotInContract: true,
				SourceFile:    source,
			})
		}
		return items, nil
	}

	item := models.QuoteItem{
		ItemNo:        no,
		Description:   desc,
		Quantity:      normalizer.ParseQuantity(rawQty),
		NotInContract: nic,
		SourceFile:    source,
	}

	var unit, total float64
	if mapping.Has(models.FieldUnitPrice) {
		if v, ok := normalizer.ParseCurrency(row.Get(mapping.Column(models.FieldUnitPrice))); ok && v > 0 {
			unit = v
		}
	}
	if mapping.Has(models.FieldTotalPrice) {
		if v, ok := normalizer.ParseCurrency(row.Get(mapping.Column(models.FieldTotalPrice))); ok && v > 0 {
			total = v
		}
	}
	item.UnitPrice, item.TotalPrice = CompletePrices(unit, total, item.Quantity)

	return []models.QuoteItem{item}, nil
}

func rangeDescription(desc string) string {
	if desc == "" {
		return nicMarker
	}
	return desc
}
