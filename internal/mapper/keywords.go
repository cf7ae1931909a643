package mapper

import "github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"

// FieldKeywords is one canonical field with its lower-case header candidates, most specific first.
type FieldKeywords struct {
	Field    models.Field
	Keywords []string
}

// DrawingKeywords drives column detection for equipment schedules. Order is significant:
// fields earlier in the list claim columns first.
var DrawingKeywords = []FieldKeywords{
	{models.FieldNo, []string{"no", "no.", "item", "item #", "item no", "number", "#", "id", "ref"}},
	{models.FieldDescription, []string{"description", "desc", "equipment", "name", "item description", "material"}},
	{models.FieldQty, []string{"qty", "qty.", "quantity", "count", "amount", "units"}},
	{models.FieldCategory, []string{"category", "cat", "supplier code", "code", "type", "supply"}},
	{models.FieldEquipNum, []string{"equipment number", "equip num", "equip no", "equip #", "model", "part no", "part #", "new equipment"}},
	{models.FieldUnit, []string{"unit", "uom", "measure"}},
	{models.FieldRemarks, []string{"remarks", "notes", "comment", "comments"}},
}

// QuoteKeywords drives column detection for vendor quotations.
var QuoteKeywords = []FieldKeywords{
	{models.FieldNo, []string{"no", "no.", "item", "item #", "item no", "number", "#", "id", "ref", "line"}},
	{models.FieldDescription, []string{"description", "desc", "equipment", "name", "item description", "material", "product"}},
	{models.FieldQty, []string{"qty", "qty.", "quantity", "count", "amount", "units"}},
	{models.FieldUnitPrice, []string{"unit price", "price", "sell", "rate", "unit cost", "cost ea", "each"}},
	{models.FieldTotalPrice, []string{"total", "total price", "sell total", "ext price", "extended", "amount", "line total"}},
	{models.FieldUnit, []string{"unit", "uom", "measure"}},
}

// KeywordsFor returns the keyword table for schema.
func KeywordsFor(schema models.Schema) []FieldKeywords {
	if schema == models.SchemaQuote {
		return QuoteKeywords
	}
	return DrawingKeywords
}

// Fields lists the fields schema can map, in claim order.
func Fields(schema models.Schema) []models.Field {
	table := KeywordsFor(schema)
	out := make([]models.Field, 0, len(table))
	for _, fk := range table {
		out = append(out, fk.Field)
	}
	return out
}
