package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

func TestMapColumns_DrawingExactHeaders(t *testing.T) {
	t.Parallel()

	got := MapColumns([]string{"No.", "Equipment Number", "Description", "Qty", "Category"}, models.SchemaDrawing)

	assert.Equal(t, models.FieldMapping{
		models.FieldNo:          "No.",
		models.FieldDescription: "Description",
		models.FieldQty:         "Qty",
		models.FieldCategory:    "Category",
		models.FieldEquipNum:    "Equipment Number",
	}, got)
}

func TestMapColumns_QuoteHeaders(t *testing.T) {
	t.Parallel()

	got := MapColumns([]string{"Item", "Description", "Qty", "Unit Price", "Total"}, models.SchemaQuote)

	assert.Equal(t, "Item", got[models.FieldNo])
	assert.Equal(t, "Description", got[models.FieldDescription])
	assert.Equal(t, "Qty", got[models.FieldQty])
	assert.Equal(t, "Unit Price", got[models.FieldUnitPrice])
	assert.Equal(t, "Total", got[models.FieldTotalPrice])
	assert.False(t, got.Has(models.FieldUnit))
}

func TestMapColumns_SubstringFallback(t *testing.T) {
	t.Parallel()

	got := MapColumns([]string{" ITEM NO ", "Item Description", "Quantity Req'd", "Notes / Comments"}, models.SchemaDrawing)

	assert.Equal(t, " ITEM NO ", got[models.FieldNo])
	assert.Equal(t, "Item Description", got[models.FieldDescription])
	assert.Equal(t, "Quantity Req'd", got[models.FieldQty])
	assert.Equal(t, "Notes / Comments", got[models.FieldRemarks])
}

func TestMapColumns_ColumnClaimedOnce(t *testing.T) {
	t.Parallel()

	got := MapColumns([]string{"Line", "Product", "Amount"}, models.SchemaQuote)

	assert.Equal(t, "Amount", got[models.FieldQty])
	assert.False(t, got.Has(models.FieldTotalPrice), "amount column already claimed by qty")
}

func TestMapColumns_ExactBeatsEarlierSubstring(t *testing.T) {
	t.Parallel()

	got := MapColumns([]string{"Equipment Number", "No"}, models.SchemaDrawing)

	assert.Equal(t, "No", got[models.FieldNo])
	assert.Equal(t, "Equipment Number", got[models.FieldDescription])
}

func TestMapTable_PositionalFallback(t *testing.T) {
	t.Parallel()

	table := models.Table{
		Columns: []string{"Column_0", "Column_1", "Column_2"},
		Rows: []models.Row{
			{"Column_0": "1", "Column_1": "WALK IN COOLER", "Column_2": "WIC-1"},
			{"Column_0": "2a", "Column_1": "ICE MACHINE", "Column_2": "IM-2"},
			{"Column_0": "", "Column_1": "", "Column_2": ""},
			{"Column_0": "3", "Column_1": "SPARE", "Column_2": ""},
		},
	}

	got := MapTable(table, models.SchemaDrawing)

	assert.Equal(t, models.FieldMapping{
		models.FieldNo:          "Column_0",
		models.FieldDescription: "Column_1",
		models.FieldEquipNum:    "Column_2",
	}, got)

	quote := MapTable(table, models.SchemaQuote)
	assert.False(t, quote.Has(models.FieldEquipNum))
	assert.Equal(t, "Column_1", quote[models.FieldDescription])
}

func TestMapTable_NoFallbackForNonNumericFirstColumn(t *testing.T) {
	t.Parallel()

	table := models.Table{
		Columns: []string{"Column_0", "Column_1"},
		Rows: []models.Row{
			{"Column_0": "Kitchen", "Column_1": "Walk in"},
			{"Column_0": "2", "Column_1": "Ice machine"},
		},
	}

	got := MapTable(table, models.SchemaDrawing)
	assert.Empty(t, got)
	assert.Equal(t, []models.Field{models.FieldNo, models.FieldDescription}, got.Missing())
}

func TestMapTable_KeywordHitSkipsFallback(t *testing.T) {
	t.Parallel()

	table := models.Table{
		Columns: []string{"Column_0", "Description"},
		Rows:    []models.Row{{"Column_0": "1", "Description": "Range"}},
	}

	got := MapTable(table, models.SchemaDrawing)
	assert.Equal(t, models.FieldMapping{models.FieldDescription: "Description"}, got)
}

func TestFields(t *testing.T) {
	t.Parallel()

	drawing := Fields(models.SchemaDrawing)
	assert.Equal(t, models.FieldNo, drawing[0])
	assert.Contains(t, drawing, models.FieldEquipNum)
	assert.NotContains(t, drawing, models.FieldUnitPrice)

	assert.Contains(t, Fields(models.SchemaQuote), models.FieldTotalPrice)
}
