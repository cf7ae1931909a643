package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

func code(c int) *int { return &c }

func result(no string, c *int, status models.Status, total float64) models.ClassificationResult {
	return models.ClassificationResult{DrawingNo: no, SupplierCode: c, Status: status, TotalPrice: total}
}

func TestByStatus(t *testing.T) {
	t.Parallel()

	got := ByStatus([]models.ClassificationResult{
		result("1", code(5), models.StatusMissing, 0),
		result("2", code(5), models.StatusQuoted, 100),
		result("3", code(6), models.StatusQuoted, 50.5),
		result("4", nil, models.StatusNA, 0),
	})

	assert.Equal(t, []models.StatusSummary{
		{Status: models.StatusQuoted, Count: 2, TotalValue: 150.5},
		{Status: models.StatusMissing, Count: 1},
		{Status: models.StatusNA, Count: 1},
	}, got)
}

func TestBySupplierCode(t *testing.T) {
	t.Parallel()

	items := []models.DrawingItem{
		{ItemNo: "1", Quantity: 2, SupplierCode: code(5)},
		{ItemNo: "2", Quantity: 1, SupplierCode: code(5)},
		{ItemNo: "3", Quantity: 4, SupplierCode: code(1)},
		{ItemNo: "4", Quantity: 1},
	}
	results := []models.ClassificationResult{
		result("1", code(5), models.StatusQuoted, 300),
		result("2", code(5), models.StatusNIC, 0),
		result("3", code(1), models.StatusOwnerSupply, 0),
		result("4", nil, models.StatusMissing, 0),
	}

	got := BySupplierCode(items, results, models.DefaultSupplierCodes())
	require.Len(t, got, 8)

	owner := got[0]
	assert.Equal(t, 1, owner.Code)
	assert.Equal(t, 1, owner.ScheduleItems)
	assert.Equal(t, 4, owner.ScheduleQuantity)
	assert.Nil(t, owner.Coverage)

	five := got[4]
	assert.Equal(t, 5, five.Code)
	assert.Equal(t, 2, five.ScheduleItems)
	assert.Equal(t, 3, five.ScheduleQuantity)
	assert.Equal(t, 1, five.Quoted)
	assert.Equal(t, 1, five.NIC)
	assert.Equal(t, 300.0, five.QuotedValue)
	require.NotNil(t, five.Coverage)
	assert.InDelta(t, 50.0, *five.Coverage, 0.001)

	assert.Nil(t, got[5].Coverage, "code 6 has no schedule items")
}

func TestBySupplierCode_PartialTable(t *testing.T) {
	t.Parallel()

	items := []models.DrawingItem{
		{ItemNo: "1", Quantity: 1, SupplierCode: code(5)},
		{ItemNo: "2", Quantity: 3, SupplierCode: code(6)},
	}
	results := []models.ClassificationResult{
		result("1", code(5), models.StatusQuoted, 50),
		result("2", code(6), models.StatusMissing, 0),
	}

	got := BySupplierCode(items, results, models.SupplierCodes{5: "Contractor"})
	require.Len(t, got, 8)
	assert.Equal(t, "Contractor", got[4].Description)

	six := got[5]
	assert.Equal(t, 6, six.Code)
	assert.Empty(t, six.Description)
	assert.Equal(t, 1, six.ScheduleItems)
	assert.Equal(t, 3, six.ScheduleQuantity)
	assert.Equal(t, 1, six.Missing)
}

func TestQuoteFiles(t *testing.T) {
	t.Parallel()

	got := QuoteFiles([]models.QuoteItem{
		{SourceFile: "b.pdf", TotalPrice: 10},
		{SourceFile: "a.xlsx", TotalPrice: 5},
		{SourceFile: "b.pdf", TotalPrice: 99, NotInContract: true},
	})

	assert.Equal(t, []models.QuoteFileSummary{
		{File: "b.pdf", Items: 2, NICItems: 1, TotalValue: 10},
		{File: "a.xlsx", Items: 1, TotalValue: 5},
	}, got)
}

func TestOverviewAndCritical(t *testing.T) {
	t.Parallel()

	results := []models.ClassificationResult{
		result("1", code(5), models.StatusQuoted, 100),
		result("2", code(6), models.StatusMissing, 0),
		result("3", code(4), models.StatusMissing, 0),
		result("4", code(1), models.StatusOwnerSupply, 0),
		result("5", nil, models.StatusNA, 0),
		result("6", code(7), models.StatusNeedsPricing, 0),
	}

	o := Overview(results)
	assert.Equal(t, 6, o.TotalItems)
	assert.Equal(t, 4, o.ActionableItems)
	assert.Equal(t, 1, o.Quoted)
	assert.Equal(t, 2, o.Missing)
	assert.Equal(t, 1, o.NeedsPricing)
	assert.Equal(t, 100.0, o.TotalValue)

	critical := CriticalMissing(results, true)
	require.Len(t, critical, 1)
	assert.Equal(t, "2", critical[0].DrawingNo)

	assert.Len(t, CriticalMissing(results, false), 2)

	uncategorized := Uncategorized(results)
	require.Len(t, uncategorized, 1)
	assert.Equal(t, "5", uncategorized[0].DrawingNo)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	results := []models.ClassificationResult{
		result("1", code(5), models.StatusQuoted, 0),
		result("2", code(6), models.StatusMissing, 0),
		result("3", nil, models.StatusMissing, 0),
	}

	assert.Len(t, Filter(results, nil, nil), 3)
	assert.Len(t, Filter(results, []models.Status{models.StatusMissing}, nil), 2)

	byCode := Filter(results, nil, []int{5})
	require.Len(t, byCode, 2)
	assert.Equal(t, "1", byCode[0].DrawingNo)
	assert.Equal(t, "3", byCode[1].DrawingNo, "uncoded items survive a code filter")
}

func TestBuild_NoCodesWithoutEnforcement(t *testing.T) {
	t.Parallel()

	s := Build(Input{
		Results:       []models.ClassificationResult{result("1", code(5), models.StatusMissing, 0)},
		SupplierCodes: models.DefaultSupplierCodes(),
	})
	assert.Empty(t, s.BySupplierCode)
	assert.Len(t, s.CriticalMissing, 1)
	assert.Empty(t, s.QuoteFiles)
}
