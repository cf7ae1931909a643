package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/records"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

func code(c int) *int { return &c }

func enforced() Options {
	return Options{CategoryEnforcement: true, SupplierCodes: models.DefaultSupplierCodes()}
}

func TestAnalyze_Scenarios(t *testing.T) {
	t.Parallel()

	walkIn := models.DrawingItem{ItemNo: "2", Description: "WALK IN", Quantity: 1, SupplierCode: code(5), EquipmentNumber: "-"}

	t.Run("quoted", func(t *testing.T) {
		got := Analyze([]models.DrawingItem{walkIn}, []models.QuoteItem{
			{ItemNo: "2", Quantity: 1, UnitPrice: 97980.27, TotalPrice: 97980.27, SourceFile: "a.pdf"},
		}, enforced())

		require.Len(t, got, 1)
		assert.Equal(t, models.StatusQuoted, got[0].Status)
		assert.Nil(t, got[0].Issue)
		assert.Equal(t, 97980.27, got[0].TotalPrice)
		assert.Equal(t, "a.pdf", got[0].QuoteSource)
		assert.Equal(t, "Contractor Supply / Contractor Install", got[0].SupplierCodeDescription)
		assert.True(t, got[0].Matched)
	})

	t.Run("qty mismatch", func(t *testing.T) {
		got := Analyze([]models.DrawingItem{walkIn}, []models.QuoteItem{
			{ItemNo: "2", Quantity: 2, UnitPrice: 10, TotalPrice: 20},
		}, enforced())

		assert.Equal(t, models.StatusQtyMismatch, got[0].Status)
		require.NotNil(t, got[0].Issue)
		assert.Equal(t, "Drawing: 1, Quote: 2", *got[0].Issue)
	})

	t.Run("owner supply", func(t *testing.T) {
		got := Analyze([]models.DrawingItem{
			{ItemNo: "3", Description: "DISHWASHER", Quantity: 1, SupplierCode: code(1)},
		}, nil, enforced())

		assert.Equal(t, models.StatusOwnerSupply, got[0].Status)
		assert.Equal(t, "Owner Supply / Owner Install", *got[0].Issue)
		assert.False(t, got[0].Matched)
		assert.Equal(t, "-", got[0].QuoteItemNo)
	})

	t.Run("critical missing", func(t *testing.T) {
		got := Analyze([]models.DrawingItem{
			{ItemNo: "15", Description: "FRYER", Quantity: 1, SupplierCode: code(6)},
		}, []models.QuoteItem{{ItemNo: "16", Quantity: 1}}, enforced())

		assert.Equal(t, models.StatusMissing, got[0].Status)
		assert.Equal(t, IssueCriticalQuote, *got[0].Issue)
	})

	t.Run("range expanded NIC", func(t *testing.T) {
		ext := records.ExtractQuoteItems([]models.Row{
			{"no": "11-23", "desc": "NIC", "total": "5000"},
		}, models.FieldMapping{
			models.FieldNo:          "no",
			models.FieldDescription: "desc",
			models.FieldTotalPrice:  "total",
		}, "nic.xlsx")

		got := Analyze([]models.DrawingItem{
			{ItemNo: "15", Description: "HAND SINK", Quantity: 1, SupplierCode: code(5)},
		}, ext.Items, enforced())

		assert.Equal(t, models.StatusNIC, got[0].Status)
		assert.Equal(t, IssueNotInContract, *got[0].Issue)
		assert.Zero(t, got[0].TotalPrice)
		assert.Zero(t, got[0].UnitPrice)
	})
}

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	codes := models.DefaultSupplierCodes()
	nic := &models.QuoteItem{ItemNo: "1", Quantity: 1, NotInContract: true, TotalPrice: 50}
	priced := &models.QuoteItem{ItemNo: "1", Quantity: 1, TotalPrice: 50}

	tests := []struct {
		name    string
		item    models.DrawingItem
		match   *models.QuoteItem
		enforce bool
		want    models.Status
		issue   string
	}{
		{"spare beats owner supply", models.DrawingItem{Description: "Spare", SupplierCode: code(1), Quantity: 1}, priced, true, models.StatusNA, IssueSpare},
		{"dash placeholder", models.DrawingItem{Description: "-", Quantity: 1}, nil, true, models.StatusNA, IssueSpare},
		{"n/a placeholder", models.DrawingItem{Description: "n/a", Quantity: 1}, nil, false, models.StatusNA, IssueSpare},
		{"contains spare", models.DrawingItem{Description: "SPARE CIRCUIT", Quantity: 1}, nil, true, models.StatusNA, IssueSpare},
		{"owner supply beats match", models.DrawingItem{Description: "X", SupplierCode: code(2), Quantity: 1}, priced, true, models.StatusOwnerSupply, "Owner Supply / Owner Install (Special)"},
		{"existing beats match", models.DrawingItem{Description: "X", SupplierCode: code(8), Quantity: 1}, priced, true, models.StatusExisting, IssueExisting},
		{"nic match", models.DrawingItem{Description: "X", SupplierCode: code(5), Quantity: 3}, nic, true, models.StatusNIC, IssueNotInContract},
		{"needs pricing", models.DrawingItem{Description: "X", SupplierCode: code(7), Quantity: 1}, nil, true, models.StatusNeedsPricing, IssueNeedsInstall},
		{"code 7 quoted", models.DrawingItem{Description: "X", SupplierCode: code(7), Quantity: 1}, priced, true, models.StatusQuoted, ""},
		{"code 4 missing", models.DrawingItem{Description: "X", SupplierCode: code(4), Quantity: 1}, nil, true, models.StatusMissing, IssueNotFound},
		{"no code missing", models.DrawingItem{Description: "X", Quantity: 1}, nil, true, models.StatusMissing, IssueNotFound},
		{"enforcement off ignores owner code", models.DrawingItem{Description: "X", SupplierCode: code(1), Quantity: 1}, nil, false, models.StatusMissing, IssueNotFound},
		{"enforcement off ignores critical code", models.DrawingItem{Description: "X", SupplierCode: code(6), Quantity: 1}, nil, false, models.StatusMissing, IssueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, iss := Classify(tt.item, tt.match, codes, tt.enforce)
			assert.Equal(t, tt.want, status)
			if tt.issue == "" {
				assert.Nil(t, iss)
				return
			}
			require.NotNil(t, iss)
			assert.Equal(t, tt.issue, *iss)
		})
	}
}

func TestAnalyze_EnforcementToggle(t *testing.T) {
	t.Parallel()

	var drawing []models.DrawingItem
	for c := 1; c <= 8; c++ {
		drawing = append(drawing,
			models.DrawingItem{ItemNo: string(rune('0' + c)), Description: "ITEM", Quantity: 1, SupplierCode: code(c)},
		)
	}
	drawing = append(drawing, models.DrawingItem{ItemNo: "9", Description: "SPARE", Quantity: 1})
	quotes := []models.QuoteItem{{ItemNo: "5", Quantity: 1, TotalPrice: 10}, {ItemNo: "9", Quantity: 2}}

	on := Analyze(drawing, quotes, enforced())
	off := Analyze(drawing, quotes, Options{SupplierCodes: models.DefaultSupplierCodes()})

	seen := map[models.Status]bool{}
	for _, r := range on {
		seen[r.Status] = true
	}
	assert.True(t, seen[models.StatusOwnerSupply])
	assert.True(t, seen[models.StatusExisting])
	assert.True(t, seen[models.StatusNeedsPricing])

	for _, r := range off {
		assert.NotContains(t, []models.Status{models.StatusOwnerSupply, models.StatusExisting, models.StatusNeedsPricing}, r.Status)
		assert.Equal(t, "-", r.SupplierCodeDescription)
	}
	assert.Equal(t, models.StatusNA, off[8].Status)
}

func TestAnalyzer_Report(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(utils.NewLogger("error"))

	_, err := a.Analyze(context.Background(), Input{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrNoDrawing)

	report, err := a.Analyze(context.Background(), Input{
		SessionID:   "s1",
		DrawingFile: "schedule.pdf",
		DrawingItems: []models.DrawingItem{
			{ItemNo: "1", Description: "COOLER", Quantity: 1, SupplierCode: code(5)},
			{ItemNo: "2", Description: "FREEZER", Quantity: 1, SupplierCode: code(6)},
		},
		QuoteItems: []models.QuoteItem{{ItemNo: "1", Quantity: 1, TotalPrice: 100, SourceFile: "q.xlsx"}},
		Options:    Options{CategoryEnforcement: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "schedule.pdf", report.DrawingFile)
	assert.Len(t, report.Results, 2)
	assert.Len(t, report.SupplierCodes, 8)
	assert.Equal(t, 1, report.Summary.Overview.Quoted)
	assert.Equal(t, 1, report.Summary.Overview.Missing)
	assert.Equal(t, 100.0, report.Summary.Overview.TotalValue)
	require.Len(t, report.Summary.CriticalMissing, 1)
	assert.Equal(t, "2", report.Summary.CriticalMissing[0].DrawingNo)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer(utils.NewLogger("error")).Analyze(ctx, Input{
		DrawingItems: []models.DrawingItem{{ItemNo: "1", Description: "X", Quantity: 1}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
