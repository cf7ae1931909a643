package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

func quotes(itemNos ...string) []models.QuoteItem {
	out := make([]models.QuoteItem, len(itemNos))
	for i, no := range itemNos {
		out[i] = models.QuoteItem{ItemNo: no, Quantity: 1, SourceFile: "q"}
	}
	return out
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		itemNo  string
		quotes  []models.QuoteItem
		wantIdx int
	}{
		{"exact", "12", quotes("11", "12", "13"), 1},
		{"case insensitive and trimmed", " 4a ", quotes("4A"), 0},
		{"exact beats earlier numeric", "5A", quotes("5", "5a"), 1},
		{"numeric fallback", "5A", quotes("6", "5"), 1},
		{"leading zeros", "007", quotes("7"), 0},
		{"earliest duplicate wins", "9", quotes("9", "9"), 0},
		{"no digits no numeric match", "A", quotes("B"), -1},
		{"blank drawing number", "", quotes(""), -1},
		{"no match", "42", quotes("41", "43"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.DrawingItem{ItemNo: tt.itemNo}

			got := Match(item, tt.quotes)
			indexed := NewIndex(tt.quotes).Lookup(item)

			if tt.wantIdx < 0 {
				assert.Nil(t, got)
				assert.Nil(t, indexed)
				return
			}
			require.NotNil(t, got)
			assert.Same(t, &tt.quotes[tt.wantIdx], got)
			assert.Same(t, &tt.quotes[tt.wantIdx], indexed)
		})
	}
}

func TestMatch_RangeExpandedQuote(t *testing.T) {
	t.Parallel()

	qs := quotes("10", "11", "12")
	for i := range qs {
		qs[i].NotInContract = true
	}

	got := Match(models.DrawingItem{ItemNo: "11"}, qs)
	require.NotNil(t, got)
	assert.True(t, got.NotInContract)
}

func TestIndex_Len(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, NewIndex(quotes("1", "2", "2")).Len())
	assert.Nil(t, NewIndex(nil).Lookup(models.DrawingItem{ItemNo: "1"}))
}
