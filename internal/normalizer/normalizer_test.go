package normalizer

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"$97,980.27", 97980.27, true},
		{"  1,200 ", 1200, true},
		{"USD 45.5", 45.5, true},
		{"-12.00", -12, true},
		{"", 0, false},
		{"NIC", 0, false},
		{"$", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCurrency(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"2 ea", 2},
		{"12 EA", 12},
		{"1,200 ea", 1200},
		{"2.0", 2},
		{"(4)", 4},
		{"qty 5", 5},
		{"", 1},
		{"NIC", 1},
		{"0", 1},
		{"-3", 1},
		{"nan", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.raw))
		})
	}
}

func TestParseQuantity_IdempotentOnIntegers(t *testing.T) {
	for _, raw := range []string{"1", "7", "42", "1000"} {
		once := ParseQuantity(raw)
		twice := ParseQuantity(strconv.Itoa(once))
		assert.Equal(t, once, twice, "raw=%s", raw)
	}
}

func TestParseSupplierCode(t *testing.T) {
	code := ParseSupplierCode("5")
	require.NotNil(t, code)
	assert.Equal(t, 5, *code)

	code = ParseSupplierCode("6.0")
	require.NotNil(t, code)
	assert.Equal(t, 6, *code)

	code = ParseSupplierCode("Cat 7")
	require.NotNil(t, code)
	assert.Equal(t, 7, *code)

	assert.Nil(t, ParseSupplierCode(""))
	assert.Nil(t, ParseSupplierCode("-"))
	assert.Nil(t, ParseSupplierCode("0"))
	assert.Nil(t, ParseSupplierCode("12"))
}

func TestIsHeaderRemnant(t *testing.T) {
	for _, s := range []string{"", "  ", "NaN", "No.", "ITEM", "Description", "none"} {
		assert.True(t, IsHeaderRemnant(s), "%q", s)
	}
	for _, s := range []string{"1", "WALK IN", "NIC", "9a"} {
		assert.False(t, IsHeaderRemnant(s), "%q", s)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1", DigitsOnly("1a"))
	assert.Equal(t, "1023", DigitsOnly("10-23"))
	assert.Equal(t, "", DigitsOnly("abc"))
}
