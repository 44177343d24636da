package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "plain amount", text: "1,234.56", want: 1},
		{name: "negative", text: "-12.00", want: 1},
		{name: "signed positive", text: "+8.90", want: 1},
		{name: "dollar sign", text: "$8.90", want: 1},
		{name: "two amounts", text: "GROCERY 82.10 1,082.10", want: 2},
		{name: "no decimals", text: "1-800-000-0000", want: 0},
		{name: "one decimal digit", text: "3.5", want: 0},
		{name: "integer", text: "12345", want: 0},
		{name: "embedded in text", text: "fee of $35.00 applied", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountMoneyShapes(tt.text))
			assert.Equal(t, tt.want > 0, HasMoneyShape(tt.text))
		})
	}
}

func TestIsMoneyShape(t *testing.T) {
	assert.True(t, IsMoneyShape("4.50"))
	assert.True(t, IsMoneyShape("$1,234.56"))
	assert.True(t, IsMoneyShape("-12.00"))
	assert.False(t, IsMoneyShape("4.50 extra"))
	assert.False(t, IsMoneyShape("ABC"))
	assert.False(t, IsMoneyShape(""))
}

func TestDateShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "slash no year", text: "06/01", want: 1},
		{name: "slash short year", text: "01/31/25", want: 1},
		{name: "slash full year", text: "01/31/2025", want: 1},
		{name: "iso", text: "2025-01-31", want: 1},
		{name: "day month year", text: "31 Jan 2025", want: 1},
		{name: "month day comma year", text: "Jan 31, 2025", want: 1},
		{name: "month day no year", text: "Jan 31", want: 1},
		{name: "lowercase month", text: "jan 31", want: 1},
		{name: "four dates", text: "06/01 06/02 Merchant A 06/03 06/04 Merchant B", want: 4},
		{name: "ordinary words with digits", text: "SHOP 4 STORE 82", want: 0},
		{name: "money is not a date", text: "1,234.56", want: 0},
		{name: "plain text", text: "Customer Service", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountDateShapes(tt.text))
			assert.Equal(t, tt.want > 0, HasDateShape(tt.text))
		})
	}
}

func TestFirstDateShape(t *testing.T) {
	assert.Equal(t, "06/01", FirstDateShape("06/01 COFFEE SHOP 4.50"))
	assert.Equal(t, "", FirstDateShape("COFFEE SHOP"))
}

func TestDateShapeSpans(t *testing.T) {
	spans := DateShapeSpans("06/01 06/02 Merchant A")
	assert.Equal(t, [][]int{{0, 5}, {6, 11}}, spans)
}
