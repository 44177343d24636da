package template

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
)

func TestSynthesize_ArityDecisions(t *testing.T) {
	table := heuristics.Default()

	tests := []struct {
		name      string
		texts     []string
		wantDates DateArity
		wantMoney MoneyArity
	}{
		{
			name: "uniform single date rows require the date",
			texts: []string{
				"06/01 COFFEE SHOP DOWNTOWN 4.50",
				"06/02 GROCERY STORE MAIN ST 82.17",
				"06/03 GAS STATION ROUTE 9 35.00",
			},
			wantDates: DateRequiredSingle,
			wantMoney: MoneyAmountOnly,
		},
		{
			name: "double dates on every row require both",
			texts: []string{
				"06/01 06/02 COFFEE SHOP DOWNTOWN 4.50",
				"06/02 06/03 GROCERY STORE MAIN ST 82.17",
				"06/03 06/04 GAS STATION ROUTE 9 35.00",
			},
			wantDates: DateRequiredDouble,
			wantMoney: MoneyAmountOnly,
		},
		{
			name: "amount plus running balance on every row",
			texts: []string{
				"06/01 COFFEE SHOP DOWNTOWN 4.50 995.50",
				"06/02 GROCERY STORE MAIN ST 82.17 913.33",
			},
			wantDates: DateRequiredSingle,
			wantMoney: MoneyAmountBalance,
		},
		{
			name:      "no confident exemplars falls back to optional single",
			texts:     []string{"some header", "another header"},
			wantDates: DateOptionalSingle,
			wantMoney: MoneyAmountOnly,
		},
		{
			name:      "empty input",
			texts:     nil,
			wantDates: DateOptionalSingle,
			wantMoney: MoneyAmountOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.texts, table)
			assert.Equal(t, tt.wantDates, got.Dates, "dates")
			assert.Equal(t, tt.wantMoney, got.Money, "money")
		})
	}
}

func TestSynthesize_IgnoresSummaryOutliers(t *testing.T) {
	table := heuristics.Default()

	// The summary line has no date, but it is filtered out before rates
	// are computed, so the date column still ends up required.
	texts := []string{
		"06/01 COFFEE SHOP DOWNTOWN 4.50",
		"06/02 GROCERY STORE MAIN ST 82.17",
		"06/03 GAS STATION ROUTE 9 35.00",
		"Previous Balance 1,000.00",
	}

	got := Synthesize(texts, table)

	assert.Equal(t, DateRequiredSingle, got.Dates)
}

func TestBuild_MatchesSynthesizedRows(t *testing.T) {
	table := heuristics.Default()

	texts := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		texts = append(texts, fmt.Sprintf("06/%02d MERCHANT NUMBER %d 12.%02d", i+1, i, i))
	}

	tmpl := Synthesize(texts, table)
	re, err := tmpl.Build()
	require.NoError(t, err)

	for _, text := range texts {
		assert.True(t, re.MatchString(text), "should match %q", text)
	}
	assert.False(t, re.MatchString("Customer Service: 1-800-000-0000"))
	assert.False(t, re.MatchString("Thank you for your business"))
}

func TestBuild_CaptureGroups(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     Template
		text     string
		wantDesc string
		wantAmt  string
		wantBal  string
	}{
		{
			name:     "required single date, amount only",
			tmpl:     Template{Dates: DateRequiredSingle},
			text:     "06/01 COFFEE SHOP 4.50",
			wantDesc: "COFFEE SHOP",
			wantAmt:  "4.50",
		},
		{
			name:     "optional date absent",
			tmpl:     Template{Dates: DateOptionalSingle},
			text:     "MONTHLY FEE 5.00",
			wantDesc: "MONTHLY FEE",
			wantAmt:  "5.00",
		},
		{
			name:     "amount and balance",
			tmpl:     Template{Dates: DateRequiredSingle, Money: MoneyAmountBalance},
			text:     "06/01 GROCERY STORE 82.17 913.33",
			wantDesc: "GROCERY STORE",
			wantAmt:  "82.17",
			wantBal:  "913.33",
		},
		{
			name:     "double date",
			tmpl:     Template{Dates: DateRequiredDouble},
			text:     "06/01 06/02 GAS STATION -35.00",
			wantDesc: "GAS STATION",
			wantAmt:  "-35.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := tt.tmpl.Build()
			require.NoError(t, err)

			m := re.FindStringSubmatch(tt.text)
			require.NotNil(t, m, "pattern %q should match %q", re.String(), tt.text)
			assert.Equal(t, tt.wantDesc, m[1])
			assert.Equal(t, tt.wantAmt, m[2])
			if tt.wantBal != "" {
				require.Len(t, m, 4)
				assert.Equal(t, tt.wantBal, m[3])
			}
		})
	}
}

func TestBuild_RejectsWithoutAmount(t *testing.T) {
	re, err := Template{Dates: DateRequiredSingle}.Build()
	require.NoError(t, err)

	assert.False(t, re.MatchString("06/01 PENDING AUTHORIZATION"))
	assert.False(t, re.MatchString("Page 2 of 4"))
}

func TestDateArity_String(t *testing.T) {
	assert.Equal(t, "none", DateNone.String())
	assert.Equal(t, "required-double", DateRequiredDouble.String())
	assert.Equal(t, "amount+balance", MoneyAmountBalance.String())
}
