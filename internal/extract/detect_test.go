package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
)

func TestLooksLikeStatement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "statement with indicators, money, and dates",
			text: statementText,
			want: true,
		},
		{
			name: "plain prose",
			text: "Dear valued customer, thank you for your loyalty over the years.",
			want: false,
		},
		{
			name: "money without indicator keywords",
			text: "Receipt 06/01 total item price 4.50",
			want: false,
		},
		{
			name: "indicators but no money shape",
			text: "Your account statement is ready. Payment history available online.",
			want: false,
		},
		{
			name: "indicators and money but no date shape",
			text: "Account balance payment of 12.00 received",
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeStatement(tt.text, heuristics.Default()))
		})
	}
}

func TestLooksLikeStatement_NilTableUsesDefaults(t *testing.T) {
	assert.True(t, LooksLikeStatement(statementText, nil))
}
