// Package heuristics holds the tunable data driving cluster scoring and
// transaction filtering: the non-transaction keyword table and the score
// weights. Values live here as versioned configuration data, not code, so
// new statement layouts can be accommodated without logic changes and tests
// can pin exact values.
package heuristics

import (
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"
)

// Version identifies the built-in heuristics table. Bump when the defaults
// change so stored extraction results can be traced to the table that
// produced them.
const Version = "2024.2"

// Weights are the fixed coefficients of the cluster composite score. Cluster
// size is not weighted; it only breaks composite ties.
type Weights struct {
	MoneyRate       float64 `yaml:"money_rate"`
	DateRate        float64 `yaml:"date_rate"`
	RightMoneyRate  float64 `yaml:"right_money_rate"`
	TransactionRate float64 `yaml:"transaction_rate"`
	SizeConsistency float64 `yaml:"size_consistency"`
	HighMoneyBonus  float64 `yaml:"high_money_bonus"`
	DoubleDateBonus float64 `yaml:"double_date_bonus"`
	SummaryPenalty  float64 `yaml:"summary_penalty"`
}

// Table is one versioned set of heuristics.
type Table struct {
	Version             string   `yaml:"version"`
	NonTransactionWords []string `yaml:"non_transaction_words"`
	StatementIndicators []string `yaml:"statement_indicators"`
	Weights             Weights  `yaml:"weights"`

	// MinTransactionLen is the shortest line (in characters) that still
	// counts as transaction-like during scoring and template filtering.
	MinTransactionLen int `yaml:"min_transaction_len"`

	matcher *ahocorasick.Matcher
}

// Default returns the built-in heuristics table.
func Default() *Table {
	t := &Table{
		Version: Version,
		NonTransactionWords: []string{
			"previous balance", "new balance", "minimum payment", "payment due",
			"credit limit", "past due", "fees charged", "cash advance",
			"balance transfer", "messages for details", "over the credit limit",
			"customer service", "website", "phone", "autopay", "account message",
			"www.", ".com", "http", "total", "subtotal",
		},
		StatementIndicators: []string{
			"statement", "account", "balance", "transaction", "payment",
			"deposit", "withdrawal", "credit", "debit",
		},
		Weights: Weights{
			MoneyRate:       50.0,
			DateRate:        30.0,
			RightMoneyRate:  25.0,
			TransactionRate: 100.0,
			SizeConsistency: 5.0,
			HighMoneyBonus:  100.0,
			DoubleDateBonus: 200.0,
			SummaryPenalty:  150.0,
		},
		MinTransactionLen: 10,
	}
	t.compile()
	return t
}

// Load reads a heuristics table from a YAML file, filling gaps from the
// defaults.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read heuristics file: %w", err)
	}
	t := Default()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse heuristics file: %w", err)
	}
	t.compile()
	return t, nil
}

// Save writes the table to a YAML file, for seeding a user-editable copy.
func (t *Table) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal heuristics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write heuristics file: %w", err)
	}
	return nil
}

func (t *Table) compile() {
	lowered := make([]string, len(t.NonTransactionWords))
	for i, w := range t.NonTransactionWords {
		lowered[i] = strings.ToLower(w)
	}
	t.matcher = ahocorasick.NewStringMatcher(lowered)
}

// IsNonTransaction reports whether text contains any non-transaction keyword
// (balance summaries, disclosure boilerplate, URLs, contact info).
func (t *Table) IsNonTransaction(text string) bool {
	if t.matcher == nil {
		t.compile()
	}
	return t.matcher.Contains([]byte(strings.ToLower(text)))
}

// CountIndicators returns how many distinct statement-indicator keywords
// appear in text. Used by the cheap "is this a statement at all" pre-check.
func (t *Table) CountIndicators(text string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, indicator := range t.StatementIndicators {
		if strings.Contains(lowered, indicator) {
			count++
		}
	}
	return count
}
