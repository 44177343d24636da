package template

import (
	"strings"

	"github.com/rbrtjns90/statement-organizer/internal/feature"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
)

// Thresholds for reading the winning cluster's shape statistics. A rate is a
// fraction of the confident exemplar lines.
const (
	// requiredDateRate: above this, the date column is mandatory in the
	// synthesized pattern rather than optional.
	requiredDateRate = 0.6

	// doubleDateRate: above this, lines carry a transaction date and a
	// posting date, so the pattern expects two date columns.
	doubleDateRate = 0.5

	// balanceRate: above this, rows end with amount plus running balance.
	balanceRate = 0.5
)

// Synthesize derives a Template from the winning cluster's lines.
//
// Only confident exemplars inform the shape: lines that carry both a date
// and a money shape, exceed the minimum transaction length, and contain no
// non-transaction keyword. If that filter removes every line the unfiltered
// set is used instead, trading precision for recall.
func Synthesize(texts []string, table *heuristics.Table) Template {
	confident := make([]string, 0, len(texts))
	for _, text := range texts {
		if feature.HasDateShape(text) && feature.HasMoneyShape(text) &&
			len(strings.TrimSpace(text)) > table.MinTransactionLen &&
			!table.IsNonTransaction(text) {
			confident = append(confident, text)
		}
	}
	if len(confident) == 0 {
		confident = texts
	}

	var dateHits, doubleDateHits, doubleMoneyHits int
	for _, text := range confident {
		if feature.HasDateShape(text) {
			dateHits++
		}
		if feature.CountDateShapes(text) >= 2 {
			doubleDateHits++
		}
		if feature.CountMoneyShapes(text) >= 2 {
			doubleMoneyHits++
		}
	}

	n := float64(len(confident))
	var t Template
	if n == 0 {
		t.Dates = DateOptionalSingle
		return t
	}

	dateRate := float64(dateHits) / n
	double := float64(doubleDateHits)/n > doubleDateRate

	switch {
	case double && dateRate > requiredDateRate:
		t.Dates = DateRequiredDouble
	case double:
		t.Dates = DateOptionalDouble
	case dateRate > requiredDateRate:
		t.Dates = DateRequiredSingle
	default:
		t.Dates = DateOptionalSingle
	}

	if float64(doubleMoneyHits)/n >= balanceRate {
		t.Money = MoneyAmountBalance
	}

	return t
}
