package extract

import (
	"github.com/rbrtjns90/statement-organizer/internal/feature"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
)

// minIndicators is how many distinct statement-indicator keywords the text
// must contain before it plausibly reads as a financial statement.
const minIndicators = 2

// LooksLikeStatement is the cheap pre-check collaborators run before paying
// for the full pipeline: keyword density plus the presence of at least one
// money shape and one date shape. It inspects nothing but the text.
func LooksLikeStatement(text string, table *heuristics.Table) bool {
	if table == nil {
		table = heuristics.Default()
	}
	if table.CountIndicators(text) < minIndicators {
		return false
	}
	return feature.HasMoneyShape(text) && feature.HasDateShape(text)
}
