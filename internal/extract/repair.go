package extract

import (
	"log/slog"
	"strings"

	"github.com/rbrtjns90/statement-organizer/internal/feature"
	"github.com/rbrtjns90/statement-organizer/internal/layout"
	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// minCrammedDates is how many date shapes a money-free line must carry
// before it is treated as several transaction descriptions crammed together
// by an upstream extraction artifact.
const minCrammedDates = 4

// fragment is one description split out of a date-heavy line, waiting to be
// paired with an orphaned amount.
type fragment struct {
	date string
	desc string
	line int
}

// orphanAmount is a money shape on a line with no date shape, likely an
// amount visually separated from its description.
type orphanAmount struct {
	text     string
	line     int
	consumed bool
}

// repairPass stitches together transactions whose description and amount
// were split across non-adjacent lines. It trades precision for recall on
// malformed extractions: each fragment claims the nearest unclaimed orphaned
// amount within the line-distance window, consuming it so it cannot be
// reused. Lines that already produced a primary-pass record are never
// touched.
func (e *Engine) repairPass(lines []layout.Line, pageNum, yearHint int, emitted map[int]bool) []model.Transaction {
	var fragments []fragment
	var orphans []orphanAmount

	for i, line := range lines {
		if emitted[i] {
			continue
		}
		dates := feature.CountDateShapes(line.Text)
		moneys := feature.MoneyShapes(line.Text)

		switch {
		case dates >= minCrammedDates && len(moneys) == 0:
			fragments = append(fragments, splitCrammedLine(line.Text, i)...)
		case len(moneys) > 0 && dates == 0:
			for _, m := range moneys {
				orphans = append(orphans, orphanAmount{text: m, line: i})
			}
		}
	}

	if len(fragments) == 0 || len(orphans) == 0 {
		return nil
	}

	var txns []model.Transaction
	for _, frag := range fragments {
		// Same keyword safety net as the primary pass, checked before an
		// orphan is claimed so a summary fragment never consumes an
		// amount a real one needs.
		if e.table.IsNonTransaction(frag.desc) || e.table.IsNonTransaction(lines[frag.line].Text) {
			continue
		}
		idx := nearestOrphan(orphans, frag.line, e.window)
		if idx < 0 {
			continue
		}
		orphans[idx].consumed = true

		amount, ok := model.ParseAmount(orphans[idx].text)
		if !ok {
			continue
		}

		txn := model.Transaction{
			DateText:    frag.date,
			Description: frag.desc,
			Amount:      amount,
			Type:        "debit",
			Raw:         lines[frag.line].Text,
			Page:        pageNum,
		}
		if parsed, ok := model.ParseDate(frag.date, yearHint); ok {
			txn.Date = parsed
		}
		txn.Hash = txn.GenerateHash()
		txns = append(txns, txn)
	}

	if len(txns) > 0 {
		slog.Debug("repair pass recovered transactions",
			"page", pageNum,
			"fragments", len(fragments),
			"orphans", len(orphans),
			"recovered", len(txns))
	}
	return txns
}

// splitCrammedLine breaks a line holding several transactions into
// per-transaction fragments. The layouts that produce these lines print a
// transaction date and a posting date per entry, so fragments are keyed by
// adjacent date pairs: each description runs from the end of its date pair
// to the start of the next one.
func splitCrammedLine(text string, lineIdx int) []fragment {
	spans := feature.DateShapeSpans(text)
	if len(spans) < 2 {
		return nil
	}

	var fragments []fragment
	for i := 0; i+1 < len(spans); i += 2 {
		first, second := spans[i], spans[i+1]

		// The pair must be adjacent: only whitespace between them.
		if strings.TrimSpace(text[first[1]:second[0]]) != "" {
			continue
		}

		end := len(text)
		if i+2 < len(spans) {
			end = spans[i+2][0]
		}
		desc := strings.TrimSpace(text[second[1]:end])
		if desc == "" {
			continue
		}
		fragments = append(fragments, fragment{
			date: text[first[0]:first[1]],
			desc: desc,
			line: lineIdx,
		})
	}
	return fragments
}

// nearestOrphan returns the index of the closest unconsumed orphan within
// the window of the fragment's line, preferring the earlier line on ties.
// Returns -1 when none qualifies.
func nearestOrphan(orphans []orphanAmount, fragLine, window int) int {
	best := -1
	bestDist := window + 1
	for i, o := range orphans {
		if o.consumed {
			continue
		}
		dist := o.line - fragLine
		if dist < 0 {
			dist = -dist
		}
		if dist <= window && dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
