package cluster

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rbrtjns90/statement-organizer/internal/feature"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
	"github.com/rbrtjns90/statement-organizer/internal/layout"
)

// Score aggregates one cluster's transaction-likelihood signals and the
// composite score combining them.
type Score struct {
	Label            int
	Members          int
	MoneyRate        float64 // fraction of lines with a money shape
	DateRate         float64 // fraction of lines with a date shape
	MultiDateRate    float64 // fraction of lines with two or more date shapes
	RightMoneyRate   float64 // fraction whose rightmost token is entirely money-shaped
	TransactionRate  float64 // fraction that look like complete transaction rows
	SummaryRate      float64 // fraction containing a non-transaction keyword
	MeanTokens       float64
	MeanChars        float64
	SizeStdDevMedian float64
	Composite        float64
}

// Selector scores every cluster on a page and picks the winner.
type Selector struct {
	table *heuristics.Table
}

// NewSelector creates a selector driven by the given heuristics table.
func NewSelector(table *heuristics.Table) *Selector {
	return &Selector{table: table}
}

// Select scores each distinct label and returns the winning label together
// with all per-cluster scores. The highest composite score wins; ties break
// toward the larger cluster. A degenerate single-cluster page wins by
// default.
func (s *Selector) Select(lines []layout.Line, vectors []feature.Vector, labels []int) (int, []Score) {
	byLabel := make(map[int][]int)
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}

	orderedLabels := make([]int, 0, len(byLabel))
	for label := range byLabel {
		orderedLabels = append(orderedLabels, label)
	}
	sort.Ints(orderedLabels)

	scores := make([]Score, 0, len(orderedLabels))
	winner := -1
	var winning Score

	for _, label := range orderedLabels {
		sc := s.scoreCluster(label, byLabel[label], lines, vectors)
		scores = append(scores, sc)

		if winner == -1 ||
			sc.Composite > winning.Composite ||
			(sc.Composite == winning.Composite && sc.Members > winning.Members) {
			winner = label
			winning = sc
		}
	}

	return winner, scores
}

func (s *Selector) scoreCluster(label int, idxs []int, lines []layout.Line, vectors []feature.Vector) Score {
	n := len(idxs)
	sc := Score{Label: label, Members: n}
	if n == 0 {
		return sc
	}

	sizeStdDevs := make([]float64, 0, n)
	var moneyHits, dateHits, multiDateHits, rightMoneyHits, txnHits, summaryHits int
	var tokenSum, charSum float64

	for _, i := range idxs {
		v := vectors[i]
		text := lines[i].Text

		if v.HasMoney > 0 {
			moneyHits++
		}
		if v.HasDate > 0 {
			dateHits++
		}
		if v.DateCount >= 2 {
			multiDateHits++
		}
		if v.RightmostIsMoney > 0 {
			rightMoneyHits++
		}
		tokenSum += v.TokenCount
		charSum += v.CharCount
		sizeStdDevs = append(sizeStdDevs, v.SizeStdDev)

		isSummary := s.table.IsNonTransaction(text)
		if isSummary {
			summaryHits++
		}
		if v.HasDate > 0 && v.HasMoney > 0 &&
			len(text) > s.table.MinTransactionLen && !isSummary {
			txnHits++
		}
	}

	fn := float64(n)
	sc.MoneyRate = float64(moneyHits) / fn
	sc.DateRate = float64(dateHits) / fn
	sc.MultiDateRate = float64(multiDateHits) / fn
	sc.RightMoneyRate = float64(rightMoneyHits) / fn
	sc.TransactionRate = float64(txnHits) / fn
	sc.SummaryRate = float64(summaryHits) / fn
	sc.MeanTokens = tokenSum / fn
	sc.MeanChars = charSum / fn

	sort.Float64s(sizeStdDevs)
	sc.SizeStdDevMedian = stat.Quantile(0.5, stat.Empirical, sizeStdDevs, nil)

	// Member count deliberately contributes nothing here; it only breaks
	// ties in Select. An unbounded size term would let a long prose
	// section outscore a handful of perfect transaction rows.
	w := s.table.Weights
	sc.Composite = w.MoneyRate*sc.MoneyRate +
		w.DateRate*sc.DateRate +
		w.RightMoneyRate*sc.RightMoneyRate +
		w.TransactionRate*sc.TransactionRate -
		w.SizeConsistency*sc.SizeStdDevMedian

	// Bonus for clusters that are almost entirely money rows of real size.
	if sc.MoneyRate > 0.8 && n >= 5 {
		sc.Composite += w.HighMoneyBonus
	}
	// Double-date layouts (transaction date + posting date) are a strong
	// transaction signal. The size gate keeps a lone header such as a
	// statement-period line from collecting the bonus as a singleton.
	if sc.MultiDateRate > 0.8 && n >= 3 {
		sc.Composite += w.DoubleDateBonus
	}
	// Keyword-heavy clusters are summaries or boilerplate.
	if sc.SummaryRate > 0.5 {
		sc.Composite -= w.SummaryPenalty
	}

	return sc
}
