package layout

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// Line is an ordered sequence of tokens sharing a vertical band, representing
// one visual row of text. Lines are immutable once reconstructed.
type Line struct {
	Text   string  // tokens joined by single spaces, left to right
	Tokens []Token // never shared between lines
	Y      float64 // median of token vertical centers
}

// ReconstructLines groups a page's characters into visual lines in reading
// order (topmost first). A page with no characters yields no lines.
//
// Characters are first partitioned by baseline: sorted by (top, x0), a
// character joins the current group when its top is within yTolerance of a
// running average of the group's tops, which tolerates slow vertical drift
// across a row. Each group is then merged into word tokens.
func ReconstructLines(chars []model.Char) []Line {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]model.Char, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti := math.Round(sorted[i].Top*10) / 10
		tj := math.Round(sorted[j].Top*10) / 10
		if ti != tj {
			return ti < tj
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var groups [][]model.Char
	current := []model.Char{sorted[0]}
	lastTop := sorted[0].Top

	for _, c := range sorted[1:] {
		if math.Abs(c.Top-lastTop) <= yTolerance {
			current = append(current, c)
			lastTop = (lastTop + c.Top) / 2
		} else {
			groups = append(groups, current)
			current = []model.Char{c}
			lastTop = c.Top
		}
	}
	groups = append(groups, current)

	lines := make([]Line, 0, len(groups))
	for _, group := range groups {
		tokens := assembleTokens(group)
		if len(tokens) == 0 {
			continue
		}
		lines = append(lines, Line{
			Text:   joinTokens(tokens),
			Tokens: tokens,
			Y:      medianCenter(tokens),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y < lines[j].Y })
	return lines
}

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

func medianCenter(tokens []Token) float64 {
	centers := make([]float64, len(tokens))
	for i, t := range tokens {
		centers[i] = (t.Y0 + t.Y1) / 2
	}
	sort.Float64s(centers)
	return stat.Quantile(0.5, stat.Empirical, centers, nil)
}
