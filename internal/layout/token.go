// Package layout reconstructs word tokens and visual lines from the
// positioned characters supplied by the page-extraction layer.
package layout

import (
	"sort"
	"strings"

	"github.com/rbrtjns90/statement-organizer/internal/model"
)

const (
	// yTolerance is how far apart two character tops can be while still
	// counting as the same baseline, in points.
	yTolerance = 2.0

	// minGap is the smallest horizontal gap that ever splits two characters
	// into separate tokens, in points.
	minGap = 1.5

	// gapSizeFactor scales the split threshold with font size, so large
	// print tolerates proportionally larger intra-word gaps.
	gapSizeFactor = 0.3
)

// Token is a run of characters merged into one word based on horizontal
// proximity. Tokens belong to exactly one Line.
type Token struct {
	Text string
	X0   float64
	X1   float64
	Y0   float64
	Y1   float64
	Size float64
}

// assembleTokens merges one baseline group of characters into word tokens.
// Characters whose horizontal gap exceeds max(minGap, gapSizeFactor*size)
// start a new token.
func assembleTokens(chars []model.Char) []Token {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]model.Char, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X0 < sorted[j].X0 })

	var tokens []Token
	run := []model.Char{sorted[0]}

	flush := func() {
		tok := buildToken(run)
		if strings.TrimSpace(tok.Text) != "" {
			tokens = append(tokens, tok)
		}
	}

	for i := 1; i < len(sorted); i++ {
		prev := run[len(run)-1]
		gap := sorted[i].X0 - prev.X1
		threshold := gapSizeFactor * prev.Size
		if threshold < minGap {
			threshold = minGap
		}
		if gap <= threshold {
			run = append(run, sorted[i])
			continue
		}
		flush()
		run = []model.Char{sorted[i]}
	}
	flush()

	return tokens
}

// buildToken collapses a character run into a single token. The bounding box
// is the union of the character boxes and the size is the mean of the
// character sizes.
func buildToken(run []model.Char) Token {
	var sb strings.Builder
	tok := Token{
		X0: run[0].X0,
		X1: run[0].X1,
		Y0: run[0].Top,
		Y1: run[0].Bottom,
	}
	var sizeSum float64
	for _, c := range run {
		sb.WriteString(c.Text)
		if c.X0 < tok.X0 {
			tok.X0 = c.X0
		}
		if c.X1 > tok.X1 {
			tok.X1 = c.X1
		}
		if c.Top < tok.Y0 {
			tok.Y0 = c.Top
		}
		if c.Bottom > tok.Y1 {
			tok.Y1 = c.Bottom
		}
		sizeSum += c.Size
	}
	tok.Text = sb.String()
	tok.Size = sizeSum / float64(len(run))
	return tok
}
