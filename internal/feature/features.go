package feature

import (
	"math"
	"strings"
	"unicode"

	"github.com/rbrtjns90/statement-organizer/internal/layout"
)

// Vector is the structural feature vector of a single line. Every field is a
// pure function of the line and the page width; identical lines always
// produce identical vectors.
type Vector struct {
	TokenCount       float64
	CharCount        float64
	DigitCount       float64
	LetterCount      float64
	PunctCount       float64
	DigitRatio       float64
	LetterRatio      float64
	PunctRatio       float64
	HasMoney         float64 // 0 or 1
	MoneyCount       float64
	HasDate          float64 // 0 or 1
	DateCount        float64
	LeftRatio        float64 // leftmost token x / page width
	CenterRatio      float64 // horizontal center / page width
	SpanRatio        float64 // horizontal span / page width
	RightmostIsMoney float64 // 0 or 1
	SizeMean         float64
	SizeStdDev       float64
}

// Names lists the feature ordering used to build numeric matrices. The order
// is part of the clustering contract and must not change between runs.
var Names = []string{
	"token_count", "char_count", "digit_count", "letter_count", "punct_count",
	"digit_ratio", "letter_ratio", "punct_ratio",
	"has_money", "money_count", "has_date", "date_count",
	"left_ratio", "center_ratio", "span_ratio",
	"rightmost_is_money", "size_mean", "size_stddev",
}

// Values returns the vector's fields in the Names ordering.
func (v Vector) Values() []float64 {
	return []float64{
		v.TokenCount, v.CharCount, v.DigitCount, v.LetterCount, v.PunctCount,
		v.DigitRatio, v.LetterRatio, v.PunctRatio,
		v.HasMoney, v.MoneyCount, v.HasDate, v.DateCount,
		v.LeftRatio, v.CenterRatio, v.SpanRatio,
		v.RightmostIsMoney, v.SizeMean, v.SizeStdDev,
	}
}

// Extract computes the feature vector for one line. pageWidth normalizes the
// horizontal features so scores are resolution-independent; a zero width
// leaves them at zero rather than dividing by it.
func Extract(line layout.Line, pageWidth float64) Vector {
	text := line.Text

	var digits, letters, puncts int
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		case !unicode.IsSpace(r):
			puncts++
		}
	}

	charCount := len(text)
	v := Vector{
		TokenCount:  float64(len(line.Tokens)),
		CharCount:   float64(charCount),
		DigitCount:  float64(digits),
		LetterCount: float64(letters),
		PunctCount:  float64(puncts),
		MoneyCount:  float64(CountMoneyShapes(text)),
		DateCount:   float64(CountDateShapes(text)),
	}
	if charCount > 0 {
		v.DigitRatio = float64(digits) / float64(charCount)
		v.LetterRatio = float64(letters) / float64(charCount)
		v.PunctRatio = float64(puncts) / float64(charCount)
	}
	if v.MoneyCount > 0 {
		v.HasMoney = 1
	}
	if v.DateCount > 0 {
		v.HasDate = 1
	}

	if len(line.Tokens) > 0 {
		left := line.Tokens[0].X0
		right := line.Tokens[0].X1
		rightmost := line.Tokens[0]
		var sizeSum float64
		for _, t := range line.Tokens {
			if t.X0 < left {
				left = t.X0
			}
			if t.X1 > right {
				right = t.X1
			}
			if t.X1 > rightmost.X1 {
				rightmost = t
			}
			sizeSum += t.Size
		}
		if pageWidth > 0 {
			v.LeftRatio = left / pageWidth
			v.CenterRatio = (left + right) / 2 / pageWidth
			v.SpanRatio = (right - left) / pageWidth
		}
		if IsMoneyShape(strings.TrimSpace(rightmost.Text)) {
			v.RightmostIsMoney = 1
		}

		mean := sizeSum / float64(len(line.Tokens))
		var variance float64
		for _, t := range line.Tokens {
			d := t.Size - mean
			variance += d * d
		}
		v.SizeMean = mean
		v.SizeStdDev = math.Sqrt(variance / float64(len(line.Tokens)))
	}

	return v
}
