// Package feature computes structural, content-free feature vectors for
// reconstructed lines. All detectors match shape, never vendor vocabulary.
package feature

import "regexp"

// MoneyPattern matches values with the visual form of a monetary amount:
// an optional sign, an optional currency symbol, thousands separators, and
// exactly two decimal digits. e.g. "1,234.56", "-12.00", "$8.90".
const MoneyPattern = `[+\-]?\$?\d{1,3}(?:,\d{3})*\.\d{2}`

// monthName matches an abbreviated or full month name. Month vocabulary is
// locale structure, not vendor vocabulary; leaving the alphabetic shapes
// fully generic would count fragments like "SHOP 4" as dates.
const monthName = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`

// DatePattern matches the calendar-date shapes seen across statement
// layouts: 01/31[/2025], 2025-01-31, 31 Jan 2025, Jan 31[,] 2025, Jan 31.
const DatePattern = `(?i)(?:` +
	`\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?` +
	`|\d{4}[/-]\d{1,2}[/-]\d{1,2}` +
	`|\d{1,2}\s+` + monthName + `\s+\d{2,4}` +
	`|` + monthName + `\s+\d{1,2},?\s+\d{2,4}` +
	`|` + monthName + `\s+\d{1,2}` +
	`)`

var (
	moneyRe = regexp.MustCompile(MoneyPattern)
	dateRe  = regexp.MustCompile(DatePattern)

	// moneyExactRe decides whether an entire token is money-shaped.
	moneyExactRe = regexp.MustCompile(`^` + MoneyPattern + `$`)
)

// MoneyShapes returns all non-overlapping money-shaped substrings of text.
func MoneyShapes(text string) []string {
	return moneyRe.FindAllString(text, -1)
}

// CountMoneyShapes returns the number of non-overlapping money shapes in text.
func CountMoneyShapes(text string) int {
	return len(moneyRe.FindAllStringIndex(text, -1))
}

// HasMoneyShape reports whether text contains at least one money shape.
func HasMoneyShape(text string) bool {
	return moneyRe.MatchString(text)
}

// IsMoneyShape reports whether the entire string is a single money shape.
func IsMoneyShape(text string) bool {
	return moneyExactRe.MatchString(text)
}

// DateShapes returns all non-overlapping date-shaped substrings of text.
func DateShapes(text string) []string {
	return dateRe.FindAllString(text, -1)
}

// CountDateShapes returns the number of non-overlapping date shapes in text.
func CountDateShapes(text string) int {
	return len(dateRe.FindAllStringIndex(text, -1))
}

// DateShapeSpans returns the [start, end) byte offsets of every
// non-overlapping date shape in text.
func DateShapeSpans(text string) [][]int {
	return dateRe.FindAllStringIndex(text, -1)
}

// HasDateShape reports whether text contains at least one date shape.
func HasDateShape(text string) bool {
	return dateRe.MatchString(text)
}

// FirstDateShape returns the first date-shaped substring of text, or "".
func FirstDateShape(text string) string {
	return dateRe.FindString(text)
}
