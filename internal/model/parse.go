package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried in order when parsing extracted date strings.
// Year-less formats come last so fully qualified dates win.
var dateFormats = []string{
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"01/02",
	"01-02",
	"Jan 2",
}

// ParseAmount converts a money-shaped string into a decimal value. Currency
// symbols, thousands separators and surrounding whitespace are stripped;
// amounts wrapped in parentheses are negative. Returns ok=false when the
// remainder is not a valid decimal.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\t", "").Replace(strings.TrimSpace(s))
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDate parses a date string against the known statement formats. When
// the format carries no year (e.g. "06/01") and yearHint is non-zero, the
// hint fills it in; with no hint the parsed date keeps Go's zero year so
// callers can tell the year is unknown.
func ParseDate(s string, yearHint int) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		parsed, err := time.Parse(format, trimmed)
		if err != nil {
			continue
		}
		if parsed.Year() == 0 && yearHint > 0 {
			parsed = time.Date(yearHint, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return parsed, true
	}
	return time.Time{}, false
}
