// Package template synthesizes a structural extraction pattern from the
// shape statistics of a page's winning line cluster. The pattern carries no
// vendor vocabulary; it generalizes across institutions whose transaction
// rows share the same columnar shape.
package template

import (
	"fmt"
	"regexp"

	"github.com/rbrtjns90/statement-organizer/internal/feature"
)

// DateArity describes how the synthesized pattern treats the leading date
// columns.
type DateArity int

// Date arities, from absent to two mandatory date columns.
const (
	DateNone DateArity = iota
	DateOptionalSingle
	DateRequiredSingle
	DateOptionalDouble
	DateRequiredDouble
)

func (a DateArity) String() string {
	switch a {
	case DateNone:
		return "none"
	case DateOptionalSingle:
		return "optional-single"
	case DateRequiredSingle:
		return "required-single"
	case DateOptionalDouble:
		return "optional-double"
	case DateRequiredDouble:
		return "required-double"
	}
	return "unknown"
}

// MoneyArity describes the trailing money columns.
type MoneyArity int

// Money arities: amount only, or amount followed by a running balance.
const (
	MoneyAmountOnly MoneyArity = iota
	MoneyAmountBalance
)

func (a MoneyArity) String() string {
	if a == MoneyAmountBalance {
		return "amount+balance"
	}
	return "amount"
}

// Template is the tagged structure a pattern is generated from. Keeping the
// arity explicit makes "what is being matched" testable independent of the
// regexp engine.
type Template struct {
	Dates DateArity
	Money MoneyArity
}

// Build renders the template as an anchored regular expression:
// optional/required date column(s), a non-greedy description capture, an
// amount capture, and optionally a balance capture.
func (t Template) Build() (*regexp.Regexp, error) {
	var datePart string
	switch t.Dates {
	case DateRequiredSingle:
		datePart = feature.DatePattern + `\s+`
	case DateOptionalSingle:
		datePart = `(?:` + feature.DatePattern + `\s+)?`
	case DateRequiredDouble:
		datePart = feature.DatePattern + `\s+` + feature.DatePattern + `\s+`
	case DateOptionalDouble:
		datePart = `(?:` + feature.DatePattern + `\s+` + feature.DatePattern + `\s+)?`
	case DateNone:
		datePart = ""
	}

	var pattern string
	if t.Money == MoneyAmountBalance {
		pattern = `^\s*` + datePart + `(.+?)\s+(` + feature.MoneyPattern + `)\s+(` + feature.MoneyPattern + `)\s*$`
	} else {
		pattern = `^\s*` + datePart + `(.+?)\s+(` + feature.MoneyPattern + `)\s*$`
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile synthesized template %s/%s: %w", t.Dates, t.Money, err)
	}
	return re, nil
}
