// Package model defines the data types shared between the extraction engine
// and its consumers.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial transaction recovered from a
// statement. Records are never mutated after creation.
type Transaction struct {
	Date        time.Time        // zero value when the date could not be parsed
	DateText    string           // raw date string as it appeared on the line
	Description string           // merchant / memo text between date and amount columns
	Type        string           // e.g. debit, credit; empty when unknown
	Raw         string           // full source line text (provenance)
	Hash        string
	Amount      decimal.Decimal  // mandatory; records without an amount are never emitted
	Balance     *decimal.Decimal // trailing running balance, when the layout carries one
	Page        int              // 1-based page number (provenance)
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%d:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Description,
		t.Page,
		t.Raw)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
