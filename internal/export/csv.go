// Package export writes extraction results in formats downstream tools
// consume.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// csvRow is the stable CSV column layout: page, date, description, amount,
// balance, raw source text.
type csvRow struct {
	Page        int    `csv:"page"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Balance     string `csv:"balance"`
	Raw         string `csv:"raw"`
}

// WriteCSV writes the transactions to w as CSV with a header row.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	rows := make([]csvRow, len(txns))
	for i, t := range txns {
		row := csvRow{
			Page:        t.Page,
			Description: t.Description,
			Amount:      t.Amount.StringFixed(2),
			Raw:         t.Raw,
		}
		switch {
		case !t.Date.IsZero():
			row.Date = t.Date.Format("2006-01-02")
		default:
			row.Date = t.DateText
		}
		if t.Balance != nil {
			row.Balance = t.Balance.StringFixed(2)
		}
		rows[i] = row
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the transactions to the named file, truncating it if
// it exists.
func WriteCSVFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return WriteCSV(f, txns)
}
