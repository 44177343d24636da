package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbrtjns90/statement-organizer/internal/model"
)

func TestWriteCSV(t *testing.T) {
	balance := decimal.RequireFromString("995.50")
	txns := []model.Transaction{
		{
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Description: "COFFEE SHOP",
			Amount:      decimal.RequireFromString("4.50"),
			Balance:     &balance,
			Raw:         "06/01 COFFEE SHOP 4.50 995.50",
			Page:        1,
		},
		{
			DateText:    "06/02",
			Description: "GROCERY STORE",
			Amount:      decimal.RequireFromString("82.17"),
			Raw:         "06/02 GROCERY STORE 82.17",
			Page:        1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txns))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "page,date,description,amount,balance,raw", lines[0])
	assert.Equal(t, "1,2024-06-01,COFFEE SHOP,4.50,995.50,06/01 COFFEE SHOP 4.50 995.50", lines[1])
	// A record whose year was never resolved falls back to the raw date text.
	assert.Equal(t, "1,06/02,GROCERY STORE,82.17,,06/02 GROCERY STORE 82.17", lines[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "page,date,description,amount,balance,raw",
		strings.TrimSpace(buf.String()))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	txns := []model.Transaction{
		{
			Description: "GAS STATION",
			Amount:      decimal.RequireFromString("35.00"),
			Raw:         "06/03 GAS STATION 35.00",
			Page:        2,
		},
	}

	require.NoError(t, WriteCSVFile(path, txns))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GAS STATION")
	assert.Contains(t, string(data), "35.00")
}
