package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

const dashboardLog = `[
  {"id": 1, "type": "deposit", "amount": 10000, "ticker": null, "date": "2023-01-01"},
  {"id": 2, "type": "buy", "amount": -1500, "ticker": "AAPL", "quantity": 10, "price": 150, "date": "2023-01-02"},
  {"id": 3, "type": "buy", "amount": -1400, "ticker": "MSFT", "quantity": 5, "price": 280, "date": "2023-01-03"}
]`

const dashboardQuotes = `{
  "AAPL": {"currentPrice": 175.20, "dailyChange": 2.5, "name": "Apple Inc."},
  "msft": {"currentPrice": 305.50, "dailyChange": -1.8}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestValueCmd(t *testing.T) {
	dir := t.TempDir()
	cmd := &valueCmd{
		log:    writeFile(t, dir, "log.json", dashboardLog),
		quotes: writeFile(t, dir, "quotes.json", dashboardQuotes),
	}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out))
	assert.Contains(t, out.String(), "$10,379.50")
	assert.Contains(t, out.String(), "+$379.50 (+13.09%)")

	t.Run("json output", func(t *testing.T) {
		cmd.json = true
		out.Reset()
		require.NoError(t, cmd.run(&out))
		assert.Contains(t, out.String(), `"totalPortfolioValue": 10379.5`)
	})

	t.Run("without quotes values at cost", func(t *testing.T) {
		cmd := &valueCmd{log: cmd.log}
		var out bytes.Buffer
		require.NoError(t, cmd.run(&out))
		assert.Contains(t, out.String(), "$10,000.00")
	})
}

func TestHoldingsCmd(t *testing.T) {
	dir := t.TempDir()
	cmd := &holdingsCmd{log: writeFile(t, dir, "log.json", dashboardLog)}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "AAPL"))
	assert.True(t, strings.HasPrefix(lines[2], "MSFT"))
	// Unquoted positions are marked.
	assert.Contains(t, lines[1], "$150.00*")
}

func TestHistoryCmd(t *testing.T) {
	dir := t.TempDir()
	cmd := &historyCmd{
		log:    writeFile(t, dir, "log.json", dashboardLog),
		quotes: writeFile(t, dir, "quotes.json", dashboardQuotes),
	}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], "2023-01-03")
	assert.Contains(t, lines[3], "$10,379.50")
}

func TestRecordCmd(t *testing.T) {
	t.Run("appends to a new log", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "log.json")

		dep := &recordCmd{log: logPath, kind: "deposit", amount: 500, date: "2023-01-01"}
		require.NoError(t, dep.run(&bytes.Buffer{}))

		buy := &recordCmd{log: logPath, kind: "buy", ticker: "nvda", quantity: 2, price: 200, date: "2023-01-02"}
		var out bytes.Buffer
		require.NoError(t, buy.run(&out))
		assert.Contains(t, out.String(), `"id": 2`)
		assert.Contains(t, out.String(), `"ticker": "NVDA"`)

		log, err := readLog(logPath)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.InDelta(t, -400, log[1].Amount(), 1e-9)
	})

	t.Run("rejected candidates leave the file untouched", func(t *testing.T) {
		logPath := writeFile(t, t.TempDir(), "log.json", dashboardLog)
		before, err := os.ReadFile(logPath)
		require.NoError(t, err)

		cases := []struct {
			name string
			cmd  *recordCmd
			want error
		}{
			{"oversell", &recordCmd{kind: "sell", ticker: "AAPL", quantity: 11, price: 1, date: "2023-01-04"}, apperrors.ErrInsufficientQuantity},
			{"overdraft", &recordCmd{kind: "withdrawal", amount: 7100.01, date: "2023-01-04"}, apperrors.ErrInsufficientFunds},
			{"backdated", &recordCmd{kind: "deposit", amount: 1, date: "2022-12-31"}, apperrors.ErrInvalidTransaction},
			{"unknown type", &recordCmd{kind: "dividend", amount: 1}, apperrors.ErrInvalidTransaction},
			{"missing quantity", &recordCmd{kind: "buy", ticker: "AAPL", price: 1}, apperrors.ErrInvalidTransaction},
			{"NaN price", &recordCmd{kind: "buy", ticker: "AAPL", quantity: 1, price: math.NaN(), date: "2023-01-04"}, apperrors.ErrInvalidTransaction},
			{"infinite deposit", &recordCmd{kind: "deposit", amount: math.Inf(1), date: "2023-01-04"}, apperrors.ErrInvalidTransaction},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				tc.cmd.log = logPath
				assert.ErrorIs(t, tc.cmd.run(&bytes.Buffer{}), tc.want)
			})
		}

		after, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestReadLog_Corrupt(t *testing.T) {
	p := writeFile(t, t.TempDir(), "log.json", `[{"id":1,"type":"buy","ticker":"AAPL","price":1,"date":"2023-01-01"}]`)
	_, err := readLog(p)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransaction)
}
