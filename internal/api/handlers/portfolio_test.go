package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func TestPortfolioHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateDashboardAccount(t, db)
	h := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))
	params := map[string]string{"uuid": account.ID}

	t.Run("summary values the dashboard log", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Summary(w, testutil.NewRequestWithURLParams(http.MethodGet, "/summary", params))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var s model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&s)

		if s.TotalHoldingsValue != 3279.5 {
			t.Errorf("Expected holdings value 3279.5, got %v", s.TotalHoldingsValue)
		}
		if s.TotalPortfolioValue != 10379.5 {
			t.Errorf("Expected portfolio value 10379.5, got %v", s.TotalPortfolioValue)
		}
		if s.OverallProfitLoss != 379.5 {
			t.Errorf("Expected P&L 379.5, got %v", s.OverallProfitLoss)
		}
		if s.OverallProfitLossPercentage != 13.09 {
			t.Errorf("Expected P&L 13.09%%, got %v", s.OverallProfitLossPercentage)
		}
		if s.Formatted.TotalPortfolioValue != "$10,379.50" || s.Formatted.OverallProfitLoss != "+$379.50" {
			t.Errorf("Unexpected formatted figures %+v", s.Formatted)
		}
	})

	t.Run("holdings are ordered by first purchase", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Holdings(w, testutil.NewRequestWithURLParams(http.MethodGet, "/holdings", params))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var holdings []model.HoldingResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&holdings)

		if len(holdings) != 2 || holdings[0].Ticker != "AAPL" || holdings[1].Ticker != "MSFT" {
			t.Fatalf("Expected AAPL then MSFT, got %+v", holdings)
		}
		if holdings[0].MarketValue != 1752 || holdings[0].ProfitLoss != 252 || !holdings[0].Quoted {
			t.Errorf("Unexpected AAPL valuation %+v", holdings[0])
		}
	})

	t.Run("history has one point per date", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.History(w, testutil.NewRequestWithURLParams(http.MethodGet, "/history", params))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var history model.PortfolioHistory
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&history)

		if len(history.Points) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(history.Points))
		}
		last := history.Points[2]
		if last.Date != "2023-01-03" || last.TotalPortfolioValue != 10379.5 || last.CashBalance != 7100 {
			t.Errorf("Unexpected last point %+v", last)
		}
	})

	t.Run("unknown account returns 404", func(t *testing.T) {
		id := testutil.MakeID()
		w := httptest.NewRecorder()
		h.Summary(w, testutil.NewRequestWithURLParams(http.MethodGet, "/summary", map[string]string{"uuid": id}))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_CorruptLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Build(t, db)
	testutil.NewTransactions(account.ID).
		Deposit(100, "2023-01-01").
		Sell("AAPL", 1, 10, "2023-01-02").
		Build(t, db)
	h := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

	w := httptest.NewRecorder()
	h.Summary(w, testutil.NewRequestWithURLParams(http.MethodGet, "/summary", map[string]string{"uuid": account.ID}))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for an oversold stored log, got %d: %s", w.Code, w.Body.String())
	}
}
