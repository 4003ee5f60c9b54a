package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func TestMarketHandler_Quotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewMarketHandler(testutil.NewTestMarketService(t, db, nil))

	t.Run("returns known tickers in request order", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Quotes(w, testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market", map[string]string{"tickers": "msft, aapl,ZZZZ,msft"}))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var quotes []model.QuoteResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&quotes)

		if len(quotes) != 2 || quotes[0].Ticker != "MSFT" || quotes[1].Ticker != "AAPL" {
			t.Fatalf("Expected MSFT then AAPL, got %+v", quotes)
		}
		if quotes[1].FormattedPrice != "$175.20" || quotes[1].FormattedChange != "+2.50%" {
			t.Errorf("Unexpected formatting %+v", quotes[1])
		}
		if quotes[0].Source != "mock" {
			t.Errorf("Expected source mock, got %s", quotes[0].Source)
		}
	})

	t.Run("missing tickers returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Quotes(w, httptest.NewRequest(http.MethodGet, "/api/market", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("malformed ticker returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Quotes(w, testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market", map[string]string{"tickers": "AAPL;DROP"}))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestMarketHandler_Refresh(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateDashboardAccount(t, db)
	testutil.NewTransactions(account.ID).Buy("TSLA", 1, 700, "2023-01-04").Build(t, db)

	provider := testutil.NewMockQuoteProvider().WithError("TSLA", errors.New("rate limited"))
	h := NewMarketHandler(testutil.NewTestMarketService(t, db, provider))

	w := httptest.NewRecorder()
	h.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/market/refresh", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result model.RefreshResult
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&result)

	if result.Requested != 3 || result.Refreshed != 2 {
		t.Errorf("Expected 2 of 3 refreshed, got %+v", result)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "TSLA" {
		t.Errorf("Expected TSLA to fail, got %v", result.Failed)
	}
}
