package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// MockQuoteProvider is a market.Provider serving configurable quotes.
// It is safe for concurrent use and records every lookup.
type MockQuoteProvider struct {
	mu     sync.Mutex
	quotes valuation.Quotes
	errs   map[string]error
	calls  map[string]int
}

// NewMockQuoteProvider creates a provider with the demo tickers:
// AAPL 175.20 and MSFT 305.50.
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		quotes: valuation.Quotes{
			"AAPL": {CurrentPrice: 175.20, DailyChangePercent: 2.5, DisplayName: "Apple Inc."},
			"MSFT": {CurrentPrice: 305.50, DailyChangePercent: -1.8, DisplayName: "Microsoft Corp."},
		},
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// WithQuote sets the quote served for ticker.
func (m *MockQuoteProvider) WithQuote(ticker string, q valuation.Quote) *MockQuoteProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[ticker] = q
	return m
}

// WithError makes lookups of ticker fail with err.
func (m *MockQuoteProvider) WithError(ticker string, err error) *MockQuoteProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[ticker] = err
	return m
}

func (m *MockQuoteProvider) Name() string { return "mock" }

func (m *MockQuoteProvider) Quote(ctx context.Context, ticker string) (valuation.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[ticker]++
	if err := ctx.Err(); err != nil {
		return valuation.Quote{}, err
	}
	if err, ok := m.errs[ticker]; ok {
		return valuation.Quote{}, err
	}
	q, ok := m.quotes[ticker]
	if !ok {
		return valuation.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, ticker)
	}
	return q, nil
}

// Calls returns how often ticker was looked up.
func (m *MockQuoteProvider) Calls(ticker string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[ticker]
}
