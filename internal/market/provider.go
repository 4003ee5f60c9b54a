// Package market supplies current quotes for tickers from a pluggable source.
package market

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// Provider fetches the current quote for a single ticker.
// Implementations return an error wrapping apperrors.ErrQuoteNotFound for
// tickers they do not know.
type Provider interface {
	Name() string
	Quote(ctx context.Context, ticker string) (valuation.Quote, error)
}

// NewProvider returns the provider configured by source ("mock" or "yahoo").
func NewProvider(source string) (Provider, error) {
	switch source {
	case "mock":
		return NewMockProvider(), nil
	case "yahoo":
		return NewYahooProvider(nil), nil
	}
	return nil, fmt.Errorf("unknown quote source %q", source)
}

// MockProvider serves a fixed quote table.
type MockProvider struct {
	quotes valuation.Quotes
}

// NewMockProvider returns a provider with the dashboard's demo tickers.
func NewMockProvider() *MockProvider {
	return &MockProvider{quotes: valuation.Quotes{
		"AAPL":  {CurrentPrice: 175.20, DailyChangePercent: 2.5, DisplayName: "Apple Inc."},
		"MSFT":  {CurrentPrice: 305.50, DailyChangePercent: -1.8, DisplayName: "Microsoft Corp."},
		"GOOGL": {CurrentPrice: 1210.00, DailyChangePercent: 0.8, DisplayName: "Alphabet Inc. (Class A)"},
		"AMZN":  {CurrentPrice: 102.30, DailyChangePercent: 3.1, DisplayName: "Amazon.com Inc."},
		"TSLA":  {CurrentPrice: 750.00, DailyChangePercent: -4.5, DisplayName: "Tesla Inc."},
		"NVDA":  {CurrentPrice: 550.00, DailyChangePercent: 5.2, DisplayName: "NVIDIA Corp."},
	}}
}

// NewMockProviderWith returns a provider serving quotes.
func NewMockProviderWith(quotes valuation.Quotes) *MockProvider {
	return &MockProvider{quotes: quotes}
}

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) Quote(ctx context.Context, ticker string) (valuation.Quote, error) {
	if err := ctx.Err(); err != nil {
		return valuation.Quote{}, err
	}
	q, ok := p.quotes[valuation.NormalizeTicker(ticker)]
	if !ok {
		return valuation.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, ticker)
	}
	return q, nil
}

// Tickers lists the tickers the mock knows.
func (p *MockProvider) Tickers() []string {
	out := make([]string, 0, len(p.quotes))
	for t := range p.quotes {
		out = append(out, t)
	}
	return out
}
