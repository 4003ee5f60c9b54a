package market

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// YahooClient is the subset of yahoo.FinanceClient the provider needs.
type YahooClient interface {
	QueryFiveDay(ctx context.Context, symbol string) (yahoo.Response, error)
	ParseLatest(resp yahoo.Response) (yahoo.LatestQuote, error)
}

// YahooProvider quotes tickers from Yahoo Finance daily closes.
type YahooProvider struct {
	client YahooClient
}

// NewYahooProvider wraps client. A nil client uses the public endpoint.
func NewYahooProvider(client YahooClient) *YahooProvider {
	if client == nil {
		client = yahoo.NewFinanceClient()
	}
	return &YahooProvider{client: client}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) Quote(ctx context.Context, ticker string) (valuation.Quote, error) {
	ticker = valuation.NormalizeTicker(ticker)
	resp, err := p.client.QueryFiveDay(ctx, ticker)
	if err != nil {
		return valuation.Quote{}, fmt.Errorf("%w: %s: %w", apperrors.ErrQuoteNotFound, ticker, err)
	}
	latest, err := p.client.ParseLatest(resp)
	if err != nil {
		return valuation.Quote{}, fmt.Errorf("%w: %s: %w", apperrors.ErrQuoteNotFound, ticker, err)
	}
	name := latest.Name
	if name == "" {
		name = ticker
	}
	return valuation.Quote{
		CurrentPrice:       latest.Price,
		DailyChangePercent: latest.DailyChangePercent,
		DisplayName:        name,
	}, nil
}
