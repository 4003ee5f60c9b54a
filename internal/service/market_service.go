package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// MarketService resolves quote snapshots. Quotes are served from the quote
// table; tickers without a cached row are fetched from the provider and
// stored. Refresh forces a fetch.
type MarketService struct {
	provider        market.Provider
	quoteRepo       *repository.QuoteRepository
	transactionRepo *repository.TransactionRepository
	concurrency     int
	log             zerolog.Logger
}

// NewMarketService creates a new MarketService. concurrency bounds the number
// of provider requests in flight.
func NewMarketService(
	provider market.Provider,
	quoteRepo *repository.QuoteRepository,
	transactionRepo *repository.TransactionRepository,
	concurrency int,
	log zerolog.Logger,
) *MarketService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &MarketService{
		provider:        provider,
		quoteRepo:       quoteRepo,
		transactionRepo: transactionRepo,
		concurrency:     concurrency,
		log:             log.With().Str("component", "market").Logger(),
	}
}

// Quotes returns the quote snapshot for tickers. Tickers the provider cannot
// price are absent from the result; valuation falls back to average cost
// for them.
func (s *MarketService) Quotes(ctx context.Context, tickers []string) (valuation.Quotes, error) {
	cached, err := s.ensure(ctx, tickers)
	if err != nil {
		return nil, err
	}
	quotes := make(valuation.Quotes, len(cached))
	for t, q := range cached {
		quotes[t] = valuation.Quote{
			CurrentPrice:       q.CurrentPrice,
			DailyChangePercent: q.DailyChange,
			DisplayName:        q.Name,
		}
	}
	return quotes, nil
}

// Quote returns the quote for a single ticker or apperrors.ErrQuoteNotFound.
func (s *MarketService) Quote(ctx context.Context, ticker string) (valuation.Quote, error) {
	ticker = valuation.NormalizeTicker(ticker)
	quotes, err := s.Quotes(ctx, []string{ticker})
	if err != nil {
		return valuation.Quote{}, err
	}
	q, ok := quotes[ticker]
	if !ok {
		return valuation.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, ticker)
	}
	return q, nil
}

// GetQuotes returns quotes for tickers in request order, for the market endpoint.
func (s *MarketService) GetQuotes(ctx context.Context, tickers []string) ([]model.QuoteResponse, error) {
	cached, err := s.ensure(ctx, tickers)
	if err != nil {
		return nil, err
	}
	out := []model.QuoteResponse{}
	for _, t := range normalize(tickers) {
		q, ok := cached[t]
		if !ok {
			continue
		}
		out = append(out, model.QuoteResponse{
			Ticker:             q.Ticker,
			Name:               q.Name,
			CurrentPrice:       q.CurrentPrice,
			DailyChangePercent: q.DailyChange,
			FormattedPrice:     format.Currency(q.CurrentPrice),
			FormattedChange:    format.SignedPercentage(q.DailyChange),
			Source:             q.Source,
			FetchedAt:          q.FetchedAt,
		})
	}
	return out, nil
}

// Refresh fetches tickers from the provider and overwrites their cached rows.
func (s *MarketService) Refresh(ctx context.Context, tickers []string) (model.RefreshResult, error) {
	tickers = normalize(tickers)
	fetched, failed := s.fetch(ctx, tickers)
	if err := ctx.Err(); err != nil {
		return model.RefreshResult{}, err
	}
	for _, q := range fetched {
		if err := s.quoteRepo.UpsertQuote(ctx, q); err != nil {
			return model.RefreshResult{}, err
		}
	}
	s.log.Info().
		Int("requested", len(tickers)).
		Int("refreshed", len(fetched)).
		Strs("failed", failed).
		Msg("quotes refreshed")
	return model.RefreshResult{
		Requested: len(tickers),
		Refreshed: len(fetched),
		Failed:    failed,
	}, nil
}

// RefreshTraded refreshes every ticker that appears in any account's log.
func (s *MarketService) RefreshTraded(ctx context.Context) (model.RefreshResult, error) {
	tickers, err := s.transactionRepo.GetTradedTickers(ctx)
	if err != nil {
		return model.RefreshResult{}, err
	}
	return s.Refresh(ctx, tickers)
}

func (s *MarketService) ensure(ctx context.Context, tickers []string) (map[string]model.CachedQuote, error) {
	tickers = normalize(tickers)
	cached, err := s.quoteRepo.GetQuotes(ctx, tickers)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, t := range tickers {
		if _, ok := cached[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return cached, nil
	}

	fetched, _ := s.fetch(ctx, missing)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, q := range fetched {
		if err := s.quoteRepo.UpsertQuote(ctx, q); err != nil {
			return nil, err
		}
		cached[q.Ticker] = q
	}
	return cached, nil
}

// fetch queries the provider for tickers in parallel. Failures are logged and
// reported by ticker; they never abort the other requests.
func (s *MarketService) fetch(ctx context.Context, tickers []string) ([]model.CachedQuote, []string) {
	results := make([]*model.CachedQuote, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ticker := range tickers {
		g.Go(func() error {
			q, err := s.provider.Quote(gctx, ticker)
			if err != nil {
				s.log.Warn().Err(err).Str("ticker", ticker).Str("provider", s.provider.Name()).Msg("quote fetch failed")
				return nil
			}
			name := q.DisplayName
			if name == "" {
				name = ticker
			}
			results[i] = &model.CachedQuote{
				Ticker:       ticker,
				Name:         name,
				CurrentPrice: q.CurrentPrice,
				DailyChange:  q.DailyChangePercent,
				Source:       s.provider.Name(),
				FetchedAt:    time.Now().UTC(),
			}
			return nil
		})
	}
	_ = g.Wait()

	var fetched []model.CachedQuote
	failed := []string{}
	for i, r := range results {
		if r == nil {
			failed = append(failed, tickers[i])
			continue
		}
		fetched = append(fetched, *r)
	}
	return fetched, failed
}

func normalize(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = valuation.NormalizeTicker(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
