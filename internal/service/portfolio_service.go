package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// PortfolioService values accounts. It loads the stored log, resolves quotes
// for the tickers it touches and hands both to the valuation engine. All
// monetary values it returns are rounded to two decimal places.
type PortfolioService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	marketService   *MarketService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	marketService *MarketService,
) *PortfolioService {
	return &PortfolioService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		marketService:   marketService,
	}
}

// GetPortfolioSummary values an account at the current quotes.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context, accountID string) (model.PortfolioSummary, error) {
	txs, quotes, err := s.load(ctx, accountID, false)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	snap, err := valuation.ValuePortfolio(txs, quotes)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}

	summary := model.PortfolioSummary{
		AccountID:                   accountID,
		Holdings:                    make([]model.HoldingResponse, 0, len(snap.Holdings)),
		TotalHoldingsValue:          format.Round(snap.TotalHoldingsValue),
		CashBalance:                 format.Round(snap.CashBalance),
		TotalInvestmentCost:         format.Round(snap.TotalInvestmentCost),
		TotalPortfolioValue:         format.Round(snap.TotalPortfolioValue),
		OverallProfitLoss:           format.Round(snap.OverallProfitLoss),
		OverallProfitLossPercentage: format.Round(snap.OverallProfitLossPercentage),
		Formatted: model.FormattedSummary{
			TotalPortfolioValue:         format.Currency(snap.TotalPortfolioValue),
			TotalHoldingsValue:          format.Currency(snap.TotalHoldingsValue),
			CashBalance:                 format.Currency(snap.CashBalance),
			OverallProfitLoss:           format.SignedCurrency(snap.OverallProfitLoss),
			OverallProfitLossPercentage: format.Percentage(snap.OverallProfitLossPercentage),
		},
	}
	for _, h := range snap.Holdings {
		summary.Holdings = append(summary.Holdings, holdingResponse(h))
	}
	return summary, nil
}

// GetHoldings returns the surfaced holdings of an account with their valuation.
func (s *PortfolioService) GetHoldings(ctx context.Context, accountID string) ([]model.HoldingResponse, error) {
	summary, err := s.GetPortfolioSummary(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return summary.Holdings, nil
}

// GetPortfolioHistory returns the value series of an account, one point per
// transaction date, priced at today's quotes.
func (s *PortfolioService) GetPortfolioHistory(ctx context.Context, accountID string) (model.PortfolioHistory, error) {
	txs, quotes, err := s.load(ctx, accountID, true)
	if err != nil {
		return model.PortfolioHistory{}, err
	}

	points, err := valuation.History(txs, quotes)
	if err != nil {
		return model.PortfolioHistory{}, fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}

	history := model.PortfolioHistory{
		AccountID: accountID,
		Points:    make([]model.HistoryPoint, 0, len(points)),
	}
	for _, p := range points {
		history.Points = append(history.Points, model.HistoryPoint{
			Date:                p.Date,
			CashBalance:         format.Round(p.CashBalance),
			TotalHoldingsValue:  format.Round(p.TotalHoldingsValue),
			TotalPortfolioValue: format.Round(p.TotalPortfolioValue),
		})
	}
	return history, nil
}

// load returns the account's log and the quotes for its tickers. Closed
// positions are only quoted when includeClosed is set.
func (s *PortfolioService) load(ctx context.Context, accountID string, includeClosed bool) ([]valuation.Transaction, valuation.Quotes, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, nil, err
	}

	txs, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	holdings, err := valuation.ComputeHoldings(txs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}

	tickers := make([]string, 0, len(holdings))
	for t, p := range holdings {
		if includeClosed || p.Quantity != 0 {
			tickers = append(tickers, t)
		}
	}
	sort.Strings(tickers)

	quotes, err := s.marketService.Quotes(ctx, tickers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve quotes: %w", err)
	}
	return txs, quotes, nil
}

func holdingResponse(h valuation.HoldingValuation) model.HoldingResponse {
	costBasis := h.Quantity * h.AvgCost
	pl := h.MarketValue - costBasis
	var plPct float64
	if costBasis > 0 {
		plPct = pl / costBasis * 100
	}
	return model.HoldingResponse{
		Ticker:               h.Ticker,
		Name:                 h.Name,
		Quantity:             format.RoundTo(h.Quantity, 8),
		AvgCost:              format.Round(h.AvgCost),
		CurrentPrice:         format.Round(h.ValuationPrice),
		MarketValue:          format.Round(h.MarketValue),
		CostBasis:            format.Round(costBasis),
		ProfitLoss:           format.Round(pl),
		ProfitLossPercentage: format.Round(plPct),
		DailyChangePercent:   format.Round(h.DailyChangePercent),
		Quoted:               h.Quoted,
		FormattedMarketValue: format.Currency(h.MarketValue),
	}
}
