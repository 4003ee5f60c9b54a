package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// auditTolerance is the largest difference between two figures an audit
// still treats as equal.
const auditTolerance = 1e-6

// TransactionService records transactions against an account's log.
//
// Appends to one account are serialised: the log is loaded, the candidate is
// validated against a replay of it and the record is stored while holding the
// account's lock. The service also keeps an incremental ledger per account
// that Audit compares against a fresh replay of the stored log.
type TransactionService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	marketService   *MarketService
	log             zerolog.Logger

	mu       sync.Mutex
	accounts map[string]*accountLog
}

type accountLog struct {
	mu     sync.Mutex
	ledger *valuation.Ledger
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	marketService *MarketService,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		marketService:   marketService,
		log:             log.With().Str("component", "transactions").Logger(),
		accounts:        make(map[string]*accountLog),
	}
}

// account returns the lock and ledger cache of an account, creating them on
// first use. Callers check that the account exists first.
func (s *TransactionService) account(accountID string) *accountLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		a = &accountLog{}
		s.accounts[accountID] = a
	}
	return a
}

// GetTransactions returns the log of an account in insertion order.
func (s *TransactionService) GetTransactions(ctx context.Context, accountID string) ([]valuation.Transaction, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactions(ctx, accountID)
}

// CreateTransaction validates req against the account's log and appends it.
// A buy or sell without a price executes at the current quote.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID string, req request.CreateTransactionRequest) (valuation.Transaction, error) {
	candidate, err := s.buildCandidate(ctx, req)
	if err != nil {
		return valuation.Transaction{}, err
	}

	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return valuation.Transaction{}, err
	}

	a := s.account(accountID)
	a.mu.Lock()
	defer a.mu.Unlock()

	log, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return valuation.Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	next, err := valuation.RecordTransaction(log, candidate)
	if err != nil {
		return valuation.Transaction{}, err
	}
	rec := next[len(next)-1]

	if err := s.transactionRepo.InsertTransaction(ctx, accountID, rec); err != nil {
		return valuation.Transaction{}, err
	}
	s.advance(a, accountID, len(log), rec, next)

	s.log.Info().
		Str("account", accountID).
		Int64("id", rec.ID).
		Str("type", string(rec.Kind())).
		Float64("amount", rec.Amount()).
		Msg("transaction recorded")

	return rec, nil
}

// Deposit records a deposit of req.Amount.
func (s *TransactionService) Deposit(ctx context.Context, accountID string, req request.CashRequest) (valuation.Transaction, error) {
	amount := req.Amount
	return s.CreateTransaction(ctx, accountID, request.CreateTransactionRequest{
		Type:   string(valuation.KindDeposit),
		Amount: &amount,
		Date:   req.Date,
	})
}

// Withdraw records a withdrawal of req.Amount.
func (s *TransactionService) Withdraw(ctx context.Context, accountID string, req request.CashRequest) (valuation.Transaction, error) {
	amount := req.Amount
	return s.CreateTransaction(ctx, accountID, request.CreateTransactionRequest{
		Type:   string(valuation.KindWithdrawal),
		Amount: &amount,
		Date:   req.Date,
	})
}

func (s *TransactionService) buildCandidate(ctx context.Context, req request.CreateTransactionRequest) (valuation.Transaction, error) {
	kind, err := valuation.ParseKind(req.Type)
	if err != nil {
		return valuation.Transaction{}, err
	}

	var date time.Time
	if strings.TrimSpace(req.Date) != "" {
		if date, err = valuation.ParseDate(req.Date); err != nil {
			return valuation.Transaction{}, &valuation.InvalidTransactionError{Field: "date", Reason: err.Error()}
		}
	}

	var amount, quantity, price float64
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if kind == valuation.KindBuy || kind == valuation.KindSell {
		if req.Price != nil {
			price = *req.Price
		} else {
			q, err := s.marketService.Quote(ctx, req.Ticker)
			if err != nil {
				return valuation.Transaction{}, err
			}
			price = q.CurrentPrice
		}
	}

	event, err := valuation.NewEvent(kind, amount, req.Ticker, quantity, price)
	if err != nil {
		return valuation.Transaction{}, err
	}
	return valuation.Transaction{Date: date, Event: event}, nil
}

// advance moves the cached ledger past rec. A cache that is missing or out of
// step with the stored log is rebuilt from next.
func (s *TransactionService) advance(a *accountLog, accountID string, priorLen int, rec valuation.Transaction, next []valuation.Transaction) {
	if a.ledger != nil && a.ledger.Len() == priorLen {
		err := a.ledger.Apply(rec)
		if err == nil {
			return
		}
		s.log.Warn().Err(err).Str("account", accountID).Msg("cached ledger rejected stored transaction, rebuilding")
	}
	l, err := valuation.Replay(next)
	if err != nil {
		s.log.Error().Err(err).Str("account", accountID).Msg("failed to rebuild ledger")
		a.ledger = nil
		return
	}
	a.ledger = l
}

// Audit replays the stored log of an account and compares it against the
// cached incremental ledger. A mismatch is reported and the cache replaced
// by the replay. A stored log that cannot be replayed returns
// apperrors.ErrDataInconsistency.
func (s *TransactionService) Audit(ctx context.Context, accountID string) (model.AuditResult, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return model.AuditResult{}, err
	}

	a := s.account(accountID)
	a.mu.Lock()
	defer a.mu.Unlock()

	log, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return model.AuditResult{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	replayed, err := valuation.Replay(log)
	if err != nil {
		return model.AuditResult{}, fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}

	result := model.AuditResult{
		AccountID:  accountID,
		Consistent: true,
		Replay:     auditFigures(replayed),
	}

	if a.ledger == nil {
		a.ledger = replayed
		result.Ledger = result.Replay
		return result, nil
	}

	result.Cached = true
	result.Ledger = auditFigures(a.ledger)
	result.Mismatches = compareLedgers(a.ledger, replayed)
	if len(result.Mismatches) > 0 {
		result.Consistent = false
		s.log.Warn().
			Str("account", accountID).
			Strs("mismatches", result.Mismatches).
			Msg("cached ledger disagrees with stored log")
		a.ledger = replayed
	}
	return result, nil
}

func auditFigures(l *valuation.Ledger) model.AuditFigures {
	return model.AuditFigures{
		TransactionCount:    l.Len(),
		LastTransactionID:   l.LastID(),
		CashBalance:         format.Round(l.CashBalance()),
		TotalInvestmentCost: format.Round(l.InvestmentCost()),
		OpenPositions:       len(l.Tickers()),
	}
}

func compareLedgers(cached, replayed *valuation.Ledger) []string {
	var out []string
	if cached.Len() != replayed.Len() {
		out = append(out, fmt.Sprintf("transaction count %d != %d", cached.Len(), replayed.Len()))
	}
	if cached.LastID() != replayed.LastID() {
		out = append(out, fmt.Sprintf("last transaction id %d != %d", cached.LastID(), replayed.LastID()))
	}
	if !approxEqual(cached.CashBalance(), replayed.CashBalance()) {
		out = append(out, fmt.Sprintf("cash balance %.2f != %.2f", cached.CashBalance(), replayed.CashBalance()))
	}
	if !approxEqual(cached.InvestmentCost(), replayed.InvestmentCost()) {
		out = append(out, fmt.Sprintf("investment cost %.2f != %.2f", cached.InvestmentCost(), replayed.InvestmentCost()))
	}

	want := replayed.Holdings()
	got := cached.Holdings()
	for ticker, w := range want {
		g := got[ticker]
		if !approxEqual(g.Quantity, w.Quantity) || !approxEqual(g.AvgCost, w.AvgCost) {
			out = append(out, fmt.Sprintf("position %s %g@%.4f != %g@%.4f", ticker, g.Quantity, g.AvgCost, w.Quantity, w.AvgCost))
		}
	}
	for ticker, g := range got {
		if _, ok := want[ticker]; !ok && g.Quantity != 0 {
			out = append(out, fmt.Sprintf("position %s %g is not in the stored log", ticker, g.Quantity))
		}
	}
	sort.Strings(out)
	return out
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= auditTolerance
}
