package testutil

import (
	"database/sql"
	"io"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// Services bundles every service wired against one test database.
type Services struct {
	Account     *service.AccountService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Market      *service.MarketService
	System      *service.SystemService
}

// NewTestServices wires all services against db and provider. A nil provider
// uses a MockQuoteProvider with the demo tickers.
func NewTestServices(t *testing.T, db *sql.DB, provider market.Provider) Services {
	t.Helper()

	if provider == nil {
		provider = NewMockQuoteProvider()
	}

	log := NopLogger()
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	marketService := service.NewMarketService(provider, quoteRepo, transactionRepo, 4, log)
	return Services{
		Account:     service.NewAccountService(accountRepo, transactionRepo),
		Transaction: service.NewTransactionService(accountRepo, transactionRepo, marketService, log),
		Portfolio:   service.NewPortfolioService(accountRepo, transactionRepo, marketService),
		Market:      marketService,
		System:      service.NewSystemService(db, provider.Name()),
	}
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()
	return NewTestServices(t, db, nil).Account
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return NewTestServices(t, db, nil).Transaction
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return NewTestServices(t, db, nil).Portfolio
}

func NewTestMarketService(t *testing.T, db *sql.DB, provider market.Provider) *service.MarketService {
	t.Helper()
	return NewTestServices(t, db, provider).Market
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, "mock")
}

// NopLogger returns a logger that discards everything.
func NopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Brokerage")
//	// Returns: "Brokerage ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Float returns a pointer to v, for optional request fields.
func Float(v float64) *float64 {
	return &v
}
