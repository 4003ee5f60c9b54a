package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Brokerage").
//	    Build(t, db)
type AccountBuilder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:        MakeID(),
		Name:      MakeAccountName("Test Account"),
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithCreatedAt sets a custom creation time.
func (b *AccountBuilder) WithCreatedAt(t time.Time) *AccountBuilder {
	b.CreatedAt = t
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	a := model.Account{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
	if err := repository.NewAccountRepository(db).InsertAccount(context.Background(), a); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return a
}

// TransactionBuilder appends entries to an account's stored log without
// going through the engine checks, so tests can also seed logs the engine
// would reject.
//
// Example usage:
//
//	testutil.NewTransactions(account.ID).
//	    Deposit(10000, "2023-01-01").
//	    Buy("AAPL", 10, 150, "2023-01-02").
//	    Build(t, db)
type TransactionBuilder struct {
	accountID string
	entries   []entry
}

type entry struct {
	event valuation.Event
	date  string
}

// NewTransactions creates a TransactionBuilder for accountID.
func NewTransactions(accountID string) *TransactionBuilder {
	return &TransactionBuilder{accountID: accountID}
}

// Deposit appends a deposit.
func (b *TransactionBuilder) Deposit(amount float64, date string) *TransactionBuilder {
	b.entries = append(b.entries, entry{valuation.Deposit{Cash: amount}, date})
	return b
}

// Withdrawal appends a withdrawal of the positive amount.
func (b *TransactionBuilder) Withdrawal(amount float64, date string) *TransactionBuilder {
	b.entries = append(b.entries, entry{valuation.Withdrawal{Cash: amount}, date})
	return b
}

// Buy appends a purchase.
func (b *TransactionBuilder) Buy(ticker string, quantity, price float64, date string) *TransactionBuilder {
	b.entries = append(b.entries, entry{valuation.Buy{Trade: valuation.Trade{Ticker: ticker, Quantity: quantity, Price: price}}, date})
	return b
}

// Sell appends a sale.
func (b *TransactionBuilder) Sell(ticker string, quantity, price float64, date string) *TransactionBuilder {
	b.entries = append(b.entries, entry{valuation.Sell{Trade: valuation.Trade{Ticker: ticker, Quantity: quantity, Price: price}}, date})
	return b
}

// Build stores the entries after any existing ones and returns them with
// their assigned IDs.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) []valuation.Transaction {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewTransactionRepository(db)
	existing, err := repo.GetTransactions(ctx, b.accountID)
	if err != nil {
		t.Fatalf("Failed to load existing transactions: %v", err)
	}
	nextID := int64(len(existing)) + 1

	out := make([]valuation.Transaction, 0, len(b.entries))
	for _, e := range b.entries {
		date, err := valuation.ParseDate(e.date)
		if err != nil {
			t.Fatalf("Invalid test date %q: %v", e.date, err)
		}
		tx := valuation.Transaction{ID: nextID, Date: date, Event: e.event}
		if err := repo.InsertTransaction(ctx, b.accountID, tx); err != nil {
			t.Fatalf("Failed to create test transaction: %v", err)
		}
		out = append(out, tx)
		nextID++
	}
	return out
}

// CreateDashboardAccount creates an account holding the demo log: a 10,000
// deposit, 10 AAPL at 150 and 5 MSFT at 280.
//
// Example usage:
//
//	account := testutil.CreateDashboardAccount(t, db)
func CreateDashboardAccount(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	account := NewAccount().WithName("Dashboard").Build(t, db)
	NewTransactions(account.ID).
		Deposit(10000, "2023-01-01").
		Buy("AAPL", 10, 150, "2023-01-02").
		Buy("MSFT", 5, 280, "2023-01-03").
		Build(t, db)
	return account
}
