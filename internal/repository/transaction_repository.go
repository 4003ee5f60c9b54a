package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// TransactionRepository provides data access methods for the transaction table.
// Rows are stored flat and rebuilt into valuation.Transaction values on read.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions returns the log of an account in insertion order.
// Returns an empty slice for an account without transactions.
func (s *TransactionRepository) GetTransactions(ctx context.Context, accountID string) ([]valuation.Transaction, error) {
	query := `
		SELECT id, type, amount, ticker, quantity, price, date
		FROM "transaction"
		WHERE account_id = ?
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	txs := []valuation.Transaction{}
	for rows.Next() {
		var (
			id              int64
			kind, dateStr   string
			amount          float64
			ticker          sql.NullString
			quantity, price sql.NullFloat64
		)
		if err := rows.Scan(&id, &kind, &amount, &ticker, &quantity, &price, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		event, err := valuation.NewEvent(valuation.Kind(kind), amount, ticker.String, quantity.Float64, price.Float64)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d of account %s: %w", apperrors.ErrDataInconsistency, id, accountID, err)
		}
		date, err := ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date for transaction %d: %w", id, err)
		}

		txs = append(txs, valuation.Transaction{ID: id, Date: date, Event: event})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return txs, nil
}

// InsertTransaction appends tx to the log of an account. The ID is taken
// from tx; a clash with an existing ID returns apperrors.ErrDuplicateEntry.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, accountID string, tx valuation.Transaction) error {
	query := `
		INSERT INTO "transaction" (account_id, id, type, amount, ticker, quantity, price, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var ticker sql.NullString
	var quantity, price sql.NullFloat64
	if tr, ok := tx.Trade(); ok {
		ticker = sql.NullString{String: tr.Ticker, Valid: true}
		quantity = sql.NullFloat64{Float64: tr.Quantity, Valid: true}
		price = sql.NullFloat64{Float64: tr.Price, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		accountID,
		tx.ID,
		string(tx.Kind()),
		tx.Amount(),
		ticker,
		quantity,
		price,
		formatTime(tx.Date),
		formatTime(time.Now()),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %d of account %s", apperrors.ErrDuplicateEntry, tx.ID, accountID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTradedTickers returns every ticker that appears in any account's log.
func (s *TransactionRepository) GetTradedTickers(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT ticker
		FROM "transaction"
		WHERE ticker IS NOT NULL
		ORDER BY ticker
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query traded tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating traded tickers: %w", err)
	}
	return tickers, nil
}
