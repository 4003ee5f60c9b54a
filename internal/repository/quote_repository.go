package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// QuoteRepository provides data access methods for the quote cache table.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetQuotes returns the cached quotes for tickers, keyed by ticker.
// Tickers without a cached row are absent from the map.
func (s *QuoteRepository) GetQuotes(ctx context.Context, tickers []string) (map[string]model.CachedQuote, error) {
	quotes := make(map[string]model.CachedQuote, len(tickers))
	if len(tickers) == 0 {
		return quotes, nil
	}

	query := `
		SELECT ticker, name, current_price, daily_change, source, fetched_at
		FROM quote
		WHERE ticker IN (` + placeholders(len(tickers)) + `)
	`
	args := make([]any, len(tickers))
	for i, t := range tickers {
		args[i] = t
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q model.CachedQuote
		var fetchedAt string
		if err := rows.Scan(&q.Ticker, &q.Name, &q.CurrentPrice, &q.DailyChange, &q.Source, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote table results: %w", err)
		}
		if q.FetchedAt, err = ParseTime(fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at for %s: %w", q.Ticker, err)
		}
		quotes[q.Ticker] = q
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote table: %w", err)
	}
	return quotes, nil
}

// UpsertQuote inserts or replaces the cached quote for q.Ticker.
func (s *QuoteRepository) UpsertQuote(ctx context.Context, q model.CachedQuote) error {
	query := `
		INSERT INTO quote (ticker, name, current_price, daily_change, source, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name,
			current_price = excluded.current_price,
			daily_change = excluded.daily_change,
			source = excluded.source,
			fetched_at = excluded.fetched_at
	`
	_, err := s.db.ExecContext(ctx, query, q.Ticker, q.Name, q.CurrentPrice, q.DailyChange, q.Source, formatTime(q.FetchedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert quote %s: %w", q.Ticker, err)
	}
	return nil
}
