package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all accounts ordered by creation time.
// Returns an empty slice if there are none.
func (s *AccountRepository) GetAccounts(ctx context.Context) ([]model.Account, error) {
	query := `
		SELECT id, name, created_at
		FROM account
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}
	return accounts, nil
}

// GetAccount retrieves a single account. Returns apperrors.ErrAccountNotFound
// when no row matches.
func (s *AccountRepository) GetAccount(ctx context.Context, accountID string) (model.Account, error) {
	query := `
		SELECT id, name, created_at
		FROM account
		WHERE id = ?
	`
	a, err := scanAccount(s.db.QueryRowContext(ctx, query, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// InsertAccount stores a new account.
func (s *AccountRepository) InsertAccount(ctx context.Context, a model.Account) error {
	query := `
		INSERT INTO account (id, name, created_at)
		VALUES (?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, a.ID, a.Name, formatTime(a.CreatedAt))
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (model.Account, error) {
	var a model.Account
	var createdAt string
	if err := row.Scan(&a.ID, &a.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to scan account: %w", err)
	}
	t, err := ParseTime(createdAt)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to parse created_at for account %s: %w", a.ID, err)
	}
	a.CreatedAt = t
	return a, nil
}
