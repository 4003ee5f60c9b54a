package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts(ctx context.Context) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(ctx)
}

// GetAccount retrieves an account with its cash balance derived from the log.
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (model.AccountResponse, error) {
	account, err := s.accountRepo.GetAccount(ctx, accountID)
	if err != nil {
		return model.AccountResponse{}, err
	}

	txs, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return model.AccountResponse{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	cash := format.Round(valuation.ComputeCashBalance(txs))
	return model.AccountResponse{
		Account:              account,
		CashBalance:          cash,
		FormattedCashBalance: format.Currency(cash),
		TransactionCount:     len(txs),
	}, nil
}

// CreateAccount stores a new, empty account.
func (s *AccountService) CreateAccount(ctx context.Context, name string) (model.Account, error) {
	account := model.Account{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}
