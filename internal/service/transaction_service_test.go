package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	account := testutil.CreateDashboardAccount(t, db)

	t.Run("buy at an explicit price", func(t *testing.T) {
		rec, err := svc.CreateTransaction(ctx, account.ID, request.CreateTransactionRequest{
			Type:     "buy",
			Ticker:   "googl",
			Quantity: testutil.Float(2),
			Price:    testutil.Float(100),
			Date:     "2023-01-04",
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if rec.ID != 4 {
			t.Errorf("Expected id 4, got %d", rec.ID)
		}
		tr, ok := rec.Trade()
		if !ok || tr.Ticker != "GOOGL" {
			t.Errorf("Expected GOOGL trade, got %+v", rec)
		}
		if rec.Amount() != -200 {
			t.Errorf("Expected amount -200, got %v", rec.Amount())
		}
	})

	t.Run("sell without price uses the quote", func(t *testing.T) {
		rec, err := svc.CreateTransaction(ctx, account.ID, request.CreateTransactionRequest{
			Type:     "sell",
			Ticker:   "MSFT",
			Quantity: testutil.Float(1),
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		tr, _ := rec.Trade()
		if tr.Price != 305.50 {
			t.Errorf("Expected quote price 305.50, got %v", tr.Price)
		}
		if rec.Date.IsZero() {
			t.Error("Expected today's date to be assigned")
		}
	})

	t.Run("rejections leave the log unchanged", func(t *testing.T) {
		before, err := svc.GetTransactions(ctx, account.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}

		cases := []struct {
			name string
			req  request.CreateTransactionRequest
			want error
		}{
			{"oversell", request.CreateTransactionRequest{Type: "sell", Ticker: "AAPL", Quantity: testutil.Float(11), Price: testutil.Float(1)}, apperrors.ErrInsufficientQuantity},
			{"sell unknown position", request.CreateTransactionRequest{Type: "sell", Ticker: "NVDA", Quantity: testutil.Float(1), Price: testutil.Float(1)}, apperrors.ErrInsufficientQuantity},
			{"overspend", request.CreateTransactionRequest{Type: "buy", Ticker: "AAPL", Quantity: testutil.Float(1000), Price: testutil.Float(175)}, apperrors.ErrInsufficientFunds},
			{"overdraft", request.CreateTransactionRequest{Type: "withdrawal", Amount: testutil.Float(1e6)}, apperrors.ErrInsufficientFunds},
			{"backdated", request.CreateTransactionRequest{Type: "deposit", Amount: testutil.Float(1), Date: "2023-01-01"}, apperrors.ErrInvalidTransaction},
			{"unknown type", request.CreateTransactionRequest{Type: "dividend", Amount: testutil.Float(1)}, apperrors.ErrInvalidTransaction},
			{"no quote", request.CreateTransactionRequest{Type: "buy", Ticker: "ZZZZ", Quantity: testutil.Float(1)}, apperrors.ErrQuoteNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateTransaction(ctx, account.ID, tc.req)
				if !errors.Is(err, tc.want) {
					t.Errorf("Expected %v, got %v", tc.want, err)
				}
			})
		}

		after, err := svc.GetTransactions(ctx, account.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Expected %d transactions, got %d", len(before), len(after))
		}
	})

	t.Run("insufficient quantity carries the held amount", func(t *testing.T) {
		_, err := svc.CreateTransaction(ctx, account.ID, request.CreateTransactionRequest{
			Type: "sell", Ticker: "AAPL", Quantity: testutil.Float(12), Price: testutil.Float(1),
		})
		var qErr *valuation.InsufficientQuantityError
		if !errors.As(err, &qErr) {
			t.Fatalf("Expected InsufficientQuantityError, got %v", err)
		}
		if qErr.Held != 10 || qErr.Requested != 12 {
			t.Errorf("Unexpected error fields %+v", qErr)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Deposit(ctx, testutil.MakeID(), request.CashRequest{Amount: 1})
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestTransactionService_ConcurrentSells(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	account := testutil.CreateDashboardAccount(t, db)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CreateTransaction(ctx, account.ID, request.CreateTransactionRequest{
				Type:     "sell",
				Ticker:   "AAPL",
				Quantity: testutil.Float(3),
				Price:    testutil.Float(160),
			})
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case !errors.Is(err, apperrors.ErrInsufficientQuantity):
			t.Errorf("Unexpected error: %v", err)
		}
	}
	if accepted != 3 {
		t.Errorf("Expected 3 sells to succeed against 10 held, got %d", accepted)
	}

	log, err := svc.GetTransactions(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetTransactions() returned unexpected error: %v", err)
	}
	holdings, err := valuation.ComputeHoldings(log)
	if err != nil {
		t.Fatalf("stored log does not replay: %v", err)
	}
	if q := holdings["AAPL"].Quantity; q != 1 {
		t.Errorf("Expected 1 AAPL left, got %v", q)
	}
	for i, tx := range log {
		if tx.ID != int64(i+1) {
			t.Errorf("Expected id %d at position %d, got %d", i+1, i, tx.ID)
		}
	}
}

func TestTransactionService_Audit(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	account := testutil.CreateDashboardAccount(t, db)

	t.Run("first audit seeds the cache", func(t *testing.T) {
		result, err := svc.Audit(ctx, account.ID)
		if err != nil {
			t.Fatalf("Audit() returned unexpected error: %v", err)
		}
		if !result.Consistent || result.Cached {
			t.Errorf("Expected consistent uncached result, got %+v", result)
		}
		if result.Replay.CashBalance != 7100 || result.Replay.OpenPositions != 2 {
			t.Errorf("Unexpected replay figures %+v", result.Replay)
		}
	})

	t.Run("recorded transactions keep the cache in step", func(t *testing.T) {
		if _, err := svc.Withdraw(ctx, account.ID, request.CashRequest{Amount: 100}); err != nil {
			t.Fatalf("Withdraw() returned unexpected error: %v", err)
		}
		result, err := svc.Audit(ctx, account.ID)
		if err != nil {
			t.Fatalf("Audit() returned unexpected error: %v", err)
		}
		if !result.Consistent || !result.Cached {
			t.Errorf("Expected consistent cached result, got %+v", result)
		}
		if result.Ledger.LastTransactionID != 4 || result.Ledger.CashBalance != 7000 {
			t.Errorf("Unexpected ledger figures %+v", result.Ledger)
		}
	})

	t.Run("out of band writes are detected and healed", func(t *testing.T) {
		testutil.NewTransactions(account.ID).Deposit(50, "2030-01-01").Build(t, db)

		result, err := svc.Audit(ctx, account.ID)
		if err != nil {
			t.Fatalf("Audit() returned unexpected error: %v", err)
		}
		if result.Consistent {
			t.Fatal("Expected mismatch after direct insert")
		}
		if len(result.Mismatches) == 0 {
			t.Error("Expected mismatches to be listed")
		}

		again, err := svc.Audit(ctx, account.ID)
		if err != nil {
			t.Fatalf("Audit() returned unexpected error: %v", err)
		}
		if !again.Consistent {
			t.Errorf("Expected healed cache, got %+v", again.Mismatches)
		}
	})

	t.Run("unreplayable log", func(t *testing.T) {
		bad := testutil.NewAccount().Build(t, db)
		testutil.NewTransactions(bad.ID).Withdrawal(1, "2023-01-01").Build(t, db)

		_, err := svc.Audit(ctx, bad.ID)
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Expected ErrDataInconsistency, got %v", err)
		}
	})
}

func TestTransactionService_UnknownAccountsAreNotTracked(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)

	for iter := 0; iter < 5; iter++ {
		id := testutil.MakeID()
		if _, err := svc.Audit(ctx, id); !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Fatalf("Expected ErrAccountNotFound from Audit, got %v", err)
		}
		if _, err := svc.Deposit(ctx, id, request.CashRequest{Amount: 1}); !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Fatalf("Expected ErrAccountNotFound from Deposit, got %v", err)
		}
	}
	if n := service.TrackedAccounts(svc); n != 0 {
		t.Errorf("Expected no tracked accounts, got %d", n)
	}

	account := testutil.CreateDashboardAccount(t, db)
	if _, err := svc.Audit(ctx, account.ID); err != nil {
		t.Fatalf("Audit() returned unexpected error: %v", err)
	}
	if n := service.TrackedAccounts(svc); n != 1 {
		t.Errorf("Expected 1 tracked account, got %d", n)
	}
}
