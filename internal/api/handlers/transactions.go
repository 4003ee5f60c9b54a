package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions returns the account's log in insertion order.
//
// Endpoint: GET /api/account/{uuid}/transactions
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactionService.GetTransactions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}
	response.RespondJSON(w, http.StatusOK, txs)
}

// CreateTransaction records a deposit, withdrawal, buy or sell.
//
// Endpoint: POST /api/account/{uuid}/transactions
// Response: 201 Created with the stored transaction
// Errors:
//   - 400 for a malformed request
//   - 404 for an unknown account
//   - 422 when the log rejects the transaction (funds, quantity, date) or a
//     trade without price has no quote
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordTransaction)
		return
	}
	response.RespondJSON(w, http.StatusCreated, tx)
}

// Deposit records a deposit.
//
// Endpoint: POST /api/account/{uuid}/deposit
// Request: {"amount": 1000, "date": "2023-01-01"}
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.transactionService.Deposit)
}

// Withdraw records a withdrawal.
//
// Endpoint: POST /api/account/{uuid}/withdraw
// Request: {"amount": 500}
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.transactionService.Withdraw)
}

type cashRecorder func(ctx context.Context, accountID string, req request.CashRequest) (valuation.Transaction, error)

func (h *TransactionHandler) cash(w http.ResponseWriter, r *http.Request, record cashRecorder) {
	req, err := parseJSON[request.CashRequest](w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCash(req); err != nil {
		respondValidationError(w, err)
		return
	}

	tx, err := record(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordTransaction)
		return
	}
	response.RespondJSON(w, http.StatusCreated, tx)
}

// Audit compares the cached ledger of the account against a replay of the
// stored log.
//
// Endpoint: GET /api/account/{uuid}/audit
// Response: 200 OK with model.AuditResult; consistent=false reports a mismatch
func (h *TransactionHandler) Audit(w http.ResponseWriter, r *http.Request) {
	result, err := h.transactionService.Audit(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAuditAccount)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
