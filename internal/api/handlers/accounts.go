package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts lists all accounts.
//
// Endpoint: GET /api/account
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.GetAccounts(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, accounts)
}

// Account returns one account with its cash balance.
//
// Endpoint: GET /api/account/{uuid}
// Error: 404 Not Found for an unknown account
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetAccount(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccount)
		return
	}
	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount creates an empty account.
//
// Endpoint: POST /api/account
// Request: {"name": "..."}
// Response: 201 Created with the account
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateAccount)
		return
	}
	response.RespondJSON(w, http.StatusCreated, account)
}
