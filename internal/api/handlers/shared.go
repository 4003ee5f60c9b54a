package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

// respondValidationError answers 400 with per-field messages when err is a
// validation.Error.
func respondValidationError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps service errors to status codes. Errors it does not
// recognise are reported as 500 with fallback as the message.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var (
		funds    *valuation.InsufficientFundsError
		quantity *valuation.InsufficientQuantityError
		invalid  *valuation.InvalidTransactionError
	)

	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDataInconsistency):
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrDataInconsistency.Error(), err.Error())
	case errors.As(err, &funds):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientFunds.Error(), map[string]float64{
			"required":  funds.Required,
			"available": funds.Available,
		})
	case errors.As(err, &quantity):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientQuantity.Error(), map[string]any{
			"ticker":    quantity.Ticker,
			"requested": quantity.Requested,
			"held":      quantity.Held,
		})
	case errors.As(err, &invalid):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTransaction.Error(), map[string]string{
			invalid.Field: invalid.Reason,
		})
	case errors.Is(err, apperrors.ErrQuoteNotFound):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrQuoteNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		response.RespondError(w, http.StatusGatewayTimeout, fallback.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
