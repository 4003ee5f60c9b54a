package valuation

import (
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// InsufficientFundsError reports a buy or withdrawal that needs more cash than
// the log holds.
type InsufficientFundsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: required %.2f, available %.2f", apperrors.ErrInsufficientFunds, e.Required, e.Available)
}

func (e *InsufficientFundsError) Unwrap() error { return apperrors.ErrInsufficientFunds }

// InsufficientQuantityError reports a sell of more units than are held.
type InsufficientQuantityError struct {
	Ticker    string
	Requested float64
	Held      float64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("%s: cannot sell %g %s, holding %g", apperrors.ErrInsufficientQuantity, e.Requested, e.Ticker, e.Held)
}

func (e *InsufficientQuantityError) Unwrap() error { return apperrors.ErrInsufficientQuantity }

// InvalidTransactionError reports a transaction that is malformed for its kind.
type InvalidTransactionError struct {
	Field  string
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", apperrors.ErrInvalidTransaction, e.Field, e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error { return apperrors.ErrInvalidTransaction }

func invalid(field, reason string) error {
	return &InvalidTransactionError{Field: field, Reason: reason}
}
