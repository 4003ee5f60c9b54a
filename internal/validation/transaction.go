package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields per type:
//   - deposit, withdrawal: amount, positive
//   - buy, sell: ticker, quantity (positive); price is optional but positive when given
//
// date is optional and must be YYYY-MM-DD or RFC3339 when given.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	kind, err := valuation.ParseKind(req.Type)
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if err != nil {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	switch kind {
	case valuation.KindDeposit, valuation.KindWithdrawal:
		if req.Amount == nil {
			errors["amount"] = "amount is required"
		} else if !positive(*req.Amount) {
			errors["amount"] = "amount must be positive"
		}
	case valuation.KindBuy, valuation.KindSell:
		ticker := valuation.NormalizeTicker(req.Ticker)
		if ticker == "" {
			errors["ticker"] = "ticker is required"
		} else if err := validateTicker(ticker); err != nil {
			errors["ticker"] = err.Error()
		}
		if req.Quantity == nil {
			errors["quantity"] = "quantity is required"
		} else if !positive(*req.Quantity) {
			errors["quantity"] = "quantity must be positive"
		}
		if req.Price != nil && !positive(*req.Price) {
			errors["price"] = "price must be positive"
		}
	}

	validateDate(req.Date, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCash validates a deposit or withdrawal shortcut request.
func ValidateCash(req request.CashRequest) error {
	errors := make(map[string]string)
	if !positive(req.Amount) {
		errors["amount"] = "amount must be positive"
	}
	validateDate(req.Date, errors)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateAccount validates an account creation request.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		errors["name"] = "name is required"
	case len(name) > 100:
		errors["name"] = "name must be at most 100 characters"
	}
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateDate(date string, errors map[string]string) {
	if strings.TrimSpace(date) == "" {
		return
	}
	if _, err := valuation.ParseDate(date); err != nil {
		errors["date"] = fmt.Sprintf("%v: expected YYYY-MM-DD or RFC3339", ErrInvalidDate)
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
