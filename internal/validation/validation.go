// Package validation checks API request shapes before they reach the services.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// Common validation errors
var (
	ErrInvalidUUID  = apperrors.ErrInvalidUUID
	ErrEmptySlice   = fmt.Errorf("slice cannot be empty")
	ErrInvalidDate  = fmt.Errorf("invalid date")
	ErrInvalidValue = fmt.Errorf("invalid value")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTickers checks a comma-separated ticker list and returns the
// normalized, de-duplicated tickers in the order given.
func ValidateTickers(list string) ([]string, error) {
	seen := make(map[string]bool)
	var tickers []string
	for _, part := range strings.Split(list, ",") {
		t := valuation.NormalizeTicker(part)
		if t == "" || seen[t] {
			continue
		}
		if err := validateTicker(t); err != nil {
			return nil, err
		}
		seen[t] = true
		tickers = append(tickers, t)
	}
	if len(tickers) == 0 {
		return nil, ErrEmptySlice
	}
	return tickers, nil
}

func validateTicker(t string) error {
	if len(t) > 16 {
		return fmt.Errorf("%w: ticker %q is longer than 16 characters", ErrInvalidValue, t)
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '^', r == '=':
		default:
			return fmt.Errorf("%w: ticker %q contains %q", ErrInvalidValue, t, r)
		}
	}
	return nil
}
