// Package format renders monetary figures for display and rounds them for
// API responses.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency all accounts are denominated in.
const DefaultCurrency = money.USD

// Currency renders amount in the default currency, e.g. "$10,379.50".
func Currency(amount float64) string {
	return CurrencyIn(amount, DefaultCurrency)
}

// CurrencyIn renders amount in the ISO 4217 currency code. Unknown codes
// fall back to a plain two-decimal number with the code appended.
func CurrencyIn(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	// Convert to minor units with half-away-from-zero rounding.
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// SignedCurrency is Currency with an explicit "+" for positive amounts.
func SignedCurrency(amount float64) string {
	if Round(amount) > 0 {
		return "+" + Currency(amount)
	}
	return Currency(amount)
}

// Percentage renders p with two decimals, e.g. "13.09%".
func Percentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedPercentage renders p with two decimals and an explicit sign.
func SignedPercentage(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

// Round rounds v to two decimal places, half away from zero.
func Round(v float64) float64 {
	return RoundTo(v, 2)
}

// RoundTo rounds v to places decimal places, half away from zero.
func RoundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
