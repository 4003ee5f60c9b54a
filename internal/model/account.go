package model

import "time"

// Account represents an account row. An account owns one transaction log.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountResponse is an account with figures derived from its log.
type AccountResponse struct {
	Account
	CashBalance          float64 `json:"cashBalance"`
	FormattedCashBalance string  `json:"formattedCashBalance"`
	TransactionCount     int     `json:"transactionCount"`
}
