package request

// CreateTransactionRequest is the body of POST /account/{uuid}/transactions.
// Amount is read for deposits and withdrawals; Ticker, Quantity and Price for
// buys and sells. A trade without Price executes at the current quote.
// Date defaults to now.
type CreateTransactionRequest struct {
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount,omitempty"`
	Ticker   string   `json:"ticker,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Date     string   `json:"date,omitempty"`
}

// CashRequest is the body of the deposit and withdraw shortcuts.
type CashRequest struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}
