// Package valuation turns an append-only transaction log and a market quote
// snapshot into holdings, cash balance, cost basis and profit/loss.
//
// Every function in this package is pure: callers own the log and the quotes
// and pass them in on each call. Nothing here performs I/O or keeps state
// between calls, so the functions are safe for concurrent use on the same log.
package valuation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies the variant of a transaction.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindBuy        Kind = "buy"
	KindSell       Kind = "sell"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDeposit, KindWithdrawal, KindBuy, KindSell:
		return k, nil
	}
	return "", invalid("type", fmt.Sprintf("unknown transaction type %q", s))
}

// Event is the payload of a transaction. It is one of Deposit, Withdrawal, Buy
// or Sell; each carries only the fields its kind needs.
type Event interface {
	Kind() Kind
	// Amount is the signed cash delta of the event.
	Amount() float64
	validate() error
}

// Deposit adds cash to the account.
type Deposit struct {
	Cash float64
}

// Withdrawal removes cash from the account. Cash is the positive amount withdrawn.
type Withdrawal struct {
	Cash float64
}

// Trade is the shared shape of buys and sells.
type Trade struct {
	Ticker   string
	Quantity float64
	Price    float64
}

// Buy acquires Quantity units of Ticker at Price.
type Buy struct{ Trade }

// Sell disposes of Quantity units of Ticker at Price.
type Sell struct{ Trade }

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Buy) Kind() Kind        { return KindBuy }
func (Sell) Kind() Kind       { return KindSell }

func (d Deposit) Amount() float64    { return d.Cash }
func (w Withdrawal) Amount() float64 { return -w.Cash }
func (b Buy) Amount() float64        { return -b.Cost() }
func (s Sell) Amount() float64       { return s.Cost() }

// Cost is quantity times price.
func (t Trade) Cost() float64 { return t.Quantity * t.Price }

func (d Deposit) validate() error {
	if !positive(d.Cash) {
		return invalid("amount", "deposit amount must be a positive finite number")
	}
	return nil
}

func (w Withdrawal) validate() error {
	if !positive(w.Cash) {
		return invalid("amount", "withdrawal amount must be a positive finite number")
	}
	return nil
}

func (t Trade) validate() error {
	if t.Ticker == "" {
		return invalid("ticker", "ticker is required")
	}
	if !positive(t.Quantity) {
		return invalid("quantity", "quantity must be a positive finite number")
	}
	if !finite(t.Price) || t.Price < 0 {
		return invalid("price", "price must be a non-negative finite number")
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return finite(v) && v > 0 }

// Transaction is one immutable entry of the log.
type Transaction struct {
	ID    int64
	Date  time.Time
	Event Event
}

// NewDeposit builds a deposit of amount.
func NewDeposit(amount float64, date time.Time) (Transaction, error) {
	return newTransaction(Deposit{Cash: amount}, date)
}

// NewWithdrawal builds a withdrawal of amount, given as a positive number.
func NewWithdrawal(amount float64, date time.Time) (Transaction, error) {
	return newTransaction(Withdrawal{Cash: amount}, date)
}

// NewBuy builds a purchase of quantity units of ticker at price.
func NewBuy(ticker string, quantity, price float64, date time.Time) (Transaction, error) {
	return newTransaction(Buy{Trade{Ticker: NormalizeTicker(ticker), Quantity: quantity, Price: price}}, date)
}

// NewSell builds a sale of quantity units of ticker at price.
func NewSell(ticker string, quantity, price float64, date time.Time) (Transaction, error) {
	return newTransaction(Sell{Trade{Ticker: NormalizeTicker(ticker), Quantity: quantity, Price: price}}, date)
}

// NewEvent builds the event for kind from flat fields, as stored in a database
// row or sent over the wire. For deposits and withdrawals only amount is read;
// a withdrawal may be given with either sign. For trades amount is ignored and
// derived from quantity and price.
func NewEvent(kind Kind, amount float64, ticker string, quantity, price float64) (Event, error) {
	var e Event
	switch kind {
	case KindDeposit:
		e = Deposit{Cash: amount}
	case KindWithdrawal:
		if amount < 0 {
			amount = -amount
		}
		e = Withdrawal{Cash: amount}
	case KindBuy:
		e = Buy{Trade{Ticker: NormalizeTicker(ticker), Quantity: quantity, Price: price}}
	case KindSell:
		e = Sell{Trade{Ticker: NormalizeTicker(ticker), Quantity: quantity, Price: price}}
	default:
		return nil, invalid("type", fmt.Sprintf("unknown transaction type %q", kind))
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func newTransaction(e Event, date time.Time) (Transaction, error) {
	if err := e.validate(); err != nil {
		return Transaction{}, err
	}
	return Transaction{Date: date, Event: e}, nil
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Kind returns the kind of the transaction's event.
func (t Transaction) Kind() Kind {
	if t.Event == nil {
		return ""
	}
	return t.Event.Kind()
}

// Amount returns the signed cash delta of the transaction.
func (t Transaction) Amount() float64 {
	if t.Event == nil {
		return 0
	}
	return t.Event.Amount()
}

// Trade returns the trade fields for buys and sells.
func (t Transaction) Trade() (Trade, bool) {
	switch e := t.Event.(type) {
	case Buy:
		return e.Trade, true
	case Sell:
		return e.Trade, true
	}
	return Trade{}, false
}

// Validate checks the event and rejects zero or non-finite cash deltas.
func (t Transaction) Validate() error {
	if t.Event == nil {
		return invalid("type", "transaction has no event")
	}
	if err := t.Event.validate(); err != nil {
		return err
	}
	amount := t.Amount()
	if amount == 0 {
		return invalid("amount", "transaction amount cannot be zero")
	}
	if !finite(amount) {
		return invalid("amount", "transaction amount must be finite")
	}
	return nil
}

// record is the flat JSON shape of a transaction.
type record struct {
	ID       int64    `json:"id"`
	Type     Kind     `json:"type"`
	Amount   float64  `json:"amount"`
	Ticker   *string  `json:"ticker"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Date     string   `json:"date"`
}

// MarshalJSON encodes the transaction in the flat wire shape used by the API
// and the CLI files: {id, type, amount, ticker, quantity, price, date}.
func (t Transaction) MarshalJSON() ([]byte, error) {
	r := record{
		ID:     t.ID,
		Type:   t.Kind(),
		Amount: t.Amount(),
		Date:   FormatDate(t.Date),
	}
	if tr, ok := t.Trade(); ok {
		r.Ticker = &tr.Ticker
		r.Quantity = &tr.Quantity
		r.Price = &tr.Price
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes and validates the flat wire shape.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	var ticker string
	var quantity, price float64
	if r.Ticker != nil {
		ticker = *r.Ticker
	}
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	if r.Price != nil {
		price = *r.Price
	}
	e, err := NewEvent(r.Type, r.Amount, ticker, quantity, price)
	if err != nil {
		return err
	}
	var date time.Time
	if r.Date != "" {
		date, err = ParseDate(r.Date)
		if err != nil {
			return invalid("date", err.Error())
		}
	}
	*t = Transaction{ID: r.ID, Date: date, Event: e}
	return nil
}

// ParseDate accepts "2006-01-02" or RFC3339 and returns the time in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		d, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
		}
	}
	return d.UTC(), nil
}

// FormatDate renders midnight timestamps as a plain date and anything else as RFC3339.
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	d = d.UTC()
	if d.Equal(d.Truncate(24 * time.Hour)) {
		return d.Format("2006-01-02")
	}
	return d.Format(time.RFC3339)
}
