package valuation

import (
	"fmt"
	"time"
)

// Ledger is an incrementally maintained aggregate of a log: running cash,
// gross buy spend and per-ticker positions. Recording into a Ledger is O(1)
// per transaction and yields the same results as replaying the full log.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	st       state
	lastID   int64
	lastDate time.Time
	count    int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Replay builds a ledger from an existing log. Entries are applied as they
// are, without funds checks, but a sell of more than is held is rejected.
func Replay(txs []Transaction) (*Ledger, error) {
	l := NewLedger()
	for _, t := range txs {
		if err := l.Apply(t); err != nil {
			return nil, fmt.Errorf("replay transaction %d: %w", t.ID, err)
		}
	}
	return l, nil
}

// Apply folds an already recorded transaction into the ledger.
func (l *Ledger) Apply(t Transaction) error {
	if err := l.st.apply(t); err != nil {
		return err
	}
	if t.ID > l.lastID {
		l.lastID = t.ID
	}
	if t.Date.After(l.lastDate) {
		l.lastDate = t.Date
	}
	l.count++
	return nil
}

// Record validates candidate against the current state, assigns its id and
// date, applies it and returns the stored form.
func (l *Ledger) Record(candidate Transaction) (Transaction, error) {
	t, err := l.prepare(candidate)
	if err != nil {
		return Transaction{}, err
	}
	if err := l.Apply(t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Check reports whether candidate could be recorded now.
func (l *Ledger) Check(candidate Transaction) error {
	_, err := l.prepare(candidate)
	return err
}

func (l *Ledger) prepare(candidate Transaction) (Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return Transaction{}, err
	}
	if candidate.Date.IsZero() {
		candidate.Date = now()
	}
	if day(candidate.Date).Before(day(l.lastDate)) {
		return Transaction{}, invalid("date", fmt.Sprintf("date %s precedes the last recorded transaction (%s)",
			FormatDate(candidate.Date), FormatDate(l.lastDate)))
	}

	switch e := candidate.Event.(type) {
	case Withdrawal:
		if e.Cash > l.st.cash+quantityEpsilon {
			return Transaction{}, &InsufficientFundsError{Required: e.Cash, Available: l.st.cash}
		}
	case Buy:
		if cost := e.Cost(); cost > l.st.cash+quantityEpsilon {
			return Transaction{}, &InsufficientFundsError{Required: cost, Available: l.st.cash}
		}
	case Sell:
		if held := l.st.positions[e.Ticker].Quantity; e.Quantity > held+quantityEpsilon {
			return Transaction{}, &InsufficientQuantityError{Ticker: e.Ticker, Requested: e.Quantity, Held: held}
		}
	}

	candidate.ID = l.lastID + 1
	return candidate, nil
}

func day(t time.Time) time.Time { return t.UTC().Truncate(24 * time.Hour) }

// CashBalance returns the running cash balance.
func (l *Ledger) CashBalance() float64 { return l.st.cash }

// InvestmentCost returns the gross cash spent on buys.
func (l *Ledger) InvestmentCost() float64 { return l.st.invested }

// Len returns the number of applied transactions.
func (l *Ledger) Len() int { return l.count }

// LastID returns the highest applied transaction id.
func (l *Ledger) LastID() int64 { return l.lastID }

// Position returns the position for ticker, zero if never traded.
func (l *Ledger) Position(ticker string) HoldingPosition {
	ticker = NormalizeTicker(ticker)
	if p, ok := l.st.positions[ticker]; ok {
		return p
	}
	return HoldingPosition{Ticker: ticker}
}

// Holdings returns a copy of every position, including closed ones.
func (l *Ledger) Holdings() map[string]HoldingPosition {
	out := make(map[string]HoldingPosition, len(l.st.positions))
	for k, v := range l.st.positions {
		out[k] = v
	}
	return out
}

// Tickers returns the tickers with a non-zero position, in order of first trade.
func (l *Ledger) Tickers() []string {
	var out []string
	for _, t := range l.st.order {
		if l.st.positions[t].Quantity != 0 {
			out = append(out, t)
		}
	}
	return out
}

// Snapshot values the ledger at quotes.
func (l *Ledger) Snapshot(quotes Quotes) PortfolioSnapshot {
	return l.st.snapshot(quotes)
}
