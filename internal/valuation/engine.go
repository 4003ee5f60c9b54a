package valuation

import (
	"math"
	"time"
)

// quantityEpsilon absorbs float residue when a position is sold down to zero.
const quantityEpsilon = 1e-9

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// HoldingPosition is the aggregated state of one ticker after replaying the log.
type HoldingPosition struct {
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
	AvgCost  float64 `json:"avgCost"`
}

// Quote is a market snapshot for one ticker.
type Quote struct {
	CurrentPrice       float64 `json:"currentPrice"`
	DailyChangePercent float64 `json:"dailyChange"`
	DisplayName        string  `json:"name"`
}

// Quotes maps ticker to quote. A missing entry means no live price is known.
type Quotes map[string]Quote

// HoldingValuation is a surfaced position priced against the quote snapshot.
type HoldingValuation struct {
	HoldingPosition
	Name               string  `json:"name"`
	ValuationPrice     float64 `json:"currentPrice"`
	MarketValue        float64 `json:"marketValue"`
	DailyChangePercent float64 `json:"dailyChange"`
	Quoted             bool    `json:"quoted"`
}

// PortfolioSnapshot is the result of valuing a log against a quote snapshot.
type PortfolioSnapshot struct {
	CashBalance                 float64            `json:"cashBalance"`
	Holdings                    []HoldingValuation `json:"holdings"`
	TotalHoldingsValue          float64            `json:"totalHoldingsValue"`
	TotalInvestmentCost         float64            `json:"totalInvestmentCost"`
	TotalPortfolioValue         float64            `json:"totalPortfolioValue"`
	OverallProfitLoss           float64            `json:"overallProfitLoss"`
	OverallProfitLossPercentage float64            `json:"overallProfitLossPercentage"`
}

// ComputeCashBalance sums the cash delta of every transaction.
func ComputeCashBalance(txs []Transaction) float64 {
	var cash float64
	for _, t := range txs {
		cash += t.Amount()
	}
	return cash
}

// ComputeHoldings replays buys and sells in log order and returns the position
// per ticker, including positions that were sold down to zero. It fails with
// an InsufficientQuantityError if the log sells more than it holds.
func ComputeHoldings(txs []Transaction) (map[string]HoldingPosition, error) {
	var st state
	for _, t := range txs {
		if err := st.apply(t); err != nil {
			return nil, err
		}
	}
	out := make(map[string]HoldingPosition, len(st.positions))
	for k, v := range st.positions {
		out[k] = v
	}
	return out, nil
}

// ValuePortfolio computes the snapshot for txs priced at quotes.
//
// TotalInvestmentCost is the gross cash ever spent on buys and is not reduced
// by later sells. OverallProfitLoss is TotalPortfolioValue minus
// TotalInvestmentCost minus CashBalance, which equals TotalHoldingsValue minus
// TotalInvestmentCost; gains realised on closed positions are not added back.
func ValuePortfolio(txs []Transaction, quotes Quotes) (PortfolioSnapshot, error) {
	var st state
	for _, t := range txs {
		if err := st.apply(t); err != nil {
			return PortfolioSnapshot{}, err
		}
	}
	return st.snapshot(quotes), nil
}

// RecordTransaction validates candidate against the state derived from log and
// returns a new log with the candidate appended. The candidate receives the
// next id, and today's date when it has none. log is never modified; on error
// the caller's log is the only valid log.
//
// RecordTransaction does not serialise concurrent callers. Two appends
// validated against the same log can together oversell; callers that accept
// concurrent writes must hold a per-log lock around load, record and store.
func RecordTransaction(log []Transaction, candidate Transaction) ([]Transaction, error) {
	l, err := Replay(log)
	if err != nil {
		return nil, err
	}
	rec, err := l.prepare(candidate)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, len(log), len(log)+1)
	copy(out, log)
	return append(out, rec), nil
}

// state is the running aggregate shared by full replays and Ledger.
type state struct {
	cash      float64
	invested  float64
	positions map[string]HoldingPosition
	order     []string
}

func (s *state) apply(t Transaction) error {
	switch e := t.Event.(type) {
	case Buy:
		s.invested += e.Cost()
		p := s.position(e.Ticker)
		qty := p.Quantity + e.Quantity
		avg := 0.0
		if qty > 0 {
			avg = (p.Quantity*p.AvgCost + e.Quantity*e.Price) / qty
		}
		p.Quantity, p.AvgCost = qty, avg
		s.positions[e.Ticker] = p
	case Sell:
		held := s.positions[e.Ticker].Quantity
		if e.Quantity > held+quantityEpsilon {
			return &InsufficientQuantityError{Ticker: e.Ticker, Requested: e.Quantity, Held: held}
		}
		p := s.position(e.Ticker)
		p.Quantity -= e.Quantity
		if math.Abs(p.Quantity) <= quantityEpsilon {
			p.Quantity, p.AvgCost = 0, 0
		}
		s.positions[e.Ticker] = p
	}
	s.cash += t.Amount()
	return nil
}

func (s *state) position(ticker string) HoldingPosition {
	if s.positions == nil {
		s.positions = make(map[string]HoldingPosition)
	}
	p, ok := s.positions[ticker]
	if !ok {
		p = HoldingPosition{Ticker: ticker}
		s.order = append(s.order, ticker)
	}
	return p
}

func (s *state) snapshot(quotes Quotes) PortfolioSnapshot {
	snap := PortfolioSnapshot{
		CashBalance:         s.cash,
		Holdings:            []HoldingValuation{},
		TotalInvestmentCost: s.invested,
	}
	for _, ticker := range s.order {
		p := s.positions[ticker]
		if p.Quantity == 0 {
			continue
		}
		h := value(p, quotes)
		snap.Holdings = append(snap.Holdings, h)
		snap.TotalHoldingsValue += h.MarketValue
	}
	snap.TotalPortfolioValue = snap.TotalHoldingsValue + snap.CashBalance
	snap.OverallProfitLoss = snap.TotalPortfolioValue - snap.TotalInvestmentCost - snap.CashBalance
	if snap.TotalInvestmentCost > 0 {
		snap.OverallProfitLossPercentage = snap.OverallProfitLoss / snap.TotalInvestmentCost * 100
	}
	return snap
}

// value prices a position at its quote, falling back to its average cost.
func value(p HoldingPosition, quotes Quotes) HoldingValuation {
	h := HoldingValuation{
		HoldingPosition: p,
		Name:            p.Ticker,
		ValuationPrice:  p.AvgCost,
	}
	if q, ok := quotes[p.Ticker]; ok {
		h.ValuationPrice = q.CurrentPrice
		h.DailyChangePercent = q.DailyChangePercent
		h.Quoted = true
		if q.DisplayName != "" {
			h.Name = q.DisplayName
		}
	}
	h.MarketValue = p.Quantity * h.ValuationPrice
	return h
}
