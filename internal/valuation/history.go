package valuation

// HistoryPoint is the state of the portfolio at the end of one day.
type HistoryPoint struct {
	Date                string  `json:"date"`
	CashBalance         float64 `json:"cash"`
	TotalHoldingsValue  float64 `json:"holdingsValue"`
	TotalPortfolioValue float64 `json:"value"`
}

// History replays txs and emits one point per calendar day (UTC) that has
// transactions. Positions are priced at quotes with the same average cost
// fallback as ValuePortfolio; the quotes are a present-day snapshot, so the
// series shows how today's prices value each past composition.
func History(txs []Transaction, quotes Quotes) ([]HistoryPoint, error) {
	points := []HistoryPoint{}
	var st state
	for i, t := range txs {
		if err := st.apply(t); err != nil {
			return nil, err
		}
		d := day(t.Date)
		if i+1 < len(txs) && day(txs[i+1].Date).Equal(d) {
			continue
		}
		snap := st.snapshot(quotes)
		points = append(points, HistoryPoint{
			Date:                d.Format("2006-01-02"),
			CashBalance:         snap.CashBalance,
			TotalHoldingsValue:  snap.TotalHoldingsValue,
			TotalPortfolioValue: snap.TotalPortfolioValue,
		})
	}
	return points, nil
}
