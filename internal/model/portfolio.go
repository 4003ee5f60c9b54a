package model

// HoldingResponse is one surfaced holding with its valuation.
// Monetary values are rounded to two decimal places.
type HoldingResponse struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	Quantity             float64 `json:"quantity"`
	AvgCost              float64 `json:"avgCost"`
	CurrentPrice         float64 `json:"currentPrice"`
	MarketValue          float64 `json:"marketValue"`
	CostBasis            float64 `json:"costBasis"`
	ProfitLoss           float64 `json:"profitLoss"`
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
	DailyChangePercent   float64 `json:"dailyChange"`
	Quoted               bool    `json:"quoted"` // false when valued at avgCost
	FormattedMarketValue string  `json:"formattedMarketValue"`
}

// PortfolioSummary is the valuation of an account at the current quotes.
type PortfolioSummary struct {
	AccountID                   string            `json:"accountId"`
	Holdings                    []HoldingResponse `json:"holdings"`
	TotalHoldingsValue          float64           `json:"totalHoldingsValue"`
	CashBalance                 float64           `json:"cashBalance"`
	TotalInvestmentCost         float64           `json:"totalInvestmentCost"`
	TotalPortfolioValue         float64           `json:"totalPortfolioValue"`
	OverallProfitLoss           float64           `json:"overallProfitLoss"`
	OverallProfitLossPercentage float64           `json:"overallProfitLossPercentage"`
	Formatted                   FormattedSummary  `json:"formatted"`
}

// FormattedSummary carries display strings for the headline figures.
type FormattedSummary struct {
	TotalPortfolioValue         string `json:"totalPortfolioValue"`
	TotalHoldingsValue          string `json:"totalHoldingsValue"`
	CashBalance                 string `json:"cashBalance"`
	OverallProfitLoss           string `json:"overallProfitLoss"`
	OverallProfitLossPercentage string `json:"overallProfitLossPercentage"`
}

// PortfolioHistory is the value series of an account, one point per
// transaction date.
type PortfolioHistory struct {
	AccountID string         `json:"accountId"`
	Points    []HistoryPoint `json:"points"`
}

// HistoryPoint is the state of the account at the end of Date (YYYY-MM-DD).
type HistoryPoint struct {
	Date                string  `json:"date"`
	CashBalance         float64 `json:"cash"`
	TotalHoldingsValue  float64 `json:"holdingsValue"`
	TotalPortfolioValue float64 `json:"value"`
}

// AuditFigures are the aggregates compared by an audit.
type AuditFigures struct {
	TransactionCount    int     `json:"transactionCount"`
	LastTransactionID   int64   `json:"lastTransactionId"`
	CashBalance         float64 `json:"cashBalance"`
	TotalInvestmentCost float64 `json:"totalInvestmentCost"`
	OpenPositions       int     `json:"openPositions"`
}

// AuditResult compares the cached incremental ledger of an account against a
// full replay of its stored log.
type AuditResult struct {
	AccountID  string       `json:"accountId"`
	Consistent bool         `json:"consistent"`
	Cached     bool         `json:"cached"` // false when no ledger was cached yet
	Ledger     AuditFigures `json:"ledger"`
	Replay     AuditFigures `json:"replay"`
	Mismatches []string     `json:"mismatches,omitempty"`
}
