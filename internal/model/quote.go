package model

import "time"

// CachedQuote is a row of the quote table.
type CachedQuote struct {
	Ticker       string
	Name         string
	CurrentPrice float64
	DailyChange  float64
	Source       string
	FetchedAt    time.Time
}

// QuoteResponse is a quote as served by the market endpoint.
type QuoteResponse struct {
	Ticker             string    `json:"ticker"`
	Name               string    `json:"name"`
	CurrentPrice       float64   `json:"currentPrice"`
	DailyChangePercent float64   `json:"dailyChange"`
	FormattedPrice     string    `json:"formattedPrice"`
	FormattedChange    string    `json:"formattedChange"`
	Source             string    `json:"source"`
	FetchedAt          time.Time `json:"fetchedAt"`
}

// RefreshResult reports the outcome of a quote refresh.
type RefreshResult struct {
	Requested int      `json:"requested"`
	Refreshed int      `json:"refreshed"`
	Failed    []string `json:"failed"`
}
