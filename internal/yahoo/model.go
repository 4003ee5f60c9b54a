package yahoo

import "time"

// Response is the raw JSON body of the Yahoo Finance chart endpoint.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart wraps the results and an optional API error.
type Chart struct {
	Result []Result  `json:"result"`
	Error  *APIError `json:"error"`
}

// APIError is the error object Yahoo returns in place of results.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is one symbol's chart.
type Result struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta carries symbol metadata and the latest market price.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
}

// Indicators holds the OHLC arrays. Yahoo sends null for sessions without
// trades, hence the pointers.
type Indicators struct {
	Quote []OHLC `json:"quote"`
}

// OHLC is the per-session price arrays, aligned with Result.Timestamp.
type OHLC struct {
	Open  []*float64 `json:"open"`
	Close []*float64 `json:"close"`
	High  []*float64 `json:"high"`
	Low   []*float64 `json:"low"`
}

// LatestQuote is the application's view of a chart: the most recent close
// and its change against the previous session.
type LatestQuote struct {
	Symbol             string
	Name               string
	Currency           string
	Price              float64
	PreviousClose      float64
	DailyChangePercent float64
	AsOf               time.Time
}
