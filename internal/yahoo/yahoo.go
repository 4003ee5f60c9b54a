// Package yahoo is a small client for the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// FinanceClient fetches chart data from Yahoo Finance.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a client against the public endpoint.
func NewFinanceClient() *FinanceClient {
	return NewFinanceClientWithBaseURL(DefaultBaseURL)
}

// NewFinanceClientWithBaseURL creates a client against baseURL. Tests point it
// at an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// QueryFiveDay fetches the last five daily sessions for symbol.
func (c *FinanceClient) QueryFiveDay(ctx context.Context, symbol string) (Response, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	result, err := c.query(ctx, u)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return result, nil
}

// ParseLatest extracts the latest close and daily change from a chart
// response. The daily change compares the last two non-null closes; with a
// single session it falls back to the chart's previous close.
func (c *FinanceClient) ParseLatest(resp Response) (LatestQuote, error) {
	if len(resp.Chart.Result) == 0 {
		return LatestQuote{}, fmt.Errorf("no results in response")
	}
	result := resp.Chart.Result[0]

	if len(result.Indicators.Quote) == 0 {
		return LatestQuote{}, fmt.Errorf("no close prices returned")
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return LatestQuote{}, fmt.Errorf("mismatched data lengths")
	}

	var last, prev *float64
	var asOf int64
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] == nil {
			continue
		}
		if last == nil {
			last = closes[i]
			asOf = result.Timestamp[i]
			continue
		}
		prev = closes[i]
		break
	}

	q := LatestQuote{
		Symbol:   result.Meta.Symbol,
		Name:     result.Meta.LongName,
		Currency: result.Meta.Currency,
	}
	if q.Name == "" {
		q.Name = result.Meta.ShortName
	}

	switch {
	case last != nil:
		q.Price = *last
		q.AsOf = time.Unix(asOf, 0).UTC()
	case result.Meta.RegularMarketPrice > 0:
		q.Price = result.Meta.RegularMarketPrice
	default:
		return LatestQuote{}, fmt.Errorf("no price data returned")
	}

	if prev != nil {
		q.PreviousClose = *prev
	} else {
		q.PreviousClose = result.Meta.ChartPreviousClose
	}
	if q.PreviousClose > 0 {
		q.DailyChangePercent = (q.Price - q.PreviousClose) / q.PreviousClose * 100
	}

	return q, nil
}

func (c *FinanceClient) query(ctx context.Context, u string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("failed to decode yahoo response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}
