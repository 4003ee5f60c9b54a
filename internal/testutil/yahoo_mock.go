package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of market.YahooClient for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	mu sync.Mutex
	// MockResponse is the response to return from query methods
	MockResponse yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of historical prices suitable for testing.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5),
	}
}

// QueryFiveDay returns the configured MockResponse and MockError.
func (m *MockYahooClient) QueryFiveDay(_ context.Context, _ string) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// ParseLatest delegates to the real ParseLatest method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseLatest(resp yahoo.Response) (yahoo.LatestQuote, error) {
	return yahoo.NewFinanceClient().ParseLatest(resp)
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test data.
// The response includes `days` daily closes ending yesterday, starting at
// 100.25 and rising by 0.5 per day.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	opens := make([]*float64, days)
	highs := make([]*float64, days)
	lows := make([]*float64, days)
	closes := make([]*float64, days)

	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice + 0.25

		opens[i] = &open
		highs[i] = &high
		lows[i] = &low
		closes[i] = &closePrice
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:       "TEST",
						Currency:     "USD",
						ExchangeName: "NMS",
						LongName:     "Test Corp.",
						ShortName:    "TEST",
					},
					Timestamp: timestamps,
					Indicators: yahoo.Indicators{
						Quote: []yahoo.OHLC{
							{
								Open:  opens,
								High:  highs,
								Low:   lows,
								Close: closes,
							},
						},
					},
				},
			},
		},
	}
}
