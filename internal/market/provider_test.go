package market

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	q, err := p.Quote(ctx, " aapl ")
	if err != nil {
		t.Fatalf("Quote() returned unexpected error: %v", err)
	}
	if q.CurrentPrice != 175.20 || q.DisplayName != "Apple Inc." || q.DailyChangePercent != 2.5 {
		t.Errorf("Unexpected AAPL quote %+v", q)
	}

	if _, err := p.Quote(ctx, "IBM"); !errors.Is(err, apperrors.ErrQuoteNotFound) {
		t.Errorf("Expected ErrQuoteNotFound, got %v", err)
	}

	if got := len(p.Tickers()); got != 6 {
		t.Errorf("Expected 6 tickers, got %d", got)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.Quote(cancelled, "AAPL"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	for source, name := range map[string]string{"mock": "mock", "yahoo": "yahoo"} {
		p, err := NewProvider(source)
		if err != nil {
			t.Fatalf("NewProvider(%q) returned unexpected error: %v", source, err)
		}
		if p.Name() != name {
			t.Errorf("Expected provider %s, got %s", name, p.Name())
		}
	}
	if _, err := NewProvider("bloomberg"); err == nil {
		t.Error("Expected error for unknown source")
	}
}
