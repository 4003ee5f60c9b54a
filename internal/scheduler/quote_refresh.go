package scheduler

import (
	"context"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// QuoteRefresher refreshes cached quotes for every traded ticker.
type QuoteRefresher interface {
	RefreshTraded(ctx context.Context) (model.RefreshResult, error)
}

// QuoteRefreshJob keeps the quote cache current.
type QuoteRefreshJob struct {
	refresher QuoteRefresher
	timeout   time.Duration
}

// NewQuoteRefreshJob creates the job. Each run is bounded by timeout.
func NewQuoteRefreshJob(refresher QuoteRefresher, timeout time.Duration) *QuoteRefreshJob {
	return &QuoteRefreshJob{refresher: refresher, timeout: timeout}
}

func (j *QuoteRefreshJob) Name() string { return "quote_refresh" }

func (j *QuoteRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, err := j.refresher.RefreshTraded(ctx)
	return err
}
