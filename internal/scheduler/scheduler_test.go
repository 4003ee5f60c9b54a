package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

type countingRefresher struct {
	runs     atomic.Int32
	err      error
	deadline bool
}

func (c *countingRefresher) RefreshTraded(ctx context.Context) (model.RefreshResult, error) {
	c.runs.Add(1)
	_, c.deadline = ctx.Deadline()
	return model.RefreshResult{}, c.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())
	job := NewQuoteRefreshJob(&countingRefresher{}, time.Second)

	for _, spec := range []string{"*/5 * * * *", "0 */5 * * * *", "@every 30s", "@hourly"} {
		if err := s.AddJob(spec, job); err != nil {
			t.Errorf("AddJob(%q) returned unexpected error: %v", spec, err)
		}
	}
	if err := s.AddJob("every now and then", job); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

func TestScheduler_RunsJob(t *testing.T) {
	refresher := &countingRefresher{}
	s := New(zerolog.Nop())
	if err := s.AddJob("@every 1s", NewQuoteRefreshJob(refresher, time.Second)); err != nil {
		t.Fatalf("AddJob() returned unexpected error: %v", err)
	}

	s.Start()
	deadline := time.Now().Add(5 * time.Second)
	for refresher.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()

	if refresher.runs.Load() == 0 {
		t.Fatal("Expected the job to run at least once")
	}
}

func TestScheduler_RunNowLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	s := New(zerolog.New(&buf))
	refresher := &countingRefresher{err: errors.New("provider down")}
	job := NewQuoteRefreshJob(refresher, time.Second)

	if err := s.RunNow(job); err == nil {
		t.Error("Expected RunNow to return the job error")
	}
	if !refresher.deadline {
		t.Error("Expected the job context to carry a deadline")
	}
	if !strings.Contains(buf.String(), `"job":"quote_refresh"`) {
		t.Errorf("Expected job name in log, got %s", buf.String())
	}
}
