package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
)

type countingLeaderboard struct {
	refreshes atomic.Int32
	err       error
}

func (c *countingLeaderboard) Refresh(context.Context) error {
	c.refreshes.Add(1)
	return c.err
}

func (c *countingLeaderboard) Top(context.Context, int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func TestNew_RejectsBadSpec(t *testing.T) {
	if _, err := New("every now and then", &countingLeaderboard{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStart_RefreshesImmediately(t *testing.T) {
	lb := &countingLeaderboard{}
	s, err := New("@every 1h", lb, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	if got := lb.refreshes.Load(); got != 1 {
		t.Fatalf("refreshes after Start = %d, want 1", got)
	}
}

func TestRefreshLeaderboard_SwallowsErrors(t *testing.T) {
	lb := &countingLeaderboard{err: errors.New("mongo down")}
	s, err := New("", lb, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.RefreshLeaderboard()
	if got := lb.refreshes.Load(); got != 1 {
		t.Fatalf("refreshes = %d, want 1", got)
	}
}
