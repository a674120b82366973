// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/api/metrics"
	"github.com/gigforge/marketplace/internal/core/ports"
)

const (
	defaultRefreshSpec = "@every 5m"
	refreshTimeout     = 30 * time.Second
)

// Scheduler rebuilds the leaderboard cache on a cron schedule.
type Scheduler struct {
	cron        *cron.Cron
	leaderboard ports.LeaderboardService
	logger      zerolog.Logger
}

// New registers the leaderboard job. spec uses the robfig/cron syntax,
// including descriptors such as "@every 5m".
func New(spec string, leaderboard ports.LeaderboardService, logger zerolog.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = defaultRefreshSpec
	}
	s := &Scheduler{
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		leaderboard: leaderboard,
		logger:      logger,
	}
	if _, err := s.cron.AddFunc(spec, s.RefreshLeaderboard); err != nil {
		return nil, fmt.Errorf("schedule leaderboard refresh %q: %w", spec, err)
	}
	return s, nil
}

// Start runs one refresh immediately so the cache is warm, then starts the
// cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.RefreshLeaderboard()
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RefreshLeaderboard runs a single refresh with its own timeout.
func (s *Scheduler) RefreshLeaderboard() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	err := s.leaderboard.Refresh(ctx)
	result := "ok"
	if err != nil {
		result = "error"
		s.logger.Error().Err(err).Msg("leaderboard refresh failed")
	}
	metrics.LeaderboardRefreshDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
