package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

const (
	defaultLeaderboardSize  = 50
	defaultLeaderboardLimit = 10
)

// LeaderboardService ranks users by XP. Reads are served from the cache when it
// is warm and fall back to the store otherwise.
type LeaderboardService struct {
	repo   ports.UserRepository
	cache  ports.LeaderboardCache
	size   int
	logger zerolog.Logger
}

func NewLeaderboardService(repo ports.UserRepository, cache ports.LeaderboardCache, size int, logger zerolog.Logger) *LeaderboardService {
	if size <= 0 {
		size = defaultLeaderboardSize
	}
	return &LeaderboardService{repo: repo, cache: cache, size: size, logger: logger}
}

// Refresh rebuilds the cached snapshot from the store.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	entries, err := s.load(ctx, s.size)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Replace(ctx, entries); err != nil {
		return fmt.Errorf("leaderboard: replace cache: %w", err)
	}
	s.logger.Debug().Int("entries", len(entries)).Msg("leaderboard refreshed")
	return nil
}

// Top returns the first limit ranks. limit is clamped to [1, size].
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > s.size {
		limit = s.size
	}

	if s.cache != nil {
		entries, err := s.cache.Top(ctx, limit)
		if err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard cache read failed, falling back to store")
		} else if len(entries) > 0 {
			return entries, nil
		}
	}

	return s.load(ctx, limit)
}

func (s *LeaderboardService) load(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	users, err := s.repo.TopByXP(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			Role:   u.Role,
			XP:     u.Profile.XP,
			Level:  domain.LevelForXP(u.Profile.XP),
		})
	}
	return entries, nil
}
