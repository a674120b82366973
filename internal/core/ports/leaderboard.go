package ports

import (
	"context"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// LeaderboardCache stores the latest ranked snapshot.
type LeaderboardCache interface {
	Replace(ctx context.Context, entries []domain.LeaderboardEntry) error
	// Top returns at most limit entries; an empty slice means the cache is cold.
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type LeaderboardService interface {
	Refresh(ctx context.Context) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
