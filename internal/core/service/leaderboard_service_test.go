package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
)

type stubLeaderboardCache struct {
	entries  []domain.LeaderboardEntry
	topErr   error
	replaced int
}

func (c *stubLeaderboardCache) Replace(_ context.Context, entries []domain.LeaderboardEntry) error {
	c.entries = append([]domain.LeaderboardEntry(nil), entries...)
	c.replaced++
	return nil
}

func (c *stubLeaderboardCache) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if c.topErr != nil {
		return nil, c.topErr
	}
	if len(c.entries) > limit {
		return c.entries[:limit], nil
	}
	return c.entries, nil
}

func leaderboardRepo() *stubUserRepo {
	repo := newStubUserRepo()
	for id, xp := range map[string]int{"a": 100, "b": 1200, "c": 600} {
		repo.byID[id] = &domain.User{ID: id, Name: "user-" + id, Role: domain.RoleFreelancer, Profile: domain.Profile{XP: xp}}
	}
	return repo
}

func TestLeaderboardService_RefreshFillsCache(t *testing.T) {
	cache := &stubLeaderboardCache{}
	svc := NewLeaderboardService(leaderboardRepo(), cache, 10, zerolog.Nop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if cache.replaced != 1 || len(cache.entries) != 3 {
		t.Fatalf("expected 3 cached entries, got %+v", cache.entries)
	}
	first := cache.entries[0]
	if first.UserID != "b" || first.Rank != 1 || first.Level != 3 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
}

func TestLeaderboardService_TopUsesWarmCache(t *testing.T) {
	cache := &stubLeaderboardCache{entries: []domain.LeaderboardEntry{{Rank: 1, UserID: "cached"}}}
	svc := NewLeaderboardService(leaderboardRepo(), cache, 10, zerolog.Nop())

	got, err := svc.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "cached" {
		t.Fatalf("expected cached entries, got %+v", got)
	}
}

func TestLeaderboardService_TopFallsBackToStore(t *testing.T) {
	for name, cache := range map[string]*stubLeaderboardCache{
		"cold":  {},
		"error": {topErr: errors.New("redis down")},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewLeaderboardService(leaderboardRepo(), cache, 10, zerolog.Nop())
			got, err := svc.Top(context.Background(), 2)
			if err != nil {
				t.Fatalf("top: %v", err)
			}
			if len(got) != 2 || got[0].UserID != "b" || got[1].UserID != "c" {
				t.Fatalf("unexpected entries: %+v", got)
			}
		})
	}
}

func TestLeaderboardService_TopClampsLimit(t *testing.T) {
	svc := NewLeaderboardService(leaderboardRepo(), nil, 2, zerolog.Nop())
	got, err := svc.Top(context.Background(), 100)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit clamped to 2, got %d", len(got))
	}
}
