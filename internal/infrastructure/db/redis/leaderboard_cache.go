package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gigforge/marketplace/internal/core/domain"
)

const (
	leaderboardScoresKey  = "leaderboard:xp"
	leaderboardMembersKey = "leaderboard:members"
)

// LeaderboardCache keeps the ranked snapshot in a sorted set and the display
// data of each member in a hash. Scores are negated XP so an ascending range
// yields XP descending with ties by user id ascending, the store's order.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

type leaderboardMember struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// Replace swaps the snapshot atomically.
func (c *LeaderboardCache) Replace(ctx context.Context, entries []domain.LeaderboardEntry) error {
	scores := make([]redis.Z, 0, len(entries))
	members := make(map[string]any, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(leaderboardMember{Name: e.Name, Role: e.Role})
		if err != nil {
			return fmt.Errorf("encode leaderboard member: %w", err)
		}
		scores = append(scores, redis.Z{Score: -float64(e.XP), Member: e.UserID})
		members[e.UserID] = raw
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, leaderboardScoresKey, leaderboardMembersKey)
		if len(scores) > 0 {
			pipe.ZAdd(ctx, leaderboardScoresKey, scores...)
			pipe.HSet(ctx, leaderboardMembersKey, members)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace leaderboard: %w", err)
	}
	return nil
}

// Top reads the first limit ranks. A cold cache yields an empty slice.
func (c *LeaderboardCache) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	zs, err := c.client.ZRangeWithScores(ctx, leaderboardScoresKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(zs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(zs))
	for i, z := range zs {
		ids[i], _ = z.Member.(string)
	}
	raw, err := c.client.HMGet(ctx, leaderboardMembersKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard members: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		var m leaderboardMember
		if s, ok := raw[i].(string); ok {
			_ = json.Unmarshal([]byte(s), &m)
		}
		xp := int(-z.Score)
		entries = append(entries, domain.LeaderboardEntry{
			Rank:   i + 1,
			UserID: ids[i],
			Name:   m.Name,
			Role:   m.Role,
			XP:     xp,
			Level:  domain.LevelForXP(xp),
		})
	}
	return entries, nil
}
