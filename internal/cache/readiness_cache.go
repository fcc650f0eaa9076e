package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ReadinessCache handles Redis ZSET operations for the org-wide readiness
// board: each user's latest percentage score, ranked.
type ReadinessCache interface {
	UpdateScore(ctx context.Context, userID string, percentage int) error
	GetTop(ctx context.Context, limit int) ([]BoardEntry, error)
	GetRank(ctx context.Context, userID string) (int64, error)
}

// BoardEntry is a single readiness board entry
type BoardEntry struct {
	UserID     string `json:"userId"`
	Percentage int    `json:"percentage"`
	Rank       int    `json:"rank"`
}

type readinessCache struct {
	client *redis.Client
}

// NewReadinessCache creates a new readiness cache
func NewReadinessCache(client *redis.Client) ReadinessCache {
	return &readinessCache{
		client: client,
	}
}

const boardKey = "assessment:readiness"

func (c *readinessCache) UpdateScore(ctx context.Context, userID string, percentage int) error {
	return c.client.ZAdd(ctx, boardKey, redis.Z{
		Score:  float64(percentage),
		Member: userID,
	}).Err()
}

func (c *readinessCache) GetTop(ctx context.Context, limit int) ([]BoardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, boardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]BoardEntry, len(results))
	for i, z := range results {
		entries[i] = BoardEntry{
			UserID:     z.Member.(string),
			Percentage: int(z.Score),
			Rank:       i + 1,
		}
	}
	return entries, nil
}

func (c *readinessCache) GetRank(ctx context.Context, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, boardKey, userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
