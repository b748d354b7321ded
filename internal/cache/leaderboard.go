package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventra/eventra-api/internal/domain"
)

// LeaderboardCache keeps ranked evaluation lists in redis with a short TTL.
// A miss simply falls through to the database.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *LeaderboardCache) key(hackathonID uint) string {
	return fmt.Sprintf("leaderboard:%d", hackathonID)
}

func (c *LeaderboardCache) Get(ctx context.Context, hackathonID uint) ([]domain.Evaluation, bool) {
	raw, err := c.client.Get(ctx, c.key(hackathonID)).Bytes()
	if err != nil {
		return nil, false
	}

	var evaluations []domain.Evaluation
	if err := json.Unmarshal(raw, &evaluations); err != nil {
		return nil, false
	}

	return evaluations, true
}

func (c *LeaderboardCache) Set(ctx context.Context, hackathonID uint, evaluations []domain.Evaluation) error {
	raw, err := json.Marshal(evaluations)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err := c.client.Set(ctx, c.key(hackathonID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("c.client.Set -> %w", err)
	}

	return nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context, hackathonID uint) error {
	if err := c.client.Del(ctx, c.key(hackathonID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("c.client.Del -> %w", err)
	}

	return nil
}
