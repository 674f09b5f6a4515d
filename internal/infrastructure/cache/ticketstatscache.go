package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tracker/internal/application/ticket/dto"
)

const (
	ticketStatsKey        = "tracker:dashboard:stats"
	defaultTicketStatsTTL = 60 * time.Second
)

// RedisTicketStatsCache stores the dashboard status counts as one JSON value.
type RedisTicketStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTicketStatsCache(client *redis.Client, ttl time.Duration) *RedisTicketStatsCache {
	if ttl <= 0 {
		ttl = defaultTicketStatsTTL
	}
	return &RedisTicketStatsCache{client: client, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *RedisTicketStatsCache) Get(ctx context.Context) (*dto.StatsDTO, bool, error) {
	data, err := c.client.Get(ctx, ticketStatsKey).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get ticket stats: %w", err)
	}

	var stats dto.StatsDTO
	if err := json.Unmarshal(data, &stats); err != nil {
		// a corrupt value is a miss; the next Set overwrites it
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *RedisTicketStatsCache) Set(ctx context.Context, stats dto.StatsDTO) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket stats: %w", err)
	}
	if err := c.client.Set(ctx, ticketStatsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set ticket stats: %w", err)
	}
	return nil
}

func (c *RedisTicketStatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ticketStatsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate ticket stats: %w", err)
	}
	return nil
}
