package dedup

import (
	"context"
	"fmt"
	"time"

	"shopify-oms-app/internal/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webhook:delivery:"

// RedisDeduplicator claims webhook delivery ids with SETNX and a TTL
type RedisDeduplicator struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisDeduplicator creates a deduplicator over an existing client
func NewRedisDeduplicator(client redis.Cmdable, ttl time.Duration) ports.WebhookDeduplicator {
	return &RedisDeduplicator{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (d *RedisDeduplicator) Claim(ctx context.Context, webhookID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, keyPrefix+webhookID, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim webhook delivery: %w", err)
	}
	return ok, nil
}

func (d *RedisDeduplicator) Release(ctx context.Context, webhookID string) error {
	if err := d.client.Del(ctx, keyPrefix+webhookID).Err(); err != nil {
		return fmt.Errorf("failed to release webhook delivery: %w", err)
	}
	return nil
}

// Noop accepts every delivery. Used when no Redis is configured.
type Noop struct{}

func (Noop) Claim(context.Context, string) (bool, error) { return true, nil }

func (Noop) Release(context.Context, string) error { return nil }
