package utils

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ticket-marketplace/config"
)

// NewRedisClient dials the Redis instance backing the control-surface rate
// limiter. A failed dial is returned to the caller as an error rather than
// terminating the process.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		// Plain host:port values are accepted too.
		opts = &redis.Options{Addr: cfg.RedisURL}
	}

	opts.PoolSize = cfg.RedisPoolSize
	opts.DialTimeout = cfg.RedisDialTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RedisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
	}

	return client, nil
}

// RedisHealthCheck reports whether the rate-limiter backend is reachable.
func RedisHealthCheck(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("rate-limiter redis unreachable: %w", err)
	}
	return nil
}
