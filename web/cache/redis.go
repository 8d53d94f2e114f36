// Package cache provides the Redis backing for server-side sessions and the
// auth rate limiter. When no external Redis is configured an embedded
// miniredis instance keeps single-process deployments working without extra
// infrastructure.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/yukkurinet/hyakki-portal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	ctx        = context.Background()
	isEmbedded = true
)

// InitRedis initializes the Redis client. An empty redisAddr starts an
// embedded server instead of connecting to an external one.
func InitRedis(redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{
			Addr: mr.Addr(),
		})
		isEmbedded = true
		logger.Info("Embedded Redis started on", mr.Addr())
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		isEmbedded = false

		if _, err := client.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
		}
		logger.Info("Connected to external Redis at", redisAddr)
	}

	return nil
}

// GetClient returns the Redis client instance.
func GetClient() *redis.Client {
	return client
}

// IsEmbedded returns true if using embedded Redis.
func IsEmbedded() bool {
	return isEmbedded
}

// Close closes the Redis connection and stops embedded Redis if running.
func Close() error {
	if client != nil {
		if err := client.Close(); err != nil {
			return err
		}
	}
	if miniRedis != nil {
		miniRedis.Close()
	}
	return nil
}

// IncrWithTTL atomically increments a counter, setting its expiry when the
// counter is created. Used by the rate limiter.
func IncrWithTTL(key string, ttl time.Duration) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
