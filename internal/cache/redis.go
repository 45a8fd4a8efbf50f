package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/edibulb/glucocoach/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Redis is a SummaryCache backed by a Redis instance, for deployments with
// more than one process.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(host, port string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	result := r.client.Get(ctx, "summary:"+key)
	if result.Err() == redis.Nil {
		return "", false
	}
	if result.Err() != nil {
		logger.Warn("summary cache read failed", "error", result.Err())
		return "", false
	}
	return result.Val(), true
}

func (r *Redis) Set(ctx context.Context, key, message string) {
	if err := r.client.Set(ctx, "summary:"+key, message, r.ttl).Err(); err != nil {
		logger.Warn("summary cache write failed", "error", err)
	}
}
