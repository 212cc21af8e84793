package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/config"
)

// Client wraps the Redis connection. It backs the status-summary dashboard
// cache; all cached reads are advisory and may lag writes.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Status-summary cache ──

const summaryPrefix = "workflow:summary:"

// GetSummary returns the cached status-summary JSON for an academic year,
// or "" on a miss.
func (c *Client) GetSummary(ctx context.Context, academicYearID string) (string, error) {
	val, err := c.rdb.Get(ctx, summaryPrefix+academicYearID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

// SetSummary caches the status-summary JSON for an academic year.
func (c *Client) SetSummary(ctx context.Context, academicYearID, payload string, ttl time.Duration) error {
	return c.rdb.Set(ctx, summaryPrefix+academicYearID, payload, ttl).Err()
}

// InvalidateSummary drops the cached summary after a workflow mutation.
func (c *Client) InvalidateSummary(ctx context.Context, academicYearID string) error {
	return c.rdb.Del(ctx, summaryPrefix+academicYearID).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
