package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront-server/internal/config"
	"storefront-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

var ErrDisabled = errors.New("redis is not enabled")

// Client wraps the Redis connection shared by the KV backend and the
// leaderboard. A nil *Client is a valid disabled client.
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient connects and pings. It returns (nil, nil) when Redis is disabled.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	ctx := observability.WithFields(context.Background(),
		observability.Field{Key: "redis_host", Value: cfg.Host},
		observability.Field{Key: "redis_port", Value: cfg.Port},
		observability.Field{Key: "redis_db", Value: cfg.DB},
	)
	if !cfg.Enabled {
		logger.Info(ctx, "redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info(ctx, "connected to redis")
	return Wrap(client, logger), nil
}

// Wrap adopts an existing connection.
func Wrap(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// Raw returns the underlying connection, or nil when disabled.
func (c *Client) Raw() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.client.Close()
}

// SetScore sets member's score in a sorted set. Setting the same score
// twice is a no-op.
func (c *Client) SetScore(ctx context.Context, key, member string, score float64) error {
	if !c.IsEnabled() {
		return ErrDisabled
	}
	return c.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

// TopWithScores returns up to n members, highest score first.
func (c *Client) TopWithScores(ctx context.Context, key string, n int64) ([]redis.Z, error) {
	if !c.IsEnabled() {
		return nil, ErrDisabled
	}
	return c.client.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
}

// AtLeast returns every member whose score is >= min, highest first.
func (c *Client) AtLeast(ctx context.Context, key string, min float64) ([]redis.Z, error) {
	if !c.IsEnabled() {
		return nil, ErrDisabled
	}
	return c.client.ZRevRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{
		Min: strconv.FormatFloat(min, 'f', -1, 64),
		Max: "+inf",
	}).Result()
}

// WindowCount drops members scored before since and returns how many remain
// along with the oldest remaining score.
func (c *Client) WindowCount(ctx context.Context, key string, since time.Time) (int64, time.Time, error) {
	if !c.IsEnabled() {
		return 0, time.Time{}, ErrDisabled
	}

	var card *redis.IntCmd
	var oldest *redis.ZSliceCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(since.UnixMilli(), 10))
		card = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to count window %s: %w", key, err)
	}

	var first time.Time
	if zs := oldest.Val(); len(zs) > 0 {
		first = time.UnixMilli(int64(zs[0].Score))
	}
	return card.Val(), first, nil
}

// WindowAdd records one hit at the given time and refreshes the key's TTL.
func (c *Client) WindowAdd(ctx context.Context, key, member string, at time.Time, ttl time.Duration) error {
	if !c.IsEnabled() {
		return ErrDisabled
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixMilli()), Member: member})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record hit on %s: %w", key, err)
	}
	return nil
}
