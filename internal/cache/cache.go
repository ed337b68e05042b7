package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"gymdesk/internal/logger"
)

const scheduleKey = "schedule:upcoming"

// Client caches the public trainings listing, the hottest read in the
// system. Mutating a training invalidates the key; a short TTL bounds
// staleness if an invalidation is ever lost.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// NewWithRedis wires an existing client, used by tests with redismock.
func NewWithRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

func (c *Client) GetSchedule(ctx context.Context) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, scheduleKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debugf("schedule cache read failed: %v", err)
		}
		return nil, false
	}

	return payload, true
}

func (c *Client) SetSchedule(ctx context.Context, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, scheduleKey, payload, c.ttl).Err(); err != nil {
		logger.Debugf("schedule cache write failed: %v", err)
	}
}

func (c *Client) InvalidateSchedule(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, scheduleKey).Err(); err != nil {
		logger.Debugf("schedule cache invalidation failed: %v", err)
	}
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
