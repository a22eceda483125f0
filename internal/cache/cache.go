package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client with the few operations the service needs.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// incrWindowScript sets the expiry only on the first increment. It runs as a
// script so the counter never exists without a TTL, and avoids EXPIRE NX,
// which needs Redis 7.
var incrWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// IncrWindow increments the counter at key and returns the new value. The
// key expires one window after its first increment, which gives fixed-window
// semantics: later increments never extend the TTL.
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
