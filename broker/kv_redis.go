package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV against a Redis endpoint (REDIS_URL). Grounded
// on agent/cache_redis.go's RedisCache: key prefixing, Ping-on-construct
// with an actionable error. Always builds a single-node client; Redis
// Cluster endpoints are not supported.
type RedisKV struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisKV connects to addr (a redis:// or rediss:// URL, or a plain
// host:port) and verifies the connection with a Ping, matching the
// teacher's "fail fast at construction with a Fix: hint" idiom.
func NewRedisKV(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		// Not URL-shaped: treat as a bare host:port.
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf(
			"connecting to redis at %s: %w\n"+
				"Fix:\n"+
				"  1. Verify REDIS_URL points at a reachable redis instance\n"+
				"  2. Check network/firewall rules between this process and redis\n"+
				"  3. If redis requires auth, include credentials in REDIS_URL",
			addr, err)
	}

	return &RedisKV{client: client, prefix: prefix}, nil
}

func (r *RedisKV) makeKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.makeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.makeKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.makeKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
