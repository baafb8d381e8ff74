package rdx

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// CachedCount serves an int64 from Redis, falling back to fetch on a miss
// or when Redis is unreachable. A fetch result is written back with the
// given TTL on a best-effort basis.
func CachedCount(ctx context.Context, key string, ttl time.Duration, fetch func() (int64, error)) (int64, error) {
	if Conn != nil {
		if val, err := Conn.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	n, err := fetch()
	if err != nil {
		return 0, err
	}

	if Conn != nil {
		Conn.Set(ctx, key, strconv.FormatInt(n, 10), ttl)
	}
	return n, nil
}
