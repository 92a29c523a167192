package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis instance, for deployments that
// run more than one process and want a shared classification cache.
// Every operation is bounded by a short timeout; any Redis error is
// swallowed and reported as a miss (reads) or dropped (writes), so a
// degraded Redis can never fail a classification.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	opTTL  time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedis connects to redisURL (redis://host:port/db) and verifies
// connectivity with a ping. A ttl <= 0 falls back to DefaultTTL.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, opTTL: 250 * time.Millisecond}, nil
}

// Get implements Store.
func (r *Redis) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTTL)
	defer cancel()

	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil (true miss) and transport errors look the same
		// to callers: no cached value.
		r.misses.Add(1)
		return nil, false
	}
	r.hits.Add(1)
	return payload, true
}

// Set implements Store.
func (r *Redis) Set(key string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTTL)
	defer cancel()
	_ = r.client.Set(ctx, key, payload, r.ttl).Err()
}

// Stats implements Store. Entry counts are process-local hit/miss
// counters plus the server-side key count when reachable.
func (r *Redis) Stats() Stats {
	s := Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTTL)
	defer cancel()
	if n, err := r.client.DBSize(ctx).Result(); err == nil {
		s.Entries = int(n)
	}
	return s
}

// Clear implements Store.
func (r *Redis) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTTL)
	defer cancel()
	_ = r.client.FlushDB(ctx).Err()
	r.hits.Store(0)
	r.misses.Store(0)
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.client.Close() }
