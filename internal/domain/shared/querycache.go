package shared

import (
	"context"
	"fmt"
	"time"
)

// QueryCache is a short-lived read-through cache for query results, keyed by
// logical query identity (contact id, season id, ...). It never holds
// authoritative state; mutations invalidate the affected keys.
type QueryCache interface {
	// Get decodes the cached value for key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cached serves key from c when present, otherwise calls load and stores its
// result. Cache failures degrade to a direct load; they never fail the read.
func Cached[T any](ctx context.Context, c QueryCache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	var cached T
	if hit, err := c.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	_ = c.Set(ctx, key, v, ttl)
	return v, nil
}

// Logical query identities used as cache keys
const (
	CachePrefixLedger            = "ledger:"
	CachePrefixContactDeliveries = "contact-deliveries:"
	CachePrefixSeasonReport      = "season-report:"
	CachePrefixSeasons           = "seasons:"
)

// CacheKey joins a prefix with a resource id
func CacheKey(prefix string, id fmt.Stringer) string {
	return prefix + id.String()
}
