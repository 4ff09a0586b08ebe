package cache

import (
	"context"
	"fmt"
	"time"
)

// ReportCache provides short-TTL caching of computed report payloads.
// Every derivation is a pure read-then-compute, so a stale-by-seconds
// payload is always safe to serve. The cache is volatile only; nothing
// report-shaped is ever persisted.
type ReportCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewReportCache creates a report cache. redis may be nil (caching
// disabled), and a non-positive ttl also disables caching.
func NewReportCache(redis *RedisClient, ttl time.Duration) *ReportCache {
	return &ReportCache{redis: redis, ttl: ttl}
}

// Enabled reports whether cache reads/writes will do anything.
func (c *ReportCache) Enabled() bool {
	return c.redis != nil && c.ttl > 0
}

// Get retrieves a cached report payload into dest.
// Returns true only on a usable hit.
func (c *ReportCache) Get(ctx context.Context, accountID, report, params string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	if err := c.redis.Get(ctx, reportKey(accountID, report, params), dest); err != nil {
		return false
	}
	return true
}

// Set caches a report payload. Failures are swallowed: the cache is an
// optimization, never a dependency.
func (c *ReportCache) Set(ctx context.Context, accountID, report, params string, payload interface{}) {
	if !c.Enabled() {
		return
	}
	_ = c.redis.Set(ctx, reportKey(accountID, report, params), payload, c.ttl)
}

// Invalidate drops one cached report for an account.
func (c *ReportCache) Invalidate(ctx context.Context, accountID, report, params string) error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Delete(ctx, reportKey(accountID, report, params))
}

func reportKey(accountID, report, params string) string {
	if params == "" {
		return fmt.Sprintf("report:%s:%s", report, accountID)
	}
	return fmt.Sprintf("report:%s:%s:%s", report, accountID, params)
}
