// internal/cache/cache.go

// Package cache implements the cache-aside store shared by all provider
// queries. Keys are derived deterministically from (source, endpoint, folded
// parameters), so concurrent identical queries are idempotent last-writer-wins
// operations.
package cache

import (
	"context"

	"bookrec/internal/common/config"
	"bookrec/internal/common/database"
	"bookrec/internal/common/logger"
	"bookrec/internal/common/metrics"
)

// KindSearch tags live search payloads; the TTL table in configuration maps
// tags to expirations.
const (
	KindSearch   = "search"
	KindRatings  = "ratings"
	KindTrending = "trending"
)

// Store is the get/set-with-TTL contract over Redis. Cache unavailability is
// not an error from the caller's perspective: Get degrades to a miss and Set
// to a no-op, so a down cache only costs extra provider calls.
type Store struct {
	redis  *database.RedisClient
	ttl    config.CacheConfig
	logger logger.Logger
}

func NewStore(redis *database.RedisClient, ttl config.CacheConfig, log logger.Logger) *Store {
	return &Store{
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

// Get returns the cached payload for key, or ok=false on a miss or a cache
// error.
func (s *Store) Get(ctx context.Context, kind, key string) ([]byte, bool) {
	val, err := s.redis.Get(ctx, key)
	if err != nil {
		metrics.CacheOpsTotal.WithLabelValues(kind, "miss").Inc()
		return nil, false
	}
	metrics.CacheOpsTotal.WithLabelValues(kind, "hit").Inc()
	return []byte(val), true
}

// Set stores payload under key with the TTL configured for kind.
func (s *Store) Set(ctx context.Context, kind, key string, payload []byte) {
	if err := s.redis.Set(ctx, key, payload, s.ttl.TTLFor(kind)); err != nil {
		s.logger.Warn("cache set failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		metrics.CacheOpsTotal.WithLabelValues(kind, "set_error").Inc()
		return
	}
	metrics.CacheOpsTotal.WithLabelValues(kind, "set").Inc()
}
