package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"cloudvision_backend/internal/feature/imageanalysis/adapters/handoff"
	"cloudvision_backend/internal/feature/imageanalysis/usecase"
)

// NewResultStore creates a ResultStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process cache.
func NewResultStore(rdb *redis.Client, ttl time.Duration) usecase.ResultStore {
	if rdb != nil {
		return handoff.NewRedisResultStore(rdb, "analysis", ttl)
	}
	return handoff.NewMemoryResultStore(ttl)
}
