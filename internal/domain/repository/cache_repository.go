package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get returns the cached value, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Incr atomically increments the integer stored at key (missing keys start at 0)
	// and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}
