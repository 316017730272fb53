package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/pkg/errors"
	"go.uber.org/zap"
)

// keyPrefix namespaces every key this service writes.
const keyPrefix = "subway:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return NewCacheRepositoryFromClient(redis.Client(), redis.logger)
}

// NewCacheRepositoryFromClient builds the repository on an existing client.
func NewCacheRepositoryFromClient(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: get %s: %w", errors.ErrCacheError, key, err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: set %s: %w", errors.ErrCacheError, key, err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, keyPrefix+key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: delete %s: %w", errors.ErrCacheError, key, err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Incr(ctx, keyPrefix+key).Result()
	if err != nil {
		r.logger.Error("Failed to increment cache counter", zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("%w: incr %s: %w", errors.ErrCacheError, key, err)
	}

	r.logger.Debug("Cache counter incremented", zap.String("key", key), zap.Int64("value", val))
	return val, nil
}
