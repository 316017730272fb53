package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/usecase/dto"
)

const networkGenerationKey = "network:gen"

func networkSnapshotKey(gen int64) string {
	return fmt.Sprintf("network:%d", gen)
}

// networkCache keeps the whole-network view between mutations.
// Snapshots are stored per generation; every mutation bumps the generation, so a view
// computed before a mutation can only land under a key nobody reads anymore.
// A nil repository disables it; cache failures are logged and otherwise ignored.
type networkCache struct {
	repo   repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func newNetworkCache(repo repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *networkCache {
	return &networkCache{repo: repo, ttl: ttl, logger: logger}
}

func (c *networkCache) enabled() bool {
	return c != nil && c.repo != nil && c.ttl > 0
}

// generation reads the current generation. ok is false when the cache is off or unreadable,
// in which case nothing should be read from or written to it.
func (c *networkCache) generation(ctx context.Context) (gen int64, ok bool) {
	if !c.enabled() {
		return 0, false
	}

	data, err := c.repo.Get(ctx, networkGenerationKey)
	if err != nil {
		c.logger.Warn("Failed to read network cache generation", zap.Error(err))
		return 0, false
	}
	if data == nil {
		return 0, true
	}

	gen, err = strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		c.logger.Warn("Malformed network cache generation", zap.ByteString("value", data), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (c *networkCache) get(ctx context.Context, gen int64) *dto.WholeSubwayResponse {
	data, err := c.repo.Get(ctx, networkSnapshotKey(gen))
	if err != nil {
		c.logger.Warn("Failed to read network from cache", zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var resp dto.WholeSubwayResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("Failed to decode cached network", zap.Error(err))
		return nil
	}
	return &resp
}

// set stores resp under the generation that was current before it was computed.
func (c *networkCache) set(ctx context.Context, gen int64, resp *dto.WholeSubwayResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode network for cache", zap.Error(err))
		return
	}
	if err := c.repo.Set(ctx, networkSnapshotKey(gen), data, c.ttl); err != nil {
		c.logger.Warn("Failed to write network to cache", zap.Error(err))
	}
}

// invalidate starts a new generation and drops the snapshot it supersedes.
func (c *networkCache) invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	gen, err := c.repo.Incr(ctx, networkGenerationKey)
	if err != nil {
		c.logger.Warn("Failed to invalidate cached network", zap.Error(err))
		return
	}
	if err := c.repo.Delete(ctx, networkSnapshotKey(gen-1)); err != nil {
		c.logger.Warn("Failed to drop superseded network snapshot", zap.Int64("generation", gen-1), zap.Error(err))
	}
}
