package cache

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewQueryCache builds the query cache selected by cache.backend.
// The returned closer releases the backend; cache is nil for backend "none".
// When Redis is unreachable the in-memory cache is used instead.
func NewQueryCache(cfg *config.Config, logger *zap.Logger) (shared.QueryCache, io.Closer, error) {
	switch cfg.Cache.Backend {
	case "none":
		logger.Info("Query cache disabled")
		return nil, nopCloser{}, nil
	case "redis":
		c, err := NewRedisQueryCache(RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Cache.Prefix)
		if err == nil {
			logger.Info("Using Redis query cache", zap.String("addr", cfg.Redis.Addr()))
			return c, c, nil
		}
		logger.Warn("Redis unavailable, falling back to in-memory query cache. "+
			"Instances will not share cached results.",
			zap.Error(err))
		fallthrough
	case "memory":
		c := NewInMemoryQueryCache(cfg.Cache.TTL)
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
