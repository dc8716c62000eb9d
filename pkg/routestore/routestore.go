package routestore

import (
	"context"
	"strings"
	"time"

	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

const (
	STORE_MEMORY = "memory"
	STORE_REDIS  = "redis"
)

type Config struct {
	Kind          string
	Size          int
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New. Repository selected by cfg.Kind
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Repository, error) {
	switch strings.ToLower(cfg.Kind) {
	case STORE_MEMORY, "":
		return NewLRURepository(cfg.Size)
	case STORE_REDIS:
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		logger.Info("redis route store ready", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.TTL))
		return NewRedisRepository(client, cfg.TTL, logger), nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown route store %q", cfg.Kind)
	}
}

var (
	_ Repository = (*LRURepository)(nil)
	_ Repository = (*RedisRepository)(nil)
)
