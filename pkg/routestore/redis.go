package routestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "arterial:route:"
	redisIndexKey  = "arterial:routes"
)

// RedisRepository. routes stored as json with a ttl, plus a sorted set index by creation time
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// NewRedisRepository. ttl <= 0 keeps routes forever
func NewRedisRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRepository {
	return &RedisRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (rr *RedisRepository) key(id string) string {
	return redisKeyPrefix + id
}

func (rr *RedisRepository) Save(ctx context.Context, r StoredRoute) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("save route: json marshal: %w", err)
	}

	_, err = rr.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, rr.key(r.ID), data, rr.ttl)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(r.CreatedAt.UnixNano()), Member: r.ID})
		if rr.ttl > 0 {
			expired := time.Now().Add(-rr.ttl).UnixNano()
			pipe.ZRemRangeByScore(ctx, redisIndexKey, "-inf", fmt.Sprintf("(%d", expired))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save route %s: %w", r.ID, err)
	}
	return nil
}

func (rr *RedisRepository) Get(ctx context.Context, id string) (StoredRoute, error) {
	data, err := rr.client.Get(ctx, rr.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredRoute{}, util.WrapErrorf(nil, util.ErrNotFound, "route %s not found", id)
	}
	if err != nil {
		return StoredRoute{}, fmt.Errorf("get route %s: %w", id, err)
	}

	var r StoredRoute
	if err := json.Unmarshal(data, &r); err != nil {
		return StoredRoute{}, fmt.Errorf("get route %s: json unmarshal: %w", id, err)
	}
	return r, nil
}

func (rr *RedisRepository) List(ctx context.Context, limit int) ([]StoredRoute, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := rr.client.ZRevRange(ctx, redisIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	if len(ids) == 0 {
		return []StoredRoute{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rr.key(id)
	}
	values, err := rr.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	routes := make([]StoredRoute, 0, len(values))
	stale := make([]interface{}, 0)
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// expired between the index read and the fetch
			stale = append(stale, ids[i])
			continue
		}
		var r StoredRoute
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			rr.logger.Warn("skipping undecodable stored route", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		routes = append(routes, r)
	}

	if len(stale) > 0 {
		if err := rr.client.ZRem(ctx, redisIndexKey, stale...).Err(); err != nil {
			rr.logger.Warn("failed to prune route index", zap.Error(err))
		}
	}
	return routes, nil
}

func (rr *RedisRepository) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := rr.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, rr.key(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete route %s: %w", id, err)
	}
	if del.Val() == 0 {
		return util.WrapErrorf(nil, util.ErrNotFound, "route %s not found", id)
	}
	return nil
}

func (rr *RedisRepository) Close() error {
	return rr.client.Close()
}
