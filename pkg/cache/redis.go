package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/example/ordercrm/pkg/config"
)

// keySetSuffix tracks the keys written by this cache so Clear can remove
// them without flushing the whole database.
const keySetSuffix = ":keys"

// RedisCache is an alternative cache backend for deployments that already
// run Redis. Errors are logged and treated as misses; the cache is never
// a source of truth.
type RedisCache struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

func NewRedisCache(cfg *config.RedisConfig, namespace string, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		namespace: namespace,
		logger:    logger,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.namespace+":"+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	nk := c.namespace + ":" + key
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, nk, payload, ttl)
	pipe.SAdd(ctx, c.namespace+keySetSuffix, nk)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("redis cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Clear(ctx context.Context) {
	setKey := c.namespace + keySetSuffix
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		c.logger.Warn("redis cache clear failed", zap.Error(err))
		return
	}
	keys = append(keys, setKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("redis cache clear failed", zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
