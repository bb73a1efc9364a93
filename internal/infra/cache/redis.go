package cache

import (
	"context"
	"strconv"
	"time"

	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "availability:"

// RedisAvailabilityCache stores each report under its own key with its own
// TTL. Keys embed a per-resource generation; InvalidateResource bumps the
// generation so every older entry becomes unreachable and ages out.
type RedisAvailabilityCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client redis.Cmdable, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func generationKey(id uuid.UUID) string {
	return keyPrefix + id.String() + ":gen"
}

func entryKey(id uuid.UUID, gen int64, key string) string {
	return keyPrefix + id.String() + ":" + strconv.FormatInt(gen, 10) + ":" + key
}

// generation is zero until the resource is first invalidated.
func (c *RedisAvailabilityCache) generation(ctx context.Context, id uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(id)).Int64()
	if errs.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "redis get generation")
	}
	return gen, nil
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, resourceID uuid.UUID, key string) ([]byte, bool, error) {
	gen, err := c.generation(ctx, resourceID)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.client.Get(ctx, entryKey(resourceID, gen, key)).Bytes()
	if errs.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "redis get")
	}
	return raw, true, nil
}

// Set never extends the TTL of other entries for the same resource.
func (c *RedisAvailabilityCache) Set(ctx context.Context, resourceID uuid.UUID, key string, value []byte) error {
	gen, err := c.generation(ctx, resourceID)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entryKey(resourceID, gen, key), value, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set")
	}
	return nil
}

func (c *RedisAvailabilityCache) InvalidateResource(ctx context.Context, resourceIDs ...uuid.UUID) error {
	if len(resourceIDs) == 0 {
		return nil
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range resourceIDs {
			pipe.Incr(ctx, generationKey(id))
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(err, "redis incr generation")
	}
	return nil
}

// NoopCache is used when REDIS_ADDR is empty.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uuid.UUID, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, uuid.UUID, string, []byte) error         { return nil }
func (NoopCache) InvalidateResource(context.Context, ...uuid.UUID) error        { return nil }

// NewClient returns nil when the cache is disabled.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "ping redis")
	}
	return client, nil
}

func NewAvailabilityCache(client *redis.Client, cfg config.RedisConfig) shared.AvailabilityCache {
	if client == nil {
		return NoopCache{}
	}
	return NewRedisAvailabilityCache(client, cfg.CacheTTL)
}
