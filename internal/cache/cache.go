package cache

import (
	"context"
	"encoding/json"
	"time"

	"taxengine/internal/config"
	"taxengine/internal/logger"
)

// Cache is the key/value store used for profile lookups. Implementations are
// safe for concurrent use and never return errors: a failed read is a miss.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
}

// CacheType represents the type of cache to use
type CacheType string

const (
	CacheTypeInMemory CacheType = "inmemory"
	CacheTypeRedis    CacheType = "redis"
)

// Initialize picks the cache backend from configuration. A disabled cache is
// a Noop so callers never need nil checks.
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	if !cfg.Cache.Enabled {
		log.Infow("cache disabled")
		return Noop{}
	}

	var c Cache
	switch CacheType(cfg.Cache.Type) {
	case CacheTypeRedis:
		c = NewRedisCache(cfg.Redis, cfg.Cache.TTL, log)
	default:
		c = NewInMemoryCache(cfg.Cache.TTL)
	}

	log.Infow("cache initialized", "type", cfg.Cache.Type, "ttl", cfg.Cache.TTL.String())
	return c
}

// UnmarshalCacheValue converts a cached value to T. The in-memory cache
// stores *T directly while redis returns the JSON string.
func UnmarshalCacheValue[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}

	if typed, ok := value.(*T); ok {
		return typed, true
	}

	if str, ok := value.(string); ok {
		var result T
		if err := json.Unmarshal([]byte(str), &result); err == nil {
			return &result, true
		}
	}

	return nil, false
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (interface{}, bool)            { return nil, false }
func (Noop) Set(context.Context, string, interface{}, time.Duration) {}
func (Noop) Delete(context.Context, string)                            {}
func (Noop) DeleteByPrefix(context.Context, string)                    {}
