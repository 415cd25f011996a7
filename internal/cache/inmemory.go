package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// InMemoryCache implements Cache on top of go-cache.
type InMemoryCache struct {
	cache *gocache.Cache
}

func NewInMemoryCache(defaultExpiration time.Duration) *InMemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = 5 * time.Minute
	}
	return &InMemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set stores value. A zero expiration uses the cache default.
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}
