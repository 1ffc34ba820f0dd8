package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type localCache struct {
	store      *gocache.Cache
	defaultTTL time.Duration
}

// NewLocalCache creates an in-process TTL cache
func NewLocalCache(cfg Config) Cache {
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &localCache{
		store:      gocache.New(defaultTTL, cleanup),
		defaultTTL: defaultTTL,
	}
}

func (l *localCache) Get(_ context.Context, key string) (interface{}, bool) {
	return l.store.Get(key)
}

func (l *localCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = l.defaultTTL
	}
	l.store.Set(key, value, ttl)
	return nil
}

func (l *localCache) Delete(_ context.Context, key string) error {
	l.store.Delete(key)
	return nil
}
