package cache

import (
	"context"
	"time"
)

// Cache is the minimal cache contract used across the server
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Config cache configuration
type Config struct {
	// DefaultTTL applied when Set is called with ttl <= 0
	DefaultTTL time.Duration
	// CleanupInterval for expired entries in the local cache
	CleanupInterval time.Duration
	// LRUSize bounds the hot-entry LRU layer; 0 disables it
	LRUSize int
}

// NewCache builds a cache from configuration. When LRUSize is set the local
// TTL cache is fronted by a bounded LRU so hot lookups skip expiry bookkeeping.
func NewCache(cfg Config) (Cache, error) {
	local := NewLocalCache(cfg)
	if cfg.LRUSize <= 0 {
		return local, nil
	}
	return newLayeredCache(cfg.LRUSize, local)
}
