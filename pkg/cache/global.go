package cache

import (
	"sync"
	"time"
)

var (
	globalCache Cache
	globalOnce  sync.Once
	globalMu    sync.RWMutex
)

// InitGlobalCache initializes the global cache instance
func InitGlobalCache(cfg Config) error {
	var err error
	globalOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		globalCache, err = NewCache(cfg)
	})
	return err
}

// GetGlobalCache returns the global cache instance, creating a default local
// cache when InitGlobalCache was never called
func GetGlobalCache() Cache {
	globalMu.RLock()
	if globalCache != nil {
		defer globalMu.RUnlock()
		return globalCache
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCache == nil {
		globalCache = NewLocalCache(Config{
			DefaultTTL:      5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		})
	}
	return globalCache
}
