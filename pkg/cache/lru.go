package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// layeredCache fronts a backing cache with a bounded LRU. Promoted entries
// carry no TTL and live until the next Set/Delete of the same key, so only
// put invalidation-safe values (catalog rows, immutable lookups) through it.
type layeredCache struct {
	hot     *lru.Cache[string, interface{}]
	backing Cache
}

func newLayeredCache(size int, backing Cache) (Cache, error) {
	hot, err := lru.New[string, interface{}](size)
	if err != nil {
		return nil, err
	}
	return &layeredCache{hot: hot, backing: backing}, nil
}

func (l *layeredCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if v, ok := l.hot.Get(key); ok {
		return v, true
	}
	v, ok := l.backing.Get(ctx, key)
	if ok {
		l.hot.Add(key, v)
	}
	return v, ok
}

func (l *layeredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	l.hot.Remove(key)
	return l.backing.Set(ctx, key, value, ttl)
}

func (l *layeredCache) Delete(ctx context.Context, key string) error {
	l.hot.Remove(key)
	return l.backing.Delete(ctx, key)
}
