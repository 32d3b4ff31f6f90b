// pkg/memcache/catalog_cache.go
package memcache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CatalogCache keeps read-mostly catalog values for a bounded time.
// Writers call Invalidate or Flush after changing the underlying rows.
type CatalogCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Invalidate(key string)
	Flush()
}

type catalogCache struct {
	c *cache.Cache
}

func NewCatalogCache(ttl time.Duration) CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &catalogCache{c: cache.New(ttl, 2*ttl)}
}

func (s *catalogCache) Get(key string) (any, bool) {
	return s.c.Get(key)
}

func (s *catalogCache) Set(key string, value any) {
	s.c.SetDefault(key, value)
}

func (s *catalogCache) Invalidate(key string) {
	s.c.Delete(key)
}

func (s *catalogCache) Flush() {
	s.c.Flush()
}
