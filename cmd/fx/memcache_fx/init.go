package memcache_fx

import (
	"go.uber.org/fx"

	"gymstar/internal/config"
	mem "gymstar/pkg/memcache"
)

var Module = fx.Provide(provideCatalogCache)

func provideCatalogCache(cfg *config.Config) mem.CatalogCache {
	return mem.NewCatalogCache(cfg.Catalog.CacheTTL)
}
