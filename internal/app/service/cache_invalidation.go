package service

import (
	"context"

	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/pkg/logger"
)

// invalidateCatalogCache drops every cached list and detail payload.
// Write paths call this after commit; cached entries otherwise survive
// until their TTL and would serve stale data.
func invalidateCatalogCache(ctx context.Context, store cache.Store) {
	if store == nil {
		return
	}
	for _, prefix := range []string{cache.ListKeyPrefix, cache.DetailKeyPrefix} {
		if err := store.DeleteByPrefix(ctx, prefix); err != nil {
			logger.Warn("Catalog cache invalidation failed", map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			})
		}
	}
}
