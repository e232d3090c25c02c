// internal/core/services/catalog.go
package services

import (
	"context"
	"iter"
	"log/slog"
	"sync"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// CatalogCache mirrors the catalog store in memory
type CatalogCache struct {
	store  ports.CatalogStore
	logger *slog.Logger

	mu      sync.RWMutex
	catalog domain.Catalog
}

// NewCatalogCache creates an empty cache over store
func NewCatalogCache(store ports.CatalogStore, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		store:  store,
		logger: logger.With(slog.String("service", "catalog")),
	}
}

// Refresh reloads every record from the store. A failed fetch leaves the
// cache empty and is only logged.
func (c *CatalogCache) Refresh(ctx context.Context) domain.Catalog {
	records, err := c.store.ListAll(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch catalog, cache emptied",
			slog.String("error", err.Error()))
		records = nil
	}

	catalog := domain.NewCatalog(records)

	c.mu.Lock()
	c.catalog = catalog
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "catalog refreshed", slog.Int("count", catalog.Len()))
	return catalog
}

// Snapshot returns the last loaded catalog
func (c *CatalogCache) Snapshot() domain.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog
}

// Filter matches names against keyword, ignoring case
func (c *CatalogCache) Filter(keyword string) iter.Seq[domain.Medicine] {
	return c.Snapshot().Filter(keyword)
}
