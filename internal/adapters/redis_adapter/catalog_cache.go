// internal/adapters/redis_adapter/catalog_cache.go
package redis_a

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// CatalogKey holds the cached result of ListAll
var CatalogKey = BuildKey(PrefixCatalog, "all")

// CachedCatalogStore is a read-through cache in front of a CatalogStore.
// Every write is passed to the inner store and then drops the cached list,
// so the next ListAll after a write always sees the store.
type CachedCatalogStore struct {
	inner  ports.CatalogStore
	cache  ports.CacheRepository
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ ports.CatalogStore = (*CachedCatalogStore)(nil)

// NewCachedCatalogStore wraps inner with a cache entry that lives for ttl
func NewCachedCatalogStore(inner ports.CatalogStore, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *CachedCatalogStore {
	return &CachedCatalogStore{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "catalog_cache")),
	}
}

// ListAll serves the catalog from Redis, loading it from the inner store
// on a miss. Concurrent misses share one store query.
func (s *CachedCatalogStore) ListAll(ctx context.Context) ([]domain.Medicine, error) {
	v, err, shared := s.group.Do(CatalogKey, func() (interface{}, error) {
		var medicines []domain.Medicine
		var fetchErr error
		err := s.cache.GetOrSet(ctx, CatalogKey, &medicines, func() (interface{}, error) {
			fresh, err := s.inner.ListAll(ctx)
			fetchErr = err
			return fresh, err
		}, s.ttl)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if err == nil {
			return medicines, nil
		}

		// Redis trouble must not take the till down.
		s.logger.WarnContext(ctx, "catalog cache unavailable, reading store",
			slog.String("error", err.Error()))
		return s.inner.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.logger.DebugContext(ctx, "catalog load shared")
	}

	// Callers own their slice.
	medicines := v.([]domain.Medicine)
	return append([]domain.Medicine(nil), medicines...), nil
}

// UpdateStock writes through and invalidates the cached list
func (s *CachedCatalogStore) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	if err := s.inner.UpdateStock(ctx, id, newStock); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Upsert writes through and invalidates the cached list
func (s *CachedCatalogStore) Upsert(ctx context.Context, m *domain.Medicine) error {
	if err := s.inner.Upsert(ctx, m); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// InsertTransaction writes through. The catalog is unaffected.
func (s *CachedCatalogStore) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	return s.inner.InsertTransaction(ctx, txn)
}

func (s *CachedCatalogStore) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, CatalogKey); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate catalog cache",
			slog.String("error", err.Error()))
	}
}
