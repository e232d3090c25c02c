// internal/core/ports/catalog_store.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

// CatalogStore is the remote store holding medicine and sale records.
// Implementations make no atomicity promise across calls.
type CatalogStore interface {
	ListAll(ctx context.Context) ([]domain.Medicine, error)
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error
	Upsert(ctx context.Context, medicine *domain.Medicine) error
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
}
