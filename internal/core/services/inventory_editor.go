// internal/core/services/inventory_editor.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// InventoryEditor validates form input and upserts a single record
type InventoryEditor struct {
	store  ports.CatalogStore
	logger *slog.Logger
}

var _ ports.InventoryEditor = (*InventoryEditor)(nil)

// NewInventoryEditor creates a new inventory editor
func NewInventoryEditor(store ports.CatalogStore, logger *slog.Logger) *InventoryEditor {
	return &InventoryEditor{
		store:  store,
		logger: logger.With(slog.String("service", "inventory_editor")),
	}
}

// Save upserts the record described by form. Records without an id are
// inserted under a fresh one; there is no version check, so the last
// writer wins.
func (e *InventoryEditor) Save(ctx context.Context, form *domain.MedicineForm) (*domain.Medicine, error) {
	if form == nil {
		return nil, domain.ErrEditorClosed
	}
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	m := form.ToMedicine()
	m.PrepareForStorage()

	if err := e.store.Upsert(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save medicine: %w", err)
	}

	e.logger.InfoContext(ctx, "medicine saved",
		slog.String("id", m.ID.String()),
		slog.String("barcode", m.Barcode),
		slog.Int("stock", m.Stock))

	return m, nil
}

// SaveAll saves each form independently and returns how many succeeded
// along with the per-row errors.
func (e *InventoryEditor) SaveAll(ctx context.Context, forms []*domain.MedicineForm) (int, []error) {
	var (
		saved int
		errs  []error
	)
	for i, form := range forms {
		if _, err := e.Save(ctx, form); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		saved++
	}

	e.logger.InfoContext(ctx, "bulk save finished",
		slog.Int("saved", saved),
		slog.Int("failed", len(errs)))

	return saved, errs
}
