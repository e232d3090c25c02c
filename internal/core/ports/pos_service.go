// internal/core/ports/pos_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

// POSService is the terminal controller as seen by the HTTP layer
type POSService interface {
	State() domain.State
	SwitchView(ctx context.Context, view domain.View) error
	RefreshCatalog(ctx context.Context) domain.Catalog
	Scan(ctx context.Context, text string) domain.Cart
	AddToCart(ctx context.Context, id uuid.UUID) (domain.Cart, error)
	RemoveFromCart(ctx context.Context, id uuid.UUID) domain.Cart
	Checkout(ctx context.Context, confirm Confirmer) (domain.CheckoutResult, error)
	OpenEditor(ctx context.Context, id uuid.UUID) (*domain.MedicineForm, error)
	CloseEditor(ctx context.Context)
	SaveMedicine(ctx context.Context, form *domain.MedicineForm) error
}

// InventoryEditor saves a single medicine record from form input
type InventoryEditor interface {
	Save(ctx context.Context, form *domain.MedicineForm) (*domain.Medicine, error)
}
