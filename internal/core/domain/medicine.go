// internal/core/domain/medicine.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level at or below which a medicine is flagged.
const DefaultLowStockThreshold = 10

// Medicine represents a single catalog record
type Medicine struct {
	ID        uuid.UUID       `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLowStock reports whether stock is at or below threshold
func (m Medicine) IsLowStock(threshold int) bool {
	return m.Stock <= threshold
}

// PrepareForStorage assigns an id to new records and stamps timestamps
func (m *Medicine) PrepareForStorage() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// MedicineForm is the editable state of the inventory form. Nil pointers
// mean the field was left empty.
type MedicineForm struct {
	ID      uuid.UUID        `json:"id,omitempty"`
	Barcode string           `json:"barcode"`
	Name    string           `json:"name"`
	Price   *decimal.Decimal `json:"price"`
	Stock   *int             `json:"stock"`
}

// NewMedicineForm returns a form prefilled from an existing record
func NewMedicineForm(m Medicine) *MedicineForm {
	price := m.Price
	stock := m.Stock
	return &MedicineForm{
		ID:      m.ID,
		Barcode: m.Barcode,
		Name:    m.Name,
		Price:   &price,
		Stock:   &stock,
	}
}

// Validate checks that every required field is present
func (f *MedicineForm) Validate() error {
	if f.Barcode == "" {
		return &ValidationError{Field: "barcode"}
	}
	if f.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if f.Price == nil {
		return &ValidationError{Field: "price"}
	}
	if f.Stock == nil {
		return &ValidationError{Field: "stock"}
	}
	return nil
}

// ToMedicine converts a validated form into a record ready for upsert
func (f *MedicineForm) ToMedicine() *Medicine {
	m := &Medicine{
		ID:      f.ID,
		Barcode: f.Barcode,
		Name:    f.Name,
	}
	if f.Price != nil {
		m.Price = *f.Price
	}
	if f.Stock != nil {
		m.Stock = *f.Stock
	}
	return m
}
