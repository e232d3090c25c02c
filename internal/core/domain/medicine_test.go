package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMedicineForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      *domain.MedicineForm
		wantError bool
		errorMsg  string
	}{
		{
			name: "complete_form",
			form: &domain.MedicineForm{
				Barcode: "111",
				Name:    "Paracetamol",
				Price:   ptr(decimal.NewFromInt(5000)),
				Stock:   ptr(20),
			},
		},
		{
			name: "zero_price_and_stock_are_present",
			form: &domain.MedicineForm{
				Barcode: "111",
				Name:    "Sample",
				Price:   ptr(decimal.Zero),
				Stock:   ptr(0),
			},
		},
		{
			name: "missing_barcode",
			form: &domain.MedicineForm{
				Name:  "Paracetamol",
				Price: ptr(decimal.NewFromInt(5000)),
				Stock: ptr(20),
			},
			wantError: true,
			errorMsg:  "barcode is required",
		},
		{
			name: "missing_name",
			form: &domain.MedicineForm{
				Barcode: "111",
				Price:   ptr(decimal.NewFromInt(5000)),
				Stock:   ptr(20),
			},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name: "missing_price",
			form: &domain.MedicineForm{
				Barcode: "111",
				Name:    "Paracetamol",
				Stock:   ptr(20),
			},
			wantError: true,
			errorMsg:  "price is required",
		},
		{
			name: "missing_stock",
			form: &domain.MedicineForm{
				Barcode: "111",
				Name:    "Paracetamol",
				Price:   ptr(decimal.NewFromInt(5000)),
			},
			wantError: true,
			errorMsg:  "stock is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.EqualError(t, err, tt.errorMsg)
				assert.True(t, domain.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMedicineForm_RoundTrip(t *testing.T) {
	m := domain.Medicine{
		ID:      uuid.New(),
		Barcode: "111",
		Name:    "Paracetamol",
		Price:   decimal.NewFromInt(5000),
		Stock:   20,
	}

	form := domain.NewMedicineForm(m)
	require.NoError(t, form.Validate())

	got := form.ToMedicine()
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Barcode, got.Barcode)
	assert.Equal(t, m.Name, got.Name)
	assert.True(t, m.Price.Equal(got.Price))
	assert.Equal(t, m.Stock, got.Stock)

	*form.Stock = 1
	assert.Equal(t, 20, m.Stock, "form edits must not leak into the record")
}

func TestMedicine_PrepareForStorage(t *testing.T) {
	t.Run("assigns_id_when_absent", func(t *testing.T) {
		m := &domain.Medicine{Name: "Paracetamol"}
		m.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
		assert.False(t, m.UpdatedAt.IsZero())
	})

	t.Run("keeps_existing_id_and_created_at", func(t *testing.T) {
		id := uuid.New()
		created := time.Now().Add(-48 * time.Hour)
		m := &domain.Medicine{ID: id, CreatedAt: created}
		m.PrepareForStorage()

		assert.Equal(t, id, m.ID)
		assert.Equal(t, created, m.CreatedAt)
		assert.True(t, m.UpdatedAt.After(created))
	})
}

func TestMedicine_IsLowStock(t *testing.T) {
	tests := []struct {
		stock    int
		expected bool
	}{
		{stock: 20, expected: false},
		{stock: 11, expected: false},
		{stock: 10, expected: true},
		{stock: 0, expected: true},
		{stock: -3, expected: true},
	}

	for _, tt := range tests {
		m := domain.Medicine{Stock: tt.stock}
		assert.Equal(t, tt.expected, m.IsLowStock(domain.DefaultLowStockThreshold), "stock=%d", tt.stock)
	}
}
