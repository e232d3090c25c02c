package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

func newMedicine(name string, price int64, stock int) domain.Medicine {
	return domain.Medicine{
		ID:      uuid.New(),
		Barcode: name + "-code",
		Name:    name,
		Price:   decimal.NewFromInt(price),
		Stock:   stock,
	}
}

func TestCart_Add(t *testing.T) {
	paracetamol := newMedicine("Paracetamol", 5000, 20)
	amoxicillin := newMedicine("Amoxicillin", 12000, 8)

	tests := []struct {
		name          string
		adds          []domain.Medicine
		expectedLines []int
	}{
		{
			name:          "single_add_creates_line_with_quantity_one",
			adds:          []domain.Medicine{paracetamol},
			expectedLines: []int{1},
		},
		{
			name:          "same_medicine_twice_merges_into_one_line",
			adds:          []domain.Medicine{paracetamol, paracetamol},
			expectedLines: []int{2},
		},
		{
			name:          "distinct_medicines_keep_insertion_order",
			adds:          []domain.Medicine{amoxicillin, paracetamol, amoxicillin},
			expectedLines: []int{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.Cart{}
			for _, m := range tt.adds {
				cart = cart.Add(m)
			}

			lines := cart.Lines()
			require.Len(t, lines, len(tt.expectedLines))
			for i, qty := range tt.expectedLines {
				assert.Equal(t, qty, lines[i].Quantity)
			}
		})
	}
}

func TestCart_AddDoesNotMutateReceiver(t *testing.T) {
	m := newMedicine("Paracetamol", 5000, 20)

	before := domain.Cart{}.Add(m)
	after := before.Add(m)

	line, ok := before.Line(m.ID)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	line, ok = after.Line(m.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestCart_AddKeepsOriginalSnapshot(t *testing.T) {
	m := newMedicine("Paracetamol", 5000, 20)
	cart := domain.Cart{}.Add(m)

	changed := m
	changed.Price = decimal.NewFromInt(9000)
	changed.Stock = 3
	cart = cart.Add(changed)

	line, ok := cart.Line(m.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Medicine.Price.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 20, line.Medicine.Stock)
}

func TestCart_Remove(t *testing.T) {
	a := newMedicine("Antasida", 3000, 15)
	b := newMedicine("Betadine", 15000, 4)

	cart := domain.Cart{}.Add(a).Add(b).Add(b)
	totalBefore := cart.Total()

	t.Run("missing_id_is_a_noop", func(t *testing.T) {
		got := cart.Remove(uuid.New())
		assert.Equal(t, cart.Len(), got.Len())
		assert.True(t, totalBefore.Equal(got.Total()))
	})

	t.Run("removes_whole_line", func(t *testing.T) {
		got := cart.Remove(b.ID)
		require.Equal(t, 1, got.Len())
		_, ok := got.Line(b.ID)
		assert.False(t, ok)
		assert.True(t, got.Total().Equal(decimal.NewFromInt(3000)))
	})
}

func TestCart_TotalTracksOperations(t *testing.T) {
	a := newMedicine("Antasida", 3000, 15)
	b := newMedicine("Betadine", 15500, 4)
	c := newMedicine("CTM", 750, 40)

	type op struct {
		add    *domain.Medicine
		remove uuid.UUID
	}

	ops := []op{
		{add: &a},
		{add: &b},
		{add: &a},
		{remove: uuid.New()},
		{add: &c},
		{remove: b.ID},
		{add: &c},
		{add: &b},
	}

	cart := domain.Cart{}
	for i, o := range ops {
		if o.add != nil {
			cart = cart.Add(*o.add)
		} else {
			cart = cart.Remove(o.remove)
		}

		expected := decimal.Zero
		for _, l := range cart.Lines() {
			expected = expected.Add(l.Medicine.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		assert.True(t, expected.Equal(cart.Total()), "step %d: expected %s, got %s", i, expected, cart.Total())
	}

	// 2×3000 + 2×750 + 1×15500
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(23000)))
}

func TestCart_Clear(t *testing.T) {
	cart := domain.Cart{}.Add(newMedicine("Paracetamol", 5000, 20))

	cleared := cart.Clear()

	assert.True(t, cleared.IsEmpty())
	assert.True(t, cleared.Total().IsZero())
	assert.Equal(t, 1, cart.Len())
}

func TestCartLine_Subtotal(t *testing.T) {
	line := domain.CartLine{
		Medicine: domain.Medicine{Price: decimal.RequireFromString("2500.50")},
		Quantity: 3,
	}

	assert.True(t, line.Subtotal().Equal(decimal.RequireFromString("7501.50")))
}

func BenchmarkCart_Add(b *testing.B) {
	meds := make([]domain.Medicine, 20)
	for i := range meds {
		meds[i] = newMedicine("Obat", int64(1000+i), 10)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cart := domain.Cart{}
		for _, m := range meds {
			cart = cart.Add(m)
		}
	}
}

func BenchmarkCart_Total(b *testing.B) {
	cart := domain.Cart{}
	for i := 0; i < 20; i++ {
		cart = cart.Add(newMedicine("Obat", int64(1000+i), 10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cart.Total()
	}
}
