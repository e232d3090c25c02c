package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

func kinds(cmds []domain.Command) []domain.CommandKind {
	var out []domain.CommandKind
	for _, c := range cmds {
		out = append(out, c.Kind)
	}
	return out
}

func stateWithParacetamol() (domain.State, domain.Medicine) {
	m := newMedicine("Paracetamol", 5000, 20)
	m.Barcode = "111"
	s := domain.NewState()
	s = domain.OnCatalogLoaded(s, domain.NewCatalog([]domain.Medicine{m}))
	return s, m
}

func TestBoot(t *testing.T) {
	_, cmds := domain.Boot(domain.NewState())
	assert.Equal(t, []domain.CommandKind{domain.CommandFetchCatalog, domain.CommandStartScanner}, kinds(cmds))

	s := domain.NewState()
	s.View = domain.ViewInventory
	_, cmds = domain.Boot(s)
	assert.Equal(t, []domain.CommandKind{domain.CommandFetchCatalog}, kinds(cmds))
}

func TestOnScan(t *testing.T) {
	s, m := stateWithParacetamol()

	s = domain.OnScan(s, "111")
	line, ok := s.Cart.Line(m.ID)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	s = domain.OnScan(s, "111")
	line, _ = s.Cart.Line(m.ID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "10000", s.Cart.Total().String())

	before := s.Cart
	s = domain.OnScan(s, "999")
	assert.Equal(t, before, s.Cart)
	assert.Empty(t, s.Notice)
}

func TestOnAddToCart(t *testing.T) {
	s, m := stateWithParacetamol()

	next, err := domain.OnAddToCart(s, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Cart.Len())

	_, err = domain.OnAddToCart(s, uuid.New())
	assert.ErrorIs(t, err, domain.ErrMedicineNotFound)
}

func TestOnViewChange(t *testing.T) {
	tests := []struct {
		name     string
		from     domain.View
		to       domain.View
		expected []domain.CommandKind
	}{
		{name: "leaving_cashier_stops_scanner", from: domain.ViewCashier, to: domain.ViewInventory, expected: []domain.CommandKind{domain.CommandStopScanner}},
		{name: "entering_cashier_starts_scanner", from: domain.ViewInventory, to: domain.ViewCashier, expected: []domain.CommandKind{domain.CommandStartScanner}},
		{name: "same_view_is_noop", from: domain.ViewCashier, to: domain.ViewCashier, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewState()
			s.View = tt.from

			next, cmds := domain.OnViewChange(s, tt.to)

			assert.Equal(t, tt.to, next.View)
			assert.Equal(t, tt.expected, kinds(cmds))
		})
	}
}

func TestOnCheckoutFinished(t *testing.T) {
	s, m := stateWithParacetamol()
	s = domain.OnScan(s, m.Barcode)

	t.Run("completed_clears_cart_and_refreshes", func(t *testing.T) {
		next, cmds := domain.OnCheckoutFinished(s, domain.CheckoutResult{Status: domain.CheckoutCompleted}, nil)
		assert.True(t, next.Cart.IsEmpty())
		assert.True(t, next.Cart.Total().IsZero())
		assert.Equal(t, []domain.CommandKind{domain.CommandFetchCatalog}, kinds(cmds))
	})

	t.Run("declined_keeps_cart", func(t *testing.T) {
		next, cmds := domain.OnCheckoutFinished(s, domain.CheckoutResult{Status: domain.CheckoutDeclined}, nil)
		assert.Equal(t, 1, next.Cart.Len())
		assert.Empty(t, cmds)
	})

	t.Run("failure_sets_notice_and_keeps_cart", func(t *testing.T) {
		next, cmds := domain.OnCheckoutFinished(s, domain.CheckoutResult{Status: domain.CheckoutFailed}, errors.New("network down"))
		assert.Equal(t, 1, next.Cart.Len())
		assert.Equal(t, "Error: network down", next.Notice)
		assert.Empty(t, cmds)
	})
}

func TestOnSaveRequested(t *testing.T) {
	s := domain.OnEditorOpened(domain.NewState(), nil)
	require.NotNil(t, s.Editor)

	_, cmds, err := domain.OnSaveRequested(s, &domain.MedicineForm{Name: "No barcode"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Empty(t, cmds)

	form := domain.NewMedicineForm(newMedicine("Paracetamol", 5000, 20))
	_, cmds, err = domain.OnSaveRequested(s, form)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, domain.CommandSaveMedicine, cmds[0].Kind)
	assert.Same(t, form, cmds[0].Form)
}

func TestOnMedicineSaved(t *testing.T) {
	s := domain.OnEditorOpened(domain.NewState(), nil)

	next, cmds := domain.OnMedicineSaved(s, nil)
	assert.Nil(t, next.Editor)
	assert.Equal(t, []domain.CommandKind{domain.CommandFetchCatalog}, kinds(cmds))

	next, cmds = domain.OnMedicineSaved(s, errors.New("duplicate key"))
	assert.NotNil(t, next.Editor)
	assert.Equal(t, "Error: duplicate key", next.Notice)
	assert.Empty(t, cmds)
}
