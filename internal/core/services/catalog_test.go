// internal/core/services/catalog_test.go
package services_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/test/helpers"
	"github.com/ammerola/apotek-pos/test/mocks"
)

func TestCatalogCache_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := helpers.CreateTestMedicines(3)
	slices.Reverse(records)

	store := mocks.NewMockCatalogStore(ctrl)
	gomock.InOrder(
		store.EXPECT().ListAll(gomock.Any()).Return(records, nil),
		store.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("service unavailable")),
	)

	cache := services.NewCatalogCache(store, helpers.TestLogger())

	catalog := cache.Refresh(context.Background())
	require.Equal(t, 3, catalog.Len())
	got := slices.Collect(catalog.All())
	assert.Equal(t, "Obat 1", got[0].Name)
	assert.Equal(t, "Obat 3", got[2].Name)
	assert.Equal(t, 3, cache.Snapshot().Len())

	// a failed fetch drops the stale rows instead of keeping them
	catalog = cache.Refresh(context.Background())
	assert.Equal(t, 0, catalog.Len())
	assert.Equal(t, 0, cache.Snapshot().Len())
}

func TestCatalogCache_Filter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockCatalogStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return([]domain.Medicine{
		*helpers.CreateTestMedicine(),
		*helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Name = "Antasida" }),
	}, nil)

	cache := services.NewCatalogCache(store, helpers.TestLogger())
	cache.Refresh(context.Background())

	var matched []string
	for m := range cache.Filter("para") {
		matched = append(matched, m.Name)
	}
	assert.Equal(t, []string{"Paracetamol"}, matched)
}
