// cmd/api/main_test.go
package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/ammerola/apotek-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/test/helpers"
	"github.com/ammerola/apotek-pos/test/mocks"
)

type tillFixture struct {
	store    *mocks.MockCatalogStore
	renderer *mocks.MockReceiptRenderer
	redis    *helpers.TestRedis
	cached   *redis_a.CachedCatalogStore
}

func newTillFixture(t *testing.T) *tillFixture {
	t.Helper()

	gc := gomock.NewController(t)
	tr := helpers.SetupTestRedis(t)
	logger := helpers.TestLogger()
	store := mocks.NewMockCatalogStore(gc)

	return &tillFixture{
		store:    store,
		renderer: mocks.NewMockReceiptRenderer(gc),
		redis:    tr,
		cached: redis_a.NewCachedCatalogStore(store,
			redis_a.NewCache(tr.Client, time.Minute, logger), time.Minute, logger),
	}
}

func startedScanner(t *testing.T) *mocks.MockScanner {
	t.Helper()

	gc := gomock.NewController(t)
	scan := mocks.NewMockScanner(gc)
	scan.EXPECT().
		Start(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mocks.NewMockScanSession(gc), nil)
	return scan
}

func TestNewController_RefreshBypassesWarmCache(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	paracetamol := *helpers.CreateTestMedicine()

	gomock.InOrder(
		// warms Redis, then the boot load
		f.store.EXPECT().ListAll(gomock.Any()).Return([]domain.Medicine{paracetamol}, nil).Times(2),
		f.store.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db down")),
	)

	warm, err := f.cached.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, warm, 1)
	require.True(t, f.redis.Server.Exists(redis_a.CatalogKey))

	ctrl := newController(f.store, f.cached, f.renderer, startedScanner(t), helpers.TestLogger())
	require.NoError(t, ctrl.Start(ctx))
	require.Equal(t, 1, ctrl.State().Catalog.Len())

	catalog := ctrl.RefreshCatalog(ctx)
	assert.Equal(t, 0, catalog.Len())
	assert.Equal(t, 0, ctrl.State().Catalog.Len())
}

func TestNewController_CheckoutInvalidatesCachedCatalog(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	paracetamol := *helpers.CreateTestMedicine()
	sold := paracetamol
	sold.Stock = 18

	gomock.InOrder(
		f.store.EXPECT().ListAll(gomock.Any()).Return([]domain.Medicine{paracetamol}, nil).Times(2),
		f.store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil),
		f.store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 18).Return(nil),
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.store.EXPECT().ListAll(gomock.Any()).Return([]domain.Medicine{sold}, nil),
	)

	_, err := f.cached.ListAll(ctx)
	require.NoError(t, err)

	ctrl := newController(f.store, f.cached, f.renderer, startedScanner(t), helpers.TestLogger())
	require.NoError(t, ctrl.Start(ctx))

	ctrl.Scan(ctx, "111")
	ctrl.Scan(ctx, "111")

	result, err := ctrl.Checkout(ctx, ports.ConfirmFunc(func(context.Context, string) bool { return true }))
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutCompleted, result.Status)

	assert.False(t, f.redis.Server.Exists(redis_a.CatalogKey), "worker reads must not see the pre-sale stock")
	m, ok := ctrl.State().Catalog.FindByID(paracetamol.ID)
	require.True(t, ok)
	assert.Equal(t, 18, m.Stock)
}
