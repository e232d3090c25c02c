// internal/core/services/checkout_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/test/helpers"
	"github.com/ammerola/apotek-pos/test/mocks"
)

func alwaysConfirm(answer bool) ports.Confirmer {
	return ports.ConfirmFunc(func(context.Context, string) bool { return answer })
}

func TestCheckoutWorkflow_Run(t *testing.T) {
	paracetamol := *helpers.CreateTestMedicine()
	amoxicillin := *helpers.CreateTestMedicine(func(m *domain.Medicine) {
		m.ID = uuid.New()
		m.Barcode = "222"
		m.Name = "Amoxicillin"
		m.Price = decimal.NewFromInt(12000)
		m.Stock = 8
	})

	twoParacetamol := domain.Cart{}.Add(paracetamol).Add(paracetamol)
	mixed := twoParacetamol.Add(amoxicillin)

	tests := []struct {
		name           string
		cart           domain.Cart
		confirm        ports.Confirmer
		setupMocks     func(*mocks.MockCatalogStore, *mocks.MockReceiptRenderer)
		expectedStatus domain.CheckoutStatus
		expectedSteps  int
		expectedError  bool
		errorContains  string
	}{
		{
			name:           "declined_prompt_touches_nothing",
			cart:           twoParacetamol,
			confirm:        alwaysConfirm(false),
			setupMocks:     func(*mocks.MockCatalogStore, *mocks.MockReceiptRenderer) {},
			expectedStatus: domain.CheckoutDeclined,
		},
		{
			name:           "nil_confirmer_counts_as_declined",
			cart:           twoParacetamol,
			confirm:        nil,
			setupMocks:     func(*mocks.MockCatalogStore, *mocks.MockReceiptRenderer) {},
			expectedStatus: domain.CheckoutDeclined,
		},
		{
			name:           "empty_cart_never_inserts",
			cart:           domain.Cart{},
			confirm:        alwaysConfirm(true),
			setupMocks:     func(*mocks.MockCatalogStore, *mocks.MockReceiptRenderer) {},
			expectedStatus: domain.CheckoutEmpty,
		},
		{
			name:    "records_sale_decrements_stock_and_prints",
			cart:    twoParacetamol,
			confirm: alwaysConfirm(true),
			setupMocks: func(store *mocks.MockCatalogStore, renderer *mocks.MockReceiptRenderer) {
				gomock.InOrder(
					store.EXPECT().
						InsertTransaction(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, txn *domain.Transaction) error {
							assert.True(t, txn.Total.Equal(decimal.NewFromInt(10000)))
							if assert.Len(t, txn.Items, 1) {
								assert.Equal(t, 2, txn.Items[0].Quantity)
								assert.Equal(t, paracetamol.ID, txn.Items[0].Medicine.ID)
							}
							return nil
						}),
					store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 18).Return(nil),
					renderer.EXPECT().
						Render(gomock.Any(), gomock.Len(1), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ []domain.CartLine, total decimal.Decimal) error {
							assert.True(t, total.Equal(decimal.NewFromInt(10000)))
							return nil
						}),
				)
			},
			expectedStatus: domain.CheckoutCompleted,
			expectedSteps:  3,
		},
		{
			name:    "stock_updates_follow_cart_order",
			cart:    mixed,
			confirm: alwaysConfirm(true),
			setupMocks: func(store *mocks.MockCatalogStore, renderer *mocks.MockReceiptRenderer) {
				gomock.InOrder(
					store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil),
					store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 18).Return(nil),
					store.EXPECT().UpdateStock(gomock.Any(), amoxicillin.ID, 7).Return(nil),
					renderer.EXPECT().Render(gomock.Any(), gomock.Len(2), gomock.Any()).Return(nil),
				)
			},
			expectedStatus: domain.CheckoutCompleted,
			expectedSteps:  4,
		},
		{
			name:    "insert_failure_stops_before_stock_updates",
			cart:    twoParacetamol,
			confirm: alwaysConfirm(true),
			setupMocks: func(store *mocks.MockCatalogStore, renderer *mocks.MockReceiptRenderer) {
				store.EXPECT().
					InsertTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			expectedStatus: domain.CheckoutFailed,
			expectedSteps:  0,
			expectedError:  true,
			errorContains:  "failed to insert transaction: connection refused",
		},
		{
			name:    "partial_stock_update_is_not_rolled_back",
			cart:    mixed,
			confirm: alwaysConfirm(true),
			setupMocks: func(store *mocks.MockCatalogStore, renderer *mocks.MockReceiptRenderer) {
				gomock.InOrder(
					store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil),
					store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 18).Return(nil),
					store.EXPECT().UpdateStock(gomock.Any(), amoxicillin.ID, 7).Return(errors.New("timeout")),
				)
			},
			expectedStatus: domain.CheckoutFailed,
			expectedSteps:  2,
			expectedError:  true,
			errorContains:  "failed to update stock for Amoxicillin",
		},
		{
			name:    "render_failure_after_store_writes",
			cart:    twoParacetamol,
			confirm: alwaysConfirm(true),
			setupMocks: func(store *mocks.MockCatalogStore, renderer *mocks.MockReceiptRenderer) {
				gomock.InOrder(
					store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil),
					store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 18).Return(nil),
					renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("printer offline")),
				)
			},
			expectedStatus: domain.CheckoutFailed,
			expectedSteps:  2,
			expectedError:  true,
			errorContains:  "failed to render receipt: printer offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockCatalogStore(ctrl)
			renderer := mocks.NewMockReceiptRenderer(ctrl)
			tt.setupMocks(store, renderer)

			workflow := services.NewCheckoutWorkflow(store, renderer, helpers.TestLogger())

			result, err := workflow.Run(context.Background(), tt.cart, tt.confirm)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedSteps, result.StepsCompleted)
		})
	}
}

func TestCheckoutWorkflow_PromptText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	confirmer := mocks.NewMockConfirmer(ctrl)
	confirmer.EXPECT().Confirm(gomock.Any(), "Proses transaksi dan cetak?").Return(false)

	workflow := services.NewCheckoutWorkflow(mocks.NewMockCatalogStore(ctrl), mocks.NewMockReceiptRenderer(ctrl), helpers.TestLogger())

	result, err := workflow.Run(context.Background(), domain.Cart{}.Add(*helpers.CreateTestMedicine()), confirmer)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutDeclined, result.Status)
}

// The decrement uses the stock captured when the medicine entered the cart.
// A sale made elsewhere in the meantime is overwritten.
func TestCheckoutWorkflow_UsesSnapshotStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := *helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Stock = 20 })
	cart := domain.Cart{}.Add(snapshot)

	store := mocks.NewMockCatalogStore(ctrl)
	renderer := mocks.NewMockReceiptRenderer(ctrl)
	store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
	// current store value might be 5; the write is still 20-1
	store.EXPECT().UpdateStock(gomock.Any(), snapshot.ID, 19).Return(nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	workflow := services.NewCheckoutWorkflow(store, renderer, helpers.TestLogger())
	result, err := workflow.Run(context.Background(), cart, alwaysConfirm(true))

	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutCompleted, result.Status)
	assert.Equal(t, 3, result.StepsPlanned)
}

func TestCheckoutWorkflow_RenderCarriesTransactionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	paracetamol := *helpers.CreateTestMedicine()
	store := mocks.NewMockCatalogStore(ctrl)
	renderer := mocks.NewMockReceiptRenderer(ctrl)

	var inserted uuid.UUID
	store.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *domain.Transaction) error {
			inserted = txn.ID
			return nil
		})
	store.EXPECT().UpdateStock(gomock.Any(), paracetamol.ID, 19).Return(nil)

	var rendered uuid.UUID
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []domain.CartLine, _ decimal.Decimal) error {
			id, ok := ports.TransactionIDFrom(ctx)
			require.True(t, ok)
			rendered = id
			return nil
		})

	workflow := services.NewCheckoutWorkflow(store, renderer, helpers.TestLogger())
	result, err := workflow.Run(context.Background(), domain.Cart{}.Add(paracetamol), alwaysConfirm(true))

	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.NotEqual(t, uuid.Nil, inserted)
	assert.Equal(t, inserted, rendered)
	assert.Equal(t, result.Transaction.ID, rendered)
}
