//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/test/helpers"
)

type CatalogStoreSuite struct {
	suite.Suite
	testDB *helpers.TestDB
	store  ports.CatalogStore
	ctx    context.Context
}

func (s *CatalogStoreSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.store = db.NewCatalogStore(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *CatalogStoreSuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *CatalogStoreSuite) TestListAllOrdersByName() {
	helpers.SeedTestData(s.T(), s.testDB.PgxPool, []domain.Medicine{
		*helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Name = "Vitamin C"; m.Barcode = "300" }),
		*helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Name = "Antasida"; m.Barcode = "100" }),
		*helpers.CreateTestMedicine(func(m *domain.Medicine) { m.Name = "Paracetamol"; m.Barcode = "111" }),
	})

	medicines, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(medicines, 3)
	s.Equal("Antasida", medicines[0].Name)
	s.Equal("Paracetamol", medicines[1].Name)
	s.Equal("Vitamin C", medicines[2].Name)
}

func (s *CatalogStoreSuite) TestUpsertInsertsThenReplaces() {
	m := helpers.CreateTestMedicine()
	s.Require().NoError(s.store.Upsert(s.ctx, m))
	created := m.CreatedAt

	m.Price = decimal.NewFromInt(5500)
	m.Stock = 42
	m.PrepareForStorage()
	s.Require().NoError(s.store.Upsert(s.ctx, m))

	medicines, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(medicines, 1)
	s.True(decimal.NewFromInt(5500).Equal(medicines[0].Price))
	s.Equal(42, medicines[0].Stock)
	s.WithinDuration(created, medicines[0].CreatedAt, 0)
}

func (s *CatalogStoreSuite) TestUpdateStock() {
	m := helpers.CreateTestMedicine()
	s.Require().NoError(s.store.Upsert(s.ctx, m))

	s.Require().NoError(s.store.UpdateStock(s.ctx, m.ID, 18))

	medicines, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(18, medicines[0].Stock)

	// unknown ids are not an error
	s.NoError(s.store.UpdateStock(s.ctx, uuid.New(), 1))
}

func (s *CatalogStoreSuite) TestInsertTransaction() {
	m := *helpers.CreateTestMedicine()
	txn := domain.NewTransaction(domain.Cart{}.Add(m).Add(m))

	s.Require().NoError(s.store.InsertTransaction(s.ctx, txn))

	var total decimal.Decimal
	var quantity int
	err := s.testDB.PgxPool.QueryRow(s.ctx,
		`SELECT total, (items->0->>'quantity')::int FROM transactions WHERE id = $1`, txn.ID,
	).Scan(&total, &quantity)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10000).Equal(total))
	s.Equal(2, quantity)
}

func TestCatalogStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CatalogStoreSuite))
}
