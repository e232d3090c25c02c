// internal/adapters/db/catalog_store.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

var medicineColumns = []string{
	"id", "barcode", "name", "price", "stock", "created_at", "updated_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// catalogStore implements ports.CatalogStore on PostgreSQL
type catalogStore struct {
	db     ports.Database
	logger *slog.Logger
}

// NewCatalogStore creates a new catalog store
func NewCatalogStore(db ports.Database, logger *slog.Logger) ports.CatalogStore {
	return &catalogStore{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

// ListAll returns every medicine ordered by name
func (s *catalogStore) ListAll(ctx context.Context) ([]domain.Medicine, error) {
	query, args, err := listMedicinesQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medicines: %w", err)
	}
	defer rows.Close()

	var medicines []domain.Medicine
	for rows.Next() {
		var m domain.Medicine
		if err := rows.Scan(
			&m.ID, &m.Barcode, &m.Name, &m.Price, &m.Stock, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medicine: %w", err)
		}
		medicines = append(medicines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	s.logger.DebugContext(ctx, "medicines listed", slog.Int("count", len(medicines)))
	return medicines, nil
}

// UpdateStock overwrites the stock column. An unknown id updates nothing
// and is not an error.
func (s *catalogStore) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	query, args, err := updateStockQuery(id, newStock).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		s.logger.WarnContext(ctx, "stock update matched no medicine",
			slog.String("medicine_id", id.String()))
		return nil
	}

	s.logger.DebugContext(ctx, "stock updated",
		slog.String("medicine_id", id.String()),
		slog.Int("stock", newStock))
	return nil
}

// Upsert inserts m or replaces every editable column of the row with the
// same id. created_at is kept from the first insert.
func (s *catalogStore) Upsert(ctx context.Context, m *domain.Medicine) error {
	query, args, err := upsertMedicineQuery(m).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert medicine: %w", err)
	}

	s.logger.DebugContext(ctx, "medicine upserted",
		slog.String("medicine_id", m.ID.String()),
		slog.String("barcode", m.Barcode))
	return nil
}

// InsertTransaction writes the sale record
func (s *catalogStore) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	builder, err := insertTransactionQuery(txn)
	if err != nil {
		return err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "transaction recorded",
		slog.String("transaction_id", txn.ID.String()),
		slog.String("total", txn.Total.String()),
		slog.Int("lines", len(txn.Items)))
	return nil
}

func listMedicinesQuery() squirrel.SelectBuilder {
	return psql.Select(medicineColumns...).
		From("medicines").
		OrderBy("name ASC", "id ASC")
}

func updateStockQuery(id uuid.UUID, newStock int) squirrel.UpdateBuilder {
	return psql.Update("medicines").
		Set("stock", newStock).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
}

func upsertMedicineQuery(m *domain.Medicine) squirrel.InsertBuilder {
	return psql.Insert("medicines").
		Columns(medicineColumns...).
		Values(m.ID, m.Barcode, m.Name, m.Price, m.Stock, m.CreatedAt, m.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			barcode = EXCLUDED.barcode,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`)
}

// transactionItem is the jsonb shape of one sold line
type transactionItem struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

func insertTransactionQuery(txn *domain.Transaction) (squirrel.InsertBuilder, error) {
	items := make([]transactionItem, 0, len(txn.Items))
	for _, line := range txn.Items {
		items = append(items, transactionItem{
			MedicineID: line.Medicine.ID,
			Barcode:    line.Medicine.Barcode,
			Name:       line.Medicine.Name,
			Price:      line.Medicine.Price,
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal(),
		})
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return squirrel.InsertBuilder{}, fmt.Errorf("failed to encode transaction items: %w", err)
	}

	return psql.Insert("transactions").
		Columns("id", "total", "items", "created_at").
		Values(txn.ID, txn.Total, string(payload), txn.CreatedAt), nil
}
