// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

var drugNames = []string{
	"Paracetamol", "Amoxicillin", "Antasida Doen", "Vitamin C", "Ibuprofen",
	"Cetirizine", "Omeprazole", "Salbutamol", "Metformin", "Loperamide",
}

// createMedicines builds n medicines with distinct barcodes and repeating names
func createMedicines(n int) []domain.Medicine {
	records := make([]domain.Medicine, n)
	for i := range records {
		records[i] = domain.Medicine{
			ID:      uuid.New(),
			Barcode: fmt.Sprintf("899%07d", i),
			Name:    fmt.Sprintf("%s %dmg", drugNames[i%len(drugNames)], 100+i),
			Price:   decimal.NewFromInt(int64(1000 + i*250)),
			Stock:   i % 50,
		}
	}
	return records
}

// createPriceListLines renders n lines in the supplier price-list layout
func createPriceListLines(n int) []string {
	lines := make([]string, 0, n+2)
	lines = append(lines, "DAFTAR HARGA", "Kode  Nama  Harga")
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("899%07d %s %dmg Rp %d.%03d,00",
			i, drugNames[i%len(drugNames)], 100+i, 1+i/1000, i%1000))
	}
	return lines
}

// memoryStore is an in-memory catalog store
type memoryStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]domain.Medicine
	txns    int
}

func newMemoryStore(records []domain.Medicine) *memoryStore {
	s := &memoryStore{records: make(map[uuid.UUID]domain.Medicine, len(records))}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *memoryStore) ListAll(context.Context) ([]domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Medicine, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out, nil
}

func (s *memoryStore) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok {
		r.Stock = stock
		s.records[id] = r
	}
	return nil
}

func (s *memoryStore) Upsert(_ context.Context, m *domain.Medicine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.records[m.ID] = *m
	return nil
}

func (s *memoryStore) InsertTransaction(context.Context, *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns++
	return nil
}

type discardRenderer struct{}

func (discardRenderer) Render(context.Context, []domain.CartLine, decimal.Decimal) error { return nil }
