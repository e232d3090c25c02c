// internal/core/domain/catalog.go
package domain

import (
	"iter"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Catalog is a read-only snapshot of the medicine list ordered by name
type Catalog struct {
	items []Medicine
}

// NewCatalog copies records and orders them by name, ignoring case.
// Records with equal names keep their incoming order.
func NewCatalog(records []Medicine) Catalog {
	items := slices.Clone(records)
	slices.SortStableFunc(items, func(a, b Medicine) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return Catalog{items: items}
}

// All yields every record in name order
func (c Catalog) All() iter.Seq[Medicine] {
	return slices.Values(c.items)
}

// Filter yields records whose name contains keyword, ignoring case.
// The sequence is evaluated lazily on each range and can be restarted.
func (c Catalog) Filter(keyword string) iter.Seq[Medicine] {
	needle := strings.ToLower(keyword)
	return func(yield func(Medicine) bool) {
		for _, m := range c.items {
			if !strings.Contains(strings.ToLower(m.Name), needle) {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// FindByBarcode returns the first record whose barcode equals code exactly
func (c Catalog) FindByBarcode(code string) (Medicine, bool) {
	for _, m := range c.items {
		if m.Barcode == code {
			return m, true
		}
	}
	return Medicine{}, false
}

// FindByID returns the record with the given id
func (c Catalog) FindByID(id uuid.UUID) (Medicine, bool) {
	for _, m := range c.items {
		if m.ID == id {
			return m, true
		}
	}
	return Medicine{}, false
}

// LowStock yields records at or below threshold
func (c Catalog) LowStock(threshold int) iter.Seq[Medicine] {
	return func(yield func(Medicine) bool) {
		for _, m := range c.items {
			if m.IsLowStock(threshold) && !yield(m) {
				return
			}
		}
	}
}

func (c Catalog) Len() int {
	return len(c.items)
}
