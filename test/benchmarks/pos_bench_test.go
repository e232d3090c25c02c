// test/benchmarks/pos_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ammerola/apotek-pos/internal/adapters/receipt"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/internal/workers"
	"github.com/ammerola/apotek-pos/test/helpers"
)

func BenchmarkCatalogFilter(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		catalog := domain.NewCatalog(createMedicines(size))

		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				n := 0
				for range catalog.Filter("PARA") {
					n++
				}
				_ = n
			}
		})

		// Lazy filtering pays only for the rows consumed
		b.Run(fmt.Sprintf("size_%d_first_match", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				for range catalog.Filter("cetirizine") {
					break
				}
			}
		})
	}
}

func BenchmarkCatalogFindByBarcode(b *testing.B) {
	records := createMedicines(5000)
	catalog := domain.NewCatalog(records)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = catalog.FindByBarcode(records[i%len(records)].Barcode)
	}
}

func BenchmarkCartAdd(b *testing.B) {
	records := createMedicines(20)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cart := domain.NewCart()
		for j := 0; j < 60; j++ {
			cart = cart.Add(records[j%len(records)])
		}
		_ = cart.Total()
	}
}

func BenchmarkReceiptFormat(b *testing.B) {
	records := createMedicines(15)
	cart := domain.NewCart()
	for _, r := range records {
		cart = cart.Add(r).Add(r)
	}
	formatter := receipt.NewFormatter(receipt.Layout{StoreName: "Apotek Sehat", Locale: "id-ID"})
	at := time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = formatter.Format(cart.Lines(), cart.Total(), at)
	}
}

func BenchmarkParsePriceList(b *testing.B) {
	lines := createPriceListLines(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = workers.ParsePriceList(lines)
	}
}

func BenchmarkInventorySheet(b *testing.B) {
	catalog := domain.NewCatalog(createMedicines(1000))

	b.Run("build", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = workers.BuildInventorySheet(catalog, 10)
		}
	})

	data, err := workers.BuildInventorySheet(catalog, 10)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("parse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = workers.ParseInventorySheet(data)
		}
	})
}

func BenchmarkCheckoutWorkflow(b *testing.B) {
	records := createMedicines(10)
	store := newMemoryStore(records)
	workflow := services.NewCheckoutWorkflow(store, discardRenderer{}, helpers.TestLogger())
	confirm := ports.ConfirmFunc(func(context.Context, string) bool { return true })
	ctx := context.Background()

	cart := domain.NewCart()
	for _, r := range records {
		cart = cart.Add(r)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := workflow.Run(ctx, cart, confirm); err != nil {
			b.Fatal(err)
		}
	}
}
