// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	redis_a "github.com/ammerola/apotek-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/internal/pkg/config"
	"github.com/ammerola/apotek-pos/internal/pkg/logger"
	"github.com/ammerola/apotek-pos/internal/workers"
)

func main() {
	var (
		inputFile = flag.String("file", "./seed/medicines.csv", "CSV or xlsx file with barcode,name,price,stock rows")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview rows without modifying database")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")
	slog.SetDefault(slogger)

	forms, err := loadForms(*inputFile)
	if err != nil {
		slogger.Error("failed to read seed file",
			slog.String("file", *inputFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger.Info("seed file parsed",
		slog.String("file", *inputFile),
		slog.Int("rows", len(forms)))

	if *dryRun {
		for i, f := range forms {
			fmt.Printf("PREVIEW %d: %s %s price=%s stock=%s\n", i+1, f.Barcode, f.Name, formatPrice(f), formatStock(f))
		}
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, db.FromAppConfig(cfg.Database, cfg.App.Debug), slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	store := catalogWriter(db.NewCatalogStore(database, slogger), redisClient, cfg.Redis.CatalogTTL, slogger)
	editor := services.NewInventoryEditor(store, slogger)
	saved, rowErrs := editor.SaveAll(ctx, forms)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Rows read:  %d\n", len(forms))
	fmt.Printf("Rows saved: %d\n", saved)
	if len(rowErrs) > 0 {
		fmt.Printf("\nFailed rows (%d):\n", len(rowErrs))
		for _, e := range rowErrs {
			fmt.Printf("  - %v\n", e)
		}
	}

	slogger.Info("seed operation completed",
		slog.Int("saved", saved),
		slog.Int("failed", len(rowErrs)))

	if len(rowErrs) > 0 {
		os.Exit(2)
	}
}

// catalogWriter routes seed writes through the catalog cache when Redis is
// configured, so running tills and workers drop their cached list.
func catalogWriter(store ports.CatalogStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) ports.CatalogStore {
	if client == nil {
		return store
	}
	cache := redis_a.NewCache(client, ttl, logger)
	return redis_a.NewCachedCatalogStore(store, cache, ttl, logger)
}

func loadForms(path string) ([]*domain.MedicineForm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return workers.ParseInventorySheet(data)
	case ".csv":
		return parseCSV(strings.NewReader(string(data)))
	default:
		return nil, fmt.Errorf("unsupported seed file type %q", filepath.Ext(path))
	}
}

func formatPrice(f *domain.MedicineForm) string {
	if f.Price == nil {
		return "-"
	}
	return f.Price.String()
}

func formatStock(f *domain.MedicineForm) string {
	if f.Stock == nil {
		return "-"
	}
	return fmt.Sprint(*f.Stock)
}
