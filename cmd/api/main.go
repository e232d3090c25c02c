// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	"github.com/ammerola/apotek-pos/internal/adapters/receipt"
	redis_a "github.com/ammerola/apotek-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/apotek-pos/internal/adapters/scanner"
	"github.com/ammerola/apotek-pos/internal/adapters/storage"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/internal/handlers"
	"github.com/ammerola/apotek-pos/internal/handlers/middleware"
	"github.com/ammerola/apotek-pos/internal/pkg/config"
	"github.com/ammerola/apotek-pos/internal/pkg/logger"
	"github.com/ammerola/apotek-pos/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting apotek point of sale",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = Version
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if err := loadSecrets(ctx, cfg, slogger); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// api migrate up|down|status
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrateCommand(ctx, cfg, os.Args[2:], slogger); err != nil {
			slogger.Error("migration command failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			if cfg.IsProduction() {
				os.Exit(1)
			}
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Loads the catalog and opens the scanner for the cashier view. A
	// store outage leaves an empty catalog, not a dead till.
	if err := deps.controller.Start(ctx); err != nil {
		slogger.Warn("terminal started with errors", slog.String("error", err.Error()))
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	cache          ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	controller     *services.Controller

	posHandler       *handlers.POSHandler
	inventoryHandler *handlers.InventoryHandler
	importHandler    *handlers.ImportHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.controller != nil {
		if err := d.controller.Close(); err != nil {
			slog.Warn("failed to stop scanner", slog.String("error", err.Error()))
		}
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, db.FromAppConfig(cfg.Database, cfg.App.Debug), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	store := db.NewCatalogStore(database, logger)
	var writes ports.CatalogStore = store

	if cfg.Redis.Enabled() {
		logger.Info("connecting to Redis",
			slog.String("host", cfg.Redis.Host),
			slog.String("port", cfg.Redis.Port),
		)

		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			PoolTimeout:  cfg.Redis.PoolTimeout,
		})

		// Writes invalidate the worker's cached catalog; an outage here
		// only logs.
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable at startup", slog.String("error", err.Error()))
		}
		deps.redisClient = redisClient
		deps.cache = redis_a.NewCache(redisClient, cfg.Redis.CatalogTTL, logger)
		writes = redis_a.NewCachedCatalogStore(store, deps.cache, cfg.Redis.CatalogTTL, logger)
	}

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
	queue := workers.NewAsynqQueue(deps.asynqClient, logger)

	scan, feed, err := newScanner(cfg, deps.redisClient, logger)
	if err != nil {
		return nil, err
	}

	renderer := newReceiptRenderer(cfg, queue, logger)

	objects, err := newObjectStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps.controller = newController(store, writes, renderer, scan, logger)

	threshold := cfg.Inventory.LowStockThreshold
	maxUpload := int64(cfg.Inventory.MaxUploadMB) * 1024 * 1024

	deps.posHandler = handlers.NewPOSHandler(deps.controller, feed, threshold, logger)
	deps.inventoryHandler = handlers.NewInventoryHandler(deps.controller, logger)
	deps.importHandler = handlers.NewImportHandler(queue, objects, maxUpload, logger)
	deps.exportHandler = handlers.NewExportHandler(queue, objects, 15*time.Minute, logger)

	deps.healthHandler = handlers.NewHealthHandler(database, deps.cache, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully",
		slog.String("scanner", cfg.Scanner.Source),
		slog.Bool("receipt_archive", cfg.Receipt.Archive),
	)
	return deps, nil
}

// newController wires the till. Catalog refreshes always query reads so a
// store failure empties the catalog; checkout and the editor write through
// writes.
func newController(reads, writes ports.CatalogStore, renderer ports.ReceiptRenderer, scan ports.Scanner, logger *slog.Logger) *services.Controller {
	catalog := services.NewCatalogCache(reads, logger)
	checkout := services.NewCheckoutWorkflow(writes, renderer, logger)
	editor := services.NewInventoryEditor(writes, logger)
	return services.NewController(catalog, checkout, editor, scan, logger)
}

// newScanner returns the decode source and the feed that accepts pushed
// barcodes. Both are the same adapter.
func newScanner(cfg *config.Config, client *redis.Client, logger *slog.Logger) (ports.Scanner, ports.ScanFeed, error) {
	switch cfg.Scanner.Source {
	case "redis":
		if client == nil {
			return nil, nil, fmt.Errorf("scanner source redis needs REDIS_HOST")
		}
		s := redis_a.NewPubSubScanner(client, cfg.Scanner.Channel, logger)
		return s, s, nil
	default:
		s := scanner.NewFeedScanner(cfg.Scanner.Buffer, logger)
		return s, s, nil
	}
}

func newReceiptRenderer(cfg *config.Config, queue ports.TaskQueue, logger *slog.Logger) ports.ReceiptRenderer {
	formatter := receipt.NewFormatter(receipt.Layout{
		StoreName: cfg.Receipt.StoreName,
		Tagline:   cfg.Receipt.Tagline,
		Footer:    cfg.Receipt.Footer,
		Locale:    cfg.Receipt.Locale,
	})

	var renderer ports.ReceiptRenderer
	if cfg.Receipt.PrinterPath != "" {
		renderer = receipt.NewPrinterRenderer(cfg.Receipt.PrinterPath, formatter, logger)
	} else {
		renderer = receipt.NewTextRenderer(os.Stdout, formatter, logger)
	}

	if cfg.Receipt.Archive {
		renderer = receipt.NewArchivingRenderer(renderer, queue, formatter, logger)
	}
	return renderer
}

func newObjectStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ObjectStorage, error) {
	if cfg.AWS.LocalStorageDir != "" {
		return storage.NewLocalStorage(cfg.AWS.LocalStorageDir, logger)
	}

	s3, err := storage.NewS3Storage(ctx, storage.S3ConfigFrom(cfg.AWS), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	return s3, nil
}

func loadSecrets(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	provider, err := config.NewSecretsProvider(cfg, logger)
	if err != nil {
		return err
	}
	return config.ApplySecrets(ctx, cfg, provider)
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.Routes{
		POS:       deps.posHandler,
		Inventory: deps.inventoryHandler,
		Import:    deps.importHandler,
		Export:    deps.exportHandler,
		Health:    deps.healthHandler,
	}.Register(mux)

	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
