// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	redis_a "github.com/ammerola/apotek-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/apotek-pos/internal/adapters/storage"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/core/services"
	"github.com/ammerola/apotek-pos/internal/pkg/config"
	"github.com/ammerola/apotek-pos/internal/pkg/logger"
	"github.com/ammerola/apotek-pos/internal/workers"
)

const (
	cleanupSchedule = "@every 1h"
	tempFileMaxAge  = 6 * time.Hour
)

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	provider, err := config.NewSecretsProvider(cfg, slogger)
	if err != nil {
		slogger.Error("failed to create secrets provider", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := config.ApplySecrets(ctx, cfg, provider); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database
	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.CatalogTTL, slogger)

	// Writes go through the cached store so the API sees imports immediately
	var store ports.CatalogStore = db.NewCatalogStore(database, slogger)
	store = redis_a.NewCachedCatalogStore(store, cache, cfg.Redis.CatalogTTL, slogger)
	editor := services.NewInventoryEditor(store, slogger)

	objects, err := newObjectStorage(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	// Create Asynq server
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger),
		},
	)

	// Create task handlers
	mux := asynq.NewServeMux()
	mux.Use(timeoutMiddleware(cfg.Inventory.ProcessingTimeout))

	receiptProcessor := workers.NewReceiptProcessor(objects, slogger)
	mux.HandleFunc(workers.TypeReceiptArchive, receiptProcessor.ArchiveReceipt)

	excelProcessor := workers.NewExcelProcessor(store, editor, objects, cfg.Inventory.LowStockThreshold, slogger)
	mux.HandleFunc(workers.TypeInventoryExport, excelProcessor.ExportInventory)
	mux.HandleFunc(workers.TypeInventoryImport, excelProcessor.ImportInventory)

	pdfProcessor := workers.NewPDFProcessor(store, editor, objects, cfg.Inventory.TempDir, slogger)
	mux.HandleFunc(workers.TypePriceListImport, pdfProcessor.ImportPriceList)

	lowStockProcessor := workers.NewLowStockProcessor(store, cache, cfg.Inventory.LowStockThreshold, slogger)
	mux.HandleFunc(workers.TypeLowStockReport, lowStockProcessor.ReportLowStock)

	cleanupProcessor := workers.NewCleanupProcessor(cfg.Inventory.TempDir, tempFileMaxAge, slogger)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanupProcessor.CleanupTempFiles)

	scheduler, err := newScheduler(redisOpt, cfg, slogger)
	if err != nil {
		slogger.Error("failed to register periodic tasks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		srv.Shutdown()
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("low_stock_cron", cfg.Asynq.LowStockCron))

	// Wait for shutdown signal
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := db.FromAppConfig(cfg.Database, cfg.App.Debug)
	// Fewer connections for worker
	dbConfig.MaxConnections = 10
	dbConfig.MinConnections = 2

	return db.NewDatabase(ctx, dbConfig, logger)
}

// initRedis connects to the catalog Redis, or to the queue Redis when no
// separate cache host is configured. The low-stock lock needs one of them.
func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Enabled() {
		return redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
		})
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	})
}

func newObjectStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ObjectStorage, error) {
	if cfg.AWS.LocalStorageDir != "" {
		return storage.NewLocalStorage(cfg.AWS.LocalStorageDir, logger)
	}
	return storage.NewS3Storage(ctx, storage.S3ConfigFrom(cfg.AWS), logger)
}

func newScheduler(redisOpt asynq.RedisClientOpt, cfg *config.Config, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.Local,
		Logger:   newAsynqLogger(logger),
	})

	periodic := []struct {
		schedule string
		taskType string
	}{
		{cfg.Asynq.LowStockCron, workers.TypeLowStockReport},
		{cleanupSchedule, workers.TypeCleanupTempFiles},
	}

	for _, p := range periodic {
		if p.schedule == "" {
			continue
		}
		task := asynq.NewTask(p.taskType, nil)
		id, err := scheduler.Register(p.schedule, task, workers.TaskOptions(p.taskType)...)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", p.taskType, err)
		}
		logger.Info("periodic task registered",
			slog.String("type", p.taskType),
			slog.String("schedule", p.schedule),
			slog.String("entry_id", id))
	}

	return scheduler, nil
}

// timeoutMiddleware bounds every task by the processing timeout
func timeoutMiddleware(timeout time.Duration) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			if timeout <= 0 {
				return next.ProcessTask(ctx, t)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if taskID, ok := asynq.GetTaskID(ctx); ok {
				ctx = context.WithValue(ctx, logger.ContextKeyTaskID, taskID)
			}
			return next.ProcessTask(ctx, t)
		})
	}
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.Int("retried", retried),
		slog.Int("max_retry", maxRetry),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
