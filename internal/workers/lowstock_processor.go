// internal/workers/lowstock_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// LowStockItem is one row of the low-stock report
type LowStockItem struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Stock   int    `json:"stock"`
}

// LowStockReport lists medicines at or below the threshold
type LowStockReport struct {
	Date      string         `json:"date"`
	Threshold int            `json:"threshold"`
	Items     []LowStockItem `json:"items"`
}

// LowStockProcessor produces the daily low-stock report. A Redis lock keeps
// the scheduler and a manual trigger from reporting twice on one day.
type LowStockProcessor struct {
	store     ports.CatalogStore
	cache     ports.CacheRepository
	threshold int
	now       func() time.Time
	logger    *slog.Logger
}

func NewLowStockProcessor(store ports.CatalogStore, cache ports.CacheRepository, threshold int, logger *slog.Logger) *LowStockProcessor {
	return &LowStockProcessor{
		store:     store,
		cache:     cache,
		threshold: threshold,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "low_stock")),
	}
}

// ReportLowStock builds the report and logs it
func (p *LowStockProcessor) ReportLowStock(ctx context.Context, t *asynq.Task) error {
	var payload LowStockPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	date := p.now().Format("2006-01-02")
	lockKey := "lock:low_stock:" + date
	acquired, err := p.cache.SetNX(ctx, lockKey, p.now().Unix(), 23*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to acquire report lock: %w", err)
	}
	if !acquired {
		p.logger.InfoContext(ctx, "low-stock report already produced", slog.String("date", date))
		return nil
	}

	report, err := p.BuildReport(ctx, payload.Threshold)
	if err != nil {
		// release the day so the retry can produce the report
		if delErr := p.cache.Delete(ctx, lockKey); delErr != nil {
			p.logger.ErrorContext(ctx, "failed to release report lock",
				slog.String("date", date),
				slog.String("error", delErr.Error()))
		}
		return err
	}
	report.Date = date

	for _, item := range report.Items {
		p.logger.WarnContext(ctx, "medicine low on stock",
			slog.String("barcode", item.Barcode),
			slog.String("name", item.Name),
			slog.Int("stock", item.Stock))
	}

	p.logger.InfoContext(ctx, "low-stock report generated",
		slog.String("date", date),
		slog.Int("threshold", report.Threshold),
		slog.Int("count", len(report.Items)))

	writeResult(t, report)
	return nil
}

// BuildReport lists low-stock medicines in name order. A threshold of
// zero or less uses the configured one.
func (p *LowStockProcessor) BuildReport(ctx context.Context, threshold int) (LowStockReport, error) {
	if threshold <= 0 {
		threshold = p.threshold
	}

	records, err := p.store.ListAll(ctx)
	if err != nil {
		return LowStockReport{}, fmt.Errorf("failed to list medicines: %w", err)
	}

	report := LowStockReport{Threshold: threshold, Items: []LowStockItem{}}
	for m := range domain.NewCatalog(records).LowStock(threshold) {
		report.Items = append(report.Items, LowStockItem{
			Barcode: m.Barcode,
			Name:    m.Name,
			Stock:   m.Stock,
		})
	}
	return report, nil
}
