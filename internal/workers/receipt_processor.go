// internal/workers/receipt_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// ReceiptProcessor uploads printed receipts to object storage
type ReceiptProcessor struct {
	storage ports.ObjectStorage
	logger  *slog.Logger
}

func NewReceiptProcessor(storage ports.ObjectStorage, logger *slog.Logger) *ReceiptProcessor {
	return &ReceiptProcessor{
		storage: storage,
		logger:  logger.With(slog.String("processor", "receipt")),
	}
}

// ArchiveReceipt stores the receipt text. Retried tasks overwrite the
// same key, so a duplicate delivery is harmless.
func (p *ReceiptProcessor) ArchiveReceipt(ctx context.Context, t *asynq.Task) error {
	var payload ReceiptArchivePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	key := ReceiptKey(payload.ReceiptID, payload.PrintedAt)
	location, err := p.storage.Upload(ctx, key, strings.NewReader(payload.Text), "text/plain; charset=utf-8")
	if err != nil {
		return fmt.Errorf("failed to archive receipt: %w", err)
	}

	p.logger.InfoContext(ctx, "receipt archived",
		slog.String("receipt_id", payload.ReceiptID.String()),
		slog.String("total", payload.Total.String()),
		slog.String("location", location))

	return nil
}
