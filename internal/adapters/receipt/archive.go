// internal/adapters/receipt/archive.go
package receipt

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/workers"
)

// ArchivingRenderer prints through inner and then queues a copy of the
// receipt for upload. A queue failure is logged and does not fail the sale.
type ArchivingRenderer struct {
	inner     ports.ReceiptRenderer
	queue     ports.TaskQueue
	formatter *Formatter
	now       func() time.Time
	logger    *slog.Logger
}

var _ ports.ReceiptRenderer = (*ArchivingRenderer)(nil)

func NewArchivingRenderer(inner ports.ReceiptRenderer, queue ports.TaskQueue, formatter *Formatter, logger *slog.Logger) *ArchivingRenderer {
	return &ArchivingRenderer{
		inner:     inner,
		queue:     queue,
		formatter: formatter,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "receipt_archive")),
	}
}

func (a *ArchivingRenderer) Render(ctx context.Context, lines []domain.CartLine, total decimal.Decimal) error {
	if err := a.inner.Render(ctx, lines, total); err != nil {
		return err
	}

	// archived receipts share the id of their transaction row
	receiptID, ok := ports.TransactionIDFrom(ctx)
	if !ok {
		receiptID = uuid.New()
	}

	at := a.now()
	payload := workers.ReceiptArchivePayload{
		ReceiptID: receiptID,
		Text:      a.formatter.Format(lines, total, at),
		Total:     total,
		PrintedAt: at,
	}

	taskID, err := a.queue.Enqueue(ctx, workers.TypeReceiptArchive, payload)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to queue receipt archive",
			slog.String("receipt_id", payload.ReceiptID.String()),
			slog.String("error", err.Error()))
		return nil
	}

	a.logger.DebugContext(ctx, "receipt archive queued",
		slog.String("receipt_id", payload.ReceiptID.String()),
		slog.String("task_id", taskID))
	return nil
}
