// internal/workers/queue.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// Enqueuer is the part of *asynq.Client the queue uses
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqQueue implements ports.TaskQueue on asynq
type AsynqQueue struct {
	client Enqueuer
	logger *slog.Logger
}

var _ ports.TaskQueue = (*AsynqQueue)(nil)

func NewAsynqQueue(client Enqueuer, logger *slog.Logger) *AsynqQueue {
	return &AsynqQueue{
		client: client,
		logger: logger.With(slog.String("component", "task_queue")),
	}
}

// Enqueue encodes payload as JSON and submits it with the options for taskType
func (q *AsynqQueue) Enqueue(ctx context.Context, taskType string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, b), TaskOptions(taskType)...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	q.logger.InfoContext(ctx, "task enqueued",
		slog.String("type", taskType),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))

	return info.ID, nil
}

// TaskOptions returns the queue, retry and retention settings per task type
func TaskOptions(taskType string) []asynq.Option {
	switch taskType {
	case TypeReceiptArchive:
		return []asynq.Option{asynq.Queue(QueueCritical), asynq.MaxRetry(10), asynq.Retention(24 * time.Hour)}
	case TypeInventoryImport, TypePriceListImport:
		return []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(3), asynq.Retention(24 * time.Hour)}
	case TypeInventoryExport:
		return []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(3), asynq.Retention(24 * time.Hour)}
	default:
		return []asynq.Option{asynq.Queue(QueueLow), asynq.MaxRetry(1)}
	}
}
