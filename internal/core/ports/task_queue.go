// internal/core/ports/task_queue.go
package ports

import "context"

// TaskQueue schedules background work. Payload is encoded as JSON.
type TaskQueue interface {
	Enqueue(ctx context.Context, taskType string, payload any) (string, error)
}
