// internal/workers/queue_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/workers"
	"github.com/ammerola/apotek-pos/test/helpers"
)

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	f.opts = opts
	return &asynq.TaskInfo{ID: "task-1", Queue: workers.QueueDefault}, nil
}

func queueOf(opts []asynq.Option) string {
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			return o.Value().(string)
		}
	}
	return ""
}

func TestAsynqQueue_Enqueue(t *testing.T) {
	fake := &fakeEnqueuer{}
	queue := workers.NewAsynqQueue(fake, helpers.TestLogger())

	id, err := queue.Enqueue(context.Background(), workers.TypeInventoryImport, workers.InventoryImportPayload{
		JobID:     "job-1",
		ObjectKey: workers.ImportKey("job-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)

	require.NotNil(t, fake.task)
	assert.Equal(t, workers.TypeInventoryImport, fake.task.Type())

	var payload workers.InventoryImportPayload
	require.NoError(t, json.Unmarshal(fake.task.Payload(), &payload))
	assert.Equal(t, "imports/inventory-job-1.xlsx", payload.ObjectKey)
	assert.Equal(t, workers.QueueDefault, queueOf(fake.opts))
}

func TestAsynqQueue_EnqueueError(t *testing.T) {
	queue := workers.NewAsynqQueue(&fakeEnqueuer{err: errors.New("redis down")}, helpers.TestLogger())

	_, err := queue.Enqueue(context.Background(), workers.TypeReceiptArchive, workers.ReceiptArchivePayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enqueue receipt:archive")
}

func TestAsynqQueue_UnencodablePayload(t *testing.T) {
	fake := &fakeEnqueuer{}
	queue := workers.NewAsynqQueue(fake, helpers.TestLogger())

	_, err := queue.Enqueue(context.Background(), workers.TypeLowStockReport, make(chan int))
	require.Error(t, err)
	assert.Nil(t, fake.task)
}

func TestTaskOptions_Queues(t *testing.T) {
	tests := []struct {
		taskType string
		queue    string
	}{
		{workers.TypeReceiptArchive, workers.QueueCritical},
		{workers.TypeInventoryExport, workers.QueueDefault},
		{workers.TypeInventoryImport, workers.QueueDefault},
		{workers.TypePriceListImport, workers.QueueDefault},
		{workers.TypeLowStockReport, workers.QueueLow},
		{workers.TypeCleanupTempFiles, workers.QueueLow},
	}

	for _, tt := range tests {
		t.Run(tt.taskType, func(t *testing.T) {
			assert.Equal(t, tt.queue, queueOf(workers.TaskOptions(tt.taskType)))
		})
	}
}
