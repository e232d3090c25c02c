// internal/handlers/transfer_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/apotek-pos/internal/handlers"
	"github.com/ammerola/apotek-pos/internal/workers"
	"github.com/ammerola/apotek-pos/test/helpers"
	"github.com/ammerola/apotek-pos/test/mocks"
)

func multipartUpload(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportHandler_ImportInventory(t *testing.T) {
	content := []byte("PK fake workbook")

	tests := []struct {
		name           string
		filename       string
		setupMocks     func(*mocks.MockTaskQueue, *mocks.MockObjectStorage)
		expectedStatus int
	}{
		{
			name:     "stages_and_queues",
			filename: "stok.xlsx",
			setupMocks: func(q *mocks.MockTaskQueue, s *mocks.MockObjectStorage) {
				var stagedKey string
				s.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, key string, data io.Reader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "imports/inventory-"))
						b, err := io.ReadAll(data)
						require.NoError(t, err)
						assert.Equal(t, content, b)
						stagedKey = key
						return key, nil
					})
				q.EXPECT().
					Enqueue(gomock.Any(), workers.TypeInventoryImport, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, payload any) (string, error) {
						p := payload.(workers.InventoryImportPayload)
						assert.Equal(t, stagedKey, p.ObjectKey)
						assert.Equal(t, workers.ImportKey(p.JobID), p.ObjectKey)
						return "task-1", nil
					})
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "rejects_other_file_types",
			filename:       "stok.csv",
			setupMocks:     func(*mocks.MockTaskQueue, *mocks.MockObjectStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "storage_failure",
			filename: "stok.xlsx",
			setupMocks: func(q *mocks.MockTaskQueue, s *mocks.MockObjectStorage) {
				s.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket gone"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:     "queue_failure_removes_staged_file",
			filename: "stok.xlsx",
			setupMocks: func(q *mocks.MockTaskQueue, s *mocks.MockObjectStorage) {
				s.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("k", nil)
				q.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
				s.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			queue := mocks.NewMockTaskQueue(ctrl)
			storage := mocks.NewMockObjectStorage(ctrl)
			tt.setupMocks(queue, storage)

			handler := handlers.NewImportHandler(queue, storage, 1<<20, helpers.TestLogger())

			w := httptest.NewRecorder()
			handler.ImportInventory(w, multipartUpload(t, "/api/v1/inventory/import", tt.filename, content))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusAccepted {
				body := decodeBody(t, w)
				assert.Equal(t, "queued", body["status"])
				assert.Equal(t, "task-1", body["task_id"])
				_, err := uuid.Parse(body["job_id"].(string))
				assert.NoError(t, err)
			}
		})
	}
}

func TestImportHandler_ImportPriceList(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockTaskQueue(ctrl)
	storage := mocks.NewMockObjectStorage(ctrl)

	storage.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
		Return("k", nil)
	queue.EXPECT().
		Enqueue(gomock.Any(), workers.TypePriceListImport, gomock.AssignableToTypeOf(workers.PriceListImportPayload{})).
		Return("task-2", nil)

	handler := handlers.NewImportHandler(queue, storage, 1<<20, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ImportPriceList(w, multipartUpload(t, "/api/v1/inventory/pricelist", "harga.PDF", []byte("%PDF-1.4")))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestImportHandler_RejectsOversizedUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := handlers.NewImportHandler(mocks.NewMockTaskQueue(ctrl), mocks.NewMockObjectStorage(ctrl), 512, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ImportInventory(w, multipartUpload(t, "/api/v1/inventory/import", "stok.xlsx", bytes.Repeat([]byte("x"), 4096)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler(t *testing.T) {
	t.Run("queues_export", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queue := mocks.NewMockTaskQueue(ctrl)
		handler := handlers.NewExportHandler(queue, mocks.NewMockObjectStorage(ctrl), time.Minute, helpers.TestLogger())

		queue.EXPECT().
			Enqueue(gomock.Any(), workers.TypeInventoryExport, gomock.AssignableToTypeOf(workers.InventoryExportPayload{})).
			Return("task-3", nil)

		w := httptest.NewRecorder()
		handler.ExportInventory(w, httptest.NewRequest("POST", "/api/v1/inventory/export", nil))

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "queued", decodeBody(t, w)["status"])
	})

	t.Run("pending_until_uploaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockObjectStorage(ctrl)
		handler := handlers.NewExportHandler(mocks.NewMockTaskQueue(ctrl), storage, time.Minute, helpers.TestLogger())

		jobID := uuid.New().String()
		storage.EXPECT().Exists(gomock.Any(), workers.ExportKey(jobID)).Return(false, nil)

		req := httptest.NewRequest("GET", "/api/v1/inventory/exports/"+jobID, nil)
		req.SetPathValue("job_id", jobID)
		w := httptest.NewRecorder()
		handler.GetExport(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "pending", decodeBody(t, w)["status"])
	})

	t.Run("ready_returns_signed_link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockObjectStorage(ctrl)
		handler := handlers.NewExportHandler(mocks.NewMockTaskQueue(ctrl), storage, time.Minute, helpers.TestLogger())

		jobID := uuid.New().String()
		key := workers.ExportKey(jobID)
		storage.EXPECT().Exists(gomock.Any(), key).Return(true, nil)
		storage.EXPECT().PresignGet(gomock.Any(), key, time.Minute).Return("https://s3.local/"+key+"?sig=1", nil)

		req := httptest.NewRequest("GET", "/api/v1/inventory/exports/"+jobID, nil)
		req.SetPathValue("job_id", jobID)
		w := httptest.NewRecorder()
		handler.GetExport(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, "https://s3.local/"+key+"?sig=1", body["url"])
		assert.Equal(t, float64(60), body["expires_in"])
	})

	t.Run("invalid_job_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := handlers.NewExportHandler(mocks.NewMockTaskQueue(ctrl), mocks.NewMockObjectStorage(ctrl), time.Minute, helpers.TestLogger())

		req := httptest.NewRequest("GET", "/api/v1/inventory/exports/../../etc", nil)
		req.SetPathValue("job_id", "../../etc")
		w := httptest.NewRecorder()
		handler.GetExport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("low_stock_report", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queue := mocks.NewMockTaskQueue(ctrl)
		handler := handlers.NewExportHandler(queue, mocks.NewMockObjectStorage(ctrl), time.Minute, helpers.TestLogger())

		queue.EXPECT().
			Enqueue(gomock.Any(), workers.TypeLowStockReport, workers.LowStockPayload{Threshold: 5}).
			Return("task-4", nil)

		w := httptest.NewRecorder()
		handler.ReportLowStock(w, httptest.NewRequest("POST", "/api/v1/inventory/low-stock-report", strings.NewReader(`{"threshold":5}`)))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
