// internal/handlers/import.go
package handlers

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/workers"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ImportHandler stages uploaded files in object storage and queues their
// processing
type ImportHandler struct {
	responder
	queue       ports.TaskQueue
	storage     ports.ObjectStorage
	maxFileSize int64
}

// NewImportHandler creates a new import handler
func NewImportHandler(queue ports.TaskQueue, storage ports.ObjectStorage, maxFileSize int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "import"))},
		queue:       queue,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// ImportInventory handles POST /api/v1/inventory/import with an xlsx file
func (h *ImportHandler) ImportInventory(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, ".xlsx", contentTypeXLSX, func(jobID string) (string, string, any) {
		key := workers.ImportKey(jobID)
		return key, workers.TypeInventoryImport, workers.InventoryImportPayload{JobID: jobID, ObjectKey: key}
	})
}

// ImportPriceList handles POST /api/v1/inventory/pricelist with a PDF file
func (h *ImportHandler) ImportPriceList(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, ".pdf", contentTypePDF, func(jobID string) (string, string, any) {
		key := workers.PriceListKey(jobID)
		return key, workers.TypePriceListImport, workers.PriceListImportPayload{JobID: jobID, ObjectKey: key}
	})
}

// stage uploads the "file" form field and enqueues the task built by job.
// The staged object is removed again if the task cannot be queued.
func (h *ImportHandler) stage(w http.ResponseWriter, r *http.Request, ext, contentType string,
	job func(jobID string) (key, taskType string, payload any)) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if err := checkUpload(header, ext, contentType); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := uuid.New().String()
	key, taskType, payload := job(jobID)

	if _, err := h.storage.Upload(ctx, key, file, contentType); err != nil {
		h.logger.ErrorContext(ctx, "failed to stage upload",
			slog.String("key", key),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	taskID, err := h.queue.Enqueue(ctx, taskType, payload)
	if err != nil {
		if delErr := h.storage.Delete(ctx, key); delErr != nil {
			h.logger.WarnContext(ctx, "failed to remove staged upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		h.logger.ErrorContext(ctx, "failed to enqueue import",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "import queued",
		slog.String("job_id", jobID),
		slog.String("task_id", taskID),
		slog.String("type", taskType),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	h.respondJSON(w, http.StatusAccepted, JobResponse{
		JobID:   jobID,
		TaskID:  taskID,
		Status:  "queued",
		Message: fmt.Sprintf("%s queued for processing", header.Filename),
	})
}

// checkUpload accepts a file by extension or declared content type
func checkUpload(header *multipart.FileHeader, ext, contentType string) error {
	if strings.EqualFold(filepath.Ext(header.Filename), ext) {
		return nil
	}
	if header.Header.Get("Content-Type") == contentType {
		return nil
	}
	return fmt.Errorf("only %s files are allowed", ext)
}
