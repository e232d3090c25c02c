// internal/handlers/export.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/ports"
	"github.com/ammerola/apotek-pos/internal/workers"
)

// ExportHandler queues inventory spreadsheets and hands out download links
type ExportHandler struct {
	responder
	queue   ports.TaskQueue
	storage ports.ObjectStorage
	linkTTL time.Duration
}

// NewExportHandler creates a new export handler. Download links stay valid
// for linkTTL.
func NewExportHandler(queue ports.TaskQueue, storage ports.ObjectStorage, linkTTL time.Duration, logger *slog.Logger) *ExportHandler {
	if linkTTL <= 0 {
		linkTTL = 15 * time.Minute
	}
	return &ExportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "export"))},
		queue:     queue,
		storage:   storage,
		linkTTL:   linkTTL,
	}
}

// ExportInventory handles POST /api/v1/inventory/export
func (h *ExportHandler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := uuid.New().String()

	taskID, err := h.queue.Enqueue(ctx, workers.TypeInventoryExport, workers.InventoryExportPayload{JobID: jobID})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue export",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	h.logger.InfoContext(ctx, "inventory export queued",
		slog.String("job_id", jobID),
		slog.String("task_id", taskID))

	h.respondJSON(w, http.StatusAccepted, JobResponse{
		JobID:   jobID,
		TaskID:  taskID,
		Status:  "queued",
		Message: "Export queued. Poll /api/v1/inventory/exports/" + jobID + " for the download link.",
	})
}

// GetExport handles GET /api/v1/inventory/exports/{job_id}
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}
	key := workers.ExportKey(jobID.String())

	exists, err := h.storage.Exists(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check export",
			slog.String("key", key),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to check export")
		return
	}
	if !exists {
		h.respondJSON(w, http.StatusNotFound, JobResponse{
			JobID:   jobID.String(),
			Status:  "pending",
			Message: "Export is not ready yet",
		})
		return
	}

	url, err := h.storage.PresignGet(ctx, key, h.linkTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign export link",
			slog.String("key", key),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create download link")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":     jobID.String(),
		"status":     "ready",
		"url":        url,
		"expires_in": int(h.linkTTL.Seconds()),
	})
}

// ReportLowStock handles POST /api/v1/inventory/low-stock-report
func (h *ExportHandler) ReportLowStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req workers.LowStockPayload
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Threshold < 0 {
		h.respondError(w, http.StatusBadRequest, "threshold must not be negative")
		return
	}

	taskID, err := h.queue.Enqueue(ctx, workers.TypeLowStockReport, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue low stock report",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue report")
		return
	}

	h.respondJSON(w, http.StatusAccepted, JobResponse{
		JobID:  taskID,
		TaskID: taskID,
		Status: "queued",
	})
}
