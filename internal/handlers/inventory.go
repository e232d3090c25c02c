// internal/handlers/inventory.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// InventoryHandler drives the inventory editor form
type InventoryHandler struct {
	responder
	service ports.POSService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.POSService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		responder: responder{logger: logger.With(slog.String("handler", "inventory"))},
		service:   service,
	}
}

// OpenEditorRequest picks the record to edit. A missing id opens a blank form.
type OpenEditorRequest struct {
	ID uuid.UUID `json:"id,omitempty"`
}

// OpenEditor handles POST /api/v1/inventory/editor
func (h *InventoryHandler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OpenEditorRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.service.OpenEditor(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrMedicineNotFound) {
			h.respondError(w, http.StatusNotFound, "Medicine not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to open editor",
			slog.String("medicine_id", req.ID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to open editor")
		return
	}

	h.respondJSON(w, http.StatusOK, form)
}

// CloseEditor handles DELETE /api/v1/inventory/editor
func (h *InventoryHandler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	h.service.CloseEditor(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// SaveMedicine handles PUT /api/v1/inventory. The body is the editor form;
// a form without id inserts a new record.
func (h *InventoryHandler) SaveMedicine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form domain.MedicineForm
	if err := decodeJSON(r, &form); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SaveMedicine(ctx, &form); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			h.respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": ve.Error(),
				"field": ve.Field,
			})
			return
		}

		h.logger.ErrorContext(ctx, "failed to save medicine",
			slog.String("barcode", form.Barcode),
			slog.String("error", err.Error()))
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "Failed to save medicine",
			"notice": h.service.State().Notice,
		})
		return
	}

	h.respondJSON(w, http.StatusOK, newStateResponse(h.service.State()))
}
