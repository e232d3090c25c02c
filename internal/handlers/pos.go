// internal/handlers/pos.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/adapters/scanner"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// POSHandler exposes the cashier terminal over HTTP
type POSHandler struct {
	responder
	service   ports.POSService
	feed      ports.ScanFeed
	threshold int
}

// NewPOSHandler creates a new POS handler. feed receives barcodes posted
// by a reader that cannot talk to the scanner directly.
func NewPOSHandler(service ports.POSService, feed ports.ScanFeed, lowStockThreshold int, logger *slog.Logger) *POSHandler {
	return &POSHandler{
		responder: responder{logger: logger.With(slog.String("handler", "pos"))},
		service:   service,
		feed:      feed,
		threshold: lowStockThreshold,
	}
}

// GetState handles GET /api/v1/state
func (h *POSHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, newStateResponse(h.service.State()))
}

// SwitchViewRequest selects the active screen
type SwitchViewRequest struct {
	View domain.View `json:"view"`
}

// SwitchView handles PUT /api/v1/view
func (h *POSHandler) SwitchView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SwitchViewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.View.Valid() {
		h.respondError(w, http.StatusBadRequest, "view must be kasir or inventory")
		return
	}

	if err := h.service.SwitchView(ctx, req.View); err != nil {
		// The view has changed even when the scanner could not follow.
		h.logger.ErrorContext(ctx, "scanner did not follow view change",
			slog.String("view", string(req.View)),
			slog.String("error", err.Error()))
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"state":   newStateResponse(h.service.State()),
			"warning": err.Error(),
		})
		return
	}

	h.respondJSON(w, http.StatusOK, newStateResponse(h.service.State()))
}

// ListCatalog handles GET /api/v1/catalog?q=
func (h *POSHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	catalog := h.service.State().Catalog

	items := make([]MedicineResponse, 0, catalog.Len())
	for m := range catalog.Filter(query) {
		items = append(items, newMedicineResponse(m, h.threshold))
	}

	h.respondJSON(w, http.StatusOK, CatalogResponse{
		Query: query,
		Count: len(items),
		Items: items,
	})
}

// ListLowStock handles GET /api/v1/catalog/low-stock
func (h *POSHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.State().Catalog

	items := make([]MedicineResponse, 0)
	for m := range catalog.LowStock(h.threshold) {
		items = append(items, newMedicineResponse(m, h.threshold))
	}

	h.respondJSON(w, http.StatusOK, CatalogResponse{Count: len(items), Items: items})
}

// RefreshCatalog handles POST /api/v1/catalog/refresh
func (h *POSHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.RefreshCatalog(r.Context())

	items := make([]MedicineResponse, 0, catalog.Len())
	for m := range catalog.All() {
		items = append(items, newMedicineResponse(m, h.threshold))
	}

	h.respondJSON(w, http.StatusOK, CatalogResponse{Count: len(items), Items: items})
}

// GetCart handles GET /api/v1/cart
func (h *POSHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, newCartResponse(h.service.State().Cart))
}

// AddToCartRequest names the catalog record to add
type AddToCartRequest struct {
	MedicineID uuid.UUID `json:"medicine_id"`
}

// AddToCart handles POST /api/v1/cart/items
func (h *POSHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MedicineID == uuid.Nil {
		h.respondError(w, http.StatusBadRequest, "medicine_id is required")
		return
	}

	cart, err := h.service.AddToCart(ctx, req.MedicineID)
	if err != nil {
		if errors.Is(err, domain.ErrMedicineNotFound) {
			h.respondError(w, http.StatusNotFound, "Medicine not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to add to cart",
			slog.String("medicine_id", req.MedicineID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	h.respondJSON(w, http.StatusOK, newCartResponse(cart))
}

// RemoveFromCart handles DELETE /api/v1/cart/items/{id}
func (h *POSHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid medicine ID format")
		return
	}

	h.respondJSON(w, http.StatusOK, newCartResponse(h.service.RemoveFromCart(r.Context(), id)))
}

// ScanRequest carries one decoded barcode
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// Scan handles POST /api/v1/scans. The barcode is handed to the live scan
// session; an unknown barcode is accepted and changes nothing.
func (h *POSHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Barcode) == "" {
		h.respondError(w, http.StatusBadRequest, "barcode is required")
		return
	}

	if err := h.feed.Push(ctx, req.Barcode); err != nil {
		switch {
		case errors.Is(err, scanner.ErrNoActiveSession):
			h.respondError(w, http.StatusConflict, "Scanner is not active")
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			h.respondError(w, http.StatusServiceUnavailable, "Scanner is busy")
		default:
			h.logger.ErrorContext(ctx, "failed to push scan",
				slog.String("error", err.Error()))
			h.respondError(w, http.StatusInternalServerError, "Failed to deliver scan")
		}
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// CheckoutRequest carries the cashier's answer to the checkout prompt
type CheckoutRequest struct {
	Confirm bool `json:"confirm"`
}

// CheckoutResponse reports the outcome and the cart afterwards
type CheckoutResponse struct {
	domain.CheckoutResult
	Prompt string       `json:"prompt"`
	Notice string       `json:"notice,omitempty"`
	Cart   CartResponse `json:"cart"`
}

// Checkout handles POST /api/v1/checkout
func (h *POSHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer := ports.ConfirmFunc(func(context.Context, string) bool { return req.Confirm })
	result, err := h.service.Checkout(ctx, answer)

	state := h.service.State()
	resp := CheckoutResponse{
		CheckoutResult: result,
		Prompt:         domain.CheckoutPrompt,
		Notice:         state.Notice,
		Cart:           newCartResponse(state.Cart),
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "checkout failed",
			slog.Int("steps_completed", result.StepsCompleted),
			slog.Int("steps_planned", result.StepsPlanned),
			slog.String("error", err.Error()))
		if resp.Notice == "" {
			resp.Notice = "Error: " + err.Error()
		}
		h.respondJSON(w, http.StatusInternalServerError, resp)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
