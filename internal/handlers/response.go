// internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

// responder writes JSON bodies for every handler in the package
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst as is.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// MedicineResponse is a catalog row as shown on the till
type MedicineResponse struct {
	ID       uuid.UUID       `json:"id"`
	Barcode  string          `json:"barcode"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	LowStock bool            `json:"low_stock"`
}

func newMedicineResponse(m domain.Medicine, threshold int) MedicineResponse {
	return MedicineResponse{
		ID:       m.ID,
		Barcode:  m.Barcode,
		Name:     m.Name,
		Price:    m.Price,
		Stock:    m.Stock,
		LowStock: m.IsLowStock(threshold),
	}
}

// CatalogResponse lists the cached catalog, optionally filtered
type CatalogResponse struct {
	Query string             `json:"query,omitempty"`
	Count int                `json:"count"`
	Items []MedicineResponse `json:"items"`
}

// CartLineResponse is one cart row with its subtotal
type CartLineResponse struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// CartResponse is the cart in insertion order plus its total
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

func newCartResponse(c domain.Cart) CartResponse {
	resp := CartResponse{
		Lines: make([]CartLineResponse, 0, c.Len()),
		Total: c.Total(),
	}
	for _, line := range c.Lines() {
		resp.Lines = append(resp.Lines, CartLineResponse{
			MedicineID: line.Medicine.ID,
			Barcode:    line.Medicine.Barcode,
			Name:       line.Medicine.Name,
			Price:      line.Medicine.Price,
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal(),
		})
	}
	return resp
}

// StateResponse is a snapshot of the terminal
type StateResponse struct {
	View         domain.View          `json:"view"`
	CatalogCount int                  `json:"catalog_count"`
	Cart         CartResponse         `json:"cart"`
	Editor       *domain.MedicineForm `json:"editor,omitempty"`
	Notice       string               `json:"notice,omitempty"`
}

func newStateResponse(s domain.State) StateResponse {
	return StateResponse{
		View:         s.View,
		CatalogCount: s.Catalog.Len(),
		Cart:         newCartResponse(s.Cart),
		Editor:       s.Editor,
		Notice:       s.Notice,
	}
}

// JobResponse acknowledges a queued background job
type JobResponse struct {
	JobID   string `json:"job_id"`
	TaskID  string `json:"task_id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
