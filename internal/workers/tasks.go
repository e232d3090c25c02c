// internal/workers/tasks.go
package workers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeReceiptArchive   = "receipt:archive"
	TypeInventoryExport  = "inventory:export"
	TypeInventoryImport  = "inventory:import"
	TypePriceListImport  = "pricelist:import"
	TypeLowStockReport   = "inventory:low_stock"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ReceiptArchivePayload carries a printed receipt to long-term storage.
// ReceiptID is the transaction id when the receipt came from a checkout.
type ReceiptArchivePayload struct {
	ReceiptID uuid.UUID       `json:"receipt_id"`
	Text      string          `json:"text"`
	Total     decimal.Decimal `json:"total"`
	PrintedAt time.Time       `json:"printed_at"`
}

// InventoryExportPayload requests a spreadsheet of the whole catalog
type InventoryExportPayload struct {
	JobID string `json:"job_id"`
}

// InventoryImportPayload points at an uploaded spreadsheet
type InventoryImportPayload struct {
	JobID     string `json:"job_id"`
	ObjectKey string `json:"object_key"`
}

// PriceListImportPayload points at an uploaded supplier price list
type PriceListImportPayload struct {
	JobID     string `json:"job_id"`
	ObjectKey string `json:"object_key"`
}

// LowStockPayload overrides the configured threshold when positive
type LowStockPayload struct {
	Threshold int `json:"threshold,omitempty"`
}

// ImportResult summarises a bulk save
type ImportResult struct {
	Rows           int      `json:"rows"`
	Saved          int      `json:"saved"`
	Errors         []string `json:"errors,omitempty"`
	ProcessingTime string   `json:"processing_time"`
}

// ExportKey is where the spreadsheet for job is stored
func ExportKey(jobID string) string {
	return "exports/inventory-" + jobID + ".xlsx"
}

// ImportKey is where an uploaded spreadsheet for job is staged
func ImportKey(jobID string) string {
	return "imports/inventory-" + jobID + ".xlsx"
}

// PriceListKey is where an uploaded price list for job is staged
func PriceListKey(jobID string) string {
	return "imports/pricelist-" + jobID + ".pdf"
}

// ReceiptKey partitions archived receipts by print date
func ReceiptKey(id uuid.UUID, at time.Time) string {
	return "receipts/" + at.Format("2006/01/02") + "/" + id.String() + ".txt"
}
