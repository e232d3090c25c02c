// internal/workers/excel_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Obat"
)

var sheetHeader = []string{"ID", "Barcode", "Nama", "Harga", "Stok", "Stok Rendah"}

// MedicineSaver saves many forms and reports each failed row
type MedicineSaver interface {
	SaveAll(ctx context.Context, forms []*domain.MedicineForm) (int, []error)
}

// ExcelProcessor exports the catalog to xlsx and imports edited sheets back
type ExcelProcessor struct {
	store     ports.CatalogStore
	saver     MedicineSaver
	storage   ports.ObjectStorage
	threshold int
	logger    *slog.Logger
}

func NewExcelProcessor(store ports.CatalogStore, saver MedicineSaver, storage ports.ObjectStorage, threshold int, logger *slog.Logger) *ExcelProcessor {
	return &ExcelProcessor{
		store:     store,
		saver:     saver,
		storage:   storage,
		threshold: threshold,
		logger:    logger.With(slog.String("processor", "excel")),
	}
}

// ExportInventory writes every medicine, ordered by name, to a spreadsheet
func (p *ExcelProcessor) ExportInventory(ctx context.Context, t *asynq.Task) error {
	var payload InventoryExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	records, err := p.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list medicines: %w", err)
	}
	catalog := domain.NewCatalog(records)

	data, err := BuildInventorySheet(catalog, p.threshold)
	if err != nil {
		return err
	}

	key := ExportKey(payload.JobID)
	if _, err := p.storage.Upload(ctx, key, bytes.NewReader(data), xlsxContentType); err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}

	p.logger.InfoContext(ctx, "inventory exported",
		slog.String("job_id", payload.JobID),
		slog.String("key", key),
		slog.Int("rows", catalog.Len()))

	return nil
}

// ImportInventory reads an uploaded sheet and saves every row through the
// inventory editor. Rows failing validation are reported, not fatal.
func (p *ExcelProcessor) ImportInventory(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload InventoryImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing Excel file",
		slog.String("job_id", payload.JobID),
		slog.String("key", payload.ObjectKey))

	data, err := p.storage.Download(ctx, payload.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to download sheet: %w", err)
	}

	forms, err := ParseInventorySheet(data)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	saved, errs := p.saver.SaveAll(ctx, forms)
	result := ImportResult{
		Rows:           len(forms),
		Saved:          saved,
		ProcessingTime: time.Since(start).String(),
	}
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}

	if err := p.storage.Delete(ctx, payload.ObjectKey); err != nil {
		p.logger.WarnContext(ctx, "failed to remove imported sheet",
			slog.String("key", payload.ObjectKey),
			slog.String("error", err.Error()))
	}

	p.logger.InfoContext(ctx, "Excel processing completed",
		slog.String("job_id", payload.JobID),
		slog.Int("rows", result.Rows),
		slog.Int("saved", result.Saved),
		slog.Int("failed", len(result.Errors)))

	writeResult(t, result)

	return nil
}

// BuildInventorySheet renders the catalog as an xlsx workbook
func BuildInventorySheet(catalog domain.Catalog, threshold int) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range sheetHeader {
		header.AddCell().SetString(h)
	}

	for m := range catalog.All() {
		row := sheet.AddRow()
		row.AddCell().SetString(m.ID.String())
		row.AddCell().SetString(m.Barcode)
		row.AddCell().SetString(m.Name)
		row.AddCell().SetString(m.Price.String())
		row.AddCell().SetInt(m.Stock)
		if m.IsLowStock(threshold) {
			row.AddCell().SetString("ya")
		} else {
			row.AddCell().SetString("")
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseInventorySheet reads the first sheet. The header row is skipped and
// fully blank rows are ignored. Blank required cells stay empty in the form
// so the editor rejects that row.
func ParseInventorySheet(data []byte) ([]*domain.MedicineForm, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var (
		forms  []*domain.MedicineForm
		rowIdx int
	)
	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}

		form, err := parseRow(r)
		if err != nil {
			return fmt.Errorf("row %d: %w", rowIdx, err)
		}
		if form != nil {
			forms = append(forms, form)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel rows: %w", err)
	}

	return forms, nil
}

func parseRow(r *xlsx.Row) (*domain.MedicineForm, error) {
	get := func(i int) string {
		c := r.GetCell(i)
		if c == nil {
			return ""
		}
		return strings.TrimSpace(c.String())
	}

	idText, barcode, name, priceText, stockText := get(0), get(1), get(2), get(3), get(4)
	if idText == "" && barcode == "" && name == "" && priceText == "" && stockText == "" {
		return nil, nil
	}

	form := &domain.MedicineForm{Barcode: barcode, Name: name}

	if idText != "" {
		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", idText, err)
		}
		form.ID = id
	}

	if priceText != "" {
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", priceText, err)
		}
		form.Price = &price
	}

	if stockText != "" {
		stock, err := strconv.Atoi(stockText)
		if err != nil {
			return nil, fmt.Errorf("invalid stock %q: %w", stockText, err)
		}
		form.Stock = &stock
	}

	return form, nil
}
