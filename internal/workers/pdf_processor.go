// internal/workers/pdf_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// PriceListEntry is one parsed line of a supplier price list
type PriceListEntry struct {
	Barcode string
	Name    string
	Price   decimal.Decimal
}

var priceLineRe = regexp.MustCompile(`^(\d{3,14})\s+(.+?)\s+(?:Rp\.?\s*)?(\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d+(?:,\d{1,2})?)$`)

// PDFProcessor imports supplier price lists. Known barcodes get the new
// price; unknown ones are added with zero stock.
type PDFProcessor struct {
	store   ports.CatalogStore
	saver   MedicineSaver
	storage ports.ObjectStorage
	tempDir string
	logger  *slog.Logger
}

func NewPDFProcessor(store ports.CatalogStore, saver MedicineSaver, storage ports.ObjectStorage, tempDir string, logger *slog.Logger) *PDFProcessor {
	return &PDFProcessor{
		store:   store,
		saver:   saver,
		storage: storage,
		tempDir: tempDir,
		logger:  logger.With(slog.String("processor", "pdf")),
	}
}

// ImportPriceList downloads the uploaded PDF, extracts its lines and
// applies them to the catalog
func (p *PDFProcessor) ImportPriceList(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload PriceListImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing price list",
		slog.String("job_id", payload.JobID),
		slog.String("key", payload.ObjectKey))

	data, err := p.storage.Download(ctx, payload.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to download price list: %w", err)
	}

	lines, err := p.extractText(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w: %w", err, asynq.SkipRetry)
	}

	result, err := p.ApplyPriceList(ctx, lines)
	if err != nil {
		return err
	}
	result.ProcessingTime = time.Since(start).String()

	if err := p.storage.Delete(ctx, payload.ObjectKey); err != nil {
		p.logger.WarnContext(ctx, "failed to remove imported price list",
			slog.String("key", payload.ObjectKey),
			slog.String("error", err.Error()))
	}

	writeResult(t, result)

	p.logger.InfoContext(ctx, "price list processing completed",
		slog.String("job_id", payload.JobID),
		slog.Int("rows", result.Rows),
		slog.Int("saved", result.Saved))

	return nil
}

// ApplyPriceList parses lines and saves one form per recognised entry
func (p *PDFProcessor) ApplyPriceList(ctx context.Context, lines []string) (ImportResult, error) {
	entries := ParsePriceList(lines)
	if len(entries) == 0 {
		p.logger.WarnContext(ctx, "price list has no recognisable lines",
			slog.Int("lines", len(lines)))
		return ImportResult{}, nil
	}

	records, err := p.store.ListAll(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to list medicines: %w", err)
	}
	catalog := domain.NewCatalog(records)

	forms := make([]*domain.MedicineForm, 0, len(entries))
	for _, e := range entries {
		price := e.Price
		if m, ok := catalog.FindByBarcode(e.Barcode); ok {
			form := domain.NewMedicineForm(m)
			form.Price = &price
			forms = append(forms, form)
			continue
		}

		stock := 0
		forms = append(forms, &domain.MedicineForm{
			Barcode: e.Barcode,
			Name:    e.Name,
			Price:   &price,
			Stock:   &stock,
		})
	}

	saved, errs := p.saver.SaveAll(ctx, forms)
	result := ImportResult{Rows: len(forms), Saved: saved}
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}
	return result, nil
}

// ParsePriceList picks "barcode name price" lines. Prices use Indonesian
// notation: "." groups thousands and "," starts the fraction.
func ParsePriceList(lines []string) []PriceListEntry {
	var entries []PriceListEntry
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		match := priceLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		price, err := parseRupiah(match[3])
		if err != nil {
			continue
		}

		entries = append(entries, PriceListEntry{
			Barcode: match[1],
			Name:    strings.TrimSpace(match[2]),
			Price:   price,
		})
	}
	return entries
}

func parseRupiah(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

func (p *PDFProcessor) extractText(ctx context.Context, data []byte) ([]string, error) {
	tmp, err := os.CreateTemp(p.tempDir, "pricelist-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	f, r, err := pdf.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			p.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}

		for _, row := range rows {
			var b strings.Builder
			for i, word := range row.Content {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(word.S)
			}
			lines = append(lines, b.String())
		}
	}

	return lines, nil
}
