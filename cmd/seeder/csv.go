// cmd/seeder/csv.go
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

// parseCSV reads barcode,name,price,stock rows. A header row is skipped
// when its first cell is "barcode". Empty price or stock cells stay nil
// so the editor reports them as missing.
func parseCSV(r io.Reader) ([]*domain.MedicineForm, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var forms []*domain.MedicineForm
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "barcode") {
			continue
		}
		if isBlank(record) {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 columns, got %d", line, len(record))
		}

		form := &domain.MedicineForm{
			Barcode: strings.TrimSpace(record[0]),
			Name:    strings.TrimSpace(record[1]),
		}

		if s := strings.TrimSpace(record[2]); s != "" {
			price, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid price %q: %w", line, s, err)
			}
			form.Price = &price
		}

		if s := strings.TrimSpace(record[3]); s != "" {
			stock, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid stock %q: %w", line, s, err)
			}
			form.Stock = &stock
		}

		forms = append(forms, form)
	}

	return forms, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
