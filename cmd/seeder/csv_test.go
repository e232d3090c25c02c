// cmd/seeder/csv_test.go
package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("header_and_rows", func(t *testing.T) {
		input := "barcode,name,price,stock\n111,Paracetamol,5000,20\n222, Amoxicillin ,12500.50,7\n\n"

		forms, err := parseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, forms, 2)

		assert.Equal(t, "111", forms[0].Barcode)
		assert.Equal(t, "Paracetamol", forms[0].Name)
		assert.Equal(t, "5000", forms[0].Price.String())
		assert.Equal(t, 20, *forms[0].Stock)

		assert.Equal(t, "Amoxicillin", forms[1].Name)
		assert.Equal(t, "12500.5", forms[1].Price.String())
	})

	t.Run("no_header", func(t *testing.T) {
		forms, err := parseCSV(strings.NewReader("111,Paracetamol,5000,20\n"))
		require.NoError(t, err)
		require.Len(t, forms, 1)
	})

	t.Run("empty_cells_stay_nil", func(t *testing.T) {
		forms, err := parseCSV(strings.NewReader("111,Paracetamol,,\n"))
		require.NoError(t, err)
		require.Len(t, forms, 1)
		assert.Nil(t, forms[0].Price)
		assert.Nil(t, forms[0].Stock)
	})

	t.Run("invalid_price", func(t *testing.T) {
		_, err := parseCSV(strings.NewReader("111,Paracetamol,lima ribu,20\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("short_row", func(t *testing.T) {
		_, err := parseCSV(strings.NewReader("barcode,name,price,stock\n111,Paracetamol\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}
