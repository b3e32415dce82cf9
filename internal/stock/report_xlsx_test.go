package stock

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/capstock/capstock/internal/domain/items"
)

func TestReportExcel(t *testing.T) {
	list := []items.Item{
		{Model: "zero", Type: "Silicone", Color: "Preto", Quantity: 0, UnitPrice: 10},
		{Model: "low", Type: "Silicone", Color: "Azul", Quantity: 2, UnitPrice: 5},
		{Model: "ok", Type: "Rígida", Color: "Preto", Quantity: 30, UnitPrice: 8},
	}
	data, err := Classify(list, Options{Threshold: 5}).Excel()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	require.Contains(t, names, "Out of Stock")
	require.Contains(t, names, "Below Minimum")
	require.Contains(t, names, "Summary by Type")
	require.Contains(t, names, "Summary by Color")

	model, err := f.GetCellValue("Out of Stock", "A2")
	require.NoError(t, err)
	require.Equal(t, "zero", model)

	model, err = f.GetCellValue("Below Minimum", "A2")
	require.NoError(t, err)
	require.Equal(t, "low", model)

	// Summary rows are sorted by dimension value.
	dim, err := f.GetCellValue("Summary by Type", "A2")
	require.NoError(t, err)
	require.Equal(t, "Rígida", dim)
	total, err := f.GetCellValue("Summary by Type", "B3")
	require.NoError(t, err)
	require.Equal(t, "2", total)
}
