package stock

import (
	"bytes"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/capstock/capstock/internal/domain/items"
)

// Excel renders the report as a workbook: one sheet per stock bucket that
// needs restocking attention, plus the two dimension summaries.
func (r Report) Excel() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, "Out of Stock"); err != nil {
		return nil, err
	}
	if err := writeItemSheet(f, "Out of Stock", r.Zeroed); err != nil {
		return nil, err
	}

	for _, s := range []struct {
		name string
		rows []items.Item
	}{
		{"Below Minimum", r.BelowMinimum},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeItemSheet(f, s.name, s.rows); err != nil {
			return nil, err
		}
	}

	if err := writeSummarySheet(f, "Summary by Type", "Type", r.ByType); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, "Summary by Color", "Color", r.ByColor); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeItemSheet(f *excelize.File, sheet string, list []items.Item) error {
	header := []interface{}{"Model", "Brand", "Type", "Color", "Quantity", "Unit Price", "Supplier", "Entry Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, it := range list {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		rec := []interface{}{it.Model, it.Brand, it.Type, it.Color, it.Quantity, it.UnitPrice, it.Supplier, it.EntryDate}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet, dim string, summary map[string]DimensionSummary) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{dim, "Total", "Out of Stock", "Below Minimum"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := 2
	for _, k := range keys {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		s := summary[k]
		rec := []interface{}{k, s.Total, s.Zeroed, s.BelowMinimum}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			return err
		}
		row++
	}
	return nil
}
