package importer

import (
	"strconv"
	"strings"

	"github.com/capstock/capstock/internal/domain/items"
)

// ParsePrice converts a raw price cell to a non-negative amount. Currency
// symbols and other junk are stripped; a comma is treated as the decimal
// separator and any dots before it as thousand separators, so "R$ 1.234,56"
// parses as 1234.56. Anything unparseable degrades to 0.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQuantity converts a raw quantity cell to a non-negative integer,
// keeping digits only. Unparseable input degrades to 0.
func ParseQuantity(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return v
}

// Coerce builds one typed item from a raw row using the confirmed mapping.
// The mapping must hold at most one header per field. Conversion never
// fails: malformed cells fall back to the field's default so dirty
// spreadsheets still import in full. defaultDate fills entryDate when the
// row supplies none.
func Coerce(row map[string]string, mapping Mapping, defaultDate string) items.Item {
	it := items.Item{EntryDate: defaultDate}
	for header, field := range mapping {
		raw := row[header]
		switch field {
		case FieldModel:
			it.Model = strings.TrimSpace(raw)
		case FieldBrand:
			it.Brand = strings.TrimSpace(raw)
		case FieldType:
			it.Type = strings.TrimSpace(raw)
		case FieldColor:
			it.Color = strings.TrimSpace(raw)
		case FieldPrice:
			it.UnitPrice = ParsePrice(raw)
		case FieldQuantity:
			it.Quantity = ParseQuantity(raw)
		case FieldSupplier:
			it.Supplier = strings.TrimSpace(raw)
		case FieldEntryDate:
			if v := strings.TrimSpace(raw); v != "" {
				it.EntryDate = v
			}
		case FieldNotes:
			it.Notes = strings.TrimSpace(raw)
		}
	}
	return it
}
