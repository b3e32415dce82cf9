package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for any extension other than
	// .xlsx, .xls or .csv. Checked before the file content is touched.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptySource is returned when the file yields no data rows.
	ErrEmptySource = errors.New("source contains no data rows")
)

// Row is one parsed spreadsheet row keyed by the literal header string.
// Empty cells are present with value "", never absent.
type Row map[string]string

// Sheet is the ordered result of parsing one source file.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// ParseFile turns raw file bytes into a Sheet. The extension decides the
// parser; everything downstream sees only string cells.
func ParseFile(name string, data []byte) (*Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xls":
		return parseWorkbook(data)
	case ".csv":
		return parseDelimited(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseWorkbook(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	return buildSheet(rows[0], rows[1:])
}

func parseDelimited(data []byte) (*Sheet, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return buildSheet(records[0], records[1:])
}

// sniffDelimiter picks ';' over ',' when the header line favors it; pt-BR
// exports commonly use semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func buildSheet(header []string, records [][]string) (*Sheet, error) {
	s := &Sheet{}
	// Columns with a blank header have nothing to map onto and are dropped.
	keep := make([]int, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		keep = append(keep, i)
		s.Headers = append(s.Headers, h)
	}
	if len(s.Headers) == 0 {
		return nil, ErrEmptySource
	}

	for _, rec := range records {
		row := make(Row, len(s.Headers))
		blank := true
		for n, i := range keep {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
			row[s.Headers[n]] = cell
		}
		if blank {
			continue
		}
		s.Rows = append(s.Rows, row)
	}
	if len(s.Rows) == 0 {
		return nil, ErrEmptySource
	}
	return s, nil
}
