package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/capstock/capstock/internal/domain/imports"
	"github.com/capstock/capstock/internal/domain/items"
	"github.com/capstock/capstock/internal/infra/metrics"
)

// ErrNoMappedColumns is returned when no spreadsheet column resolved to a
// canonical field, so an import would produce only empty records.
var ErrNoMappedColumns = errors.New("no columns mapped")

// Store is the persistence contract the importer consumes; the real
// implementation is the items pgx repo.
type Store interface {
	InsertMany(ctx context.Context, batch []items.Item) ([]int64, error)
}

// BatchLog records completed imports.
type BatchLog interface {
	Record(ctx context.Context, fileName string, count int) (*imports.Batch, error)
}

// Notifier is told about completed imports. Implementations must not block.
type Notifier interface {
	ImportCompleted(fileName string, count int)
}

// Service drives the whole ingestion flow: parse, map, coerce, persist.
type Service struct {
	log     *slog.Logger
	mapper  *Mapper
	store   Store
	batches BatchLog
	notify  Notifier
	now     func() time.Time
}

func NewService(log *slog.Logger, mapper *Mapper, store Store, batches BatchLog, notify Notifier) *Service {
	return &Service{
		log:     log,
		mapper:  mapper,
		store:   store,
		batches: batches,
		notify:  notify,
		now:     time.Now,
	}
}

const previewRows = 20

// Preview is what the client shows before the user confirms an import.
type Preview struct {
	FileName string   `json:"fileName"`
	Headers  []string `json:"headers"`
	Mapping  Mapping  `json:"mapping"`
	RowCount int      `json:"rowCount"`
	Sample   []Row    `json:"sample"`
}

// Preview parses the file and auto-detects a column mapping without
// persisting anything.
func (s *Service) Preview(name string, data []byte) (*Preview, error) {
	sheet, err := ParseFile(name, data)
	if err != nil {
		return nil, err
	}
	sample := sheet.Rows
	if len(sample) > previewRows {
		sample = sample[:previewRows]
	}
	return &Preview{
		FileName: name,
		Headers:  sheet.Headers,
		Mapping:  s.mapper.Resolve(sheet.Headers),
		RowCount: len(sheet.Rows),
		Sample:   sample,
	}, nil
}

// Result summarizes one finished import.
type Result struct {
	Batch    *imports.Batch `json:"batch"`
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
}

// Import runs the full flow. overrides holds the user's manual corrections
// to the auto-detected mapping and may be nil. Rows coerce without ever
// failing; rows that end up with an empty model are skipped, that rule
// belongs to the workflow rather than the coercer.
func (s *Service) Import(ctx context.Context, name string, data []byte, overrides Mapping) (*Result, error) {
	sheet, err := ParseFile(name, data)
	if err != nil {
		return nil, err
	}

	mapping := s.mapper.Resolve(sheet.Headers)
	for _, h := range sheet.Headers {
		if f, ok := overrides[h]; ok {
			mapping.Assign(h, f)
		}
	}
	confirmMapping(sheet.Headers, mapping)
	if len(mapping) == 0 {
		return nil, ErrNoMappedColumns
	}

	today := s.now().Format("2006-01-02")
	batch := make([]items.Item, 0, len(sheet.Rows))
	skipped := 0
	for _, row := range sheet.Rows {
		it := Coerce(row, mapping, today)
		if it.Model == "" {
			skipped++
			continue
		}
		batch = append(batch, it)
	}

	if _, err := s.store.InsertMany(ctx, batch); err != nil {
		return nil, fmt.Errorf("persist batch: %w", err)
	}
	rec, err := s.batches.Record(ctx, name, len(batch))
	if err != nil {
		return nil, fmt.Errorf("record batch: %w", err)
	}

	metrics.ImportsTotal.Inc()
	metrics.ImportRecordsTotal.Add(float64(len(batch)))
	if s.notify != nil {
		s.notify.ImportCompleted(name, len(batch))
	}
	s.log.Info("import completed", "file", name, "imported", len(batch), "skipped", skipped)

	return &Result{Batch: rec, Imported: len(batch), Skipped: skipped}, nil
}

// confirmMapping enforces the one-header-per-field invariant on the final
// mapping: the first header in sheet order keeps the field.
func confirmMapping(headers []string, mapping Mapping) {
	seen := make(map[Field]bool, len(mapping))
	for _, h := range headers {
		f, ok := mapping[h]
		if !ok {
			continue
		}
		if seen[f] {
			delete(mapping, h)
			continue
		}
		seen[f] = true
	}
}

// Template builds the downloadable XLSX template with two example rows.
func (s *Service) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Modelo", "Marca", "Tipo", "Cor", "Preço", "Quantidade", "Fornecedor", "Data Entrada", "Observações",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"iPhone 15 Pro", "Apple", "Silicone", "Preto", 29.90, 50, "Fornecedor A", "2024-01-15", "Modelo mais vendido"},
		{"Galaxy S24", "Samsung", "Rígida", "Transparente", 24.90, 30, "Fornecedor B", "2024-01-20", ""},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
