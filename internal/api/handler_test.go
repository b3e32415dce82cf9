package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/capstock/capstock/internal/domain/imports"
	"github.com/capstock/capstock/internal/domain/items"
	"github.com/capstock/capstock/internal/importer"
	"github.com/capstock/capstock/internal/infra/notify"
)

type memoryStore struct {
	items   []items.Item
	batches []imports.Batch
	nextID  int64
}

func (s *memoryStore) ListAll(context.Context) ([]items.Item, error) {
	return append([]items.Item(nil), s.items...), nil
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*items.Item, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			it := s.items[i]
			return &it, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) Create(_ context.Context, it items.Item) (*items.Item, error) {
	if strings.TrimSpace(it.Model) == "" {
		return nil, items.ErrModelRequired
	}
	s.nextID++
	it.ID = s.nextID
	it.CreatedAt = time.Now()
	s.items = append(s.items, it)
	return &it, nil
}

func (s *memoryStore) Update(_ context.Context, id int64, it items.Item) (*items.Item, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			it.ID = id
			s.items[i] = it
			return &it, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) Delete(_ context.Context, id int64) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memoryStore) Search(_ context.Context, q string) ([]items.Item, error) {
	q = strings.ToLower(q)
	var out []items.Item
	for _, it := range s.items {
		hay := strings.ToLower(it.Model + " " + it.Brand + " " + it.Type + " " + it.Color + " " + it.Supplier)
		if strings.Contains(hay, q) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memoryStore) InsertMany(ctx context.Context, batch []items.Item) ([]int64, error) {
	ids := make([]int64, 0, len(batch))
	for _, it := range batch {
		created, err := s.Create(ctx, it)
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func (s *memoryStore) Count(context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *memoryStore) Record(_ context.Context, fileName string, count int) (*imports.Batch, error) {
	b := imports.Batch{ID: int64(len(s.batches) + 1), FileName: fileName, RecordCount: count, ImportedAt: time.Now()}
	s.batches = append([]imports.Batch{b}, s.batches...)
	return &b, nil
}

func (s *memoryStore) List(context.Context) ([]imports.Batch, error) {
	return append([]imports.Batch(nil), s.batches...), nil
}

func newTestHandler(store *memoryStore) http.Handler {
	log := slog.New(slog.DiscardHandler)
	mapper := importer.NewMapper(importer.DefaultAliases())
	svc := importer.NewService(log, mapper, store, store, nil)
	return NewHandler(log, store, store, svc, notify.Noop{}, 5).Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestItemCRUD(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	rec := doJSON(t, h, http.MethodPost, "/items", map[string]any{
		"model": "iPhone 15", "brand": "Apple", "unitPrice": 29.9, "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created items.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)

	rec = doJSON(t, h, http.MethodGet, "/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/items/1", map[string]any{"model": "iPhone 15 Pro", "quantity": 8})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/items/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/items/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateItemValidation(t *testing.T) {
	h := newTestHandler(&memoryStore{})

	rec := doJSON(t, h, http.MethodPost, "/items", map[string]any{"brand": "Apple"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "model is mandatory")

	rec = doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "X", "unitPrice": -1})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "negative price rejected")
}

func TestSearchItems(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "iPhone 15", "brand": "Apple"})
	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "Galaxy S24", "brand": "Samsung"})

	rec := doJSON(t, h, http.MethodGet, "/items?q=galaxy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []items.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Galaxy S24", list[0].Model)
}

func TestStatsEndpoint(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "A", "brand": "Apple", "unitPrice": 10, "quantity": 3})
	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "B", "unitPrice": 5, "quantity": 2})

	rec := doJSON(t, h, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TotalModels int     `json:"totalModels"`
		TotalUnits  int     `json:"totalUnits"`
		TotalValue  float64 `json:"totalValue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 2, got.TotalModels)
	require.Equal(t, 5, got.TotalUnits)
	require.InDelta(t, 40, got.TotalValue, 0.0001)
}

func TestStockReportEndpoint(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "zero", "type": "Silicone", "quantity": 0})
	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "low", "type": "Silicone", "quantity": 3})
	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "ok", "type": "Rígida", "quantity": 10})

	rec := doJSON(t, h, http.MethodGet, "/stock-report?threshold=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Zeroed       []items.Item `json:"zeroed"`
		BelowMinimum []items.Item `json:"belowMinimum"`
		Healthy      []items.Item `json:"healthy"`
		Types        []string     `json:"types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Zeroed, 1)
	require.Len(t, got.BelowMinimum, 1)
	require.Len(t, got.Healthy, 1)
	require.Equal(t, []string{"Rígida", "Silicone"}, got.Types)
}

func multipartUpload(t *testing.T, field, name string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestImportFlow(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	csv := []byte("Modelo,Marca,Quantidade\niPhone 15,Apple,50\n")

	body, ctype := multipartUpload(t, "file", "capas.csv", csv, nil)
	req := httptest.NewRequest(http.MethodPost, "/imports/preview", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var preview importer.Preview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	require.Equal(t, 1, preview.RowCount)
	require.Equal(t, importer.FieldModel, preview.Mapping["Modelo"])

	body, ctype = multipartUpload(t, "file", "capas.csv", csv, nil)
	req = httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", ctype)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.items, 1)
	require.Equal(t, "iPhone 15", store.items[0].Model)

	rec = doJSON(t, h, http.MethodGet, "/imports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []imports.Batch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	require.Equal(t, "capas.csv", history[0].FileName)
}

func TestImportWithMappingOverride(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	csv := []byte("Ref,Quantidade\nCapa X,5\n")
	mapping, err := json.Marshal(map[string]string{"Ref": "model"})
	require.NoError(t, err)

	body, ctype := multipartUpload(t, "file", "capas.csv", csv, map[string]string{"mapping": string(mapping)})
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.items, 1)
	require.Equal(t, "Capa X", store.items[0].Model)
}

func TestImportRejectsBadFiles(t *testing.T) {
	h := newTestHandler(&memoryStore{})

	body, ctype := multipartUpload(t, "file", "capas.pdf", []byte("junk"), nil)
	req := httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	body, ctype = multipartUpload(t, "file", "capas.csv", []byte("Modelo\n"), nil)
	req = httptest.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", ctype)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSeedSampleData(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)

	rec := doJSON(t, h, http.MethodPost, "/seed", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, store.items)
	require.Len(t, store.batches, 1)

	before := len(store.items)
	rec = doJSON(t, h, http.MethodPost, "/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code, "second seed is a no-op")
	require.Len(t, store.items, before)
}

func TestStockReportExport(t *testing.T) {
	store := &memoryStore{}
	h := newTestHandler(store)
	doJSON(t, h, http.MethodPost, "/items", map[string]any{"model": "zero", "type": "Silicone", "quantity": 0})

	rec := doJSON(t, h, http.MethodGet, "/stock-report/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	require.Contains(t, rec.Header().Get("Content-Disposition"), "stock_report_")
	require.NotEmpty(t, rec.Body.Bytes())
}
