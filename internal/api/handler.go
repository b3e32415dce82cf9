// Package api exposes the catalog over HTTP/JSON. The core packages stay
// pure; everything request-shaped lives here.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/capstock/capstock/internal/domain/imports"
	"github.com/capstock/capstock/internal/domain/items"
	"github.com/capstock/capstock/internal/importer"
	"github.com/capstock/capstock/internal/infra/notify"
)

// ItemStore is the persistence contract the handlers consume; the pgx repo
// implements it, tests use an in-memory fake.
type ItemStore interface {
	ListAll(ctx context.Context) ([]items.Item, error)
	GetByID(ctx context.Context, id int64) (*items.Item, error)
	Create(ctx context.Context, it items.Item) (*items.Item, error)
	Update(ctx context.Context, id int64, it items.Item) (*items.Item, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]items.Item, error)
	InsertMany(ctx context.Context, batch []items.Item) ([]int64, error)
	Count(ctx context.Context) (int64, error)
}

// BatchLog lists and records import history.
type BatchLog interface {
	List(ctx context.Context) ([]imports.Batch, error)
	Record(ctx context.Context, fileName string, count int) (*imports.Batch, error)
}

// Handler wires the HTTP endpoints.
type Handler struct {
	log       *slog.Logger
	items     ItemStore
	batches   BatchLog
	importer  *importer.Service
	notify    notify.Notifier
	validate  *validator.Validate
	threshold int
}

func NewHandler(log *slog.Logger, store ItemStore, batches BatchLog, imp *importer.Service, n notify.Notifier, defaultThreshold int) *Handler {
	return &Handler{
		log:       log,
		items:     store,
		batches:   batches,
		importer:  imp,
		notify:    n,
		validate:  validator.New(),
		threshold: defaultThreshold,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/items", h.listItems)
	r.Post("/items", h.createItem)
	r.Get("/items/{id}", h.getItem)
	r.Put("/items/{id}", h.updateItem)
	r.Delete("/items/{id}", h.deleteItem)

	r.Get("/stats", h.getStats)
	r.Get("/stock-report", h.getStockReport)
	r.Get("/stock-report/export", h.exportStockReport)
	r.Post("/stock-report/alert", h.sendStockAlert)

	r.Post("/imports/preview", h.previewImport)
	r.Post("/imports", h.runImport)
	r.Get("/imports", h.listImports)
	r.Get("/imports/template", h.downloadTemplate)

	r.Post("/seed", h.seedSampleData)

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, "err", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}
