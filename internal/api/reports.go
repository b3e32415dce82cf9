package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/capstock/capstock/internal/stats"
	"github.com/capstock/capstock/internal/stock"
)

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListAll(r.Context())
	if err != nil {
		h.serverError(w, "load items", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats.Aggregate(list))
}

func (h *Handler) stockOptions(r *http.Request) stock.Options {
	opts := stock.Options{
		Type:      r.URL.Query().Get("type"),
		Color:     r.URL.Query().Get("color"),
		Threshold: h.threshold,
	}
	if t, err := strconv.Atoi(r.URL.Query().Get("threshold")); err == nil && t > 0 {
		opts.Threshold = t
	}
	return opts
}

func (h *Handler) getStockReport(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListAll(r.Context())
	if err != nil {
		h.serverError(w, "load items", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stock.Classify(list, h.stockOptions(r)))
}

func (h *Handler) exportStockReport(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListAll(r.Context())
	if err != nil {
		h.serverError(w, "load items", err)
		return
	}
	data, err := stock.Classify(list, h.stockOptions(r)).Excel()
	if err != nil {
		h.serverError(w, "render report", err)
		return
	}

	name := fmt.Sprintf("stock_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}

func (h *Handler) sendStockAlert(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListAll(r.Context())
	if err != nil {
		h.serverError(w, "load items", err)
		return
	}
	report := stock.Classify(list, h.stockOptions(r))
	h.notify.LowStock(len(report.Zeroed), len(report.BelowMinimum))
	h.writeJSON(w, http.StatusOK, map[string]int{
		"zeroed":       len(report.Zeroed),
		"belowMinimum": len(report.BelowMinimum),
	})
}
