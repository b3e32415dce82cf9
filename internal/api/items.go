package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/capstock/capstock/internal/domain/items"
)

type itemRequest struct {
	Model     string  `json:"model" validate:"required"`
	Brand     string  `json:"brand"`
	Type      string  `json:"type"`
	Color     string  `json:"color"`
	Supplier  string  `json:"supplier"`
	Notes     string  `json:"notes"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	EntryDate string  `json:"entryDate"`
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (*items.Item, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return &items.Item{
		Model:     req.Model,
		Brand:     req.Brand,
		Type:      req.Type,
		Color:     req.Color,
		Supplier:  req.Supplier,
		Notes:     req.Notes,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		EntryDate: req.EntryDate,
	}, true
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	var (
		list []items.Item
		err  error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		list, err = h.items.Search(r.Context(), q)
	} else {
		list, err = h.items.ListAll(r.Context())
	}
	if err != nil {
		h.serverError(w, "list items", err)
		return
	}
	if list == nil {
		list = []items.Item{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	it, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get item", err)
		return
	}
	if it == nil {
		h.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	h.writeJSON(w, http.StatusOK, it)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	it, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	created, err := h.items.Create(r.Context(), *it)
	if err != nil {
		if errors.Is(err, items.ErrModelRequired) {
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.serverError(w, "create item", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	it, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	updated, err := h.items.Update(r.Context(), id, *it)
	if err != nil {
		if errors.Is(err, items.ErrModelRequired) {
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.serverError(w, "update item", err)
		return
	}
	if updated == nil {
		h.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.items.Delete(r.Context(), id); err != nil {
		h.serverError(w, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
