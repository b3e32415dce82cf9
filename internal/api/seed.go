package api

import (
	"net/http"

	"github.com/capstock/capstock/internal/domain/items"
)

// sampleItems covers every stock bucket and a spread of brands, types and
// colors so the dashboard has something to show on a fresh install.
var sampleItems = []items.Item{
	{Model: "iPhone 15 Pro Max", Brand: "Apple", Type: "Silicone", Color: "Preto", UnitPrice: 34.90, Quantity: 45, Supplier: "ImportCases", EntryDate: "2025-01-10"},
	{Model: "iPhone 15 Pro Max", Brand: "Apple", Type: "Transparente", Color: "Transparente", UnitPrice: 19.90, Quantity: 0, Supplier: "ImportCases", EntryDate: "2025-01-10"},
	{Model: "iPhone 15 Pro", Brand: "Apple", Type: "Carteira", Color: "Marrom", UnitPrice: 49.90, Quantity: 3, Supplier: "CaseWholesale", EntryDate: "2025-01-15"},
	{Model: "iPhone 15", Brand: "Apple", Type: "Rígida", Color: "Vermelho", UnitPrice: 24.90, Quantity: 0, Supplier: "ImportCases", EntryDate: "2025-01-08"},
	{Model: "iPhone 14", Brand: "Apple", Type: "Transparente", Color: "Transparente", UnitPrice: 14.90, Quantity: 50, Supplier: "CaseWholesale", EntryDate: "2024-12-20"},
	{Model: "Galaxy S24 Ultra", Brand: "Samsung", Type: "Silicone", Color: "Preto", UnitPrice: 34.90, Quantity: 35, Supplier: "ImportCases", EntryDate: "2025-01-15"},
	{Model: "Galaxy S24", Brand: "Samsung", Type: "Carteira", Color: "Preto", UnitPrice: 44.90, Quantity: 1, Supplier: "CaseWholesale", EntryDate: "2025-01-14"},
	{Model: "Galaxy A54", Brand: "Samsung", Type: "Transparente", Color: "Transparente", UnitPrice: 12.90, Quantity: 5, Supplier: "ImportCases", EntryDate: "2024-12-05"},
	{Model: "Moto G84", Brand: "Motorola", Type: "Silicone", Color: "Preto", UnitPrice: 19.90, Quantity: 25, Supplier: "CaseWholesale", EntryDate: "2025-01-05"},
	{Model: "Moto G73", Brand: "Motorola", Type: "Anti-impacto", Color: "Preto", UnitPrice: 29.90, Quantity: 0, Supplier: "ProtectMax", EntryDate: "2024-12-10"},
	{Model: "Redmi Note 13 Pro", Brand: "Xiaomi", Type: "Silicone", Color: "Preto", UnitPrice: 17.90, Quantity: 30, Supplier: "ImportCases", EntryDate: "2025-01-08"},
	{Model: "Redmi Note 13", Brand: "Xiaomi", Type: "Transparente", Color: "Transparente", UnitPrice: 11.90, Quantity: 4, Supplier: "ImportCases", EntryDate: "2025-01-06"},
	{Model: "Poco X6", Brand: "Xiaomi", Type: "Silicone", Color: "Amarelo", UnitPrice: 16.90, Quantity: 20, Supplier: "CaseWholesale", EntryDate: "2024-12-18"},
	{Model: "Realme C55", Brand: "Realme", Type: "Silicone", Color: "Rosa", UnitPrice: 12.90, Quantity: 8, Supplier: "CaseWholesale", EntryDate: "2024-12-22"},
}

// seedSampleData loads demo items into an empty catalog. A catalog that
// already has items is left untouched.
func (h *Handler) seedSampleData(w http.ResponseWriter, r *http.Request) {
	n, err := h.items.Count(r.Context())
	if err != nil {
		h.serverError(w, "count items", err)
		return
	}
	if n > 0 {
		h.writeJSON(w, http.StatusOK, map[string]any{"seeded": 0, "existing": n})
		return
	}

	if _, err := h.items.InsertMany(r.Context(), sampleItems); err != nil {
		h.serverError(w, "seed items", err)
		return
	}
	if _, err := h.batches.Record(r.Context(), "dados_exemplo_gerados.xlsx", len(sampleItems)); err != nil {
		h.serverError(w, "record seed batch", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"seeded": len(sampleItems)})
}
