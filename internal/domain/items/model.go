package items

import (
	"errors"
	"time"
)

// ErrModelRequired is returned when a catalog entry is created or updated
// without a model name.
var ErrModelRequired = errors.New("model is required")

// Item is one phone-case catalog entry. Model is the only mandatory field;
// UnitPrice and Quantity are always non-negative after coercion.
type Item struct {
	ID        int64     `json:"id"`
	Model     string    `json:"model"`
	Brand     string    `json:"brand"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Supplier  string    `json:"supplier"`
	Notes     string    `json:"notes"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	EntryDate string    `json:"entryDate"` // calendar date, YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}
