// Package stats computes catalog-wide aggregate statistics. Every call is a
// full pass over an in-memory snapshot; the collection is small enough that
// no incremental state is worth maintaining.
package stats

import (
	"sort"

	"github.com/capstock/capstock/internal/domain/items"
)

// Unspecified is the bucket label for items missing a dimension value.
// Grouping uses exact string equality, no normalization.
const Unspecified = "unspecified"

// Bucket accumulates one dimension value's totals.
type Bucket struct {
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
}

// Stats is the dashboard payload.
type Stats struct {
	TotalModels int     `json:"totalModels"`
	TotalUnits  int     `json:"totalUnits"`
	TotalValue  float64 `json:"totalValue"`

	ByBrand map[string]Bucket `json:"byBrand"`
	ByType  map[string]Bucket `json:"byType"`
	// Color tracks quantity only.
	ByColor map[string]int `json:"byColor"`

	// TopItems is the collection sorted by descending quantity, ties keeping
	// input order, truncated to ten.
	TopItems []items.Item `json:"topItems"`
}

const topItemsLimit = 10

func label(v string) string {
	if v == "" {
		return Unspecified
	}
	return v
}

// Aggregate computes all statistics in one pass. Total over any input,
// including the empty collection.
func Aggregate(list []items.Item) Stats {
	s := Stats{
		ByBrand: make(map[string]Bucket),
		ByType:  make(map[string]Bucket),
		ByColor: make(map[string]int),
	}

	for _, it := range list {
		value := it.UnitPrice * float64(it.Quantity)
		s.TotalModels++
		s.TotalUnits += it.Quantity
		s.TotalValue += value

		brand := s.ByBrand[label(it.Brand)]
		brand.Quantity += it.Quantity
		brand.Value += value
		s.ByBrand[label(it.Brand)] = brand

		typ := s.ByType[label(it.Type)]
		typ.Quantity += it.Quantity
		typ.Value += value
		s.ByType[label(it.Type)] = typ

		s.ByColor[label(it.Color)] += it.Quantity
	}

	top := make([]items.Item, len(list))
	copy(top, list)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topItemsLimit {
		top = top[:topItemsLimit]
	}
	s.TopItems = top

	return s
}
