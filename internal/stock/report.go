// Package stock partitions the catalog into stock-health buckets for
// restocking reports.
package stock

import (
	"sort"
	"strings"

	"github.com/capstock/capstock/internal/domain/items"
)

// Unspecified labels items missing the summarized dimension.
const Unspecified = "unspecified"

// Options filters and parameterizes a classification. Threshold is the
// caller's responsibility and must be positive; it is not validated here.
type Options struct {
	Type      string
	Color     string
	Threshold int
}

// DimensionSummary tallies one dimension value within the filtered set.
// The healthy count is derivable as Total - Zeroed - BelowMinimum.
type DimensionSummary struct {
	Total        int `json:"total"`
	Zeroed       int `json:"zeroed"`
	BelowMinimum int `json:"belowMinimum"`
}

// Report is one classification result. Types and Colors always cover the
// unfiltered collection so the client can populate filter choices.
type Report struct {
	Zeroed       []items.Item `json:"zeroed"`
	BelowMinimum []items.Item `json:"belowMinimum"`
	Healthy      []items.Item `json:"healthy"`

	ByType  map[string]DimensionSummary `json:"byType"`
	ByColor map[string]DimensionSummary `json:"byColor"`

	Types  []string `json:"types"`
	Colors []string `json:"colors"`

	TotalFiltered int `json:"totalFiltered"`
	Threshold     int `json:"threshold"`
}

func matches(value, filter string) bool {
	return filter == "" || strings.EqualFold(value, filter)
}

func label(v string) string {
	if v == "" {
		return Unspecified
	}
	return v
}

// Classify filters the collection, splits it into three disjoint buckets
// (zeroed, below minimum, healthy — first match wins, healthy is strictly
// above the threshold) and summarizes per type and color. Total over any
// input, including the empty collection.
func Classify(list []items.Item, opts Options) Report {
	r := Report{
		Zeroed:       []items.Item{},
		BelowMinimum: []items.Item{},
		Healthy:      []items.Item{},
		ByType:       make(map[string]DimensionSummary),
		ByColor:      make(map[string]DimensionSummary),
		Threshold:    opts.Threshold,
	}

	for _, it := range list {
		if !matches(it.Type, opts.Type) || !matches(it.Color, opts.Color) {
			continue
		}
		r.TotalFiltered++

		typ := r.ByType[label(it.Type)]
		col := r.ByColor[label(it.Color)]
		typ.Total++
		col.Total++

		switch {
		case it.Quantity == 0:
			r.Zeroed = append(r.Zeroed, it)
			typ.Zeroed++
			col.Zeroed++
		case it.Quantity <= opts.Threshold:
			r.BelowMinimum = append(r.BelowMinimum, it)
			typ.BelowMinimum++
			col.BelowMinimum++
		default:
			r.Healthy = append(r.Healthy, it)
		}

		r.ByType[label(it.Type)] = typ
		r.ByColor[label(it.Color)] = col
	}

	r.Types = distinct(list, func(it items.Item) string { return it.Type })
	r.Colors = distinct(list, func(it items.Item) string { return it.Color })

	return r
}

// distinct collects the sorted non-empty values of one dimension across the
// whole (unfiltered) collection.
func distinct(list []items.Item, dim func(items.Item) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range list {
		v := dim(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
