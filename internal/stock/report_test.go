package stock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/capstock/capstock/internal/domain/items"
)

func TestClassifyBuckets(t *testing.T) {
	list := []items.Item{
		{Model: "zero", Quantity: 0},
		{Model: "low", Quantity: 3},
		{Model: "ok", Quantity: 10},
	}

	r := Classify(list, Options{Threshold: 5})
	require.Len(t, r.Zeroed, 1)
	require.Len(t, r.BelowMinimum, 1)
	require.Len(t, r.Healthy, 1)
	require.Equal(t, "zero", r.Zeroed[0].Model)
	require.Equal(t, "low", r.BelowMinimum[0].Model)
	require.Equal(t, "ok", r.Healthy[0].Model)
	require.Equal(t, 3, r.TotalFiltered)
}

func TestClassifyThresholdBoundary(t *testing.T) {
	// Healthy requires strictly more than the threshold, so quantity equal
	// to the threshold is still below minimum.
	r := Classify([]items.Item{{Model: "edge", Quantity: 5}}, Options{Threshold: 5})
	require.Len(t, r.BelowMinimum, 1)
	require.Empty(t, r.Healthy)
	require.Empty(t, r.Zeroed)

	r = Classify([]items.Item{{Model: "edge", Quantity: 6}}, Options{Threshold: 5})
	require.Len(t, r.Healthy, 1)
}

func TestClassifyFilters(t *testing.T) {
	list := []items.Item{
		{Model: "a", Type: "Silicone", Color: "Preto", Quantity: 0},
		{Model: "b", Type: "Silicone", Color: "Azul", Quantity: 8},
		{Model: "c", Type: "Rígida", Color: "Preto", Quantity: 2},
	}

	r := Classify(list, Options{Type: "silicone", Threshold: 5})
	require.Equal(t, 2, r.TotalFiltered, "type filter is case-insensitive")
	require.Len(t, r.Zeroed, 1)
	require.Len(t, r.Healthy, 1)

	r = Classify(list, Options{Type: "Silicone", Color: "PRETO", Threshold: 5})
	require.Equal(t, 1, r.TotalFiltered)
	require.Len(t, r.Zeroed, 1)
}

func TestClassifyAbsentFilterValue(t *testing.T) {
	list := []items.Item{
		{Model: "a", Type: "Silicone", Color: "Preto", Quantity: 1},
		{Model: "b", Type: "Carteira", Color: "Azul", Quantity: 2},
	}

	r := Classify(list, Options{Type: "Inexistente", Threshold: 5})
	require.Zero(t, r.TotalFiltered)
	require.Empty(t, r.Zeroed)
	require.Empty(t, r.BelowMinimum)
	require.Empty(t, r.Healthy)
	require.Empty(t, r.ByType)
	// Filter choices still cover the whole collection.
	require.Equal(t, []string{"Carteira", "Silicone"}, r.Types)
	require.Equal(t, []string{"Azul", "Preto"}, r.Colors)
}

func TestClassifySummaries(t *testing.T) {
	list := []items.Item{
		{Model: "a", Type: "Silicone", Color: "Preto", Quantity: 0},
		{Model: "b", Type: "Silicone", Color: "Preto", Quantity: 3},
		{Model: "c", Type: "Silicone", Color: "Azul", Quantity: 9},
		{Model: "d", Type: "", Color: "", Quantity: 0},
	}

	r := Classify(list, Options{Threshold: 5})

	require.Equal(t, DimensionSummary{Total: 3, Zeroed: 1, BelowMinimum: 1}, r.ByType["Silicone"])
	require.Equal(t, DimensionSummary{Total: 1, Zeroed: 1}, r.ByType[Unspecified])
	require.Equal(t, DimensionSummary{Total: 2, Zeroed: 1, BelowMinimum: 1}, r.ByColor["Preto"])
	require.Equal(t, DimensionSummary{Total: 1}, r.ByColor["Azul"])

	// Empty dimension values never show up as filter choices.
	require.Equal(t, []string{"Silicone"}, r.Types)
	require.Equal(t, []string{"Azul", "Preto"}, r.Colors)
}

func TestClassifyEmptyCollection(t *testing.T) {
	r := Classify(nil, Options{Threshold: 5})
	require.Empty(t, r.Zeroed)
	require.Empty(t, r.BelowMinimum)
	require.Empty(t, r.Healthy)
	require.Empty(t, r.ByType)
	require.Empty(t, r.ByColor)
	require.Empty(t, r.Types)
	require.Empty(t, r.Colors)
	require.Zero(t, r.TotalFiltered)
}
