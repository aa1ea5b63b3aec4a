package signals

import (
	"sort"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Sample downsamples series to roughly maxPoints for display.
// Every stride-th element is kept, starting with the first, and the last
// element is always present. A series already within maxPoints (or a
// non-positive maxPoints) is returned as a copy. nil yields an empty slice.
func Sample[T any](series []T, maxPoints int) []T {
	if len(series) == 0 {
		return []T{}
	}
	if maxPoints <= 0 || len(series) <= maxPoints {
		out := make([]T, len(series))
		copy(out, series)
		return out
	}

	stride := (len(series) + maxPoints - 1) / maxPoints
	out := make([]T, 0, maxPoints+1)
	last := -1
	for i := 0; i < len(series); i += stride {
		out = append(out, series[i])
		last = i
	}
	if last != len(series)-1 {
		out = append(out, series[len(series)-1])
	}
	return out
}

// Reverse returns a reversed copy of series.
func Reverse[T any](series []T) []T {
	out := make([]T, len(series))
	for i, v := range series {
		out[len(series)-1-i] = v
	}
	return out
}

// SortAscending returns a copy of bars ordered oldest-first.
func SortAscending(bars []models.EODBar) []models.EODBar {
	out := make([]models.EODBar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortDescending returns a copy of bars ordered newest-first.
func SortDescending(bars []models.EODBar) []models.EODBar {
	out := make([]models.EODBar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortFlowsDescending returns a copy of flows ordered newest-first.
func SortFlowsDescending(flows []models.TradingFlow) []models.TradingFlow {
	out := make([]models.TradingFlow, len(flows))
	copy(out, flows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Closes extracts close prices, preserving the order of bars.
func Closes(bars []models.EODBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
