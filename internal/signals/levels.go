package signals

import (
	"sort"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// MinSupportResistanceBars is the shortest history accepted by CalculateSupportResistance
const MinSupportResistanceBars = 5

// Pivot computes classic floor pivots from a single bar's high, low and close.
func Pivot(bar models.EODBar) models.PivotLevels {
	h, l, c := bar.High, bar.Low, bar.Close
	pp := (h + l + c) / 3
	return models.PivotLevels{
		PP: pp,
		R1: 2*pp - l,
		S1: 2*pp - h,
		R2: pp + (h - l),
		S2: pp - (h - l),
		R3: h + 2*(pp-l),
		S3: l - 2*(h-pp),
	}
}

// CalculateSupportResistance merges pivot levels, moving averages and the
// recent high/low into support and resistance lists around the current price.
// bars are newest-first: bars[0] supplies the current price and bars[1] is
// the prior complete bar used for the pivot. Returns nil for fewer than
// MinSupportResistanceBars bars.
func CalculateSupportResistance(bars []models.EODBar) *models.SupportResistance {
	if len(bars) < MinSupportResistanceBars {
		return nil
	}

	current := bars[0].Close
	pivot := Pivot(bars[1])

	levels := []models.PriceLevel{
		{Label: "PP", Price: pivot.PP},
		{Label: "R1", Price: pivot.R1},
		{Label: "R2", Price: pivot.R2},
		{Label: "R3", Price: pivot.R3},
		{Label: "S1", Price: pivot.S1},
		{Label: "S2", Price: pivot.S2},
		{Label: "S3", Price: pivot.S3},
	}

	for _, ma := range []struct {
		label  string
		period int
	}{
		{"MA5", 5},
		{"MA20", 20},
		{"MA60", 60},
	} {
		if len(bars) >= ma.period {
			levels = append(levels, models.PriceLevel{Label: ma.label, Price: SMA(bars, ma.period)})
		}
	}

	high, low := HighLow(bars, DefaultRangeLookback)
	levels = append(levels,
		models.PriceLevel{Label: "High20", Price: high},
		models.PriceLevel{Label: "Low20", Price: low},
	)

	sr := &models.SupportResistance{
		Current:     current,
		Pivot:       pivot,
		Resistances: []models.PriceLevel{},
		Supports:    []models.PriceLevel{},
	}
	for _, lv := range levels {
		if lv.Price > current {
			sr.Resistances = append(sr.Resistances, lv)
		} else {
			sr.Supports = append(sr.Supports, lv)
		}
	}

	sort.SliceStable(sr.Resistances, func(i, j int) bool {
		return sr.Resistances[i].Price < sr.Resistances[j].Price
	})
	sort.SliceStable(sr.Supports, func(i, j int) bool {
		return sr.Supports[i].Price > sr.Supports[j].Price
	})

	return sr
}
