// Package performance computes return and risk statistics for price series.
//
// All functions take newest-first bars: bars[0] is the latest close and
// bars[len-1] the oldest.
package performance

import (
	"math"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

const (
	// DaysPerYear is the annualization horizon for returns
	DaysPerYear = 365.0
	// TradingDaysPerYear scales daily volatility to annual volatility
	TradingDaysPerYear = 252.0
)

// PeriodReturn is the percentage change from the oldest to the newest close.
// Returns 0 for fewer than two bars or a non-positive oldest close.
func PeriodReturn(bars []models.EODBar) float64 {
	if len(bars) < 2 {
		return 0
	}
	return percentChange(bars[len(bars)-1].Close, bars[0].Close)
}

// AnnualizedReturn compounds the period return over 365/tradingDays, where
// tradingDays is the number of bars in the window. The bar count stands in for
// elapsed days, so series with gaps annualize over fewer days than the calendar.
//
// With a purchase basis the return is measured from the purchase price and the
// window is the bars on or after the purchase date, falling back to the full
// series when fewer than two bars qualify. Returns null for fewer than two bars
// and when compounding a large gain over a short window overflows.
func AnnualizedReturn(bars []models.EODBar, basis *models.PurchaseBasis) models.NullFloat {
	if len(bars) < 2 {
		return models.NullFloat{}
	}

	periodReturn := PeriodReturn(bars)
	tradingDays := len(bars)

	if basis != nil && basis.Price > 0 {
		periodReturn = percentChange(basis.Price, bars[0].Close)
		if held := barsSince(bars, basis); held >= 2 {
			tradingDays = held
		}
	}

	growth := 1 + periodReturn/100
	if growth < 0 {
		return models.NullFloat{}
	}

	annualized := (math.Pow(growth, DaysPerYear/float64(tradingDays)) - 1) * 100
	if math.IsInf(annualized, 0) || math.IsNaN(annualized) {
		return models.NullFloat{}
	}
	return models.Float(annualized)
}

// barsSince counts bars dated on or after the purchase date.
// A zero purchase date counts every bar.
func barsSince(bars []models.EODBar, basis *models.PurchaseBasis) int {
	if basis.Date.IsZero() {
		return len(bars)
	}
	count := 0
	for _, b := range bars {
		if !b.Date.Before(basis.Date) {
			count++
		}
	}
	return count
}

func percentChange(from, to float64) float64 {
	if from <= 0 {
		return 0
	}
	return (to/from - 1) * 100
}

// Compute bundles every statistic for bars.
func Compute(bars []models.EODBar, basis *models.PurchaseBasis) models.ReturnStats {
	return models.ReturnStats{
		DataPoints:           len(bars),
		PeriodReturn:         PeriodReturn(bars),
		AnnualizedReturn:     AnnualizedReturn(bars, basis),
		DailyVolatility:      DailyVolatility(bars),
		AnnualizedVolatility: AnnualizedVolatility(bars),
		MaxDrawdown:          MaxDrawdown(bars),
	}
}
