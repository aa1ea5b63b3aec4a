package performance

import (
	"math"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// DailyVolatility is the population standard deviation, in percent, of the
// close-to-close percentage changes in chronological order.
// Changes from a zero close are skipped. Returns null for fewer than two bars.
func DailyVolatility(bars []models.EODBar) models.NullFloat {
	if len(bars) < 2 {
		return models.NullFloat{}
	}

	changes := make([]float64, 0, len(bars)-1)
	for i := len(bars) - 1; i > 0; i-- {
		prev := bars[i].Close
		if prev == 0 {
			continue
		}
		changes = append(changes, (bars[i-1].Close-prev)/prev)
	}
	if len(changes) == 0 {
		return models.NullFloat{}
	}

	mean := 0.0
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))

	variance := 0.0
	for _, c := range changes {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(changes))

	return models.Float(math.Sqrt(variance) * 100)
}

// AnnualizedVolatility scales daily volatility by sqrt(252).
func AnnualizedVolatility(bars []models.EODBar) models.NullFloat {
	daily := DailyVolatility(bars)
	if !daily.Valid {
		return daily
	}
	return models.Float(daily.Value * math.Sqrt(TradingDaysPerYear))
}

// MaxDrawdown walks the series oldest to newest tracking the running peak and
// reports the largest decline from a peak, with the peak and trough that produced it.
// A series that never declines reports zero with the first bar as peak and trough.
func MaxDrawdown(bars []models.EODBar) models.Drawdown {
	if len(bars) == 0 {
		return models.Drawdown{}
	}

	oldest := bars[len(bars)-1]
	peak := oldest
	result := models.Drawdown{
		Peak:       oldest.Close,
		Trough:     oldest.Close,
		PeakDate:   oldest.Date,
		TroughDate: oldest.Date,
	}

	for i := len(bars) - 1; i >= 0; i-- {
		bar := bars[i]
		if bar.Close > peak.Close {
			peak = bar
			continue
		}
		if peak.Close <= 0 {
			continue
		}
		dd := (peak.Close - bar.Close) / peak.Close * 100
		if dd > result.Percent {
			result = models.Drawdown{
				Percent:    dd,
				Peak:       peak.Close,
				Trough:     bar.Close,
				PeakDate:   peak.Date,
				TroughDate: bar.Date,
			}
		}
	}

	return result
}
