package insight

import (
	"fmt"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

// Priorities, lower is shown first
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityNormal   = 3
	PriorityLow      = 4
)

// Detection thresholds. FlowMagnitudeThreshold is in major units of the
// configured currency.
const (
	MinFlowStreak          = 3
	FlowWindow             = 3
	FlowMagnitudeThreshold = 10_000_000_000.0
	MinPriceStreak         = 4
	HighVolatilityPct      = 3.0
	LowVolatilityPct       = 1.0
	RangeProximityRatio    = 0.05
)

// Detector inspects a context and returns at most one insight
type Detector func(c *Context) *models.Insight

// insightDetectors produce price and trading insights, in generation order
var insightDetectors = []Detector{
	detectFlowStreak,
	detectFlowMagnitude,
	detectMovingAverage,
	detectPriceStreak,
	detectMACDCross,
}

// riskDetectors produce risk insights, in generation order
var riskDetectors = []Detector{
	detectVolatility,
	detectRangeProximity,
	detectRSI,
}

// flowStreak counts consecutive same-sign values from the newest flow backward.
// A zero value ends the streak. Returns the count and the sign (+1 or -1).
func flowStreak(flows []models.TradingFlow, amount func(models.TradingFlow) float64) (int, int) {
	if len(flows) == 0 {
		return 0, 0
	}
	sign := 0
	switch v := amount(flows[0]); {
	case v > 0:
		sign = 1
	case v < 0:
		sign = -1
	default:
		return 0, 0
	}

	count := 0
	for _, f := range flows {
		v := amount(f)
		if (sign > 0 && v > 0) || (sign < 0 && v < 0) {
			count++
			continue
		}
		break
	}
	return count, sign
}

func foreignAmount(f models.TradingFlow) float64 { return f.Foreign }
func institutionalAmount(f models.TradingFlow) float64 { return f.Institutional }

// detectFlowStreak reports a foreign or institutional buying/selling streak.
// The longer streak wins; foreign investors win ties.
func detectFlowStreak(c *Context) *models.Insight {
	foreign, foreignSign := flowStreak(c.Flows, foreignAmount)
	inst, instSign := flowStreak(c.Flows, institutionalAmount)

	investor, count, sign := "Foreign investors", foreign, foreignSign
	if inst > foreign {
		investor, count, sign = "Institutions", inst, instSign
	}
	if count < MinFlowStreak {
		return nil
	}

	if sign > 0 {
		return &models.Insight{
			Type:     models.InsightPositive,
			Category: models.CategoryTradingFlow,
			Priority: PriorityCritical,
			Text:     fmt.Sprintf("%s have been net buyers for %d consecutive days", investor, count),
		}
	}
	return &models.Insight{
		Type:     models.InsightWarning,
		Category: models.CategoryTradingFlow,
		Priority: PriorityCritical,
		Text:     fmt.Sprintf("%s have been net sellers for %d consecutive days", investor, count),
	}
}

// detectFlowMagnitude reports heavy combined foreign and institutional flow over the last three days
func detectFlowMagnitude(c *Context) *models.Insight {
	if len(c.Flows) < FlowWindow {
		return nil
	}

	total := 0.0
	for _, f := range c.Flows[:FlowWindow] {
		total += f.Foreign + f.Institutional
	}

	switch {
	case total >= FlowMagnitudeThreshold:
		return &models.Insight{
			Type:     models.InsightPositive,
			Category: models.CategoryTradingFlow,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("Foreign and institutional investors bought a net %s over the last %d days", common.FormatCompactMoney(total, c.Currency), FlowWindow),
		}
	case total <= -FlowMagnitudeThreshold:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryTradingFlow,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("Foreign and institutional investors sold a net %s over the last %d days", common.FormatCompactMoney(-total, c.Currency), FlowWindow),
		}
	}
	return nil
}

// detectMovingAverage reports an MA5/MA20 cross against five bars earlier,
// falling back to the price/MA5/MA20 alignment when there is no cross
func detectMovingAverage(c *Context) *models.Insight {
	s := c.Signals
	if !s.MA5.Valid || !s.MA20.Valid {
		return nil
	}

	if s.PrevMA5.Valid && s.PrevMA20.Valid {
		switch signals.ClassifyCross(s.MA5.Value, s.MA20.Value, s.PrevMA5.Value, s.PrevMA20.Value) {
		case models.CrossGolden:
			return &models.Insight{
				Type:     models.InsightPositive,
				Category: models.CategoryTrend,
				Priority: PriorityCritical,
				Text:     "Golden cross: the 5-day average moved above the 20-day average",
			}
		case models.CrossDeath:
			return &models.Insight{
				Type:     models.InsightWarning,
				Category: models.CategoryTrend,
				Priority: PriorityCritical,
				Text:     "Dead cross: the 5-day average moved below the 20-day average",
			}
		}
	}

	switch s.Trend {
	case models.TrendBullish:
		return &models.Insight{
			Type:     models.InsightPositive,
			Category: models.CategoryTrend,
			Priority: PriorityNormal,
			Text:     "Uptrend: price is above the 5-day average, which is above the 20-day average",
		}
	case models.TrendBearish:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryTrend,
			Priority: PriorityNormal,
			Text:     "Downtrend: price is below the 5-day average, which is below the 20-day average",
		}
	}
	return nil
}

// detectPriceStreak reports four or more consecutive up or down closes
func detectPriceStreak(c *Context) *models.Insight {
	streak := c.Signals.Streak
	switch {
	case streak >= MinPriceStreak:
		return &models.Insight{
			Type:     models.InsightPositive,
			Category: models.CategoryMomentum,
			Priority: PriorityNormal,
			Text:     fmt.Sprintf("Closed higher for %d consecutive days", streak),
		}
	case streak <= -MinPriceStreak:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryMomentum,
			Priority: PriorityNormal,
			Text:     fmt.Sprintf("Closed lower for %d consecutive days", -streak),
		}
	}
	return nil
}

// detectMACDCross reports a sign change of MACD minus signal between the last two valid points
func detectMACDCross(c *Context) *models.Insight {
	s := c.Signals
	if !s.MACD.Valid || !s.MACDSignal.Valid || !s.PrevMACD.Valid || !s.PrevMACDSignal.Valid {
		return nil
	}

	switch signals.ClassifyCross(s.MACD.Value, s.MACDSignal.Value, s.PrevMACD.Value, s.PrevMACDSignal.Value) {
	case models.CrossGolden:
		return &models.Insight{
			Type:     models.InsightPositive,
			Category: models.CategoryMACD,
			Priority: PriorityHigh,
			Text:     "MACD crossed above its signal line",
		}
	case models.CrossDeath:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryMACD,
			Priority: PriorityHigh,
			Text:     "MACD crossed below its signal line",
		}
	}
	return nil
}

// detectVolatility flags unusually high or low daily volatility
func detectVolatility(c *Context) *models.Insight {
	if !c.Volatility.Valid {
		return nil
	}
	v := c.Volatility.Value

	switch {
	case v > HighVolatilityPct:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryVolatility,
			Priority: PriorityCritical,
			Text:     fmt.Sprintf("High volatility: daily moves average %.1f%%", v),
		}
	case v < LowVolatilityPct:
		return &models.Insight{
			Type:     models.InsightNeutral,
			Category: models.CategoryVolatility,
			Priority: PriorityLow,
			Text:     fmt.Sprintf("Low volatility: daily moves average %.1f%%", v),
		}
	}
	return nil
}

// detectRangeProximity flags a price within 5% of the 20-bar range from its high or low
func detectRangeProximity(c *Context) *models.Insight {
	s := c.Signals
	if s.BarCount < 2 {
		return nil
	}
	rng := s.High20 - s.Low20
	if rng <= 0 {
		return nil
	}

	band := rng * RangeProximityRatio
	switch {
	case s.High20-s.Current <= band:
		return &models.Insight{
			Type:     models.InsightNeutral,
			Category: models.CategoryRange,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("Trading near the 20-day high of %.2f, where resistance may apply", s.High20),
		}
	case s.Current-s.Low20 <= band:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryRange,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("Trading near the 20-day low of %.2f, watch for a breakdown", s.Low20),
		}
	}
	return nil
}

// detectRSI flags overbought and oversold RSI readings
func detectRSI(c *Context) *models.Insight {
	s := c.Signals
	if !s.RSI.Valid {
		return nil
	}

	switch {
	case s.RSI.Value >= signals.RSIOverbought:
		return &models.Insight{
			Type:     models.InsightWarning,
			Category: models.CategoryRSI,
			Priority: PriorityCritical,
			Text:     fmt.Sprintf("RSI %.0f is overbought, a pullback is possible", s.RSI.Value),
		}
	case s.RSI.Value <= signals.RSIOversold:
		return &models.Insight{
			Type:     models.InsightNeutral,
			Category: models.CategoryRSI,
			Priority: PriorityHigh,
			Text:     fmt.Sprintf("RSI %.0f is oversold, a rebound is possible", s.RSI.Value),
		}
	}
	return nil
}
