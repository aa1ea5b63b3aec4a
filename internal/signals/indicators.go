// Package signals provides technical indicator calculations
package signals

import (
	"math"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Default indicator periods
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9

	// DefaultRangeLookback is the bar count for recent high/low ranges
	DefaultRangeLookback = 20
)

// RSI classification bounds
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// SMA calculates the Simple Moving Average of the newest period bars.
// bars are newest-first. Returns 0 when there are fewer than period bars.
func SMA(bars []models.EODBar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// SMASeries calculates a rolling simple moving average over oldest-first values.
// The first period-1 entries are null.
func SMASeries(values []float64, period int) models.IndicatorSeries {
	out := make(models.IndicatorSeries, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = models.Float(sum / float64(period))
		}
	}
	return out
}

// EMA calculates the Exponential Moving Average over oldest-first values.
// The first period-1 entries are null, the entry at period-1 is the simple
// mean of the first period values, and each later entry applies the
// 2/(period+1) smoothing factor. Input shorter than period is all null.
func EMA(values []float64, period int) models.IndicatorSeries {
	out := make(models.IndicatorSeries, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = models.Float(ema)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = models.Float(ema)
	}
	return out
}

// RSI calculates the Wilder-smoothed Relative Strength Index over oldest-first values.
// Requires at least period+1 values, otherwise the result is empty.
// The first period entries are null.
func RSI(values []float64, period int) models.IndicatorSeries {
	if period <= 0 || len(values) < period+1 {
		return models.IndicatorSeries{}
	}

	out := make(models.IndicatorSeries, len(values))

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	out[period] = models.Float(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = models.Float(rsiValue(avgGain, avgLoss))
	}

	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD calculates Moving Average Convergence Divergence over oldest-first values.
// The signal line is the EMA of the defined part of the MACD line, re-aligned
// to the input indices. Requires at least slowPeriod+signalPeriod values,
// otherwise all three series are empty.
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) models.MACDSeries {
	if fastPeriod <= 0 || slowPeriod <= 0 || signalPeriod <= 0 || len(values) < slowPeriod+signalPeriod {
		return models.MACDSeries{
			MACD:      models.IndicatorSeries{},
			Signal:    models.IndicatorSeries{},
			Histogram: models.IndicatorSeries{},
		}
	}

	fast := EMA(values, fastPeriod)
	slow := EMA(values, slowPeriod)

	macdLine := make(models.IndicatorSeries, len(values))
	defined := make([]float64, 0, len(values))
	positions := make([]int, 0, len(values))
	for i := range values {
		if fast[i].Valid && slow[i].Valid {
			v := fast[i].Value - slow[i].Value
			macdLine[i] = models.Float(v)
			defined = append(defined, v)
			positions = append(positions, i)
		}
	}

	signalLine := make(models.IndicatorSeries, len(values))
	for j, v := range EMA(defined, signalPeriod) {
		signalLine[positions[j]] = v
	}

	histogram := make(models.IndicatorSeries, len(values))
	for i := range values {
		if macdLine[i].Valid && signalLine[i].Valid {
			histogram[i] = models.Float(macdLine[i].Value - signalLine[i].Value)
		}
	}

	return models.MACDSeries{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}
}

// HighLow returns the highest high and lowest low of the newest lookback bars.
// bars are newest-first. Returns 0, 0 for no bars.
func HighLow(bars []models.EODBar, lookback int) (high, low float64) {
	if lookback > len(bars) || lookback <= 0 {
		lookback = len(bars)
	}
	if lookback == 0 {
		return 0, 0
	}

	high = math.Inf(-1)
	low = math.Inf(1)
	for i := 0; i < lookback; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}

// ClassifyCross compares a short/long average pair now against an earlier pair.
// Returns "golden_cross", "death_cross", or "none".
func ClassifyCross(short, long, prevShort, prevLong float64) string {
	if prevShort <= prevLong && short > long {
		return models.CrossGolden
	}
	if prevShort >= prevLong && short < long {
		return models.CrossDeath
	}
	return models.CrossNone
}

// DetectCrossover detects SMA crossovers between the newest bar and lag bars earlier.
// bars are newest-first.
func DetectCrossover(bars []models.EODBar, shortPeriod, longPeriod, lag int) string {
	if lag <= 0 || len(bars) < longPeriod+lag {
		return models.CrossNone
	}

	return ClassifyCross(
		SMA(bars, shortPeriod), SMA(bars, longPeriod),
		SMA(bars[lag:], shortPeriod), SMA(bars[lag:], longPeriod),
	)
}

// ClassifyRSI classifies RSI value
func ClassifyRSI(rsi float64) string {
	if rsi >= RSIOverbought {
		return "overbought"
	}
	if rsi <= RSIOversold {
		return "oversold"
	}
	return "neutral"
}

// DistanceToSMA calculates percentage distance from current price to SMA
func DistanceToSMA(currentPrice, sma float64) float64 {
	if sma == 0 {
		return 0
	}
	return ((currentPrice - sma) / sma) * 100
}

// DetermineTrend classifies the short-term trend from price, MA5 and MA20 alignment
func DetermineTrend(currentPrice, ma5, ma20 float64) models.TrendType {
	if currentPrice > ma5 && ma5 > ma20 {
		return models.TrendBullish
	}
	if currentPrice < ma5 && ma5 < ma20 {
		return models.TrendBearish
	}
	return models.TrendNeutral
}
