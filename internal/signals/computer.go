// Package signals provides signal computation
package signals

import (
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// CrossLookback is how many bars earlier the MA5/MA20 relationship is compared
const CrossLookback = 5

// Computer computes the latest-value signal snapshot for a ticker
type Computer struct {
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
}

// NewComputer creates a new signal computer with default periods
func NewComputer() *Computer {
	return &Computer{
		RSIPeriod:  DefaultRSIPeriod,
		MACDFast:   DefaultMACDFast,
		MACDSlow:   DefaultMACDSlow,
		MACDSignal: DefaultMACDSignal,
	}
}

// Compute calculates the signal snapshot from newest-first bars.
// Values that need more history than is available are left invalid.
func (c *Computer) Compute(ticker string, bars []models.EODBar) *models.TickerSignals {
	signals := &models.TickerSignals{
		Ticker:    ticker,
		BarCount:  len(bars),
		RSISignal: "neutral",
		MACross:   models.CrossNone,
		Trend:     models.TrendNeutral,
	}
	if len(bars) == 0 {
		return signals
	}

	current := bars[0].Close
	signals.AsOf = bars[0].Date
	signals.Current = current
	if len(bars) > 1 && bars[1].Close != 0 {
		signals.Change = current - bars[1].Close
		signals.ChangePct = signals.Change / bars[1].Close * 100
	}

	if len(bars) >= 5 {
		signals.MA5 = models.Float(SMA(bars, 5))
	}
	if len(bars) >= 20 {
		signals.MA20 = models.Float(SMA(bars, 20))
	}
	signals.MACross = DetectCrossover(bars, 5, 20, CrossLookback)
	if len(bars) >= 20+CrossLookback {
		signals.PrevMA5 = models.Float(SMA(bars[CrossLookback:], 5))
		signals.PrevMA20 = models.Float(SMA(bars[CrossLookback:], 20))
	}
	if signals.MA5.Valid && signals.MA20.Valid {
		signals.Trend = DetermineTrend(current, signals.MA5.Value, signals.MA20.Value)
	}

	closes := Closes(Reverse(bars))

	if rsi := RSI(closes, c.RSIPeriod).Last(); rsi.Valid {
		signals.RSI = rsi
		signals.RSISignal = ClassifyRSI(rsi.Value)
	}

	c.computeMACD(signals, closes)

	signals.High20, signals.Low20 = HighLow(bars, DefaultRangeLookback)
	signals.Streak = Streak(bars)

	return signals
}

// computeMACD records the last two points where both MACD and signal are defined
func (c *Computer) computeMACD(signals *models.TickerSignals, closes []float64) {
	m := MACD(closes, c.MACDFast, c.MACDSlow, c.MACDSignal)

	found := 0
	for i := m.Len() - 1; i >= 0 && found < 2; i-- {
		if !m.MACD[i].Valid || !m.Signal[i].Valid {
			continue
		}
		if found == 0 {
			signals.MACD = m.MACD[i]
			signals.MACDSignal = m.Signal[i]
		} else {
			signals.PrevMACD = m.MACD[i]
			signals.PrevMACDSignal = m.Signal[i]
		}
		found++
	}
}

// Streak counts consecutive up (positive) or down (negative) closes ending at
// the newest bar. bars are newest-first. A flat day ends the streak.
func Streak(bars []models.EODBar) int {
	streak := 0
	for i := 0; i+1 < len(bars); i++ {
		change := bars[i].Close - bars[i+1].Close
		switch {
		case change > 0 && streak >= 0:
			streak++
		case change < 0 && streak <= 0:
			streak--
		default:
			return streak
		}
	}
	return streak
}
