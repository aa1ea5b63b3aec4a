// Package models defines data structures for Vire analytics
package models

import (
	"encoding/json"
	"time"
)

// EODBar is a single end-of-day OHLCV bar.
// Slices of bars are newest-first unless a function documents otherwise.
type EODBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// TradingFlow holds the net traded amount per investor group for one day.
// Positive values are net buying, negative values net selling.
type TradingFlow struct {
	Date          time.Time `json:"date"`
	Individual    float64   `json:"individual"`
	Institutional float64   `json:"institutional"`
	Foreign       float64   `json:"foreign"`
}

// NullFloat is a float64 that may be absent, e.g. during an indicator warm-up.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// MarshalJSON encodes an invalid value as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON decodes null as an invalid value.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

// IndicatorSeries is aligned 1:1 with the series it was computed from.
type IndicatorSeries []NullFloat

// Last returns the most recent valid value, scanning from the end.
func (s IndicatorSeries) Last() NullFloat {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i]
		}
	}
	return NullFloat{}
}

// MACDSeries holds the three MACD lines, each aligned with the input series.
type MACDSeries struct {
	MACD      IndicatorSeries `json:"macd"`
	Signal    IndicatorSeries `json:"signal"`
	Histogram IndicatorSeries `json:"histogram"`
}

// Len returns the length of the aligned series (0 when not computable).
func (m MACDSeries) Len() int {
	return len(m.MACD)
}

// PivotLevels are classic floor-trader pivots derived from a single bar.
type PivotLevels struct {
	PP float64 `json:"pp"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
	S3 float64 `json:"s3"`
}

// PriceLevel is a labelled support or resistance price.
type PriceLevel struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// SupportResistance holds price levels split around the current price.
// Both lists are ordered closest-first.
type SupportResistance struct {
	Current     float64      `json:"current"`
	Pivot       PivotLevels  `json:"pivot"`
	Resistances []PriceLevel `json:"resistances"`
	Supports    []PriceLevel `json:"supports"`
}

// TrendType classifies short-term moving-average alignment
type TrendType string

const (
	TrendBullish TrendType = "bullish"
	TrendBearish TrendType = "bearish"
	TrendNeutral TrendType = "neutral"
)

// Crossover values returned by crossover detection
const (
	CrossGolden = "golden_cross"
	CrossDeath  = "death_cross"
	CrossNone   = "none"
)

// TickerSignals is a latest-value snapshot of the indicators for one ticker.
type TickerSignals struct {
	Ticker    string    `json:"ticker"`
	AsOf      time.Time `json:"as_of"`
	BarCount  int       `json:"bar_count"`
	Current   float64   `json:"current"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`

	// MA5/MA20 now and five bars earlier
	MA5      NullFloat `json:"ma5"`
	MA20     NullFloat `json:"ma20"`
	PrevMA5  NullFloat `json:"prev_ma5"`
	PrevMA20 NullFloat `json:"prev_ma20"`
	MACross  string    `json:"ma_cross"`

	RSI        NullFloat `json:"rsi"`
	RSISignal  string    `json:"rsi_signal"`
	MACD       NullFloat `json:"macd"`
	MACDSignal NullFloat `json:"macd_signal"`
	// PrevMACD/PrevMACDSignal are the second-last valid pair
	PrevMACD       NullFloat `json:"prev_macd"`
	PrevMACDSignal NullFloat `json:"prev_macd_signal"`

	High20 float64 `json:"high20"`
	Low20  float64 `json:"low20"`

	// Streak is positive for consecutive up closes and negative for down closes
	Streak int       `json:"streak"`
	Trend  TrendType `json:"trend"`
}
