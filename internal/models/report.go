package models

import "time"

// DatedValue is one point of a nullable indicator series
type DatedValue struct {
	Date  time.Time `json:"date"`
	Value NullFloat `json:"value"`
}

// MACDPoint is one dated point of the three MACD lines
type MACDPoint struct {
	Date      time.Time `json:"date"`
	MACD      NullFloat `json:"macd"`
	Signal    NullFloat `json:"signal"`
	Histogram NullFloat `json:"histogram"`
}

// ChartSeries holds the sampled, oldest-first indicator series for display
type ChartSeries struct {
	EMAPeriod int          `json:"ema_period"`
	Close     []DatedValue `json:"close"`
	MA5       []DatedValue `json:"ma5"`
	MA20      []DatedValue `json:"ma20"`
	EMA       []DatedValue `json:"ema"`
	RSI       []DatedValue `json:"rsi"`
	MACD      []MACDPoint  `json:"macd"`
}

// TickerReport is the full analytics output for one ticker
type TickerReport struct {
	Ticker            string             `json:"ticker"`
	AsOf              time.Time          `json:"as_of"`
	Signals           *TickerSignals     `json:"signals"`
	Series            ChartSeries        `json:"series"`
	SupportResistance *SupportResistance `json:"support_resistance,omitempty"`
	Returns           ReturnStats        `json:"returns"`
	Insights          InsightReport      `json:"insights"`
	Markdown          string             `json:"markdown,omitempty"`
}

// PortfolioReport bundles every portfolio diagnostic
type PortfolioReport struct {
	Summary       PortfolioSummary `json:"summary"`
	Allocation    []Allocation     `json:"allocation"`
	Contributions []Contribution   `json:"contributions"`
	Diagnosis     Diagnosis        `json:"diagnosis"`
	Watch         []WatchAnalysis  `json:"watch"`
	Suggestions   []Suggestion     `json:"suggestions"`
	Health        []HoldingHealth  `json:"health"`
	Markdown      string           `json:"markdown,omitempty"`
}
