package models

// InsightType is the tone of an insight
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNeutral  InsightType = "neutral"
)

// Insight categories
const (
	CategoryTradingFlow = "trading_flow"
	CategoryTrend       = "trend"
	CategoryMomentum    = "momentum"
	CategoryVolatility  = "volatility"
	CategoryRange       = "range"
	CategoryRSI         = "rsi"
	CategoryMACD        = "macd"
)

// Insight is a single human-readable observation. Lower priority is shown first.
type Insight struct {
	Type     InsightType `json:"type"`
	Category string      `json:"category"`
	Priority int         `json:"priority"`
	Text     string      `json:"text"`
}

// InsightReport groups the ranked price/trading insights and risk insights for a ticker.
type InsightReport struct {
	Ticker   string    `json:"ticker"`
	Insights []Insight `json:"insights"`
	Risks    []Insight `json:"risks"`
}
