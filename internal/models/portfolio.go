// Package models defines data structures for Vire analytics
package models

import "strings"

// Holding represents a portfolio position as supplied by the holdings store
type Holding struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name,omitempty"`
	Theme         string  `json:"theme,omitempty"`
	PurchasePrice float64 `json:"purchase_price"`
	Quantity      float64 `json:"quantity"`
}

// HoldingSnapshot combines a holding with its latest price and same-day flow
type HoldingSnapshot struct {
	Holding
	LatestPrice float64      `json:"latest_price"`
	Flow        *TradingFlow `json:"flow,omitempty"`
}

// Investment is purchase price times quantity.
func (h HoldingSnapshot) Investment() float64 {
	return h.PurchasePrice * h.Quantity
}

// Valuation is latest price times quantity.
func (h HoldingSnapshot) Valuation() float64 {
	return h.LatestPrice * h.Quantity
}

// ReturnPct is the holding's return on its own investment, 0 when the cost is not positive.
func (h HoldingSnapshot) ReturnPct() float64 {
	inv := h.Investment()
	if inv <= 0 {
		return 0
	}
	return (h.Valuation() - inv) / inv * 100
}

// WatchedStock is an unheld ticker on the watch list
type WatchedStock struct {
	Ticker          string       `json:"ticker"`
	Name            string       `json:"name,omitempty"`
	Theme           string       `json:"theme,omitempty"`
	Price           float64      `json:"price"`
	WeeklyReturnPct float64      `json:"weekly_return_pct"`
	Flow            *TradingFlow `json:"flow,omitempty"`
}

// HoldingSummary is the per-holding line of a portfolio summary
type HoldingSummary struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name,omitempty"`
	Theme      string  `json:"theme,omitempty"`
	Investment float64 `json:"investment"`
	Valuation  float64 `json:"valuation"`
	Profit     float64 `json:"profit"`
	ReturnPct  float64 `json:"return_pct"`
}

// PortfolioSummary aggregates investment and valuation across holdings
type PortfolioSummary struct {
	Holdings        []HoldingSummary `json:"holdings"`
	TotalInvestment float64          `json:"total_investment"`
	TotalValuation  float64          `json:"total_valuation"`
	TotalProfit     float64          `json:"total_profit"`
	TotalReturnPct  float64          `json:"total_return_pct"`
}

// Allocation is a holding's share of total portfolio value
type Allocation struct {
	Ticker    string  `json:"ticker"`
	Theme     string  `json:"theme,omitempty"`
	Valuation float64 `json:"valuation"`
	Percent   float64 `json:"percent"`
}

// Contribution is a holding's profit as a percentage of total invested capital
type Contribution struct {
	Ticker  string  `json:"ticker"`
	Profit  float64 `json:"profit"`
	Percent float64 `json:"percent"`
}

// ThemeGroup names a set of tickers that share a theme
type ThemeGroup struct {
	Name    string   `json:"name" toml:"name"`
	Tickers []string `json:"tickers" toml:"tickers"`
}

// Contains reports whether the group lists ticker (case-insensitive).
func (g ThemeGroup) Contains(ticker string) bool {
	for _, t := range g.Tickers {
		if strings.EqualFold(t, ticker) {
			return true
		}
	}
	return false
}

// ThemeWeight is a theme group's share of total portfolio value
type ThemeWeight struct {
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Percent float64  `json:"percent"`
}

// PortfolioHealth is the overall profit state of a portfolio
type PortfolioHealth string

const (
	HealthProfit    PortfolioHealth = "profit"
	HealthLoss      PortfolioHealth = "loss"
	HealthBreakeven PortfolioHealth = "breakeven"
)

// Diagnosis is a read-only report on portfolio concentration and performance
type Diagnosis struct {
	Summary              PortfolioSummary `json:"summary"`
	Health               PortfolioHealth  `json:"health"`
	ConcentrationRisk    bool             `json:"concentration_risk"`
	ConcentratedHoldings []Allocation     `json:"concentrated_holdings,omitempty"`
	ConcentratedThemes   []ThemeWeight    `json:"concentrated_themes,omitempty"`
	TopContributor       *Contribution    `json:"top_contributor,omitempty"`
	TopDrag              *Contribution    `json:"top_drag,omitempty"`
	Messages             []string         `json:"messages"`
}

// Momentum buckets for weekly returns
type Momentum string

const (
	MomentumStrongUp     Momentum = "strong_up"
	MomentumModerateUp   Momentum = "moderate_up"
	MomentumFlat         Momentum = "flat"
	MomentumModerateDown Momentum = "moderate_down"
	MomentumStrongDown   Momentum = "strong_down"
)

// FlowDirection classifies same-day foreign/institutional flow
type FlowDirection string

const (
	FlowForeignBuy       FlowDirection = "foreign_buy"
	FlowInstitutionalBuy FlowDirection = "institutional_buy"
	FlowBothBuy          FlowDirection = "both_buy"
	FlowBothSell         FlowDirection = "both_sell"
	FlowNeutral          FlowDirection = "neutral"
)

// WatchAnalysis is the classification of a watched stock
type WatchAnalysis struct {
	Ticker          string        `json:"ticker"`
	Name            string        `json:"name,omitempty"`
	Theme           string        `json:"theme,omitempty"`
	WeeklyReturnPct float64       `json:"weekly_return_pct"`
	Momentum        Momentum      `json:"momentum"`
	Flow            FlowDirection `json:"flow"`
	Highlight       bool          `json:"highlight"`
	Note            string        `json:"note"`
}

// ForeignBuying reports whether foreign investors were net buyers.
func (w WatchAnalysis) ForeignBuying() bool {
	return w.Flow == FlowForeignBuy || w.Flow == FlowBothBuy
}

// SuggestionAction is the recommended adjustment
type SuggestionAction string

const (
	ActionStopLoss    SuggestionAction = "stop_loss"
	ActionTrim        SuggestionAction = "trim"
	ActionConsiderBuy SuggestionAction = "consider_buy"
	ActionReduce      SuggestionAction = "reduce"
	ActionWatchDip    SuggestionAction = "watch_dip"
)

// Severity tiers for suggestions
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Suggestion is a prioritized portfolio adjustment
type Suggestion struct {
	Ticker    string           `json:"ticker"`
	Action    SuggestionAction `json:"action"`
	Severity  Severity         `json:"severity"`
	Priority  int              `json:"priority"`
	Rationale string           `json:"rationale"`
}

// ReturnStatus classifies a holding's return
type ReturnStatus string

const (
	StatusProfit     ReturnStatus = "profit"
	StatusSlightLoss ReturnStatus = "slight_loss"
	StatusWarning    ReturnStatus = "warning"
	StatusDanger     ReturnStatus = "danger"
)

// FlowSignal classifies a holding's same-day flow
type FlowSignal string

const (
	FlowSignalPositive FlowSignal = "positive"
	FlowSignalNegative FlowSignal = "negative"
	FlowSignalNeutral  FlowSignal = "neutral"
)

// HoldingHealth is the per-holding health check
type HoldingHealth struct {
	Ticker    string       `json:"ticker"`
	ReturnPct float64      `json:"return_pct"`
	Status    ReturnStatus `json:"status"`
	Flow      FlowSignal   `json:"flow"`
	Note      string       `json:"note"`
}
