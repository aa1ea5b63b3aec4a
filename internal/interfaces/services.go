// Package interfaces defines service contracts for Vire analytics
package interfaces

import (
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// InsightService turns price and trading-flow history into ranked insights
type InsightService interface {
	// GenerateInsights evaluates every insight and risk detector for a ticker.
	// bars and flows may be in any order; they are sorted internally.
	GenerateInsights(ticker string, bars []models.EODBar, flows []models.TradingFlow) models.InsightReport
}

// PortfolioService produces read-only portfolio diagnostics
type PortfolioService interface {
	// Summarize totals investment and valuation across holdings
	Summarize(holdings []models.HoldingSnapshot) models.PortfolioSummary

	// Allocate returns each holding's share of total valuation
	Allocate(holdings []models.HoldingSnapshot) []models.Allocation

	// Contributions returns each holding's profit as a share of total invested capital, largest first
	Contributions(holdings []models.HoldingSnapshot) []models.Contribution

	// DiagnosePortfolio flags concentration and identifies the biggest contributor and drag.
	// When groups is empty, holdings are grouped by their Theme label.
	DiagnosePortfolio(holdings []models.HoldingSnapshot, groups []models.ThemeGroup) models.Diagnosis

	// AnalyzeWatchedStocks classifies momentum and flow for watched tickers that are not held
	AnalyzeWatchedStocks(watched []models.WatchedStock, holdings []models.HoldingSnapshot) []models.WatchAnalysis

	// GenerateAdjustmentSuggestions returns at most five prioritized adjustments
	GenerateAdjustmentSuggestions(holdings []models.HoldingSnapshot, watched []models.WatchedStock) []models.Suggestion

	// CheckHoldingsHealth classifies each holding's return and same-day flow
	CheckHoldingsHealth(holdings []models.HoldingSnapshot) []models.HoldingHealth
}

// ReportService assembles indicator, statistics, insight and portfolio outputs for presentation
type ReportService interface {
	// TickerReport builds the full analytics report for one ticker
	TickerReport(ticker string, bars []models.EODBar, flows []models.TradingFlow, basis *models.PurchaseBasis) *models.TickerReport

	// PortfolioReport builds every portfolio diagnostic in one value
	PortfolioReport(holdings []models.HoldingSnapshot, watched []models.WatchedStock, groups []models.ThemeGroup) *models.PortfolioReport
}
