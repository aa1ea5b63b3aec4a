package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

func TestFormatSignalsTable(t *testing.T) {
	md := formatSignalsTable(&models.TickerSignals{
		BarCount:  30,
		Current:   42,
		MA5:       models.Float(41),
		MA20:      models.Float(44),
		RSI:       models.Float(55.5),
		RSISignal: "neutral",
		Trend:     models.TrendBullish,
		High20:    45,
		Low20:     38,
		Streak:    3,
		MACross:   models.CrossGolden,
	}, "USD")

	assert.Contains(t, md, "| Trend | bullish |")
	assert.Contains(t, md, "| MA 5 | $41.00 | above (+2.44%) |")
	assert.Contains(t, md, "| MA 20 | $44.00 | below (-4.55%) |")
	assert.Contains(t, md, "| RSI | 55.50 | neutral |")
	assert.Contains(t, md, "| MACD | n/a |")
	assert.Contains(t, md, "$38.00 - $45.00")
	assert.Contains(t, md, "| MA 5/20 cross | golden_cross |")
}

func TestFormatSignalsTable_Missing(t *testing.T) {
	assert.Contains(t, formatSignalsTable(nil, "USD"), "*Signal data not available*")
	assert.Contains(t, formatSignalsTable(&models.TickerSignals{}, "USD"), "*Signal data not available*")
}

func TestFormatLevels_OrdersAroundCurrent(t *testing.T) {
	md := formatLevels(&models.SupportResistance{
		Current:     100,
		Resistances: []models.PriceLevel{{Label: "R1", Price: 102}, {Label: "R2", Price: 105}},
		Supports:    []models.PriceLevel{{Label: "S1", Price: 98}, {Label: "S2", Price: 95}},
	}, "USD")

	r2 := strings.Index(md, "R2")
	r1 := strings.Index(md, "R1")
	cur := strings.Index(md, "**Current**")
	s1 := strings.Index(md, "S1")
	s2 := strings.Index(md, "S2")
	assert.True(t, r2 < r1 && r1 < cur && cur < s1 && s1 < s2, "levels should read top to bottom by price")

	assert.Empty(t, formatLevels(nil, "USD"))
}

func TestFormatReturns(t *testing.T) {
	md := formatReturns(models.ReturnStats{
		DataPoints:       10,
		PeriodReturn:     12.5,
		AnnualizedReturn: models.NullFloat{},
		DailyVolatility:  models.Float(1.234),
	})

	assert.Contains(t, md, "| Period Return | +12.50% |")
	assert.Contains(t, md, "| Annualized Return | n/a |")
	assert.Contains(t, md, "| Daily Volatility | 1.23% |")
	assert.Contains(t, md, "| Max Drawdown | 0.00% |")

	assert.Contains(t, formatReturns(models.ReturnStats{DataPoints: 1}), "*Not enough history*")
}

func TestFormatInsights(t *testing.T) {
	md := formatInsights("Insights", []models.Insight{
		{Type: models.InsightPositive, Text: "up"},
		{Type: models.InsightWarning, Text: "careful"},
		{Type: models.InsightNeutral, Text: "meh"},
	})

	assert.Contains(t, md, "## Insights")
	assert.Contains(t, md, "- [+] up")
	assert.Contains(t, md, "- [!] careful")
	assert.Contains(t, md, "- [-] meh")

	assert.Empty(t, formatInsights("Risks", nil))
}

func TestFormatPortfolioReport(t *testing.T) {
	md := formatPortfolioReport(&models.PortfolioReport{
		Summary: models.PortfolioSummary{
			Holdings: []models.HoldingSummary{
				{Ticker: "AAA", Theme: "tech", Investment: 1000, Valuation: 1200, Profit: 200, ReturnPct: 20},
			},
			TotalInvestment: 1000,
			TotalValuation:  1200,
			TotalProfit:     200,
			TotalReturnPct:  20,
		},
		Allocation: []models.Allocation{{Ticker: "AAA", Percent: 100}},
		Health:     []models.HoldingHealth{{Ticker: "AAA", Status: models.StatusProfit}},
		Diagnosis: models.Diagnosis{
			Health:   models.HealthProfit,
			Messages: []string{"AAA is 100.0% of the portfolio"},
		},
		Suggestions: []models.Suggestion{
			{Ticker: "AAA", Action: models.ActionTrim, Severity: models.SeverityMedium, Rationale: "too heavy"},
		},
	}, "USD")

	assert.Contains(t, md, "**Total Value:** $1,200.00")
	assert.Contains(t, md, "**Total Gain:** +$200.00 (+20.00%)")
	assert.Contains(t, md, "| AAA | tech | 100.0% | $1,000.00 | $1,200.00 | +$200.00 | +20.00% | profit |")
	assert.Contains(t, md, "- AAA is 100.0% of the portfolio")
	assert.Contains(t, md, "1. [MEDIUM] **AAA** Trim: too heavy")
	assert.NotContains(t, md, "## Watch List")
}
