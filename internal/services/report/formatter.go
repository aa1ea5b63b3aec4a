package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

// formatTickerReport renders a ticker report as markdown
func formatTickerReport(r *models.TickerReport, currency string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", r.Ticker))
	if !r.AsOf.IsZero() {
		sb.WriteString(fmt.Sprintf("**As of:** %s\n", r.AsOf.Format("2006-01-02")))
	}
	if sig := r.Signals; sig != nil && sig.BarCount > 0 {
		sb.WriteString(fmt.Sprintf("**Price:** %s (%s)\n", common.FormatMoney(sig.Current, currency), common.FormatSignedPct(sig.ChangePct)))
	}
	sb.WriteString("\n")

	sb.WriteString(formatSignalsTable(r.Signals, currency))
	sb.WriteString(formatLevels(r.SupportResistance, currency))
	sb.WriteString(formatReturns(r.Returns))
	sb.WriteString(formatInsights("Insights", r.Insights.Insights))
	sb.WriteString(formatInsights("Risks", r.Insights.Risks))

	return sb.String()
}

// formatSignalsTable renders the latest indicator values
func formatSignalsTable(sig *models.TickerSignals, currency string) string {
	var sb strings.Builder

	sb.WriteString("## Technical Signals\n\n")

	if sig == nil || sig.BarCount == 0 {
		sb.WriteString("*Signal data not available*\n\n")
		return sb.String()
	}

	sb.WriteString("| Signal | Value | Status |\n")
	sb.WriteString("|--------|-------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Trend | %s | |\n", sig.Trend))
	sb.WriteString(fmt.Sprintf("| MA 5 | %s | %s |\n", formatPrice(sig.MA5, currency), formatMAStatus(sig.Current, sig.MA5)))
	sb.WriteString(fmt.Sprintf("| MA 20 | %s | %s |\n", formatPrice(sig.MA20, currency), formatMAStatus(sig.Current, sig.MA20)))
	if sig.MACross != "" && sig.MACross != models.CrossNone {
		sb.WriteString(fmt.Sprintf("| MA 5/20 cross | %s | |\n", sig.MACross))
	}
	sb.WriteString(fmt.Sprintf("| RSI | %s | %s |\n", formatNull(sig.RSI, "%.2f"), sig.RSISignal))
	sb.WriteString(fmt.Sprintf("| MACD | %s | signal %s |\n", formatNull(sig.MACD, "%.4f"), formatNull(sig.MACDSignal, "%.4f")))
	sb.WriteString(fmt.Sprintf("| 20-day range | %s - %s | |\n", common.FormatMoney(sig.Low20, currency), common.FormatMoney(sig.High20, currency)))
	sb.WriteString(fmt.Sprintf("| Streak | %d | |\n", sig.Streak))
	sb.WriteString("\n")

	return sb.String()
}

func formatLevels(sr *models.SupportResistance, currency string) string {
	if sr == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("## Support & Resistance\n\n")
	sb.WriteString("| Level | Price |\n")
	sb.WriteString("|-------|-------|\n")
	for i := len(sr.Resistances) - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", sr.Resistances[i].Label, common.FormatMoney(sr.Resistances[i].Price, currency)))
	}
	sb.WriteString(fmt.Sprintf("| **Current** | **%s** |\n", common.FormatMoney(sr.Current, currency)))
	for _, lvl := range sr.Supports {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", lvl.Label, common.FormatMoney(lvl.Price, currency)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatReturns(rs models.ReturnStats) string {
	var sb strings.Builder

	sb.WriteString("## Returns & Risk\n\n")
	if rs.DataPoints < 2 {
		sb.WriteString("*Not enough history*\n\n")
		return sb.String()
	}

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Period Return | %s |\n", common.FormatSignedPct(rs.PeriodReturn)))
	sb.WriteString(fmt.Sprintf("| Annualized Return | %s |\n", formatNullPct(rs.AnnualizedReturn)))
	sb.WriteString(fmt.Sprintf("| Daily Volatility | %s |\n", formatNull(rs.DailyVolatility, "%.2f%%")))
	sb.WriteString(fmt.Sprintf("| Annualized Volatility | %s |\n", formatNull(rs.AnnualizedVolatility, "%.2f%%")))
	dd := rs.MaxDrawdown
	if dd.Percent < 0 {
		sb.WriteString(fmt.Sprintf("| Max Drawdown | %s (%s to %s) |\n",
			common.FormatSignedPct(dd.Percent), dd.PeakDate.Format("2006-01-02"), dd.TroughDate.Format("2006-01-02")))
	} else {
		sb.WriteString("| Max Drawdown | 0.00% |\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatInsights(title string, insights []models.Insight) string {
	if len(insights) == 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, ev := range insights {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", insightIcon(ev.Type), ev.Text))
	}
	sb.WriteString("\n")

	return sb.String()
}

func insightIcon(t models.InsightType) string {
	switch t {
	case models.InsightPositive:
		return "+"
	case models.InsightWarning:
		return "!"
	default:
		return "-"
	}
}

// formatPortfolioReport renders the portfolio diagnostics as markdown
func formatPortfolioReport(r *models.PortfolioReport, currency string) string {
	var sb strings.Builder
	s := r.Summary

	sb.WriteString("# Portfolio Review\n\n")
	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", common.FormatMoney(s.TotalValuation, currency)))
	sb.WriteString(fmt.Sprintf("**Total Cost:** %s\n", common.FormatMoney(s.TotalInvestment, currency)))
	sb.WriteString(fmt.Sprintf("**Total Gain:** %s (%s)\n", common.FormatSignedMoney(s.TotalProfit, currency), common.FormatSignedPct(s.TotalReturnPct)))
	sb.WriteString(fmt.Sprintf("**Health:** %s\n\n", r.Diagnosis.Health))

	weights := make(map[string]float64, len(r.Allocation))
	for _, a := range r.Allocation {
		weights[a.Ticker] = a.Percent
	}
	status := make(map[string]models.ReturnStatus, len(r.Health))
	for _, h := range r.Health {
		status[h.Ticker] = h.Status
	}

	if len(s.Holdings) > 0 {
		sb.WriteString("## Holdings\n\n")
		sb.WriteString("| Symbol | Theme | Weight | Cost | Value | Return | Return % | Status |\n")
		sb.WriteString("|--------|-------|--------|------|-------|--------|----------|--------|\n")
		for _, h := range s.Holdings {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f%% | %s | %s | %s | %s | %s |\n",
				h.Ticker, h.Theme, weights[h.Ticker],
				common.FormatMoney(h.Investment, currency), common.FormatMoney(h.Valuation, currency),
				common.FormatSignedMoney(h.Profit, currency), common.FormatSignedPct(h.ReturnPct),
				status[h.Ticker],
			))
		}
		sb.WriteString("\n")
	}

	if len(r.Diagnosis.Messages) > 0 {
		sb.WriteString("## Diagnosis\n\n")
		for _, m := range r.Diagnosis.Messages {
			sb.WriteString(fmt.Sprintf("- %s\n", m))
		}
		sb.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		sb.WriteString("## Suggestions\n\n")
		for i, sg := range r.Suggestions {
			sb.WriteString(fmt.Sprintf("%d. [%s] **%s** %s: %s\n", i+1, strings.ToUpper(string(sg.Severity)), sg.Ticker, formatAction(sg.Action), sg.Rationale))
		}
		sb.WriteString("\n")
	}

	if len(r.Watch) > 0 {
		sb.WriteString("## Watch List\n\n")
		sb.WriteString("| Symbol | Weekly | Momentum | Flow | Note |\n")
		sb.WriteString("|--------|--------|----------|------|------|\n")
		for _, w := range r.Watch {
			ticker := w.Ticker
			if w.Highlight {
				ticker = "**" + ticker + "**"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				ticker, common.FormatSignedPct(w.WeeklyReturnPct), w.Momentum, w.Flow, w.Note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatAction(action models.SuggestionAction) string {
	switch action {
	case models.ActionStopLoss:
		return "Stop-loss"
	case models.ActionTrim:
		return "Trim"
	case models.ActionConsiderBuy:
		return "Consider buying"
	case models.ActionReduce:
		return "Reduce"
	case models.ActionWatchDip:
		return "Watch the dip"
	default:
		return string(action)
	}
}

func formatPrice(v models.NullFloat, currency string) string {
	if !v.Valid {
		return "n/a"
	}
	return common.FormatMoney(v.Value, currency)
}

func formatNull(v models.NullFloat, format string) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf(format, v.Value)
}

func formatNullPct(v models.NullFloat) string {
	if !v.Valid {
		return "n/a"
	}
	return common.FormatSignedPct(v.Value)
}

// formatMAStatus describes where the price sits relative to a moving average
func formatMAStatus(price float64, ma models.NullFloat) string {
	if !ma.Valid || ma.Value == 0 {
		return ""
	}
	pct := signals.DistanceToSMA(price, ma.Value)
	if price >= ma.Value {
		return fmt.Sprintf("above (%s)", common.FormatSignedPct(pct))
	}
	return fmt.Sprintf("below (%s)", common.FormatSignedPct(pct))
}
