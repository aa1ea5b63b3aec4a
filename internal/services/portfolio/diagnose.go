package portfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Concentration and health thresholds, in percent
const (
	HoldingConcentrationPct = 40.0
	ThemeConcentrationPct   = 60.0
	BreakevenBandPct        = 0.5
)

// DiagnosePortfolio flags concentration risk, names the biggest contributor
// and drag, and classifies overall health.
func (s *Service) DiagnosePortfolio(holdings []models.HoldingSnapshot, groups []models.ThemeGroup) models.Diagnosis {
	summary := s.Summarize(holdings)
	diag := models.Diagnosis{
		Summary:  summary,
		Health:   classifyHealth(summary.TotalReturnPct),
		Messages: []string{},
	}

	for _, a := range s.Allocate(holdings) {
		if a.Percent > HoldingConcentrationPct {
			diag.ConcentratedHoldings = append(diag.ConcentratedHoldings, a)
			diag.Messages = append(diag.Messages,
				fmt.Sprintf("%s is %.1f%% of the portfolio, above the %.0f%% single-holding limit", a.Ticker, a.Percent, HoldingConcentrationPct))
		}
	}

	if len(groups) == 0 {
		groups = themeGroupsFromLabels(holdings)
	}
	for _, w := range themeWeights(holdings, groups) {
		if w.Percent > ThemeConcentrationPct {
			diag.ConcentratedThemes = append(diag.ConcentratedThemes, w)
			diag.Messages = append(diag.Messages,
				fmt.Sprintf("Theme %q is %.1f%% of the portfolio, above the %.0f%% theme limit", w.Name, w.Percent, ThemeConcentrationPct))
		}
	}
	diag.ConcentrationRisk = len(diag.ConcentratedHoldings) > 0 || len(diag.ConcentratedThemes) > 0

	contributions := s.Contributions(holdings)
	if len(contributions) > 0 {
		if top := contributions[0]; top.Profit > 0 {
			diag.TopContributor = &top
			diag.Messages = append(diag.Messages,
				fmt.Sprintf("Top contributor: %s (%s, %s of invested capital)", top.Ticker, common.FormatSignedMoney(top.Profit, s.currency), common.FormatSignedPct(top.Percent)))
		}
		if drag := contributions[len(contributions)-1]; drag.Profit < 0 {
			diag.TopDrag = &drag
			diag.Messages = append(diag.Messages,
				fmt.Sprintf("Biggest drag: %s (%s, %s of invested capital)", drag.Ticker, common.FormatSignedMoney(drag.Profit, s.currency), common.FormatSignedPct(drag.Percent)))
		}
	}

	diag.Messages = append(diag.Messages, healthMessage(diag.Health, summary.TotalReturnPct))

	s.logger.Debug().
		Int("holdings", len(holdings)).
		Int("groups", len(groups)).
		Bool("concentration_risk", diag.ConcentrationRisk).
		Str("health", string(diag.Health)).
		Msg("Portfolio diagnosed")

	return diag
}

// classifyHealth applies the breakeven band to the total return
func classifyHealth(totalReturnPct float64) models.PortfolioHealth {
	switch {
	case totalReturnPct > BreakevenBandPct:
		return models.HealthProfit
	case totalReturnPct < -BreakevenBandPct:
		return models.HealthLoss
	default:
		return models.HealthBreakeven
	}
}

func healthMessage(health models.PortfolioHealth, totalReturnPct float64) string {
	switch health {
	case models.HealthProfit:
		return fmt.Sprintf("Portfolio is in profit (%s)", common.FormatSignedPct(totalReturnPct))
	case models.HealthLoss:
		return fmt.Sprintf("Portfolio is at a loss (%s)", common.FormatSignedPct(totalReturnPct))
	default:
		return fmt.Sprintf("Portfolio is near breakeven (%s)", common.FormatSignedPct(totalReturnPct))
	}
}

// themeGroupsFromLabels groups holdings by their Theme label in order of first appearance.
// Holdings without a label are not grouped.
func themeGroupsFromLabels(holdings []models.HoldingSnapshot) []models.ThemeGroup {
	var groups []models.ThemeGroup
	index := make(map[string]int)

	for _, h := range holdings {
		theme := strings.TrimSpace(h.Theme)
		if theme == "" {
			continue
		}
		i, ok := index[theme]
		if !ok {
			i = len(groups)
			index[theme] = i
			groups = append(groups, models.ThemeGroup{Name: theme})
		}
		groups[i].Tickers = append(groups[i].Tickers, h.Ticker)
	}
	return groups
}

// themeWeights sums each group's valuation as a share of the portfolio
func themeWeights(holdings []models.HoldingSnapshot, groups []models.ThemeGroup) []models.ThemeWeight {
	pos, _, totalValuation := positions(holdings)

	out := make([]models.ThemeWeight, 0, len(groups))
	for _, g := range groups {
		sum := decimal.Zero
		for _, p := range pos {
			if g.Contains(p.snapshot.Ticker) {
				sum = sum.Add(p.valuation)
			}
		}
		out = append(out, models.ThemeWeight{
			Name:    g.Name,
			Tickers: g.Tickers,
			Percent: percentOf(sum, totalValuation),
		})
	}
	return out
}
