package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Weekly-return momentum thresholds, in percent
const (
	StrongMomentumPct   = 3.0
	ModerateMomentumPct = 1.0
)

// AnalyzeWatchedStocks classifies momentum and flow for watched tickers that
// are not held. Results are sorted by weekly return, best first.
func (s *Service) AnalyzeWatchedStocks(watched []models.WatchedStock, holdings []models.HoldingSnapshot) []models.WatchAnalysis {
	held := heldTickers(holdings)

	out := make([]models.WatchAnalysis, 0, len(watched))
	for _, w := range watched {
		if held[strings.ToUpper(w.Ticker)] {
			continue
		}
		a := models.WatchAnalysis{
			Ticker:          w.Ticker,
			Name:            w.Name,
			Theme:           w.Theme,
			WeeklyReturnPct: w.WeeklyReturnPct,
			Momentum:        classifyMomentum(w.WeeklyReturnPct),
			Flow:            classifyFlowDirection(w.Flow),
		}
		a.Highlight = a.Momentum == models.MomentumStrongUp || a.Flow == models.FlowBothBuy
		a.Note = watchNote(a)
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeeklyReturnPct > out[j].WeeklyReturnPct
	})

	s.logger.Debug().Int("watched", len(watched)).Int("analyzed", len(out)).Msg("Watch list analyzed")
	return out
}

func heldTickers(holdings []models.HoldingSnapshot) map[string]bool {
	held := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		held[strings.ToUpper(h.Ticker)] = true
	}
	return held
}

// classifyMomentum buckets a weekly return
func classifyMomentum(weeklyPct float64) models.Momentum {
	switch {
	case weeklyPct >= StrongMomentumPct:
		return models.MomentumStrongUp
	case weeklyPct >= ModerateMomentumPct:
		return models.MomentumModerateUp
	case weeklyPct <= -StrongMomentumPct:
		return models.MomentumStrongDown
	case weeklyPct <= -ModerateMomentumPct:
		return models.MomentumModerateDown
	default:
		return models.MomentumFlat
	}
}

// classifyFlowDirection reads the same-day foreign and institutional net amounts
func classifyFlowDirection(flow *models.TradingFlow) models.FlowDirection {
	if flow == nil {
		return models.FlowNeutral
	}
	switch {
	case flow.Foreign > 0 && flow.Institutional > 0:
		return models.FlowBothBuy
	case flow.Foreign < 0 && flow.Institutional < 0:
		return models.FlowBothSell
	case flow.Foreign > 0:
		return models.FlowForeignBuy
	case flow.Institutional > 0:
		return models.FlowInstitutionalBuy
	default:
		return models.FlowNeutral
	}
}

func watchNote(a models.WatchAnalysis) string {
	var parts []string

	switch a.Momentum {
	case models.MomentumStrongUp:
		parts = append(parts, fmt.Sprintf("strong weekly gain %s", common.FormatSignedPct(a.WeeklyReturnPct)))
	case models.MomentumModerateUp:
		parts = append(parts, fmt.Sprintf("moderate weekly gain %s", common.FormatSignedPct(a.WeeklyReturnPct)))
	case models.MomentumModerateDown:
		parts = append(parts, fmt.Sprintf("moderate weekly decline %s", common.FormatSignedPct(a.WeeklyReturnPct)))
	case models.MomentumStrongDown:
		parts = append(parts, fmt.Sprintf("sharp weekly decline %s", common.FormatSignedPct(a.WeeklyReturnPct)))
	default:
		parts = append(parts, "flat week")
	}

	switch a.Flow {
	case models.FlowBothBuy:
		parts = append(parts, "foreign and institutional buying")
	case models.FlowForeignBuy:
		parts = append(parts, "foreign buying")
	case models.FlowInstitutionalBuy:
		parts = append(parts, "institutional buying")
	case models.FlowBothSell:
		parts = append(parts, "foreign and institutional selling")
	}

	note := strings.Join(parts, ", ")
	return strings.ToUpper(note[:1]) + note[1:]
}
