package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

// Suggestion thresholds, in percent
const (
	StopLossPct     = -10.0
	ReduceLossPct   = -5.0
	DipThresholdPct = -3.0
)

// MaxSuggestions caps GenerateAdjustmentSuggestions output
const MaxSuggestions = 5

// Suggestion priorities, lowest first
const (
	priorityStopLoss = iota + 1
	priorityTrim
	priorityConsiderBuy
	priorityReduce
	priorityWatchDip
)

// suggestionInput is shared by every suggestion rule
type suggestionInput struct {
	holdings    []models.HoldingSnapshot
	allocations []models.Allocation
	watch       []models.WatchAnalysis
	heldThemes  map[string]bool
}

// suggestionRule returns zero or more suggestions
type suggestionRule func(in *suggestionInput) []models.Suggestion

// suggestionRules is evaluated in order; output is then stably sorted by priority
var suggestionRules = []suggestionRule{
	suggestStopLoss,
	suggestTrim,
	suggestConsiderBuy,
	suggestReduce,
	suggestWatchDip,
}

// GenerateAdjustmentSuggestions returns at most MaxSuggestions adjustments,
// stop-losses first.
func (s *Service) GenerateAdjustmentSuggestions(holdings []models.HoldingSnapshot, watched []models.WatchedStock) []models.Suggestion {
	in := &suggestionInput{
		holdings:    holdings,
		allocations: s.Allocate(holdings),
		watch:       s.AnalyzeWatchedStocks(watched, holdings),
		heldThemes:  make(map[string]bool),
	}
	for _, h := range holdings {
		if theme := strings.ToLower(strings.TrimSpace(h.Theme)); theme != "" {
			in.heldThemes[theme] = true
		}
	}

	var out []models.Suggestion
	for _, rule := range suggestionRules {
		out = append(out, rule(in)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	total := len(out)
	if total > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	if out == nil {
		out = []models.Suggestion{}
	}

	s.logger.Debug().Int("candidates", total).Int("returned", len(out)).Msg("Adjustment suggestions generated")
	return out
}

func suggestStopLoss(in *suggestionInput) []models.Suggestion {
	var out []models.Suggestion
	for _, h := range in.holdings {
		r := h.ReturnPct()
		if r < StopLossPct {
			out = append(out, models.Suggestion{
				Ticker:    h.Ticker,
				Action:    models.ActionStopLoss,
				Severity:  models.SeverityHigh,
				Priority:  priorityStopLoss,
				Rationale: fmt.Sprintf("Return %s is below the %.0f%% stop-loss line", common.FormatSignedPct(r), StopLossPct),
			})
		}
	}
	return out
}

func suggestTrim(in *suggestionInput) []models.Suggestion {
	var out []models.Suggestion
	for _, a := range in.allocations {
		if a.Percent > HoldingConcentrationPct {
			out = append(out, models.Suggestion{
				Ticker:    a.Ticker,
				Action:    models.ActionTrim,
				Severity:  models.SeverityMedium,
				Priority:  priorityTrim,
				Rationale: fmt.Sprintf("Weight %.1f%% exceeds the %.0f%% single-holding limit", a.Percent, HoldingConcentrationPct),
			})
		}
	}
	return out
}

// suggestConsiderBuy promotes highlighted watch candidates, new themes first
func suggestConsiderBuy(in *suggestionInput) []models.Suggestion {
	var fresh, familiar []models.Suggestion
	for _, w := range in.watch {
		if !w.Highlight {
			continue
		}
		theme := strings.ToLower(strings.TrimSpace(w.Theme))
		s := models.Suggestion{
			Ticker:   w.Ticker,
			Action:   models.ActionConsiderBuy,
			Severity: models.SeverityLow,
			Priority: priorityConsiderBuy,
		}
		if theme != "" && !in.heldThemes[theme] {
			s.Rationale = fmt.Sprintf("%s; adds new theme %q", w.Note, w.Theme)
			fresh = append(fresh, s)
		} else {
			s.Rationale = w.Note
			familiar = append(familiar, s)
		}
	}
	return append(fresh, familiar...)
}

func suggestReduce(in *suggestionInput) []models.Suggestion {
	var out []models.Suggestion
	for _, h := range in.holdings {
		r := h.ReturnPct()
		if r < StopLossPct || r >= ReduceLossPct {
			continue
		}
		if classifyFlowDirection(h.Flow) != models.FlowBothSell {
			continue
		}
		out = append(out, models.Suggestion{
			Ticker:    h.Ticker,
			Action:    models.ActionReduce,
			Severity:  models.SeverityMedium,
			Priority:  priorityReduce,
			Rationale: fmt.Sprintf("Return %s with foreign and institutional selling", common.FormatSignedPct(r)),
		})
	}
	return out
}

func suggestWatchDip(in *suggestionInput) []models.Suggestion {
	var out []models.Suggestion
	for _, w := range in.watch {
		if w.WeeklyReturnPct < DipThresholdPct && w.ForeignBuying() {
			out = append(out, models.Suggestion{
				Ticker:    w.Ticker,
				Action:    models.ActionWatchDip,
				Severity:  models.SeverityLow,
				Priority:  priorityWatchDip,
				Rationale: fmt.Sprintf("Down %s this week while foreign investors are buying", common.FormatSignedPct(w.WeeklyReturnPct)),
			})
		}
	}
	return out
}
