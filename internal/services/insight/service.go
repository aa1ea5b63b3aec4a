// Package insight turns indicator and trading-flow signals into ranked insights
package insight

import (
	"sort"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/interfaces"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/performance"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

// Output caps
const (
	MaxInsights = 4
	MaxRisks    = 3
)

// Compile-time interface check
var _ interfaces.InsightService = (*Service)(nil)

// Context is the input every detector reads. Bars and Flows are newest-first.
// Currency is the ISO 4217 code flow amounts are reported in.
type Context struct {
	Ticker     string
	Currency   string
	Bars       []models.EODBar
	Flows      []models.TradingFlow
	Signals    *models.TickerSignals
	Volatility models.NullFloat
}

// Service implements InsightService
type Service struct {
	computer *signals.Computer
	currency string
	logger   *common.Logger
}

// NewService creates a new insight service. A nil computer uses default
// periods and a nil logger discards output.
func NewService(computer *signals.Computer, currency string, logger *common.Logger) *Service {
	if computer == nil {
		computer = signals.NewComputer()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		computer: computer,
		currency: common.CurrencyCode(currency),
		logger:   logger,
	}
}

// NewContext sorts copies of bars and flows newest-first and computes the
// signal snapshot and daily volatility the detectors need.
func (s *Service) NewContext(ticker string, bars []models.EODBar, flows []models.TradingFlow) *Context {
	desc := signals.SortDescending(bars)
	return &Context{
		Ticker:     ticker,
		Currency:   s.currency,
		Bars:       desc,
		Flows:      signals.SortFlowsDescending(flows),
		Signals:    s.computer.Compute(ticker, desc),
		Volatility: performance.DailyVolatility(desc),
	}
}

// GenerateInsights evaluates every detector for a ticker.
func (s *Service) GenerateInsights(ticker string, bars []models.EODBar, flows []models.TradingFlow) models.InsightReport {
	return s.Evaluate(s.NewContext(ticker, bars, flows))
}

// Evaluate runs both detector lists against c and returns the capped, ranked report.
func (s *Service) Evaluate(c *Context) models.InsightReport {
	if c.Signals == nil {
		c.Signals = s.computer.Compute(c.Ticker, c.Bars)
	}

	insights := rank(insightDetectors, c, MaxInsights)
	risks := rank(riskDetectors, c, MaxRisks)

	s.logger.Debug().
		Str("ticker", c.Ticker).
		Int("insights", len(insights)).
		Int("risks", len(risks)).
		Msg("Insights generated")

	return models.InsightReport{
		Ticker:   c.Ticker,
		Insights: insights,
		Risks:    risks,
	}
}

// rank runs detectors in order, keeps the events they produce, sorts them by
// priority (generation order breaks ties) and truncates to limit.
func rank(detectors []Detector, c *Context, limit int) []models.Insight {
	out := make([]models.Insight, 0, len(detectors))
	for _, detect := range detectors {
		if ev := detect(c); ev != nil {
			out = append(out, *ev)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
