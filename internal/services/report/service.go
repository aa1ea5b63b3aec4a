// Package report assembles indicator, statistics, insight and portfolio outputs
package report

import (
	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/interfaces"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/performance"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// DefaultEMAPeriod is used when Options.EMAPeriod is not positive
const DefaultEMAPeriod = 20

// Moving-average overlay periods for the chart series
const (
	ShortMAPeriod = 5
	LongMAPeriod  = 20
)

// Options controls report assembly
type Options struct {
	EMAPeriod int
	// MaxPoints caps each chart series; values <= 0 keep every point
	MaxPoints int
	Markdown  bool
	Currency  string // ISO 4217 code for money in markdown output
}

// Service implements ReportService
type Service struct {
	insight   interfaces.InsightService
	portfolio interfaces.PortfolioService
	computer  *signals.Computer
	options   Options
	logger    *common.Logger
}

// NewService creates a new report service. A nil computer uses default
// periods and a nil logger discards output.
func NewService(
	insight interfaces.InsightService,
	portfolio interfaces.PortfolioService,
	computer *signals.Computer,
	options Options,
	logger *common.Logger,
) *Service {
	if computer == nil {
		computer = signals.NewComputer()
	}
	if options.EMAPeriod <= 0 {
		options.EMAPeriod = DefaultEMAPeriod
	}
	options.Currency = common.CurrencyCode(options.Currency)
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		insight:   insight,
		portfolio: portfolio,
		computer:  computer,
		options:   options,
		logger:    logger,
	}
}

// TickerReport builds the full analytics report for one ticker.
// bars and flows may be in any order.
func (s *Service) TickerReport(ticker string, bars []models.EODBar, flows []models.TradingFlow, basis *models.PurchaseBasis) *models.TickerReport {
	asc := signals.SortAscending(bars)
	desc := signals.Reverse(asc)

	report := &models.TickerReport{
		Ticker:            ticker,
		Signals:           s.computer.Compute(ticker, desc),
		Series:            s.chartSeries(asc),
		SupportResistance: signals.CalculateSupportResistance(desc),
		Returns:           performance.Compute(desc, basis),
		Insights:          s.insight.GenerateInsights(ticker, desc, flows),
	}
	if len(desc) > 0 {
		report.AsOf = desc[0].Date
	}
	if s.options.Markdown {
		report.Markdown = formatTickerReport(report, s.options.Currency)
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Int("bars", len(bars)).
		Int("flows", len(flows)).
		Int("insights", len(report.Insights.Insights)).
		Int("risks", len(report.Insights.Risks)).
		Msg("Ticker report assembled")

	return report
}

// chartSeries computes the dated indicator series from oldest-first bars and samples them
func (s *Service) chartSeries(asc []models.EODBar) models.ChartSeries {
	closes := signals.Closes(asc)
	ma5 := signals.SMASeries(closes, ShortMAPeriod)
	ma20 := signals.SMASeries(closes, LongMAPeriod)
	ema := signals.EMA(closes, s.options.EMAPeriod)
	rsi := signals.RSI(closes, s.computer.RSIPeriod)
	macd := signals.MACD(closes, s.computer.MACDFast, s.computer.MACDSlow, s.computer.MACDSignal)

	n := len(asc)
	closeSeries := make([]models.DatedValue, n)
	ma5Series := make([]models.DatedValue, n)
	ma20Series := make([]models.DatedValue, n)
	emaSeries := make([]models.DatedValue, n)
	rsiSeries := make([]models.DatedValue, n)
	macdSeries := make([]models.MACDPoint, n)

	for i, bar := range asc {
		closeSeries[i] = models.DatedValue{Date: bar.Date, Value: models.Float(bar.Close)}
		ma5Series[i] = models.DatedValue{Date: bar.Date, Value: at(ma5, i)}
		ma20Series[i] = models.DatedValue{Date: bar.Date, Value: at(ma20, i)}
		emaSeries[i] = models.DatedValue{Date: bar.Date, Value: at(ema, i)}
		rsiSeries[i] = models.DatedValue{Date: bar.Date, Value: at(rsi, i)}
		macdSeries[i] = models.MACDPoint{
			Date:      bar.Date,
			MACD:      at(macd.MACD, i),
			Signal:    at(macd.Signal, i),
			Histogram: at(macd.Histogram, i),
		}
	}

	return models.ChartSeries{
		EMAPeriod: s.options.EMAPeriod,
		Close:     signals.Sample(closeSeries, s.options.MaxPoints),
		MA5:       signals.Sample(ma5Series, s.options.MaxPoints),
		MA20:      signals.Sample(ma20Series, s.options.MaxPoints),
		EMA:       signals.Sample(emaSeries, s.options.MaxPoints),
		RSI:       signals.Sample(rsiSeries, s.options.MaxPoints),
		MACD:      signals.Sample(macdSeries, s.options.MaxPoints),
	}
}

// at returns series[i], or null when the series was too short to compute
func at(series models.IndicatorSeries, i int) models.NullFloat {
	if i < len(series) {
		return series[i]
	}
	return models.NullFloat{}
}

// PortfolioReport builds every portfolio diagnostic in one value
func (s *Service) PortfolioReport(holdings []models.HoldingSnapshot, watched []models.WatchedStock, groups []models.ThemeGroup) *models.PortfolioReport {
	report := &models.PortfolioReport{
		Summary:       s.portfolio.Summarize(holdings),
		Allocation:    s.portfolio.Allocate(holdings),
		Contributions: s.portfolio.Contributions(holdings),
		Diagnosis:     s.portfolio.DiagnosePortfolio(holdings, groups),
		Watch:         s.portfolio.AnalyzeWatchedStocks(watched, holdings),
		Suggestions:   s.portfolio.GenerateAdjustmentSuggestions(holdings, watched),
		Health:        s.portfolio.CheckHoldingsHealth(holdings),
	}
	if s.options.Markdown {
		report.Markdown = formatPortfolioReport(report, s.options.Currency)
	}

	s.logger.Debug().
		Int("holdings", len(holdings)).
		Int("watched", len(watched)).
		Int("suggestions", len(report.Suggestions)).
		Msg("Portfolio report assembled")

	return report
}
