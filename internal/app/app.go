package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/interfaces"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/services/insight"
	"github.com/bobmcallan/vire-analytics/internal/services/portfolio"
	"github.com/bobmcallan/vire-analytics/internal/services/report"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

// App holds the loaded configuration and initialized services.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	InsightService   interfaces.InsightService
	PortfolioService interfaces.PortfolioService
	ReportService    interfaces.ReportService
	StartupTime      time.Time
}

// Output is the result of one analytics run
type Output struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Version     string                  `json:"version"`
	Tickers     []*models.TickerReport  `json:"tickers"`
	Portfolio   *models.PortfolioReport `json:"portfolio,omitempty"`
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes all services.
// configPath may be empty, in which case VIRE_CONFIG and then vire.toml
// next to the binary are tried.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	if configPath == "" {
		configPath = os.Getenv("VIRE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "vire.toml")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(config, common.NewLogger(config.Logging.Level)), nil
}

// NewAppWithConfig initializes all services from an already-loaded config
func NewAppWithConfig(config *common.Config, logger *common.Logger) *App {
	computer := &signals.Computer{
		RSIPeriod:  config.Indicators.RSIPeriod,
		MACDFast:   config.Indicators.MACDFast,
		MACDSlow:   config.Indicators.MACDSlow,
		MACDSignal: config.Indicators.MACDSignal,
	}

	currency := config.Display.Currency
	insightService := insight.NewService(computer, currency, logger)
	portfolioService := portfolio.NewService(currency, logger)
	reportService := report.NewService(insightService, portfolioService, computer, report.Options{
		EMAPeriod: config.Indicators.EMAPeriod,
		MaxPoints: config.Display.MaxPoints,
		Markdown:  config.Display.Markdown,
		Currency:  currency,
	}, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		InsightService:   insightService,
		PortfolioService: portfolioService,
		ReportService:    reportService,
		StartupTime:      time.Now(),
	}
}

// Run analyzes a snapshot. When ticker is set only that ticker's report is
// produced; otherwise every ticker and, if holdings are present, the portfolio.
func (a *App) Run(snapshot *Snapshot, ticker string) (*Output, error) {
	out := &Output{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Version:     common.GetVersion(),
		Tickers:     []*models.TickerReport{},
	}

	for _, td := range snapshot.Tickers {
		if ticker != "" && !strings.EqualFold(td.Ticker, ticker) {
			continue
		}
		out.Tickers = append(out.Tickers, a.ReportService.TickerReport(td.Ticker, td.Bars, td.Flows, td.Basis))
	}

	if ticker != "" {
		if len(out.Tickers) == 0 {
			return nil, fmt.Errorf("ticker %s not found in snapshot", ticker)
		}
		return out, nil
	}

	if len(snapshot.Holdings) > 0 {
		themes := snapshot.Themes
		if len(themes) == 0 {
			themes = a.Config.Portfolio.Themes
		}
		out.Portfolio = a.ReportService.PortfolioReport(snapshot.Holdings, snapshot.Watched, themes)
	}

	a.Logger.Info().
		Str("run_id", out.RunID).
		Int("tickers", len(out.Tickers)).
		Int("holdings", len(snapshot.Holdings)).
		Dur("since_startup", time.Since(a.StartupTime)).
		Msg("Analytics run complete")

	return out, nil
}
