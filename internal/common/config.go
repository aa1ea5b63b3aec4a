// Package common provides shared utilities for Vire analytics
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bobmcallan/vire-analytics/internal/models"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Vire analytics
type Config struct {
	Environment string           `toml:"environment"`
	Logging     LoggingConfig    `toml:"logging"`
	Indicators  IndicatorsConfig `toml:"indicators"`
	Display     DisplayConfig    `toml:"display"`
	Portfolio   PortfolioConfig  `toml:"portfolio"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// IndicatorsConfig holds indicator periods
type IndicatorsConfig struct {
	RSIPeriod  int `toml:"rsi_period"`
	MACDFast   int `toml:"macd_fast"`
	MACDSlow   int `toml:"macd_slow"`
	MACDSignal int `toml:"macd_signal"`
	EMAPeriod  int `toml:"ema_period"`
}

// DisplayConfig controls presentation output
type DisplayConfig struct {
	MaxPoints int    `toml:"max_points"` // chart series cap, 0 keeps every point
	Markdown  bool   `toml:"markdown"`
	Currency  string `toml:"currency"` // ISO 4217 code for money amounts and flow totals
}

// PortfolioConfig holds portfolio grouping. Without themes, holdings are
// grouped by their own theme labels.
type PortfolioConfig struct {
	Themes []models.ThemeGroup `toml:"themes"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level: "info",
		},
		Indicators: defaultIndicators(),
		Display: DisplayConfig{
			MaxPoints: 120,
			Markdown:  true,
			Currency:  DefaultCurrency,
		},
	}
}

func defaultIndicators() IndicatorsConfig {
	return IndicatorsConfig{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		EMAPeriod:  20,
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	validateIndicators(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VIRE_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("VIRE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("VIRE_MAX_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Display.MaxPoints = n
		}
	}

	if v := os.Getenv("VIRE_CURRENCY"); v != "" {
		config.Display.Currency = v
	}

	if v := os.Getenv("VIRE_RSI_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Indicators.RSIPeriod = n
		}
	}
}

// validateIndicators resets non-positive periods to defaults and restores
// the default MACD periods when fast is not shorter than slow. Unknown
// currency codes fall back to DefaultCurrency.
func validateIndicators(config *Config) {
	defaults := defaultIndicators()
	ind := &config.Indicators

	if ind.RSIPeriod <= 0 {
		ind.RSIPeriod = defaults.RSIPeriod
	}
	if ind.EMAPeriod <= 0 {
		ind.EMAPeriod = defaults.EMAPeriod
	}
	if ind.MACDSignal <= 0 {
		ind.MACDSignal = defaults.MACDSignal
	}
	if ind.MACDFast <= 0 || ind.MACDSlow <= 0 || ind.MACDFast >= ind.MACDSlow {
		ind.MACDFast = defaults.MACDFast
		ind.MACDSlow = defaults.MACDSlow
	}
	if config.Display.MaxPoints < 0 {
		config.Display.MaxPoints = 0
	}
	config.Display.Currency = CurrencyCode(config.Display.Currency)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
