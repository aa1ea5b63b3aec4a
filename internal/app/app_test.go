package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vire.toml")
	body := `
environment = "test"

[logging]
level = "error"

[indicators]
ema_period = 10

[display]
max_points = 25

[[portfolio.themes]]
name = "Resources"
tickers = ["BHP.AU", "RIO.AU"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestApp() *App {
	cfg := common.NewDefaultConfig()
	return NewAppWithConfig(cfg, common.NewSilentLogger())
}

func TestNewApp_InitializesAllServices(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, a.Config)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.InsightService)
	assert.NotNil(t, a.PortfolioService)
	assert.NotNil(t, a.ReportService)
	assert.Equal(t, "test", a.Config.Environment)
	assert.Equal(t, 10, a.Config.Indicators.EMAPeriod)
	assert.False(t, a.StartupTime.IsZero())
}

func TestNewApp_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display\n"), 0o644))

	_, err := NewApp(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_FullSnapshot(t *testing.T) {
	snapshot, err := ReadSnapshot(strings.NewReader(sampleSnapshotJSON(40)))
	require.NoError(t, err)

	out, err := newTestApp().Run(snapshot, "")
	require.NoError(t, err)

	_, err = uuid.Parse(out.RunID)
	assert.NoError(t, err)
	assert.False(t, out.GeneratedAt.IsZero())

	require.Len(t, out.Tickers, 2)
	assert.Equal(t, "BHP.AU", out.Tickers[0].Ticker)
	assert.Equal(t, 40, out.Tickers[0].Returns.DataPoints)

	require.NotNil(t, out.Portfolio)
	assert.Len(t, out.Portfolio.Health, 2)
	assert.Len(t, out.Portfolio.Watch, 1)
}

func TestRun_SingleTicker(t *testing.T) {
	snapshot, err := ReadSnapshot(strings.NewReader(sampleSnapshotJSON(30)))
	require.NoError(t, err)

	out, err := newTestApp().Run(snapshot, "rio.au")
	require.NoError(t, err)

	require.Len(t, out.Tickers, 1)
	assert.Equal(t, "RIO.AU", out.Tickers[0].Ticker)
	assert.Nil(t, out.Portfolio)
}

func TestRun_UnknownTicker(t *testing.T) {
	snapshot, err := ReadSnapshot(strings.NewReader(sampleSnapshotJSON(10)))
	require.NoError(t, err)

	_, err = newTestApp().Run(snapshot, "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestRun_ConfigThemesUsedWhenSnapshotHasNone(t *testing.T) {
	a := newTestApp()
	a.Config.Portfolio.Themes = []models.ThemeGroup{{Name: "All", Tickers: []string{"AAA", "BBB"}}}

	out, err := a.Run(&Snapshot{
		Holdings: []models.HoldingSnapshot{
			{Holding: models.Holding{Ticker: "AAA", PurchasePrice: 1, Quantity: 35}, LatestPrice: 1},
			{Holding: models.Holding{Ticker: "BBB", PurchasePrice: 1, Quantity: 35}, LatestPrice: 1},
			{Holding: models.Holding{Ticker: "CCC", PurchasePrice: 1, Quantity: 30}, LatestPrice: 1},
		},
	}, "")
	require.NoError(t, err)

	require.NotNil(t, out.Portfolio)
	require.Len(t, out.Portfolio.Diagnosis.ConcentratedThemes, 1)
	assert.Equal(t, "All", out.Portfolio.Diagnosis.ConcentratedThemes[0].Name)
}

func TestRun_EmptySnapshot(t *testing.T) {
	out, err := newTestApp().Run(&Snapshot{}, "")
	require.NoError(t, err)

	assert.NotNil(t, out.Tickers)
	assert.Empty(t, out.Tickers)
	assert.Nil(t, out.Portfolio)
}
