package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

func TestComputer_Compute_Uptrend(t *testing.T) {
	// newest-first: 160 down to 101
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 160 - float64(i)
	}
	bars := generateBars(closes)

	s := NewComputer().Compute("BHP.AU", bars)

	assert.Equal(t, "BHP.AU", s.Ticker)
	assert.Equal(t, 60, s.BarCount)
	assert.Equal(t, 160.0, s.Current)
	assert.Equal(t, 1.0, s.Change)
	assert.Equal(t, bars[0].Date, s.AsOf)

	require.True(t, s.MA5.Valid)
	require.True(t, s.MA20.Valid)
	require.True(t, s.PrevMA5.Valid)
	require.True(t, s.PrevMA20.Valid)
	assert.InDelta(t, 158.0, s.MA5.Value, 1e-9)
	assert.InDelta(t, 150.5, s.MA20.Value, 1e-9)
	assert.InDelta(t, 153.0, s.PrevMA5.Value, 1e-9)
	assert.Equal(t, models.CrossNone, s.MACross)
	assert.Equal(t, models.TrendBullish, s.Trend)

	assert.Equal(t, 100.0, s.RSI.Value)
	assert.Equal(t, "overbought", s.RSISignal)
	assert.True(t, s.MACD.Valid)
	assert.True(t, s.PrevMACD.Valid)

	assert.Equal(t, 160.5, s.High20)
	assert.Equal(t, 140.5, s.Low20)
	assert.Equal(t, 59, s.Streak)
}

func TestComputer_Compute_ShortHistory(t *testing.T) {
	s := NewComputer().Compute("X", generateBars([]float64{10, 9, 8}))

	assert.False(t, s.MA5.Valid)
	assert.False(t, s.MA20.Valid)
	assert.False(t, s.RSI.Valid)
	assert.False(t, s.MACD.Valid)
	assert.Equal(t, "neutral", s.RSISignal)
	assert.Equal(t, models.CrossNone, s.MACross)
	assert.Equal(t, models.TrendNeutral, s.Trend)
	assert.Equal(t, 2, s.Streak)
}

func TestComputer_Compute_MACross(t *testing.T) {
	tests := []struct {
		name   string
		recent float64
		want   string
	}{
		{"breakout above flat base", 110, models.CrossGolden},
		{"breakdown below flat base", 90, models.CrossDeath},
		{"unchanged", 100, models.CrossNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// newest-first: five recent closes over a flat base of twenty
			closes := make([]float64, 25)
			for i := range closes {
				closes[i] = 100
				if i < CrossLookback {
					closes[i] = tt.recent
				}
			}

			s := NewComputer().Compute("X", generateBars(closes))
			assert.Equal(t, tt.want, s.MACross)
		})
	}
}

func TestComputer_Compute_Empty(t *testing.T) {
	s := NewComputer().Compute("X", nil)
	assert.Equal(t, 0, s.BarCount)
	assert.Equal(t, 0.0, s.Current)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		expected int
	}{
		{"four up days", []float64{14, 13, 12, 11, 10}, 4},
		{"down streak broken by up day", []float64{7, 8, 9, 8}, -2},
		{"flat day breaks", []float64{10, 10, 9}, 0},
		{"flat after two ups", []float64{12, 11, 10, 10}, 2},
		{"single bar", []float64{10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Streak(generateBars(tt.closes)))
		})
	}
}
