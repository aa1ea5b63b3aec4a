package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

func TestCheckHoldingsHealth(t *testing.T) {
	tests := []struct {
		name         string
		latest       float64
		flow         *models.TradingFlow
		expectStatus models.ReturnStatus
		expectFlow   models.FlowSignal
		expectInNote string
	}{
		{"profit with buying", 110, flow(5, 1), models.StatusProfit, models.FlowSignalPositive, "net buying"},
		{"breakeven counts as profit", 100, nil, models.StatusProfit, models.FlowSignalNeutral, "no clear flow"},
		{"slight loss", 97, flow(-5, 2), models.StatusSlightLoss, models.FlowSignalNegative, "Slight loss"},
		{"exactly minus five is slight loss", 95, nil, models.StatusSlightLoss, models.FlowSignalNeutral, "-5.00%"},
		{"warning", 93, flow(3, -3), models.StatusWarning, models.FlowSignalNeutral, "Warning"},
		{"exactly minus ten is warning", 90, nil, models.StatusWarning, models.FlowSignalNeutral, "Warning"},
		{"danger", 85, flow(-1, -1), models.StatusDanger, models.FlowSignalNegative, "stop-loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := snapshot("X", "", 100, tt.latest, 10)
			h.Flow = tt.flow

			result := newTestService().CheckHoldingsHealth([]models.HoldingSnapshot{h})

			require.Len(t, result, 1)
			assert.Equal(t, tt.expectStatus, result[0].Status)
			assert.Equal(t, tt.expectFlow, result[0].Flow)
			assert.Contains(t, result[0].Note, tt.expectInNote)
		})
	}
}

func TestCheckHoldingsHealth_PreservesOrder(t *testing.T) {
	result := newTestService().CheckHoldingsHealth(sampleHoldings())

	require.Len(t, result, 4)
	assert.Equal(t, "BHP.AU", result[0].Ticker)
	assert.Equal(t, "PLS.AU", result[3].Ticker)
	assert.Equal(t, models.StatusDanger, result[3].Status)
}
