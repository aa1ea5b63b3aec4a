package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func newTestService() *Service {
	return NewService("USD", common.NewSilentLogger())
}

func snapshot(ticker, theme string, purchase, latest, qty float64) models.HoldingSnapshot {
	return models.HoldingSnapshot{
		Holding: models.Holding{
			Ticker:        ticker,
			Theme:         theme,
			PurchasePrice: purchase,
			Quantity:      qty,
		},
		LatestPrice: latest,
	}
}

func sampleHoldings() []models.HoldingSnapshot {
	return []models.HoldingSnapshot{
		snapshot("BHP.AU", "Mining", 40.00, 46.00, 100), // inv 4000, val 4600
		snapshot("CBA.AU", "Banks", 100.00, 95.00, 30),  // inv 3000, val 2850
		snapshot("WES.AU", "Retail", 50.00, 52.50, 40),  // inv 2000, val 2100
		snapshot("PLS.AU", "Mining", 2.00, 1.70, 500),   // inv 1000, val 850
	}
}

func TestSummarize(t *testing.T) {
	summary := newTestService().Summarize(sampleHoldings())

	assert.InDelta(t, 10000.00, summary.TotalInvestment, 1e-9)
	assert.InDelta(t, 10400.00, summary.TotalValuation, 1e-9)
	assert.InDelta(t, 400.00, summary.TotalProfit, 1e-9)
	assert.InDelta(t, 4.0, summary.TotalReturnPct, 1e-9)

	require.Len(t, summary.Holdings, 4)
	assert.Equal(t, "BHP.AU", summary.Holdings[0].Ticker)
	assert.InDelta(t, 15.0, summary.Holdings[0].ReturnPct, 1e-9)
	assert.InDelta(t, -15.0, summary.Holdings[3].ReturnPct, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := newTestService().Summarize(nil)

	assert.Empty(t, summary.Holdings)
	assert.Equal(t, 0.0, summary.TotalReturnPct)
}

func TestSummarize_ZeroCostHolding(t *testing.T) {
	summary := newTestService().Summarize([]models.HoldingSnapshot{snapshot("GIFT", "", 0, 10, 5)})

	assert.Equal(t, 0.0, summary.Holdings[0].ReturnPct)
	assert.Equal(t, 0.0, summary.TotalReturnPct)
	assert.InDelta(t, 50.0, summary.TotalProfit, 1e-9)
}

func TestAllocate_SumsToHundred(t *testing.T) {
	tests := []struct {
		name     string
		holdings []models.HoldingSnapshot
	}{
		{"sample", sampleHoldings()},
		{"single", []models.HoldingSnapshot{snapshot("A", "", 1, 2, 3)}},
		{"awkward fractions", []models.HoldingSnapshot{
			snapshot("A", "", 1, 1.0/3, 7),
			snapshot("B", "", 1, 2.0/7, 11),
			snapshot("C", "", 1, 0.1, 13),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocations := newTestService().Allocate(tt.holdings)
			require.Len(t, allocations, len(tt.holdings))

			sum := 0.0
			for _, a := range allocations {
				sum += a.Percent
			}
			if !approxEqual(sum, 100, 1e-6) {
				t.Errorf("allocation sum = %.9f, want 100", sum)
			}
		})
	}
}

func TestAllocate_ZeroValuation(t *testing.T) {
	allocations := newTestService().Allocate([]models.HoldingSnapshot{snapshot("A", "", 1, 0, 10)})

	require.Len(t, allocations, 1)
	assert.Equal(t, 0.0, allocations[0].Percent)
}

func TestContributions_SumToTotalReturn(t *testing.T) {
	svc := newTestService()
	holdings := sampleHoldings()

	contributions := svc.Contributions(holdings)
	summary := svc.Summarize(holdings)

	sum := 0.0
	for _, c := range contributions {
		sum += c.Percent
	}
	assert.InDelta(t, summary.TotalReturnPct, sum, 1e-9)
}

func TestContributions_SortedLargestFirst(t *testing.T) {
	contributions := newTestService().Contributions(sampleHoldings())

	require.Len(t, contributions, 4)
	assert.Equal(t, "BHP.AU", contributions[0].Ticker)
	assert.InDelta(t, 6.0, contributions[0].Percent, 1e-9)
	assert.Equal(t, "PLS.AU", contributions[3].Ticker)
	assert.InDelta(t, -1.5, contributions[3].Percent, 1e-9)

	for i := 1; i < len(contributions); i++ {
		assert.GreaterOrEqual(t, contributions[i-1].Percent, contributions[i].Percent)
	}
}
