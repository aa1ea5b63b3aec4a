package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/common"
	"github.com/bobmcallan/vire-analytics/internal/models"
	"github.com/bobmcallan/vire-analytics/internal/signals"
)

func newTestService() *Service {
	return NewService(nil, "USD", common.NewSilentLogger())
}

// risingBars builds newest-first bars for a steady climb
func risingBars(n int, start, step float64) []models.EODBar {
	bars := make([]models.EODBar, n)
	for i := 0; i < n; i++ {
		c := start + step*float64(n-1-i)
		bars[i] = models.EODBar{
			Date:  day0.AddDate(0, 0, -i),
			Open:  c,
			High:  c + 0.5,
			Low:   c - 0.5,
			Close: c,
		}
	}
	return bars
}

func fixed(ev models.Insight) Detector {
	return func(*Context) *models.Insight {
		out := ev
		return &out
	}
}

func none(*Context) *models.Insight { return nil }

func TestRank_SortsByPriorityThenGenerationOrder(t *testing.T) {
	detectors := []Detector{
		fixed(models.Insight{Priority: 3, Text: "a"}),
		fixed(models.Insight{Priority: 1, Text: "b"}),
		none,
		fixed(models.Insight{Priority: 3, Text: "c"}),
		fixed(models.Insight{Priority: 2, Text: "d"}),
		fixed(models.Insight{Priority: 1, Text: "e"}),
	}

	result := rank(detectors, &Context{}, 4)

	texts := make([]string, len(result))
	for i, r := range result {
		texts[i] = r.Text
	}
	assert.Equal(t, []string{"b", "e", "d", "a"}, texts)
}

func TestRank_UnderLimit(t *testing.T) {
	result := rank([]Detector{none, fixed(models.Insight{Priority: 2})}, &Context{}, 3)
	assert.Len(t, result, 1)
}

func TestGenerateInsights_UptrendWithBuying(t *testing.T) {
	svc := newTestService()
	bars := risingBars(60, 100, 1)
	flows := flowsOf([]float64{5e9, 5e9, 5e9, 5e9}, []float64{1e9, 1e9, 1e9, -1e9})

	report := svc.GenerateInsights("BHP.AU", bars, flows)

	assert.Equal(t, "BHP.AU", report.Ticker)
	require.NotEmpty(t, report.Insights)
	assert.LessOrEqual(t, len(report.Insights), MaxInsights)
	assert.LessOrEqual(t, len(report.Risks), MaxRisks)

	for i := 1; i < len(report.Insights); i++ {
		assert.LessOrEqual(t, report.Insights[i-1].Priority, report.Insights[i].Priority)
	}

	categories := map[string]bool{}
	for _, ev := range report.Insights {
		categories[ev.Category] = true
	}
	assert.True(t, categories[models.CategoryTradingFlow])

	riskCategories := map[string]bool{}
	for _, ev := range report.Risks {
		riskCategories[ev.Category] = true
	}
	assert.True(t, riskCategories[models.CategoryRSI], "steady climb should be overbought")
	assert.True(t, riskCategories[models.CategoryRange], "steady climb should sit at its 20-day high")
}

func TestGenerateInsights_OrderIndependent(t *testing.T) {
	svc := newTestService()
	desc := risingBars(40, 50, 0.5)
	asc := signals.Reverse(desc)
	flows := flowsOf([]float64{1, 1, 1}, nil)

	assert.Equal(t,
		svc.GenerateInsights("X", desc, flows),
		svc.GenerateInsights("X", asc, signals.Reverse(flows)),
	)
}

func TestGenerateInsights_EmptyInput(t *testing.T) {
	report := newTestService().GenerateInsights("EMPTY", nil, nil)

	assert.Equal(t, "EMPTY", report.Ticker)
	assert.Empty(t, report.Insights)
	assert.Empty(t, report.Risks)
}

func TestGenerateInsights_DoesNotMutateInput(t *testing.T) {
	asc := signals.Reverse(risingBars(30, 10, 1))
	first := asc[0]

	newTestService().GenerateInsights("X", asc, nil)

	assert.Equal(t, first, asc[0])
}

func TestEvaluate_ComputesMissingSignals(t *testing.T) {
	svc := newTestService()
	c := &Context{Ticker: "X", Bars: risingBars(30, 10, 1)}

	report := svc.Evaluate(c)

	require.NotNil(t, c.Signals)
	assert.NotEmpty(t, report.Insights)
}

func TestNewService_CurrencyAndNilLogger(t *testing.T) {
	svc := NewService(nil, "krw", nil)
	c := svc.NewContext("X", nil, flowsOf([]float64{4e9, 4e9, 4e9}, nil))

	assert.Equal(t, "KRW", c.Currency)
	ev := detectFlowMagnitude(c)
	require.NotNil(t, ev)
	assert.Contains(t, ev.Text, "₩12.0B")

	assert.NotPanics(t, func() { svc.Evaluate(c) })
}
