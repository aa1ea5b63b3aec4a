package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-analytics/internal/models"
)

// === EMA stress tests ===

func TestEMA_EmptyValues(t *testing.T) {
	assert.Empty(t, EMA(nil, 10))
	assert.Empty(t, EMA([]float64{}, 10))
}

func TestEMA_PeriodGreaterThanLen(t *testing.T) {
	result := EMA([]float64{10, 20}, 5)
	require.Len(t, result, 2)
	for _, v := range result {
		assert.False(t, v.Valid)
	}
}

func TestEMA_ZeroPeriod(t *testing.T) {
	result := EMA([]float64{10, 20, 30}, 0)
	require.Len(t, result, 3)
	assert.False(t, result.Last().Valid)
}

func TestEMA_PeriodOne_TracksValues(t *testing.T) {
	values := []float64{5, 7, 3}
	result := EMA(values, 1)
	for i, v := range values {
		assert.InDelta(t, v, result[i].Value, 1e-12)
	}
}

func TestEMA_AllSameValue_Flat(t *testing.T) {
	values := []float64{42, 42, 42, 42, 42, 42, 42, 42, 42, 42}
	result := EMA(values, 5)
	assert.InDelta(t, 42.0, result.Last().Value, 1e-12, "EMA of flat series should equal the constant value")
}

func TestEMA_DoesNotMutateInput(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	EMA(values, 2)
	assert.Equal(t, []float64{1, 2, 3, 4}, values)
}

// === RSI stress tests ===

func TestRSI_InsufficientData(t *testing.T) {
	for n := 0; n <= DefaultRSIPeriod; n++ {
		result := RSI(ascendingValues(10, 1, n), DefaultRSIPeriod)
		assert.Empty(t, result, "len %d", n)
	}
}

func TestRSI_ExactlyPeriodPlusOne(t *testing.T) {
	result := RSI(ascendingValues(10, 1, DefaultRSIPeriod+1), DefaultRSIPeriod)
	require.Len(t, result, DefaultRSIPeriod+1)
	for i := 0; i < DefaultRSIPeriod; i++ {
		assert.False(t, result[i].Valid)
	}
	assert.Equal(t, 100.0, result[DefaultRSIPeriod].Value)
}

func TestRSI_FlatSeries_ZeroLossIs100(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 50
	}
	last := RSI(values, DefaultRSIPeriod).Last()
	assert.Equal(t, 100.0, last.Value)
}

func TestRSI_Bounded(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	for _, v := range RSI(values, DefaultRSIPeriod) {
		if !v.Valid {
			continue
		}
		assert.GreaterOrEqual(t, v.Value, 0.0)
		assert.LessOrEqual(t, v.Value, 100.0)
		assert.False(t, math.IsNaN(v.Value))
	}
}

// === MACD stress tests ===

func TestMACD_InsufficientData(t *testing.T) {
	result := MACD(ascendingValues(10, 1, 34), DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	assert.Equal(t, 0, result.Len())
	assert.NotNil(t, result.MACD)
	assert.Empty(t, result.Signal)
	assert.Empty(t, result.Histogram)
}

func TestMACD_HistogramIsDifference(t *testing.T) {
	values := make([]float64, 120)
	for i := range values {
		values[i] = 50 + 5*math.Sin(float64(i)/7) + float64(i)*0.1
	}
	result := MACD(values, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)

	require.Equal(t, len(values), result.Len())
	for i := range values {
		if result.MACD[i].Valid && result.Signal[i].Valid {
			require.True(t, result.Histogram[i].Valid)
			assert.Equal(t, result.MACD[i].Value-result.Signal[i].Value, result.Histogram[i].Value)
		} else {
			assert.False(t, result.Histogram[i].Valid)
		}
	}
}

func TestMACD_InvalidPeriods(t *testing.T) {
	result := MACD(ascendingValues(10, 1, 100), 0, 26, 9)
	assert.Equal(t, 0, result.Len())
}

// === HighLow / SMA stress tests ===

func TestHighLow_LookbackLongerThanBars(t *testing.T) {
	bars := []models.EODBar{
		{High: 15, Low: 9, Close: 10},
		{High: 12, Low: 7, Close: 11},
	}
	high, low := HighLow(bars, 20)
	assert.Equal(t, 15.0, high)
	assert.Equal(t, 7.0, low)
}

func TestSMA_ZeroPeriod(t *testing.T) {
	assert.Equal(t, 0.0, SMA(generateBars([]float64{1, 2, 3}), 0))
}
