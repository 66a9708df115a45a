package indicators

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
)

func TestNewSMA(t *testing.T) {
	sma := NewSMA(20)

	assert.NotNil(t, sma)
	assert.Equal(t, 20, sma.Length())
	assert.Equal(t, "SMA", sma.GetName())
	assert.Equal(t, 25, sma.GetRequiredPeriods(5))
}

func TestSMA_Calculate_AlignsWithLastCloses(t *testing.T) {
	ps := seriesFromCloses(t, 1, 2, 3, 4, 5)

	values, err := NewSMA(2).Calculate(ps, 3)
	require.NoError(t, err)

	// Four averages fit in five closes; the one ending at close 2 is dropped.
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, values)
}

func TestSMA_Calculate_InsufficientHistory(t *testing.T) {
	ps := seriesFromCloses(t, 1, 2, 3, 4, 5)

	_, err := NewSMA(2).Calculate(ps, 4)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientHistory(err))

	var ie *errors.IndicatorError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 6, ie.Required)
	assert.Equal(t, 5, ie.Available)
	assert.Equal(t, "SMA", ie.Component)
}

func TestSMA_Calculate_InvalidParameters(t *testing.T) {
	ps := generateTestSeries(t, 50)

	tests := []struct {
		name   string
		length int
		period int
	}{
		{"zero period", 10, 0},
		{"negative period", 10, -3},
		{"zero length", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSMA(tt.length).Calculate(ps, tt.period)
			kind, ok := errors.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, errors.KindInvalidParameter, kind)
		})
	}
}

func TestSMA_Calculate_FlatData(t *testing.T) {
	ps := generateFlatSeries(t, 40, 42.5)

	for _, length := range []int{1, 3, 10, 20} {
		values, err := NewSMA(length).Calculate(ps, 15)
		require.NoError(t, err)
		require.Len(t, values, 15)
		for _, v := range values {
			assert.Equal(t, 42.5, v)
		}
	}
}

func TestSMA_Calculate_MatchesTalib(t *testing.T) {
	ps := generateTestSeries(t, 200)
	sma := NewSMA(10)
	period := 30

	values, err := sma.Calculate(ps, period)
	require.NoError(t, err)

	closes, err := ps.Closes(sma.GetRequiredPeriods(period))
	require.NoError(t, err)
	expected := talib.Sma(closes, 10)
	expected = expected[len(expected)-period:]

	require.Len(t, values, period)
	for i := range values {
		assert.InDelta(t, expected[i], values[i], publicationDelta, "index %d", i)
	}
}

func TestSMA_Calculate_Repeatable(t *testing.T) {
	ps := generateTestSeries(t, 100)
	sma := NewSMA(10)

	first, err := sma.Calculate(ps, 20)
	require.NoError(t, err)
	second, err := sma.Calculate(ps, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSMA_InterfaceCompliance(t *testing.T) {
	var _ SeriesIndicator = NewSMA(10)
}

func BenchmarkSMA_Calculate(b *testing.B) {
	ps := generateTestSeries(b, 1000)
	sma := NewSMA(DefaultSMALength)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = sma.Calculate(ps, 250)
	}
}
