package series

import (
	"math"
	"testing"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDay = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

func barsFromCloses(closes ...float64) []types.OHLCV {
	bars := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = types.OHLCV{
			Open:      c,
			High:      c + 1,
			Low:       math.Max(c-1, 0),
			Close:     c,
			Volume:    1000,
			Timestamp: baseDay.AddDate(0, 0, i),
		}
	}
	return bars
}

func TestNew_CopiesInput(t *testing.T) {
	bars := barsFromCloses(1, 2, 3)
	s, err := New("CCL", bars)
	require.NoError(t, err)

	bars[0].Close = 99
	assert.Equal(t, 1.0, s.At(0).Close)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "CCL", s.Symbol())
	assert.Equal(t, 3.0, s.Last().Close)
}

func TestNew_RejectsInvalidSeries(t *testing.T) {
	tests := []struct {
		name string
		bars []types.OHLCV
	}{
		{"empty", nil},
		{"duplicate date", func() []types.OHLCV {
			b := barsFromCloses(1, 2)
			b[1].Timestamp = b[0].Timestamp
			return b
		}()},
		{"out of order", func() []types.OHLCV {
			b := barsFromCloses(1, 2)
			b[0].Timestamp, b[1].Timestamp = b[1].Timestamp, b[0].Timestamp
			return b
		}()},
		{"negative close", barsFromCloses(1, -2)},
		{"nan high", func() []types.OHLCV {
			b := barsFromCloses(1, 2)
			b[1].High = math.NaN()
			return b
		}()},
		{"infinite volume", func() []types.OHLCV {
			b := barsFromCloses(1, 2)
			b[0].Volume = math.Inf(1)
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("X", tt.bars)
			require.Error(t, err)
			kind, ok := errors.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, errors.KindInvalidSeries, kind)
		})
	}
}

func TestNew_ToleratesInvertedHighLow(t *testing.T) {
	bars := barsFromCloses(10, 11)
	bars[1].High, bars[1].Low = 5, 20

	_, err := New("X", bars)
	assert.NoError(t, err)
}

func TestPriceChanges_DiscreteDerivative(t *testing.T) {
	s, err := New("X", barsFromCloses(100, 110, 99))
	require.NoError(t, err)

	changes, err := s.PriceChanges(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{10.0, -10.0}, changes)
}

func TestPriceChanges_ZeroClose(t *testing.T) {
	s, err := New("X", barsFromCloses(5, 0, 3))
	require.NoError(t, err)

	_, err = s.PriceChanges(2)
	assert.True(t, errors.IsDivisionByZero(err))
}

func TestPriceHistory_RoundsAndOrders(t *testing.T) {
	s, err := New("X", barsFromCloses(1.004, 2.005, 3.333, 4.4449))
	require.NoError(t, err)

	history, err := s.PriceHistory(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.01, 3.33, 4.44}, history)
}

func TestWindow_OverLongRequestFails(t *testing.T) {
	s, err := New("X", barsFromCloses(1, 2, 3))
	require.NoError(t, err)

	_, err = s.Closes(4)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientHistory(err))

	var ie *errors.IndicatorError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 4, ie.Required)
	assert.Equal(t, 3, ie.Available)

	_, err = s.PriceChanges(3)
	assert.True(t, errors.IsInsufficientHistory(err))
}

func TestWindow_InvalidLength(t *testing.T) {
	s, err := New("X", barsFromCloses(1, 2, 3))
	require.NoError(t, err)

	_, err = s.Bars(0)
	kind, ok := errors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindInvalidParameter, kind)

	_, err = s.PriceChanges(-1)
	kind, _ = errors.KindOf(err)
	assert.Equal(t, errors.KindInvalidParameter, kind)
}

func TestBars_ReturnsCopy(t *testing.T) {
	s, err := New("X", barsFromCloses(1, 2, 3))
	require.NoError(t, err)

	bars, err := s.Bars(2)
	require.NoError(t, err)
	bars[0].Close = 42
	assert.Equal(t, 2.0, s.At(1).Close)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.01, Round(1.005))
	assert.Equal(t, -1.01, Round(-1.005))
	assert.Equal(t, 0.0, Round(-0.001))
	assert.False(t, math.Signbit(Round(-0.001)))
	assert.True(t, math.IsNaN(Round(math.NaN())))
	assert.Equal(t, []float64{2.5, 3.33}, RoundAll([]float64{2.5, 3.3333}))
}
