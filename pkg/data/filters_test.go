package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

func bar(year int, month time.Month, day int, close float64) types.OHLCV {
	return types.OHLCV{
		Timestamp: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Open:      close, High: close, Low: close, Close: close,
	}
}

func TestDefaultDataFilter_FilterByDateRange(t *testing.T) {
	f := NewDefaultDataFilter()
	data := []types.OHLCV{bar(2024, 1, 1, 1), bar(2024, 1, 2, 2), bar(2024, 1, 3, 3), bar(2024, 1, 4, 4)}

	// the range is inclusive on trading days, whatever the time of day
	out := f.FilterByDateRange(data,
		time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC))
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Close)
	assert.Equal(t, 3.0, out[1].Close)

	open := f.FilterByDateRange(data, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), time.Time{})
	assert.Len(t, open, 2)
}

func TestDefaultDataFilter_ValidateTimeSequence(t *testing.T) {
	f := NewDefaultDataFilter()

	assert.NoError(t, f.ValidateTimeSequence(nil))
	assert.NoError(t, f.ValidateTimeSequence([]types.OHLCV{bar(2024, 1, 1, 1), bar(2024, 1, 2, 1)}))
	assert.Error(t, f.ValidateTimeSequence([]types.OHLCV{bar(2024, 1, 2, 1), bar(2024, 1, 1, 1)}))
	assert.Error(t, f.ValidateTimeSequence([]types.OHLCV{bar(2024, 1, 1, 1), bar(2024, 1, 1, 2)}))
}

func TestDefaultDataFilter_Normalize(t *testing.T) {
	f := NewDefaultDataFilter()
	data := []types.OHLCV{
		bar(2024, 1, 3, 3),
		bar(2024, 1, 1, 1),
		bar(2024, 1, 2, 2),
		bar(2024, 1, 1, 9),
	}

	out, err := f.Normalize(data, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Close, "first occurrence of a day wins")
	assert.Equal(t, 2.0, out[1].Close)

	// input untouched
	assert.Equal(t, 3.0, data[0].Close)
}
