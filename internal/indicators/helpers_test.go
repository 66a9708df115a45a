package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/stock-indicators/internal/series"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

var testStart = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

func day(i int) time.Time {
	return testStart.AddDate(0, 0, i)
}

// seriesFromCloses builds bars whose open, high, low and close all equal the close
func seriesFromCloses(t testing.TB, closes ...float64) *series.PriceSeries {
	t.Helper()
	bars := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = types.OHLCV{Timestamp: day(i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	ps, err := series.New("TEST", bars)
	require.NoError(t, err)
	return ps
}

func seriesFromBars(t testing.TB, bars ...types.OHLCV) *series.PriceSeries {
	t.Helper()
	for i := range bars {
		bars[i].Timestamp = day(i)
	}
	ps, err := series.New("TEST", bars)
	require.NoError(t, err)
	return ps
}

// generateTestData creates a deterministic oscillating series with a slight drift
func generateTestData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	prevClose := 100.0

	for i := 0; i < count; i++ {
		price := 100 + 10*math.Sin(float64(i)/5) + 0.1*float64(i)
		data[i] = types.OHLCV{
			Timestamp: day(i),
			Open:      prevClose,
			High:      math.Max(prevClose, price) + 1.0,
			Low:       math.Min(prevClose, price) - 1.0,
			Close:     price,
			Volume:    1000.0,
		}
		prevClose = price
	}

	return data
}

func generateTestSeries(t testing.TB, count int) *series.PriceSeries {
	t.Helper()
	ps, err := series.New("TEST", generateTestData(count))
	require.NoError(t, err)
	return ps
}

func generateFlatSeries(t testing.TB, count int, price float64) *series.PriceSeries {
	t.Helper()
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = price
	}
	return seriesFromCloses(t, closes...)
}

// generateTrendSeries creates closes start, start+step, ... ; step may be negative
func generateTrendSeries(t testing.TB, count int, start, step float64) *series.PriceSeries {
	t.Helper()
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return seriesFromCloses(t, closes...)
}

// publicationDelta covers one rounding step plus float noise
const publicationDelta = 0.0051
