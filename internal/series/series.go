// Package series holds the immutable daily price history of one instrument
// and the windowing helpers every indicator reads through.
package series

import (
	"fmt"
	"math"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const component = "PriceSeries"

// PriceSeries is a chronologically ordered, read-only sequence of bars.
// It is safe to share between goroutines once built.
type PriceSeries struct {
	symbol string
	bars   []types.OHLCV
}

// New validates bars and takes a private copy of them.
// Timestamps must be strictly increasing and every numeric field finite and
// non-negative. OHLC ordering (high >= low and so on) is not enforced.
func New(symbol string, bars []types.OHLCV) (*PriceSeries, error) {
	if len(bars) == 0 {
		return nil, errors.NewInvalidSeries(component, "series is empty").WithContext("symbol", symbol)
	}

	for i, bar := range bars {
		if err := validateBar(bar); err != nil {
			return nil, errors.NewInvalidSeries(component, fmt.Sprintf("bar %d: %v", i, err)).
				WithContext("symbol", symbol)
		}
		if i > 0 && !bar.Timestamp.After(bars[i-1].Timestamp) {
			return nil, errors.NewInvalidSeries(component,
				fmt.Sprintf("bar %d: timestamp %s is not after %s", i,
					bar.Timestamp.Format("2006-01-02"), bars[i-1].Timestamp.Format("2006-01-02"))).
				WithContext("symbol", symbol)
		}
	}

	owned := make([]types.OHLCV, len(bars))
	copy(owned, bars)

	return &PriceSeries{symbol: symbol, bars: owned}, nil
}

func validateBar(bar types.OHLCV) error {
	fields := [...]struct {
		name  string
		value float64
	}{
		{"open", bar.Open},
		{"high", bar.High},
		{"low", bar.Low},
		{"close", bar.Close},
		{"volume", bar.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s is not finite", f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%s is negative (%.4f)", f.name, f.value)
		}
	}
	return nil
}

// Symbol returns the instrument symbol the series belongs to
func (s *PriceSeries) Symbol() string {
	return s.symbol
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.bars)
}

// At returns the i-th bar, oldest first
func (s *PriceSeries) At(i int) types.OHLCV {
	return s.bars[i]
}

// Last returns the most recent bar
func (s *PriceSeries) Last() types.OHLCV {
	return s.bars[len(s.bars)-1]
}
