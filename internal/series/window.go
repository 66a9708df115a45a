package series

import (
	"fmt"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const windowComponent = "SeriesWindow"

// Require checks that a request by component for n trailing bars can be served.
// Over-long requests fail instead of being clamped to the series length.
func (s *PriceSeries) Require(component string, n int) error {
	if n < 1 {
		return errors.NewInvalidParameter(component, "window", n)
	}
	if n > len(s.bars) {
		return errors.NewInsufficientHistory(component, n, len(s.bars)).
			WithContext("symbol", s.symbol)
	}
	return nil
}

// Bars returns a copy of the last n bars, oldest first
func (s *PriceSeries) Bars(n int) ([]types.OHLCV, error) {
	if err := s.Require(windowComponent, n); err != nil {
		return nil, err
	}
	out := make([]types.OHLCV, n)
	copy(out, s.bars[len(s.bars)-n:])
	return out, nil
}

// Closes returns the last n closing prices at full precision, oldest first
func (s *PriceSeries) Closes(n int) ([]float64, error) {
	if err := s.Require(windowComponent, n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, bar := range s.bars[len(s.bars)-n:] {
		out[i] = bar.Close
	}
	return out, nil
}

// PriceHistory returns the last period closes rounded for publication
func (s *PriceSeries) PriceHistory(period int) ([]float64, error) {
	closes, err := s.Closes(period)
	if err != nil {
		return nil, err
	}
	return RoundAll(closes), nil
}

// PriceChanges returns the percentage change between consecutive closes over
// the last period+1 closes, one value per period.
func (s *PriceSeries) PriceChanges(period int) ([]float64, error) {
	if period < 1 {
		return nil, errors.NewInvalidParameter(windowComponent, "period", period)
	}
	closes, err := s.Closes(period + 1)
	if err != nil {
		return nil, err
	}
	changes, err := PercentChanges(closes)
	if err != nil {
		return nil, err
	}
	return RoundAll(changes), nil
}

// PercentChanges computes (next/prev - 1) * 100 for every consecutive pair.
// A zero previous close has no defined change and fails.
func PercentChanges(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return []float64{}, nil
	}
	changes := make([]float64, len(closes)-1)
	for i := 0; i+1 < len(closes); i++ {
		if closes[i] == 0 {
			return nil, errors.NewDivisionByZero(windowComponent, "changes",
				fmt.Sprintf("close at offset %d is zero", i))
		}
		changes[i] = (closes[i+1]/closes[i] - 1) * 100
	}
	return changes, nil
}
