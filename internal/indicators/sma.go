package indicators

import (
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

// DefaultSMALength is the window used when a caller has no preference
const DefaultSMALength = 10

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	length int
}

// NewSMA creates a new SMA indicator
func NewSMA(length int) *SMA {
	return &SMA{length: length}
}

// Calculate returns one average per day of the last period days. Each value is
// the mean of the length closes ending exactly at that day.
func (s *SMA) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	values, err := s.calculate(ps, period)
	if err != nil {
		return nil, err
	}
	return series.RoundAll(values), nil
}

func (s *SMA) calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	closes, err := closesFor(ps, s, period, map[string]int{"length": s.length})
	if err != nil {
		return nil, err
	}

	// period+1 averages come out of period+length closes; the oldest one
	// ends before the requested window.
	return trailingMeans(closes, s.length)[1:], nil
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the number of bars needed for period outputs
func (s *SMA) GetRequiredPeriods(period int) int {
	return period + s.length
}

// Length returns the averaging window
func (s *SMA) Length() int {
	return s.length
}
