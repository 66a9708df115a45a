package indicators

import (
	"github.com/ducminhle1904/stock-indicators/internal/series"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const (
	DefaultStochasticFastLength = 14
	DefaultStochasticSlowLength = 3

	// stochasticNeutral is %K when the high/low range of the window is zero
	stochasticNeutral = 50.0
)

// Stochastic represents the fast %K / slow %K stochastic oscillator
type Stochastic struct {
	fastLength int
	slowLength int
}

// StochasticLines holds index-aligned fast and slow lines of equal length
type StochasticLines struct {
	FastK []float64
	SlowK []float64
}

// NewStochastic creates a new stochastic oscillator
func NewStochastic(fastLength, slowLength int) *Stochastic {
	return &Stochastic{
		fastLength: fastLength,
		slowLength: slowLength,
	}
}

// Calculate returns the fast %K line
func (s *Stochastic) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	lines, err := s.Lines(ps, period)
	if err != nil {
		return nil, err
	}
	return lines.FastK, nil
}

// Lines returns both lines trimmed to period values. SlowK[i] averages the
// slowLength fast values ending at FastK[i].
func (s *Stochastic) Lines(ps *series.PriceSeries, period int) (StochasticLines, error) {
	fastK, slowK, err := s.calculate(ps, period)
	if err != nil {
		return StochasticLines{}, err
	}
	return StochasticLines{
		FastK: series.RoundAll(fastK),
		SlowK: series.RoundAll(slowK),
	}, nil
}

func (s *Stochastic) calculate(ps *series.PriceSeries, period int) (fastK, slowK []float64, err error) {
	lengths := map[string]int{"fastLength": s.fastLength, "slowLength": s.slowLength}
	if err := validateLengths(s.GetName(), period, lengths); err != nil {
		return nil, nil, err
	}
	need := s.GetRequiredPeriods(period)
	if err := ps.Require(s.GetName(), need); err != nil {
		return nil, nil, err
	}
	bars, err := ps.Bars(need)
	if err != nil {
		return nil, nil, err
	}

	// slowLength-1 extra fast values feed the first slow average
	all := make([]float64, period+s.slowLength-1)
	for j := range all {
		end := j + s.fastLength
		all[j] = percentK(bars[end-1].Close, bars[end-s.fastLength:end])
	}

	return all[s.slowLength-1:], trailingMeans(all, s.slowLength), nil
}

// percentK places close inside the high/low range of window, which ends at
// and includes the bar being measured.
func percentK(price float64, window []types.OHLCV) float64 {
	lowest, highest := window[0].Low, window[0].High
	for _, bar := range window[1:] {
		if bar.Low < lowest {
			lowest = bar.Low
		}
		if bar.High > highest {
			highest = bar.High
		}
	}
	if highest == lowest {
		return stochasticNeutral
	}
	return (price - lowest) / (highest - lowest) * 100
}

// GetName returns the indicator name
func (s *Stochastic) GetName() string {
	return "STOCH"
}

// GetRequiredPeriods returns the bars needed for period values of both lines
func (s *Stochastic) GetRequiredPeriods(period int) int {
	return period + s.fastLength + s.slowLength - 2
}
