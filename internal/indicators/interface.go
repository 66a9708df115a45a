package indicators

import (
	"fmt"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

// SeriesIndicator derives one published line from a price series.
// Calculate never mutates the series and returns exactly period values.
type SeriesIndicator interface {
	Calculate(s *series.PriceSeries, period int) ([]float64, error)
	GetName() string
	GetRequiredPeriods(period int) int
}

// validateLengths rejects a non-positive period or window length
func validateLengths(name string, period int, lengths map[string]int) error {
	if period < 1 {
		return errors.NewInvalidParameter(name, "period", period)
	}
	for field, value := range lengths {
		if value < 1 {
			return errors.NewInvalidParameter(name, field, value)
		}
	}
	return nil
}

func errInvalidWarmup(name string, warmup int) error {
	return errors.NewIndicatorError(errors.KindInvalidParameter, name, "validate",
		fmt.Sprintf("warmup must be >= 0, got %d", warmup))
}

// closesFor validates parameters and draws the trailing closes an indicator needs
func closesFor(s *series.PriceSeries, ind SeriesIndicator, period int, lengths map[string]int) ([]float64, error) {
	if err := validateLengths(ind.GetName(), period, lengths); err != nil {
		return nil, err
	}
	need := ind.GetRequiredPeriods(period)
	if err := s.Require(ind.GetName(), need); err != nil {
		return nil, err
	}
	return s.Closes(need)
}

// seedMean is the simple average that starts every recursive smoother
func seedMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// trailingMeans averages every n-wide sub-window of values, oldest first
func trailingMeans(values []float64, n int) []float64 {
	if len(values) < n {
		return []float64{}
	}
	out := make([]float64, len(values)-n+1)
	for i := range out {
		out[i] = seedMean(values[i : i+n])
	}
	return out
}
