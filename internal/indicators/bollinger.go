package indicators

import (
	"fmt"
	"math"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

const (
	DefaultBollingerLength = 20
	DefaultBollingerWidth  = 2.0
)

// BollingerBands represents the Bollinger Bands indicator
type BollingerBands struct {
	length         int
	stdDevMultiple float64
}

// BollingerLines holds the last period values of the three bands, index aligned
type BollingerLines struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// NewBollingerBands creates a new BollingerBands instance with the given window and standard deviation multiplier
func NewBollingerBands(length int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		length:         length,
		stdDevMultiple: stdDev,
	}
}

// Calculate returns the band difference, see Difference
func (bb *BollingerBands) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	return bb.Difference(ps, period)
}

// Bands computes the upper, middle and lower bands. The middle band is the
// SMA of the same window and the half-width is a multiple of the population
// standard deviation of the closes inside that window.
func (bb *BollingerBands) Bands(ps *series.PriceSeries, period int) (BollingerLines, error) {
	upper, middle, lower, _, err := bb.calculate(ps, period)
	if err != nil {
		return BollingerLines{}, err
	}
	return BollingerLines{
		Upper:  series.RoundAll(upper),
		Middle: series.RoundAll(middle),
		Lower:  series.RoundAll(lower),
	}, nil
}

// Difference measures how far each close sits outside the bands, as a percent
// of the close. Closes on or inside the bands yield exactly 0.
func (bb *BollingerBands) Difference(ps *series.PriceSeries, period int) ([]float64, error) {
	upper, _, lower, closes, err := bb.calculate(ps, period)
	if err != nil {
		return nil, err
	}

	diff := make([]float64, period)
	for i, c := range closes {
		var edge float64
		switch {
		case c > upper[i]:
			edge = upper[i]
		case c < lower[i]:
			edge = lower[i]
		default:
			continue
		}
		if c == 0 {
			return nil, errors.NewDivisionByZero(bb.GetName(), "difference",
				fmt.Sprintf("zero close outside the bands at offset %d", i))
		}
		diff[i] = (c - edge) / c * 100
	}
	return series.RoundAll(diff), nil
}

// calculate returns raw bands together with the closes they are aligned to
func (bb *BollingerBands) calculate(ps *series.PriceSeries, period int) (upper, middle, lower, closes []float64, err error) {
	if bb.stdDevMultiple < 0 || math.IsNaN(bb.stdDevMultiple) {
		return nil, nil, nil, nil, errors.NewIndicatorError(errors.KindInvalidParameter, bb.GetName(), "validate",
			fmt.Sprintf("standard deviation multiple must be >= 0, got %v", bb.stdDevMultiple))
	}
	all, err := closesFor(ps, bb, period, map[string]int{"length": bb.length})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	// Same alignment as the SMA: the oldest of period+1 windows is dropped.
	middle = trailingMeans(all, bb.length)[1:]
	upper = make([]float64, period)
	lower = make([]float64, period)
	for i := range middle {
		std := populationStdDev(all[i+1:i+1+bb.length], middle[i])
		upper[i] = middle[i] + bb.stdDevMultiple*std
		lower[i] = middle[i] - bb.stdDevMultiple*std
	}
	return upper, middle, lower, all[bb.length:], nil
}

// populationStdDev divides by n, not n-1
func populationStdDev(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// GetName returns the indicator name
func (bb *BollingerBands) GetName() string {
	return "BB"
}

// GetRequiredPeriods returns the same window as an SMA of equal length
func (bb *BollingerBands) GetRequiredPeriods(period int) int {
	return period + bb.length
}

// Length returns the band window
func (bb *BollingerBands) Length() int {
	return bb.length
}
