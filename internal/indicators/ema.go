package indicators

import (
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

const (
	DefaultEMALength = 12

	// DefaultEMAWarmup is the number of smoothed values computed and thrown away
	// before output starts, so the simple-average seed no longer biases it.
	DefaultEMAWarmup = 100
)

// EMA represents the Exponential Moving Average technical indicator
type EMA struct {
	length int
	warmup int
	alpha  float64
}

// NewEMA creates a new EMA indicator with the default warm-up buffer
func NewEMA(length int) *EMA {
	return NewEMAWithWarmup(length, DefaultEMAWarmup)
}

// NewEMAWithWarmup creates a new EMA indicator with a custom warm-up buffer
func NewEMAWithWarmup(length, warmup int) *EMA {
	return &EMA{
		length: length,
		warmup: warmup,
		alpha:  2.0 / float64(length+1),
	}
}

// Calculate returns the last period smoothed closes
func (e *EMA) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	values, err := e.calculate(ps, period)
	if err != nil {
		return nil, err
	}
	return series.RoundAll(values), nil
}

func (e *EMA) calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	if e.warmup < 0 {
		return nil, errInvalidWarmup(e.GetName(), e.warmup)
	}
	closes, err := closesFor(ps, e, period, map[string]int{"length": e.length})
	if err != nil {
		return nil, err
	}

	smoothed := emaFold(seedMean(closes[:e.length]), e.alpha, closes[e.length:])
	return smoothed[e.warmup:], nil
}

// emaFold carries ema = v*alpha + ema*(1-alpha) over values and emits the
// carry after every step. The carry is never rounded.
func emaFold(seed, alpha float64, values []float64) []float64 {
	out := make([]float64, len(values))
	ema := seed
	for i, v := range values {
		ema = v*alpha + ema*(1-alpha)
		out[i] = ema
	}
	return out
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns seed, warm-up and output bars together
func (e *EMA) GetRequiredPeriods(period int) int {
	return period + e.length + e.warmup
}

// Length returns the smoothing window
func (e *EMA) Length() int {
	return e.length
}

// Warmup returns the number of discarded convergence values
func (e *EMA) Warmup() int {
	return e.warmup
}
