package indicators

import (
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

const (
	DefaultRSILength = 14

	// DefaultRSIWarmup is the number of Wilder updates discarded before output
	DefaultRSIWarmup = 51
)

// RSI calculates the Relative Strength Index using Wilder's smoothing method
// over daily percentage changes.
type RSI struct {
	length int
	warmup int
}

// NewRSI creates a new RSI instance with the given length (typically 14)
func NewRSI(length int) *RSI {
	return NewRSIWithWarmup(length, DefaultRSIWarmup)
}

// NewRSIWithWarmup creates a new RSI instance with a custom warm-up buffer
func NewRSIWithWarmup(length, warmup int) *RSI {
	return &RSI{length: length, warmup: warmup}
}

// Calculate returns the last period RSI values, each in [0, 100]
func (r *RSI) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	values, err := r.calculate(ps, period)
	if err != nil {
		return nil, err
	}
	return series.RoundAll(values), nil
}

func (r *RSI) calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	if r.warmup < 0 {
		return nil, errInvalidWarmup(r.GetName(), r.warmup)
	}
	closes, err := closesFor(ps, r, period, map[string]int{"length": r.length})
	if err != nil {
		return nil, err
	}
	changes, err := series.PercentChanges(closes)
	if err != nil {
		return nil, err
	}

	avgGain, avgLoss := wilderSeed(changes[:r.length])
	values := wilderFold(avgGain, avgLoss, r.length, changes[r.length:])
	return values[r.warmup:], nil
}

// splitChange maps a change onto its gain and loss sides; a zero change is a zero gain
func splitChange(change float64) (gain, loss float64) {
	if change >= 0 {
		return change, 0
	}
	return 0, -change
}

// wilderSeed averages the gains and losses of the seed changes
func wilderSeed(changes []float64) (avgGain, avgLoss float64) {
	for _, c := range changes {
		gain, loss := splitChange(c)
		avgGain += gain
		avgLoss += loss
	}
	n := float64(len(changes))
	return avgGain / n, avgLoss / n
}

// wilderFold applies avg = (avg*(n-1) + x)/n to both sides for every change
// and emits the RSI after each step.
func wilderFold(avgGain, avgLoss float64, length int, changes []float64) []float64 {
	n := float64(length)
	out := make([]float64, len(changes))
	for i, c := range changes {
		gain, loss := splitChange(c)
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

// rsiValue resolves the two zero-denominator cases explicitly:
// no losses is 100 (a flat series included), no gains is 0.
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	if avgGain == 0 {
		return 0
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns the closes needed: one more than the changes consumed
func (r *RSI) GetRequiredPeriods(period int) int {
	return period + r.length + r.warmup + 1
}

// Length returns the Wilder smoothing window
func (r *RSI) Length() int {
	return r.length
}
