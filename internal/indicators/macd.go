package indicators

import (
	"github.com/ducminhle1904/stock-indicators/internal/series"
)

const (
	DefaultMACDFastLength   = 12
	DefaultMACDSlowLength   = 26
	DefaultMACDSignalLength = 9

	// DefaultMACDWarmup is the number of signal-line values discarded before output
	DefaultMACDWarmup = 100
)

// MACD represents the moving average convergence/divergence indicator
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal int
	warmup int
}

// MACDLines holds the last period values of all three MACD lines, index aligned
type MACDLines struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// NewMACD creates a new MACD indicator
func NewMACD(fastLength, slowLength, signalLength int) *MACD {
	return NewMACDWithWarmup(fastLength, slowLength, signalLength, DefaultMACDWarmup, DefaultEMAWarmup)
}

// NewMACDWithWarmup creates a new MACD indicator with custom warm-up buffers for
// the signal line and for both underlying EMAs.
func NewMACDWithWarmup(fastLength, slowLength, signalLength, warmup, emaWarmup int) *MACD {
	return &MACD{
		fast:   NewEMAWithWarmup(fastLength, emaWarmup),
		slow:   NewEMAWithWarmup(slowLength, emaWarmup),
		signal: signalLength,
		warmup: warmup,
	}
}

// Calculate returns the histogram (MACD minus signal), the divergence line
func (m *MACD) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	lines, err := m.Lines(ps, period)
	if err != nil {
		return nil, err
	}
	return lines.Histogram, nil
}

// Lines returns the MACD, signal and histogram lines
func (m *MACD) Lines(ps *series.PriceSeries, period int) (MACDLines, error) {
	macd, signal, err := m.calculate(ps, period)
	if err != nil {
		return MACDLines{}, err
	}
	histogram := make([]float64, period)
	for i := range histogram {
		histogram[i] = macd[i] - signal[i]
	}
	return MACDLines{
		MACD:      series.RoundAll(macd),
		Signal:    series.RoundAll(signal),
		Histogram: series.RoundAll(histogram),
	}, nil
}

func (m *MACD) calculate(ps *series.PriceSeries, period int) (macd, signal []float64, err error) {
	lengths := map[string]int{
		"fastLength":   m.fast.length,
		"slowLength":   m.slow.length,
		"signalLength": m.signal,
	}
	if err := validateLengths(m.GetName(), period, lengths); err != nil {
		return nil, nil, err
	}
	if m.warmup < 0 {
		return nil, nil, errInvalidWarmup(m.GetName(), m.warmup)
	}
	if err := ps.Require(m.GetName(), m.GetRequiredPeriods(period)); err != nil {
		return nil, nil, err
	}

	// Both EMAs cover the same trailing window and end on the same bar.
	window := m.window(period)
	fast, err := m.fast.calculate(ps, window)
	if err != nil {
		return nil, nil, err
	}
	slow, err := m.slow.calculate(ps, window)
	if err != nil {
		return nil, nil, err
	}

	line := make([]float64, window)
	for i := range line {
		line[i] = fast[i] - slow[i]
	}

	alpha := 2.0 / float64(1+m.signal)
	signalLine := emaFold(seedMean(line[:m.signal]), alpha, line[m.signal:])

	return line[len(line)-period:], signalLine[len(signalLine)-period:], nil
}

// window is the number of MACD values computed: the signal seed, the
// discarded warm-up and the published values.
func (m *MACD) window(period int) int {
	return period + m.signal + m.warmup
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns the bars needed by the longer of the two EMAs
func (m *MACD) GetRequiredPeriods(period int) int {
	window := m.window(period)
	return max(m.fast.GetRequiredPeriods(window), m.slow.GetRequiredPeriods(window))
}
