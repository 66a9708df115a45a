package indicators

import (
	"math"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/series"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// Direction is the colour of a Heiken-Ashi candle
type Direction int

const (
	DirectionDown Direction = 0
	DirectionUp   Direction = 1

	// neutralTailRatio is published for a candle with no wicks at all
	neutralTailRatio = 0.5
)

func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// HeikenAshiCandle is one synthetic candle
type HeikenAshiCandle struct {
	Timestamp time.Time
	Direction Direction
	Open      float64
	High      float64
	Low       float64
	Close     float64
}

// HeikenAshi represents the Heiken-Ashi candle transform and its tail ratio
type HeikenAshi struct{}

// NewHeikenAshi creates a new Heiken-Ashi transform
func NewHeikenAshi() *HeikenAshi {
	return &HeikenAshi{}
}

// Calculate returns the tail ratio of the last period candles
func (h *HeikenAshi) Calculate(ps *series.PriceSeries, period int) ([]float64, error) {
	return h.Tails(ps, period)
}

// Candles returns the last period synthetic candles. One extra raw bar before
// the window seeds the recursion and is not published.
func (h *HeikenAshi) Candles(ps *series.PriceSeries, period int) ([]HeikenAshiCandle, error) {
	candles, err := h.calculate(ps, period)
	if err != nil {
		return nil, err
	}
	for i := range candles {
		c := &candles[i]
		c.Open = series.Round(c.Open)
		c.High = series.Round(c.High)
		c.Low = series.Round(c.Low)
		c.Close = series.Round(c.Close)
	}
	return candles, nil
}

// Tails returns topTail / (topTail + bottomTail) for each of the last period
// candles, where the wicks are measured from the candle body. A candle without
// wicks yields 0.5.
func (h *HeikenAshi) Tails(ps *series.PriceSeries, period int) ([]float64, error) {
	candles, err := h.calculate(ps, period)
	if err != nil {
		return nil, err
	}
	tails := make([]float64, len(candles))
	for i, c := range candles {
		tails[i] = tailRatio(c)
	}
	return series.RoundAll(tails), nil
}

func (h *HeikenAshi) calculate(ps *series.PriceSeries, period int) ([]HeikenAshiCandle, error) {
	if err := validateLengths(h.GetName(), period, nil); err != nil {
		return nil, err
	}
	need := h.GetRequiredPeriods(period)
	if err := ps.Require(h.GetName(), need); err != nil {
		return nil, err
	}
	bars, err := ps.Bars(need)
	if err != nil {
		return nil, err
	}

	prevOpen, prevClose := bars[0].Open, bars[0].Close
	candles := make([]HeikenAshiCandle, 0, period)
	for _, bar := range bars[1:] {
		c := nextCandle(prevOpen, prevClose, bar)
		candles = append(candles, c)
		prevOpen, prevClose = c.Open, c.Close
	}
	return candles, nil
}

func nextCandle(prevOpen, prevClose float64, bar types.OHLCV) HeikenAshiCandle {
	c := HeikenAshiCandle{
		Timestamp: bar.Timestamp,
		Open:      (prevOpen + prevClose) / 2,
		Close:     (bar.Open + bar.High + bar.Low + bar.Close) / 4,
	}
	c.High = math.Max(bar.High, math.Max(c.Open, c.Close))
	c.Low = math.Min(bar.Low, math.Min(c.Open, c.Close))
	if c.Open < c.Close {
		c.Direction = DirectionUp
	}
	return c
}

func tailRatio(c HeikenAshiCandle) float64 {
	var top, bottom float64
	if c.Direction == DirectionUp {
		top, bottom = c.High-c.Close, c.Open-c.Low
	} else {
		top, bottom = c.High-c.Open, c.Close-c.Low
	}
	if top+bottom == 0 {
		return neutralTailRatio
	}
	return top / (top + bottom)
}

// GetName returns the indicator name
func (h *HeikenAshi) GetName() string {
	return "HA"
}

// GetRequiredPeriods returns period bars plus the seed bar
func (h *HeikenAshi) GetRequiredPeriods(period int) int {
	return period + 1
}
