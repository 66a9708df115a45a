// Package instrument exposes the indicator operations of one symbol over a
// daily price series fetched once at construction.
package instrument

import (
	"context"
	"fmt"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/internal/indicators"
	"github.com/ducminhle1904/stock-indicators/internal/monitoring"
	"github.com/ducminhle1904/stock-indicators/internal/series"
	"github.com/ducminhle1904/stock-indicators/pkg/data"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const component = "Instrument"

// DefaultStartDate is the first day fetched when New is given a zero start
var DefaultStartDate = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

// Options tunes the warm-up buffers of the recursive indicators and picks
// the indicators Summary evaluates. Empty Indicators means every type with
// its default parameters.
type Options struct {
	EMAWarmup  int
	RSIWarmup  int
	MACDWarmup int
	Indicators []indicators.IndicatorConfig
}

// DefaultOptions returns the package default warm-up buffers
func DefaultOptions() Options {
	return Options{
		EMAWarmup:  indicators.DefaultEMAWarmup,
		RSIWarmup:  indicators.DefaultRSIWarmup,
		MACDWarmup: indicators.DefaultMACDWarmup,
	}
}

// Instrument is a read-only handle on one symbol's daily history.
// It is safe for concurrent use; every call reads the same snapshot.
type Instrument struct {
	series  *series.PriceSeries
	opts    Options
	summary *indicators.IndicatorManager
}

// New fetches the daily history of symbol between start and end and builds
// the instrument. A zero start means DefaultStartDate, a zero end means today.
// Fetch failures are returned as DataUnavailable and never retried.
func New(ctx context.Context, fetcher data.SeriesFetcher, symbol string, start, end time.Time, opts Options) (*Instrument, error) {
	if start.IsZero() {
		start = DefaultStartDate
	}
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}

	bars, err := fetcher.FetchSeries(ctx, symbol, start, end)
	if err == nil && len(bars) == 0 {
		err = fmt.Errorf("no bars between %s and %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if err != nil {
		monitoring.RecordFetchError(fetcher.GetName())
		if errors.IsDataUnavailable(err) {
			return nil, err
		}
		return nil, errors.NewDataUnavailable(component, symbol, err)
	}

	ps, err := series.New(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("failed to build series for %s: %w", symbol, err)
	}
	return NewFromSeries(ps, opts)
}

// NewFromSeries wraps an already built series. It fails only when
// opts.Indicators names an unknown type or a malformed parameter.
func NewFromSeries(ps *series.PriceSeries, opts Options) (*Instrument, error) {
	factory := indicators.NewIndicatorFactoryWithWarmup(opts.EMAWarmup, opts.RSIWarmup, opts.MACDWarmup)
	configs := opts.Indicators
	if len(configs) == 0 {
		configs = factory.DefaultConfigs()
	}
	summary, err := factory.NewIndicatorManagerFromConfig(configs)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindInvalidParameter, component, "summary")
	}

	monitoring.UpdateSeriesBars(ps.Symbol(), ps.Len())
	return &Instrument{series: ps, opts: opts, summary: summary}, nil
}

func (i *Instrument) String() string {
	return fmt.Sprintf("Instrument(%s)", i.series.Symbol())
}

func (i *Instrument) Symbol() string {
	return i.series.Symbol()
}

// Series returns the underlying immutable snapshot
func (i *Instrument) Series() *series.PriceSeries {
	return i.series
}

// Info returns the last period raw bars
func (i *Instrument) Info(period int) ([]types.OHLCV, error) {
	return observe("INFO", func() ([]types.OHLCV, error) {
		return i.series.Bars(period)
	})
}

// PriceHistory returns the last period closes
func (i *Instrument) PriceHistory(period int) ([]float64, error) {
	return observe("PRICE_HISTORY", func() ([]float64, error) {
		return i.series.PriceHistory(period)
	})
}

// PriceChanges returns the last period day-over-day percentage changes
func (i *Instrument) PriceChanges(period int) ([]float64, error) {
	return observe("PRICE_CHANGES", func() ([]float64, error) {
		return i.series.PriceChanges(period)
	})
}

func (i *Instrument) SMA(period, length int) ([]float64, error) {
	return calculate(indicators.NewSMA(length), i.series, period)
}

func (i *Instrument) EMA(period, length int) ([]float64, error) {
	return calculate(indicators.NewEMAWithWarmup(length, i.opts.EMAWarmup), i.series, period)
}

func (i *Instrument) RSI(period, length int) ([]float64, error) {
	return calculate(indicators.NewRSIWithWarmup(length, i.opts.RSIWarmup), i.series, period)
}

// Stochastic returns the %K line and its slowLength-bar average
func (i *Instrument) Stochastic(period, fastLength, slowLength int) (indicators.StochasticLines, error) {
	stoch := indicators.NewStochastic(fastLength, slowLength)
	return observe(stoch.GetName(), func() (indicators.StochasticLines, error) {
		return stoch.Lines(i.series, period)
	})
}

func (i *Instrument) MACD(period, fastLength, slowLength, signalLength int) (indicators.MACDLines, error) {
	macd := i.newMACD(fastLength, slowLength, signalLength)
	return observe(macd.GetName(), func() (indicators.MACDLines, error) {
		return macd.Lines(i.series, period)
	})
}

func (i *Instrument) BollingerBands(period, length int) (indicators.BollingerLines, error) {
	bb := indicators.NewBollingerBands(length, indicators.DefaultBollingerWidth)
	return observe(bb.GetName(), func() (indicators.BollingerLines, error) {
		return bb.Bands(i.series, period)
	})
}

// BollingerBandsDifference returns how far each close sits outside the bands, in percent
func (i *Instrument) BollingerBandsDifference(period, length int) ([]float64, error) {
	bb := indicators.NewBollingerBands(length, indicators.DefaultBollingerWidth)
	return observe(bb.GetName()+"_DIFF", func() ([]float64, error) {
		return bb.Difference(i.series, period)
	})
}

func (i *Instrument) HeikenAshi(period int) ([]indicators.HeikenAshiCandle, error) {
	ha := indicators.NewHeikenAshi()
	return observe(ha.GetName(), func() ([]indicators.HeikenAshiCandle, error) {
		return ha.Candles(i.series, period)
	})
}

func (i *Instrument) HeikenAshiTails(period int) ([]float64, error) {
	return calculate(indicators.NewHeikenAshi(), i.series, period)
}

// Summary evaluates the configured indicators over period values. Repeated
// calls for one period are served from the instrument's cache.
func (i *Instrument) Summary(period int) map[string]*indicators.IndicatorResult {
	start := time.Now()
	results := i.summary.Evaluate(i.series, period)
	if len(results) == 0 {
		return results
	}
	elapsed := time.Since(start) / time.Duration(len(results))
	for name, result := range results {
		monitoring.RecordComputation(name, result.Error, elapsed)
	}
	return results
}

// RequiredBars is the longest history any Summary indicator needs for period values
func (i *Instrument) RequiredBars(period int) int {
	return i.summary.MaxRequiredPeriods(period)
}

func (i *Instrument) newMACD(fastLength, slowLength, signalLength int) *indicators.MACD {
	return indicators.NewMACDWithWarmup(fastLength, slowLength, signalLength, i.opts.MACDWarmup, i.opts.EMAWarmup)
}

func calculate(ind indicators.SeriesIndicator, ps *series.PriceSeries, period int) ([]float64, error) {
	return observe(ind.GetName(), func() ([]float64, error) {
		return ind.Calculate(ps, period)
	})
}

// observe times fn and records its outcome under name
func observe[T any](name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	monitoring.RecordComputation(name, err, time.Since(start))
	return v, err
}
