package data

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/internal/exchange/bybit"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const bybitComponent = "BybitProvider"

// KlineClient is the part of the exchange client the provider needs
type KlineClient interface {
	GetKlines(ctx context.Context, params bybit.KlineParams) ([]bybit.Kline, error)
}

// BybitProvider fetches daily klines from the Bybit market data API
type BybitProvider struct {
	client   KlineClient
	category string
	filter   *DefaultDataFilter
	pageSize int
	maxPages int
}

// NewBybitProvider creates a provider for the given market category ("spot", "linear", "inverse")
func NewBybitProvider(client KlineClient, category string) *BybitProvider {
	if category == "" {
		category = "spot"
	}
	return &BybitProvider{
		client:   client,
		category: category,
		filter:   NewDefaultDataFilter(),
		pageSize: bybit.MaxKlineLimit,
		maxPages: 50,
	}
}

// GetName returns the name of the data provider
func (p *BybitProvider) GetName() string {
	return "bybit"
}

// FetchSeries pages backwards from end until start is covered. Failures are
// not retried and surface as DataUnavailable.
func (p *BybitProvider) FetchSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	symbol = strings.ToUpper(symbol)
	if end.IsZero() {
		end = time.Now()
	}

	var bars []types.OHLCV
	cursor := end
	for page := 0; page < p.maxPages; page++ {
		from, to := start, cursor
		klines, err := p.client.GetKlines(ctx, bybit.KlineParams{
			Category: p.category,
			Symbol:   symbol,
			Interval: bybit.Interval1d,
			Start:    &from,
			End:      &to,
			Limit:    p.pageSize,
		})
		if err != nil {
			return nil, errors.NewDataUnavailable(bybitComponent, symbol,
				fmt.Errorf("%s: %w", describeKlineError(err), err))
		}
		if len(klines) == 0 {
			break
		}

		oldest := klines[0].StartTime
		for _, k := range klines {
			bars = append(bars, klineToBar(k))
			if k.StartTime.Before(oldest) {
				oldest = k.StartTime
			}
		}

		if len(klines) < p.pageSize || !oldest.After(start) {
			break
		}
		next := oldest.Add(-time.Millisecond)
		if !next.Before(cursor) {
			break
		}
		cursor = next
	}

	if len(bars) == 0 {
		return nil, errors.NewDataUnavailable(bybitComponent, symbol,
			fmt.Errorf("no daily klines between %s and %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	bars, err := p.filter.Normalize(bars, start, end)
	if err != nil {
		return nil, errors.NewDataUnavailable(bybitComponent, symbol, err)
	}

	log.Printf("✅ Fetched %d daily bars for %s from Bybit %s", len(bars), symbol, p.category)
	return bars, nil
}

// describeKlineError names the failures a caller can act on
func describeKlineError(err error) string {
	switch {
	case bybit.IsSymbolNotFound(err):
		return "unknown symbol"
	case bybit.IsRateLimitError(err):
		return "rate limited, retry later"
	default:
		return "kline request failed"
	}
}

func klineToBar(k bybit.Kline) types.OHLCV {
	return types.OHLCV{
		Timestamp: k.StartTime,
		Open:      k.OpenPrice,
		High:      k.HighPrice,
		Low:       k.LowPrice,
		Close:     k.ClosePrice,
		Volume:    k.Volume,
	}
}
