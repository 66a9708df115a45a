package data

import (
	"fmt"
	"log"
	"strings"

	"github.com/ducminhle1904/stock-indicators/internal/exchange/bybit"
)

// Source names a kind of price history backend
type Source string

const (
	SourceBybit Source = "bybit"
	SourceCSV   Source = "csv"
	SourceYahoo Source = "yahoo" // Yahoo-style CSV export with an Adj Close column
	SourceExcel Source = "xlsx"
)

// FetcherOptions selects and configures a SeriesFetcher
type FetcherOptions struct {
	Source        Source
	DataFile      string // explicit file; takes precedence over DataRoot
	DataRoot      string // directory searched for {SYMBOL}.csv / .xlsx
	BybitTestnet  bool
	BybitCategory string
	BybitBaseURL  string
}

// ParseSource parses a source name, accepting a few common aliases
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bybit":
		return SourceBybit, nil
	case "csv":
		return SourceCSV, nil
	case "yahoo":
		return SourceYahoo, nil
	case "xlsx", "excel":
		return SourceExcel, nil
	default:
		return "", fmt.Errorf("unknown data source: %s", s)
	}
}

// NewFetcher builds the fetcher for opts, wrapped in an in-memory cache
func NewFetcher(opts FetcherOptions) (*CachedProvider, error) {
	var fetcher SeriesFetcher

	switch opts.Source {
	case SourceBybit:
		client := bybit.NewClient(bybit.Config{
			Testnet: opts.BybitTestnet,
			BaseURL: opts.BybitBaseURL,
		})
		fetcher = NewBybitProvider(client, opts.BybitCategory)
		log.Printf("🔌 Bybit %s market data", client.GetEnvironment())

	case SourceCSV:
		fetcher = newFileFetcher(NewCSVProvider(), opts, ".csv")

	case SourceYahoo:
		fetcher = newFileFetcher(NewCSVProviderWithFormat(YahooCSVFormat), opts, ".csv")

	case SourceExcel:
		fetcher = newFileFetcher(NewExcelProvider(), opts, ".xlsx")

	default:
		return nil, fmt.Errorf("unknown data source: %s", opts.Source)
	}

	return NewCachedProvider(fetcher), nil
}

func newFileFetcher(provider DataProvider, opts FetcherOptions, ext string) *FileFetcher {
	if opts.DataFile != "" {
		return NewFileFetcherForPath(provider, opts.DataFile)
	}
	return NewFileFetcher(provider, opts.DataRoot, ext)
}
