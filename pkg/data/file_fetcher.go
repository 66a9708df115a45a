package data

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// FileFetcher serves SeriesFetcher from local files through a DataProvider.
// With an explicit path every symbol reads that file; otherwise the locator
// searches dataRoot for a file named after the symbol.
type FileFetcher struct {
	provider   DataProvider
	locator    FileLocator
	filter     *DefaultDataFilter
	dataRoot   string
	path       string
	extensions []string
}

// NewFileFetcher creates a fetcher that locates files under dataRoot
func NewFileFetcher(provider DataProvider, dataRoot string, extensions ...string) *FileFetcher {
	return &FileFetcher{
		provider:   provider,
		locator:    NewDefaultFileLocator(),
		filter:     NewDefaultDataFilter(),
		dataRoot:   dataRoot,
		extensions: extensions,
	}
}

// NewFileFetcherForPath creates a fetcher bound to a single file
func NewFileFetcherForPath(provider DataProvider, path string) *FileFetcher {
	f := NewFileFetcher(provider, filepath.Dir(path))
	f.path = path
	return f
}

// GetName returns the name of the underlying provider
func (f *FileFetcher) GetName() string {
	return f.provider.GetName()
}

// FetchSeries loads, normalizes and trims the file's bars to [start, end]
func (f *FileFetcher) FetchSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDataUnavailable(f.GetName(), symbol, err)
	}

	path := f.path
	if path == "" {
		path = f.locator.FindDataFile(f.dataRoot, symbol, f.extensions...)
		if path == "" {
			return nil, errors.NewDataUnavailable(f.GetName(), symbol,
				fmt.Errorf("no data file under %s", f.dataRoot))
		}
	}

	raw, err := f.provider.LoadData(path)
	if err != nil {
		return nil, errors.NewDataUnavailable(f.GetName(), symbol, err)
	}

	bars, err := f.filter.Normalize(raw, start, end)
	if err != nil {
		return nil, errors.NewDataUnavailable(f.GetName(), symbol, err)
	}
	if len(bars) == 0 {
		return nil, errors.NewDataUnavailable(f.GetName(), symbol,
			fmt.Errorf("%s has no bars between %s and %s", filepath.Base(path),
				start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	log.Printf("📊 Loaded %d daily bars for %s from %s", len(bars), symbol, filepath.Base(path))
	return bars, nil
}
