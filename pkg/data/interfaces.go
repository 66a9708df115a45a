package data

import (
	"context"
	"time"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// SeriesFetcher returns the daily bars of a symbol between start and end,
// oldest first. Any failure to produce bars is reported as DataUnavailable.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error)

	// GetName returns the name of the source
	GetName() string
}

// DataProvider interface for loading historical data from files
type DataProvider interface {
	// LoadData loads historical data from the specified source
	LoadData(source string) ([]types.OHLCV, error)

	// GetName returns the name of the data provider
	GetName() string
}

// DataCache interface for caching loaded data
type DataCache interface {
	// Get retrieves data from cache if available
	Get(key string) ([]types.OHLCV, bool)

	// Set stores data in cache
	Set(key string, data []types.OHLCV)

	// Clear removes all cached data
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// DataFilter interface for filtering and normalizing data
type DataFilter interface {
	// FilterByDateRange filters data to a specific date range
	FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV

	// ValidateTimeSequence ensures data is strictly chronological
	ValidateTimeSequence(data []types.OHLCV) error

	// SortByTimestamp returns data in ascending time order
	SortByTimestamp(data []types.OHLCV) []types.OHLCV

	// RemoveDuplicates drops repeated trading days, keeping the first
	RemoveDuplicates(data []types.OHLCV) []types.OHLCV
}

// CSVColumnMapping defines the column positions for different tabular formats
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// Predefined formats
var (
	// DefaultCSVFormat is Date,Open,High,Low,Close,Volume
	DefaultCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    5,
		MinColumns:   6,
		DateFormat:   "2006-01-02",
	}

	// YahooCSVFormat is the daily history export: Date,Open,High,Low,Close,Adj Close,Volume
	YahooCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    6,
		MinColumns:   7,
		DateFormat:   "2006-01-02",
	}
)

// FileLocator interface for finding data files
type FileLocator interface {
	// FindDataFile attempts to locate the data file of a symbol under dataRoot
	FindDataFile(dataRoot, symbol string, extensions ...string) string
}
