package data

import (
	"fmt"
	"slices"
	"time"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// DefaultDataFilter implements DataFilter for daily bars
type DefaultDataFilter struct{}

// NewDefaultDataFilter creates a new default data filter
func NewDefaultDataFilter() *DefaultDataFilter {
	return &DefaultDataFilter{}
}

// FilterByDateRange keeps bars whose trading day lies in [start, end].
// A zero end means no upper bound.
func (f *DefaultDataFilter) FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	if len(data) == 0 {
		return data
	}

	from := truncateDay(start)
	var to time.Time
	if !end.IsZero() {
		to = truncateDay(end)
	}

	filtered := make([]types.OHLCV, 0, len(data))
	for _, candle := range data {
		d := truncateDay(candle.Timestamp)
		if d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		filtered = append(filtered, candle)
	}

	return filtered
}

// ValidateTimeSequence ensures data is strictly chronological
func (f *DefaultDataFilter) ValidateTimeSequence(data []types.OHLCV) error {
	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}

		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}

	return nil
}

// SortByTimestamp returns a sorted copy of data; equal timestamps keep their order
func (f *DefaultDataFilter) SortByTimestamp(data []types.OHLCV) []types.OHLCV {
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b types.OHLCV) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sorted
}

// RemoveDuplicates removes repeated trading days, keeping the first occurrence
func (f *DefaultDataFilter) RemoveDuplicates(data []types.OHLCV) []types.OHLCV {
	if len(data) <= 1 {
		return data
	}

	filtered := make([]types.OHLCV, 0, len(data))
	seen := make(map[string]bool, len(data))

	for _, candle := range data {
		key := candle.Timestamp.UTC().Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			filtered = append(filtered, candle)
		}
	}

	return filtered
}

// Normalize sorts, de-duplicates and trims data to [start, end], then checks the result
func (f *DefaultDataFilter) Normalize(data []types.OHLCV, start, end time.Time) ([]types.OHLCV, error) {
	out := f.RemoveDuplicates(f.SortByTimestamp(data))
	out = f.FilterByDateRange(out, start, end)
	if err := f.ValidateTimeSequence(out); err != nil {
		return nil, err
	}
	return out, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
