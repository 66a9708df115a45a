package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// fallbackDateFormats are tried after the mapping's own format
var fallbackDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func parseDate(value, layout string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(layout, value); err == nil {
		return t, nil
	}
	for _, f := range fallbackDateFormats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date '%s'", value)
}

func parsePrice(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s'", name, value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid %s %v", name, v)
	}
	return v, nil
}

// parseRecord turns one tabular row into a bar. The timestamp cell has
// already been resolved by the caller because spreadsheets may store it as
// a serial number.
func parseRecord(record []string, format CSVColumnMapping, timestamp time.Time) (types.OHLCV, error) {
	if len(record) < format.MinColumns {
		return types.OHLCV{}, fmt.Errorf("insufficient columns (expected %d, got %d)", format.MinColumns, len(record))
	}

	bar := types.OHLCV{Timestamp: timestamp}
	fields := []struct {
		name string
		col  int
		dst  *float64
	}{
		{"open price", format.OpenCol, &bar.Open},
		{"high price", format.HighCol, &bar.High},
		{"low price", format.LowCol, &bar.Low},
		{"close price", format.CloseCol, &bar.Close},
		{"volume", format.VolumeCol, &bar.Volume},
	}
	for _, f := range fields {
		v, err := parsePrice(f.name, record[f.col])
		if err != nil {
			return types.OHLCV{}, err
		}
		*f.dst = v
	}
	return bar, nil
}
