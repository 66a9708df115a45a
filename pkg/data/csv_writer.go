package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// WriteCSV saves bars in DefaultCSVFormat so CSVProvider can load them back
func WriteCSV(path string, bars []types.OHLCV) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return err
	}

	for _, bar := range bars {
		record := []string{
			bar.Timestamp.UTC().Format(DefaultCSVFormat.DateFormat),
			formatPrice(bar.Open),
			formatPrice(bar.High),
			formatPrice(bar.Low),
			formatPrice(bar.Close),
			formatPrice(bar.Volume),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
