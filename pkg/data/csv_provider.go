package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// CSVProvider implements DataProvider for CSV files
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a new CSV data provider with default format
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{
		format: DefaultCSVFormat,
	}
}

// NewCSVProviderWithFormat creates a new CSV data provider with custom format
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{
		format: format,
	}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads daily bars from a CSV file with a header row.
// Rows that cannot be parsed (for example "null" placeholders on holidays)
// are skipped; OHLC ordering is left for the series to tolerate.
func (p *CSVProvider) LoadData(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return p.read(file)
}

func (p *CSVProvider) read(r io.Reader) ([]types.OHLCV, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var data []types.OHLCV

	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) <= p.format.TimestampCol {
			log.Printf("⚠️ Insufficient columns at line %d, skipping", lineNum)
			continue
		}
		timestamp, err := parseDate(record[p.format.TimestampCol], p.format.DateFormat)
		if err != nil {
			log.Printf("⚠️ Invalid timestamp at line %d, skipping: %v", lineNum, err)
			continue
		}

		bar, err := parseRecord(record, p.format, timestamp)
		if err != nil {
			log.Printf("⚠️ Line %d skipped: %v", lineNum, err)
			continue
		}
		data = append(data, bar)
	}

	return data, nil
}
