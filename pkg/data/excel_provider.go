package data

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// ExcelProvider implements DataProvider for .xlsx workbooks laid out like the CSV files
type ExcelProvider struct {
	format CSVColumnMapping
	sheet  string
}

// NewExcelProvider creates a provider that reads the first sheet with the default layout
func NewExcelProvider() *ExcelProvider {
	return &ExcelProvider{format: DefaultCSVFormat}
}

// NewExcelProviderWithFormat creates a provider for a named sheet and layout.
// An empty sheet name selects the first sheet.
func NewExcelProviderWithFormat(format CSVColumnMapping, sheet string) *ExcelProvider {
	return &ExcelProvider{format: format, sheet: sheet}
}

// GetName returns the name of the data provider
func (p *ExcelProvider) GetName() string {
	return "Excel Provider"
}

// LoadData loads daily bars from a workbook. Dates may be text or Excel serial numbers.
func (p *ExcelProvider) LoadData(source string) ([]types.OHLCV, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := p.sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in Excel file")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("insufficient data in sheet %s: %d rows", sheetName, len(rows))
	}

	var data []types.OHLCV
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= p.format.TimestampCol {
			log.Printf("⚠️  Skipping row %d: insufficient columns", i)
			continue
		}

		timestamp, err := p.parseTimestamp(row[p.format.TimestampCol])
		if err != nil {
			log.Printf("⚠️  Row %d: %v", i, err)
			continue
		}

		bar, err := parseRecord(row, p.format, timestamp)
		if err != nil {
			log.Printf("⚠️  Row %d skipped: %v", i, err)
			continue
		}
		data = append(data, bar)
	}

	return data, nil
}

func (p *ExcelProvider) parseTimestamp(cell string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid Excel date %s: %w", cell, err)
		}
		return t, nil
	}
	return parseDate(cell, p.format.DateFormat)
}
