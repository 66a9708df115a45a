package reporting

import (
	"encoding/csv"
	"os"
	"strconv"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteIndicatorsCSV writes one row per published value. A failed indicator
// gets a single row with empty offset and value and its error kind as status.
func (r *DefaultCSVReporter) WriteIndicatorsCSV(report *IndicatorReport, path string) error {
	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Symbol", "As_Of", "Indicator", "Offset", "Value", "Status"}); err != nil {
		return err
	}

	asOf := report.AsOf.Format("2006-01-02")
	for _, result := range report.Results {
		if result.Error != nil {
			if err := w.Write([]string{report.Symbol, asOf, result.Name, "", "", errorLabel(result.Error)}); err != nil {
				return err
			}
			continue
		}
		for i, v := range result.Values {
			offset := strconv.Itoa(len(result.Values) - 1 - i)
			if err := w.Write([]string{report.Symbol, asOf, result.Name, offset, formatValue(v), "ok"}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// WriteIndicatorsCSV writes with the default CSV reporter
func WriteIndicatorsCSV(report *IndicatorReport, path string) error {
	return NewDefaultCSVReporter().WriteIndicatorsCSV(report, path)
}
