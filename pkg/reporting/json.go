package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonIndicator struct {
	Name     string    `json:"name"`
	Latest   *float64  `json:"latest,omitempty"`
	Values   []float64 `json:"values,omitempty"`
	Required int       `json:"required_bars"`
	Error    string    `json:"error,omitempty"`
}

type jsonReport struct {
	Symbol     string          `json:"symbol"`
	Period     int             `json:"period"`
	AsOf       string          `json:"as_of"`
	Generated  time.Time       `json:"generated"`
	Indicators []jsonIndicator `json:"indicators"`
}

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatIndicators formats a report as indented JSON
func (f *DefaultJSONFormatter) FormatIndicators(report *IndicatorReport) ([]byte, error) {
	out := jsonReport{
		Symbol:     report.Symbol,
		Period:     report.Period,
		AsOf:       report.AsOf.Format("2006-01-02"),
		Generated:  report.Generated,
		Indicators: make([]jsonIndicator, 0, len(report.Results)),
	}

	for _, result := range report.Results {
		ind := jsonIndicator{Name: result.Name, Required: result.Required}
		if result.Error != nil {
			ind.Error = result.Error.Error()
		} else {
			latest := result.Latest
			ind.Latest = &latest
			ind.Values = result.Values
		}
		out.Indicators = append(out.Indicators, ind)
	}

	return json.MarshalIndent(out, "", "  ")
}

// WriteIndicatorsJSON writes a report to a JSON file
func (f *DefaultJSONFormatter) WriteIndicatorsJSON(report *IndicatorReport, path string) error {
	data, err := f.FormatIndicators(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
