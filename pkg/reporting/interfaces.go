// Package reporting renders indicator evaluations for people and files
package reporting

import (
	"cmp"
	"io"
	"slices"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/indicators"
)

// ConsoleReporter defines interface for terminal output
type ConsoleReporter interface {
	RenderIndicators(w io.Writer, report *IndicatorReport)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteIndicatorsCSV(report *IndicatorReport, path string) error
	WriteIndicatorsXLSX(report *IndicatorReport, path string) error
	WriteIndicatorsJSON(report *IndicatorReport, path string) error
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle int
	NumberStyle int
	TextStyle   int
	ErrorStyle  int
}

// IndicatorReport is one evaluation of several indicators for a symbol
type IndicatorReport struct {
	Symbol    string
	Period    int
	AsOf      time.Time
	Generated time.Time
	Results   []*indicators.IndicatorResult
}

// displayOrder lists indicators the way they are printed; unknown names follow alphabetically
var displayOrder = map[string]int{
	"SMA":   0,
	"EMA":   1,
	"RSI":   2,
	"STOCH": 3,
	"MACD":  4,
	"BB":    5,
	"HA":    6,
}

// NewIndicatorReport builds a report from manager results
func NewIndicatorReport(symbol string, period int, results map[string]*indicators.IndicatorResult) *IndicatorReport {
	report := &IndicatorReport{
		Symbol:    symbol,
		Period:    period,
		Generated: time.Now(),
		Results:   make([]*indicators.IndicatorResult, 0, len(results)),
	}

	for _, result := range results {
		report.Results = append(report.Results, result)
		if result.Timestamp.After(report.AsOf) {
			report.AsOf = result.Timestamp
		}
	}

	slices.SortFunc(report.Results, func(a, b *indicators.IndicatorResult) int {
		ra, okA := displayOrder[a.Name]
		rb, okB := displayOrder[b.Name]
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return cmp.Compare(a.Name, b.Name)
		}
	})

	return report
}

// Failures counts results that carry an error
func (r *IndicatorReport) Failures() int {
	n := 0
	for _, result := range r.Results {
		if result.Error != nil {
			n++
		}
	}
	return n
}
