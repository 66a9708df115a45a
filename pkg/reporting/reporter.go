package reporting

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DefaultReporter implements ConsoleReporter and FileReporter
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
		paths:   NewDefaultPathManager(),
	}
}

func (r *DefaultReporter) RenderIndicators(w io.Writer, report *IndicatorReport) {
	r.console.RenderIndicators(w, report)
}

func (r *DefaultReporter) WriteIndicatorsCSV(report *IndicatorReport, path string) error {
	return r.csv.WriteIndicatorsCSV(report, path)
}

func (r *DefaultReporter) WriteIndicatorsXLSX(report *IndicatorReport, path string) error {
	return r.excel.WriteIndicatorsXLSX(report, path)
}

func (r *DefaultReporter) WriteIndicatorsJSON(report *IndicatorReport, path string) error {
	return r.json.WriteIndicatorsJSON(report, path)
}

// WriteReport picks the file format from the extension of path
func (r *DefaultReporter) WriteReport(report *IndicatorReport, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.WriteIndicatorsCSV(report, path)
	case ".xlsx":
		return r.WriteIndicatorsXLSX(report, path)
	case ".json":
		return r.WriteIndicatorsJSON(report, path)
	default:
		return fmt.Errorf("unsupported report format: %s", path)
	}
}

// GetDefaultOutputDir returns the directory reports for symbol are written to
func (r *DefaultReporter) GetDefaultOutputDir(symbol string) string {
	return r.paths.GetDefaultOutputDir(symbol)
}
