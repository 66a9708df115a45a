package reporting

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
)

// DefaultConsoleReporter renders reports as terminal tables
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// RenderIndicators writes one row per indicator: latest value, the published
// window and the number of bars it consumed. Failed indicators show their error kind.
func (r *DefaultConsoleReporter) RenderIndicators(w io.Writer, report *IndicatorReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s INDICATORS (%s, last %d)", report.Symbol, report.AsOf.Format("2006-01-02"), report.Period))
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Indicator", "Latest", "Values", "Bars", "Status"})
	for _, result := range report.Results {
		if result.Error != nil {
			t.AppendRow(table.Row{result.Name, "-", "-", result.Required, "❌ " + errorLabel(result.Error)})
			continue
		}
		t.AppendRow(table.Row{
			result.Name,
			formatValue(result.Latest),
			formatValues(result.Values),
			result.Required,
			"✅ ok",
		})
	}

	t.AppendFooter(table.Row{"", "", "", "Failures", report.Failures()})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 10, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, WidthMax: 60, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignLeft},
	})

	t.Render()
}

// RenderIndicators renders with the default console reporter
func RenderIndicators(w io.Writer, report *IndicatorReport) {
	NewDefaultConsoleReporter().RenderIndicators(w, report)
}

func errorLabel(err error) string {
	if kind, ok := errors.KindOf(err); ok {
		return strings.ToLower(string(kind))
	}
	return "error"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}
