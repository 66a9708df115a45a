package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	valuesSheet  = "Values"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteIndicatorsXLSX writes a Summary sheet with one row per indicator and a
// Values sheet with one column per successful indicator, oldest value first
func (r *DefaultExcelReporter) WriteIndicatorsXLSX(report *IndicatorReport, path string) error {
	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(valuesSheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, report, styles); err != nil {
		return err
	}
	if err := r.writeValuesSheet(fx, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - Dark blue background with white text
	if styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	}); err != nil {
		return styles, err
	}

	// 0.00
	if styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    2,
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    border,
	}); err != nil {
		return styles, err
	}

	if styles.TextStyle, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	}); err != nil {
		return styles, err
	}

	if styles.ErrorStyle, err = fx.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "9C0006"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, report *IndicatorReport, styles ExcelStyles) error {
	headers := []interface{}{"Indicator", "Latest", "Bars", "Status"}
	if err := fx.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return err
	}
	if err := fx.SetCellStyle(summarySheet, "A1", "D1", styles.HeaderStyle); err != nil {
		return err
	}

	for i, result := range report.Results {
		row := i + 2
		cell := fmt.Sprintf("A%d", row)

		values := []interface{}{result.Name, result.Latest, result.Required, "ok"}
		style := styles.NumberStyle
		if result.Error != nil {
			values = []interface{}{result.Name, nil, result.Required, errorLabel(result.Error)}
			style = styles.ErrorStyle
		}
		if err := fx.SetSheetRow(summarySheet, cell, &values); err != nil {
			return err
		}
		if err := fx.SetCellStyle(summarySheet, cell, fmt.Sprintf("D%d", row), style); err != nil {
			return err
		}
	}

	return fx.SetColWidth(summarySheet, "A", "D", 16)
}

func (r *DefaultExcelReporter) writeValuesSheet(fx *excelize.File, report *IndicatorReport, styles ExcelStyles) error {
	if err := fx.SetCellValue(valuesSheet, "A1", "Offset"); err != nil {
		return err
	}

	col := 2
	for _, result := range report.Results {
		if result.Error != nil {
			continue
		}
		header, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(valuesSheet, header, result.Name); err != nil {
			return err
		}
		for i, v := range result.Values {
			cell, err := excelize.CoordinatesToCellName(col, i+2)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(valuesSheet, cell, v); err != nil {
				return err
			}
		}
		col++
	}

	for i := 0; i < report.Period; i++ {
		// Offset counts back from the newest bar, 0 being the last one
		if err := fx.SetCellValue(valuesSheet, fmt.Sprintf("A%d", i+2), report.Period-1-i); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(col-1, 1)
	if err != nil {
		return err
	}
	return fx.SetCellStyle(valuesSheet, "A1", last, styles.HeaderStyle)
}

// WriteIndicatorsXLSX writes with the default Excel reporter
func WriteIndicatorsXLSX(report *IndicatorReport, path string) error {
	return NewDefaultExcelReporter().WriteIndicatorsXLSX(report, path)
}
