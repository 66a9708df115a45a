package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	fx := excelize.NewFile()
	defer fx.Close()

	sheet := fx.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, fx.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "CCL.xlsx")
	require.NoError(t, fx.SaveAs(path))
	return path
}

func TestExcelProvider_LoadData(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Date", "Open", "High", "Low", "Close", "Volume"},
		{45292, 10, 12, 9, 11, 1000},
		{"2024-01-02", 11, 13, 10, 12.5, 1100},
		{"garbage", 1, 1, 1, 1, 1},
	})

	data, err := NewExcelProvider().LoadData(path)
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), data[0].Timestamp.UTC())
	assert.Equal(t, 11.0, data[0].Close)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), data[1].Timestamp)
	assert.Equal(t, 12.5, data[1].Close)
}

func TestExcelProvider_LoadData_Errors(t *testing.T) {
	_, err := NewExcelProvider().LoadData(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	headerOnly := writeWorkbook(t, [][]interface{}{{"Date", "Open", "High", "Low", "Close", "Volume"}})
	_, err = NewExcelProvider().LoadData(headerOnly)
	assert.Error(t, err)

	_, err = NewExcelProviderWithFormat(DefaultCSVFormat, "NoSuchSheet").LoadData(headerOnly)
	assert.Error(t, err)
}
