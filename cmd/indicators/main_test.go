package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
	"github.com/ducminhle1904/stock-indicators/internal/indicators"
)

func writeDailyCSV(t *testing.T, dir string, days int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		c := 50 + 5*math.Sin(float64(i)/9) + float64(i)*0.02
		fmt.Fprintf(&b, "%s,%.2f,%.2f,%.2f,%.2f,%d\n",
			start.AddDate(0, 0, i).Format("2006-01-02"), c-0.3, c+1, c-1, c, 1000+i)
	}

	path := filepath.Join(dir, "CCL.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func isolateEnv(t *testing.T) {
	for _, key := range []string{"PROMETHEUS_PORT", "LOG_DIR", "LOG_LEVEL", "INDICATORS_SOURCE", "INDICATORS_DATA_FILE", "INDICATORS_SYMBOL"} {
		t.Setenv(key, "")
	}
}

func TestRun_CSVSource(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDailyCSV(t, dir, 400)
	output := filepath.Join(dir, "out", "report.json")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-source", "csv",
		"-data-root", dir,
		"-symbol", "ccl",
		"-start", "2020-01-01",
		"-end", "2021-12-31",
		"-period", "3",
		"-output", output,
		"-silent",
	}, &stdout)
	require.NoError(t, err)

	out := stdout.String()
	for _, name := range []string{"SMA", "EMA", "RSI", "STOCH", "MACD", "BB", "HA"} {
		assert.Contains(t, out, name)
	}
	assert.FileExists(t, output)
}

func TestRun_MissingSymbolFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	err := run(context.Background(), []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-source", "csv",
		"-data-root", dir,
		"-symbol", "NOPE",
		"-silent",
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsDataUnavailable(err))
}

func TestRun_InvalidFlags(t *testing.T) {
	isolateEnv(t)

	err := run(context.Background(), []string{"-period", "0", "-source", "ftp", "-silent"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period")
}

func TestRun_SelectedIndicators(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDailyCSV(t, dir, 400)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-source", "csv",
		"-data-root", dir,
		"-symbol", "CCL",
		"-start", "2020-01-01",
		"-period", "3",
		"-indicators", "sma, rsi",
		"-silent",
	}, &stdout)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "SMA")
	assert.Contains(t, out, "RSI")
	assert.NotContains(t, out, "MACD")
	assert.NotContains(t, out, "STOCH")
}

func TestRun_UnknownIndicator(t *testing.T) {
	isolateEnv(t)

	err := run(context.Background(), []string{"-indicators", "sma,obv", "-silent"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "obv")
}

func TestRun_ExcelSourceAlias(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	// Passes validation and fails only on the missing workbook
	err := run(context.Background(), []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-source", "excel",
		"-data-root", dir,
		"-symbol", "NOPE",
		"-silent",
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsDataUnavailable(err))
}

func TestRun_ServeWithoutPort(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeDailyCSV(t, dir, 400)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-source", "csv",
		"-data-root", dir,
		"-symbol", "CCL",
		"-start", "2020-01-01",
		"-period", "3",
		"-serve",
	}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "PROMETHEUS_PORT")
}

func TestParseIndicators(t *testing.T) {
	configs, err := parseIndicators("")
	require.NoError(t, err)
	assert.Empty(t, configs)

	configs, err = parseIndicators("sma,,BB, stoch ")
	require.NoError(t, err)
	require.Len(t, configs, 3)
	assert.Equal(t, indicators.IndicatorTypeSMA, configs[0].Type)
	assert.Equal(t, indicators.IndicatorTypeBollingerBands, configs[1].Type)
	assert.Equal(t, indicators.IndicatorTypeStochastic, configs[2].Type)

	_, err = parseIndicators("wavetrend")
	assert.Error(t, err)
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout))
	assert.Contains(t, stdout.String(), appName+" v")
}
