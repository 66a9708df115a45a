package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"INDICATORS_SYMBOL", "INDICATORS_START_DATE", "INDICATORS_END_DATE",
		"INDICATORS_SOURCE", "INDICATORS_DATA_FILE", "INDICATORS_DATA_DIR",
		"BYBIT_TESTNET", "BYBIT_CATEGORY", "LOG_LEVEL", "LOG_DIR", "PROMETHEUS_PORT",
		"INDICATORS_EMA_WARMUP", "INDICATORS_RSI_WARMUP", "INDICATORS_MACD_WARMUP",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "BTCUSDT", cfg.Instrument.Symbol)
	assert.Equal(t, DefaultStartDate, cfg.Instrument.StartDate)
	assert.Equal(t, "bybit", cfg.Data.Source)
	assert.Equal(t, "data", cfg.Data.DataRoot)
	assert.Equal(t, "spot", cfg.Bybit.Category)
	assert.False(t, cfg.Bybit.Testnet)
	assert.Zero(t, cfg.Warmup.EMA)
	assert.Zero(t, cfg.Monitoring.PrometheusPort)

	start, end, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.IsZero())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INDICATORS_SYMBOL", "ccl")
	t.Setenv("INDICATORS_SOURCE", "CSV")
	t.Setenv("INDICATORS_START_DATE", "2020-03-01")
	t.Setenv("INDICATORS_END_DATE", "2020-12-31")
	t.Setenv("BYBIT_TESTNET", "true")
	t.Setenv("INDICATORS_MACD_WARMUP", "250")
	t.Setenv("INDICATORS_RSI_WARMUP", "not-a-number")
	t.Setenv("PROMETHEUS_PORT", "9100")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "CCL", cfg.Instrument.Symbol)
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.True(t, cfg.Bybit.Testnet)
	assert.Equal(t, 250, cfg.Warmup.MACD)
	assert.Zero(t, cfg.Warmup.RSI)
	assert.Equal(t, 9100, cfg.Monitoring.PrometheusPort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Data.Source = "ftp" }},
		{"empty symbol", func(c *Config) { c.Instrument.Symbol = "" }},
		{"negative warmup", func(c *Config) { c.Warmup.EMA = -1 }},
		{"bad start date", func(c *Config) { c.Instrument.StartDate = "01/02/2015" }},
		{"end before start", func(c *Config) { c.Instrument.EndDate = "2014-12-31" }},
		{"port out of range", func(c *Config) { c.Monitoring.PrometheusPort = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Instrument.Symbol = "CCL"
			cfg.Instrument.StartDate = DefaultStartDate
			cfg.Data.Source = "csv"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_Sources(t *testing.T) {
	for _, source := range []string{"bybit", "csv", "yahoo", "xlsx", "excel"} {
		cfg := &Config{}
		cfg.Instrument.Symbol = "CCL"
		cfg.Instrument.StartDate = DefaultStartDate
		cfg.Data.Source = source
		assert.NoError(t, cfg.Validate(), source)
	}
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("INDICATORS_TEST_ONLY_VAR=from-file\n"), 0644))

	t.Setenv("INDICATORS_TEST_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("INDICATORS_TEST_ONLY_VAR"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("INDICATORS_TEST_ONLY_VAR"))
}
