package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DateLayout is the layout of INDICATORS_START_DATE and INDICATORS_END_DATE
const DateLayout = "2006-01-02"

// DefaultStartDate is the first day fetched when no range is configured
const DefaultStartDate = "2015-01-01"

type Config struct {
	LogLevel string
	LogDir   string

	Instrument struct {
		Symbol    string
		StartDate string
		EndDate   string
	}

	Data struct {
		Source   string
		DataFile string
		DataRoot string
	}

	Bybit struct {
		Testnet  bool
		Category string
		BaseURL  string
	}

	Warmup struct {
		EMA  int
		RSI  int
		MACD int
	}

	Monitoring struct {
		PrometheusPort int
	}
}

func Load() *Config {
	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),
	}

	cfg.Instrument.Symbol = strings.ToUpper(getEnv("INDICATORS_SYMBOL", "BTCUSDT"))
	cfg.Instrument.StartDate = getEnv("INDICATORS_START_DATE", DefaultStartDate)
	cfg.Instrument.EndDate = getEnv("INDICATORS_END_DATE", "")

	cfg.Data.Source = strings.ToLower(getEnv("INDICATORS_SOURCE", "bybit"))
	cfg.Data.DataFile = getEnv("INDICATORS_DATA_FILE", "")
	cfg.Data.DataRoot = getEnv("INDICATORS_DATA_DIR", "data")

	cfg.Bybit.Testnet = getEnvBool("BYBIT_TESTNET", false)
	cfg.Bybit.Category = getEnv("BYBIT_CATEGORY", "spot")
	cfg.Bybit.BaseURL = getEnv("BYBIT_BASE_URL", "")

	// Zero keeps the indicator package defaults
	cfg.Warmup.EMA = getEnvInt("INDICATORS_EMA_WARMUP", 0)
	cfg.Warmup.RSI = getEnvInt("INDICATORS_RSI_WARMUP", 0)
	cfg.Warmup.MACD = getEnvInt("INDICATORS_MACD_WARMUP", 0)

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 0)

	return cfg
}

// Validate checks values that getEnv helpers cannot reject on their own
func (c *Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("INDICATORS_SYMBOL must not be empty")
	}
	switch c.Data.Source {
	case "bybit", "csv", "yahoo", "xlsx", "excel":
	default:
		return fmt.Errorf("INDICATORS_SOURCE must be one of bybit, csv, yahoo, xlsx, excel: got %q", c.Data.Source)
	}
	if c.Warmup.EMA < 0 || c.Warmup.RSI < 0 || c.Warmup.MACD < 0 {
		return fmt.Errorf("warm-up lengths must be >= 0")
	}
	if c.Monitoring.PrometheusPort < 0 || c.Monitoring.PrometheusPort > 65535 {
		return fmt.Errorf("PROMETHEUS_PORT out of range: %d", c.Monitoring.PrometheusPort)
	}
	if _, _, err := c.DateRange(); err != nil {
		return err
	}
	return nil
}

// DateRange parses the configured dates. A zero end means "up to today".
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.Instrument.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", c.Instrument.StartDate, err)
	}

	var end time.Time
	if c.Instrument.EndDate != "" {
		end, err = time.Parse(DateLayout, c.Instrument.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", c.Instrument.EndDate, err)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", c.Instrument.EndDate, c.Instrument.StartDate)
		}
	}
	return start, end, nil
}

// LoadEnvFile loads variables from path into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load environment file %s: %w", path, err)
	}

	log.Printf("📁 Environment loaded from %s", path)
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Printf("⚠️ Ignoring invalid integer %s=%q", key, val)
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		log.Printf("⚠️ Ignoring invalid boolean %s=%q", key, val)
	}
	return defaultVal
}
