package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/ducminhle1904/stock-indicators/cmd/common"
	"github.com/ducminhle1904/stock-indicators/internal/config"
	"github.com/ducminhle1904/stock-indicators/internal/indicators"
	"github.com/ducminhle1904/stock-indicators/internal/instrument"
	"github.com/ducminhle1904/stock-indicators/internal/logger"
	"github.com/ducminhle1904/stock-indicators/internal/monitoring"
	"github.com/ducminhle1904/stock-indicators/pkg/data"
	"github.com/ducminhle1904/stock-indicators/pkg/reporting"
)

const appName = "indicators"

const fetchTimeout = 2 * time.Minute

type options struct {
	symbol     string
	start      string
	end        string
	source     string
	file       string
	period     int
	indicators string
	output     string
	serve      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cf := common.RegisterCommonFlags(fs)

	var opts options
	fs.StringVar(&opts.symbol, "symbol", "", "Ticker symbol (overrides INDICATORS_SYMBOL)")
	fs.StringVar(&opts.start, "start", "", "First day, YYYY-MM-DD (overrides INDICATORS_START_DATE)")
	fs.StringVar(&opts.end, "end", "", "Last day, YYYY-MM-DD; empty means today")
	fs.StringVar(&opts.source, "source", "", "Data source: bybit, csv, yahoo, xlsx or excel (overrides INDICATORS_SOURCE)")
	fs.StringVar(&opts.file, "data", "", "Explicit data file for csv, yahoo and xlsx sources")
	fs.IntVar(&opts.period, "period", 5, "Number of most recent values per indicator")
	fs.StringVar(&opts.indicators, "indicators", "", "Comma-separated indicators, e.g. sma,rsi,bb; empty means all")
	fs.StringVar(&opts.output, "output", "", "Also write the report to a .csv, .xlsx or .json file")
	fs.BoolVar(&opts.serve, "serve", false, "Keep serving /metrics and /health after printing")

	usage := common.NewUsageFormatter(appName, "Print technical indicators for one instrument").
		AddExample("indicators -symbol BTCUSDT -period 10", "Latest ten values of every indicator from Bybit").
		AddExample("indicators -source yahoo -data data/CCL.csv -symbol CCL", "Indicators from a Yahoo Finance export").
		AddExample("indicators -symbol ETHUSDT -indicators rsi,macd", "Only RSI and MACD")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if common.CheckHelpAndVersion(stdout, appName, cf, usage, fs) {
		return nil
	}

	if err := config.LoadEnvFile(*cf.EnvFile); err != nil {
		log.Printf("⚠️ %v", err)
	}
	cfg := config.Load()
	applyFlags(cfg, &opts, cf)

	validator := common.NewFlagValidator().
		ValidateInt("period", opts.period, 1, 10000).
		ValidateChoice("source", cfg.Data.Source, []string{"bybit", "csv", "yahoo", "xlsx", "excel"}).
		ValidateDate("start", opts.start).
		ValidateDate("end", opts.end).
		ValidateFile("data", cfg.Data.DataFile, false)
	selected, err := parseIndicators(opts.indicators)
	if err != nil {
		validator.AddError(fmt.Sprintf("indicators: %v", err))
	}
	if validator.HasErrors() {
		validator.PrintErrors(os.Stderr)
		return validator.GetError()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lg, err := newLogger(cfg, cf, stdout)
	if err != nil {
		return err
	}
	defer lg.Close()

	if opts.serve && cfg.Monitoring.PrometheusPort == 0 {
		lg.Warning("-serve ignored: set PROMETHEUS_PORT to expose /metrics and /health")
	}

	health := monitoring.NewHealthChecker()
	var server *http.Server
	if cfg.Monitoring.PrometheusPort > 0 {
		server = startMonitoringServer(cfg.Monitoring.PrometheusPort, health, lg)
		defer shutdown(server, lg)
	}

	source, err := data.ParseSource(cfg.Data.Source)
	if err != nil {
		return err
	}
	fetcher, err := data.NewFetcher(data.FetcherOptions{
		Source:        source,
		DataFile:      cfg.Data.DataFile,
		DataRoot:      cfg.Data.DataRoot,
		BybitTestnet:  cfg.Bybit.Testnet,
		BybitCategory: cfg.Bybit.Category,
		BybitBaseURL:  cfg.Bybit.BaseURL,
	})
	if err != nil {
		return err
	}

	start, end, err := cfg.DateRange()
	if err != nil {
		return err
	}

	lg.Info("Loading %s from %s", cfg.Instrument.Symbol, fetcher.GetName())
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	instOpts := warmupOptions(cfg)
	instOpts.Indicators = selected
	inst, err := instrument.New(fetchCtx, fetcher, cfg.Instrument.Symbol, start, end, instOpts)
	cancel()
	if err != nil {
		health.RecordError(err)
		lg.LogError("fetch", err)
		return err
	}

	ps := inst.Series()
	health.RecordSeries(inst.Symbol(), ps.Len(), ps.Last().Timestamp)
	lg.Info("%s: %d daily bars, last %s", inst, ps.Len(), ps.Last().Timestamp.Format("2006-01-02"))
	if need := inst.RequiredBars(opts.period); need > ps.Len() {
		lg.Warning("Longest indicator needs %d bars, only %d loaded", need, ps.Len())
	}

	results := inst.Summary(opts.period)
	for _, name := range sortedNames(results) {
		result := results[name]
		if result.Error != nil {
			lg.Warning("%s: %v", name, result.Error)
			continue
		}
		lg.Indicator(name, result.Latest, result.Required)
	}
	if failed := indicators.CountFailures(results); failed > 0 {
		lg.Warning("%d of %d indicators could not be computed", failed, len(results))
	}

	report := reporting.NewIndicatorReport(inst.Symbol(), opts.period, results)
	reporter := reporting.NewDefaultReporter()
	reporter.RenderIndicators(stdout, report)

	if opts.output != "" {
		if err := reporter.WriteReport(report, opts.output); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		lg.Info("Report written to %s", opts.output)
	}

	if opts.serve && server != nil {
		lg.Info("Serving metrics on %s, press Ctrl+C to stop", server.Addr)
		<-ctx.Done()
	}
	return nil
}

// applyFlags lets command-line flags override the environment
func applyFlags(cfg *config.Config, opts *options, cf *common.CommonFlags) {
	if opts.symbol != "" {
		cfg.Instrument.Symbol = strings.ToUpper(opts.symbol)
	}
	if opts.start != "" {
		cfg.Instrument.StartDate = opts.start
	}
	if opts.end != "" {
		cfg.Instrument.EndDate = opts.end
	}
	if opts.source != "" {
		cfg.Data.Source = strings.ToLower(opts.source)
	}
	if opts.file != "" {
		cfg.Data.DataFile = opts.file
	}
	if *cf.DataRoot != "" {
		cfg.Data.DataRoot = *cf.DataRoot
	}
}

func newLogger(cfg *config.Config, cf *common.CommonFlags, console io.Writer) (*logger.Logger, error) {
	level := logger.ParseLevel(cfg.LogLevel)
	switch {
	case *cf.Silent:
		level = logger.LogLevelError
	case *cf.Verbose:
		level = logger.LogLevelDebug
	}
	return logger.NewLogger(console, cfg.Instrument.Symbol, level, cfg.LogDir)
}

// parseIndicators turns "sma,rsi" into configs with default parameters.
// Empty input selects every indicator.
func parseIndicators(list string) ([]indicators.IndicatorConfig, error) {
	var configs []indicators.IndicatorConfig
	for _, field := range strings.Split(list, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		t, err := indicators.ParseIndicatorType(field)
		if err != nil {
			return nil, err
		}
		configs = append(configs, indicators.IndicatorConfig{Type: t})
	}
	return configs, nil
}

// warmupOptions maps unset warm-up lengths to the package defaults
func warmupOptions(cfg *config.Config) instrument.Options {
	opts := instrument.DefaultOptions()
	if cfg.Warmup.EMA > 0 {
		opts.EMAWarmup = cfg.Warmup.EMA
	}
	if cfg.Warmup.RSI > 0 {
		opts.RSIWarmup = cfg.Warmup.RSI
	}
	if cfg.Warmup.MACD > 0 {
		opts.MACDWarmup = cfg.Warmup.MACD
	}
	return opts
}

func startMonitoringServer(port int, health *monitoring.HealthChecker, lg *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("Starting metrics server on port %d", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Metrics server error: %v", err)
		}
	}()
	return server
}

func shutdown(server *http.Server, lg *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		lg.Error("Metrics server shutdown: %v", err)
	}
}

func sortedNames(results map[string]*indicators.IndicatorResult) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
