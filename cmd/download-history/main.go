package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ducminhle1904/stock-indicators/cmd/common"
	"github.com/ducminhle1904/stock-indicators/internal/config"
	"github.com/ducminhle1904/stock-indicators/pkg/data"
	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

const appName = "download-history"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

// run downloads daily bars from Bybit into {outdir}/{SYMBOL}.csv, the layout
// the csv source of the indicators command reads
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cf := common.RegisterCommonFlags(fs)

	var (
		symbols   = fs.String("symbols", "BTCUSDT", "Comma-separated list of symbols")
		category  = fs.String("category", "spot", "Market category (spot, linear, inverse)")
		startDate = fs.String("start", config.DefaultStartDate, "Start date (YYYY-MM-DD)")
		endDate   = fs.String("end", "", "End date (YYYY-MM-DD), empty means today")
		outdir    = fs.String("outdir", "data", "Directory to write CSV files")
		testnet   = fs.Bool("testnet", false, "Use the Bybit testnet")
	)

	usage := common.NewUsageFormatter(appName, "Download daily Bybit klines to CSV").
		AddExample("download-history -symbols BTCUSDT,ETHUSDT -start 2020-01-01", "Two symbols since 2020")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if common.CheckHelpAndVersion(stdout, appName, cf, usage, fs) {
		return nil
	}

	symList := splitSymbols(*symbols)
	validator := common.NewFlagValidator().
		ValidateChoice("category", *category, []string{"spot", "linear", "inverse"}).
		ValidateDate("start", *startDate).
		ValidateDate("end", *endDate)
	if len(symList) == 0 {
		validator.AddError("symbols must name at least one symbol")
	}
	if validator.HasErrors() {
		validator.PrintErrors(os.Stderr)
		return validator.GetError()
	}

	start, _ := time.Parse("2006-01-02", *startDate)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if *endDate != "" {
		end, _ = time.Parse("2006-01-02", *endDate)
	}

	fetcher, err := data.NewFetcher(data.FetcherOptions{
		Source:        data.SourceBybit,
		BybitTestnet:  *testnet,
		BybitCategory: *category,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "🚀 Bybit Daily History Downloader")
	fmt.Fprintln(stdout, "====================================")
	fmt.Fprintf(stdout, "📊 Category: %s\n", *category)
	fmt.Fprintf(stdout, "🎯 Symbols: %s\n", strings.Join(symList, ", "))
	fmt.Fprintf(stdout, "📅 Date Range: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	failed := 0
	for _, symbol := range symList {
		outPath := filepath.Join(*outdir, symbol+".csv")
		if err := downloadOne(ctx, stdout, fetcher, symbol, start, end, outPath); err != nil {
			log.Printf("❌ Failed to download %s: %v", symbol, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(symList))
	}
	fmt.Fprintln(stdout, "\n🎉 All downloads completed!")
	return nil
}

func downloadOne(ctx context.Context, stdout io.Writer, fetcher data.SeriesFetcher, symbol string, start, end time.Time, outPath string) error {
	fmt.Fprintf(stdout, "\n🔄 Fetching %s...\n", symbol)

	bars, err := fetcher.FetchSeries(ctx, symbol, start, end)
	if err != nil {
		return err
	}

	if err := data.WriteCSV(outPath, bars); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "💾 %d bars saved to %s\n", len(bars), outPath)
	printSummary(stdout, bars)
	return nil
}

func printSummary(w io.Writer, bars []types.OHLCV) {
	if len(bars) == 0 {
		return
	}

	high, low := bars[0].High, bars[0].Low
	var totalVolume float64
	for _, bar := range bars {
		totalVolume += bar.Volume
		high = max(high, bar.High)
		low = min(low, bar.Low)
	}

	fmt.Fprintf(w, "  First: %s\n", bars[0].Timestamp.Format("2006-01-02"))
	fmt.Fprintf(w, "  Last:  %s\n", bars[len(bars)-1].Timestamp.Format("2006-01-02"))
	fmt.Fprintf(w, "  High:  %.2f\n", high)
	fmt.Fprintf(w, "  Low:   %.2f\n", low)
	fmt.Fprintf(w, "  Avg Volume: %.2f\n", totalVolume/float64(len(bars)))
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
