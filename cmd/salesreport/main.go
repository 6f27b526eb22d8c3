// Command salesreport runs the sales analytics pipeline once and prints
// the report to stdout, optionally exporting CSV and Excel artifacts.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"salescli/internal/app"
	"salescli/internal/config"
	"salescli/internal/infrastructure"
	"salescli/internal/metrics"
	"salescli/internal/report"
)

func main() {
	input := flag.String("input", "", "feed file (defaults to the configured feed in the data directory)")
	out := flag.String("out", "", "export the cleaned transactions as CSV to this file")
	xlsx := flag.String("xlsx", "", "export the summary workbook to this file")
	region := flag.String("region", "", "only include transactions from this region")
	min := flag.Float64("min", 0, "minimum transaction amount")
	max := flag.Float64("max", 0, "maximum transaction amount")
	top := flag.Int("top", 0, "number of top products to report (defaults from config)")
	threshold := flag.Int("threshold", 0, "low performer quantity threshold (defaults from config)")
	interactive := flag.Bool("interactive", false, "prompt for a region filter before running")
	noExchange := flag.Bool("no-exchange", false, "skip the currency conversion lookup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization failed: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion))

	metrics.Init()

	pipeline, err := app.NewPipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	opts := app.RunOptions{
		InputFile:            *input,
		Region:               *region,
		TopProducts:          *top,
		LowQuantityThreshold: *threshold,
		CSVFile:              *out,
		ExcelFile:            *xlsx,
		SkipExchange:         *noExchange,
	}
	// Only bounds the user actually passed become filters.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min":
			opts.MinAmount = min
		case "max":
			opts.MaxAmount = max
		}
	})

	if *interactive && opts.Region == "" {
		chosen, err := promptRegion(ctx, pipeline, *input)
		if err != nil {
			logger.Error("region discovery failed", slog.Any("error", err))
			os.Exit(1)
		}
		opts.Region = chosen
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		logger.Error("pipeline run failed", slog.Any("error", err))
		os.Exit(1)
	}

	if result.Empty() {
		fmt.Println("No sales data to process.")
		return
	}

	report.Render(os.Stdout, result.Summary)

	if len(result.AvailableRegions) > 0 {
		fmt.Printf("\nAvailable regions: %s\n", strings.Join(result.AvailableRegions, ", "))
	}
	if *out != "" {
		fmt.Printf("Cleaned transactions written to %s\n", *out)
	}
	if *xlsx != "" {
		fmt.Printf("Summary workbook written to %s\n", *xlsx)
	}
}

// promptRegion lists the regions present in the feed and reads the
// user's choice. An empty answer means no filter.
func promptRegion(ctx context.Context, pipeline *app.Pipeline, inputFile string) (string, error) {
	regions, err := pipeline.DiscoverRegions(ctx, inputFile)
	if err != nil {
		return "", err
	}
	if len(regions) == 0 {
		return "", nil
	}

	fmt.Printf("Available regions: %s\n", strings.Join(regions, ", "))
	fmt.Print("Filter by region (press Enter for all): ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	answer := strings.TrimSpace(scanner.Text())

	for _, r := range regions {
		if strings.EqualFold(r, answer) {
			return r, nil
		}
	}
	if answer != "" {
		fmt.Printf("Unknown region %q, reporting all regions.\n", answer)
	}
	return "", nil
}
