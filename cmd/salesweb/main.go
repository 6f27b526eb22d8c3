// Command salesweb serves the sales analytics report over HTTP. The
// pipeline runs lazily on the first request and can be re-run via the
// refresh endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salescli/internal/app"
	"salescli/internal/config"
	"salescli/internal/infrastructure"
	"salescli/internal/metrics"
	transport "salescli/internal/transport/http"
)

func main() {
	input := flag.String("input", "", "feed file (defaults to the configured feed in the data directory)")
	region := flag.String("region", "", "only include transactions from this region")
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

	service := app.NewService(pipeline, app.RunOptions{
		InputFile:    *input,
		Region:       *region,
		SkipExchange: *noExchange,
	})

	handler := transport.NewReportHandler(service, logger)
	router := transport.NewRouter(handler, cfg.Server, logger)
	server := app.NewServer(cfg.Server, router, logger)

	if err := server.Run(context.Background()); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
