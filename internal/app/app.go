package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/exchange"
	"salescli/internal/exporter"
	"salescli/internal/files"
	"salescli/internal/infrastructure"
	"salescli/internal/metrics"
	"salescli/internal/report"
	"salescli/pkg/contracts/domain"
)

// RateFetcher is the exchange-rate lookup dependency of the pipeline.
type RateFetcher interface {
	FetchRate(ctx context.Context) (*exchange.Rate, error)
}

// RunOptions are the per-run knobs. Zero values fall back to the
// configured defaults.
type RunOptions struct {
	// InputFile overrides the configured feed file.
	InputFile string

	// Report filters, applied after business validation.
	Region    string
	MinAmount *float64
	MaxAmount *float64

	// Aggregation tunables; 0 means use the configured value.
	TopProducts          int
	LowQuantityThreshold int

	// Export targets; empty means skip that export.
	CSVFile   string
	ExcelFile string

	// SkipExchange disables the currency conversion lookup.
	SkipExchange bool
}

// Result is the outcome of one pipeline run.
type Result struct {
	Summary *report.Summary

	// Accepted is the cleaned transaction set the summary was built from,
	// in feed order.
	Accepted []domain.Transaction

	// AvailableRegions lists the regions present in the accepted set, in
	// first-encountered order. Empty when a region filter was applied.
	AvailableRegions []string
}

// Empty reports whether the run had no usable data: a missing or blank
// feed, or one where no record survived cleaning and filtering.
func (r *Result) Empty() bool {
	return r == nil || r.Summary == nil
}

// Pipeline executes sales analytics runs against one configuration.
type Pipeline struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger

	reader    *files.FeedReader
	parser    *dataprocessing.Parser
	validator *dataprocessing.Validator
	rates     RateFetcher
	csv       *exporter.CSVWriter
	excel     *exporter.ExcelWriter
}

// NewPipeline builds a pipeline from configuration. The logger must
// already be initialized.
func NewPipeline(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to prepare directories: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		reader:    files.NewFeedReader(cfg.Input.Encodings, logger),
		parser:    dataprocessing.NewParser(logger),
		validator: dataprocessing.NewValidator(logger),
		rates:     exchange.NewClient(cfg.Exchange),
		csv:       exporter.NewCSVWriter(paths),
		excel:     exporter.NewExcelWriter(paths),
	}, nil
}

// SetRateFetcher replaces the exchange-rate dependency. Used by tests
// and by callers that want conversion disabled entirely.
func (p *Pipeline) SetRateFetcher(f RateFetcher) {
	p.rates = f
}

// Run executes one full pipeline pass. A missing feed, a blank one, or
// one where nothing survives cleaning is not an error: the result's
// Empty method reports it and the summary is nil.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)
	start := time.Now()

	p.logger.InfoContext(ctx, "pipeline run starting",
		slog.String("input", p.feedPath(opts)))

	result, err := p.run(ctx, runID, opts)
	if err != nil {
		metrics.ObserveRun(metrics.ResultError, time.Since(start))
		return nil, err
	}

	metrics.ObserveRun(metrics.ResultSuccess, time.Since(start))
	p.logger.InfoContext(ctx, "pipeline run finished",
		slog.Bool("empty", result.Empty()),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, runID string, opts RunOptions) (*Result, error) {
	lines, err := p.reader.ReadLines(p.feedPath(opts))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		p.logger.WarnContext(ctx, "no feed data to process")
		return &Result{}, nil
	}

	candidates, parseStats := p.parser.ParseAll(ctx, lines)
	metrics.AddLines(metrics.LineParsed, parseStats.Parsed)
	metrics.AddLines(metrics.LineHeader, parseStats.HeaderLines)
	metrics.AddLines(metrics.LineBlank, parseStats.BlankLines)
	metrics.AddLines(metrics.LineMalformed, parseStats.Malformed)
	metrics.AddLines(metrics.LineNonNumeric, parseStats.NonNumeric)

	accepted, filterSummary := p.validator.Apply(ctx, candidates, dataprocessing.FilterOptions{
		Region:    opts.Region,
		MinAmount: opts.MinAmount,
		MaxAmount: opts.MaxAmount,
	})
	for rule, count := range filterSummary.RuleViolations {
		metrics.AddRejected(rule, count)
	}
	metrics.AddFiltered(metrics.FilterRegion, filterSummary.FilteredByRegion)
	metrics.AddFiltered(metrics.FilterAmount, filterSummary.FilteredByAmount)
	metrics.AddAccepted(filterSummary.FinalCount)

	// Nothing survived cleaning: skip aggregation, conversion and export,
	// exactly as for a blank feed.
	if len(accepted) == 0 {
		p.logger.WarnContext(ctx, "no valid transactions after cleaning",
			slog.Int("total_input", filterSummary.TotalInput),
			slog.Int("invalid", filterSummary.Invalid))
		return &Result{}, nil
	}

	agg := p.aggregate(ctx, accepted, opts)
	rate := p.lookupRate(ctx, opts)
	summary := report.Assemble(runID, agg, parseStats, filterSummary, rate)

	result := &Result{
		Summary:  summary,
		Accepted: accepted,
	}
	if opts.Region == "" {
		result.AvailableRegions = dataprocessing.AvailableRegions(accepted)
	}

	if err := p.export(ctx, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// aggregate runs every analysis over the accepted set. The accepted set
// may legitimately be empty after filtering; every aggregation handles
// that, and peak-day selection is guarded explicitly.
func (p *Pipeline) aggregate(ctx context.Context, accepted []domain.Transaction, opts RunOptions) report.Aggregates {
	topN := opts.TopProducts
	if topN <= 0 {
		topN = p.cfg.Analysis.TopProducts
	}
	threshold := opts.LowQuantityThreshold
	if threshold <= 0 {
		threshold = p.cfg.Analysis.LowQuantityThreshold
	}

	agg := report.Aggregates{
		TotalRevenue: dataprocessing.TotalRevenue(accepted),
		Regions:      dataprocessing.RegionSales(accepted),
		Daily:        dataprocessing.DailyTrend(accepted),
		TopProducts:  dataprocessing.TopProducts(accepted, topN),
		LowProducts:  dataprocessing.LowPerformingProducts(accepted, threshold),
		Customers:    dataprocessing.CustomerStats(accepted),
	}

	if len(accepted) > 0 {
		peak, err := dataprocessing.PeakDay(accepted)
		if err != nil {
			p.logger.ErrorContext(ctx, "peak day selection failed", slog.Any("error", err))
		} else {
			agg.Peak = &peak
		}
	}
	return agg
}

// lookupRate fetches the conversion rate. Failure degrades the report
// rather than failing the run.
func (p *Pipeline) lookupRate(ctx context.Context, opts RunOptions) *report.ConvertedRevenue {
	if opts.SkipExchange || p.rates == nil {
		return nil
	}

	rate, err := p.rates.FetchRate(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "exchange rate lookup failed, skipping conversion",
			slog.Any("error", err))
		return nil
	}
	return &report.ConvertedRevenue{Currency: rate.Currency, Rate: rate.Value}
}

func (p *Pipeline) export(ctx context.Context, opts RunOptions, result *Result) error {
	if opts.CSVFile != "" {
		if err := p.csv.WriteTransactions(opts.CSVFile, result.Accepted); err != nil {
			metrics.IncExport("csv", metrics.ResultError)
			return fmt.Errorf("csv export failed: %w", err)
		}
		metrics.IncExport("csv", metrics.ResultSuccess)
	}

	if opts.ExcelFile != "" {
		if err := p.excel.WriteSummary(opts.ExcelFile, result.Summary); err != nil {
			metrics.IncExport("xlsx", metrics.ResultError)
			return fmt.Errorf("excel export failed: %w", err)
		}
		metrics.IncExport("xlsx", metrics.ResultSuccess)
	}
	return nil
}

// DiscoverRegions reads and validates the feed without filters and
// returns the regions present, in first-encountered order. Used by the
// interactive region prompt before the filtered run.
func (p *Pipeline) DiscoverRegions(ctx context.Context, inputFile string) ([]string, error) {
	lines, err := p.reader.ReadLines(p.feedPath(RunOptions{InputFile: inputFile}))
	if err != nil {
		return nil, err
	}

	candidates, _ := p.parser.ParseAll(ctx, lines)
	accepted, _ := p.validator.Apply(ctx, candidates, dataprocessing.FilterOptions{})
	return dataprocessing.AvailableRegions(accepted), nil
}

// feedPath resolves the effective feed file for a run. Relative paths
// resolve against the data directory.
func (p *Pipeline) feedPath(opts RunOptions) string {
	path := opts.InputFile
	if path == "" {
		path = p.cfg.Input.FeedFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.paths.DataDir, path)
	}
	return path
}
