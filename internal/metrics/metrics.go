// Package metrics exposes Prometheus counters for the sales pipeline.
// Registration happens once per process; the record helpers are no-ops
// until Init has run, so library code can call them unconditionally.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "sales_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	linesTotal      *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec
	recordsFiltered *prometheus.CounterVec
	recordsAccepted prometheus.Counter

	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram

	exportsTotal *prometheus.CounterVec
)

// Init registers the pipeline metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		linesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "feed_lines_total",
				Help: "Feed lines seen by the parser, by outcome",
			},
			[]string{"outcome"},
		)
		recordsRejected = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_rejected_total",
				Help: "Records rejected by business rule validation, by rule",
			},
			[]string{"rule"},
		)
		recordsFiltered = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_filtered_total",
				Help: "Valid records excluded by a report filter, by filter",
			},
			[]string{"filter"},
		)
		recordsAccepted = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_accepted_total",
				Help: "Records that reached the aggregation stage",
			},
		)

		runsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pipeline_runs_total",
				Help: "Pipeline runs by result",
			},
			[]string{"result"},
		)
		runDuration = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "pipeline_run_duration_seconds",
				Help:    "End to end pipeline run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)

		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Report exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			linesTotal,
			recordsRejected,
			recordsFiltered,
			recordsAccepted,
			runsTotal,
			runDuration,
			exportsTotal,
		)
	})
}

// Line outcomes for AddLines.
const (
	LineParsed     = "parsed"
	LineHeader     = "header"
	LineBlank      = "blank"
	LineMalformed  = "malformed"
	LineNonNumeric = "non_numeric"
)

// AddLines adds count lines with the given parse outcome.
func AddLines(outcome string, count int) {
	if count <= 0 || linesTotal == nil {
		return
	}
	linesTotal.WithLabelValues(outcome).Add(float64(count))
}

// IncRejected increments the rejection counter for a business rule,
// e.g. "Quantity.gt".
func IncRejected(rule string) {
	AddRejected(rule, 1)
}

// AddRejected adds count rejections for a business rule.
func AddRejected(rule string, count int) {
	if count <= 0 || recordsRejected == nil {
		return
	}
	if rule == "" {
		rule = "unknown"
	}
	recordsRejected.WithLabelValues(rule).Add(float64(count))
}

// AddFiltered adds count records excluded by the named filter.
func AddFiltered(filter string, count int) {
	if count <= 0 || recordsFiltered == nil {
		return
	}
	recordsFiltered.WithLabelValues(filter).Add(float64(count))
}

// AddAccepted adds count records that survived validation and filtering.
func AddAccepted(count int) {
	if count <= 0 || recordsAccepted == nil {
		return
	}
	recordsAccepted.Add(float64(count))
}

// ObserveRun records one pipeline run with its duration.
func ObserveRun(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if runsTotal != nil {
		runsTotal.WithLabelValues(result).Inc()
	}
	if runDuration != nil {
		runDuration.Observe(duration.Seconds())
	}
}

// IncExport records one report export attempt.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format, result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	FilterRegion = "region"
	FilterAmount = "amount"
)
