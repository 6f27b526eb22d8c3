package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"salescli/internal/dataprocessing"
)

// Aggregates bundles the outputs of one aggregation pass. The assembler
// only selects, orders and formats these values; it never recomputes them.
type Aggregates struct {
	TotalRevenue float64
	Regions      []dataprocessing.RegionStat
	Daily        []dataprocessing.DailyStat
	Peak         *dataprocessing.DailyStat
	TopProducts  []dataprocessing.ProductStat
	LowProducts  []dataprocessing.ProductStat
	Customers    []dataprocessing.CustomerStat
}

// ConvertedRevenue is the total revenue expressed in a secondary currency.
// It is present only when the exchange-rate collaborator produced a rate.
type ConvertedRevenue struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Summary is the display- and export-ready result of one pipeline run.
type Summary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalRevenue     float64           `json:"total_revenue"`
	ConvertedRevenue *ConvertedRevenue `json:"converted_revenue,omitempty"`

	PeakDay     *dataprocessing.DailyStat     `json:"peak_day,omitempty"`
	Regions     []dataprocessing.RegionStat   `json:"regions"`
	Daily       []dataprocessing.DailyStat    `json:"daily_trend"`
	TopProducts []dataprocessing.ProductStat  `json:"top_products"`
	LowProducts []dataprocessing.ProductStat  `json:"low_performing_products"`
	Customers   []dataprocessing.CustomerStat `json:"customers"`

	Parse  dataprocessing.ParseStats    `json:"parse_stats"`
	Filter dataprocessing.FilterSummary `json:"filter_summary"`
}

// Assemble combines one aggregation snapshot with the pipeline counters
// into a summary. Safe to call repeatedly with different snapshots; the
// assembler holds no state.
func Assemble(runID string, agg Aggregates, parse dataprocessing.ParseStats, filter dataprocessing.FilterSummary, rate *ConvertedRevenue) *Summary {
	s := &Summary{
		RunID:        runID,
		GeneratedAt:  time.Now().UTC(),
		TotalRevenue: round2(agg.TotalRevenue),
		PeakDay:      agg.Peak,
		Regions:      agg.Regions,
		Daily:        agg.Daily,
		TopProducts:  agg.TopProducts,
		LowProducts:  agg.LowProducts,
		Customers:    agg.Customers,
		Parse:        parse,
		Filter:       filter,
	}
	if rate != nil {
		converted := *rate
		converted.Amount = round2(agg.TotalRevenue * converted.Rate)
		s.ConvertedRevenue = &converted
	}
	return s
}

// FormatMoney formats an amount with thousands separators and two
// decimals, e.g. 1234567.8 -> "1,234,567.80".
func FormatMoney(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%02d", sign, b.String(), frac)
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
